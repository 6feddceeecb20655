package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/blackroad/product-catalog/internal/catalog"
)

// ListOptions configures the list command.
type ListOptions struct {
	Category   string
	All        bool
	Limit      int
	JSONOutput bool
	Stdout     io.Writer
	Stderr     io.Writer
}

// ListCommand prints products, active only unless All is set.
func (c *CatalogCLI) ListCommand(ctx context.Context, opts ListOptions) int {
	stdout, stderr := resolveWriters(opts.Stdout, opts.Stderr)

	products, err := c.service.List(ctx, catalog.ListFilter{
		Category:        opts.Category,
		IncludeInactive: opts.All,
		Limit:           opts.Limit,
	})
	if err != nil {
		return fail(stderr, err)
	}

	if opts.JSONOutput {
		if err := writeJSON(stdout, products); err != nil {
			return fail(stderr, err)
		}
		return 0
	}

	printHeader(stdout, fmt.Sprintf("Products  (%d shown)", len(products)))
	if len(products) == 0 {
		fmt.Fprintf(stdout, "  %sNo products found.%s\n\n", colorDim, colorReset)
	}
	for _, p := range products {
		printProduct(stdout, p)
		fmt.Fprintln(stdout)
	}
	return 0
}

// AddOptions configures the add command.
type AddOptions struct {
	SKU         string
	Name        string
	Category    string
	Price       float64
	Cost        float64
	Inventory   int64
	Unit        string
	Description string
	JSONOutput  bool
	Stdout      io.Writer
	Stderr      io.Writer
}

// AddCommand creates a product.
func (c *CatalogCLI) AddCommand(ctx context.Context, opts AddOptions) int {
	stdout, stderr := resolveWriters(opts.Stdout, opts.Stderr)

	product, err := c.service.Add(ctx, catalog.AddInput{
		SKU:         opts.SKU,
		Name:        opts.Name,
		Category:    opts.Category,
		Price:       opts.Price,
		Cost:        opts.Cost,
		Inventory:   opts.Inventory,
		Unit:        opts.Unit,
		Description: opts.Description,
	})
	if err != nil {
		return fail(stderr, err)
	}

	if opts.JSONOutput {
		if err := writeJSON(stdout, product); err != nil {
			return fail(stderr, err)
		}
		return 0
	}

	fmt.Fprintf(stdout, "\n%s✓ Product added:%s [%s] %s  $%.2f  stock: %d\n\n",
		colorGreen, colorReset, product.SKU, product.Name, product.Price, product.Inventory)
	return 0
}

// UpdateOptions configures the inventory update command.
type UpdateOptions struct {
	SKU        string
	Delta      int64
	JSONOutput bool
	Stdout     io.Writer
	Stderr     io.Writer
}

// UpdateCommand adjusts a product's inventory. An unknown SKU is reported
// but is not a command failure.
func (c *CatalogCLI) UpdateCommand(ctx context.Context, opts UpdateOptions) int {
	stdout, stderr := resolveWriters(opts.Stdout, opts.Stderr)

	product, err := c.service.AdjustInventory(ctx, opts.SKU, opts.Delta)
	if err != nil {
		return fail(stderr, err)
	}
	if product == nil {
		if opts.JSONOutput {
			if err := writeJSON(stdout, map[string]any{"found": false, "sku": opts.SKU}); err != nil {
				return fail(stderr, err)
			}
			return 0
		}
		fmt.Fprintf(stdout, "\n%s✗ SKU '%s' not found%s\n\n", colorRed, opts.SKU, colorReset)
		return 0
	}

	if opts.JSONOutput {
		if err := writeJSON(stdout, product); err != nil {
			return fail(stderr, err)
		}
		return 0
	}

	direction := ""
	if opts.Delta >= 0 {
		direction = "+"
	}
	stock := stockColor(product.StockStatus())
	fmt.Fprintf(stdout, "\n%s✓ %s%s inventory: %s%d → %d %s  [%s%s%s]\n\n",
		colorGreen, product.SKU, colorReset, direction, opts.Delta,
		product.Inventory, product.Unit, stock, product.StockStatus(), colorReset)
	return 0
}

// SearchOptions configures the search command.
type SearchOptions struct {
	Query      string
	JSONOutput bool
	Stdout     io.Writer
	Stderr     io.Writer
}

// SearchCommand prints products matching the query.
func (c *CatalogCLI) SearchCommand(ctx context.Context, opts SearchOptions) int {
	stdout, stderr := resolveWriters(opts.Stdout, opts.Stderr)

	products, err := c.service.Search(ctx, opts.Query)
	if err != nil {
		return fail(stderr, err)
	}

	if opts.JSONOutput {
		if err := writeJSON(stdout, products); err != nil {
			return fail(stderr, err)
		}
		return 0
	}

	printHeader(stdout, fmt.Sprintf("Search: '%s'  (%d results)", opts.Query, len(products)))
	for _, p := range products {
		printProduct(stdout, p)
		fmt.Fprintln(stdout)
	}
	return 0
}

// StatusOptions configures the status command.
type StatusOptions struct {
	JSONOutput bool
	Stdout     io.Writer
	Stderr     io.Writer
}

// StatusCommand prints catalog statistics.
func (c *CatalogCLI) StatusCommand(ctx context.Context, opts StatusOptions) int {
	stdout, stderr := resolveWriters(opts.Stdout, opts.Stderr)

	stats, err := c.service.Stats(ctx)
	if err != nil {
		return fail(stderr, err)
	}

	if opts.JSONOutput {
		if err := writeJSON(stdout, stats); err != nil {
			return fail(stderr, err)
		}
		return 0
	}

	printStats(stdout, stats)
	return 0
}

// ExportOptions configures the export command.
type ExportOptions struct {
	Output string
	Stdout io.Writer
	Stderr io.Writer
}

// ExportCommand writes the catalog as CSV to the output path.
func (c *CatalogCLI) ExportCommand(ctx context.Context, opts ExportOptions) int {
	stdout, stderr := resolveWriters(opts.Stdout, opts.Stderr)

	if _, err := c.service.ExportCSV(ctx, opts.Output); err != nil {
		return fail(stderr, err)
	}
	fmt.Fprintf(stdout, "\n%s✓ Exported to:%s %s\n\n", colorGreen, colorReset, opts.Output)
	return 0
}

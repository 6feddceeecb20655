// Package cli implements the product-catalog terminal commands. Commands
// take an options struct with injected output writers and return a process
// exit code, which keeps them testable without a real terminal.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/blackroad/product-catalog/internal/catalog"
)

// ServicePort abstracts the catalog operations the CLI drives.
type ServicePort interface {
	Add(ctx context.Context, input catalog.AddInput) (catalog.Product, error)
	List(ctx context.Context, filter catalog.ListFilter) ([]catalog.Product, error)
	Search(ctx context.Context, query string) ([]catalog.Product, error)
	AdjustInventory(ctx context.Context, sku string, delta int64) (*catalog.Product, error)
	Stats(ctx context.Context) (catalog.Stats, error)
	ExportCSV(ctx context.Context, outputPath string) (string, error)
}

// CatalogCLI bundles the catalog commands.
type CatalogCLI struct {
	service ServicePort
}

// NewCatalogCLI builds the command set.
func NewCatalogCLI(service ServicePort) (*CatalogCLI, error) {
	if service == nil {
		return nil, errors.New("cli: service is required")
	}
	return &CatalogCLI{service: service}, nil
}

func resolveWriters(stdout, stderr io.Writer) (io.Writer, io.Writer) {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return stdout, stderr
}

func writeJSON(w io.Writer, payload any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

func fail(stderr io.Writer, err error) int {
	fmt.Fprintf(stderr, "%serror:%s %v\n", colorRed, colorReset, err)
	return 1
}

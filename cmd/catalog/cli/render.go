package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/blackroad/product-catalog/internal/catalog"
)

// ANSI escape codes used by the terminal renderer.
const (
	colorGreen   = "\033[92m"
	colorCyan    = "\033[96m"
	colorYellow  = "\033[93m"
	colorRed     = "\033[91m"
	colorBold    = "\033[1m"
	colorDim     = "\033[2m"
	colorReset   = "\033[0m"
	headerWidth  = 70
	maxBarLength = 25
)

var moneyPrinter = message.NewPrinter(language.English)

func printHeader(w io.Writer, title string) {
	rule := strings.Repeat("─", headerWidth)
	fmt.Fprintf(w, "\n%s%s%s%s\n", colorBold, colorCyan, rule, colorReset)
	fmt.Fprintf(w, "%s%s  %s%s\n", colorBold, colorCyan, title, colorReset)
	fmt.Fprintf(w, "%s%s%s%s\n\n", colorBold, colorCyan, rule, colorReset)
}

func printProduct(w io.Writer, p catalog.Product) {
	stock := stockColor(p.StockStatus())
	margin := marginColor(p.MarginPct())
	fmt.Fprintf(w, "  %s%s%-14s%s  %s%s%s\n",
		colorBold, colorCyan, p.SKU, colorReset, colorGreen, p.Name, colorReset)
	fmt.Fprintf(w, "  %-14s  cat: %s%s%s  price: %s$%.2f%s  margin: %s%.1f%%%s  stock: %s%d %s%s  [%s%s%s]\n",
		"",
		colorYellow, p.Category, colorReset,
		colorBold, p.Price, colorReset,
		margin, p.MarginPct(), colorReset,
		stock, p.Inventory, p.Unit, colorReset,
		stock, p.StockStatus(), colorReset)
}

func printStats(w io.Writer, stats catalog.Stats) {
	printHeader(w, "Product Catalog — Status")
	fmt.Fprintf(w, "  %sActive products  :%s  %d\n", colorYellow, colorReset, stats.Total)
	fmt.Fprintf(w, "  %sIn stock         :%s  %d\n", colorGreen, colorReset, stats.InStock)
	fmt.Fprintf(w, "  %sLow stock        :%s  %d\n", colorYellow, colorReset, stats.LowStock)
	fmt.Fprintf(w, "  %sOut of stock     :%s  %d\n", colorRed, colorReset, stats.OutOfStock)
	fmt.Fprintf(w, "  %sInventory value  :%s  %s\n",
		colorYellow, colorReset, moneyPrinter.Sprintf("$%.2f", stats.InventoryValue))
	if len(stats.Categories) > 0 {
		fmt.Fprintf(w, "\n  %sCategories:%s\n", colorBold, colorReset)
		for _, category := range sortedCategories(stats.Categories) {
			count := stats.Categories[category]
			bar := strings.Repeat("█", barLength(count))
			fmt.Fprintf(w, "    %-20s %s%s%s %d\n", category, colorCyan, bar, colorReset, count)
		}
	}
	fmt.Fprintln(w)
}

func stockColor(status catalog.StockStatus) string {
	switch status {
	case catalog.StockStatusOut:
		return colorRed
	case catalog.StockStatusLow:
		return colorYellow
	case catalog.StockStatusIn:
		return colorGreen
	default:
		return colorReset
	}
}

func marginColor(pct float64) string {
	switch {
	case pct >= 30:
		return colorGreen
	case pct >= 10:
		return colorYellow
	default:
		return colorRed
	}
}

func barLength(count int64) int {
	if count > maxBarLength {
		return maxBarLength
	}
	if count < 0 {
		return 0
	}
	return int(count)
}

func sortedCategories(categories map[string]int64) []string {
	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

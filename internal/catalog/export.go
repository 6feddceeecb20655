package catalog

import (
	"encoding/csv"
	"io"
	"strconv"
)

var csvHeader = []string{"SKU", "Name", "Category", "Price", "Cost", "Margin%", "Inventory", "Unit", "Status", "Active"}

// WriteProductsCSV serialises products to CSV. Prices and costs carry two
// decimal places, margin one.
func WriteProductsCSV(w io.Writer, products []Product) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(csvHeader); err != nil {
		return err
	}
	for _, p := range products {
		record := []string{
			p.SKU,
			p.Name,
			p.Category,
			strconv.FormatFloat(p.Price, 'f', 2, 64),
			strconv.FormatFloat(p.Cost, 'f', 2, 64),
			strconv.FormatFloat(p.MarginPct(), 'f', 1, 64),
			strconv.FormatInt(p.Inventory, 10),
			p.Unit,
			string(p.StockStatus()),
			strconv.FormatBool(p.Active),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteProductsCSV(t *testing.T) {
	products := []Product{
		{SKU: "WID-1", Name: "Widget", Category: "Widgets", Price: 100, Cost: 70, Inventory: 5, Unit: "ea", Active: true},
		{SKU: "GAD-1", Name: "Gadget", Category: "Gadgets", Price: 0, Cost: 5, Inventory: 0, Unit: "box", Active: false},
	}

	var sb strings.Builder
	require.NoError(t, WriteProductsCSV(&sb, products))

	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "SKU,Name,Category,Price,Cost,Margin%,Inventory,Unit,Status,Active", lines[0])
	require.Equal(t, "WID-1,Widget,Widgets,100.00,70.00,30.0,5,ea,LOW_STOCK,true", lines[1])
	require.Equal(t, "GAD-1,Gadget,Gadgets,0.00,5.00,0.0,0,box,OUT_OF_STOCK,false", lines[2])
}

func TestWriteProductsCSVEmpty(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, WriteProductsCSV(&sb, nil))
	require.Equal(t, "SKU,Name,Category,Price,Cost,Margin%,Inventory,Unit,Status,Active\n", sb.String())
}

package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMarginPct(t *testing.T) {
	require.InDelta(t, 30.0, Product{Price: 100, Cost: 70}.MarginPct(), 0.0001)
	require.InDelta(t, 0.0, Product{Price: 0, Cost: 5}.MarginPct(), 0.0001)
	require.InDelta(t, 100.0, Product{Price: 50, Cost: 0}.MarginPct(), 0.0001)
	require.InDelta(t, 33.33, Product{Price: 3, Cost: 2}.MarginPct(), 0.0001)
	require.InDelta(t, -50.0, Product{Price: 10, Cost: 15}.MarginPct(), 0.0001)
}

func TestStockStatus(t *testing.T) {
	require.Equal(t, StockStatusOut, Product{Inventory: 0}.StockStatus())
	require.Equal(t, StockStatusLow, Product{Inventory: 5}.StockStatus())
	require.Equal(t, StockStatusLow, Product{Inventory: 9}.StockStatus())
	require.Equal(t, StockStatusIn, Product{Inventory: 10}.StockStatus())
	require.Equal(t, StockStatusIn, Product{Inventory: 1000}.StockStatus())
}

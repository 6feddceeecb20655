package catalog

import (
	"errors"
	"math"
	"time"
)

// StockStatus classifies a product's inventory level.
type StockStatus string

const (
	// StockStatusOut means no units are on hand.
	StockStatusOut StockStatus = "OUT_OF_STOCK"
	// StockStatusLow means fewer than LowStockThreshold units remain.
	StockStatusLow StockStatus = "LOW_STOCK"
	// StockStatusIn means the product is adequately stocked.
	StockStatusIn StockStatus = "IN_STOCK"
)

// LowStockThreshold is the inventory level below which a product counts as low stock.
const LowStockThreshold = 10

// DefaultUnit is the unit of measure assumed when none is given.
const DefaultUnit = "ea"

// Product models one catalog entry.
type Product struct {
	ID          int64     `json:"id"`
	SKU         string    `json:"sku"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	Cost        float64   `json:"cost"`
	Inventory   int64     `json:"inventory"`
	Unit        string    `json:"unit"`
	Description string    `json:"description"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MarginPct returns the margin percentage retained after cost, rounded to
// two decimals. Products without a positive price have no margin.
func (p Product) MarginPct() float64 {
	if p.Price <= 0 {
		return 0
	}
	return round2((p.Price - p.Cost) / p.Price * 100)
}

// StockStatus derives the inventory classification.
func (p Product) StockStatus() StockStatus {
	switch {
	case p.Inventory <= 0:
		return StockStatusOut
	case p.Inventory < LowStockThreshold:
		return StockStatusLow
	default:
		return StockStatusIn
	}
}

// ListFilter narrows a catalog listing.
type ListFilter struct {
	Category        string
	IncludeInactive bool
	// Limit caps the number of rows. Zero or negative means no cap.
	Limit int
}

// AddInput carries the fields accepted when creating a product.
type AddInput struct {
	SKU         string  `json:"sku" validate:"required"`
	Name        string  `json:"name" validate:"required"`
	Category    string  `json:"category" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	Cost        float64 `json:"cost" validate:"gte=0"`
	Inventory   int64   `json:"inventory" validate:"gte=0"`
	Unit        string  `json:"unit"`
	Description string  `json:"description"`
}

// Stats summarises the active catalog.
type Stats struct {
	Total          int64            `json:"total"`
	OutOfStock     int64            `json:"out_of_stock"`
	LowStock       int64            `json:"low_stock"`
	InStock        int64            `json:"in_stock"`
	InventoryValue float64          `json:"inventory_value"`
	Categories     map[string]int64 `json:"categories"`
}

// ErrDuplicateSKU is returned when inserting a SKU that already exists.
var ErrDuplicateSKU = errors.New("catalog: sku already exists")

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

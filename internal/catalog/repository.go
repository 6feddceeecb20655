package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/blackroad/product-catalog/internal/platform/db"
)

// Repository abstracts durable product storage.
type Repository interface {
	Init(ctx context.Context) error
	Insert(ctx context.Context, product Product) (Product, error)
	List(ctx context.Context, filter ListFilter) ([]Product, error)
	Search(ctx context.Context, query string) ([]Product, error)
	AdjustInventory(ctx context.Context, sku string, delta int64) (*Product, error)
	Stats(ctx context.Context) (Stats, error)
}

type repository struct {
	db *sql.DB
}

// NewRepository returns a Repository backed by the given database handle.
func NewRepository(handle *sql.DB) Repository {
	return &repository{db: handle}
}

const productColumns = `id, sku, name, category, price, cost, inventory, unit, description, active, created_at, updated_at`

func (r *repository) Init(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS products (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			sku         TEXT UNIQUE NOT NULL,
			name        TEXT NOT NULL,
			category    TEXT NOT NULL,
			price       REAL NOT NULL,
			cost        REAL DEFAULT 0,
			inventory   INTEGER DEFAULT 0,
			unit        TEXT DEFAULT 'ea',
			description TEXT DEFAULT '',
			active      INTEGER DEFAULT 1,
			created_at  TEXT NOT NULL,
			updated_at  TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_products_sku ON products(sku)`,
		`CREATE INDEX IF NOT EXISTS idx_products_category ON products(category)`,
	}
	for _, stmt := range statements {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("catalog: init schema: %w", err)
		}
	}
	return nil
}

func (r *repository) Insert(ctx context.Context, product Product) (Product, error) {
	query := `INSERT INTO products (sku, name, category, price, cost, inventory, unit, description, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, query,
		product.SKU, product.Name, product.Category, product.Price, product.Cost,
		product.Inventory, product.Unit, product.Description, boolToInt(product.Active),
		formatTime(product.CreatedAt), formatTime(product.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return Product{}, ErrDuplicateSKU
		}
		return Product{}, fmt.Errorf("catalog: insert product: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return Product{}, fmt.Errorf("catalog: insert product: %w", err)
	}
	product.ID = id
	return product, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	args := []any{}

	if !filter.IncludeInactive {
		query += ` AND active = 1`
	}
	if filter.Category != "" {
		query += ` AND category = ?`
		args = append(args, filter.Category)
	}
	query += ` ORDER BY category, name`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("catalog: list products: %w", err)
	}
	defer rows.Close()
	return scanProducts(rows)
}

func (r *repository) Search(ctx context.Context, query string) ([]Product, error) {
	pattern := "%" + query + "%"
	stmt := `SELECT ` + productColumns + ` FROM products
		WHERE sku LIKE ? OR name LIKE ? OR category LIKE ? OR description LIKE ?
		ORDER BY name`
	rows, err := r.db.QueryContext(ctx, stmt, pattern, pattern, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("catalog: search products: %w", err)
	}
	defer rows.Close()
	return scanProducts(rows)
}

func (r *repository) AdjustInventory(ctx context.Context, sku string, delta int64) (*Product, error) {
	var product *Product
	err := db.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE products SET inventory = MAX(0, inventory + ?), updated_at = ? WHERE sku = ?`,
			delta, formatTime(time.Now().UTC()), sku,
		)
		if err != nil {
			return fmt.Errorf("catalog: adjust inventory: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("catalog: adjust inventory: %w", err)
		}
		if affected == 0 {
			return nil
		}
		row := tx.QueryRowContext(ctx,
			`SELECT `+productColumns+` FROM products WHERE sku = ?`, sku)
		p, err := scanProduct(row)
		if err != nil {
			return fmt.Errorf("catalog: adjust inventory: %w", err)
		}
		product = &p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (r *repository) Stats(ctx context.Context) (Stats, error) {
	stats := Stats{Categories: map[string]int64{}}

	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM products WHERE active = 1`).Scan(&stats.Total); err != nil {
		return Stats{}, fmt.Errorf("catalog: stats: %w", err)
	}
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM products WHERE active = 1 AND inventory = 0`).Scan(&stats.OutOfStock); err != nil {
		return Stats{}, fmt.Errorf("catalog: stats: %w", err)
	}
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM products WHERE active = 1 AND inventory > 0 AND inventory < ?`,
		LowStockThreshold).Scan(&stats.LowStock); err != nil {
		return Stats{}, fmt.Errorf("catalog: stats: %w", err)
	}
	stats.InStock = stats.Total - stats.OutOfStock - stats.LowStock

	var value sql.NullFloat64
	if err := r.db.QueryRowContext(ctx,
		`SELECT SUM(price * inventory) FROM products WHERE active = 1`).Scan(&value); err != nil {
		return Stats{}, fmt.Errorf("catalog: stats: %w", err)
	}
	stats.InventoryValue = round2(value.Float64)

	rows, err := r.db.QueryContext(ctx,
		`SELECT category, COUNT(*) FROM products WHERE active = 1 GROUP BY category`)
	if err != nil {
		return Stats{}, fmt.Errorf("catalog: stats: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var category string
		var count int64
		if err := rows.Scan(&category, &count); err != nil {
			return Stats{}, fmt.Errorf("catalog: stats: %w", err)
		}
		stats.Categories[category] = count
	}
	if err := rows.Err(); err != nil {
		return Stats{}, fmt.Errorf("catalog: stats: %w", err)
	}
	return stats, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (Product, error) {
	var p Product
	var active int64
	var createdAt, updatedAt string
	err := row.Scan(&p.ID, &p.SKU, &p.Name, &p.Category, &p.Price, &p.Cost,
		&p.Inventory, &p.Unit, &p.Description, &active, &createdAt, &updatedAt)
	if err != nil {
		return Product{}, err
	}
	p.Active = active != 0
	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return Product{}, err
	}
	if p.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return Product{}, err
	}
	return p, nil
}

func scanProducts(rows *sql.Rows) ([]Product, error) {
	products := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("catalog: scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog: scan products: %w", err)
	}
	return products, nil
}

func isUniqueViolation(err error) bool {
	var serr *sqlite.Error
	return errors.As(err, &serr) && serr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

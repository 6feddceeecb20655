package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DefaultListLimit caps listings when the caller does not pick a limit.
const DefaultListLimit = 50

// Service coordinates catalog operations on top of a Repository.
type Service struct {
	repo     Repository
	logger   *slog.Logger
	validate *validator.Validate
}

// NewService builds a Service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger, validate: validator.New()}
}

// Add creates a product. The SKU is trimmed and uppercased before storage,
// so duplicate detection is case-insensitive. Returns ErrDuplicateSKU when
// the SKU already exists.
func (s *Service) Add(ctx context.Context, input AddInput) (Product, error) {
	input.SKU = strings.ToUpper(strings.TrimSpace(input.SKU))
	if err := s.validate.Struct(input); err != nil {
		return Product{}, fmt.Errorf("catalog: invalid product: %w", err)
	}
	if input.Unit == "" {
		input.Unit = DefaultUnit
	}

	now := time.Now().UTC()
	product := Product{
		SKU:         input.SKU,
		Name:        input.Name,
		Category:    input.Category,
		Price:       input.Price,
		Cost:        input.Cost,
		Inventory:   input.Inventory,
		Unit:        input.Unit,
		Description: input.Description,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Insert(ctx, product)
	if err != nil {
		return Product{}, err
	}
	s.logger.Info("product added",
		slog.String("sku", created.SKU),
		slog.String("category", created.Category),
		slog.Float64("price", created.Price))
	return created, nil
}

// List returns products ordered by category then name. A zero limit falls
// back to DefaultListLimit.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]Product, error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultListLimit
	}
	return s.repo.List(ctx, filter)
}

// Search matches the query as a case-insensitive substring of sku, name,
// category, or description. An empty query matches everything.
func (s *Service) Search(ctx context.Context, query string) ([]Product, error) {
	return s.repo.Search(ctx, query)
}

// AdjustInventory applies delta to a product's stock, never going below
// zero. A nil product with nil error means the SKU does not exist; that is
// a routine outcome, not a failure.
func (s *Service) AdjustInventory(ctx context.Context, sku string, delta int64) (*Product, error) {
	sku = strings.ToUpper(strings.TrimSpace(sku))
	product, err := s.repo.AdjustInventory(ctx, sku, delta)
	if err != nil {
		return nil, err
	}
	if product == nil {
		s.logger.Warn("inventory adjustment for unknown sku", slog.String("sku", sku))
		return nil, nil
	}
	s.logger.Info("inventory adjusted",
		slog.String("sku", product.SKU),
		slog.Int64("delta", delta),
		slog.Int64("inventory", product.Inventory))
	return product, nil
}

// Stats summarises the active catalog.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	return s.repo.Stats(ctx)
}

// ExportCSV renders the whole catalog, inactive products included, as CSV
// text. When outputPath is non-empty the text is also written there,
// replacing any existing file.
func (s *Service) ExportCSV(ctx context.Context, outputPath string) (string, error) {
	products, err := s.repo.List(ctx, ListFilter{IncludeInactive: true})
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	if err := WriteProductsCSV(&sb, products); err != nil {
		return "", fmt.Errorf("catalog: export csv: %w", err)
	}
	content := sb.String()

	if outputPath != "" {
		if err := os.WriteFile(outputPath, []byte(content), 0o644); err != nil {
			return "", fmt.Errorf("catalog: export csv: %w", err)
		}
		s.logger.Info("catalog exported",
			slog.String("path", outputPath),
			slog.Int("products", len(products)))
	}
	return content, nil
}

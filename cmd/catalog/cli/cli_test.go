package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blackroad/product-catalog/internal/catalog"
)

type stubService struct {
	products  []catalog.Product
	stats     catalog.Stats
	adjusted  *catalog.Product
	exported  string
	lastPath  string
	lastInput catalog.AddInput
	err       error
}

func (s *stubService) Add(ctx context.Context, input catalog.AddInput) (catalog.Product, error) {
	if s.err != nil {
		return catalog.Product{}, s.err
	}
	s.lastInput = input
	return catalog.Product{ID: 1, SKU: strings.ToUpper(input.SKU), Name: input.Name,
		Category: input.Category, Price: input.Price, Inventory: input.Inventory, Unit: "ea", Active: true}, nil
}

func (s *stubService) List(ctx context.Context, filter catalog.ListFilter) ([]catalog.Product, error) {
	return s.products, s.err
}

func (s *stubService) Search(ctx context.Context, query string) ([]catalog.Product, error) {
	return s.products, s.err
}

func (s *stubService) AdjustInventory(ctx context.Context, sku string, delta int64) (*catalog.Product, error) {
	return s.adjusted, s.err
}

func (s *stubService) Stats(ctx context.Context) (catalog.Stats, error) {
	return s.stats, s.err
}

func (s *stubService) ExportCSV(ctx context.Context, outputPath string) (string, error) {
	s.lastPath = outputPath
	return s.exported, s.err
}

func TestListCommandJSON(t *testing.T) {
	stub := &stubService{products: []catalog.Product{
		{ID: 1, SKU: "WID-1", Name: "Widget", Category: "Widgets", Price: 9.99, Inventory: 5, Unit: "ea", Active: true},
	}}
	cli, err := NewCatalogCLI(stub)
	require.NoError(t, err)

	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	exitCode := cli.ListCommand(context.Background(), ListOptions{
		JSONOutput: true, Stdout: stdout, Stderr: stderr,
	})
	require.Zero(t, exitCode)
	require.Empty(t, stderr.String())

	var products []catalog.Product
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &products))
	require.Len(t, products, 1)
	require.Equal(t, "WID-1", products[0].SKU)
}

func TestListCommandEmptyRendersNotice(t *testing.T) {
	cli, err := NewCatalogCLI(&stubService{})
	require.NoError(t, err)

	stdout := new(bytes.Buffer)
	exitCode := cli.ListCommand(context.Background(), ListOptions{Stdout: stdout, Stderr: new(bytes.Buffer)})
	require.Zero(t, exitCode)
	require.Contains(t, stdout.String(), "No products found.")
}

func TestAddCommandRendersConfirmation(t *testing.T) {
	stub := &stubService{}
	cli, err := NewCatalogCLI(stub)
	require.NoError(t, err)

	stdout := new(bytes.Buffer)
	exitCode := cli.AddCommand(context.Background(), AddOptions{
		SKU: "wid-1", Name: "Widget", Category: "Widgets", Price: 9.99,
		Stdout: stdout, Stderr: new(bytes.Buffer),
	})
	require.Zero(t, exitCode)
	require.Contains(t, stdout.String(), "Product added:")
	require.Contains(t, stdout.String(), "[WID-1] Widget")
	require.Equal(t, "wid-1", stub.lastInput.SKU)
}

func TestAddCommandDuplicateFails(t *testing.T) {
	cli, err := NewCatalogCLI(&stubService{err: catalog.ErrDuplicateSKU})
	require.NoError(t, err)

	stderr := new(bytes.Buffer)
	exitCode := cli.AddCommand(context.Background(), AddOptions{
		SKU: "WID-1", Name: "Widget", Category: "Widgets", Price: 9.99,
		Stdout: new(bytes.Buffer), Stderr: stderr,
	})
	require.Equal(t, 1, exitCode)
	require.Contains(t, stderr.String(), "sku already exists")
}

func TestUpdateCommandNotFoundIsNotAFailure(t *testing.T) {
	cli, err := NewCatalogCLI(&stubService{adjusted: nil})
	require.NoError(t, err)

	stdout := new(bytes.Buffer)
	exitCode := cli.UpdateCommand(context.Background(), UpdateOptions{
		SKU: "MISSING", Delta: 5, Stdout: stdout, Stderr: new(bytes.Buffer),
	})
	require.Zero(t, exitCode)
	require.Contains(t, stdout.String(), "not found")
}

func TestUpdateCommandJSONNotFound(t *testing.T) {
	cli, err := NewCatalogCLI(&stubService{adjusted: nil})
	require.NoError(t, err)

	stdout := new(bytes.Buffer)
	exitCode := cli.UpdateCommand(context.Background(), UpdateOptions{
		SKU: "MISSING", Delta: 5, JSONOutput: true, Stdout: stdout, Stderr: new(bytes.Buffer),
	})
	require.Zero(t, exitCode)

	var result map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &result))
	require.Equal(t, false, result["found"])
}

func TestUpdateCommandRendersNewLevel(t *testing.T) {
	adjusted := &catalog.Product{SKU: "WID-1", Inventory: 12, Unit: "ea", Active: true}
	cli, err := NewCatalogCLI(&stubService{adjusted: adjusted})
	require.NoError(t, err)

	stdout := new(bytes.Buffer)
	exitCode := cli.UpdateCommand(context.Background(), UpdateOptions{
		SKU: "WID-1", Delta: 7, Stdout: stdout, Stderr: new(bytes.Buffer),
	})
	require.Zero(t, exitCode)
	require.Contains(t, stdout.String(), "+7 → 12 ea")
	require.Contains(t, stdout.String(), "IN_STOCK")
}

func TestStatusCommandJSON(t *testing.T) {
	stub := &stubService{stats: catalog.Stats{
		Total: 3, OutOfStock: 1, LowStock: 1, InStock: 1,
		InventoryValue: 159.97, Categories: map[string]int64{"Widgets": 2, "Gadgets": 1},
	}}
	cli, err := NewCatalogCLI(stub)
	require.NoError(t, err)

	stdout := new(bytes.Buffer)
	exitCode := cli.StatusCommand(context.Background(), StatusOptions{
		JSONOutput: true, Stdout: stdout, Stderr: new(bytes.Buffer),
	})
	require.Zero(t, exitCode)

	var stats catalog.Stats
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &stats))
	require.EqualValues(t, 3, stats.Total)
	require.InDelta(t, 159.97, stats.InventoryValue, 0.0001)
}

func TestStatusCommandRendersCategoryBars(t *testing.T) {
	stub := &stubService{stats: catalog.Stats{
		Total: 2, InStock: 2, Categories: map[string]int64{"Widgets": 2},
	}}
	cli, err := NewCatalogCLI(stub)
	require.NoError(t, err)

	stdout := new(bytes.Buffer)
	exitCode := cli.StatusCommand(context.Background(), StatusOptions{Stdout: stdout, Stderr: new(bytes.Buffer)})
	require.Zero(t, exitCode)
	require.Contains(t, stdout.String(), "Widgets")
	require.Contains(t, stdout.String(), "██")
}

func TestExportCommand(t *testing.T) {
	stub := &stubService{exported: "SKU,Name\n"}
	cli, err := NewCatalogCLI(stub)
	require.NoError(t, err)

	stdout := new(bytes.Buffer)
	exitCode := cli.ExportCommand(context.Background(), ExportOptions{
		Output: "out.csv", Stdout: stdout, Stderr: new(bytes.Buffer),
	})
	require.Zero(t, exitCode)
	require.Equal(t, "out.csv", stub.lastPath)
	require.Contains(t, stdout.String(), "Exported to:")
}

func TestCommandsSurfaceServiceErrors(t *testing.T) {
	cli, err := NewCatalogCLI(&stubService{err: errors.New("disk gone")})
	require.NoError(t, err)

	stderr := new(bytes.Buffer)
	exitCode := cli.StatusCommand(context.Background(), StatusOptions{Stdout: new(bytes.Buffer), Stderr: stderr})
	require.Equal(t, 1, exitCode)
	require.Contains(t, stderr.String(), "disk gone")
}

func TestNewCatalogCLIRequiresService(t *testing.T) {
	_, err := NewCatalogCLI(nil)
	require.Error(t, err)
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/blackroad/product-catalog/cmd/catalog/cli"
	"github.com/blackroad/product-catalog/internal/app"
	"github.com/blackroad/product-catalog/internal/catalog"
	"github.com/blackroad/product-catalog/internal/platform/db"
)

const usage = `product-catalog — SKU & inventory manager

Usage:
  catalog list [-c category] [--all] [-n limit] [--json]
  catalog add <sku> <name> <category> <price> [--cost n] [--inventory n] [--unit u] [--description d] [--json]
  catalog update <sku> <delta> [--json]
  catalog search <query> [--json]
  catalog status [--json]
  catalog export [-o output]
  catalog serve
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}
	logger := app.NewLogger(cfg)

	handle, err := db.Open(ctx, cfg.DBPath)
	if err != nil {
		logger.Error("open catalog database", slog.Any("error", err))
		os.Exit(1)
	}
	defer handle.Close()

	repo := catalog.NewRepository(handle)
	if err := repo.Init(ctx); err != nil {
		logger.Error("init schema", slog.Any("error", err))
		os.Exit(1)
	}
	service := catalog.NewService(repo, logger)

	commands, err := cli.NewCatalogCLI(service)
	if err != nil {
		logger.Error("build cli", slog.Any("error", err))
		os.Exit(1)
	}

	os.Exit(run(ctx, cfg, logger, service, commands, os.Args[1], os.Args[2:]))
}

func run(ctx context.Context, cfg *app.Config, logger *slog.Logger, service *catalog.Service, commands *cli.CatalogCLI, command string, args []string) int {
	switch command {
	case "list":
		fs := flag.NewFlagSet("list", flag.ExitOnError)
		category := fs.String("c", "", "filter by exact category")
		all := fs.Bool("all", false, "include inactive products")
		limit := fs.Int("n", 30, "maximum rows")
		jsonOut := fs.Bool("json", false, "emit JSON")
		_ = fs.Parse(args)
		return commands.ListCommand(ctx, cli.ListOptions{
			Category: *category, All: *all, Limit: *limit, JSONOutput: *jsonOut,
		})

	case "add":
		fs := flag.NewFlagSet("add", flag.ExitOnError)
		cost := fs.Float64("cost", 0, "unit cost")
		inventory := fs.Int64("inventory", 0, "starting inventory")
		unit := fs.String("unit", catalog.DefaultUnit, "unit of measure")
		description := fs.String("description", "", "product description")
		jsonOut := fs.Bool("json", false, "emit JSON")
		positional, rest := splitPositional(args, 4)
		if len(positional) < 4 {
			fmt.Fprintln(os.Stderr, "usage: catalog add <sku> <name> <category> <price> [flags]")
			return 2
		}
		_ = fs.Parse(rest)
		price, err := strconv.ParseFloat(positional[3], 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid price %q\n", positional[3])
			return 2
		}
		return commands.AddCommand(ctx, cli.AddOptions{
			SKU: positional[0], Name: positional[1], Category: positional[2], Price: price,
			Cost: *cost, Inventory: *inventory, Unit: *unit, Description: *description,
			JSONOutput: *jsonOut,
		})

	case "update":
		fs := flag.NewFlagSet("update", flag.ExitOnError)
		jsonOut := fs.Bool("json", false, "emit JSON")
		positional, rest := splitPositional(args, 2)
		if len(positional) < 2 {
			fmt.Fprintln(os.Stderr, "usage: catalog update <sku> <delta>")
			return 2
		}
		_ = fs.Parse(rest)
		delta, err := strconv.ParseInt(positional[1], 10, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid delta %q\n", positional[1])
			return 2
		}
		return commands.UpdateCommand(ctx, cli.UpdateOptions{
			SKU: positional[0], Delta: delta, JSONOutput: *jsonOut,
		})

	case "search":
		fs := flag.NewFlagSet("search", flag.ExitOnError)
		jsonOut := fs.Bool("json", false, "emit JSON")
		positional, rest := splitPositional(args, 1)
		if len(positional) < 1 {
			fmt.Fprintln(os.Stderr, "usage: catalog search <query>")
			return 2
		}
		_ = fs.Parse(rest)
		return commands.SearchCommand(ctx, cli.SearchOptions{
			Query: positional[0], JSONOutput: *jsonOut,
		})

	case "status":
		fs := flag.NewFlagSet("status", flag.ExitOnError)
		jsonOut := fs.Bool("json", false, "emit JSON")
		_ = fs.Parse(args)
		return commands.StatusCommand(ctx, cli.StatusOptions{JSONOutput: *jsonOut})

	case "export":
		fs := flag.NewFlagSet("export", flag.ExitOnError)
		output := fs.String("o", "product_catalog.csv", "output path")
		_ = fs.Parse(args)
		return commands.ExportCommand(ctx, cli.ExportOptions{Output: *output})

	case "serve":
		return serve(ctx, cfg, logger, service)

	default:
		fmt.Fprint(os.Stderr, usage)
		return 2
	}
}

// splitPositional takes up to n leading non-flag arguments and returns the
// remainder for flag parsing.
func splitPositional(args []string, n int) ([]string, []string) {
	positional := []string{}
	for len(args) > 0 && len(positional) < n {
		if isFlag(args[0]) {
			break
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
	return positional, args
}

// isFlag reports whether arg looks like a command flag. A dash followed by
// digits is a negative number (an inventory delta), not a flag.
func isFlag(arg string) bool {
	if len(arg) < 2 || arg[0] != '-' {
		return false
	}
	if _, err := strconv.ParseInt(arg, 10, 64); err == nil {
		return false
	}
	return true
}

func serve(ctx context.Context, cfg *app.Config, logger *slog.Logger, service *catalog.Service) int {
	handler := catalog.NewHandler(logger, service)
	router := app.NewRouter(app.RouterParams{Logger: logger, Config: cfg, CatalogHandler: handler})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("catalog api listening", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.AppRequestTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("serve", slog.Any("error", err))
		return 1
	}
	return 0
}

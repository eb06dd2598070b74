package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jackinabox86/prun-site-alpha-sub001/config"
	"github.com/jackinabox86/prun-site-alpha-sub001/internal/adapters/blob"
	"github.com/jackinabox86/prun-site-alpha-sub001/internal/adapters/fio"
	"github.com/jackinabox86/prun-site-alpha-sub001/internal/adapters/notify"
	"github.com/jackinabox86/prun-site-alpha-sub001/internal/adapters/storage"
	"github.com/jackinabox86/prun-site-alpha-sub001/internal/chain"
	"github.com/jackinabox86/prun-site-alpha-sub001/internal/domain"
	"github.com/jackinabox86/prun-site-alpha-sub001/internal/ports"
	"github.com/jackinabox86/prun-site-alpha-sub001/internal/pricing"
	"github.com/jackinabox86/prun-site-alpha-sub001/internal/server"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	ticker := flag.String("ticker", "", "ticker to evaluate (one-shot mode)")
	demand := flag.Float64("demand", 0, "required units/day at the root (0 = nominal capacity)")
	priceField := flag.String("price", "", "price field: bid|ask|pp7|pp30 (overrides config)")
	serve := flag.Bool("serve", false, "start the HTTP API instead of a one-shot evaluation")
	tree := flag.Bool("tree", false, "print the resolved chain tree")
	topN := flag.Int("top", 0, "limit ranked options printed (0 = config default)")
	forceMake := flag.String("force-make", "", "comma-separated tickers that must be made")
	forceBuy := flag.String("force-buy", "", "comma-separated tickers that must be bought")
	forceRecipe := flag.String("force-recipe", "", "comma-separated recipe IDs to restrict to")
	excludeRecipe := flag.String("exclude-recipe", "", "comma-separated recipe IDs to skip")
	bestRecipe := flag.String("best-recipe", "", "TICKER=RECIPE_ID pairs, comma-separated")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	setupLogger(cfg.Log)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	field := cfg.Engine.PriceField
	if *priceField != "" {
		field = *priceField
	}
	pf, err := domain.ParsePriceField(field)
	if err != nil {
		slog.Error("invalid price field", "err", err, "field", field)
		os.Exit(1)
	}

	slog.Info("prun starting",
		"config", *configPath,
		"source", cfg.Source.Kind,
		"price_field", pf,
		"serve", *serve,
	)

	store, err := storage.NewSQLiteStorage(cfg.Storage.DSN)
	if err != nil {
		slog.Error("failed to open storage", "err", err, "dsn", cfg.Storage.DSN)
		os.Exit(1)
	}
	defer store.Close()

	recipes, prices, err := buildSources(ctx, cfg, store)
	if err != nil {
		slog.Error("failed to build data sources", "err", err)
		os.Exit(1)
	}

	limit := cfg.Engine.TopN
	if *topN > 0 {
		limit = *topN
	}
	notifier := notify.NewConsole(limit, *tree)

	planner := chain.NewPlanner(recipes, prices, store, notifier, chain.Config{
		PriceField:   pf,
		OverheadRate: cfg.Engine.OverheadRate,
		MaxDepth:     cfg.Engine.MaxDepth,
	})

	if *serve {
		srv := server.New(cfg.Server.Addr, planner, prices, cfg.CacheMaxAge())
		if err := srv.Run(ctx); err != nil {
			slog.Error("server exited with error", "err", err)
			os.Exit(1)
		}
		slog.Info("prun stopped cleanly")
		return
	}

	if *ticker == "" {
		slog.Error("either -ticker or -serve is required")
		flag.Usage()
		os.Exit(1)
	}

	req := chain.Request{
		Ticker:     strings.ToUpper(strings.TrimSpace(*ticker)),
		Demand:     *demand,
		PriceField: pf,
		Overrides:  domain.ParseOverrides(*forceMake, *forceBuy, *forceRecipe, *excludeRecipe, *bestRecipe),
		TopN:       limit,
	}

	report, err := planner.Run(ctx, req)
	if err != nil {
		slog.Error("evaluation failed", "err", err, "ticker", req.Ticker)
		os.Exit(1)
	}

	slog.Info("evaluation complete",
		"ticker", report.Ticker,
		"options", len(report.Options),
		"condensed", len(report.Condensed),
	)
}

// buildSources arma recetas y precios según source.kind.
func buildSources(ctx context.Context, cfg *config.Config, store *storage.SQLiteStorage) (ports.RecipeSource, ports.PriceSource, error) {
	smoother := pricing.NewSmoother(cfg.Pricing.WindowDays, cfg.Pricing.LongWindowDays, cfg.Pricing.ClipFactor)

	switch cfg.Source.Kind {
	case "s3":
		blobStore, err := blob.New(ctx, blob.Config{
			Bucket:    cfg.Blob.Bucket,
			Region:    cfg.Blob.Region,
			Endpoint:  cfg.Blob.Endpoint,
			PathStyle: cfg.Blob.PathStyle,
		})
		if err != nil {
			return nil, nil, err
		}
		return blobStore, pricing.NewSource(blobStore, blobStore, smoother), nil

	case "sqlite":
		// Modo offline: precios y trades desde el histórico local, el
		// catálogo de recetas sigue saliendo de FIO.
		client := fio.NewClient(cfg.Source.FIOBase)
		return client, pricing.NewSource(store, store, smoother), nil

	default: // fio
		client := fio.NewClient(cfg.Source.FIOBase)
		return client, client, nil
	}
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}

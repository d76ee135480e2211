package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/helioretail/cartkit/api/routes"
	cartsvc "github.com/helioretail/cartkit/internal/cart"
	"github.com/helioretail/cartkit/internal/catalog"
	"github.com/helioretail/cartkit/pkg/config"
	"github.com/helioretail/cartkit/pkg/logger"
	"github.com/helioretail/cartkit/pkg/metrics"
	"github.com/helioretail/cartkit/pkg/money"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	catalogClient, err := catalog.NewClient(cfg.Catalog, logg, metrics.NewCatalogMetrics(registry))
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog client", err)
		os.Exit(1)
	}

	loader, err := cartsvc.NewService(catalogClient, cfg.Catalog.InitialLimit)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	formatter, err := money.New(cfg.Format)
	if err != nil {
		logg.Error(context.Background(), "failed to create currency formatter", err)
		os.Exit(1)
	}

	// One store per process: the session lives and dies with the server.
	store := cartsvc.NewStore(loader, cartsvc.StoreConfig{
		TaxRate:       cfg.Pricing.TaxRateDecimal(),
		EstimateDelay: cfg.Pricing.ShippingEstimateDelay,
	}, logg)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting cart api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, store, formatter, registry),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "cart api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

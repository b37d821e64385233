package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/orderpulse/backend/api/controllers"
	"github.com/orderpulse/backend/api/routes"
	"github.com/orderpulse/backend/internal/analytics"
	"github.com/orderpulse/backend/internal/catalog"
	"github.com/orderpulse/backend/internal/orders"
	"github.com/orderpulse/backend/internal/products"
	"github.com/orderpulse/backend/pkg/config"
	"github.com/orderpulse/backend/pkg/db"
	"github.com/orderpulse/backend/pkg/logger"
	"github.com/orderpulse/backend/pkg/metrics"
	"github.com/orderpulse/backend/pkg/migrate"
	"github.com/orderpulse/backend/pkg/redis"
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

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	// The dashboard cache is optional. Without redis configured every
	// dashboard request recomputes from the store.
	var cachePinger controllers.Pinger
	var dashCache analytics.DashboardCache
	if cfg.Redis.Enabled() {
		redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		cachePinger = redisClient
		dashCache = redisClient
	} else {
		logg.Warn(context.Background(), "redis not configured, dashboard caching disabled")
	}

	registry := prometheus.NewRegistry()
	aggMetrics := metrics.NewAggregationMetrics(registry)

	analyticsService, err := analytics.NewService(analytics.ServiceParams{
		Orders:   orders.NewRepository(dbClient.DB()),
		Products: products.NewRepository(dbClient.DB()),
		Requests: catalog.NewRepository(dbClient.DB()),
		Config:   cfg.Analytics,
		Logger:   logg,
		Metrics:  aggMetrics,
		Cache:    dashCache,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create analytics service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.RouterParams{
			Config:    cfg,
			Logger:    logg,
			DB:        dbClient,
			Cache:     cachePinger,
			Analytics: analyticsService,
			Registry:  registry,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

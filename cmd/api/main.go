package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/angelmondragon/sales-analytics/api"
	"github.com/angelmondragon/sales-analytics/api/controllers"
	"github.com/angelmondragon/sales-analytics/api/routes"
	"github.com/angelmondragon/sales-analytics/internal/analytics"
	"github.com/angelmondragon/sales-analytics/internal/analytics/query"
	"github.com/angelmondragon/sales-analytics/pkg/bigquery"
	"github.com/angelmondragon/sales-analytics/pkg/config"
	"github.com/angelmondragon/sales-analytics/pkg/db"
	"github.com/angelmondragon/sales-analytics/pkg/logger"
	"github.com/angelmondragon/sales-analytics/pkg/metrics"
	"github.com/angelmondragon/sales-analytics/pkg/migrate"
	"github.com/angelmondragon/sales-analytics/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger) (err error) {
	var closers []func() error
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			err = multierr.Append(err, closers[i]())
		}
	}()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	closers = append(closers, dbClient.Close)

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		return err
	}

	readiness := []controllers.Dependency{{Name: "database", Ping: dbClient.Ping}}
	params := routes.Params{Config: cfg, Logger: logg}

	if cfg.Redis.Enabled() {
		redisClient, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return err
		}
		closers = append(closers, redisClient.Close)
		readiness = append(readiness, controllers.Dependency{Name: "redis", Ping: redisClient.Ping})
		params.ReportCache = redisClient
		params.RateLimiter = redisClient
	}

	var ledger analytics.Ledger
	if cfg.Analytics.UsesBigQuery() {
		bqClient, err := bigquery.NewClient(ctx, cfg.GCP, cfg.BigQuery, logg)
		if err != nil {
			return err
		}
		closers = append(closers, bqClient.Close)
		readiness = append(readiness, controllers.Dependency{Name: "bigquery", Ping: bqClient.Ping})
		if ledger, err = query.NewBigQueryLedger(bqClient, bqClient.OrdersTable()); err != nil {
			return err
		}
	} else {
		if ledger, err = query.NewSQLLedger(dbClient.DB()); err != nil {
			return err
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	service, err := analytics.NewService(analytics.ServiceParams{
		Ledger:  ledger,
		Policy:  analytics.WindowPolicyFromConfig(cfg.Analytics),
		Metrics: metrics.NewViewMetrics(registry),
		Logger:  logg,
	})
	if err != nil {
		return err
	}

	params.Analytics = service
	params.Gatherer = registry
	params.Readiness = readiness

	server := api.NewServer(cfg.App, routes.NewRouter(params))

	logCtx := logg.WithFields(context.Background(), map[string]any{
		"env":    cfg.App.Env,
		"addr":   server.Addr,
		"ledger": cfg.Analytics.LedgerBackend,
		"cache":  params.ReportCache != nil && cfg.Analytics.CacheTTL > 0,
	})
	logg.Info(logCtx, "starting api server")

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logg.Info(logCtx, "shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

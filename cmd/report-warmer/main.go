package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	analyticscontrollers "github.com/angelmondragon/sales-analytics/api/controllers/analytics"
	"github.com/angelmondragon/sales-analytics/internal/analytics"
	"github.com/angelmondragon/sales-analytics/internal/analytics/query"
	"github.com/angelmondragon/sales-analytics/internal/cron"
	"github.com/angelmondragon/sales-analytics/pkg/bigquery"
	"github.com/angelmondragon/sales-analytics/pkg/config"
	"github.com/angelmondragon/sales-analytics/pkg/db"
	"github.com/angelmondragon/sales-analytics/pkg/logger"
	"github.com/angelmondragon/sales-analytics/pkg/metrics"
	"github.com/angelmondragon/sales-analytics/pkg/redis"
)

const serviceName = "report-warmer"

func main() {
	logg := logger.New(logger.Options{ServiceName: serviceName})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: serviceName,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	if !cfg.Redis.Enabled() || cfg.Analytics.CacheTTL <= 0 {
		logg.Error(context.Background(), "report warmer needs redis and a positive cache ttl", errors.New("report cache disabled"))
		os.Exit(1)
	}

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

	var ledger analytics.Ledger
	if cfg.Analytics.UsesBigQuery() {
		bqClient, err := bigquery.NewClient(context.Background(), cfg.GCP, cfg.BigQuery, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap bigquery", err)
			os.Exit(1)
		}
		defer bqClient.Close()
		ledger, err = query.NewBigQueryLedger(bqClient, bqClient.OrdersTable())
		if err != nil {
			logg.Error(context.Background(), "failed to create bigquery ledger", err)
			os.Exit(1)
		}
	} else {
		ledger, err = query.NewSQLLedger(dbClient.DB())
		if err != nil {
			logg.Error(context.Background(), "failed to create sql ledger", err)
			os.Exit(1)
		}
	}

	service, err := analytics.NewService(analytics.ServiceParams{
		Ledger:  ledger,
		Policy:  analytics.WindowPolicyFromConfig(cfg.Analytics),
		Metrics: metrics.NewViewMetrics(prometheus.DefaultRegisterer),
		Logger:  logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create analytics service", err)
		os.Exit(1)
	}

	warmer, err := analyticscontrollers.NewWarmer(analyticscontrollers.Deps{
		Service: service,
		Cache:   redisClient,
		Config:  cfg.Analytics,
		Logger:  logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create report warmer", err)
		os.Exit(1)
	}
	job, err := cron.NewReportWarmJob(warmer, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create warm job", err)
		os.Exit(1)
	}

	lock, err := cron.NewRedisLock(redisClient, redisClient.LockKey(lockName(cfg.App.Env)), cfg.Analytics.WarmInterval)
	if err != nil {
		logg.Error(context.Background(), "failed to create scheduler lock", err)
		os.Exit(1)
	}

	scheduler, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: cron.NewRegistry(job),
		Lock:     lock,
		Metrics:  metrics.NewJobMetrics(prometheus.DefaultRegisterer),
		Interval: cfg.Analytics.WarmInterval,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create scheduler", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"interval": scheduler.Interval().String(),
		"ledger":   cfg.Analytics.LedgerBackend,
	})
	logg.Info(ctx, "starting report warmer")

	if err := scheduler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "report warmer stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "report warmer shutting down gracefully")
}

func lockName(env string) string {
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf("report-warmer:%s", env)
}

package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/angelmondragon/sales-analytics/api/responses"
	"github.com/angelmondragon/sales-analytics/pkg/config"
	pkgerrors "github.com/angelmondragon/sales-analytics/pkg/errors"
	"github.com/angelmondragon/sales-analytics/pkg/logger"
)

const (
	envHeader    = "X-SalesAnalytics-Env"
	readyTimeout = 2 * time.Second
)

// Dependency is a named backend checked by the readiness probe.
type Dependency struct {
	Name string
	Ping func(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every dependency and fails with 503 when any is down.
func HealthReady(cfg *config.Config, logg *logger.Logger, deps ...Dependency) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		checks := make(map[string]string, len(deps))
		var failed *pkgerrors.Error
		for _, dep := range deps {
			if dep.Ping == nil {
				continue
			}
			if err := dep.Ping(ctx); err != nil {
				checks[dep.Name] = "down"
				if failed == nil {
					failed = pkgerrors.Wrap(pkgerrors.CodeDependency, err, dep.Name+" unavailable")
				}
				continue
			}
			checks[dep.Name] = "up"
		}

		if failed != nil {
			responses.WriteError(r.Context(), logg, w, failed.WithDetails(checks))
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}

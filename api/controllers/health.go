package controllers

import (
	"context"
	"net/http"

	"github.com/orderpulse/backend/api/responses"
	"github.com/orderpulse/backend/pkg/config"
	pkgerrors "github.com/orderpulse/backend/pkg/errors"
	"github.com/orderpulse/backend/pkg/logger"
)

const envHeader = "X-OrderPulse-Env"

// Pinger is the dependency health surface. Satisfied by *db.Client and
// *redis.Client.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports readiness by pinging the hard dependencies. Redis is
// optional; a nil cache client is skipped, and a failing one only degrades
// the report since the engine recomputes on cache misses anyway.
func HealthReady(cfg *config.Config, logg *logger.Logger, database Pinger, cache Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		w.Header().Set(envHeader, cfg.App.Env)

		checks := map[string]string{"database": "ok"}
		if err := database.Ping(ctx); err != nil {
			responses.WriteError(ctx, logg, w,
				pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database not reachable"))
			return
		}
		if cache != nil {
			checks["cache"] = "ok"
			if err := cache.Ping(ctx); err != nil {
				checks["cache"] = "degraded"
				logg.Warn(ctx, "redis ping failed during readiness check")
			}
		}

		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}

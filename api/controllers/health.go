package controllers

import (
	"net/http"

	"github.com/stitchcairo/storefront-backend/api/responses"
	"github.com/stitchcairo/storefront-backend/pkg/config"
	"github.com/stitchcairo/storefront-backend/pkg/db"
	"github.com/stitchcairo/storefront-backend/pkg/logger"
	"github.com/stitchcairo/storefront-backend/pkg/redis"
)

// Health reports liveness plus the state of the storefront's dependencies.
// A failing ping degrades the response to 503 so the platform can rotate the
// instance.
func Health(cfg *config.Config, logg *logger.Logger, dbPing db.Pinger, redisPing redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		checks := map[string]string{}
		healthy := true

		if dbPing != nil {
			checks["database"] = "ok"
			if err := dbPing.Ping(ctx); err != nil {
				checks["database"] = "unreachable"
				healthy = false
				if logg != nil {
					logg.Error(ctx, "health database ping failed", err)
				}
			}
		}

		if redisPing != nil {
			checks["redis"] = "ok"
			if err := redisPing.Ping(ctx); err != nil {
				checks["redis"] = "unreachable"
				healthy = false
				if logg != nil {
					logg.Error(ctx, "health redis ping failed", err)
				}
			}
		}

		status := "ready"
		httpStatus := http.StatusOK
		if !healthy {
			status = "degraded"
			httpStatus = http.StatusServiceUnavailable
		}

		responses.WriteSuccessStatus(w, httpStatus, map[string]any{
			"status": status,
			"env":    cfg.App.Env,
			"checks": checks,
		})
	}
}

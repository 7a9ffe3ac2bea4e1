package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/lucasmedrano/tourmarket-backend/api/responses"
	"github.com/lucasmedrano/tourmarket-backend/pkg/config"
	"github.com/lucasmedrano/tourmarket-backend/pkg/db"
	pkgerrors "github.com/lucasmedrano/tourmarket-backend/pkg/errors"
	"github.com/lucasmedrano/tourmarket-backend/pkg/logger"
	"github.com/lucasmedrano/tourmarket-backend/pkg/mail"
	"github.com/lucasmedrano/tourmarket-backend/pkg/redis"
)

const readinessTimeout = 5 * time.Second

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-TourMarket-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the backing stores before reporting ready.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-TourMarket-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		checks := map[string]string{}
		if dbP != nil {
			if err := dbP.Ping(ctx); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database not ready"))
				return
			}
			checks["database"] = "ok"
		}
		if redisP != nil {
			if err := redisP.Ping(ctx); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis not ready"))
				return
			}
			checks["redis"] = "ok"
		}

		checks["status"] = "ready"
		responses.WriteSuccess(w, checks)
	}
}

type mailHealthChecker interface {
	Health() mail.Health
}

// HealthEmail reports whether the SMTP relay is reachable.
func HealthEmail(client mailHealthChecker, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if client == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "mail client unavailable"))
			return
		}

		health := client.Health()
		if health.Status != mail.StatusUp {
			responses.WriteSuccessStatus(w, http.StatusServiceUnavailable, health)
			return
		}
		responses.WriteSuccess(w, health)
	}
}

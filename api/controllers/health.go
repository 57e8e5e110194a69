package controllers

import (
	"context"
	"net/http"

	"github.com/trailheadsupply/storefront/api/responses"
	"github.com/trailheadsupply/storefront/pkg/config"
	pkgerrors "github.com/trailheadsupply/storefront/pkg/errors"
	"github.com/trailheadsupply/storefront/pkg/logger"
)

type storePinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Storefront-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when the cart storage backend answers.
func HealthReady(cfg *config.Config, logg *logger.Logger, store storePinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Storefront-Env", cfg.App.Env)

		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart storage unavailable"))
			return
		}
		if err := store.Ping(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cart storage not reachable"))
			return
		}

		responses.WriteSuccess(w, map[string]string{
			"status":  "ready",
			"backend": cfg.Storage.Backend,
		})
	}
}

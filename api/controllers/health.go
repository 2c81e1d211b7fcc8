package controllers

import (
	"context"
	"net/http"

	"github.com/itaoit/itstock-backend/api/responses"
	"github.com/itaoit/itstock-backend/pkg/config"
	pkgerrors "github.com/itaoit/itstock-backend/pkg/errors"
	"github.com/itaoit/itstock-backend/pkg/logger"
)

// Pinger is any dependency that can answer a cheap liveness probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-ITStock-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady probes the spreadsheet and, when configured, the cache backend.
// A nil pinger is skipped.
func HealthReady(cfg *config.Config, logg *logger.Logger, sheet, cacheBackend Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-ITStock-Env", cfg.App.Env)

		if sheet != nil {
			if err := sheet.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, "spreadsheet unreachable"))
				return
			}
		}
		if cacheBackend != nil {
			if err := cacheBackend.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cache unreachable"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}

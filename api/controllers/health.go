package controllers

import (
	"context"
	"net/http"

	"github.com/Amey8050/Dukaan-clone-sub000/api/responses"
	"github.com/Amey8050/Dukaan-clone-sub000/pkg/config"
	pkgerrors "github.com/Amey8050/Dukaan-clone-sub000/pkg/errors"
	"github.com/Amey8050/Dukaan-clone-sub000/pkg/logger"
)

// Pinger is the health surface of an external dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthLive reports process liveness.
func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Dukaan-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports readiness: every registered dependency must answer.
func HealthReady(cfg *config.Config, logg *logger.Logger, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Dukaan-Env", cfg.App.Env)
		for name, dep := range deps {
			if dep == nil {
				continue
			}
			if err := dep.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, name+" unavailable"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}

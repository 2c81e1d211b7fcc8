package controllers

import (
	"net/http"

	"github.com/itaoit/itstock-backend/api/responses"
	"github.com/itaoit/itstock-backend/internal/reports"
	pkgerrors "github.com/itaoit/itstock-backend/pkg/errors"
	"github.com/itaoit/itstock-backend/pkg/logger"
)

// Dashboard returns the stock and ticket KPIs for the landing page.
func Dashboard(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "report service unavailable"))
			return
		}

		summary, err := svc.Summary(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, summary)
	}
}

package controllers

import (
	"net/http"

	"github.com/itaoit/itstock-backend/api/responses"
	"github.com/itaoit/itstock-backend/pkg/config"
	pkgerrors "github.com/itaoit/itstock-backend/pkg/errors"
	"github.com/itaoit/itstock-backend/pkg/logger"
	"github.com/itaoit/itstock-backend/pkg/security"
	"github.com/itaoit/itstock-backend/pkg/sheets/sheetdb"
)

// AdminBootstrap re-runs tab and header creation against the live
// spreadsheet. Safe to call repeatedly; existing tabs and the seeded admin
// account are left alone.
func AdminBootstrap(api sheetdb.TabAdmin, cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if api == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "spreadsheet client unavailable"))
			return
		}

		adminHash, err := security.HashPassword(cfg.Sheets.DefaultAdminPassword, cfg.Password)
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hashing default admin password"))
			return
		}

		if err := sheetdb.Bootstrap(r.Context(), api, logg, adminHash); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "bootstrapped"})
	}
}

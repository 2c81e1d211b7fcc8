package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/itaoit/itstock-backend/api/responses"
	"github.com/itaoit/itstock-backend/internal/importer"
	pkgerrors "github.com/itaoit/itstock-backend/pkg/errors"
	"github.com/itaoit/itstock-backend/pkg/logger"
)

// 10 MiB is generous for a workbook headed into a spreadsheet tab.
const maxUploadBytes = 10 << 20

// ImportUpload bulk-loads one tab from an uploaded CSV or XLSX file. The
// multipart field must be named "file".
func ImportUpload(svc importer.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "import service unavailable"))
			return
		}

		kind, err := importer.ParseKind(chi.URLParam(r, "kind"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "upload must be multipart form data"))
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, `multipart field "file" is required`))
			return
		}
		defer file.Close()

		result, err := svc.Import(r.Context(), kind, header.Filename, file)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

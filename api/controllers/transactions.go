package controllers

import (
	"net/http"

	"github.com/itaoit/itstock-backend/api/responses"
	"github.com/itaoit/itstock-backend/api/validators"
	"github.com/itaoit/itstock-backend/internal/reports"
	pkgerrors "github.com/itaoit/itstock-backend/pkg/errors"
	"github.com/itaoit/itstock-backend/pkg/logger"
)

func txnFilterFromQuery(r *http.Request) reports.TxnFilter {
	q := r.URL.Query()
	return reports.TxnFilter{
		Range: reports.RangeKey(validators.SanitizeString(q.Get("range"))),
		From:  validators.SanitizeString(q.Get("from")),
		To:    validators.SanitizeString(q.Get("to")),
		Query: validators.SanitizeString(q.Get("q")),
	}
}

// TransactionsList returns the movement history inside the requested range.
func TransactionsList(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "report service unavailable"))
			return
		}

		txns, err := svc.Transactions(r.Context(), txnFilterFromQuery(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, txns)
	}
}

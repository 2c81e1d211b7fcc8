package controllers

import (
	"net/http"
	"time"

	"github.com/itaoit/itstock-backend/api/middleware"
	"github.com/itaoit/itstock-backend/api/responses"
	"github.com/itaoit/itstock-backend/api/validators"
	"github.com/itaoit/itstock-backend/internal/stock"
	pkgerrors "github.com/itaoit/itstock-backend/pkg/errors"
	"github.com/itaoit/itstock-backend/pkg/logger"
)

type issueRequest struct {
	Branch string            `json:"branch" validate:"required"`
	Note   string            `json:"note"`
	Lines  []stock.IssueLine `json:"lines" validate:"required,min=1,dive"`
}

func (req issueRequest) toInput() stock.IssueInput {
	return stock.IssueInput{
		Branch: validators.SanitizeString(req.Branch),
		Note:   validators.SanitizeString(req.Note),
		Lines:  req.Lines,
	}
}

// StockIssue posts a batch of OUT movements for the acting user.
func StockIssue(svc stock.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "stock service unavailable"))
			return
		}

		var req issueRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		actor := middleware.UsernameFromContext(r.Context())
		result, err := svc.IssueBatch(r.Context(), actor, req.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

type receiveRequest struct {
	Code      string `json:"code" validate:"required"`
	Qty       int    `json:"qty" validate:"required,min=1"`
	Branch    string `json:"branch" validate:"required"`
	Note      string `json:"note"`
	Timestamp string `json:"timestamp"`
}

// StockReceive posts one IN movement. An optional timestamp backdates the
// entry to when the goods actually arrived.
func StockReceive(svc stock.Service, loc *time.Location, logg *logger.Logger) http.HandlerFunc {
	if loc == nil {
		loc = time.Local
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "stock service unavailable"))
			return
		}

		var req receiveRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := stock.ReceiveInput{
			Code:   validators.SanitizeString(req.Code),
			Qty:    req.Qty,
			Branch: validators.SanitizeString(req.Branch),
			Note:   validators.SanitizeString(req.Note),
		}
		if req.Timestamp != "" {
			ts, err := time.ParseInLocation(stock.TimeLayout, req.Timestamp, loc)
			if err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeValidation, err, "timestamp must look like 2006-01-02 15:04:05"))
				return
			}
			input.Timestamp = &ts
		}

		actor := middleware.UsernameFromContext(r.Context())
		txn, err := svc.Receive(r.Context(), actor, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, txn)
	}
}

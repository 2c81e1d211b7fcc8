package controllers

import (
	"net/http"
	"time"

	"github.com/itaoit/itstock-backend/api/middleware"
	"github.com/itaoit/itstock-backend/api/responses"
	"github.com/itaoit/itstock-backend/api/validators"
	"github.com/itaoit/itstock-backend/internal/reports"
	"github.com/itaoit/itstock-backend/internal/tickets"
	"github.com/itaoit/itstock-backend/pkg/enums"
	pkgerrors "github.com/itaoit/itstock-backend/pkg/errors"
	"github.com/itaoit/itstock-backend/pkg/logger"
)

// TicketsList returns tickets, optionally narrowed by range and status
// query parameters.
func TicketsList(svc tickets.Service, loc *time.Location, logg *logger.Logger) http.HandlerFunc {
	if loc == nil {
		loc = time.Local
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ticket service unavailable"))
			return
		}

		q := r.URL.Query()
		filter := tickets.ListFilter{
			Status: enums.TicketStatus(validators.SanitizeString(q.Get("status"))),
		}

		rangeKey := validators.SanitizeString(q.Get("range"))
		if rangeKey != "" || q.Get("from") != "" || q.Get("to") != "" {
			start, end, err := reports.ResolveRange(
				reports.RangeKey(rangeKey),
				validators.SanitizeString(q.Get("from")),
				validators.SanitizeString(q.Get("to")),
				time.Now().In(loc),
			)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			filter.From = &start
			filter.To = &end
		}

		list, err := svc.List(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

type ticketCreateRequest struct {
	Branch      string `json:"branch" validate:"required"`
	Reporter    string `json:"reporter"`
	Category    string `json:"category" validate:"required"`
	Description string `json:"description" validate:"required"`
	Note        string `json:"note"`
}

func (req ticketCreateRequest) toInput() tickets.CreateTicketInput {
	return tickets.CreateTicketInput{
		Branch:      validators.SanitizeString(req.Branch),
		Reporter:    validators.SanitizeString(req.Reporter),
		Category:    validators.SanitizeString(req.Category),
		Description: validators.SanitizeString(req.Description),
		Note:        validators.SanitizeString(req.Note),
	}
}

// TicketsCreate records a new trouble report for the acting user.
func TicketsCreate(svc tickets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ticket service unavailable"))
			return
		}

		var req ticketCreateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		actor := middleware.UsernameFromContext(r.Context())
		ticket, err := svc.Create(r.Context(), actor, req.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, ticket)
	}
}

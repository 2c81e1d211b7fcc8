package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/itaoit/itstock-backend/api/responses"
	"github.com/itaoit/itstock-backend/api/validators"
	"github.com/itaoit/itstock-backend/internal/inventory"
	pkgerrors "github.com/itaoit/itstock-backend/pkg/errors"
	"github.com/itaoit/itstock-backend/pkg/logger"
)

// ItemsList returns all items, optionally narrowed by the q query parameter.
func ItemsList(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		items, err := svc.List(r.Context(), validators.SanitizeString(r.URL.Query().Get("q")))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, items)
	}
}

// ItemsLowStock returns the active items at or under their reorder point.
func ItemsLowStock(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		items, err := svc.LowStock(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, items)
	}
}

type itemUpsertRequest struct {
	Code         string `json:"code"`
	Category     string `json:"category" validate:"required"`
	Name         string `json:"name" validate:"required"`
	Unit         string `json:"unit"`
	QtyOnHand    int    `json:"qty_on_hand" validate:"min=0"`
	ReorderPoint int    `json:"reorder_point" validate:"min=0"`
	Location     string `json:"location"`
	Active       bool   `json:"active"`
}

func (req itemUpsertRequest) toInput() inventory.UpsertItemInput {
	return inventory.UpsertItemInput{
		Code:         validators.SanitizeString(req.Code),
		Category:     validators.SanitizeString(req.Category),
		Name:         validators.SanitizeString(req.Name),
		Unit:         validators.SanitizeString(req.Unit),
		QtyOnHand:    req.QtyOnHand,
		ReorderPoint: req.ReorderPoint,
		Location:     validators.SanitizeString(req.Location),
		Active:       req.Active,
	}
}

type itemUpsertResponse struct {
	Item    *inventory.Item `json:"item"`
	Updated bool            `json:"updated"`
}

// ItemsUpsert creates or replaces an item. A blank code asks the service to
// generate the next one in the category sequence.
func ItemsUpsert(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		var req itemUpsertRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, updated, err := svc.Upsert(r.Context(), req.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status := http.StatusCreated
		if updated {
			status = http.StatusOK
		}
		responses.WriteSuccessStatus(w, status, itemUpsertResponse{Item: item, Updated: updated})
	}
}

// ItemsDelete removes the item addressed by the code path parameter.
func ItemsDelete(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		code := validators.SanitizeString(chi.URLParam(r, "code"))
		if code == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "item code is required"))
			return
		}

		if err := svc.Delete(r.Context(), code); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"deleted": code})
	}
}

type generateCodeRequest struct {
	Category string `json:"category" validate:"required"`
}

// ItemsGenerateCode previews the next code for a category without saving.
func ItemsGenerateCode(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		var req generateCodeRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		code, err := svc.GenerateCode(r.Context(), validators.SanitizeString(req.Category))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"code": code})
	}
}

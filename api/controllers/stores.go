package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Amey8050/Dukaan-clone-sub000/api/middleware"
	"github.com/Amey8050/Dukaan-clone-sub000/api/responses"
	"github.com/Amey8050/Dukaan-clone-sub000/api/validators"
	"github.com/Amey8050/Dukaan-clone-sub000/internal/stores"
	"github.com/Amey8050/Dukaan-clone-sub000/pkg/db/models"
	"github.com/Amey8050/Dukaan-clone-sub000/pkg/enums"
	pkgerrors "github.com/Amey8050/Dukaan-clone-sub000/pkg/errors"
	"github.com/Amey8050/Dukaan-clone-sub000/pkg/logger"
)

// StorefrontStore returns the public store profile for a slug.
func StorefrontStore(svc *stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := svc.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stores.FromModel(store))
	}
}

// VendorStores lists the stores the caller owns.
func VendorStores(svc *stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}
		owned, err := svc.ListByOwner(r.Context(), ownerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		out := make([]*stores.StoreDTO, 0, len(owned))
		for i := range owned {
			out = append(out, stores.FromModel(&owned[i]))
		}
		responses.WriteSuccess(w, out)
	}
}

type updateStoreRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Currency    *string `json:"currency,omitempty"`
}

// VendorUpdateStore applies a partial update to one of the caller's stores.
func VendorUpdateStore(svc *stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}
		storeID, err := pathUUID(r, "storeID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateStoreRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := stores.UpdateStoreInput{
			Name:        payload.Name,
			Description: payload.Description,
		}
		if payload.Currency != nil {
			currency, err := enums.ParseCurrency(*payload.Currency)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid currency"))
				return
			}
			input.Currency = &currency
		}

		updated, err := svc.UpdateStore(r.Context(), ownerID, storeID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stores.FromModel(updated))
	}
}

// resolveStore turns the {slug} path segment into the tenant record.
func resolveStore(r *http.Request, svc *stores.Service) (*models.Store, error) {
	return svc.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
}

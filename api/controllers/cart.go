package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/Amey8050/Dukaan-clone-sub000/api/middleware"
	"github.com/Amey8050/Dukaan-clone-sub000/api/responses"
	"github.com/Amey8050/Dukaan-clone-sub000/api/validators"
	cartsvc "github.com/Amey8050/Dukaan-clone-sub000/internal/cart"
	"github.com/Amey8050/Dukaan-clone-sub000/internal/stores"
	"github.com/Amey8050/Dukaan-clone-sub000/pkg/logger"
)

// CartView returns the caller's cart for the store, creating it on first use.
func CartView(svc *cartsvc.Service, storeSvc *stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := resolveStore(r, storeSvc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.GetView(r.Context(), store.ID, middleware.IdentityFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

type addItemRequest struct {
	ProductID uuid.UUID  `json:"product_id" validate:"required"`
	VariantID *uuid.UUID `json:"variant_id,omitempty"`
	Quantity  int        `json:"quantity" validate:"required,min=1"`
}

// CartAddItem adds quantity of a product line to the caller's cart.
func CartAddItem(svc *cartsvc.Service, storeSvc *stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := resolveStore(r, storeSvc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.UpsertItem(r.Context(), store.ID, middleware.IdentityFromContext(r.Context()), cartsvc.UpsertItemInput{
			ProductID:     payload.ProductID,
			VariantID:     payload.VariantID,
			DeltaQuantity: payload.Quantity,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

type setQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

// CartSetItemQuantity overwrites one line's quantity.
func CartSetItemQuantity(svc *cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, err := pathUUID(r, "itemID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload setQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.SetItemQuantity(r.Context(), middleware.IdentityFromContext(r.Context()), itemID, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// CartRemoveItem deletes one line from the caller's cart.
func CartRemoveItem(svc *cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, err := pathUUID(r, "itemID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.RemoveItem(r.Context(), middleware.IdentityFromContext(r.Context()), itemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// CartClear empties the caller's cart. Clearing an absent cart succeeds.
func CartClear(svc *cartsvc.Service, storeSvc *stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := resolveStore(r, storeSvc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Clear(r.Context(), store.ID, middleware.IdentityFromContext(r.Context())); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"cleared": true})
	}
}

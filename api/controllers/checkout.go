package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/Amey8050/Dukaan-clone-sub000/api/middleware"
	"github.com/Amey8050/Dukaan-clone-sub000/api/responses"
	"github.com/Amey8050/Dukaan-clone-sub000/api/validators"
	checkoutsvc "github.com/Amey8050/Dukaan-clone-sub000/internal/checkout"
	"github.com/Amey8050/Dukaan-clone-sub000/internal/stores"
	"github.com/Amey8050/Dukaan-clone-sub000/pkg/enums"
	pkgerrors "github.com/Amey8050/Dukaan-clone-sub000/pkg/errors"
	"github.com/Amey8050/Dukaan-clone-sub000/pkg/logger"
	"github.com/Amey8050/Dukaan-clone-sub000/pkg/types"
)

type checkoutResponse struct {
	Order orderResponse `json:"order"`
}

type checkoutRequest struct {
	ShippingAddress types.Address    `json:"shipping_address" validate:"required"`
	BillingAddress  *types.Address   `json:"billing_address,omitempty"`
	PaymentMethod   *string          `json:"payment_method,omitempty"`
	Notes           string           `json:"notes,omitempty"`
	Tax             *decimal.Decimal `json:"tax,omitempty"`
	ShippingCost    *decimal.Decimal `json:"shipping_cost,omitempty"`
	Discount        *decimal.Decimal `json:"discount,omitempty"`
}

// Checkout converts the caller's cart into an order.
func Checkout(svc *checkoutsvc.Service, storeSvc *stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := resolveStore(r, storeSvc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := checkoutsvc.Input{
			StoreID:         store.ID,
			Identity:        middleware.IdentityFromContext(r.Context()),
			ShippingAddress: payload.ShippingAddress,
			Notes:           payload.Notes,
			Currency:        store.Currency,
		}
		if payload.BillingAddress != nil {
			input.BillingAddress = *payload.BillingAddress
		}
		if payload.PaymentMethod != nil {
			method := enums.PaymentMethod(*payload.PaymentMethod)
			if !method.IsValid() {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method"))
				return
			}
			input.PaymentMethod = &method
		}
		if payload.Tax != nil {
			input.Tax = *payload.Tax
		}
		if payload.ShippingCost != nil {
			input.ShippingCost = *payload.ShippingCost
		}
		if payload.Discount != nil {
			input.Discount = *payload.Discount
		}

		order, err := svc.Execute(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessMessage(w, http.StatusCreated, "order placed", checkoutResponse{Order: newOrderResponse(order)})
	}
}

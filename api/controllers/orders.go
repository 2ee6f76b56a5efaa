package controllers

import (
	"net/http"
	"strings"

	"github.com/Amey8050/Dukaan-clone-sub000/api/responses"
	"github.com/Amey8050/Dukaan-clone-sub000/api/validators"
	"github.com/Amey8050/Dukaan-clone-sub000/internal/orders"
	"github.com/Amey8050/Dukaan-clone-sub000/pkg/logger"
	"github.com/Amey8050/Dukaan-clone-sub000/pkg/pagination"
)

type orderListResponse struct {
	Orders     []orderResponse `json:"orders"`
	NextCursor string          `json:"next_cursor,omitempty"`
}

// VendorListOrders pages through the caller's store orders, newest first.
func VendorListOrders(svc *orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, err := vendorStoreID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		params := pagination.Params{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		}

		page, err := svc.ListOrders(r.Context(), storeID, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp := orderListResponse{NextCursor: page.NextCursor}
		for i := range page.Orders {
			resp.Orders = append(resp.Orders, newOrderResponse(&page.Orders[i]))
		}
		responses.WriteSuccess(w, resp)
	}
}

// VendorGetOrder returns one order with its line items.
func VendorGetOrder(svc *orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, err := vendorStoreID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		orderID, err := pathUUID(r, "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.GetOrder(r.Context(), storeID, orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newOrderResponse(order))
	}
}

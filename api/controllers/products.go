package controllers

import (
	"net/http"
	"strings"

	"github.com/Amey8050/Dukaan-clone-sub000/api/responses"
	"github.com/Amey8050/Dukaan-clone-sub000/api/validators"
	"github.com/Amey8050/Dukaan-clone-sub000/internal/catalog"
	"github.com/Amey8050/Dukaan-clone-sub000/internal/stores"
	"github.com/Amey8050/Dukaan-clone-sub000/pkg/logger"
	"github.com/Amey8050/Dukaan-clone-sub000/pkg/pagination"
)

type productListResponse struct {
	Products   []productResponse `json:"products"`
	NextCursor string            `json:"next_cursor,omitempty"`
}

// StorefrontProducts lists a store's active products with cursor pagination.
func StorefrontProducts(catalogSvc *catalog.Service, storeSvc *stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := resolveStore(r, storeSvc)
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

		page, err := catalogSvc.ListStorefront(r.Context(), store.ID, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp := productListResponse{NextCursor: page.NextCursor}
		for i := range page.Products {
			resp.Products = append(resp.Products, newProductResponse(&page.Products[i]))
		}
		responses.WriteSuccess(w, resp)
	}
}

// StorefrontProduct returns one active product.
func StorefrontProduct(catalogSvc *catalog.Service, storeSvc *stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := resolveStore(r, storeSvc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := pathUUID(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := catalogSvc.StorefrontProduct(r.Context(), store.ID, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newProductResponse(product))
	}
}

package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Amey8050/Dukaan-clone-sub000/api/middleware"
	"github.com/Amey8050/Dukaan-clone-sub000/api/responses"
	"github.com/Amey8050/Dukaan-clone-sub000/api/validators"
	"github.com/Amey8050/Dukaan-clone-sub000/internal/catalog"
	"github.com/Amey8050/Dukaan-clone-sub000/pkg/enums"
	pkgerrors "github.com/Amey8050/Dukaan-clone-sub000/pkg/errors"
	"github.com/Amey8050/Dukaan-clone-sub000/pkg/logger"
)

// vendorStoreID pulls the active store from the access token.
func vendorStoreID(r *http.Request) (uuid.UUID, error) {
	storeID, ok := middleware.StoreIDFromContext(r.Context())
	if !ok {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeForbidden, "no active store on this token")
	}
	return storeID, nil
}

type variantPayload struct {
	Name  string           `json:"name" validate:"required"`
	Price *decimal.Decimal `json:"price,omitempty"`
}

type createProductRequest struct {
	Name              string           `json:"name" validate:"required"`
	Description       string           `json:"description,omitempty"`
	Status            *string          `json:"status,omitempty"`
	Price             decimal.Decimal  `json:"price" validate:"required"`
	TrackInventory    bool             `json:"track_inventory"`
	InventoryQuantity int              `json:"inventory_quantity" validate:"min=0"`
	LowStockThreshold *int             `json:"low_stock_threshold,omitempty"`
	ImageURL          string           `json:"image_url,omitempty"`
	Variants          []variantPayload `json:"variants,omitempty" validate:"omitempty,dive"`
}

// VendorCreateProduct adds a listing to the caller's store.
func VendorCreateProduct(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, err := vendorStoreID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := catalog.CreateProductInput{
			StoreID:           storeID,
			Name:              payload.Name,
			Description:       payload.Description,
			Price:             payload.Price,
			TrackInventory:    payload.TrackInventory,
			InventoryQuantity: payload.InventoryQuantity,
			LowStockThreshold: payload.LowStockThreshold,
			ImageURL:          payload.ImageURL,
		}
		if payload.Status != nil {
			status, err := enums.ParseProductStatus(*payload.Status)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
				return
			}
			input.Status = status
		}
		for _, v := range payload.Variants {
			input.Variants = append(input.Variants, catalog.VariantInput{Name: v.Name, Price: v.Price})
		}

		product, err := svc.CreateProduct(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newVendorProductResponse(product))
	}
}

// VendorListProducts lists every product in the caller's store, drafts and
// archived listings included.
func VendorListProducts(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, err := vendorStoreID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		products, err := svc.ListVendor(r.Context(), storeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		out := make([]vendorProductResponse, 0, len(products))
		for i := range products {
			out = append(out, newVendorProductResponse(&products[i]))
		}
		responses.WriteSuccess(w, out)
	}
}

// VendorGetProduct returns one product in the caller's store.
func VendorGetProduct(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, err := vendorStoreID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := pathUUID(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.GetProduct(r.Context(), storeID, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newVendorProductResponse(product))
	}
}

type updateProductRequest struct {
	Name              *string          `json:"name,omitempty"`
	Description       *string          `json:"description,omitempty"`
	Status            *string          `json:"status,omitempty"`
	Price             *decimal.Decimal `json:"price,omitempty"`
	TrackInventory    *bool            `json:"track_inventory,omitempty"`
	InventoryQuantity *int             `json:"inventory_quantity,omitempty"`
	LowStockThreshold *int             `json:"low_stock_threshold,omitempty"`
	ImageURL          *string          `json:"image_url,omitempty"`
}

// VendorUpdateProduct applies a partial update to a listing.
func VendorUpdateProduct(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, err := vendorStoreID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := pathUUID(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := catalog.UpdateProductInput{
			Name:              payload.Name,
			Description:       payload.Description,
			Price:             payload.Price,
			TrackInventory:    payload.TrackInventory,
			InventoryQuantity: payload.InventoryQuantity,
			LowStockThreshold: payload.LowStockThreshold,
			ImageURL:          payload.ImageURL,
		}
		if payload.Status != nil {
			status, err := enums.ParseProductStatus(*payload.Status)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
				return
			}
			input.Status = &status
		}

		product, err := svc.UpdateProduct(r.Context(), storeID, productID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newVendorProductResponse(product))
	}
}

// VendorDeleteProduct removes a listing, archiving it instead when order
// history references it.
func VendorDeleteProduct(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, err := vendorStoreID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := pathUUID(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		outcome, err := svc.DeleteProduct(r.Context(), storeID, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"outcome": string(outcome)})
	}
}

package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	pkgerrors "github.com/Amey8050/Dukaan-clone-sub000/pkg/errors"
	"github.com/Amey8050/Dukaan-clone-sub000/pkg/db/models"
)

type variantResponse struct {
	ID    uuid.UUID        `json:"id"`
	Name  string           `json:"name"`
	Price *decimal.Decimal `json:"price,omitempty"`
}

type productResponse struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Status      string            `json:"status"`
	Price       decimal.Decimal   `json:"price"`
	InStock     bool              `json:"in_stock"`
	ImageURL    string            `json:"image_url,omitempty"`
	Variants    []variantResponse `json:"variants,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

type vendorProductResponse struct {
	productResponse
	TrackInventory    bool `json:"track_inventory"`
	InventoryQuantity int  `json:"inventory_quantity"`
	LowStockThreshold int  `json:"low_stock_threshold"`
	LowStock          bool `json:"low_stock"`
}

func newProductResponse(p *models.Product) productResponse {
	resp := productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Status:      string(p.Status),
		Price:       p.Price,
		InStock:     !p.TrackInventory || p.InventoryQuantity > 0,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
	}
	for _, v := range p.Variants {
		resp.Variants = append(resp.Variants, variantResponse{ID: v.ID, Name: v.Name, Price: v.Price})
	}
	return resp
}

func newVendorProductResponse(p *models.Product) vendorProductResponse {
	return vendorProductResponse{
		productResponse:   newProductResponse(p),
		TrackInventory:    p.TrackInventory,
		InventoryQuantity: p.InventoryQuantity,
		LowStockThreshold: p.LowStockThreshold,
		LowStock:          p.TrackInventory && p.InventoryQuantity <= p.LowStockThreshold,
	}
}

type orderItemResponse struct {
	ID           uuid.UUID       `json:"id"`
	ProductID    *uuid.UUID      `json:"product_id,omitempty"`
	ProductName  string          `json:"product_name"`
	ProductImage string          `json:"product_image,omitempty"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Total        decimal.Decimal `json:"total"`
}

type orderResponse struct {
	ID            uuid.UUID           `json:"id"`
	OrderNumber   string              `json:"order_number"`
	Status        string              `json:"status"`
	PaymentStatus string              `json:"payment_status"`
	PaymentMethod *string             `json:"payment_method,omitempty"`
	Subtotal      decimal.Decimal     `json:"subtotal"`
	Tax           decimal.Decimal     `json:"tax"`
	ShippingCost  decimal.Decimal     `json:"shipping_cost"`
	Discount      decimal.Decimal     `json:"discount"`
	Total         decimal.Decimal     `json:"total"`
	Currency      string              `json:"currency"`
	Items         []orderItemResponse `json:"order_items,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
}

func newOrderResponse(o *models.Order) orderResponse {
	resp := orderResponse{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		Status:        string(o.Status),
		PaymentStatus: string(o.PaymentStatus),
		Subtotal:      o.Subtotal,
		Tax:           o.Tax,
		ShippingCost:  o.ShippingCost,
		Discount:      o.Discount,
		Total:         o.Total,
		Currency:      string(o.Currency),
		CreatedAt:     o.CreatedAt,
	}
	if o.PaymentMethod != nil {
		method := string(*o.PaymentMethod)
		resp.PaymentMethod = &method
	}
	for i := range o.Items {
		item := &o.Items[i]
		resp.Items = append(resp.Items, orderItemResponse{
			ID:           item.ID,
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			ProductImage: item.ProductImage,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
			Total:        item.Total,
		})
	}
	return resp
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+name)
	}
	return id, nil
}

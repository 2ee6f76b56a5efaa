package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Amey8050/Dukaan-clone-sub000/pkg/db/models"
	"github.com/Amey8050/Dukaan-clone-sub000/pkg/enums"
)

// CreateProductInput carries vendor-side product creation fields.
type CreateProductInput struct {
	StoreID           uuid.UUID
	Name              string
	Description       string
	Status            enums.ProductStatus
	Price             decimal.Decimal
	TrackInventory    bool
	InventoryQuantity int
	LowStockThreshold *int
	ImageURL          string
	Variants          []VariantInput
}

// VariantInput is one variant row in a create/update request.
type VariantInput struct {
	Name  string
	Price *decimal.Decimal
}

// UpdateProductInput carries optional vendor-side product updates. Nil fields
// are left unchanged.
type UpdateProductInput struct {
	Name              *string
	Description       *string
	Status            *enums.ProductStatus
	Price             *decimal.Decimal
	TrackInventory    *bool
	InventoryQuantity *int
	LowStockThreshold *int
	ImageURL          *string
}

// DeleteOutcome reports whether a delete removed or archived the product.
type DeleteOutcome string

const (
	DeleteOutcomeDeleted  DeleteOutcome = "deleted"
	DeleteOutcomeArchived DeleteOutcome = "archived"
)

// ProductList wraps one storefront page of products.
type ProductList struct {
	Products   []models.Product `json:"products"`
	NextCursor string           `json:"next_cursor,omitempty"`
}

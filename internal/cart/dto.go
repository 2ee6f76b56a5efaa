package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Amey8050/Dukaan-clone-sub000/pkg/db/models"
	"github.com/Amey8050/Dukaan-clone-sub000/pkg/enums"
)

// Identity is the owner of a cart: an authenticated user or a guest session,
// never both.
type Identity struct {
	UserID    *uuid.UUID
	SessionID *string
}

// Valid reports whether exactly one identity field is set.
func (i Identity) Valid() bool {
	hasUser := i.UserID != nil && *i.UserID != uuid.Nil
	hasSession := i.SessionID != nil && *i.SessionID != ""
	return hasUser != hasSession
}

// Owns reports whether the identity matches the cart's owner columns.
func (i Identity) Owns(c *models.Cart) bool {
	if c == nil {
		return false
	}
	if i.UserID != nil && c.UserID != nil {
		return *i.UserID == *c.UserID
	}
	if i.SessionID != nil && c.SessionID != nil {
		return *i.SessionID == *c.SessionID
	}
	return false
}

// ItemView is a cart line joined with current product display fields. The
// pinned UnitPrice and the live CurrentPrice are both exposed so clients can
// show price drift.
type ItemView struct {
	ID                uuid.UUID           `json:"id"`
	ProductID         uuid.UUID           `json:"product_id"`
	VariantID         *uuid.UUID          `json:"variant_id,omitempty"`
	VariantName       *string             `json:"variant_name,omitempty"`
	Quantity          int                 `json:"quantity"`
	UnitPrice         decimal.Decimal     `json:"unit_price"`
	LineTotal         decimal.Decimal     `json:"line_total"`
	ProductName       string              `json:"product_name"`
	ProductImage      string              `json:"product_image,omitempty"`
	ProductStatus     enums.ProductStatus `json:"product_status"`
	CurrentPrice      decimal.Decimal     `json:"current_price"`
	TrackInventory    bool                `json:"track_inventory"`
	InventoryQuantity int                 `json:"inventory_quantity"`
	CreatedAt         time.Time           `json:"created_at"`
}

// View is the cart plus its joined line items.
type View struct {
	ID        uuid.UUID  `json:"id"`
	StoreID   uuid.UUID  `json:"store_id"`
	Items     []ItemView `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// UpsertItemInput adds deltaQuantity of one (product, variant) line.
type UpsertItemInput struct {
	ProductID     uuid.UUID
	VariantID     *uuid.UUID
	DeltaQuantity int
}

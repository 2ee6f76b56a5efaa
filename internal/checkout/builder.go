package checkout

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Amey8050/Dukaan-clone-sub000/internal/cart"
	"github.com/Amey8050/Dukaan-clone-sub000/pkg/db/models"
	"github.com/Amey8050/Dukaan-clone-sub000/pkg/enums"
	pkgerrors "github.com/Amey8050/Dukaan-clone-sub000/pkg/errors"
	"github.com/Amey8050/Dukaan-clone-sub000/pkg/types"
)

// CatalogReader supplies current product state for build-time validation.
type CatalogReader interface {
	GetProductsByIDs(ctx context.Context, storeID uuid.UUID, ids []uuid.UUID) ([]models.Product, error)
}

// BuildInput is everything the builder needs to assemble an order aggregate.
type BuildInput struct {
	StoreID         uuid.UUID
	UserID          *uuid.UUID
	Items           []models.CartItem
	Tax             decimal.Decimal
	ShippingCost    decimal.Decimal
	Discount        decimal.Decimal
	Currency        enums.Currency
	ShippingAddress types.Address
	BillingAddress  types.Address
	PaymentMethod   *enums.PaymentMethod
	Notes           string
}

// InventoryDecrement is one stock subtraction owed after the order persists.
type InventoryDecrement struct {
	ProductID uuid.UUID
	Quantity  int
}

// BuildResult carries the unsaved order aggregate plus the decrements the
// orchestrator applies after persistence.
type BuildResult struct {
	Order      *models.Order
	Decrements []InventoryDecrement
}

// Builder is the pure transformation from validated cart lines to an unsaved
// order. It performs no I/O beyond catalog reads and never writes.
type Builder struct {
	catalog CatalogReader
}

// NewBuilder constructs a Builder backed by the given catalog.
func NewBuilder(catalog CatalogReader) (*Builder, error) {
	if catalog == nil {
		return nil, fmt.Errorf("catalog reader required")
	}
	return &Builder{catalog: catalog}, nil
}

// Build validates every cart line against current catalog state and returns
// the order aggregate with totals computed once, rounded to cents. Line
// totals use the pinned cart price, not the live product price.
func (b *Builder) Build(ctx context.Context, input BuildInput) (*BuildResult, error) {
	ids := make([]uuid.UUID, 0, len(input.Items))
	for _, item := range input.Items {
		ids = append(ids, item.ProductID)
	}
	products, err := b.catalog.GetProductsByIDs(ctx, input.StoreID, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	subtotal := decimal.Zero
	orderItems := make([]models.OrderItem, 0, len(input.Items))
	decrements := make([]InventoryDecrement, 0, len(input.Items))

	for _, item := range input.Items {
		product, ok := byID[item.ProductID]
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeProductUnavailable, "product no longer exists").
				WithDetails(map[string]any{"product_id": item.ProductID})
		}
		if product.Status != enums.ProductStatusActive {
			return nil, pkgerrors.New(
				pkgerrors.CodeProductUnavailable,
				fmt.Sprintf("product %q is not available", product.Name),
			).WithDetails(map[string]any{"product_id": product.ID, "status": product.Status})
		}
		if product.TrackInventory && product.InventoryQuantity < item.Quantity {
			return nil, pkgerrors.New(
				pkgerrors.CodeInsufficientStock,
				fmt.Sprintf("only %d of %q available", product.InventoryQuantity, product.Name),
			).WithDetails(map[string]any{
				"product_id": product.ID,
				"available":  product.InventoryQuantity,
				"requested":  item.Quantity,
			})
		}

		lineTotal := cart.PinnedLineTotal(item.UnitPrice, item.Quantity)
		subtotal = subtotal.Add(lineTotal)

		productID := item.ProductID
		orderItems = append(orderItems, models.OrderItem{
			ProductID:    &productID,
			VariantID:    item.VariantID,
			ProductName:  product.Name,
			ProductImage: product.ImageURL,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
			Total:        lineTotal,
		})
		if product.TrackInventory {
			decrements = append(decrements, InventoryDecrement{
				ProductID: product.ID,
				Quantity:  item.Quantity,
			})
		}
	}

	subtotal = subtotal.Round(2)
	tax := input.Tax.Round(2)
	shipping := input.ShippingCost.Round(2)
	discount := input.Discount.Round(2)
	total := subtotal.Add(tax).Add(shipping).Sub(discount).Round(2)

	billing := input.BillingAddress
	if billing.IsZero() {
		billing = input.ShippingAddress
	}
	currency := input.Currency
	if currency == "" {
		currency = enums.CurrencyINR
	}

	order := &models.Order{
		StoreID:         input.StoreID,
		UserID:          input.UserID,
		Status:          enums.OrderStatusPending,
		PaymentStatus:   enums.PaymentStatusPending,
		PaymentMethod:   input.PaymentMethod,
		Subtotal:        subtotal,
		Tax:             tax,
		ShippingCost:    shipping,
		Discount:        discount,
		Total:           total,
		Currency:        currency,
		ShippingAddress: input.ShippingAddress,
		BillingAddress:  billing,
		Notes:           input.Notes,
		Items:           orderItems,
	}
	return &BuildResult{Order: order, Decrements: decrements}, nil
}

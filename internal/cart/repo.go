package cart

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Amey8050/Dukaan-clone-sub000/pkg/db/models"
	"github.com/Amey8050/Dukaan-clone-sub000/pkg/enums"
)

// Repository exposes persistence operations for carts and cart items.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a cart repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// FindByIdentity loads the open cart for (store, owner).
func (r *Repository) FindByIdentity(ctx context.Context, storeID uuid.UUID, identity Identity) (*models.Cart, error) {
	query := r.db.WithContext(ctx).Where("store_id = ?", storeID)
	switch {
	case identity.UserID != nil:
		query = query.Where("user_id = ?", *identity.UserID)
	default:
		query = query.Where("session_id = ?", *identity.SessionID)
	}

	var cart models.Cart
	if err := query.First(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// FindByID loads a cart by primary key.
func (r *Repository) FindByID(ctx context.Context, cartID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	if err := r.db.WithContext(ctx).First(&cart, "id = ?", cartID).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// Create inserts a new empty cart.
func (r *Repository) Create(ctx context.Context, cart *models.Cart) (*models.Cart, error) {
	if err := r.db.WithContext(ctx).Create(cart).Error; err != nil {
		return nil, err
	}
	return cart, nil
}

// itemRow is the scan target for the item/product join.
type itemRow struct {
	ID                uuid.UUID
	ProductID         uuid.UUID
	VariantID         *uuid.UUID
	Quantity          int
	UnitPrice         decimal.Decimal
	CreatedAt         time.Time
	ProductName       string
	ProductImage      string
	ProductStatus     enums.ProductStatus
	CurrentPrice      decimal.Decimal
	TrackInventory    bool
	InventoryQuantity int
	VariantName       *string
}

// ListItems returns the cart's lines joined with live product display fields,
// oldest line first.
func (r *Repository) ListItems(ctx context.Context, cartID uuid.UUID) ([]ItemView, error) {
	var rows []itemRow
	err := r.db.WithContext(ctx).
		Table("cart_items").
		Select(`cart_items.id,
			cart_items.product_id,
			cart_items.variant_id,
			cart_items.quantity,
			cart_items.unit_price,
			cart_items.created_at,
			products.name AS product_name,
			products.image_url AS product_image,
			products.status AS product_status,
			products.price AS current_price,
			products.track_inventory AS track_inventory,
			products.inventory_quantity AS inventory_quantity,
			product_variants.name AS variant_name`).
		Joins("JOIN products ON products.id = cart_items.product_id").
		Joins("LEFT JOIN product_variants ON product_variants.id = cart_items.variant_id").
		Where("cart_items.cart_id = ?", cartID).
		Order("cart_items.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	views := make([]ItemView, 0, len(rows))
	for _, row := range rows {
		views = append(views, row.toView())
	}
	return views, nil
}

// FindItem loads one cart line by primary key.
func (r *Repository) FindItem(ctx context.Context, itemID uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", itemID).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// FindLine loads the cart line for (product, variant), if present.
func (r *Repository) FindLine(ctx context.Context, cartID, productID uuid.UUID, variantID *uuid.UUID) (*models.CartItem, error) {
	query := r.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID)
	if variantID != nil {
		query = query.Where("variant_id = ?", *variantID)
	} else {
		query = query.Where("variant_id IS NULL")
	}

	var item models.CartItem
	if err := query.First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateItem inserts a new cart line.
func (r *Repository) CreateItem(ctx context.Context, item *models.CartItem) (*models.CartItem, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItemQuantity sets the quantity of one line.
func (r *Repository) UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	return r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("id = ?", itemID).
		Update("quantity", quantity).Error
}

// DeleteItem removes one line.
func (r *Repository) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.CartItem{}, "id = ?", itemID).Error
}

// ClearItems removes every line in the cart; the cart header stays for reuse.
func (r *Repository) ClearItems(ctx context.Context, cartID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.CartItem{}, "cart_id = ?", cartID).Error
}

// TouchCart bumps the cart's updated_at so guest carts with recent activity
// survive the stale sweep.
func (r *Repository) TouchCart(ctx context.Context, cartID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Cart{}).
		Where("id = ?", cartID).
		Update("updated_at", time.Now()).Error
}

// DeleteStaleGuestCarts removes guest carts untouched since the cutoff along
// with their items. Returns how many carts were removed.
func (r *Repository) DeleteStaleGuestCarts(ctx context.Context, cutoff time.Time) (int64, error) {
	tx := r.db.WithContext(ctx)

	var ids []uuid.UUID
	err := tx.Model(&models.Cart{}).
		Where("session_id IS NOT NULL AND updated_at < ?", cutoff).
		Pluck("id", &ids).Error
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	if err := tx.Delete(&models.CartItem{}, "cart_id IN ?", ids).Error; err != nil {
		return 0, err
	}
	result := tx.Delete(&models.Cart{}, "id IN ?", ids)
	return result.RowsAffected, result.Error
}

func (row itemRow) toView() ItemView {
	return ItemView{
		ID:                row.ID,
		ProductID:         row.ProductID,
		VariantID:         row.VariantID,
		VariantName:       row.VariantName,
		Quantity:          row.Quantity,
		UnitPrice:         row.UnitPrice,
		LineTotal:         PinnedLineTotal(row.UnitPrice, row.Quantity),
		ProductName:       row.ProductName,
		ProductImage:      row.ProductImage,
		ProductStatus:     row.ProductStatus,
		CurrentPrice:      row.CurrentPrice,
		TrackInventory:    row.TrackInventory,
		InventoryQuantity: row.InventoryQuantity,
		CreatedAt:         row.CreatedAt,
	}
}

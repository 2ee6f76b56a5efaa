package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Amey8050/Dukaan-clone-sub000/pkg/db/models"
	"github.com/Amey8050/Dukaan-clone-sub000/pkg/enums"
	"github.com/Amey8050/Dukaan-clone-sub000/pkg/pagination"
)

// Repository exposes persistence operations for the product catalog.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a catalog repository bound to the provided DB.
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

// FindByID loads one product with its variants, scoped to the store.
func (r *Repository) FindByID(ctx context.Context, storeID, productID uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Variants").
		Where("id = ? AND store_id = ?", productID, storeID).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByIDs loads the requested products with variants, scoped to the store.
// Missing IDs are simply absent from the result.
func (r *Repository) FindByIDs(ctx context.Context, storeID uuid.UUID, ids []uuid.UUID) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var products []models.Product
	err := r.db.WithContext(ctx).
		Preload("Variants").
		Where("store_id = ? AND id IN ?", storeID, ids).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// ListActive returns active products for the storefront, newest first,
// keyed by a (created_at, id) cursor.
func (r *Repository) ListActive(ctx context.Context, storeID uuid.UUID, params pagination.Params) ([]models.Product, error) {
	query := r.db.WithContext(ctx).
		Where("store_id = ? AND status = ?", storeID, enums.ProductStatusActive).
		Order("created_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit))

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		query = query.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ListByStore returns every product in the store regardless of status.
func (r *Repository) ListByStore(ctx context.Context, storeID uuid.UUID) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Preload("Variants").
		Where("store_id = ?", storeID).
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// Create inserts a new product with its variants.
func (r *Repository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// Update saves the provided product.
func (r *Repository) Update(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// Archive marks the product archived without touching its rows elsewhere.
func (r *Repository) Archive(ctx context.Context, storeID, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND store_id = ?", productID, storeID).
		Update("status", enums.ProductStatusArchived).Error
}

// Delete removes the product row. Order items keep their denormalized copy;
// their product_id is set null by the FK.
func (r *Repository) Delete(ctx context.Context, storeID, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND store_id = ?", productID, storeID).
		Delete(&models.Product{}).Error
}

// CountOrderReferences reports how many order items point at the product.
func (r *Repository) CountOrderReferences(ctx context.Context, productID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.OrderItem{}).
		Where("product_id = ?", productID).
		Count(&count).Error
	return count, err
}

// DecrementInventory subtracts qty from the product's stock only when enough
// remains, so concurrent checkouts can never drive the count negative.
// Returns false when the guarded update matched no row.
func (r *Repository) DecrementInventory(ctx context.Context, productID uuid.UUID, qty int) (bool, error) {
	if qty <= 0 {
		return true, nil
	}
	result := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND track_inventory = ? AND inventory_quantity >= ?", productID, true, qty).
		Update("inventory_quantity", gorm.Expr("inventory_quantity - ?", qty))
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		// distinguish untracked products from a genuine stock miss
		var tracked int64
		err := r.db.WithContext(ctx).
			Model(&models.Product{}).
			Where("id = ? AND track_inventory = ?", productID, true).
			Count(&tracked).Error
		if err != nil {
			return false, err
		}
		return tracked == 0, nil
	}
	return true, nil
}

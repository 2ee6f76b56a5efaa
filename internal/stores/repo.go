package stores

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Amey8050/Dukaan-clone-sub000/pkg/db/models"
)

// Repository handles store persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to store operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx rebinds the repository onto an open transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create persists a new store row.
func (r *Repository) Create(ctx context.Context, store *models.Store) (*models.Store, error) {
	if err := r.db.WithContext(ctx).Create(store).Error; err != nil {
		return nil, err
	}
	return store, nil
}

// FindByID loads a store by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	var store models.Store
	if err := r.db.WithContext(ctx).First(&store, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

// FindBySlug loads a store by its public slug.
func (r *Repository) FindBySlug(ctx context.Context, slug string) (*models.Store, error) {
	var store models.Store
	if err := r.db.WithContext(ctx).First(&store, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

// FindByOwner returns all stores owned by the provided user.
func (r *Repository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Store, error) {
	var out []models.Store
	if err := r.db.WithContext(ctx).
		Where("owner_user_id = ?", ownerID).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Update saves the provided store.
func (r *Repository) Update(ctx context.Context, store *models.Store) error {
	if store == nil {
		return fmt.Errorf("store is required")
	}
	return r.db.WithContext(ctx).Save(store).Error
}

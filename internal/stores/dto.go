package stores

import (
	"time"

	"github.com/google/uuid"

	"github.com/Amey8050/Dukaan-clone-sub000/pkg/db/models"
	"github.com/Amey8050/Dukaan-clone-sub000/pkg/enums"
)

// StoreDTO exposes safe tenant data in API responses.
type StoreDTO struct {
	ID          uuid.UUID      `json:"id"`
	Name        string         `json:"name"`
	Slug        string         `json:"slug"`
	Description string         `json:"description,omitempty"`
	Currency    enums.Currency `json:"currency"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// CreateStoreInput holds creation-time data for a new store.
type CreateStoreInput struct {
	OwnerUserID uuid.UUID
	Name        string
	Slug        string
	Description string
	Currency    enums.Currency
}

// UpdateStoreInput carries a partial store update; nil fields are untouched.
type UpdateStoreInput struct {
	Name        *string
	Description *string
	Currency    *enums.Currency
}

// FromModel maps the persisted store into a DTO.
func FromModel(m *models.Store) *StoreDTO {
	if m == nil {
		return nil
	}
	return &StoreDTO{
		ID:          m.ID,
		Name:        m.Name,
		Slug:        m.Slug,
		Description: m.Description,
		Currency:    m.Currency,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Amey8050/Dukaan-clone-sub000/pkg/enums"
)

// Store is a tenant. Products, carts and orders are all scoped to one store.
type Store struct {
	ID          uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	OwnerUserID uuid.UUID      `gorm:"column:owner_user_id;type:uuid;not null"`
	Name        string         `gorm:"column:name;not null"`
	Slug        string         `gorm:"column:slug;not null;uniqueIndex"`
	Description string         `gorm:"column:description"`
	Currency    enums.Currency `gorm:"column:currency;not null;default:'INR'"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (s *Store) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

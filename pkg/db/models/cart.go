package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cart holds pending purchase selections for one identity within one store.
// Exactly one of UserID and SessionID is set; partial unique indexes keep a
// single open cart per (store, identity).
type Cart struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	StoreID   uuid.UUID  `gorm:"column:store_id;type:uuid;not null;index"`
	UserID    *uuid.UUID `gorm:"column:user_id;type:uuid"`
	SessionID *string    `gorm:"column:session_id"`
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (c *Cart) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

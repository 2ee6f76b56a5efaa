package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductVariant is an optional per-product option (size, color). Price, when
// set, overrides the product price at add-to-cart time.
type ProductVariant struct {
	ID        uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	ProductID uuid.UUID        `gorm:"column:product_id;type:uuid;not null;index"`
	Name      string           `gorm:"column:name;not null"`
	Price     *decimal.Decimal `gorm:"column:price;type:numeric(10,2)"`
	CreatedAt time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

func (v *ProductVariant) BeforeCreate(*gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

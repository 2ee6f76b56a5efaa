package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderItem snapshots one purchased line. ProductName and ProductImage are
// denormalized at order time so later catalog edits never rewrite history;
// ProductID is nulled rather than cascaded when the product goes away.
type OrderItem struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	OrderID      uuid.UUID       `gorm:"column:order_id;type:uuid;not null;index"`
	ProductID    *uuid.UUID      `gorm:"column:product_id;type:uuid"`
	VariantID    *uuid.UUID      `gorm:"column:variant_id;type:uuid"`
	ProductName  string          `gorm:"column:product_name;not null"`
	ProductImage string          `gorm:"column:product_image"`
	Quantity     int             `gorm:"column:quantity;not null"`
	UnitPrice    decimal.Decimal `gorm:"column:unit_price;type:numeric(10,2);not null"`
	Total        decimal.Decimal `gorm:"column:total;type:numeric(10,2);not null"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (i *OrderItem) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

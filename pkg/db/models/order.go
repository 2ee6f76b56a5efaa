package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Amey8050/Dukaan-clone-sub000/pkg/enums"
	"github.com/Amey8050/Dukaan-clone-sub000/pkg/types"
)

// Order is the immutable financial record of a completed checkout. Monetary
// columns are computed once at checkout and never re-derived.
type Order struct {
	ID              uuid.UUID            `gorm:"column:id;type:uuid;primaryKey"`
	StoreID         uuid.UUID            `gorm:"column:store_id;type:uuid;not null;index"`
	UserID          *uuid.UUID           `gorm:"column:user_id;type:uuid"`
	OrderNumber     string               `gorm:"column:order_number;not null;uniqueIndex:ux_orders_number"`
	Status          enums.OrderStatus    `gorm:"column:status;not null;default:'pending'"`
	PaymentStatus   enums.PaymentStatus  `gorm:"column:payment_status;not null;default:'pending'"`
	PaymentMethod   *enums.PaymentMethod `gorm:"column:payment_method"`
	Subtotal        decimal.Decimal      `gorm:"column:subtotal;type:numeric(10,2);not null"`
	Tax             decimal.Decimal      `gorm:"column:tax;type:numeric(10,2);not null"`
	ShippingCost    decimal.Decimal      `gorm:"column:shipping_cost;type:numeric(10,2);not null"`
	Discount        decimal.Decimal      `gorm:"column:discount;type:numeric(10,2);not null"`
	Total           decimal.Decimal      `gorm:"column:total;type:numeric(10,2);not null"`
	Currency        enums.Currency       `gorm:"column:currency;not null;default:'INR'"`
	ShippingAddress types.Address        `gorm:"column:shipping_address;type:jsonb;serializer:json"`
	BillingAddress  types.Address        `gorm:"column:billing_address;type:jsonb;serializer:json"`
	Notes           string               `gorm:"column:notes"`
	Items           []OrderItem          `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}

func (o *Order) BeforeCreate(*gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

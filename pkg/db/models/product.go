package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Amey8050/Dukaan-clone-sub000/pkg/enums"
)

// Product is a store listing. Inventory fields only matter when
// TrackInventory is set.
type Product struct {
	ID                uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	StoreID           uuid.UUID           `gorm:"column:store_id;type:uuid;not null;index"`
	Name              string              `gorm:"column:name;not null"`
	Description       string              `gorm:"column:description"`
	Status            enums.ProductStatus `gorm:"column:status;not null;default:'draft'"`
	Price             decimal.Decimal     `gorm:"column:price;type:numeric(10,2);not null"`
	TrackInventory    bool                `gorm:"column:track_inventory;not null;default:false"`
	InventoryQuantity int                 `gorm:"column:inventory_quantity;not null;default:0"`
	LowStockThreshold int                 `gorm:"column:low_stock_threshold;not null;default:5"`
	ImageURL          string              `gorm:"column:image_url"`
	Variants          []ProductVariant    `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt         time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

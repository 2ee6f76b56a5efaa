package catalog

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Amey8050/Dukaan-clone-sub000/pkg/db/models"
	"github.com/Amey8050/Dukaan-clone-sub000/pkg/enums"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, conn.AutoMigrate(
		&models.User{},
		&models.Store{},
		&models.Product{},
		&models.ProductVariant{},
		&models.Order{},
		&models.OrderItem{},
	))
	return conn
}

func mustCreateTestStore(t *testing.T, tx *gorm.DB) *models.Store {
	t.Helper()
	owner := &models.User{
		Email:        fmt.Sprintf("owner_%s@example.com", uuid.NewString()),
		PasswordHash: "hash",
		Name:         "Owner",
	}
	require.NoError(t, tx.Create(owner).Error)

	store := &models.Store{
		OwnerUserID: owner.ID,
		Name:        "Test Store",
		Slug:        fmt.Sprintf("test-store-%s", uuid.NewString()[:8]),
		Currency:    enums.CurrencyINR,
	}
	require.NoError(t, tx.Create(store).Error)
	return store
}

func mustCreateTestProduct(t *testing.T, tx *gorm.DB, storeID uuid.UUID, mutate func(*models.Product)) *models.Product {
	t.Helper()
	product := &models.Product{
		StoreID:           storeID,
		Name:              "Ceramic Mug",
		Status:            enums.ProductStatusActive,
		Price:             decimal.NewFromFloat(12.50),
		TrackInventory:    true,
		InventoryQuantity: 10,
		LowStockThreshold: 5,
	}
	if mutate != nil {
		mutate(product)
	}
	require.NoError(t, tx.Create(product).Error)
	return product
}

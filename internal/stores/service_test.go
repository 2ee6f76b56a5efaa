package stores

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Amey8050/Dukaan-clone-sub000/pkg/db/models"
	"github.com/Amey8050/Dukaan-clone-sub000/pkg/enums"
	pkgerrors "github.com/Amey8050/Dukaan-clone-sub000/pkg/errors"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.User{}, &models.Store{}))
	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)
	return svc, conn
}

func createOwner(t *testing.T, conn *gorm.DB) *models.User {
	t.Helper()
	owner := &models.User{
		Email:        fmt.Sprintf("owner_%s@example.com", uuid.NewString()),
		PasswordHash: "hash",
		Name:         "Owner",
	}
	require.NoError(t, conn.Create(owner).Error)
	return owner
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "acme-tea-house", Slugify("  Acme Tea House "))
	assert.Equal(t, "my-store-2", Slugify("My Store #2!"))
	assert.Equal(t, "store", Slugify("---store---"))
	assert.Equal(t, "", Slugify("!!!"))
}

func TestCreateStoreDerivesSlugFromName(t *testing.T) {
	svc, conn := newTestService(t)
	owner := createOwner(t, conn)

	store, err := svc.CreateStore(context.Background(), CreateStoreInput{
		OwnerUserID: owner.ID,
		Name:        "Acme Tea House",
	})
	require.NoError(t, err)
	assert.Equal(t, "acme-tea-house", store.Slug)
	assert.Equal(t, enums.CurrencyINR, store.Currency)
}

func TestCreateStoreSuffixesTakenSlug(t *testing.T) {
	svc, conn := newTestService(t)
	owner := createOwner(t, conn)
	ctx := context.Background()

	first, err := svc.CreateStore(ctx, CreateStoreInput{OwnerUserID: owner.ID, Name: "Acme"})
	require.NoError(t, err)

	second, err := svc.CreateStore(ctx, CreateStoreInput{OwnerUserID: owner.ID, Name: "Acme"})
	require.NoError(t, err)
	assert.NotEqual(t, first.Slug, second.Slug)
	assert.Contains(t, second.Slug, "acme-")
}

func TestCreateStoreRejectsInvalidInput(t *testing.T) {
	svc, conn := newTestService(t)
	owner := createOwner(t, conn)
	ctx := context.Background()

	_, err := svc.CreateStore(ctx, CreateStoreInput{OwnerUserID: uuid.Nil, Name: "X"})
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))

	_, err = svc.CreateStore(ctx, CreateStoreInput{OwnerUserID: owner.ID, Name: "   "})
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))

	_, err = svc.CreateStore(ctx, CreateStoreInput{OwnerUserID: owner.ID, Name: "X", Currency: "XYZ"})
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
}

func TestGetBySlug(t *testing.T) {
	svc, conn := newTestService(t)
	owner := createOwner(t, conn)
	ctx := context.Background()

	created, err := svc.CreateStore(ctx, CreateStoreInput{OwnerUserID: owner.ID, Name: "Acme"})
	require.NoError(t, err)

	found, err := svc.GetBySlug(ctx, "Acme") // slug lookup normalizes
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = svc.GetBySlug(ctx, "nope")
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
}

func TestUpdateStoreEnforcesOwnership(t *testing.T) {
	svc, conn := newTestService(t)
	owner := createOwner(t, conn)
	stranger := createOwner(t, conn)
	ctx := context.Background()

	store, err := svc.CreateStore(ctx, CreateStoreInput{OwnerUserID: owner.ID, Name: "Acme"})
	require.NoError(t, err)

	_, err = svc.UpdateStore(ctx, stranger.ID, store.ID, UpdateStoreInput{})
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeForbidden))

	name := "Acme Renamed"
	currency := enums.CurrencyUSD
	updated, err := svc.UpdateStore(ctx, owner.ID, store.ID, UpdateStoreInput{
		Name:     &name,
		Currency: &currency,
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme Renamed", updated.Name)
	assert.Equal(t, enums.CurrencyUSD, updated.Currency)
	assert.Equal(t, store.Slug, updated.Slug)
}

func TestListByOwner(t *testing.T) {
	svc, conn := newTestService(t)
	owner := createOwner(t, conn)
	other := createOwner(t, conn)
	ctx := context.Background()

	_, err := svc.CreateStore(ctx, CreateStoreInput{OwnerUserID: owner.ID, Name: "First"})
	require.NoError(t, err)
	_, err = svc.CreateStore(ctx, CreateStoreInput{OwnerUserID: owner.ID, Name: "Second"})
	require.NoError(t, err)
	_, err = svc.CreateStore(ctx, CreateStoreInput{OwnerUserID: other.ID, Name: "Theirs"})
	require.NoError(t, err)

	mine, err := svc.ListByOwner(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "First", mine[0].Name)
}

package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	authsvc "github.com/Amey8050/Dukaan-clone-sub000/internal/auth"
	cartsvc "github.com/Amey8050/Dukaan-clone-sub000/internal/cart"
	"github.com/Amey8050/Dukaan-clone-sub000/internal/catalog"
	checkoutsvc "github.com/Amey8050/Dukaan-clone-sub000/internal/checkout"
	"github.com/Amey8050/Dukaan-clone-sub000/internal/orders"
	"github.com/Amey8050/Dukaan-clone-sub000/internal/stores"
	"github.com/Amey8050/Dukaan-clone-sub000/internal/users"
	"github.com/Amey8050/Dukaan-clone-sub000/pkg/config"
	"github.com/Amey8050/Dukaan-clone-sub000/pkg/db/models"
	"github.com/Amey8050/Dukaan-clone-sub000/pkg/logger"
)

type gormTx struct {
	db *gorm.DB
}

func (g gormTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return g.db.WithContext(ctx).Transaction(fn)
}

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:            "router-test-secret-0123456789abcdef",
			Issuer:            "dukaan-test",
			ExpirationMinutes: 60,
		},
		CORS: config.CORSConfig{AllowedOrigins: []string{"*"}},
		// zero windows/limits keep the auth rate limiter disabled
	}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&models.User{},
		&models.Store{},
		&models.Product{},
		&models.ProductVariant{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	))

	cfg := testConfig()
	logg := logger.New(logger.Options{ServiceName: "router-test", Output: io.Discard})

	storeSvc, err := stores.NewService(stores.NewRepository(conn))
	require.NoError(t, err)
	catalogSvc, err := catalog.NewService(catalog.NewRepository(conn))
	require.NoError(t, err)
	cartService, err := cartsvc.NewService(cartsvc.NewRepository(conn), catalogSvc)
	require.NoError(t, err)
	authService, err := authsvc.NewService(authsvc.ServiceParams{
		Tx:             gormTx{db: conn},
		UserRepo:       users.NewRepository(conn),
		StoreService:   storeSvc,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	require.NoError(t, err)
	builder, err := checkoutsvc.NewBuilder(catalogSvc)
	require.NoError(t, err)
	checkoutService, err := checkoutsvc.NewService(
		gormTx{db: conn},
		cartService,
		builder,
		orders.NewRepository(conn),
		catalog.NewRepository(conn),
		logg,
		nil,
		0,
	)
	require.NoError(t, err)
	ordersService, err := orders.NewService(orders.NewRepository(conn))
	require.NoError(t, err)

	return NewRouter(Deps{
		Config:   cfg,
		Logger:   logg,
		DB:       okPinger{},
		Redis:    nil,
		Auth:     authService,
		Stores:   storeSvc,
		Catalog:  catalogSvc,
		Cart:     cartService,
		Checkout: checkoutService,
		Orders:   ordersService,
	})
}

func doJSON(t *testing.T, router http.Handler, method, path, token, sessionID string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if sessionID != "" {
		req.Header.Set("X-Session-Id", sessionID)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.True(t, envelope.Success, "body: %s", rec.Body.String())
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func registerMerchant(t *testing.T, router http.Handler, email string) (token string, slug string) {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", "", map[string]any{
		"name":       "Asha",
		"email":      email,
		"password":   "correct-horse",
		"store_name": "Asha's Teas",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var session struct {
		AccessToken string `json:"access_token"`
		Stores      []struct {
			Slug string `json:"slug"`
		} `json:"stores"`
	}
	decodeData(t, rec, &session)
	require.NotEmpty(t, session.AccessToken)
	require.Len(t, session.Stores, 1)
	return session.AccessToken, session.Stores[0].Slug
}

func createListing(t *testing.T, router http.Handler, token string, name string, price string, qty int) string {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/v1/vendor/products", token, "", map[string]any{
		"name":               name,
		"price":              price,
		"status":             "active",
		"track_inventory":    true,
		"inventory_quantity": qty,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var product struct {
		ID string `json:"id"`
	}
	decodeData(t, rec, &product)
	require.NotEmpty(t, product.ID)
	return product.ID
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/health/live", "", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/health/ready", "", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestVendorRoutesRequireToken(t *testing.T) {
	router := newTestRouter(t)

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/vendor/stores"},
		{http.MethodGet, "/api/v1/vendor/products"},
		{http.MethodPost, "/api/v1/vendor/products"},
		{http.MethodGet, "/api/v1/vendor/orders"},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := doJSON(t, router, tc.method, tc.path, "", "", nil)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestStorefrontUnknownSlug(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/stores/no-such-store", "", "guest-1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMerchantAndShopperFlow(t *testing.T) {
	router := newTestRouter(t)

	token, slug := registerMerchant(t, router, "asha@example.com")
	productID := createListing(t, router, token, "Darjeeling First Flush", "450.00", 10)

	base := "/api/v1/stores/" + slug

	// storefront browse as a guest
	rec := doJSON(t, router, http.MethodGet, base+"/products", "", "guest-1", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var listing struct {
		Products []struct {
			ID      string `json:"id"`
			InStock bool   `json:"in_stock"`
		} `json:"products"`
	}
	decodeData(t, rec, &listing)
	require.Len(t, listing.Products, 1)
	assert.Equal(t, productID, listing.Products[0].ID)
	assert.True(t, listing.Products[0].InStock)

	// guest cart
	rec = doJSON(t, router, http.MethodPost, base+"/cart/items", "", "guest-1", map[string]any{
		"product_id": productID,
		"quantity":   2,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// checkout
	rec = doJSON(t, router, http.MethodPost, base+"/checkout", "", "guest-1", map[string]any{
		"shipping_address": map[string]any{
			"name":        "Guest Buyer",
			"line1":       "12 Lake Road",
			"city":        "Pune",
			"state":       "MH",
			"postal_code": "411001",
			"country":     "IN",
		},
		"payment_method": "cod",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var checkoutBody struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Data    struct {
			Order struct {
				ID          string          `json:"id"`
				OrderNumber string          `json:"order_number"`
				Total       decimal.Decimal `json:"total"`
				Items       []struct {
					ProductName string `json:"product_name"`
				} `json:"order_items"`
			} `json:"order"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &checkoutBody), rec.Body.String())
	require.True(t, checkoutBody.Success)
	assert.NotEmpty(t, checkoutBody.Message)
	placed := checkoutBody.Data.Order
	assert.Regexp(t, `^ORD-\d{13}-[0-9A-Z]{6}$`, placed.OrderNumber)
	assert.Equal(t, "900.00", placed.Total.StringFixed(2))
	require.Len(t, placed.Items, 1)
	assert.Equal(t, "Darjeeling First Flush", placed.Items[0].ProductName)

	// cart is empty after checkout
	rec = doJSON(t, router, http.MethodGet, base+"/cart", "", "guest-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// vendor sees the order
	rec = doJSON(t, router, http.MethodGet, "/api/v1/vendor/orders", token, "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var list struct {
		Orders []struct {
			ID string `json:"id"`
		} `json:"orders"`
	}
	decodeData(t, rec, &list)
	require.Len(t, list.Orders, 1)
	assert.Equal(t, placed.ID, list.Orders[0].ID)

	// and can fetch the detail
	rec = doJSON(t, router, http.MethodGet, "/api/v1/vendor/orders/"+placed.ID, token, "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// inventory drained by the purchase
	rec = doJSON(t, router, http.MethodGet, "/api/v1/vendor/products/"+productID, token, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var vendorView struct {
		InventoryQuantity int `json:"inventory_quantity"`
	}
	decodeData(t, rec, &vendorView)
	assert.Equal(t, 8, vendorView.InventoryQuantity)
}

func TestGuestCartsAreIsolatedBySession(t *testing.T) {
	router := newTestRouter(t)

	token, slug := registerMerchant(t, router, fmt.Sprintf("owner-%d@example.com", 1))
	productID := createListing(t, router, token, "Masala Chai", "120.00", 5)

	base := "/api/v1/stores/" + slug
	rec := doJSON(t, router, http.MethodPost, base+"/cart/items", "", "guest-a", map[string]any{
		"product_id": productID,
		"quantity":   1,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodGet, base+"/cart", "", "guest-b", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var view struct {
		Items []json.RawMessage `json:"items"`
	}
	decodeData(t, rec, &view)
	assert.Empty(t, view.Items)
}

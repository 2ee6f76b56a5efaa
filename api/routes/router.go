package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Amey8050/Dukaan-clone-sub000/api/controllers"
	"github.com/Amey8050/Dukaan-clone-sub000/api/middleware"
	authsvc "github.com/Amey8050/Dukaan-clone-sub000/internal/auth"
	cartsvc "github.com/Amey8050/Dukaan-clone-sub000/internal/cart"
	"github.com/Amey8050/Dukaan-clone-sub000/internal/catalog"
	checkoutsvc "github.com/Amey8050/Dukaan-clone-sub000/internal/checkout"
	"github.com/Amey8050/Dukaan-clone-sub000/internal/orders"
	"github.com/Amey8050/Dukaan-clone-sub000/internal/stores"
	"github.com/Amey8050/Dukaan-clone-sub000/pkg/config"
	"github.com/Amey8050/Dukaan-clone-sub000/pkg/logger"
	"github.com/Amey8050/Dukaan-clone-sub000/pkg/redis"
)

// Deps carries everything the HTTP surface needs. Ping targets feed the
// readiness probe.
type Deps struct {
	Config *config.Config
	Logger *logger.Logger

	DB    controllers.Pinger
	Redis *redis.Client

	Auth     *authsvc.Service
	Stores   *stores.Service
	Catalog  *catalog.Service
	Cart     *cartsvc.Service
	Checkout *checkoutsvc.Service
	Orders   *orders.Service
}

// NewRouter assembles the full route tree: public health and auth,
// shopper-facing storefront routes keyed by store slug, and token-scoped
// vendor routes.
func NewRouter(d Deps) http.Handler {
	cfg := d.Config
	logg := d.Logger

	// A nil redis client disables idempotency replay instead of failing
	// every keyed request.
	var idemStore redis.IdempotencyStore
	if d.Redis != nil {
		idemStore = d.Redis
	}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	readiness := map[string]controllers.Pinger{"database": d.DB}
	if d.Redis != nil {
		readiness["redis"] = d.Redis
	}
	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readiness))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(
			middleware.AuthRateLimit(registerPolicy, d.Redis, logg),
			middleware.Idempotency(idemStore, logg),
		).Post("/register", controllers.Register(d.Auth, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, d.Redis, logg)).
			Post("/login", controllers.Login(d.Auth, logg))
	})

	// Storefront routes carry an optional shopper identity: a bearer token
	// when the buyer is signed in, or an X-Session-Id header for guests.
	r.Route("/api/v1/stores/{slug}", func(r chi.Router) {
		r.Use(middleware.Shopper(cfg.JWT, logg))

		r.Get("/", controllers.StorefrontStore(d.Stores, logg))
		r.Get("/products", controllers.StorefrontProducts(d.Catalog, d.Stores, logg))
		r.Get("/products/{productID}", controllers.StorefrontProduct(d.Catalog, d.Stores, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartView(d.Cart, d.Stores, logg))
			r.Delete("/", controllers.CartClear(d.Cart, d.Stores, logg))
			r.Post("/items", controllers.CartAddItem(d.Cart, d.Stores, logg))
			r.Patch("/items/{itemID}", controllers.CartSetItemQuantity(d.Cart, logg))
			r.Delete("/items/{itemID}", controllers.CartRemoveItem(d.Cart, logg))
		})

		r.With(middleware.Idempotency(idemStore, logg)).
			Post("/checkout", controllers.Checkout(d.Checkout, d.Stores, logg))
	})

	r.Route("/api/v1/vendor", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.Idempotency(idemStore, logg))

		r.Get("/stores", controllers.VendorStores(d.Stores, logg))
		r.Patch("/stores/{storeID}", controllers.VendorUpdateStore(d.Stores, logg))

		r.Route("/products", func(r chi.Router) {
			r.Post("/", controllers.VendorCreateProduct(d.Catalog, logg))
			r.Get("/", controllers.VendorListProducts(d.Catalog, logg))
			r.Get("/{productID}", controllers.VendorGetProduct(d.Catalog, logg))
			r.Patch("/{productID}", controllers.VendorUpdateProduct(d.Catalog, logg))
			r.Delete("/{productID}", controllers.VendorDeleteProduct(d.Catalog, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.VendorListOrders(d.Orders, logg))
			r.Get("/{orderID}", controllers.VendorGetOrder(d.Orders, logg))
		})
	})

	return r
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Amey8050/Dukaan-clone-sub000/api/routes"
	authsvc "github.com/Amey8050/Dukaan-clone-sub000/internal/auth"
	cartsvc "github.com/Amey8050/Dukaan-clone-sub000/internal/cart"
	"github.com/Amey8050/Dukaan-clone-sub000/internal/catalog"
	checkoutsvc "github.com/Amey8050/Dukaan-clone-sub000/internal/checkout"
	"github.com/Amey8050/Dukaan-clone-sub000/internal/orders"
	"github.com/Amey8050/Dukaan-clone-sub000/internal/stores"
	"github.com/Amey8050/Dukaan-clone-sub000/internal/users"
	"github.com/Amey8050/Dukaan-clone-sub000/pkg/config"
	"github.com/Amey8050/Dukaan-clone-sub000/pkg/db"
	"github.com/Amey8050/Dukaan-clone-sub000/pkg/logger"
	"github.com/Amey8050/Dukaan-clone-sub000/pkg/metrics"
	"github.com/Amey8050/Dukaan-clone-sub000/pkg/migrate"
	"github.com/Amey8050/Dukaan-clone-sub000/pkg/redis"
	"github.com/prometheus/client_golang/prometheus"
)

const shutdownGrace = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	conn := dbClient.DB()

	storeSvc, err := stores.NewService(stores.NewRepository(conn))
	fatalOn(logg, "store service", err)
	catalogSvc, err := catalog.NewService(catalog.NewRepository(conn))
	fatalOn(logg, "catalog service", err)
	cartService, err := cartsvc.NewService(cartsvc.NewRepository(conn), catalogSvc)
	fatalOn(logg, "cart service", err)
	authService, err := authsvc.NewService(authsvc.ServiceParams{
		Tx:             dbClient,
		UserRepo:       users.NewRepository(conn),
		StoreService:   storeSvc,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	fatalOn(logg, "auth service", err)
	ordersService, err := orders.NewService(orders.NewRepository(conn))
	fatalOn(logg, "orders service", err)

	builder, err := checkoutsvc.NewBuilder(catalogSvc)
	fatalOn(logg, "order builder", err)
	checkoutMetrics := metrics.NewCheckoutMetrics(prometheus.DefaultRegisterer)
	checkoutService, err := checkoutsvc.NewService(
		dbClient,
		cartService,
		builder,
		orders.NewRepository(conn),
		catalog.NewRepository(conn),
		logg,
		checkoutMetrics,
		cfg.Checkout.MaxOrderAttempts,
	)
	fatalOn(logg, "checkout service", err)

	handler := routes.NewRouter(routes.Deps{
		Config:   cfg,
		Logger:   logg,
		DB:       dbClient,
		Redis:    redisClient,
		Auth:     authService,
		Stores:   storeSvc,
		Catalog:  catalogSvc,
		Cart:     cartService,
		Checkout: checkoutService,
		Orders:   ordersService,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "error during shutdown", err)
		}
	}

	logg.Info(ctx, "api server stopped")
}

func fatalOn(logg *logger.Logger, what string, err error) {
	if err != nil {
		logg.Error(context.Background(), "failed to create "+what, err)
		os.Exit(1)
	}
}

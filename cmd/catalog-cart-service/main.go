package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aaravmahajanofficial/catalog-cart-service/internal/api"
	"github.com/aaravmahajanofficial/catalog-cart-service/internal/api/handlers"
	"github.com/aaravmahajanofficial/catalog-cart-service/internal/cache"
	"github.com/aaravmahajanofficial/catalog-cart-service/internal/config"
	"github.com/aaravmahajanofficial/catalog-cart-service/internal/health"
	"github.com/aaravmahajanofficial/catalog-cart-service/internal/lock"
	repository "github.com/aaravmahajanofficial/catalog-cart-service/internal/repositories"
	service "github.com/aaravmahajanofficial/catalog-cart-service/internal/services"
	"github.com/aaravmahajanofficial/catalog-cart-service/internal/storage"
	"github.com/aaravmahajanofficial/catalog-cart-service/internal/telemetry"
)

//	@title			Catalog Cart Service API
//	@version		1.0
//	@description	Product catalog and per-user cart backed by a document store.
//	@host			localhost:8080
//	@BasePath		/
func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Tracing setup
	shutdownTracing, err := telemetry.Setup(context.Background(), &cfg.Otel)
	if err != nil {
		slog.Error("❌ Error setting up tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Database setup
	store, err := storage.Open(&cfg.Database)
	if err != nil {
		slog.Error("❌ Error accessing the database", slog.String("driver", cfg.Database.Driver), slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := store.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	if !store.Transactor.Atomic() {
		slog.Warn("Store has no multi-document transactions, cart writes use compensation on failure")
	}

	// Redis setup: product cache and entity locks
	productCache := cache.NewNoopCache()
	locker := lock.NewLocalLocker(cfg.Lock.Wait)

	if cfg.RedisConnect.Disabled {
		slog.Warn("Redis disabled, using in-process locks and no product cache")
	} else {
		redisClient, err := repository.NewRedisClient(&cfg.RedisConnect)
		if err != nil {
			slog.Error("❌ Error accessing the redis instance", slog.String("error", err.Error()))
			os.Exit(1)
		}

		defer func() {
			if err := redisClient.Close(); err != nil {
				slog.Error("⚠️ Error closing redis connection", slog.String("error", err.Error()))
			}
		}()

		productCache = cache.NewRedisCache(redisClient, &cfg.Cache)
		locker = lock.NewRedisLocker(redisClient, &cfg.Lock)
	}

	products := cache.NewReadThrough(productCache, cfg.Cache.DefaultTTL)

	productService := service.NewProductService(store.Products, products)
	accessService := service.NewAccessService(store.Users)
	cartService := service.NewCartService(store.Users, store.Products, productService, store.Transactor, locker, products)

	healthChecker, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("❌ Error setting up health checks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("driver", store.Driver), slog.String("version", "1.0.0"))

	// Setup router
	handler := api.NewRouter(api.Handlers{
		Product: handlers.NewProductHandler(productService, accessService),
		Cart:    handlers.NewCartHandler(cartService),
		Health:  healthChecker.Handler(),
	})

	// Setup http server
	server := http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.String("error", err.Error()))
			done <- syscall.SIGTERM
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("⚠️ Tracer shutdown encountered an issue", slog.String("error", err.Error()))
	}
}

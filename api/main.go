package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/rogerio-castellano/product-catalog/docs"
	"github.com/rogerio-castellano/product-catalog/internal/config"
	"github.com/rogerio-castellano/product-catalog/internal/db"
	api "github.com/rogerio-castellano/product-catalog/internal/http"
	"github.com/rogerio-castellano/product-catalog/internal/http/handlers"
	rl "github.com/rogerio-castellano/product-catalog/internal/http/rate_limiter"
	"github.com/rogerio-castellano/product-catalog/internal/logging"
	"github.com/rogerio-castellano/product-catalog/internal/queue"
	"github.com/rogerio-castellano/product-catalog/internal/redissvc"
	repo "github.com/rogerio-castellano/product-catalog/internal/repo"
	"github.com/rogerio-castellano/product-catalog/internal/service"
)

// @title Product Catalog API
// @version 1.0
// @description REST API for managing catalog products with synchronous (v1) and asynchronous (v2) stock updates.
// @host localhost:8080
// @BasePath /
func main() {
	cfg := config.Load()

	logger, err := logging.Init()
	if err != nil {
		log.Fatalf("could not initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var productRepo repo.ProductRepository
	if cfg.DatabaseURL != "" {
		database, err := db.Connect(cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("could not connect to database", zap.Error(err))
		}
		defer database.Close()
		productRepo = repo.NewPostgresProductRepository(database)
	} else {
		logger.Warn("DATABASE_URL not set, using in-memory product repository")
		productRepo = repo.NewInMemoryProductRepository()
	}

	var cache *redissvc.ProductCache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unavailable, product cache disabled", zap.Error(err))
		} else {
			defer rdb.Close()
			cache = redissvc.NewProductCache(rdb, cfg.CacheTTL, logger)
		}
	}

	productService := service.NewProductService(productRepo, cfg.DefaultPageSize, cfg.MaxPageSize)
	stockQueue := queue.NewStockUpdateQueue()
	stockHandler := queue.NewStockUpdateHandler(productService, logger)
	processor := queue.NewProcessor(stockQueue, stockHandler, cfg.ProcessingInterval, logger)
	processor.Start(ctx)

	rl.Configure(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go rl.StartVisitorCleanupLoop(ctx)

	handlers.SetProductService(productService)
	handlers.SetStockQueue(stockQueue)
	handlers.SetProductCache(cache)
	handlers.SetLogger(logger)
	api.SetLogger(logger)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.NewRouter(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("server running", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigc
	logger.Info("shutting down", zap.String("signal", sig.String()))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}

	// Stop the processor after the server: the in-flight item finishes,
	// anything still queued is dropped.
	cancel()
	logger.Info("server stopped", zap.Int("dropped_updates", stockQueue.Size()))
}

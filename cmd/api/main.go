package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"roots-catalog/internal/cache"
	"roots-catalog/internal/config"
	"roots-catalog/internal/database"
	"roots-catalog/internal/events"
	"roots-catalog/internal/handler"
	"roots-catalog/internal/repository"
	"roots-catalog/internal/router"
	"roots-catalog/internal/service"
	"roots-catalog/internal/storage"

	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting roots catalogue API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Apply schema migrations
	if cfg.Database.AutoMigrate {
		if err := database.Migrate(cfg.Database.ConnectionString(), logger); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	productRepo := repository.NewProductRepository(pool, logger)

	productCache, closeCache := newProductCache(ctx, cfg.Cache, logger)
	defer closeCache()

	publisher := events.NewNop()
	if cfg.Events.Enabled {
		publisher = events.NewKafkaPublisher(cfg.Events, logger)
	} else {
		logger.Info().Msg("product events disabled")
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close event publisher")
		}
	}()

	// Initialize image storage, remote drivers fall back to local when configured
	imageStore, err := storage.New(ctx, cfg.Storage, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize image storage: %w", err)
	}

	// Initialize services
	productService := service.NewProductService(productRepo, productCache, publisher, cfg.Catalog.PageSize, logger)
	uploadService := service.NewUploadService(imageStore, cfg.Storage.MaxUploadBytes, logger)

	// Initialize HTTP handlers
	productHandler := handler.NewProductHandler(productService, logger)
	uploadHandler := handler.NewUploadHandler(uploadService, cfg.Storage.MaxUploadBytes, logger)

	// Initialize router
	opts := router.Options{APIKey: cfg.Auth.APIKey}
	if storage.ServesLocal(cfg.Storage) {
		opts.UploadsDir = cfg.Storage.LocalDir
		opts.PublicPath = cfg.Storage.PublicPath
	}
	mux := router.New(productHandler, uploadHandler, opts, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Str("storage", cfg.Storage.Driver).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// newProductCache connects to Redis when caching is enabled. An unreachable
// Redis disables caching rather than failing startup.
func newProductCache(ctx context.Context, cfg config.CacheConfig, logger zerolog.Logger) (cache.ProductCache, func()) {
	if !cfg.Enabled {
		logger.Info().Msg("product cache disabled")
		return cache.NewNop(), func() {}
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()

	client, err := cache.NewRedisClient(pingCtx, cfg)
	if err != nil {
		logger.Warn().Err(err).Str("addr", cfg.Addr).Msg("redis unavailable, product cache disabled")
		return cache.NewNop(), func() {}
	}

	logger.Info().Str("addr", cfg.Addr).Dur("ttl", cfg.TTL).Msg("product cache enabled")

	return cache.NewRedisCache(client, cfg.TTL, logger), func() {
		if err := client.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close redis client")
		}
	}
}

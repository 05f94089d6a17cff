package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tradestreet-api/internal/auth"
	"tradestreet-api/internal/config"
	"tradestreet-api/internal/database"
	"tradestreet-api/internal/handler"
	"tradestreet-api/internal/payment"
	"tradestreet-api/internal/repository"
	"tradestreet-api/internal/repository/mongostore"
	"tradestreet-api/internal/router"
	"tradestreet-api/internal/service"
	"tradestreet-api/internal/storage"

	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// repositories holds the storage backend selected by configuration.
type repositories struct {
	users    repository.UserRepository
	products repository.ProductRepository
	orders   repository.OrderRepository
	close    func()
}

// openRepositories connects to the configured database and prepares its schema.
func openRepositories(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*repositories, error) {
	switch cfg.Driver {
	case config.DriverMongo:
		client, db, err := database.NewMongoClient(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, fmt.Errorf("failed to ensure indexes: %w", err)
		}
		return &repositories{
			users:    mongostore.NewUserRepository(db, logger),
			products: mongostore.NewProductRepository(db, logger),
			orders:   mongostore.NewOrderRepository(db, logger),
			close: func() {
				if err := client.Disconnect(context.Background()); err != nil {
					logger.Error().Err(err).Msg("failed to disconnect from mongodb")
				}
			},
		}, nil

	default:
		pool, err := database.NewPool(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		if err := repository.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to ensure schema: %w", err)
		}
		return &repositories{
			users:    repository.NewUserRepository(pool, logger),
			products: repository.NewProductRepository(pool, logger),
			orders:   repository.NewOrderRepository(pool, logger),
			close:    pool.Close,
		}, nil
	}
}

// newImageStore builds the local image store, fronted by S3 when enabled.
func newImageStore(ctx context.Context, cfg config.StorageConfig, logger zerolog.Logger) storage.ImageStore {
	fileStore := storage.NewFileStore(cfg.LocalDir, cfg.PublicBaseURL, logger)

	if !cfg.S3Enabled {
		logger.Info().Str("dir", cfg.LocalDir).Msg("using local file system for product images (S3 disabled)")
		return fileStore
	}

	s3Store, err := storage.NewS3Store(ctx, cfg.S3Bucket, cfg.S3Region, cfg.S3Prefix, logger)
	if err != nil {
		logger.Warn().
			Err(err).
			Msg("failed to initialise S3 store, falling back to local file system only")
		return fileStore
	}

	return storage.NewFallbackStore(s3Store, fileStore, logger)
}

// newGateway returns the card processor, or nil when no key is configured.
func newGateway(cfg config.PaymentConfig, logger zerolog.Logger) payment.Gateway {
	if !cfg.Enabled() {
		logger.Warn().Msg("STRIPE_SECRET_KEY not set, card checkout disabled")
		return nil
	}
	return payment.NewStripeGateway(cfg.StripeSecretKey, cfg.APIBase, logger)
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Str("db_driver", cfg.Database.Driver).Msg("starting tradestreet API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repos, err := openRepositories(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer repos.close()

	images := newImageStore(ctx, cfg.Storage, logger)
	gateway := newGateway(cfg.Payment, logger)
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	// Initialize services
	authService := service.NewAuthService(repos.users, tokens, cfg.Auth.AllowAdminSignup, logger)
	productService := service.NewProductService(repos.products, images, logger)
	cartService := service.NewCartService(repos.users, repos.products, logger)
	orderService := service.NewOrderService(repos.orders, repos.users, repos.products, logger)
	checkoutService := service.NewCheckoutService(gateway, repos.orders, repos.users, service.CheckoutConfig{
		Currency:         cfg.Payment.Currency,
		FrontendURL:      cfg.Payment.FrontendURL,
		RequireSucceeded: cfg.Payment.RequireSucceeded,
	}, logger)

	// Initialize router
	mux := router.New(router.Handlers{
		Auth:     handler.NewAuthHandler(authService, logger),
		Product:  handler.NewProductHandler(productService, logger),
		Cart:     handler.NewCartHandler(cartService, logger),
		Order:    handler.NewOrderHandler(orderService, logger),
		Checkout: handler.NewCheckoutHandler(checkoutService, logger),
	}, tokens, cfg.Storage.LocalDir, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
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

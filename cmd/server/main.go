package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/productcatalog/backend/config"
	httpDelivery "github.com/productcatalog/backend/internal/delivery/http"
	"github.com/productcatalog/backend/internal/domain"
	"github.com/productcatalog/backend/internal/infrastructure/memstore"
	"github.com/productcatalog/backend/internal/infrastructure/mongostore"
	appLogger "github.com/productcatalog/backend/internal/logger"
	"github.com/productcatalog/backend/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := appLogger.New(cfg.Log.Level, cfg.Server.Environment, "catalog-backend")
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	os.Exit(finish(logger, run(cfg, logger)))
}

// finish logs a run error, flushes the logger and returns the process exit code
func finish(logger *zap.Logger, err error) int {
	code := 0
	if err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
		code = 1
	}
	_ = logger.Sync()
	return code
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting catalog backend",
		zap.String("port", cfg.Server.Port),
		zap.String("store", cfg.Store.Type),
	)

	// Initialize the product store
	repo, closeStore, err := openStore(ctx, cfg.Store, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	// Initialize usecase layer
	catalogService := usecase.NewCatalogService(repo, logger)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(catalogService)
	router := httpDelivery.SetupRouter(cfg, handler, logger)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "listen")
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	return nil
}

// openStore selects the repository backend from configuration
func openStore(ctx context.Context, cfg config.StoreConfig, logger *zap.Logger) (domain.ProductRepository, func(), error) {
	switch cfg.Type {
	case "mongo":
		connectTimeout := cfg.Timeout
		if connectTimeout <= 0 {
			connectTimeout = shutdownTimeout
		}
		connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()

		store, err := mongostore.Connect(connectCtx, mongostore.Options{
			URI:        cfg.URI,
			Database:   cfg.Database,
			Collection: cfg.Collection,
			Timeout:    cfg.Timeout,
		}, logger)
		if err != nil {
			return nil, nil, errors.Wrap(err, "open mongo store")
		}

		logger.Info("Connected to MongoDB",
			zap.String("database", cfg.Database),
			zap.String("collection", cfg.Collection),
		)
		return store, func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := store.Close(closeCtx); err != nil {
				logger.Warn("Failed to close mongo store", zap.Error(err))
			}
		}, nil
	default:
		logger.Warn("Using in-memory product store, data is lost on restart")
		return memstore.NewMemoryStore(), func() {}, nil
	}
}

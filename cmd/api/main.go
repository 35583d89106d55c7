package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gedapi/internal/config"
	"gedapi/internal/database"
	"gedapi/internal/database/migration"
	handlers "gedapi/internal/http/handler"
	"gedapi/internal/http/middleware"
	"gedapi/internal/otel"
	"gedapi/internal/repository/postgres"
	"gedapi/internal/service"
	"gedapi/internal/storage"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	ctx := context.Background()

	shutdownTracing, err := otel.Init(ctx, time.UTC)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Printf("failed to shut down tracing: %v", err)
		}
	}()

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, time.UTC, cfg.Database.Host); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	store, err := newFileStore(cfg.Storage)
	if err != nil {
		log.Fatalf("failed to initialize artifact storage: %v", err)
	}

	// Initialize repositories and services
	catRepo := postgres.NewCategoryPostgres(db)
	docRepo := postgres.NewDocumentPostgres(db)
	catSvc := service.NewCategoryService(catRepo)
	docSvc := service.NewDocumentService(store, docRepo)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Register global middleware
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger())
	app.Use(otelfiber.Middleware())

	promMw, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}
	app.Use(promMw.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Register HTTP routes with injected services
	handlers.RegisterRoutes(app, db, catSvc, docSvc)

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

// newFileStore builds the artifact backend selected by STORAGE_BACKEND.
func newFileStore(cfg config.StorageConfig) (storage.FileStore, error) {
	switch cfg.Backend {
	case "minio":
		return storage.NewMinIO(cfg.MinIO)
	default:
		return storage.NewLocal(cfg.Root)
	}
}

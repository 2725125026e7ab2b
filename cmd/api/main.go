package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fleetmetrics/internal/auth"
	"fleetmetrics/internal/config"
	"fleetmetrics/internal/database"
	"fleetmetrics/internal/database/migration"
	handlers "fleetmetrics/internal/http/handler"
	"fleetmetrics/internal/http/middleware"
	"fleetmetrics/internal/otel"
	"fleetmetrics/internal/repository"
	"fleetmetrics/internal/repository/postgres"
	"fleetmetrics/internal/service"
	"fleetmetrics/internal/storage"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	if cfg.Auth.JWTSecret == "" {
		log.Fatal("AUTH_JWT_SECRET must be set")
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatalf("invalid timezone %q: %v", cfg.Timezone, err)
	}

	ctx := context.Background()

	// Initialize tracing (OTLP); degrades to noop when disabled
	shutdownTracing, err := otel.Init(ctx, loc)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer shutdownTracing(context.Background())

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, loc, cfg.Database.Host); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Initialize reusable S3-compatible object storage client (MinIO-supported)
	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	// Initialize repositories and services
	userRepo := postgres.NewUserPostgres(db)
	analyticsRepo := postgres.NewAnalyticsPostgres(db)
	docRepo := postgres.NewDocumentPostgres(db)

	authSvc := service.NewAuthService(userRepo, cfg.Auth.JWTSecret, time.Duration(cfg.Auth.AccessTTLMin)*time.Minute)
	analyticsSvc := service.NewAnalyticsService(analyticsRepo)
	docSvc := service.NewDocumentService(objStore, docRepo)

	if err := seedUser(ctx, cfg.Auth, userRepo); err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Register global middleware
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger())
	app.Use(otelfiber.Middleware())

	reg := prometheus.NewRegistry()
	promMW, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}
	app.Use(promMW.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// Register HTTP routes with injected services
	handlers.RegisterRoutes(app, db, cfg.Auth.JWTSecret, authSvc, analyticsSvc, docSvc)

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

// seedUser provisions the configured credential on a fresh database so the
// token endpoint is usable. Existing users are never overwritten.
func seedUser(ctx context.Context, cfg config.AuthConfig, users repository.UserRepository) error {
	if cfg.SeedUsername == "" || cfg.SeedPassword == "" {
		return nil
	}
	hash, err := auth.HashPassword(cfg.SeedPassword, cfg.BcryptCost)
	if err != nil {
		return err
	}
	return users.CreateIfAbsent(ctx, cfg.SeedUsername, hash)
}

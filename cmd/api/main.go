package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"claimflow/docs"
	"claimflow/internal/config"
	"claimflow/internal/database"
	"claimflow/internal/database/migration"
	handlers "claimflow/internal/http/handler"
	"claimflow/internal/http/middleware"
	"claimflow/internal/lock"
	"claimflow/internal/logging"
	tracing "claimflow/internal/otel"
	"claimflow/internal/repository/postgres"
	"claimflow/internal/service"
	"claimflow/internal/storage"
)

const shutdownTimeout = 15 * time.Second

// @title Claimflow API
// @version 1.0
// @description Monthly work-claim submission and approval.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	loc := logging.LoadLocation(cfg.Timezone)
	log := logging.New(os.Stdout, cfg.LogLevel, loc)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, log)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize tracing")
	}

	db, err := database.NewPostgres(cfg.Database, log)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
		log.WithError(err).Fatal("failed to apply migrations")
	}

	objStore, err := storage.NewMinIO(cfg.MinIO, log)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize object storage")
	}

	locker, closeLocker, err := lock.New(ctx, cfg.Redis, log)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize claim locker")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := service.NewMetrics(reg)
	if err != nil {
		log.WithError(err).Fatal("failed to register service metrics")
	}
	httpMetrics, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.WithError(err).Fatal("failed to register http metrics")
	}

	claimRepo := postgres.NewClaimPostgres(db)
	docRepo := postgres.NewDocumentPostgres(db)
	userRepo := postgres.NewUserPostgres(db)

	claimSvc := service.NewClaimService(claimRepo, docRepo, locker, log, metrics)
	attachSvc := service.NewAttachmentService(objStore, docRepo, claimRepo, log)
	userSvc := service.NewUserService(userRepo, log)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    cfg.BodyLimitBytes,
	})

	app.Use(otelfiber.Middleware())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	app.Use(httpMetrics.Handler())

	handlers.RegisterRoutes(app, handlers.Deps{
		DB:          db,
		Claims:      claimSvc,
		Attachments: attachSvc,
		Users:       userSvc,
		Auth:        cfg.Auth,
		Gatherer:    reg,
		Log:         log,
		Location:    loc,
	})

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	go func() {
		<-ctx.Done()
		log.Info("shutting down")

		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(sctx); err != nil {
			log.WithError(err).Error("http shutdown")
		}
	}()

	addr := ":" + cfg.Port
	log.WithField("addr", addr).Info("listening")
	if err := app.Listen(addr); err != nil {
		log.WithError(err).Error("server stopped")
	}

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := shutdownTracing(sctx); err != nil {
		log.WithError(err).Warn("tracing shutdown")
	}
	if err := closeLocker(); err != nil {
		log.WithError(err).Warn("closing redis client")
	}
}

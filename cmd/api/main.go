package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/joho/godotenv"
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"rewear/internal/config"
	"rewear/internal/database"
	"rewear/internal/handler"
	"rewear/internal/middleware"
	"rewear/internal/observability"
	"rewear/internal/pkg/i18n"
	"rewear/internal/repository"
	"rewear/internal/service"
)

func main() {
	envErr := godotenv.Load()

	cfg := config.Load()

	log := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)
	if envErr != nil {
		log.Info("no .env file found, using environment variables")
	}

	if err := i18n.Load(); err != nil {
		log.Error("failed to load message catalog", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if cfg.AutoMigrate {
		if err := database.Up(ctx, db.DB); err != nil {
			log.Error("failed to apply migrations", "error", err)
			os.Exit(1)
		}
	}

	var redisClient *redis.Client
	if rc, err := config.NewRedisClient(ctx, cfg); err != nil {
		log.Warn("redis unavailable, realtime notifications and stats cache disabled", "error", err)
	} else {
		redisClient = rc
		defer redisClient.Close()
	}

	var minioClient *minio.Client
	if mc, err := config.NewMinIOClient(ctx, cfg); err != nil {
		log.Warn("minio unavailable, image upload disabled", "error", err)
	} else {
		minioClient = mc
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redisClient, minioClient, cfg)
	handlers := handler.NewHandlers(services)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	prom := observability.NewHTTPMetrics("rewear")
	prom.RegisterAt(app, "/metrics")

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))
	app.Use(prom.Middleware)

	handler.RegisterRoutes(app, handlers, services.Auth)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error("shutdown failed", "error", err)
		}
	}()

	log.Info("server starting", "port", cfg.Port, "environment", cfg.Environment)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Error("failed to start server", "error", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pageza/freshkeep/backend/config"
	"github.com/pageza/freshkeep/backend/internal/api"
	"github.com/pageza/freshkeep/backend/internal/database"
	"github.com/pageza/freshkeep/backend/internal/logger"
	"github.com/pageza/freshkeep/backend/internal/middleware"
	"github.com/pageza/freshkeep/backend/internal/router"
	"github.com/pageza/freshkeep/backend/internal/server"
	"github.com/pageza/freshkeep/backend/internal/service"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	// Initialize configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(logger.Config{
		Level:       cfg.App.LogLevel,
		Format:      cfg.App.LogFormat,
		Development: cfg.IsDevelopment(),
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zlog.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := run(cfg, zlog); err != nil {
		zlog.Fatal("Server error", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx := context.Background()

	db, err := database.New(cfg.Database, log)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.RunMigrations(db.DB, log); err != nil {
		return err
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = database.NewRedisClient(cfg.Redis, log)
		if err != nil {
			// Continue with the in-process limiter if Redis is not available
			log.Warn("Failed to connect to Redis, using local rate limiting", zap.Error(err))
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	var limiter middleware.Limiter
	if cfg.RateLimit.Enabled {
		limitCfg := middleware.RateLimitConfig{
			Window:    cfg.RateLimit.Window,
			Limit:     cfg.RateLimit.Requests,
			KeyPrefix: "rate_limit:suggestions",
		}
		if redisClient != nil {
			limiter = middleware.NewRateLimiter(redisClient, limitCfg)
		} else {
			limiter = middleware.NewLocalLimiter(limitCfg)
		}
	}

	var storage service.Presigner
	if cfg.Storage.Enabled() {
		s3cfg, err := config.NewS3Config(ctx, cfg.Storage)
		if err != nil {
			log.Warn("Photo storage disabled", zap.Error(err))
		} else {
			storage = s3cfg
		}
	}

	if cfg.Gateway.APIKey == "" {
		log.Warn("Gateway credential is not set; suggestions will return no recipes")
	}
	gateway := service.NewGatewayClient(cfg.Gateway, log)
	defer gateway.Close()

	// Initialize services
	suggestions := service.NewSuggestionService(gateway, cfg.Gateway, log)
	inventory := service.NewInventoryService(db.DB, cfg.Inventory.ExpiringWindowDays)
	shopping := service.NewShoppingService(db.DB)
	photos := service.NewPhotoService(storage, inventory)

	engine := router.SetupRouter(router.Dependencies{
		Recipes:        api.NewRecipeHandler(suggestions, inventory, log),
		Inventory:      api.NewInventoryHandler(inventory, photos),
		Shopping:       api.NewShoppingHandler(shopping),
		Health:         api.NewHealthHandler(db, redisClient),
		TokenValidator: middleware.NewJWTValidator(cfg.Auth.JWTSecret),
		Limiter:        limiter,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Logger:         log,
	})

	srv := server.New(cfg.Server, engine, log)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-quit:
		log.Info("Received signal", zap.String("signal", sig.String()))
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info("Server stopped")
	return nil
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/freshkeep/backend/config"
	"github.com/pageza/freshkeep/backend/internal/database"
	"github.com/pageza/freshkeep/backend/internal/logger"
	"github.com/pageza/freshkeep/backend/internal/service"
	"github.com/pageza/freshkeep/backend/internal/types"
)

type seedItem struct {
	name      string
	quantity  float64
	unit      string
	category  string
	expiresIn int
}

// Demo inventory spread across the dashboard window
var seedItems = []seedItem{
	{"Milk", 1, "l", "dairy", 1},
	{"Greek Yogurt", 2, "cup", "dairy", 2},
	{"Spinach", 1, "bag", "vegetables", 0},
	{"Chicken Breast", 500, "g", "meat", 2},
	{"Tomatoes", 6, "piece", "vegetables", 4},
	{"Cheddar", 200, "g", "dairy", 14},
	{"Rice", 1, "kg", "grains", 180},
	{"Apples", 4, "piece", "fruits", 9},
}

var seedShopping = []types.CreateShoppingItemRequest{
	{ItemName: "Eggs", Quantity: 12, Unit: "piece"},
	{ItemName: "Olive Oil", Quantity: 1, Unit: "bottle"},
	{ItemName: "Basil"},
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	user := flag.String("user", "", "user id to seed (random when empty)")
	tokenTTL := flag.Duration("token-ttl", 24*time.Hour, "lifetime of the printed access token")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.IsProduction() {
		log.Fatal("Refusing to seed a production database")
	}

	zlog, err := logger.New(logger.Config{Level: cfg.App.LogLevel, Format: "console", Development: true})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zlog.Sync()

	userID := uuid.New()
	if *user != "" {
		if userID, err = uuid.Parse(*user); err != nil {
			zlog.Fatal("Invalid user id", zap.Error(err))
		}
	}

	db, err := database.New(cfg.Database, zlog)
	if err != nil {
		zlog.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	if err := database.RunMigrations(db.DB, zlog); err != nil {
		zlog.Fatal("Failed to migrate database", zap.Error(err))
	}

	ctx := context.Background()
	inventory := service.NewInventoryService(db.DB, cfg.Inventory.ExpiringWindowDays)
	shopping := service.NewShoppingService(db.DB)

	for _, it := range seedItems {
		quantity := it.quantity
		_, err := inventory.Create(ctx, userID, &types.CreateInventoryItemRequest{
			Name:       it.name,
			Quantity:   &quantity,
			Unit:       it.unit,
			Category:   it.category,
			ExpiryDate: time.Now().AddDate(0, 0, it.expiresIn).Format(time.DateOnly),
		})
		if err != nil {
			zlog.Fatal("Failed to create inventory item", zap.String("name", it.name), zap.Error(err))
		}
	}
	for i := range seedShopping {
		if _, err := shopping.Add(ctx, userID, &seedShopping[i]); err != nil {
			zlog.Fatal("Failed to create shopping item", zap.String("name", seedShopping[i].ItemName), zap.Error(err))
		}
	}
	zlog.Info("Seeded demo data",
		zap.String("user_id", userID.String()),
		zap.Int("inventory_items", len(seedItems)),
		zap.Int("shopping_items", len(seedShopping)),
	)

	if cfg.Auth.JWTSecret == "" {
		zlog.Warn("No JWT secret configured; skipping access token")
		return
	}
	token, err := signToken(cfg.Auth.JWTSecret, userID, *tokenTTL)
	if err != nil {
		zlog.Fatal("Failed to sign access token", zap.Error(err))
	}
	fmt.Printf("Authorization: Bearer %s\n", token)
}

// signToken issues a token shaped like the hosted auth platform's
func signToken(secret string, userID uuid.UUID, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email: "demo@freshkeep.local",
		Role:  "authenticated",
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

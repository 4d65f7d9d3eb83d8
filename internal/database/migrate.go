package database

import (
	"fmt"

	"github.com/pageza/freshkeep/backend/internal/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func models() []interface{} {
	return []interface{}{
		&model.InventoryItem{},
		&model.ShoppingItem{},
	}
}

// RunMigrations brings the schema up to date for both supported dialects
func RunMigrations(db *gorm.DB, log *zap.Logger) error {
	log.Info("Running auto-migration", zap.String("dialect", db.Dialector.Name()))
	if err := db.AutoMigrate(models()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

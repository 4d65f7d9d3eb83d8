package testhelpers

import (
	"path/filepath"
	"testing"

	"github.com/pageza/freshkeep/backend/config"
	"github.com/pageza/freshkeep/backend/internal/database"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupTestDatabase opens a migrated sqlite database in a temp directory.
// The connection is closed when the test finishes.
func SetupTestDatabase(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.New(config.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "freshkeep_test.db"),
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("failed to close test database: %v", err)
		}
	})

	if err := database.RunMigrations(db.DB, zap.NewNop()); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// SetupGormDB is SetupTestDatabase for callers that only need gorm
func SetupGormDB(t *testing.T) *gorm.DB {
	t.Helper()
	return SetupTestDatabase(t).DB
}

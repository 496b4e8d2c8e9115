// Package testutil provides the in-memory store and token setup shared by
// package tests.
package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/keeptrack-dev/keeptrack/db"
	"github.com/keeptrack-dev/keeptrack/internal/auth"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenTestDB opens a per-test in-memory sqlite store with foreign keys
// enforced and the full schema migrated.
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name)

	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})

	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := database.DB()

	if err != nil {
		t.Fatalf("failed to access test database pool: %v", err)
	}

	// One connection keeps the shared in-memory database alive for the
	// whole test.
	sqlDB.SetMaxOpenConns(1)

	if err := database.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	if err := db.Migrate(database); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return database
}

// InitTestJWT points the token issuer at a throwaway secret.
func InitTestJWT(t *testing.T) {
	t.Helper()

	t.Setenv("JWT_SECRET", "keeptrack-test-secret")
	t.Setenv("JWT_TTL_SECONDS", "")

	if err := auth.InitJWT(); err != nil {
		t.Fatalf("failed to initialize JWT: %v", err)
	}
}

package services

import (
	"testing"

	"github.com/keeptrack-dev/keeptrack/internal/models"
	"github.com/keeptrack-dev/keeptrack/internal/testutil"
	"gorm.io/gorm"
)

func newTestServices(t *testing.T) (*gorm.DB, *AssetService, *MaintenanceService) {
	t.Helper()

	database := testutil.OpenTestDB(t)
	assets := NewAssetService(database)

	return database, assets, NewMaintenanceService(database, assets)
}

func createTestUser(t *testing.T, database *gorm.DB, email string) *models.User {
	t.Helper()

	user := &models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "irrelevant",
	}

	if err := database.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	return user
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

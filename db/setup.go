package db

import (
	"time"

	"github.com/keeptrack-dev/keeptrack/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the store and returns the handle. The caller owns the
// lifecycle: open at process start, Close at shutdown. No package-level
// global, so tests can substitute their own handle.
func Connect(dsn string) (*gorm.DB, error) {
	database, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})

	if err != nil {
		return nil, err
	}

	sqlDB, err := database.DB()

	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return database, nil
}

// Migrate creates the users, assets and maintenance_records tables with their
// cascade constraints and secondary indexes.
func Migrate(database *gorm.DB) error {
	tables := []interface{}{
		&models.User{},
		&models.Asset{},
		&models.MaintenanceRecord{},
	}

	migrator := database.Migrator()

	for _, table := range tables {
		if !migrator.HasTable(table) {
			if err := database.AutoMigrate(table); err != nil {
				return err
			}
		}
	}

	return nil
}

// Close releases the underlying connection pool.
func Close(database *gorm.DB) error {
	sqlDB, err := database.DB()

	if err != nil {
		return err
	}

	return sqlDB.Close()
}

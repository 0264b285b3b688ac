package services

import (
	"testing"

	"shadow-ranch-system/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	// :memory: databases are per-connection; keep the pool at one.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.UserProgress{},
		&models.UserProfile{},
		&models.AchievementBadge{},
		&models.MintReceipt{},
	); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return db
}

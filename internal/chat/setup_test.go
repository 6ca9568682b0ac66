package chat

import (
	"testing"
	"time"

	"github.com/projet-mariage/wedding-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.Guest{}); err != nil {
		t.Fatalf("failed to auto migrate: %v", err)
	}
	return db
}

func boolPtr(b bool) *bool    { return &b }
func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }

func seedGuest(t *testing.T, db *gorm.DB, g models.Guest) models.Guest {
	t.Helper()
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now()
	}
	if err := db.Create(&g).Error; err != nil {
		t.Fatalf("failed to seed guest: %v", err)
	}
	return g
}

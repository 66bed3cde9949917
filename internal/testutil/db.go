package testutil

import (
	"testing"
	"time"

	"revu/internal/database"
	"revu/internal/domain"
	"revu/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens an isolated in-memory database with the full schema. A single
// connection keeps the in-memory store alive across the pool.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func CreateUser(t *testing.T, db *gorm.DB, username, role string) *models.User {
	t.Helper()
	u := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Name:         username,
		Role:         role,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return u
}

func CreateCampaign(t *testing.T, db *gorm.DB, advertiserID uint, capacity int) *models.Campaign {
	t.Helper()
	c := &models.Campaign{
		Title:        "test campaign",
		Description:  "desc",
		Category:     domain.Categories[0],
		Capacity:     capacity,
		StartDate:    time.Now(),
		EndDate:      time.Now().AddDate(0, 1, 0),
		AdvertiserID: advertiserID,
		IsActive:     true,
	}
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("create campaign: %v", err)
	}
	return c
}

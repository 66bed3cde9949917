package database

import (
	"time"

	"revu/config"
	"revu/internal/auth"
	"revu/internal/domain"
	"revu/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Error),
		TranslateError: true, // unique violations surface as gorm.ErrDuplicatedKey
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db, nil
}

// AutoMigrate runs Gorm auto-migration for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Campaign{},
		&models.Application{},
		&models.Notification{},
		&models.Like{},
		&models.Session{},
	)
}

// Seed inserts a sample advertiser and campaigns on an empty database.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	hash, err := auth.HashPassword("password123")
	if err != nil {
		return err
	}
	advertiser := &models.User{
		Username:     "demo_advertiser",
		Email:        "marketing@example.com",
		PasswordHash: hash,
		Name:         "Demo Advertiser",
		Role:         domain.RoleAdvertiser,
	}
	if err := db.Create(advertiser).Error; err != nil {
		return err
	}
	campaigns := []models.Campaign{
		{
			Title:        "New smartphone early access reviewers",
			Description:  "Try the latest flagship before launch and write an honest review.",
			Category:     "electronics",
			Location:     "Gangnam, Seoul",
			ShopName:     "Demo Electronics",
			Capacity:     20,
			Benefit:      "One month free rental, device gift for best reviewers",
			Requirement:  "5,000+ followers, prior electronics review experience preferred",
			StartDate:    time.Now(),
			EndDate:      time.Now().AddDate(0, 1, 0),
			AdvertiserID: advertiser.ID,
			IsActive:     true,
		},
		{
			Title:        "Brunch cafe tasting campaign",
			Description:  "Visit our new brunch cafe and share your experience.",
			Category:     "cafe",
			Location:     "Hongdae, Seoul",
			ShopName:     "Demo Cafe",
			Capacity:     10,
			Benefit:      "Free meal for two",
			Requirement:  "Food/lifestyle focus",
			StartDate:    time.Now(),
			EndDate:      time.Now().AddDate(0, 1, 0),
			AdvertiserID: advertiser.ID,
			IsActive:     true,
		},
	}
	return db.Create(&campaigns).Error
}

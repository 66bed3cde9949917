package repository

import (
	"revu/internal/domain"
	"revu/internal/models"

	"gorm.io/gorm"
)

type CampaignRepository struct {
	db *gorm.DB
}

func NewCampaignRepository(db *gorm.DB) *CampaignRepository {
	return &CampaignRepository{db: db}
}

func (r *CampaignRepository) Create(c *models.Campaign) error {
	return r.db.Create(c).Error
}

func (r *CampaignRepository) GetByID(id uint) (*models.Campaign, error) {
	var c models.Campaign
	err := r.db.First(&c, id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListByCategory returns campaigns newest-first; the "all" sentinel disables
// the filter.
func (r *CampaignRepository) ListByCategory(category string) ([]models.Campaign, error) {
	q := r.db.Order("created_at DESC")
	if category != "" && category != domain.CategoryAll {
		q = q.Where("category = ?", category)
	}
	var list []models.Campaign
	err := q.Find(&list).Error
	return list, err
}

func (r *CampaignRepository) ListByAdvertiserID(advertiserID uint) ([]models.Campaign, error) {
	var list []models.Campaign
	err := r.db.Where("advertiser_id = ?", advertiserID).Order("created_at DESC").Find(&list).Error
	return list, err
}

// IncrementViews bumps view_count atomically at the storage layer.
func (r *CampaignRepository) IncrementViews(id uint) error {
	return r.db.Model(&models.Campaign{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

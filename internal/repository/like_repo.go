package repository

import (
	"errors"

	"revu/internal/models"

	"gorm.io/gorm"
)

type LikeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

func (r *LikeRepository) Get(userID, campaignID uint) (*models.Like, error) {
	var l models.Like
	err := r.db.Where("user_id = ? AND campaign_id = ?", userID, campaignID).First(&l).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LikeRepository) Exists(userID, campaignID uint) (bool, error) {
	_, err := r.Get(userID, campaignID)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}

// Toggle creates or deletes the (user, campaign) like and adjusts the
// campaign's like_count in the same transaction, keeping the counter in step
// with the rows. The decrement is floored at zero. Returns the resulting
// liked state.
func (r *LikeRepository) Toggle(userID, campaignID uint) (bool, error) {
	var liked bool
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND campaign_id = ?", userID, campaignID).
			Delete(&models.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			liked = false
			return tx.Model(&models.Campaign{}).
				Where("id = ? AND like_count > 0", campaignID).
				UpdateColumn("like_count", gorm.Expr("like_count - 1")).Error
		}
		if err := tx.Create(&models.Like{UserID: userID, CampaignID: campaignID}).Error; err != nil {
			return err
		}
		liked = true
		return tx.Model(&models.Campaign{}).Where("id = ?", campaignID).
			UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error
	})
	return liked, err
}

package repository

import (
	"errors"
	"strings"
	"time"

	"revu/internal/domain"
	"revu/internal/models"

	"gorm.io/gorm"
)

var (
	ErrCampaignFull   = errors.New("campaign capacity exceeded")
	ErrAlreadyApplied = errors.New("already applied to this campaign")
	ErrAlreadyAwarded = errors.New("points already awarded")
)

type ApplicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// CreateWithinCapacity inserts the application only while the campaign still
// has room. The count check and the insert are a single statement, so two
// concurrent applies at the capacity boundary cannot both get in; duplicates
// are stopped by the (campaign_id, user_id) unique index. On success app is
// reloaded with its generated ID and defaults.
func (r *ApplicationRepository) CreateWithinCapacity(app *models.Application, capacity int) error {
	if app.AppliedAt.IsZero() {
		app.AppliedAt = time.Now()
	}
	res := r.db.Exec(
		`INSERT INTO applications (campaign_id, user_id, status, message, applied_at)
		 SELECT ?, ?, ?, ?, ? FROM (SELECT 1) AS seed
		 WHERE (SELECT COUNT(*) FROM applications WHERE campaign_id = ?) < ?`,
		app.CampaignID, app.UserID, string(app.Status), app.Message, app.AppliedAt,
		app.CampaignID, capacity,
	)
	if res.Error != nil {
		if isDuplicateErr(res.Error) {
			return ErrAlreadyApplied
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		// a full campaign blocks the insert before the unique index can
		// fire, so a re-apply would otherwise surface as ErrCampaignFull
		var existing int64
		if err := r.db.Model(&models.Application{}).
			Where("campaign_id = ? AND user_id = ?", app.CampaignID, app.UserID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrAlreadyApplied
		}
		return ErrCampaignFull
	}
	return r.db.Where("campaign_id = ? AND user_id = ?", app.CampaignID, app.UserID).
		First(app).Error
}

func (r *ApplicationRepository) GetByID(id uint) (*models.Application, error) {
	var a models.Application
	err := r.db.First(&a, id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *ApplicationRepository) ListByCampaignID(campaignID uint) ([]models.Application, error) {
	var list []models.Application
	err := r.db.Where("campaign_id = ?", campaignID).Order("applied_at ASC").Find(&list).Error
	return list, err
}

func (r *ApplicationRepository) ListByUserID(userID uint) ([]models.Application, error) {
	var list []models.Application
	err := r.db.Where("user_id = ?", userID).Order("applied_at DESC").Find(&list).Error
	return list, err
}

func (r *ApplicationRepository) CountByCampaignID(campaignID uint) (int64, error) {
	var c int64
	err := r.db.Model(&models.Application{}).Where("campaign_id = ?", campaignID).Count(&c).Error
	return c, err
}

func (r *ApplicationRepository) UpdateStatus(id uint, status domain.ApplicationStatus) error {
	return r.db.Model(&models.Application{}).Where("id = ?", id).
		Update("status", string(status)).Error
}

// UpdateReview records the review URL and moves the application to COMPLETED.
func (r *ApplicationRepository) UpdateReview(id uint, reviewURL string, submittedAt time.Time) error {
	return r.db.Model(&models.Application{}).Where("id = ?", id).Updates(map[string]interface{}{
		"review_url":          reviewURL,
		"review_submitted_at": submittedAt,
		"status":              string(domain.StatusCompleted),
	}).Error
}

// Award sets points_awarded exactly once and credits the applicant's balance
// in the same transaction. The guard is the conditional UPDATE itself, not a
// prior read, so a concurrent double payout loses on RowsAffected.
func (r *ApplicationRepository) Award(applicationID, userID uint, points int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Application{}).
			Where("id = ? AND points_awarded IS NULL", applicationID).
			Updates(map[string]interface{}{
				"points_awarded": points,
				"status":         string(domain.StatusCompleted),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyAwarded
		}
		return tx.Model(&models.User{}).Where("id = ?", userID).
			UpdateColumn("points", gorm.Expr("points + ?", points)).Error
	})
}

// isDuplicateErr matches unique-constraint violations across gorm's
// translated error, MySQL (1062) and SQLite (used in tests), since raw Exec
// bypasses gorm's error translation.
func isDuplicateErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

package models

import (
	"time"

	"revu/internal/domain"
)

// Application joins one influencer to one campaign. The composite unique
// index enforces the at-most-one-application-per-pair invariant at the
// storage layer so concurrent applies cannot slip past an app-level check.
type Application struct {
	ID                uint                     `gorm:"primaryKey" json:"id"`
	CampaignID        uint                     `gorm:"not null;index:idx_app_campaign_user,unique" json:"campaign_id"`
	UserID            uint                     `gorm:"not null;index:idx_app_campaign_user,unique" json:"user_id"`
	Status            domain.ApplicationStatus `gorm:"size:20;not null;index" json:"status"`
	Message           string                   `gorm:"type:text" json:"message"`
	AppliedAt         time.Time                `gorm:"not null" json:"applied_at"`
	ReviewURL         *string                  `gorm:"size:512" json:"review_url"`
	ReviewSubmittedAt *time.Time               `json:"review_submitted_at"`
	PointsAwarded     *int                     `json:"points_awarded"`

	Campaign Campaign `gorm:"foreignKey:CampaignID" json:"-"`
	User     User     `gorm:"foreignKey:UserID" json:"-"`
}

func (Application) TableName() string {
	return "applications"
}

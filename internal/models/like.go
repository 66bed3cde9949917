package models

import (
	"time"
)

type Like struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index:idx_like_user_campaign,unique" json:"user_id"`
	CampaignID uint      `gorm:"not null;index:idx_like_user_campaign,unique" json:"campaign_id"`
	CreatedAt  time.Time `json:"created_at"`

	User     User     `gorm:"foreignKey:UserID" json:"-"`
	Campaign Campaign `gorm:"foreignKey:CampaignID" json:"-"`
}

func (Like) TableName() string {
	return "likes"
}

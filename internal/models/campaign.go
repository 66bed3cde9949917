package models

import (
	"time"
)

type Campaign struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Description  string    `gorm:"type:text;not null" json:"description"`
	ThumbnailURL string    `gorm:"size:512" json:"thumbnail_url"`
	Category     string    `gorm:"size:30;not null;index" json:"category"`
	Location     string    `gorm:"size:255" json:"location"`
	ShopName     string    `gorm:"size:255" json:"shop_name"`
	Capacity     int       `gorm:"not null" json:"capacity"`
	Benefit      string    `gorm:"type:text" json:"benefit"`
	Requirement  string    `gorm:"type:text" json:"requirement"`
	StartDate    time.Time `gorm:"not null" json:"start_date"`
	EndDate      time.Time `gorm:"not null" json:"end_date"`
	Images       []string  `gorm:"serializer:json;type:text" json:"images"`
	AdvertiserID uint      `gorm:"not null;index" json:"advertiser_id"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	ViewCount    int       `gorm:"not null;default:0" json:"view_count"`
	LikeCount    int       `gorm:"not null;default:0" json:"like_count"`
	CreatedAt    time.Time `json:"created_at"`

	Advertiser User `gorm:"foreignKey:AdvertiserID" json:"-"`
}

func (Campaign) TableName() string {
	return "campaigns"
}

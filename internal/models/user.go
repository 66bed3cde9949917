package models

import (
	"time"

	"revu/internal/domain"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:64;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Role         string    `gorm:"size:20;not null;index" json:"role"` // influencer | advertiser
	ProfileImage string    `gorm:"size:512" json:"profile_image"`
	Bio          string    `gorm:"type:text" json:"bio"`
	Followers    int       `gorm:"not null;default:0" json:"followers"`
	InstagramID  string    `gorm:"size:100" json:"instagram_id"`
	BlogURL      string    `gorm:"size:512" json:"blog_url"`
	TwitterID    string    `gorm:"size:100" json:"twitter_id"`
	Points       int       `gorm:"not null;default:0" json:"points"`
	CreatedAt    time.Time `json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsInfluencer() bool { return u.Role == domain.RoleInfluencer }
func (u *User) IsAdvertiser() bool { return u.Role == domain.RoleAdvertiser }

// Profile is the subset of User an advertiser sees when reviewing applicants.
type Profile struct {
	ID           uint   `json:"id"`
	Username     string `json:"username"`
	Name         string `json:"name"`
	ProfileImage string `json:"profile_image"`
	Followers    int    `json:"followers"`
	InstagramID  string `json:"instagram_id"`
	BlogURL      string `json:"blog_url"`
	TwitterID    string `json:"twitter_id"`
}

func (u *User) AsProfile() Profile {
	return Profile{
		ID:           u.ID,
		Username:     u.Username,
		Name:         u.Name,
		ProfileImage: u.ProfileImage,
		Followers:    u.Followers,
		InstagramID:  u.InstagramID,
		BlogURL:      u.BlogURL,
		TwitterID:    u.TwitterID,
	}
}

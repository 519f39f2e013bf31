package model

import (
	"time"
)

type Progress struct {
	ID                int64      `gorm:"primaryKey" json:"id"`
	UserID            int64      `gorm:"not null;uniqueIndex" json:"user_id"`
	TotalExplanations int        `gorm:"default:0" json:"total_explanations"`
	CurrentStreak     int        `gorm:"default:0" json:"current_streak"`
	LongestStreak     int        `gorm:"default:0" json:"longest_streak"`
	TotalStars        int        `gorm:"default:0" json:"total_stars"`
	LastActivityDate  *time.Time `json:"last_activity_date,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func (Progress) TableName() string {
	return "user_progress"
}

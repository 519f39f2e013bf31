package model

import (
	"time"
)

// BadgeType 成就徽章类型，闭集，未知标签一律拒绝
type BadgeType string

const (
	BadgeFirstExplanation   BadgeType = "First Explanation"
	BadgeWeekStreak         BadgeType = "7-Day Streak"
	BadgeMonthStreak        BadgeType = "30-Day Streak"
	BadgeTenExplanations    BadgeType = "10 Topics Mastered"
	BadgeFiftyExplanations  BadgeType = "50 Topics Mastered"
	BadgeCuriousLearner     BadgeType = "Curious Learner"
	BadgeScanMaster         BadgeType = "Scan Master"
)

// ValidBadgeType 校验徽章类型是否属于闭集
func ValidBadgeType(t BadgeType) bool {
	switch t {
	case BadgeFirstExplanation, BadgeWeekStreak, BadgeMonthStreak,
		BadgeTenExplanations, BadgeFiftyExplanations,
		BadgeCuriousLearner, BadgeScanMaster:
		return true
	}
	return false
}

type Badge struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"not null;index" json:"user_id"`
	BadgeType BadgeType `gorm:"size:50;not null" json:"badge_type"`
	EarnedAt  time.Time `json:"earned_at"`
}

func (Badge) TableName() string {
	return "badges"
}

package model

import (
	"time"
)

// MaxInterests 每个用户最多保留的兴趣数量（应用层约束，存储层不强制）
const MaxInterests = 3

type Interest struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"not null;index" json:"user_id"`
	Interest  string    `gorm:"size:100;not null" json:"interest"`
	CreatedAt time.Time `json:"created_at"`
}

func (Interest) TableName() string {
	return "user_interests"
}

// LearningStyle 学习风格偏好，每个用户一条
type LearningStyle struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex" json:"user_id"`
	Style     string    `gorm:"size:20;not null" json:"style"` // story, visual, step-by-step, humor, real-world
	CreatedAt time.Time `json:"created_at"`
}

func (LearningStyle) TableName() string {
	return "learning_styles"
}

// PopularInterests 引导页预置的兴趣选项
var PopularInterests = []string{
	"Football",
	"Basketball",
	"Gaming",
	"Anime",
	"Cooking",
	"Music",
	"Art",
	"Movies",
	"Science",
	"Technology",
	"Fashion",
	"Travel",
	"Photography",
	"Reading",
	"Fitness",
}

// LearningStyles 合法的学习风格取值
var LearningStyles = []string{"story", "visual", "step-by-step", "humor", "real-world"}

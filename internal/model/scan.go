package model

import (
	"time"
)

// Scan 拍照学习记录，图片存 OSS，识别文本由用户确认后回填
type Scan struct {
	ID            int64     `gorm:"primaryKey" json:"id"`
	UserID        int64     `gorm:"not null;index" json:"user_id"`
	ImageURL      string    `gorm:"size:500;not null" json:"image_url"`
	ExtractedText *string   `gorm:"type:text" json:"extracted_text,omitempty"`
	Processed     bool      `gorm:"default:false" json:"processed"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
}

func (Scan) TableName() string {
	return "scans"
}

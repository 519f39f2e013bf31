package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// FollowUpAnswer 追问的回答正文
type FollowUpAnswer struct {
	Content string `json:"content"`
}

func (a FollowUpAnswer) Value() (driver.Value, error) {
	return json.Marshal(a)
}

func (a *FollowUpAnswer) Scan(value interface{}) error {
	if value == nil {
		*a = FollowUpAnswer{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			bytes = []byte(s)
		} else {
			return errors.New("unsupported answer column type")
		}
	}
	return json.Unmarshal(bytes, a)
}

type FollowUp struct {
	ID            int64           `gorm:"primaryKey" json:"id"`
	UserID        int64           `gorm:"not null;index" json:"user_id"`
	ExplanationID *int64          `gorm:"index" json:"explanation_id,omitempty"`
	Question      string          `gorm:"size:1000;not null" json:"question"`
	Answer        *FollowUpAnswer `gorm:"type:json" json:"answer"`
	CreatedAt     time.Time       `gorm:"index" json:"created_at"`
}

func (FollowUp) TableName() string {
	return "follow_ups"
}

package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// QuizQuestion 单选测验题，固定 4 个选项
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
}

// ExplanationData 生成服务返回的八段式讲解内容
type ExplanationData struct {
	Simple            string         `json:"simple"`
	Analogy           string         `json:"analogy"`
	StepByStep        []string       `json:"stepByStep"`
	VisualModel       string         `json:"visualModel"`
	DeeperDive        string         `json:"deeperDive"`
	RealWorld         []string       `json:"realWorld"`
	PracticeQuestions []string       `json:"practiceQuestions"`
	Quiz              []QuizQuestion `json:"quiz"`
}

func (d ExplanationData) Value() (driver.Value, error) {
	return json.Marshal(d)
}

func (d *ExplanationData) Scan(value interface{}) error {
	if value == nil {
		*d = ExplanationData{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			bytes = []byte(s)
		} else {
			return errors.New("unsupported explanation_data column type")
		}
	}
	return json.Unmarshal(bytes, d)
}

type Explanation struct {
	ID              int64            `gorm:"primaryKey" json:"id"`
	UserID          int64            `gorm:"not null;index" json:"user_id"`
	Topic           string           `gorm:"size:500;not null" json:"topic"`
	ExplanationData *ExplanationData `gorm:"type:json" json:"explanation_data"`
	CreatedAt       time.Time        `gorm:"index" json:"created_at"`

	// 关联
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Explanation) TableName() string {
	return "explanations"
}

package dto

import (
	"github.com/relatify/relatify_go_server/internal/model"
)

// GenerateExplanationRequest 生成讲解请求
// interests 为空时使用用户已存的兴趣偏好
type GenerateExplanationRequest struct {
	Topic     string   `json:"topic" binding:"required,max=500"`
	Interests []string `json:"interests,omitempty" binding:"omitempty,max=3,dive,max=100"`
}

// GenerateExplanationResponse 生成讲解响应
type GenerateExplanationResponse struct {
	ExplanationID   int64                  `json:"explanation_id"`
	ExplanationData *model.ExplanationData `json:"explanationData"`
}

// AnswerFollowUpRequest 追问请求
type AnswerFollowUpRequest struct {
	Question      string   `json:"question" binding:"required,max=1000"`
	Context       string   `json:"context,omitempty" binding:"omitempty,max=500"`
	Interests     []string `json:"interests,omitempty" binding:"omitempty,max=3,dive,max=100"`
	ExplanationID *int64   `json:"explanation_id,omitempty"`
}

// AnswerFollowUpResponse 追问响应
type AnswerFollowUpResponse struct {
	FollowUpID int64                 `json:"follow_up_id"`
	Answer     *model.FollowUpAnswer `json:"answer"`
}

// ExplanationListItem 讲解列表项
type ExplanationListItem struct {
	ID        int64  `json:"id"`
	Topic     string `json:"topic"`
	CreatedAt string `json:"created_at"`
}

// ExplanationDetail 讲解详情
type ExplanationDetail struct {
	ID              int64                  `json:"id"`
	Topic           string                 `json:"topic"`
	ExplanationData *model.ExplanationData `json:"explanation_data"`
	CreatedAt       string                 `json:"created_at"`
}

// FollowUpItem 追问列表项
type FollowUpItem struct {
	ID            int64                 `json:"id"`
	ExplanationID *int64                `json:"explanation_id,omitempty"`
	Question      string                `json:"question"`
	Answer        *model.FollowUpAnswer `json:"answer"`
	CreatedAt     string                `json:"created_at"`
}

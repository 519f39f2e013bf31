package dto

// ProgressResponse 学习进度统计
type ProgressResponse struct {
	TotalExplanations int    `json:"total_explanations"`
	CurrentStreak     int    `json:"current_streak"`
	LongestStreak     int    `json:"longest_streak"`
	TotalStars        int    `json:"total_stars"`
	LastActivityDate  string `json:"last_activity_date,omitempty"`
}

// BadgeItem 已获得的徽章
type BadgeItem struct {
	ID        int64  `json:"id"`
	BadgeType string `json:"badge_type"`
	EarnedAt  string `json:"earned_at"`
}

// ScanResponse 扫描记录
type ScanResponse struct {
	ID            int64  `json:"id"`
	ImageURL      string `json:"image_url"`
	ExtractedText string `json:"extracted_text,omitempty"`
	Processed     bool   `json:"processed"`
	CreatedAt     string `json:"created_at"`
}

// SubmitScanTextRequest 回填扫描识别文本
type SubmitScanTextRequest struct {
	ExtractedText string `json:"extracted_text" binding:"required,max=5000"`
}

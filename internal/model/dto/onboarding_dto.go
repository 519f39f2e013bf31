package dto

// OnboardingStatusResponse 引导完成状态
// status: needs-onboarding, ready
type OnboardingStatusResponse struct {
	Status    string   `json:"status"`
	Interests []string `json:"interests,omitempty"`
}

// CompleteOnboardingRequest 完成引导请求
type CompleteOnboardingRequest struct {
	Interests     []string `json:"interests" binding:"required,min=1,max=3,dive,min=1,max=100"`
	LearningStyle string   `json:"learning_style" binding:"required,oneof=story visual step-by-step humor real-world"`
}

// UpdateProfileRequest 更新用户信息请求
type UpdateProfileRequest struct {
	Username  *string  `json:"username,omitempty" binding:"omitempty,min=3,max=50"`
	Interests []string `json:"interests,omitempty" binding:"omitempty,max=3,dive,min=1,max=100"`
}

// ProfileResponse 个人资料
type ProfileResponse struct {
	User          *UserInfo `json:"user"`
	Interests     []string  `json:"interests"`
	LearningStyle string    `json:"learning_style,omitempty"`
}

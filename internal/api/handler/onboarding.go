package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/relatify/relatify_go_server/internal/api/middleware"
	"github.com/relatify/relatify_go_server/internal/model"
	"github.com/relatify/relatify_go_server/internal/model/dto"
	"github.com/relatify/relatify_go_server/internal/pkg/response"
	"github.com/relatify/relatify_go_server/internal/service"
)

type OnboardingHandler struct {
	onboardingService *service.OnboardingService
}

func NewOnboardingHandler(onboardingService *service.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{
		onboardingService: onboardingService,
	}
}

// Status 查询引导状态
// GET /api/v1/onboarding/status
func (h *OnboardingHandler) Status(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	status, err := h.onboardingService.Status(userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, status)
}

// Complete 完成引导
// POST /api/v1/onboarding/complete
func (h *OnboardingHandler) Complete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.CompleteOnboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	err := h.onboardingService.Complete(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyOnboarded):
			response.DuplicateError(c, err.Error())
		case errors.Is(err, service.ErrTooManyInterests),
			errors.Is(err, service.ErrEmptyInterest),
			errors.Is(err, service.ErrInvalidLearningStyle):
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "引导完成", nil)
}

// PopularInterests 推荐兴趣列表
// GET /api/v1/interests/popular
func (h *OnboardingHandler) PopularInterests(c *gin.Context) {
	response.Success(c, gin.H{
		"interests":       model.PopularInterests,
		"learning_styles": model.LearningStyles,
		"max_interests":   model.MaxInterests,
	})
}

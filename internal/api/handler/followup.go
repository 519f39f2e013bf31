package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/relatify/relatify_go_server/internal/api/middleware"
	"github.com/relatify/relatify_go_server/internal/model/dto"
	"github.com/relatify/relatify_go_server/internal/pkg/ai"
	"github.com/relatify/relatify_go_server/internal/pkg/response"
	"github.com/relatify/relatify_go_server/internal/service"
)

type FollowUpHandler struct {
	followUpService *service.FollowUpService
}

func NewFollowUpHandler(followUpService *service.FollowUpService) *FollowUpHandler {
	return &FollowUpHandler{
		followUpService: followUpService,
	}
}

// Ask 追问
// POST /api/v1/answer-followup
func (h *FollowUpHandler) Ask(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.AnswerFollowUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.followUpService.Ask(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ai.ErrEmptyQuestion):
			response.ParamError(c, err.Error())
		case errors.Is(err, service.ErrExplanationNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, ai.ErrUpstream):
			response.GenerationError(c, "")
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, resp)
}

// ListByExplanation 某条讲解的追问历史
// GET /api/v1/explanations/:id/followups
func (h *FollowUpHandler) ListByExplanation(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	explanationID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的讲解ID")
		return
	}

	items, err := h.followUpService.ListByExplanation(explanationID, userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, items)
}

package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/relatify/relatify_go_server/internal/api/middleware"
	"github.com/relatify/relatify_go_server/internal/pkg/response"
	"github.com/relatify/relatify_go_server/internal/service"
)

type ProgressHandler struct {
	progressService *service.ProgressService
}

func NewProgressHandler(progressService *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{
		progressService: progressService,
	}
}

// Stats 学习进度统计
// GET /api/v1/progress
func (h *ProgressHandler) Stats(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	stats, err := h.progressService.GetStats(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProgressNotFound):
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, stats)
}

// Badges 已获得的徽章
// GET /api/v1/badges
func (h *ProgressHandler) Badges(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	badges, err := h.progressService.ListBadges(userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, badges)
}

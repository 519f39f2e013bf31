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

type ExplainHandler struct {
	explainService *service.ExplainService
}

func NewExplainHandler(explainService *service.ExplainService) *ExplainHandler {
	return &ExplainHandler{
		explainService: explainService,
	}
}

// Generate 生成个性化讲解
// POST /api/v1/generate-explanation
func (h *ExplainHandler) Generate(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.GenerateExplanationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.explainService.Generate(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ai.ErrEmptyTopic):
			response.ParamError(c, err.Error())
		case errors.Is(err, ai.ErrMalformedResponse):
			response.MalformedError(c, "")
		case errors.Is(err, ai.ErrUpstream):
			response.GenerationError(c, "")
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, resp)
}

// List 讲解历史列表
// GET /api/v1/explanations
func (h *ExplainHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	items, total, err := h.explainService.List(userID, page, pageSize)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessPage(c, total, page, pageSize, items)
}

// Get 讲解详情
// GET /api/v1/explanations/:id
func (h *ExplainHandler) Get(c *gin.Context) {
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

	detail, err := h.explainService.GetByID(explanationID, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExplanationNotFound):
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, detail)
}

// Delete 删除讲解
// DELETE /api/v1/explanations/:id
func (h *ExplainHandler) Delete(c *gin.Context) {
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

	if err := h.explainService.Delete(explanationID, userID); err != nil {
		switch {
		case errors.Is(err, service.ErrExplanationNotFound):
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "删除成功", nil)
}

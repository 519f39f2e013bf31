package handler

import (
	"errors"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/relatify/relatify_go_server/internal/api/middleware"
	"github.com/relatify/relatify_go_server/internal/model/dto"
	"github.com/relatify/relatify_go_server/internal/pkg/response"
	"github.com/relatify/relatify_go_server/internal/service"
)

type ScanHandler struct {
	scanService *service.ScanService
}

func NewScanHandler(scanService *service.ScanService) *ScanHandler {
	return &ScanHandler{
		scanService: scanService,
	}
}

// Upload 上传扫描图片
// POST /api/v1/scans
func (h *ScanHandler) Upload(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		response.ParamError(c, "请选择图片文件")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.ServerError(c, "")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	resp, err := h.scanService.UploadImage(userID, data, fileHeader.Filename)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrScanTooLarge),
			errors.Is(err, service.ErrUnsupportedFormat):
			response.ParamError(c, err.Error())
		case errors.Is(err, service.ErrStorageUnavailable):
			response.ServerError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "上传成功", resp)
}

// SubmitText 回填识别文本
// POST /api/v1/scans/:id/text
func (h *ScanHandler) SubmitText(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	scanID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的扫描ID")
		return
	}

	var req dto.SubmitScanTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.scanService.SubmitText(c.Request.Context(), userID, scanID, req.ExtractedText)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrScanNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrScanAlreadyDone):
			response.DuplicateError(c, err.Error())
		case errors.Is(err, service.ErrEmptyScanText):
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, resp)
}

// List 最近的扫描记录
// GET /api/v1/scans
func (h *ScanHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	scans, err := h.scanService.List(userID, limit)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, scans)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/relatify/relatify_go_server/config"
	"github.com/relatify/relatify_go_server/internal/model"
	"github.com/relatify/relatify_go_server/internal/model/dto"
	"github.com/relatify/relatify_go_server/internal/pkg/oss"
	"github.com/relatify/relatify_go_server/internal/repository"
)

var (
	ErrScanNotFound    = errors.New("扫描记录不存在")
	ErrScanTooLarge    = errors.New("图片文件过大")
	ErrScanAlreadyDone = errors.New("扫描已提交过识别文本")
	ErrEmptyScanText   = errors.New("识别文本不能为空")
)

type ScanService struct {
	scanRepo    *repository.ScanRepository
	progressSvc *ProgressService
	ossClient   *oss.Client
	cfg         *config.ScanConfig
}

func NewScanService(
	scanRepo *repository.ScanRepository,
	progressSvc *ProgressService,
	ossClient *oss.Client,
	cfg *config.ScanConfig,
) *ScanService {
	return &ScanService{
		scanRepo:    scanRepo,
		progressSvc: progressSvc,
		ossClient:   ossClient,
		cfg:         cfg,
	}
}

// UploadImage 上传扫描图片，OCR 在客户端完成后回填文本
func (s *ScanService) UploadImage(userID int64, data []byte, filename string) (*dto.ScanResponse, error) {
	if int64(len(data)) > s.cfg.MaxSize {
		return nil, ErrScanTooLarge
	}

	dot := strings.LastIndex(filename, ".")
	if dot < 0 {
		return nil, ErrUnsupportedFormat
	}
	ext := strings.ToLower(filename[dot:])
	if !allowedImageExts[ext] {
		return nil, ErrUnsupportedFormat
	}

	if s.ossClient == nil {
		return nil, ErrStorageUnavailable
	}

	objectKey, err := s.ossClient.UploadScanImage(userID, data, ext)
	if err != nil {
		return nil, fmt.Errorf("failed to upload scan image: %w", err)
	}

	scan := &model.Scan{
		UserID:   userID,
		ImageURL: s.ossClient.GetURL(objectKey),
	}
	if err := s.scanRepo.Create(scan); err != nil {
		return nil, err
	}

	return buildScanResponse(scan), nil
}

// SubmitText 回填识别文本并标记已处理
func (s *ScanService) SubmitText(ctx context.Context, userID, scanID int64, text string) (*dto.ScanResponse, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyScanText
	}

	scan, err := s.scanRepo.GetByID(scanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScanNotFound
		}
		return nil, err
	}
	if scan.UserID != userID {
		return nil, ErrScanNotFound
	}
	if scan.Processed {
		return nil, ErrScanAlreadyDone
	}

	scan.ExtractedText = &text
	scan.Processed = true
	if err := s.scanRepo.Update(scan); err != nil {
		return nil, err
	}

	// 已处理扫描数用于扫描徽章
	if count, err := s.scanRepo.CountProcessedByUser(userID); err != nil {
		log.Printf("统计扫描数失败 user=%d: %v", userID, err)
	} else {
		s.progressSvc.RecordScan(ctx, userID, count)
	}

	return buildScanResponse(scan), nil
}

// List 返回用户最近的扫描记录
func (s *ScanService) List(userID int64, limit int) ([]dto.ScanResponse, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}

	scans, err := s.scanRepo.ListByUser(userID, limit)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ScanResponse, 0, len(scans))
	for i := range scans {
		items = append(items, *buildScanResponse(&scans[i]))
	}
	return items, nil
}

// PurgeExpired 删除过期扫描的图片与记录，返回删除条数
func (s *ScanService) PurgeExpired(batchSize int) (int, error) {
	cutoff := time.Now().AddDate(0, 0, -s.cfg.ExpireDays)
	scans, err := s.scanRepo.ListExpired(cutoff, batchSize)
	if err != nil {
		return 0, err
	}

	purged := 0
	for _, scan := range scans {
		if s.ossClient != nil {
			objectKey := s.ossClient.ExtractObjectKey(scan.ImageURL)
			if objectKey != "" {
				if err := s.ossClient.Delete(objectKey); err != nil {
					log.Printf("删除扫描图片失败 scan=%d: %v", scan.ID, err)
					continue
				}
			}
		}
		if err := s.scanRepo.Delete(scan.ID); err != nil {
			log.Printf("删除扫描记录失败 scan=%d: %v", scan.ID, err)
			continue
		}
		purged++
	}
	return purged, nil
}

func buildScanResponse(scan *model.Scan) *dto.ScanResponse {
	resp := &dto.ScanResponse{
		ID:        scan.ID,
		ImageURL:  scan.ImageURL,
		Processed: scan.Processed,
		CreatedAt: scan.CreatedAt.Format(time.RFC3339),
	}
	if scan.ExtractedText != nil {
		resp.ExtractedText = *scan.ExtractedText
	}
	return resp
}

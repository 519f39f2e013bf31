package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/relatify/relatify_go_server/internal/model"
	"github.com/relatify/relatify_go_server/internal/model/dto"
	"github.com/relatify/relatify_go_server/internal/pkg/ai"
	"github.com/relatify/relatify_go_server/internal/pkg/cache"
	"github.com/relatify/relatify_go_server/internal/repository"
)

var (
	// ErrEmptyTopic 与生成客户端共用同一哨兵
	ErrEmptyTopic          = ai.ErrEmptyTopic
	ErrExplanationNotFound = errors.New("讲解不存在")
)

type ExplainService struct {
	explanationRepo *repository.ExplanationRepository
	interestRepo    *repository.InterestRepository
	progressSvc     *ProgressService
	generator       ai.Generator
	cache           *cache.Cache
}

func NewExplainService(
	explanationRepo *repository.ExplanationRepository,
	interestRepo *repository.InterestRepository,
	progressSvc *ProgressService,
	generator ai.Generator,
	c *cache.Cache,
) *ExplainService {
	return &ExplainService{
		explanationRepo: explanationRepo,
		interestRepo:    interestRepo,
		progressSvc:     progressSvc,
		generator:       generator,
		cache:           c,
	}
}

// Generate 生成个性化讲解并落库，同时更新学习进度
func (s *ExplainService) Generate(ctx context.Context, userID int64, req *dto.GenerateExplanationRequest) (*dto.GenerateExplanationResponse, error) {
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		return nil, ErrEmptyTopic
	}

	// 请求未带兴趣时回退到用户已存偏好
	interests := req.Interests
	if len(interests) == 0 {
		var err error
		interests, err = s.loadInterests(ctx, userID)
		if err != nil {
			return nil, err
		}
	}

	data, err := s.generator.GenerateExplanation(ctx, topic, interests)
	if err != nil {
		return nil, err
	}

	explanation := &model.Explanation{
		UserID:          userID,
		Topic:           topic,
		ExplanationData: data,
	}
	if err := s.explanationRepo.Create(explanation); err != nil {
		return nil, err
	}

	// 进度更新失败不影响讲解结果
	if _, err := s.progressSvc.RecordExplanation(ctx, userID); err != nil {
		log.Printf("更新学习进度失败 user=%d: %v", userID, err)
	}

	return &dto.GenerateExplanationResponse{
		ExplanationID:   explanation.ID,
		ExplanationData: data,
	}, nil
}

// List 分页返回用户的讲解历史
func (s *ExplainService) List(userID int64, page, pageSize int) ([]dto.ExplanationListItem, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	explanations, total, err := s.explanationRepo.ListByUser(userID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	items := make([]dto.ExplanationListItem, 0, len(explanations))
	for _, e := range explanations {
		items = append(items, dto.ExplanationListItem{
			ID:        e.ID,
			Topic:     e.Topic,
			CreatedAt: e.CreatedAt.Format(time.RFC3339),
		})
	}
	return items, total, nil
}

// GetByID 获取讲解详情，越权访问按不存在处理
func (s *ExplainService) GetByID(id, userID int64) (*dto.ExplanationDetail, error) {
	explanation, err := s.explanationRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExplanationNotFound
		}
		return nil, err
	}
	if explanation.UserID != userID {
		return nil, ErrExplanationNotFound
	}

	return &dto.ExplanationDetail{
		ID:              explanation.ID,
		Topic:           explanation.Topic,
		ExplanationData: explanation.ExplanationData,
		CreatedAt:       explanation.CreatedAt.Format(time.RFC3339),
	}, nil
}

// Delete 删除用户自己的讲解
func (s *ExplainService) Delete(id, userID int64) error {
	err := s.explanationRepo.Delete(id, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrExplanationNotFound
	}
	return err
}

// loadInterests 读取用户兴趣（带缓存）
func (s *ExplainService) loadInterests(ctx context.Context, userID int64) ([]string, error) {
	key := cache.InterestsKey(userID)

	var cached []string
	hit, err := s.cache.GetJSON(ctx, key, &cached)
	if err != nil {
		log.Printf("读取兴趣缓存失败 user=%d: %v", userID, err)
	}
	if hit {
		return cached, nil
	}

	interests, err := s.interestRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetJSON(ctx, key, interests); err != nil {
		log.Printf("写入兴趣缓存失败 user=%d: %v", userID, err)
	}
	return interests, nil
}

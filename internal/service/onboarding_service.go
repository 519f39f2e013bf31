package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/relatify/relatify_go_server/internal/model"
	"github.com/relatify/relatify_go_server/internal/model/dto"
	"github.com/relatify/relatify_go_server/internal/pkg/cache"
	"github.com/relatify/relatify_go_server/internal/repository"
)

var (
	ErrAlreadyOnboarded     = errors.New("已完成引导设置")
	ErrOnboardingRequired   = errors.New("请先完成引导设置")
	ErrTooManyInterests     = errors.New("兴趣数量超出上限")
	ErrEmptyInterest        = errors.New("兴趣不能为空")
	ErrInvalidLearningStyle = errors.New("学习风格无效")
)

const (
	OnboardingPending   = "needs-onboarding"
	OnboardingCompleted = "ready"
)

type OnboardingService struct {
	db           *gorm.DB
	interestRepo *repository.InterestRepository
	progressRepo *repository.ProgressRepository
	cache        *cache.Cache
}

func NewOnboardingService(
	db *gorm.DB,
	interestRepo *repository.InterestRepository,
	progressRepo *repository.ProgressRepository,
	c *cache.Cache,
) *OnboardingService {
	return &OnboardingService{
		db:           db,
		interestRepo: interestRepo,
		progressRepo: progressRepo,
		cache:        c,
	}
}

// Status 查询引导状态，进度行存在即视为已完成
func (s *OnboardingService) Status(userID int64) (*dto.OnboardingStatusResponse, error) {
	completed, err := s.progressRepo.Exists(userID)
	if err != nil {
		return nil, err
	}

	resp := &dto.OnboardingStatusResponse{Status: OnboardingPending}
	if completed {
		resp.Status = OnboardingCompleted
		interests, err := s.interestRepo.ListByUser(userID)
		if err != nil {
			return nil, err
		}
		resp.Interests = interests
	}
	return resp, nil
}

// Complete 完成引导：兴趣、学习风格与进度行在单个事务内写入
func (s *OnboardingService) Complete(ctx context.Context, userID int64, req *dto.CompleteOnboardingRequest) error {
	interests, err := normalizeInterests(req.Interests)
	if err != nil {
		return err
	}
	if req.LearningStyle != "" && !validLearningStyle(req.LearningStyle) {
		return ErrInvalidLearningStyle
	}

	completed, err := s.progressRepo.Exists(userID)
	if err != nil {
		return err
	}
	if completed {
		return ErrAlreadyOnboarded
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, interest := range interests {
			row := model.Interest{UserID: userID, Interest: interest}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		if req.LearningStyle != "" {
			style := model.LearningStyle{UserID: userID, Style: req.LearningStyle}
			if err := tx.Create(&style).Error; err != nil {
				return err
			}
		}
		// 进度行是引导完成的标记
		progress := model.Progress{UserID: userID}
		return tx.Create(&progress).Error
	})
	if err != nil {
		return err
	}

	if err := s.cache.Invalidate(ctx, cache.InterestsKey(userID)); err != nil {
		log.Printf("清除兴趣缓存失败 user=%d: %v", userID, err)
	}
	return nil
}

// IsCompleted 判断用户是否已完成引导
func (s *OnboardingService) IsCompleted(userID int64) (bool, error) {
	return s.progressRepo.Exists(userID)
}

// normalizeInterests 去除空白与重复项，并校验数量上限
func normalizeInterests(raw []string) ([]string, error) {
	seen := make(map[string]struct{}, len(raw))
	interests := make([]string, 0, len(raw))
	for _, item := range raw {
		trimmed := strings.TrimSpace(item)
		if trimmed == "" {
			return nil, ErrEmptyInterest
		}
		key := strings.ToLower(trimmed)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		interests = append(interests, trimmed)
	}
	if len(interests) == 0 {
		return nil, ErrEmptyInterest
	}
	if len(interests) > model.MaxInterests {
		return nil, ErrTooManyInterests
	}
	return interests, nil
}

func validLearningStyle(style string) bool {
	for _, s := range model.LearningStyles {
		if s == style {
			return true
		}
	}
	return false
}

package service

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/relatify/relatify_go_server/internal/model"
	"github.com/relatify/relatify_go_server/internal/model/dto"
	"github.com/relatify/relatify_go_server/internal/pkg/cache"
	"github.com/relatify/relatify_go_server/internal/pkg/ws"
	"github.com/relatify/relatify_go_server/internal/repository"
)

var ErrProgressNotFound = errors.New("学习进度不存在")

// 徽章的解锁阈值
const (
	tenExplanationsThreshold   = 10
	fiftyExplanationsThreshold = 50
	weekStreakThreshold        = 7
	monthStreakThreshold       = 30
	curiousLearnerThreshold    = 10
	scanMasterThreshold        = 5
)

type ProgressService struct {
	progressRepo *repository.ProgressRepository
	badgeRepo    *repository.BadgeRepository
	cache        *cache.Cache
	hub          *ws.Hub
}

func NewProgressService(
	progressRepo *repository.ProgressRepository,
	badgeRepo *repository.BadgeRepository,
	c *cache.Cache,
	hub *ws.Hub,
) *ProgressService {
	return &ProgressService{
		progressRepo: progressRepo,
		badgeRepo:    badgeRepo,
		cache:        c,
		hub:          hub,
	}
}

// GetStats 获取学习进度统计（带缓存）
func (s *ProgressService) GetStats(ctx context.Context, userID int64) (*dto.ProgressResponse, error) {
	key := cache.StatsKey(userID)

	var cached dto.ProgressResponse
	hit, err := s.cache.GetJSON(ctx, key, &cached)
	if err != nil {
		log.Printf("读取进度缓存失败 user=%d: %v", userID, err)
	}
	if hit {
		return &cached, nil
	}

	progress, err := s.progressRepo.GetByUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProgressNotFound
		}
		return nil, err
	}

	resp := buildProgressResponse(progress)
	if err := s.cache.SetJSON(ctx, key, resp); err != nil {
		log.Printf("写入进度缓存失败 user=%d: %v", userID, err)
	}
	return resp, nil
}

// RecordExplanation 记录一次讲解生成：更新计数、连续天数并授予徽章
func (s *ProgressService) RecordExplanation(ctx context.Context, userID int64) (*model.Progress, error) {
	progress, err := s.progressRepo.GetByUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProgressNotFound
		}
		return nil, err
	}

	now := time.Now()
	applyStreak(progress, now)
	progress.TotalExplanations++
	progress.TotalStars++
	progress.LastActivityDate = &now

	if err := s.progressRepo.Update(progress); err != nil {
		return nil, err
	}

	s.invalidateStats(ctx, userID)
	s.pushProgress(userID, progress)

	// 按最新计数授予徽章
	if progress.TotalExplanations == 1 {
		s.award(ctx, userID, model.BadgeFirstExplanation)
	}
	if progress.TotalExplanations >= tenExplanationsThreshold {
		s.award(ctx, userID, model.BadgeTenExplanations)
	}
	if progress.TotalExplanations >= fiftyExplanationsThreshold {
		s.award(ctx, userID, model.BadgeFiftyExplanations)
	}
	if progress.CurrentStreak >= weekStreakThreshold {
		s.award(ctx, userID, model.BadgeWeekStreak)
	}
	if progress.CurrentStreak >= monthStreakThreshold {
		s.award(ctx, userID, model.BadgeMonthStreak)
	}

	return progress, nil
}

// RecordFollowUp 记录一次追问，累计到阈值授予好奇徽章
func (s *ProgressService) RecordFollowUp(ctx context.Context, userID int64, totalFollowUps int64) {
	if totalFollowUps >= curiousLearnerThreshold {
		s.award(ctx, userID, model.BadgeCuriousLearner)
	}
}

// RecordScan 记录一次扫描提交，累计到阈值授予扫描徽章
func (s *ProgressService) RecordScan(ctx context.Context, userID int64, processedScans int64) {
	if processedScans >= scanMasterThreshold {
		s.award(ctx, userID, model.BadgeScanMaster)
	}
}

// ListBadges 返回用户已获得的徽章
func (s *ProgressService) ListBadges(userID int64) ([]dto.BadgeItem, error) {
	badges, err := s.badgeRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.BadgeItem, 0, len(badges))
	for _, badge := range badges {
		items = append(items, dto.BadgeItem{
			ID:        badge.ID,
			BadgeType: string(badge.BadgeType),
			EarnedAt:  badge.EarnedAt.Format(time.RFC3339),
		})
	}
	return items, nil
}

// award 幂等授予徽章，类型不在已知集合内则拒绝
func (s *ProgressService) award(ctx context.Context, userID int64, badgeType model.BadgeType) {
	if !model.ValidBadgeType(badgeType) {
		log.Printf("忽略未知徽章类型 user=%d type=%s", userID, badgeType)
		return
	}

	has, err := s.badgeRepo.Has(userID, badgeType)
	if err != nil {
		log.Printf("查询徽章失败 user=%d type=%s: %v", userID, badgeType, err)
		return
	}
	if has {
		return
	}

	badge := &model.Badge{
		UserID:    userID,
		BadgeType: badgeType,
		EarnedAt:  time.Now(),
	}
	if err := s.badgeRepo.Create(badge); err != nil {
		log.Printf("授予徽章失败 user=%d type=%s: %v", userID, badgeType, err)
		return
	}

	if s.hub != nil {
		_ = s.hub.SendToUser(userID, &ws.Message{
			Type: ws.TypeBadgeEarned,
			Data: map[string]interface{}{
				"badge_type": string(badgeType),
				"earned_at":  badge.EarnedAt,
			},
		})
	}
}

func (s *ProgressService) invalidateStats(ctx context.Context, userID int64) {
	if err := s.cache.Invalidate(ctx, cache.StatsKey(userID)); err != nil {
		log.Printf("清除进度缓存失败 user=%d: %v", userID, err)
	}
}

func (s *ProgressService) pushProgress(userID int64, progress *model.Progress) {
	if s.hub == nil {
		return
	}
	_ = s.hub.SendToUser(userID, &ws.Message{
		Type: ws.TypeProgressUpdated,
		Data: buildProgressResponse(progress),
	})
}

// applyStreak 按日历日更新连续天数：同日不变，连续日 +1，断档重置为 1
func applyStreak(progress *model.Progress, now time.Time) {
	today := truncateToDay(now)

	if progress.LastActivityDate == nil {
		progress.CurrentStreak = 1
	} else {
		last := truncateToDay(*progress.LastActivityDate)
		switch {
		case last.Equal(today):
			// 同一天不重复计数
		case last.Equal(today.AddDate(0, 0, -1)):
			progress.CurrentStreak++
		default:
			progress.CurrentStreak = 1
		}
	}

	if progress.CurrentStreak > progress.LongestStreak {
		progress.LongestStreak = progress.CurrentStreak
	}
}

func truncateToDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func buildProgressResponse(progress *model.Progress) *dto.ProgressResponse {
	resp := &dto.ProgressResponse{
		TotalExplanations: progress.TotalExplanations,
		CurrentStreak:     progress.CurrentStreak,
		LongestStreak:     progress.LongestStreak,
		TotalStars:        progress.TotalStars,
	}
	if progress.LastActivityDate != nil {
		resp.LastActivityDate = progress.LastActivityDate.Format("2006-01-02")
	}
	return resp
}

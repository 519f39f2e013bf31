package cron

import (
	"log"
	"time"

	"github.com/relatify/relatify_go_server/internal/repository"
	"github.com/relatify/relatify_go_server/internal/service"
)

const purgeBatchSize = 100

type Service struct {
	progressRepo *repository.ProgressRepository
	scanService  *service.ScanService
	stopChan     chan struct{}
}

func NewService(
	progressRepo *repository.ProgressRepository,
	scanService *service.ScanService,
) *Service {
	return &Service{
		progressRepo: progressRepo,
		scanService:  scanService,
		stopChan:     make(chan struct{}),
	}
}

// Start 启动定时任务
func (s *Service) Start() {
	go s.runDailyStreakSweep()
	go s.runScanPurge()
	log.Println("Cron service started (streak sweep + scan purge)")
}

// Stop 停止定时任务
func (s *Service) Stop() {
	close(s.stopChan)
	log.Println("Cron service stopped")
}

// runDailyStreakSweep 每日零点重置中断的连续学习记录
func (s *Service) runDailyStreakSweep() {
	timer := time.NewTimer(untilNextMidnight(time.Now()))

	for {
		select {
		case <-s.stopChan:
			timer.Stop()
			return
		case <-timer.C:
			s.sweepStaleStreaks()
			// 每轮重新计算零点，夏令时切换不漂移
			timer.Reset(untilNextMidnight(time.Now()))
		}
	}
}

func untilNextMidnight(now time.Time) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
	return next.Sub(now)
}

// sweepStaleStreaks 清零最近一次学习早于昨天的连续记录
func (s *Service) sweepStaleStreaks() {
	if s.progressRepo == nil {
		return
	}

	now := time.Now()
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	cutoff := startOfToday.Add(-24 * time.Hour)

	reset, err := s.progressRepo.ResetStaleStreaks(cutoff)
	if err != nil {
		log.Printf("Failed to reset stale streaks: %v", err)
		return
	}
	if reset > 0 {
		log.Printf("Streak sweep completed: %d streaks reset", reset)
	}
}

// runScanPurge 每小时清理一次过期扫描
func (s *Service) runScanPurge() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.purgeExpiredScans()
		}
	}
}

// purgeExpiredScans 删除超过保留期的扫描记录及其图片
func (s *Service) purgeExpiredScans() {
	if s.scanService == nil {
		return
	}

	purged, err := s.scanService.PurgeExpired(purgeBatchSize)
	if err != nil {
		log.Printf("Failed to purge expired scans: %v", err)
		return
	}
	if purged > 0 {
		log.Printf("Scan purge completed: %d scans removed", purged)
	}
}

// RunNow 立即执行一次全量维护（用于测试或手动触发）
func (s *Service) RunNow() {
	log.Println("Manual maintenance triggered...")
	s.sweepStaleStreaks()
	s.purgeExpiredScans()
}

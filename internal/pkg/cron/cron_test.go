package cron

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/relatify/relatify_go_server/config"
	"github.com/relatify/relatify_go_server/internal/model"
	"github.com/relatify/relatify_go_server/internal/pkg/cache"
	"github.com/relatify/relatify_go_server/internal/repository"
	"github.com/relatify/relatify_go_server/internal/service"
	"github.com/relatify/relatify_go_server/internal/testutil"
)

func setupCronService(t *testing.T) (*Service, *gorm.DB, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)

	progressRepo := repository.NewProgressRepository(db)
	badgeRepo := repository.NewBadgeRepository(db)
	scanRepo := repository.NewScanRepository(db)

	progressSvc := service.NewProgressService(progressRepo, badgeRepo, cache.New(nil, 0), nil)
	scanSvc := service.NewScanService(scanRepo, progressSvc, nil, &config.ScanConfig{
		MaxSize:    5 << 20,
		ExpireDays: 30,
	})

	cronService := NewService(progressRepo, scanSvc)

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}

	return cronService, db, cleanup
}

func TestNewService(t *testing.T) {
	svc := NewService(nil, nil)
	assert.NotNil(t, svc)
	assert.Nil(t, svc.progressRepo)
	assert.NotNil(t, svc.stopChan)
}

func TestService_StartAndStop(t *testing.T) {
	svc, _, cleanup := setupCronService(t)
	defer cleanup()

	// Start should not panic
	svc.Start()

	time.Sleep(10 * time.Millisecond)

	// Stop should not panic
	svc.Stop()

	time.Sleep(10 * time.Millisecond)
}

func TestService_RunNow_ResetsStaleStreaks(t *testing.T) {
	svc, db, cleanup := setupCronService(t)
	defer cleanup()

	stale := testutil.TestUser(t, db)
	active := testutil.TestUser(t, db, testutil.WithUsername("activeuser"), testutil.WithEmail("active@example.com"))

	threeDaysAgo := time.Now().AddDate(0, 0, -3)
	testutil.TestProgress(t, db, stale.ID, testutil.WithStreak(6, 9, threeDaysAgo))
	testutil.TestProgress(t, db, active.ID, testutil.WithStreak(4, 4, time.Now()))

	svc.RunNow()

	var staleProgress, activeProgress model.Progress
	require.NoError(t, db.Where("user_id = ?", stale.ID).First(&staleProgress).Error)
	require.NoError(t, db.Where("user_id = ?", active.ID).First(&activeProgress).Error)

	assert.Equal(t, 0, staleProgress.CurrentStreak)
	assert.Equal(t, 9, staleProgress.LongestStreak, "longest streak should survive the sweep")
	assert.Equal(t, 4, activeProgress.CurrentStreak)
}

func TestService_RunNow_PurgesExpiredScans(t *testing.T) {
	svc, db, cleanup := setupCronService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	testutil.TestScan(t, db, user.ID, testutil.WithScanCreatedAt(time.Now().AddDate(0, 0, -60)))
	fresh := testutil.TestScan(t, db, user.ID)

	svc.RunNow()

	var remaining []model.Scan
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, fresh.ID, remaining[0].ID)
}

func TestService_RunNow_Empty(t *testing.T) {
	svc, _, cleanup := setupCronService(t)
	defer cleanup()

	// No data - should not panic or error
	svc.RunNow()
}

func TestService_StopBeforeStart(t *testing.T) {
	svc, _, cleanup := setupCronService(t)
	defer cleanup()

	// Stop before start should not panic
	svc.Stop()
}

func TestService_NilCollaborators(t *testing.T) {
	svc := NewService(nil, nil)

	// Both sweeps should tolerate missing collaborators
	svc.RunNow()
}

func TestUntilNextMidnight(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)

	at := time.Date(2026, 3, 15, 23, 0, 0, 0, loc)
	assert.Equal(t, time.Hour, untilNextMidnight(at))

	// 刚过零点时等满一整天
	at = time.Date(2026, 3, 16, 0, 0, 1, 0, loc)
	assert.Equal(t, 24*time.Hour-time.Second, untilNextMidnight(at))
}

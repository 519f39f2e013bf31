package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/relatify/relatify_go_server/internal/model"
	"github.com/relatify/relatify_go_server/internal/pkg/cache"
	"github.com/relatify/relatify_go_server/internal/repository"
	"github.com/relatify/relatify_go_server/internal/testutil"
)

func setupProgressService(t *testing.T) (*ProgressService, *gorm.DB, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	service := NewProgressService(
		repository.NewProgressRepository(db),
		repository.NewBadgeRepository(db),
		cache.New(nil, 0),
		nil,
	)

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}
	return service, db, cleanup
}

func TestProgressService_RecordExplanation_FirstActivity(t *testing.T) {
	service, db, cleanup := setupProgressService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	testutil.TestProgress(t, db, user.ID)

	progress, err := service.RecordExplanation(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, progress.TotalExplanations)
	assert.Equal(t, 1, progress.CurrentStreak)
	assert.Equal(t, 1, progress.LongestStreak)
	assert.Equal(t, 1, progress.TotalStars)
	require.NotNil(t, progress.LastActivityDate)

	// 首次讲解授予徽章
	has, err := repository.NewBadgeRepository(db).Has(user.ID, model.BadgeFirstExplanation)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestProgressService_RecordExplanation_SameDayNoStreakChange(t *testing.T) {
	service, db, cleanup := setupProgressService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	testutil.TestProgress(t, db, user.ID, testutil.WithStreak(3, 5, time.Now()))

	progress, err := service.RecordExplanation(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, progress.CurrentStreak)
	assert.Equal(t, 5, progress.LongestStreak)
}

func TestProgressService_RecordExplanation_ConsecutiveDay(t *testing.T) {
	service, db, cleanup := setupProgressService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	yesterday := time.Now().AddDate(0, 0, -1)
	testutil.TestProgress(t, db, user.ID, testutil.WithStreak(3, 3, yesterday))

	progress, err := service.RecordExplanation(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, progress.CurrentStreak)
	assert.Equal(t, 4, progress.LongestStreak)
}

func TestProgressService_RecordExplanation_GapResetsStreak(t *testing.T) {
	service, db, cleanup := setupProgressService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	threeDaysAgo := time.Now().AddDate(0, 0, -3)
	testutil.TestProgress(t, db, user.ID, testutil.WithStreak(9, 9, threeDaysAgo))

	progress, err := service.RecordExplanation(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, progress.CurrentStreak)
	// 历史最长保留
	assert.Equal(t, 9, progress.LongestStreak)
}

func TestProgressService_RecordExplanation_WeekStreakBadge(t *testing.T) {
	service, db, cleanup := setupProgressService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	yesterday := time.Now().AddDate(0, 0, -1)
	testutil.TestProgress(t, db, user.ID, testutil.WithStreak(6, 6, yesterday))

	progress, err := service.RecordExplanation(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, progress.CurrentStreak)

	has, err := repository.NewBadgeRepository(db).Has(user.ID, model.BadgeWeekStreak)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestProgressService_RecordExplanation_TenTopicsBadge(t *testing.T) {
	service, db, cleanup := setupProgressService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	testutil.TestProgress(t, db, user.ID, testutil.WithTotals(9, 9))

	_, err := service.RecordExplanation(context.Background(), user.ID)
	require.NoError(t, err)

	has, err := repository.NewBadgeRepository(db).Has(user.ID, model.BadgeTenExplanations)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestProgressService_RecordExplanation_BadgeIdempotent(t *testing.T) {
	service, db, cleanup := setupProgressService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	testutil.TestProgress(t, db, user.ID)

	_, err := service.RecordExplanation(context.Background(), user.ID)
	require.NoError(t, err)
	_, err = service.RecordExplanation(context.Background(), user.ID)
	require.NoError(t, err)

	badges, err := repository.NewBadgeRepository(db).ListByUser(user.ID)
	require.NoError(t, err)
	assert.Len(t, badges, 1)
}

func TestProgressService_RecordExplanation_NoProgressRow(t *testing.T) {
	service, db, cleanup := setupProgressService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	_, err := service.RecordExplanation(context.Background(), user.ID)
	assert.Equal(t, ErrProgressNotFound, err)
}

func TestProgressService_GetStats(t *testing.T) {
	service, db, cleanup := setupProgressService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	lastActivity := time.Now()
	testutil.TestProgress(t, db, user.ID,
		testutil.WithTotals(12, 15),
		testutil.WithStreak(4, 8, lastActivity),
	)

	stats, err := service.GetStats(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, 12, stats.TotalExplanations)
	assert.Equal(t, 4, stats.CurrentStreak)
	assert.Equal(t, 8, stats.LongestStreak)
	assert.Equal(t, 15, stats.TotalStars)
	assert.Equal(t, lastActivity.Format("2006-01-02"), stats.LastActivityDate)
}

func TestProgressService_GetStats_NotFound(t *testing.T) {
	service, db, cleanup := setupProgressService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	_, err := service.GetStats(context.Background(), user.ID)
	assert.Equal(t, ErrProgressNotFound, err)
}

func TestProgressService_RecordScan_AwardsBadge(t *testing.T) {
	service, db, cleanup := setupProgressService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	service.RecordScan(context.Background(), user.ID, 4)
	has, err := repository.NewBadgeRepository(db).Has(user.ID, model.BadgeScanMaster)
	require.NoError(t, err)
	assert.False(t, has)

	service.RecordScan(context.Background(), user.ID, 5)
	has, err = repository.NewBadgeRepository(db).Has(user.ID, model.BadgeScanMaster)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestProgressService_ListBadges(t *testing.T) {
	service, db, cleanup := setupProgressService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	testutil.TestBadge(t, db, user.ID, model.BadgeFirstExplanation)
	testutil.TestBadge(t, db, user.ID, model.BadgeCuriousLearner)

	badges, err := service.ListBadges(user.ID)
	require.NoError(t, err)
	require.Len(t, badges, 2)
	assert.Equal(t, string(model.BadgeFirstExplanation), badges[0].BadgeType)
}

func TestApplyStreak_Table(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.Local)
	yesterday := now.AddDate(0, 0, -1)
	lastWeek := now.AddDate(0, 0, -7)

	tests := []struct {
		name        string
		last        *time.Time
		current     int
		longest     int
		wantCurrent int
		wantLongest int
	}{
		{"首次活跃", nil, 0, 0, 1, 1},
		{"同日重复", &now, 3, 5, 3, 5},
		{"连续日", &yesterday, 3, 3, 4, 4},
		{"断档重置", &lastWeek, 6, 6, 1, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			progress := &model.Progress{
				CurrentStreak:    tt.current,
				LongestStreak:    tt.longest,
				LastActivityDate: tt.last,
			}
			applyStreak(progress, now)
			assert.Equal(t, tt.wantCurrent, progress.CurrentStreak)
			assert.Equal(t, tt.wantLongest, progress.LongestStreak)
		})
	}
}

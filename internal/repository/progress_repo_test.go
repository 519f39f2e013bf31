package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relatify/relatify_go_server/internal/testutil"
)

func TestProgressRepository_CreateAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewProgressRepository(db)

	user := testutil.TestUser(t, db)
	testutil.TestProgress(t, db, user.ID)

	progress, err := repo.GetByUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, progress.TotalExplanations)
	assert.Equal(t, 0, progress.CurrentStreak)
	assert.Nil(t, progress.LastActivityDate)
}

func TestProgressRepository_Exists(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewProgressRepository(db)

	user := testutil.TestUser(t, db)

	exists, err := repo.Exists(user.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	testutil.TestProgress(t, db, user.ID)

	exists, err = repo.Exists(user.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestProgressRepository_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewProgressRepository(db)

	user := testutil.TestUser(t, db)
	progress := testutil.TestProgress(t, db, user.ID)

	now := time.Now()
	progress.TotalExplanations = 3
	progress.CurrentStreak = 2
	progress.LongestStreak = 5
	progress.LastActivityDate = &now

	err := repo.Update(progress)
	require.NoError(t, err)

	found, err := repo.GetByUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, found.TotalExplanations)
	assert.Equal(t, 2, found.CurrentStreak)
	assert.Equal(t, 5, found.LongestStreak)
	require.NotNil(t, found.LastActivityDate)
}

func TestProgressRepository_ResetStaleStreaks(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewProgressRepository(db)

	stale := testutil.TestUser(t, db)
	fresh := testutil.TestUser(t, db)
	idle := testutil.TestUser(t, db)

	threeDaysAgo := time.Now().AddDate(0, 0, -3)
	today := time.Now()
	testutil.TestProgress(t, db, stale.ID, testutil.WithStreak(4, 4, threeDaysAgo))
	testutil.TestProgress(t, db, fresh.ID, testutil.WithStreak(2, 2, today))
	testutil.TestProgress(t, db, idle.ID) // 从未活跃，streak 已是 0

	cutoff := time.Now().AddDate(0, 0, -1)
	affected, err := repo.ResetStaleStreaks(cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	staleProgress, err := repo.GetByUser(stale.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, staleProgress.CurrentStreak)
	assert.Equal(t, 4, staleProgress.LongestStreak)

	freshProgress, err := repo.GetByUser(fresh.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, freshProgress.CurrentStreak)
}

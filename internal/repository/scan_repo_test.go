package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relatify/relatify_go_server/internal/testutil"
)

func TestScanRepository_CreateAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewScanRepository(db)

	user := testutil.TestUser(t, db)
	created := testutil.TestScan(t, db, user.ID)

	found, err := repo.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.UserID)
	assert.False(t, found.Processed)
}

func TestScanRepository_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewScanRepository(db)

	user := testutil.TestUser(t, db)
	scan := testutil.TestScan(t, db, user.ID)

	text := "photosynthesis"
	scan.ExtractedText = &text
	scan.Processed = true
	err := repo.Update(scan)
	require.NoError(t, err)

	found, err := repo.GetByID(scan.ID)
	require.NoError(t, err)
	assert.True(t, found.Processed)
	require.NotNil(t, found.ExtractedText)
	assert.Equal(t, "photosynthesis", *found.ExtractedText)
}

func TestScanRepository_CountProcessedByUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewScanRepository(db)

	user := testutil.TestUser(t, db)
	testutil.TestScan(t, db, user.ID, testutil.WithProcessed("text one"))
	testutil.TestScan(t, db, user.ID, testutil.WithProcessed("text two"))
	testutil.TestScan(t, db, user.ID) // 未处理

	count, err := repo.CountProcessedByUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestScanRepository_ListExpired(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewScanRepository(db)

	user := testutil.TestUser(t, db)
	old := testutil.TestScan(t, db, user.ID, testutil.WithScanCreatedAt(time.Now().AddDate(0, 0, -40)))
	testutil.TestScan(t, db, user.ID) // 新记录

	cutoff := time.Now().AddDate(0, 0, -30)
	expired, err := repo.ListExpired(cutoff, 100)
	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.Equal(t, old.ID, expired[0].ID)
}

func TestScanRepository_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewScanRepository(db)

	user := testutil.TestUser(t, db)
	scan := testutil.TestScan(t, db, user.ID)

	err := repo.Delete(scan.ID)
	require.NoError(t, err)

	_, err = repo.GetByID(scan.ID)
	assert.Error(t, err)
}

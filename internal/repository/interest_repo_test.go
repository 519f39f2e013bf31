package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relatify/relatify_go_server/internal/testutil"
)

func TestInterestRepository_ListByUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewInterestRepository(db)

	user := testutil.TestUser(t, db)
	testutil.TestInterests(t, db, user.ID, []string{"Basketball", "Cooking"}, "")

	interests, err := repo.ListByUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Basketball", "Cooking"}, interests)
}

func TestInterestRepository_ListByUser_Empty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewInterestRepository(db)

	user := testutil.TestUser(t, db)

	interests, err := repo.ListByUser(user.ID)
	require.NoError(t, err)
	assert.Empty(t, interests)
}

func TestInterestRepository_ReplaceAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewInterestRepository(db)

	user := testutil.TestUser(t, db)
	testutil.TestInterests(t, db, user.ID, []string{"Basketball", "Cooking"}, "")

	err := repo.ReplaceAll(user.ID, []string{"Music", "Gaming", "Space"})
	require.NoError(t, err)

	interests, err := repo.ListByUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Music", "Gaming", "Space"}, interests)
}

func TestInterestRepository_ReplaceAll_Clear(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewInterestRepository(db)

	user := testutil.TestUser(t, db)
	testutil.TestInterests(t, db, user.ID, []string{"Basketball"}, "")

	err := repo.ReplaceAll(user.ID, nil)
	require.NoError(t, err)

	interests, err := repo.ListByUser(user.ID)
	require.NoError(t, err)
	assert.Empty(t, interests)
}

func TestInterestRepository_ReplaceAll_DoesNotTouchOtherUsers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewInterestRepository(db)

	userA := testutil.TestUser(t, db)
	userB := testutil.TestUser(t, db)
	testutil.TestInterests(t, db, userA.ID, []string{"Basketball"}, "")
	testutil.TestInterests(t, db, userB.ID, []string{"Cooking"}, "")

	err := repo.ReplaceAll(userA.ID, []string{"Music"})
	require.NoError(t, err)

	interestsB, err := repo.ListByUser(userB.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Cooking"}, interestsB)
}

func TestInterestRepository_LearningStyle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewInterestRepository(db)

	user := testutil.TestUser(t, db)

	// 未设置时返回 not found
	_, err := repo.GetLearningStyle(user.ID)
	assert.Error(t, err)

	err = repo.SetLearningStyle(user.ID, "story")
	require.NoError(t, err)

	style, err := repo.GetLearningStyle(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "story", style.Style)

	// 重复设置走更新路径
	err = repo.SetLearningStyle(user.ID, "visual")
	require.NoError(t, err)

	style, err = repo.GetLearningStyle(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "visual", style.Style)
}

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/relatify/relatify_go_server/internal/model/dto"
	"github.com/relatify/relatify_go_server/internal/pkg/cache"
	"github.com/relatify/relatify_go_server/internal/repository"
	"github.com/relatify/relatify_go_server/internal/testutil"
)

func setupProfileService(t *testing.T) (*ProfileService, *gorm.DB, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	service := NewProfileService(
		repository.NewUserRepository(db),
		repository.NewInterestRepository(db),
		nil,
		cache.New(nil, 0),
	)

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}
	return service, db, cleanup
}

func TestProfileService_GetProfile(t *testing.T) {
	service, db, cleanup := setupProfileService(t)
	defer cleanup()

	user := testutil.TestUser(t, db, testutil.WithUsername("profileuser"))
	testutil.TestInterests(t, db, user.ID, []string{"Gaming", "Space"}, "visual")

	profile, err := service.GetProfile(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "profileuser", profile.User.Username)
	assert.Equal(t, []string{"Gaming", "Space"}, profile.Interests)
	assert.Equal(t, "visual", profile.LearningStyle)
}

func TestProfileService_GetProfile_NoPreferences(t *testing.T) {
	service, db, cleanup := setupProfileService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	profile, err := service.GetProfile(user.ID)
	require.NoError(t, err)
	assert.Empty(t, profile.Interests)
	assert.Empty(t, profile.LearningStyle)
}

func TestProfileService_GetProfile_NotFound(t *testing.T) {
	service, _, cleanup := setupProfileService(t)
	defer cleanup()

	_, err := service.GetProfile(99999)
	assert.Equal(t, ErrUserNotFound, err)
}

func TestProfileService_UpdateProfile_Username(t *testing.T) {
	service, db, cleanup := setupProfileService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	newName := "renamed_user"
	err := service.UpdateProfile(context.Background(), user.ID, &dto.UpdateProfileRequest{
		Username: &newName,
	})
	require.NoError(t, err)

	found, err := repository.NewUserRepository(db).GetByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed_user", found.Username)
}

func TestProfileService_UpdateProfile_UsernameTaken(t *testing.T) {
	service, db, cleanup := setupProfileService(t)
	defer cleanup()

	testutil.TestUser(t, db, testutil.WithUsername("taken"))
	user := testutil.TestUser(t, db)

	taken := "taken"
	err := service.UpdateProfile(context.Background(), user.ID, &dto.UpdateProfileRequest{
		Username: &taken,
	})
	assert.Equal(t, ErrUsernameExists, err)
}

func TestProfileService_UpdateProfile_KeepOwnUsername(t *testing.T) {
	service, db, cleanup := setupProfileService(t)
	defer cleanup()

	user := testutil.TestUser(t, db, testutil.WithUsername("keeper"))

	// 提交自己现有的用户名不算冲突
	same := "keeper"
	err := service.UpdateProfile(context.Background(), user.ID, &dto.UpdateProfileRequest{
		Username: &same,
	})
	require.NoError(t, err)
}

func TestProfileService_UpdateProfile_ReplaceInterests(t *testing.T) {
	service, db, cleanup := setupProfileService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	testutil.TestInterests(t, db, user.ID, []string{"Old1", "Old2"}, "")

	err := service.UpdateProfile(context.Background(), user.ID, &dto.UpdateProfileRequest{
		Interests: []string{"New1", "New2", "New3"},
	})
	require.NoError(t, err)

	interests, err := repository.NewInterestRepository(db).ListByUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"New1", "New2", "New3"}, interests)
}

func TestProfileService_UpdateProfile_TooManyInterests(t *testing.T) {
	service, db, cleanup := setupProfileService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	err := service.UpdateProfile(context.Background(), user.ID, &dto.UpdateProfileRequest{
		Interests: []string{"A", "B", "C", "D"},
	})
	assert.Equal(t, ErrTooManyInterests, err)
}

func TestProfileService_UploadAvatar_Validation(t *testing.T) {
	service, db, cleanup := setupProfileService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	// 超出大小限制
	big := make([]byte, maxAvatarSize+1)
	_, err := service.UploadAvatar(user.ID, big, "avatar.png")
	assert.Equal(t, ErrAvatarTooLarge, err)

	// 不支持的格式
	_, err = service.UploadAvatar(user.ID, []byte("data"), "avatar.exe")
	assert.Equal(t, ErrUnsupportedFormat, err)

	// 无扩展名
	_, err = service.UploadAvatar(user.ID, []byte("data"), "avatar")
	assert.Equal(t, ErrUnsupportedFormat, err)
}

func TestProfileService_UploadAvatar_StorageUnavailable(t *testing.T) {
	service, db, cleanup := setupProfileService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	// OSS 降级运行时合法上传返回错误而非崩溃
	_, err := service.UploadAvatar(user.ID, []byte("png data"), "avatar.png")
	assert.Equal(t, ErrStorageUnavailable, err)
}

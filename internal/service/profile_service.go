package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/relatify/relatify_go_server/internal/model/dto"
	"github.com/relatify/relatify_go_server/internal/pkg/cache"
	"github.com/relatify/relatify_go_server/internal/pkg/oss"
	"github.com/relatify/relatify_go_server/internal/repository"
)

var (
	ErrAvatarTooLarge     = errors.New("头像文件过大")
	ErrUnsupportedFormat  = errors.New("不支持的图片格式")
	ErrStorageUnavailable = errors.New("存储服务不可用")
	errNothingToUpdate    = errors.New("没有需要更新的字段")
)

const maxAvatarSize = 2 << 20 // 2MB

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

type ProfileService struct {
	userRepo     *repository.UserRepository
	interestRepo *repository.InterestRepository
	ossClient    *oss.Client
	cache        *cache.Cache
}

func NewProfileService(
	userRepo *repository.UserRepository,
	interestRepo *repository.InterestRepository,
	ossClient *oss.Client,
	c *cache.Cache,
) *ProfileService {
	return &ProfileService{
		userRepo:     userRepo,
		interestRepo: interestRepo,
		ossClient:    ossClient,
		cache:        c,
	}
}

// GetProfile 返回个人资料与偏好
func (s *ProfileService) GetProfile(userID int64) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	interests, err := s.interestRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	info := &dto.UserInfo{
		ID:            user.ID,
		Username:      user.Username,
		EmailVerified: user.EmailVerified,
	}
	if user.Email != nil {
		info.Email = *user.Email
	}
	if user.AvatarURL != nil {
		info.AvatarURL = *user.AvatarURL
	}

	resp := &dto.ProfileResponse{
		User:      info,
		Interests: interests,
	}

	style, err := s.interestRepo.GetLearningStyle(userID)
	if err == nil {
		resp.LearningStyle = style.Style
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return resp, nil
}

// UpdateProfile 更新用户名与兴趣，兴趣整体替换
func (s *ProfileService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) error {
	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		if username == "" {
			return errNothingToUpdate
		}

		existing, err := s.userRepo.GetByUsername(username)
		if err == nil && existing.ID != userID {
			return ErrUsernameExists
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := s.userRepo.UpdateFields(userID, map[string]interface{}{"username": username}); err != nil {
			return err
		}
	}

	if req.Interests != nil {
		interests, err := normalizeInterests(req.Interests)
		if err != nil {
			return err
		}
		if err := s.interestRepo.ReplaceAll(userID, interests); err != nil {
			return err
		}
		if err := s.cache.Invalidate(ctx, cache.InterestsKey(userID)); err != nil {
			log.Printf("清除兴趣缓存失败 user=%d: %v", userID, err)
		}
	}

	return nil
}

// UploadAvatar 上传头像并更新用户记录，返回访问 URL
func (s *ProfileService) UploadAvatar(userID int64, data []byte, filename string) (string, error) {
	if len(data) > maxAvatarSize {
		return "", ErrAvatarTooLarge
	}

	dot := strings.LastIndex(filename, ".")
	if dot < 0 {
		return "", ErrUnsupportedFormat
	}
	ext := strings.ToLower(filename[dot:])
	if !allowedImageExts[ext] {
		return "", ErrUnsupportedFormat
	}

	if s.ossClient == nil {
		return "", ErrStorageUnavailable
	}

	objectKey, err := s.ossClient.UploadAvatar(userID, data, ext)
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}

	url := s.ossClient.GetURL(objectKey)
	if err := s.userRepo.UpdateFields(userID, map[string]interface{}{"avatar_url": url}); err != nil {
		return "", err
	}
	return url, nil
}

package repository

import (
	"gorm.io/gorm"

	"github.com/relatify/relatify_go_server/internal/model"
)

type BadgeRepository struct {
	db *gorm.DB
}

func NewBadgeRepository(db *gorm.DB) *BadgeRepository {
	return &BadgeRepository{db: db}
}

func (r *BadgeRepository) Create(badge *model.Badge) error {
	return r.db.Create(badge).Error
}

func (r *BadgeRepository) ListByUser(userID int64) ([]model.Badge, error) {
	var badges []model.Badge
	err := r.db.Where("user_id = ?", userID).Order("earned_at ASC").Find(&badges).Error
	if err != nil {
		return nil, err
	}
	return badges, nil
}

// Has 判断用户是否已获得某徽章，授予前去重
func (r *BadgeRepository) Has(userID int64, badgeType model.BadgeType) (bool, error) {
	var count int64
	err := r.db.Model(&model.Badge{}).
		Where("user_id = ? AND badge_type = ?", userID, badgeType).
		Count(&count).Error
	return count > 0, err
}

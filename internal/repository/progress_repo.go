package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/relatify/relatify_go_server/internal/model"
)

type ProgressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

func (r *ProgressRepository) Create(progress *model.Progress) error {
	return r.db.Create(progress).Error
}

func (r *ProgressRepository) GetByUser(userID int64) (*model.Progress, error) {
	var progress model.Progress
	err := r.db.Where("user_id = ?", userID).First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// Exists 判断用户是否已有进度行（即是否完成引导）
func (r *ProgressRepository) Exists(userID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Progress{}).Where("user_id = ?", userID).Count(&count).Error
	return count > 0, err
}

func (r *ProgressRepository) Update(progress *model.Progress) error {
	return r.db.Save(progress).Error
}

// ResetStaleStreaks 将活跃日早于 cutoff 的连续天数清零，返回影响行数
func (r *ProgressRepository) ResetStaleStreaks(cutoff time.Time) (int64, error) {
	result := r.db.Model(&model.Progress{}).
		Where("current_streak > 0 AND last_activity_date < ?", cutoff).
		Update("current_streak", 0)
	return result.RowsAffected, result.Error
}

package repository

import (
	"gorm.io/gorm"

	"github.com/relatify/relatify_go_server/internal/model"
)

type ExplanationRepository struct {
	db *gorm.DB
}

func NewExplanationRepository(db *gorm.DB) *ExplanationRepository {
	return &ExplanationRepository{db: db}
}

func (r *ExplanationRepository) Create(explanation *model.Explanation) error {
	return r.db.Create(explanation).Error
}

// GetByID 按主键查询，调用方负责校验归属
func (r *ExplanationRepository) GetByID(id int64) (*model.Explanation, error) {
	var explanation model.Explanation
	err := r.db.Where("id = ?", id).First(&explanation).Error
	if err != nil {
		return nil, err
	}
	return &explanation, nil
}

// ListByUser 分页返回用户的讲解历史（新到旧）
func (r *ExplanationRepository) ListByUser(userID int64, page, pageSize int) ([]model.Explanation, int64, error) {
	var explanations []model.Explanation
	var total int64

	err := r.db.Model(&model.Explanation{}).Where("user_id = ?", userID).Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err = r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).Limit(pageSize).
		Find(&explanations).Error
	if err != nil {
		return nil, 0, err
	}
	return explanations, total, nil
}

func (r *ExplanationRepository) CountByUser(userID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Explanation{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *ExplanationRepository) Delete(id, userID int64) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&model.Explanation{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

package repository

import (
	"gorm.io/gorm"

	"github.com/relatify/relatify_go_server/internal/model"
)

type FollowUpRepository struct {
	db *gorm.DB
}

func NewFollowUpRepository(db *gorm.DB) *FollowUpRepository {
	return &FollowUpRepository{db: db}
}

func (r *FollowUpRepository) Create(followUp *model.FollowUp) error {
	return r.db.Create(followUp).Error
}

// ListByExplanation 返回某条讲解下的追问记录（旧到新）
func (r *FollowUpRepository) ListByExplanation(explanationID, userID int64) ([]model.FollowUp, error) {
	var followUps []model.FollowUp
	err := r.db.Where("explanation_id = ? AND user_id = ?", explanationID, userID).
		Order("created_at ASC").
		Find(&followUps).Error
	if err != nil {
		return nil, err
	}
	return followUps, nil
}

func (r *FollowUpRepository) CountByUser(userID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.FollowUp{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

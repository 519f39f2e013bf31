package repository

import (
	"gorm.io/gorm"

	"github.com/relatify/relatify_go_server/internal/model"
)

type InterestRepository struct {
	db *gorm.DB
}

func NewInterestRepository(db *gorm.DB) *InterestRepository {
	return &InterestRepository{db: db}
}

// ListByUser 返回用户当前的兴趣列表（按创建顺序）
func (r *InterestRepository) ListByUser(userID int64) ([]string, error) {
	var rows []model.Interest
	err := r.db.Where("user_id = ?", userID).Order("id ASC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	interests := make([]string, 0, len(rows))
	for _, row := range rows {
		interests = append(interests, row.Interest)
	}
	return interests, nil
}

// ReplaceAll 在单个事务内用新列表整体替换用户兴趣
func (r *InterestRepository) ReplaceAll(userID int64, interests []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&model.Interest{}).Error; err != nil {
			return err
		}
		for _, interest := range interests {
			row := model.Interest{UserID: userID, Interest: interest}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *InterestRepository) GetLearningStyle(userID int64) (*model.LearningStyle, error) {
	var style model.LearningStyle
	err := r.db.Where("user_id = ?", userID).First(&style).Error
	if err != nil {
		return nil, err
	}
	return &style, nil
}

func (r *InterestRepository) SetLearningStyle(userID int64, style string) error {
	var existing model.LearningStyle
	err := r.db.Where("user_id = ?", userID).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return r.db.Create(&model.LearningStyle{UserID: userID, Style: style}).Error
	}
	if err != nil {
		return err
	}
	existing.Style = style
	return r.db.Save(&existing).Error
}

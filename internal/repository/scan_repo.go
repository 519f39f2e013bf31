package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/relatify/relatify_go_server/internal/model"
)

type ScanRepository struct {
	db *gorm.DB
}

func NewScanRepository(db *gorm.DB) *ScanRepository {
	return &ScanRepository{db: db}
}

func (r *ScanRepository) Create(scan *model.Scan) error {
	return r.db.Create(scan).Error
}

func (r *ScanRepository) GetByID(id int64) (*model.Scan, error) {
	var scan model.Scan
	err := r.db.Where("id = ?", id).First(&scan).Error
	if err != nil {
		return nil, err
	}
	return &scan, nil
}

func (r *ScanRepository) ListByUser(userID int64, limit int) ([]model.Scan, error) {
	var scans []model.Scan
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").Limit(limit).
		Find(&scans).Error
	if err != nil {
		return nil, err
	}
	return scans, nil
}

func (r *ScanRepository) Update(scan *model.Scan) error {
	return r.db.Save(scan).Error
}

func (r *ScanRepository) CountProcessedByUser(userID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Scan{}).
		Where("user_id = ? AND processed = ?", userID, true).
		Count(&count).Error
	return count, err
}

// ListExpired 返回早于 cutoff 的扫描记录，供清理任务删除图片
func (r *ScanRepository) ListExpired(cutoff time.Time, limit int) ([]model.Scan, error) {
	var scans []model.Scan
	err := r.db.Where("created_at < ?", cutoff).Limit(limit).Find(&scans).Error
	if err != nil {
		return nil, err
	}
	return scans, nil
}

func (r *ScanRepository) Delete(id int64) error {
	return r.db.Where("id = ?", id).Delete(&model.Scan{}).Error
}

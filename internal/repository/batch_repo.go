package repository

import (
	"lead-distribution-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BatchRepository struct {
	db *gorm.DB
}

func NewBatchRepository(db *gorm.DB) *BatchRepository {
	return &BatchRepository{db: db}
}

// Expose DB if needed
func (r *BatchRepository) DB() *gorm.DB {
	return r.db
}

func (r *BatchRepository) Create(batch *models.Batch) error {
	return r.db.Create(batch).Error
}

// GetByID fetch a single batch by ID
func (r *BatchRepository) GetByID(id uuid.UUID) (*models.Batch, error) {
	var batch models.Batch
	err := r.db.First(&batch, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &batch, nil
}

// DeleteWithTasks removes a batch and all of its phone tasks. Callers
// see this as one cascade-delete primitive; children go first so a
// reader never finds orphaned tasks after the batch row is gone.
func (r *BatchRepository) DeleteWithTasks(id uuid.UUID) error {
	if err := r.db.Where("batch_id = ?", id).Delete(&models.PhoneTask{}).Error; err != nil {
		return err
	}
	return r.db.Delete(&models.Batch{}, "id = ?", id).Error
}

func (r *BatchRepository) List(limit int) ([]models.Batch, error) {
	var batches []models.Batch
	err := r.db.Order("created_at DESC").Limit(limit).Find(&batches).Error
	return batches, err
}

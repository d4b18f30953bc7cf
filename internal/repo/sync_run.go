package repo

import (
	"skucraft/pkg/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SyncRunRepository handles sync run data access
type SyncRunRepository struct {
	db *gorm.DB
}

// NewSyncRunRepository creates a new sync run repository
func NewSyncRunRepository(db *gorm.DB) *SyncRunRepository {
	return &SyncRunRepository{db: db}
}

// Create creates a new sync run
func (r *SyncRunRepository) Create(run *models.SyncRun) error {
	return r.db.Create(run).Error
}

// Update persists changes to a sync run
func (r *SyncRunRepository) Update(run *models.SyncRun) error {
	return r.db.Save(run).Error
}

// GetByID gets a sync run by ID
func (r *SyncRunRepository) GetByID(id uuid.UUID) (*models.SyncRun, error) {
	var run models.SyncRun
	if err := r.db.Where("id = ?", id).First(&run).Error; err != nil {
		return nil, err
	}
	return &run, nil
}

// GetByBulkJobID finds the run tracking a platform bulk job, if any
func (r *SyncRunRepository) GetByBulkJobID(jobID string) (*models.SyncRun, error) {
	var run models.SyncRun
	err := r.db.Where("bulk_job_id = ?", jobID).Order("created_at DESC").First(&run).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// List returns recent sync runs, newest first
func (r *SyncRunRepository) List(limit int) ([]models.SyncRun, error) {
	if limit <= 0 {
		limit = 20
	}
	var runs []models.SyncRun
	if err := r.db.Order("created_at DESC").Limit(limit).Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

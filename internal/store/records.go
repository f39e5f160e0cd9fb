package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/aparnaratheesh55/sunbird-cb-ext/internal/models"
)

// Records provides read access to the work-order and work-allocation tables
type Records struct {
	db *gorm.DB
}

// NewRecords creates a record store backed by the given database
func NewRecords(db *gorm.DB) *Records {
	return &Records{db: db}
}

// FindWorkOrderByID looks up a work order by primary key.
// Returns (nil, nil) when no row exists; absence is not an error here.
func (r *Records) FindWorkOrderByID(id string) (*models.WorkOrderRecord, error) {
	var record models.WorkOrderRecord
	err := r.db.Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load work order %s: %w", id, err)
	}
	return &record, nil
}

// FindWorkAllocationsByIDIn batch-loads work allocations whose id is in ids.
// Missing ids are simply absent from the result, preserving the order the
// database returns.
func (r *Records) FindWorkAllocationsByIDIn(ids []string) ([]models.WorkAllocationRecord, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var records []models.WorkAllocationRecord
	if err := r.db.Where("id IN ?", ids).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to load work allocations: %w", err)
	}
	return records, nil
}

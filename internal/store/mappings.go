package store

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/aparnaratheesh55/sunbird-cb-ext/internal/models"
)

// Mappings provides write access to the user-to-work-order mapping index
type Mappings struct {
	db *gorm.DB
}

// NewMappings creates a mapping store backed by the given database
func NewMappings(db *gorm.DB) *Mappings {
	return &Mappings{db: db}
}

// UpsertAll writes the given mapping rows, updating existing rows on the
// (user_id, work_allocation_id) key. The write is idempotent: replaying the
// same batch leaves the table unchanged apart from updated_at. Rows for
// users no longer on the work order are not deleted.
func (m *Mappings) UpsertAll(rows []models.UserWorkOrderMapping) error {
	if len(rows) == 0 {
		return nil
	}

	batch := stampRows(rows, time.Now().UTC())

	err := m.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "work_allocation_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"work_order_id", "status", "updated_at",
		}),
	}).Create(&batch).Error

	if err != nil {
		return fmt.Errorf("failed to upsert %d mapping rows: %w", len(batch), err)
	}
	return nil
}

// stampRows copies the rows with updated_at set, leaving the caller's
// slice untouched
func stampRows(rows []models.UserWorkOrderMapping, now time.Time) []models.UserWorkOrderMapping {
	batch := make([]models.UserWorkOrderMapping, len(rows))
	for i, row := range rows {
		row.UpdatedAt = now
		batch[i] = row
	}
	return batch
}

package pipeline

import (
	"github.com/aparnaratheesh55/sunbird-cb-ext/internal/models"
)

// ProjectMappings derives user-to-work-order index rows from a work-order
// document and its allocations. Allocations missing a user id or an
// allocation id are silently skipped. Returns nil when there is nothing to
// write: no allocations, or a work order with an empty status.
func ProjectMappings(doc map[string]interface{}, allocations []models.WorkAllocation) []models.UserWorkOrderMapping {
	workOrderID := docString(doc, "id")
	status := docString(doc, "status")
	if len(allocations) == 0 || status == "" {
		return nil
	}

	rows := make([]models.UserWorkOrderMapping, 0, len(allocations))
	for _, alloc := range allocations {
		if alloc.UserID == "" || alloc.ID == "" {
			continue
		}
		rows = append(rows, models.UserWorkOrderMapping{
			UserID:           alloc.UserID,
			WorkAllocationID: alloc.ID,
			WorkOrderID:      workOrderID,
			Status:           status,
		})
	}

	if len(rows) == 0 {
		return nil
	}
	return rows
}

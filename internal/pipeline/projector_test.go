package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aparnaratheesh55/sunbird-cb-ext/internal/models"
)

func workOrderDoc(id, status string) map[string]interface{} {
	return map[string]interface{}{
		"id":     id,
		"status": status,
	}
}

func TestProjectMappings_OneRowPerValidAllocation(t *testing.T) {
	t.Parallel()

	allocations := []models.WorkAllocation{
		{ID: "a1", UserID: "u1"},
		{ID: "a2", UserID: "u2"},
	}

	rows := ProjectMappings(workOrderDoc("wo1", "PUBLISHED"), allocations)

	require.Len(t, rows, 2)
	assert.Equal(t, models.UserWorkOrderMapping{
		UserID:           "u1",
		WorkAllocationID: "a1",
		WorkOrderID:      "wo1",
		Status:           "PUBLISHED",
	}, rows[0])
	assert.Equal(t, "u2", rows[1].UserID)
	assert.Equal(t, "a2", rows[1].WorkAllocationID)
}

func TestProjectMappings_SkipsAllocationsWithEmptyFields(t *testing.T) {
	t.Parallel()

	allocations := []models.WorkAllocation{
		{ID: "", UserID: "u1"},
		{ID: "a2", UserID: ""},
		{ID: "a3", UserID: "u3"},
	}

	rows := ProjectMappings(workOrderDoc("wo1", "PUBLISHED"), allocations)

	require.Len(t, rows, 1)
	assert.Equal(t, "u3", rows[0].UserID)
	assert.Equal(t, "a3", rows[0].WorkAllocationID)
}

func TestProjectMappings_EmptyStatusYieldsNothing(t *testing.T) {
	t.Parallel()

	allocations := []models.WorkAllocation{{ID: "a1", UserID: "u1"}}

	assert.Nil(t, ProjectMappings(workOrderDoc("wo1", ""), allocations))
	assert.Nil(t, ProjectMappings(map[string]interface{}{"id": "wo1"}, allocations))
}

func TestProjectMappings_NoAllocationsYieldsNothing(t *testing.T) {
	t.Parallel()

	assert.Nil(t, ProjectMappings(workOrderDoc("wo1", "PUBLISHED"), nil))
}

func TestProjectMappings_AllAllocationsFilteredYieldsNothing(t *testing.T) {
	t.Parallel()

	allocations := []models.WorkAllocation{{ID: "", UserID: ""}}

	assert.Nil(t, ProjectMappings(workOrderDoc("wo1", "PUBLISHED"), allocations))
}

package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aparnaratheesh55/sunbird-cb-ext/internal/models"
)

func TestStampRows_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	rows := []models.UserWorkOrderMapping{
		{UserID: "u1", WorkAllocationID: "a1", WorkOrderID: "wo1", Status: "PUBLISHED"},
		{UserID: "u2", WorkAllocationID: "a2", WorkOrderID: "wo1", Status: "PUBLISHED"},
	}
	now := time.Date(2021, 5, 3, 0, 0, 0, 0, time.UTC)

	batch := stampRows(rows, now)

	require.Len(t, batch, 2)
	for i, row := range batch {
		assert.Equal(t, now, row.UpdatedAt)
		// Caller's rows keep their zero timestamp
		assert.True(t, rows[i].UpdatedAt.IsZero())
		assert.Equal(t, rows[i].UserID, row.UserID)
		assert.Equal(t, rows[i].WorkAllocationID, row.WorkAllocationID)
	}
}

func TestStampRows_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, stampRows(nil, time.Now()))
}

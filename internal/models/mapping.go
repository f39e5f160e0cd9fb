package models

import "time"

// UserWorkOrderMapping is one row of the derived user-to-work-order index.
// Rows are refreshed wholesale on every pipeline run for the current set of
// allocations; stale rows for users removed from a work order are not
// deleted.
type UserWorkOrderMapping struct {
	UserID           string    `gorm:"column:user_id;primaryKey" json:"user_id"`
	WorkAllocationID string    `gorm:"column:work_allocation_id;primaryKey" json:"work_allocation_id"`
	WorkOrderID      string    `gorm:"column:work_order_id;not null" json:"work_order_id"`
	Status           string    `gorm:"column:status;not null" json:"status"`
	UpdatedAt        time.Time `gorm:"column:updated_at;not null;default:now()" json:"updated_at"`
}

func (UserWorkOrderMapping) TableName() string {
	return "user_work_order_mapping"
}

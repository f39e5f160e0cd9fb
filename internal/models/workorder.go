package models

// WorkOrderRecord is a stored work order. The row carries the full work
// order document as an opaque serialized blob in Data; only the external
// writer mutates it.
type WorkOrderRecord struct {
	ID   string `gorm:"column:id;primaryKey" json:"id"`
	Data string `gorm:"column:data;not null" json:"data"`
}

func (WorkOrderRecord) TableName() string {
	return "work_order"
}

// WorkOrderNotification is the inbound change notification. Producers may
// attach extra fields; only the work order id is read.
type WorkOrderNotification struct {
	WorkOrderID string `json:"workorderId"`
}

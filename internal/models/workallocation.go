package models

// WorkAllocationRecord is a stored per-user work allocation, keyed by the
// user id in this flow. Like WorkOrderRecord, the document itself lives in
// the opaque Data blob.
type WorkAllocationRecord struct {
	ID   string `gorm:"column:id;primaryKey" json:"id"`
	Data string `gorm:"column:data;not null" json:"data"`
}

func (WorkAllocationRecord) TableName() string {
	return "work_allocation"
}

// WorkAllocation is the deserialized allocation value object. The name and
// email fields are subject to redaction before any external emission.
type WorkAllocation struct {
	ID                 string `json:"id"`
	UserID             string `json:"userId"`
	UserName           string `json:"userName,omitempty"`
	UserEmail          string `json:"userEmail,omitempty"`
	UserPosition       string `json:"userPosition,omitempty"`
	PositionID         string `json:"positionId,omitempty"`
	SubmittedFromID    string `json:"submittedFromId,omitempty"`
	SubmittedFromName  string `json:"submittedFromName,omitempty"`
	SubmittedFromEmail string `json:"submittedFromEmail,omitempty"`
	SubmittedToID      string `json:"submittedToId,omitempty"`
	SubmittedToName    string `json:"submittedToName,omitempty"`
	SubmittedToEmail   string `json:"submittedToEmail,omitempty"`
	CreatedBy          string `json:"createdBy,omitempty"`
	CreatedByName      string `json:"createdByName,omitempty"`
	UpdatedBy          string `json:"updatedBy,omitempty"`
	UpdatedByName      string `json:"updatedByName,omitempty"`
	Status             string `json:"status,omitempty"`
}

package models

// OpsStatus is the lifecycle status lookup for ops files.
type OpsStatus struct {
	StatusID   int    `gorm:"column:status_id;primaryKey"`
	StatusName string `gorm:"column:status_name;not null;uniqueIndex"`
}

func (OpsStatus) TableName() string { return "ops.op_status" }

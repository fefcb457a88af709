package models

import "time"

// Status is the canonical catalog of workflow states. Rows must exist for
// every allowed status name before transitions are exercised; startup runs
// services.EnsureStatusCatalog to guarantee that.
type Status struct {
	StatusID   int        `gorm:"primaryKey;column:status_id" json:"status_id"`
	StatusName string     `gorm:"column:status_name;unique" json:"status_name"`
	CreateAt   *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt   *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt   *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

// TableName overrides the table for Status.
func (Status) TableName() string {
	return "statuses"
}

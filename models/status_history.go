package models

import "time"

// ApplicationStatusHistory is the append-only log of status changes for an
// application. The current status of an application is always derived from
// the latest entry here; it is never stored on the application row itself.
type ApplicationStatusHistory struct {
	HistoryID     int       `gorm:"primaryKey;column:history_id" json:"history_id"`
	ApplicationID int       `gorm:"column:application_id;index" json:"application_id"`
	StatusID      int       `gorm:"column:status_id" json:"status_id"`
	SessionID     int       `gorm:"column:session_id" json:"session_id"`
	Remark        *string   `gorm:"column:remark" json:"remark,omitempty"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`

	// Relations
	Status  Status  `gorm:"foreignKey:StatusID" json:"status,omitempty"`
	Session Session `gorm:"foreignKey:SessionID" json:"session,omitempty"`
}

// TableName specifies the table for ApplicationStatusHistory.
func (ApplicationStatusHistory) TableName() string {
	return "application_status_history"
}

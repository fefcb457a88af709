package models

import "time"

// Complaint is the citizen-complaint aggregate. It shares the
// derive-current-status-from-latest-history pattern with Application.
type Complaint struct {
	ComplaintID      int        `gorm:"primaryKey;column:complaint_id" json:"complaint_id"`
	ReferenceCode    string     `gorm:"column:reference_code" json:"reference_code"`
	Subject          string     `gorm:"column:subject" json:"subject"`
	Description      string     `gorm:"column:description" json:"description"`
	ComplainantName  string     `gorm:"column:complainant_name" json:"complainant_name"`
	ComplainantEmail string     `gorm:"column:complainant_email" json:"complainant_email"`
	OrgID            *int       `gorm:"column:org_id" json:"org_id,omitempty"`
	SessionID        *int       `gorm:"column:session_id" json:"session_id,omitempty"`
	CreateAt         *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt         *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt         *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Organization  *Organization            `gorm:"foreignKey:OrgID" json:"organization,omitempty"`
	Assignments   []ComplaintAssignment    `gorm:"foreignKey:ComplaintID" json:"assignments,omitempty"`
	StatusHistory []ComplaintStatusHistory `gorm:"foreignKey:ComplaintID" json:"status_history,omitempty"`
	Logs          []ComplaintLog           `gorm:"foreignKey:ComplaintID" json:"logs,omitempty"`
}

// ComplaintStatusHistory mirrors the application history pivot: status
// reference, acting session, remark, timestamp. Append-only.
type ComplaintStatusHistory struct {
	HistoryID   int       `gorm:"primaryKey;column:history_id" json:"history_id"`
	ComplaintID int       `gorm:"column:complaint_id;index" json:"complaint_id"`
	StatusID    int       `gorm:"column:status_id" json:"status_id"`
	SessionID   int       `gorm:"column:session_id" json:"session_id"`
	Remark      *string   `gorm:"column:remark" json:"remark,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`

	Status Status `gorm:"foreignKey:StatusID" json:"status,omitempty"`
}

// ComplaintAssignment routes a complaint to a division or a user, never
// both.
type ComplaintAssignment struct {
	AssignmentID int        `gorm:"primaryKey;column:assignment_id" json:"assignment_id"`
	ComplaintID  int        `gorm:"column:complaint_id;index" json:"complaint_id"`
	DivisionID   *int       `gorm:"column:division_id" json:"division_id,omitempty"`
	AssigneeID   *int       `gorm:"column:assignee_id" json:"assignee_id,omitempty"`
	DueDate      *time.Time `gorm:"column:due_date" json:"due_date,omitempty"`
	Remark       *string    `gorm:"column:remark" json:"remark,omitempty"`
	AssignedBy   int        `gorm:"column:assigned_by" json:"assigned_by"`
	CreatedAt    time.Time  `gorm:"column:created_at" json:"created_at"`

	Division *Division `gorm:"foreignKey:DivisionID" json:"division,omitempty"`
	Assignee *User     `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
}

// ComplaintLog is the append-only action log for a complaint.
type ComplaintLog struct {
	LogID       int       `gorm:"primaryKey;column:log_id" json:"log_id"`
	ComplaintID int       `gorm:"column:complaint_id;index" json:"complaint_id"`
	Action      string    `gorm:"column:action" json:"action"`
	Detail      *string   `gorm:"column:detail" json:"detail,omitempty"`
	ActorID     int       `gorm:"column:actor_id" json:"actor_id"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName overrides
func (Complaint) TableName() string {
	return "complaints"
}

func (ComplaintStatusHistory) TableName() string {
	return "complaint_status_history"
}

func (ComplaintAssignment) TableName() string {
	return "complaint_assignments"
}

func (ComplaintLog) TableName() string {
	return "complaint_logs"
}

package models

import "time"

// ApplicationFile is an attached document. The original name and extension
// are stored separately; StoredName is the opaque on-disk name.
type ApplicationFile struct {
	FileID        int        `gorm:"primaryKey;column:file_id" json:"file_id"`
	ApplicationID int        `gorm:"column:application_id;index" json:"application_id"`
	FileName      string     `gorm:"column:file_name" json:"file_name"`
	Extension     string     `gorm:"column:extension" json:"extension"`
	StoredName    string     `gorm:"column:stored_name" json:"stored_name"`
	UploadedBy    *int       `gorm:"column:uploaded_by" json:"uploaded_by,omitempty"`
	CreateAt      *time.Time `gorm:"column:create_at" json:"create_at"`
	DeleteAt      *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

// TableName specifies the table for ApplicationFile.
func (ApplicationFile) TableName() string {
	return "application_files"
}

package models

import "time"

// TravelHistory records one past trip attached to an application. A record
// is either fully populated or absent; partial records are rejected at
// validation time. Exactly one record per application carries IsAutoSaved,
// derived from the application's own departure/arrival dates and kept in
// sync when those dates change.
type TravelHistory struct {
	TravelHistoryID int        `gorm:"primaryKey;column:travel_history_id" json:"travel_history_id"`
	ApplicationID   int        `gorm:"column:application_id;index" json:"application_id"`
	Year            string     `gorm:"column:year" json:"year"`
	Purpose         string     `gorm:"column:purpose" json:"purpose"`
	StartDate       *time.Time `gorm:"column:start_date" json:"start_date"`
	EndDate         *time.Time `gorm:"column:end_date" json:"end_date"`
	Country         string     `gorm:"column:country" json:"country"`
	IsAutoSaved     bool       `gorm:"column:is_auto_saved" json:"is_auto_saved"`
}

// TableName specifies the table for TravelHistory.
func (TravelHistory) TableName() string {
	return "travelling_histories"
}

package models

import "time"

// Application types discriminate the two travel workflows.
const (
	ApplicationTypeOfficer          = 1
	ApplicationTypeParliamentMember = 2
)

// Application represents a request to travel abroad. The requester is
// either an employee or a parliament member depending on ApplicationType.
type Application struct {
	ApplicationID      int        `gorm:"primaryKey;column:application_id" json:"application_id"`
	ApplicationType    int        `gorm:"column:application_type" json:"application_type"`
	ReferenceCode      string     `gorm:"column:reference_code" json:"reference_code"`
	EmployeeID         *int       `gorm:"column:employee_id" json:"employee_id,omitempty"`
	ParliamentMemberID *int       `gorm:"column:parliament_member_id" json:"parliament_member_id,omitempty"`
	OrgID              *int       `gorm:"column:org_id" json:"org_id,omitempty"`
	DepartureDate      *time.Time `gorm:"column:departure_date" json:"departure_date"`
	ArrivalDate        *time.Time `gorm:"column:arrival_date" json:"arrival_date"`
	CommencementDate   *time.Time `gorm:"column:commencement_date" json:"commencement_date,omitempty"`
	CompletionDate     *time.Time `gorm:"column:completion_date" json:"completion_date,omitempty"`
	Purpose            string     `gorm:"column:purpose" json:"purpose"`
	CountriesVisited   string     `gorm:"column:countries_visited" json:"countries_visited"`
	CoverupDuty        string     `gorm:"column:coverup_duty" json:"coverup_duty"`
	SessionID          *int       `gorm:"column:session_id" json:"session_id,omitempty"`
	CreateAt           *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt           *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt           *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Organization    *Organization              `gorm:"foreignKey:OrgID" json:"organization,omitempty"`
	Session         *Session                   `gorm:"foreignKey:SessionID" json:"session,omitempty"`
	Expenses        []ApplicationExpense       `gorm:"foreignKey:ApplicationID" json:"expenses,omitempty"`
	Funds           []ApplicationFund          `gorm:"foreignKey:ApplicationID" json:"funds,omitempty"`
	TravelHistories []TravelHistory            `gorm:"foreignKey:ApplicationID" json:"travelling_histories,omitempty"`
	Files           []ApplicationFile          `gorm:"foreignKey:ApplicationID" json:"files,omitempty"`
	StatusHistory   []ApplicationStatusHistory `gorm:"foreignKey:ApplicationID" json:"status_history,omitempty"`
}

// TableName overrides the table for Application.
func (Application) TableName() string {
	return "applications"
}

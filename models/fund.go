package models

import "time"

// FundType is reference data for fund allocations.
type FundType struct {
	FundTypeID   int        `gorm:"primaryKey;column:fund_type_id" json:"fund_type_id"`
	FundTypeName string     `gorm:"column:fund_type_name" json:"fund_type_name"`
	CreateAt     *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt     *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt     *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

// ApplicationFund is a fund allocation line on an application. A selected
// row must carry an amount greater than zero.
type ApplicationFund struct {
	ApplicationFundID int      `gorm:"primaryKey;column:application_fund_id" json:"application_fund_id"`
	ApplicationID     int      `gorm:"column:application_id;index" json:"application_id"`
	FundTypeID        int      `gorm:"column:fund_type_id" json:"fund_type_id"`
	IsSelected        bool     `gorm:"column:is_selected" json:"is_selected"`
	Amount            *float64 `gorm:"column:amount" json:"amount,omitempty"`

	FundType FundType `gorm:"foreignKey:FundTypeID" json:"fund_type,omitempty"`
}

// TableName overrides
func (FundType) TableName() string {
	return "fund_types"
}

func (ApplicationFund) TableName() string {
	return "application_funds"
}

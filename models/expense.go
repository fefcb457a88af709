package models

import "time"

// ExpenseType is reference data for the expense checklist.
type ExpenseType struct {
	ExpenseTypeID   int        `gorm:"primaryKey;column:expense_type_id" json:"expense_type_id"`
	ExpenseTypeName string     `gorm:"column:expense_type_name" json:"expense_type_name"`
	CreateAt        *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt        *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt        *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

// ApplicationExpense is one row of an application's expense checklist.
// Created and destroyed with the application, never addressed on its own.
type ApplicationExpense struct {
	ApplicationExpenseID int  `gorm:"primaryKey;column:application_expense_id" json:"application_expense_id"`
	ApplicationID        int  `gorm:"column:application_id;index" json:"application_id"`
	ExpenseTypeID        int  `gorm:"column:expense_type_id" json:"expense_type_id"`
	IsChecked            bool `gorm:"column:is_checked" json:"is_checked"`

	ExpenseType ExpenseType `gorm:"foreignKey:ExpenseTypeID" json:"expense_type,omitempty"`
}

// TableName overrides
func (ExpenseType) TableName() string {
	return "expense_types"
}

func (ApplicationExpense) TableName() string {
	return "application_expenses"
}

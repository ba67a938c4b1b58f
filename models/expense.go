package models

import (
	"time"

	"gorm.io/gorm"
)

// Expense is a single expense record. Category is free-form text chosen by the
// user; Date is the user-supplied calendar date, distinct from the insertion
// timestamp, and listing orders by it.
type Expense struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	UserID      string         `json:"user_id" gorm:"size:64;index;not null"`
	Description string         `json:"description" gorm:"size:255;not null"`
	Amount      float64        `json:"amount" gorm:"type:decimal(10,2);not null"`
	Category    string         `json:"category" gorm:"size:50;not null"`
	Date        time.Time      `json:"date" gorm:"type:date;not null"`
	CreatedAt   time.Time      `json:"created_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName sets the table name.
func (Expense) TableName() string {
	return "expenses"
}

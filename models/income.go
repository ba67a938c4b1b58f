package models

import (
	"time"

	"gorm.io/gorm"
)

// Income is a single income record. The owning user id is the opaque string
// handed out by the identity provider; rows are created and deleted, never
// updated.
type Income struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	UserID      string         `json:"user_id" gorm:"size:64;index;not null"`
	Description string         `json:"description" gorm:"size:255;not null"`
	Amount      float64        `json:"amount" gorm:"type:decimal(10,2);not null"`
	CreatedAt   time.Time      `json:"created_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Income) TableName() string {
	return "incomes"
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// User is a credential record for the built-in local identity provider. When
// a hosted provider is configured this table stays empty; user ids then come
// from the provider and are never resolved locally.
type User struct {
	ID           string         `json:"id" gorm:"primaryKey;size:64"`
	Email        string         `json:"email" gorm:"uniqueIndex;size:100;not null"`
	Username     string         `json:"username" gorm:"size:50;not null"`
	PasswordHash string         `json:"-" gorm:"size:255;not null"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName sets the table name.
func (User) TableName() string {
	return "users"
}

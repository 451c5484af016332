package models

import (
	"time"
)

// UserModel represents the database persistence model for accounts.
type UserModel struct {
	ID                 string `gorm:"primaryKey;size:36"`
	Email              string `gorm:"uniqueIndex;not null;size:255"`
	Name               string `gorm:"not null;size:100"`
	PasswordHash       string `gorm:"not null;size:255"`
	Role               string `gorm:"not null;default:user;size:20;index"`
	Active             bool   `gorm:"not null"`
	LoginAttempts      int    `gorm:"not null;default:0"`
	LockUntil          *time.Time
	LastLogin          *time.Time
	ResetCodeHash      string `gorm:"size:128"`
	ResetCodeExpiresAt *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (UserModel) TableName() string {
	return "users"
}

package models

import (
	"time"

	"gorm.io/datatypes"
)

type GovernmentServiceModel struct {
	ID             string  `gorm:"primaryKey;size:36"`
	Code           string  `gorm:"uniqueIndex;size:64;not null"`
	Name           string  `gorm:"size:255;not null"`
	Description    string  `gorm:"type:text"`
	Category       string  `gorm:"size:64;index"`
	Fee            float64 `gorm:"not null;default:0"`
	ProcessingDays int     `gorm:"not null"`
	Requirements   datatypes.JSONSlice[string]
	Active         bool `gorm:"not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (GovernmentServiceModel) TableName() string {
	return "government_services"
}

type GovernmentRequestModel struct {
	ID          string `gorm:"primaryKey;size:36"`
	Reference   string `gorm:"uniqueIndex;size:32;not null"`
	ServiceCode string `gorm:"size:64;not null;index"`
	ServiceName string `gorm:"size:255"`
	FullName    string `gorm:"size:120;not null"`
	Email       string `gorm:"size:255;not null;index"`
	Phone       string `gorm:"size:40"`
	IDNumber    string `gorm:"size:40"`
	Details     string `gorm:"type:text"`
	Status      string `gorm:"size:20;not null;index"`
	AdminNotes  string `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (GovernmentRequestModel) TableName() string {
	return "government_requests"
}

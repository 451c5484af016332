package models

import "time"

type ConsultationModel struct {
	ID              string    `gorm:"primaryKey;size:36"`
	Name            string    `gorm:"size:120;not null"`
	Email           string    `gorm:"size:255;not null;index"`
	Phone           string    `gorm:"size:40"`
	ServiceType     string    `gorm:"size:120;not null"`
	Mode            string    `gorm:"size:20;not null"`
	ScheduledAt     time.Time `gorm:"not null;index"`
	DurationMinutes int       `gorm:"not null;default:60"`
	Message         string    `gorm:"type:text"`
	Status          string    `gorm:"size:20;not null;index"`
	AdminNotes      string    `gorm:"type:text"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (ConsultationModel) TableName() string {
	return "consultations"
}

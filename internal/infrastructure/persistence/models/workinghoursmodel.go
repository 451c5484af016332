package models

import "time"

type WorkingDayModel struct {
	Weekday   int    `gorm:"primaryKey;autoIncrement:false"`
	OpenTime  string `gorm:"size:5"`
	CloseTime string `gorm:"size:5"`
	Closed    bool   `gorm:"not null;default:false"`
	UpdatedAt time.Time
}

func (WorkingDayModel) TableName() string {
	return "working_days"
}

type HolidayModel struct {
	Date      string `gorm:"primaryKey;size:10"`
	Name      string `gorm:"size:120;not null"`
	CreatedAt time.Time
}

func (HolidayModel) TableName() string {
	return "holidays"
}

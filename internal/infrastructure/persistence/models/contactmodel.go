package models

import "time"

type ContactMessageModel struct {
	ID        string    `gorm:"primaryKey;size:36"`
	Name      string    `gorm:"size:120;not null"`
	Email     string    `gorm:"size:255;not null;index"`
	Phone     string    `gorm:"size:40"`
	Subject   string    `gorm:"size:255"`
	Service   string    `gorm:"size:120"`
	Body      string    `gorm:"type:text;not null"`
	Status    string    `gorm:"size:20;not null;index"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

func (ContactMessageModel) TableName() string {
	return "contact_messages"
}

package models

import "time"

type SubscriberModel struct {
	ID             string `gorm:"primaryKey;size:36"`
	Email          string `gorm:"uniqueIndex;size:255;not null"`
	Name           string `gorm:"size:120"`
	Token          string `gorm:"uniqueIndex;size:64;not null"`
	Active         bool   `gorm:"not null;index"`
	SubscribedAt   time.Time
	UnsubscribedAt *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (SubscriberModel) TableName() string {
	return "newsletter_subscribers"
}

package models

import (
	"time"

	"gorm.io/datatypes"
)

// TicketModel is the SQL row for a support ticket.
type TicketModel struct {
	ID               string `gorm:"primaryKey;size:36"`
	TicketNumber     string `gorm:"uniqueIndex;size:32;not null"`
	Subject          string `gorm:"size:255;not null"`
	Description      string `gorm:"type:text;not null"`
	Category         string `gorm:"size:64;not null;index"`
	Priority         string `gorm:"size:20;not null;index"`
	Status           string `gorm:"size:20;not null;index"`
	CustomerName     string `gorm:"size:120"`
	Phone            string `gorm:"size:40"`
	Email            string `gorm:"size:255;index"`
	UserID           string `gorm:"size:36;index"`
	AssignedTo       string `gorm:"size:36;index"`
	Escalated        bool   `gorm:"not null;default:false"`
	EscalationReason string `gorm:"type:text"`
	EscalatedBy      string `gorm:"size:36"`
	EscalatedAt      *time.Time
	AssignedAt       *time.Time
	InProgressAt     *time.Time
	ResolvedAt       *time.Time
	ClosedAt         *time.Time
	LastResponseAt   *time.Time
	AdminNotes       string `gorm:"type:text"`
	Metadata         datatypes.JSONMap
	CreatedAt        time.Time `gorm:"not null;index"`
	UpdatedAt        time.Time `gorm:"not null"`
}

func (TicketModel) TableName() string {
	return "support_tickets"
}

// TicketResponseModel is a message in a ticket thread.
// Rows are deleted by the repository together with their ticket.
type TicketResponseModel struct {
	ID              string `gorm:"primaryKey;size:36"`
	TicketID        string `gorm:"size:36;not null;index"`
	Message         string `gorm:"type:text;not null"`
	IsAdminResponse bool   `gorm:"not null;default:false"`
	AuthorID        string `gorm:"size:36"`
	Attachments     datatypes.JSONSlice[AttachmentJSON]
	CreatedAt       time.Time `gorm:"not null;index"`
}

func (TicketResponseModel) TableName() string {
	return "ticket_responses"
}

type AttachmentJSON struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	MimeType string `json:"mimeType,omitempty"`
	Size     int64  `json:"size,omitempty"`
}

// CounterModel backs the atomic per-bucket sequence used for ticket and
// request numbers.
type CounterModel struct {
	CounterKey string `gorm:"primaryKey;size:64"`
	Sequence   int64  `gorm:"not null;default:0"`
	UpdatedAt  time.Time
}

func (CounterModel) TableName() string {
	return "counters"
}

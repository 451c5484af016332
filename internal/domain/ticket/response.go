package ticket

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"remotcyberhelp/internal/shared/errors"
	"remotcyberhelp/internal/shared/id"
)

const maxResponseLength = 10000

// Attachment describes a file referenced by a response.
type Attachment struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	MimeType string `json:"mimeType,omitempty"`
	Size     int64  `json:"size,omitempty"`
}

// Response is a message in a ticket thread. It is owned by its ticket and
// removed together with it.
type Response struct {
	id              string
	ticketID        string
	message         string
	isAdminResponse bool
	authorID        string
	attachments     []Attachment
	createdAt       time.Time
}

func NewResponse(ticketID, message string, isAdmin bool, authorID string, attachments []Attachment, now time.Time) (*Response, error) {
	if ticketID == "" {
		return nil, fmt.Errorf("ticket ID is required")
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, errors.NewValidationError("message is required")
	}
	if utf8.RuneCountInString(message) > maxResponseLength {
		return nil, errors.NewValidationError(fmt.Sprintf("message exceeds maximum length of %d characters", maxResponseLength))
	}
	for _, a := range attachments {
		if a.Name == "" || a.URL == "" {
			return nil, errors.NewValidationError("attachments require name and url")
		}
	}
	if attachments == nil {
		attachments = []Attachment{}
	}
	return &Response{
		id:              id.New(),
		ticketID:        ticketID,
		message:         message,
		isAdminResponse: isAdmin,
		authorID:        authorID,
		attachments:     attachments,
		createdAt:       now.UTC(),
	}, nil
}

func ReconstructResponse(id, ticketID, message string, isAdmin bool, authorID string, attachments []Attachment, createdAt time.Time) *Response {
	if attachments == nil {
		attachments = []Attachment{}
	}
	return &Response{
		id:              id,
		ticketID:        ticketID,
		message:         message,
		isAdminResponse: isAdmin,
		authorID:        authorID,
		attachments:     attachments,
		createdAt:       createdAt,
	}
}

func (r *Response) ID() string { return r.id }
func (r *Response) TicketID() string { return r.ticketID }
func (r *Response) Message() string { return r.message }
func (r *Response) IsAdminResponse() bool { return r.isAdminResponse }
func (r *Response) CreatedAt() time.Time { return r.createdAt }

// AuthorID is the admin id for admin responses and the account id otherwise.
func (r *Response) AuthorID() string { return r.authorID }

func (r *Response) Attachments() []Attachment {
	out := make([]Attachment, len(r.attachments))
	copy(out, r.attachments)
	return out
}

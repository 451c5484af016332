package valueobjects

import (
	"fmt"
	"net/mail"
	"strings"
)

const maxEmailLength = 254

// Email is a trimmed, lower-cased bare address. Display names ("Jo <jo@x.io>")
// are rejected so the stored value is always what the user typed.
type Email struct {
	value string
}

func NewEmail(value string) (*Email, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "" {
		return nil, fmt.Errorf("email cannot be empty")
	}
	if len(normalized) > maxEmailLength {
		return nil, fmt.Errorf("email cannot exceed %d characters", maxEmailLength)
	}

	addr, err := mail.ParseAddress(normalized)
	if err != nil || addr.Address != normalized {
		return nil, fmt.Errorf("invalid email format: %s", value)
	}
	domain := normalized[strings.LastIndexByte(normalized, '@')+1:]
	dot := strings.LastIndexByte(domain, '.')
	if dot <= 0 || len(domain)-dot-1 < 2 {
		return nil, fmt.Errorf("invalid email format: %s", value)
	}
	return &Email{value: normalized}, nil
}

func (e *Email) String() string {
	return e.value
}

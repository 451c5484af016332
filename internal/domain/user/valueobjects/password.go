package valueobjects

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

const (
	minPasswordLength = 8
	maxPasswordLength = 72 // bcrypt input limit
)

// Password is a plain-text password that satisfied the policy. It is never stored.
type Password struct {
	value string
}

func NewPassword(plain string) (*Password, error) {
	if utf8.RuneCountInString(plain) < minPasswordLength {
		return nil, fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}
	if len(plain) > maxPasswordLength {
		return nil, fmt.Errorf("password must be at most %d characters long", maxPasswordLength)
	}

	var hasLetter, hasDigit bool
	for _, r := range plain {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return nil, fmt.Errorf("password must contain at least one letter and one digit")
	}
	return &Password{value: plain}, nil
}

func (p *Password) String() string {
	return p.value
}

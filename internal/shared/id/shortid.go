// Package id generates identifiers: UUIDs for entities and short random
// tokens for links that end up in emails.
package id

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

// Base62 alphabet: 0-9, A-Z, a-z
const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// DefaultTokenLength is the length of unsubscribe and similar tokens.
const DefaultTokenLength = 32

// New returns a random UUID string.
func New() string {
	return uuid.NewString()
}

// IsValid reports whether s parses as a UUID.
func IsValid(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// Token creates a random URL-safe base62 string of the given length.
func Token(length int) (string, error) {
	if length <= 0 {
		length = DefaultTokenLength
	}

	result := make([]byte, length)
	alphabetLen := big.NewInt(int64(len(alphabet)))
	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		result[i] = alphabet[num.Int64()]
	}
	return string(result), nil
}

// NumericCode returns a random decimal code of n digits, zero-padded.
func NumericCode(n int) (string, error) {
	max := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
	num, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}
	return fmt.Sprintf("%0*d", n, num.Int64()), nil
}

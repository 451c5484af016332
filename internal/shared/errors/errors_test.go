package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructorsCarryStatusCodes(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		code int
		typ  ErrorType
	}{
		{"validation", NewValidationError("bad"), http.StatusBadRequest, ErrorTypeValidation},
		{"unauthorized", NewUnauthorizedError("no"), http.StatusUnauthorized, ErrorTypeUnauthorized},
		{"locked", NewAccountLockedError("locked"), http.StatusUnauthorized, ErrorTypeAccountLocked},
		{"forbidden", NewForbiddenError("no"), http.StatusForbidden, ErrorTypeForbidden},
		{"not found", NewNotFoundError("gone"), http.StatusNotFound, ErrorTypeNotFound},
		{"conflict", NewConflictError("dup"), http.StatusConflict, ErrorTypeConflict},
		{"rate limited", NewRateLimitedError("slow"), http.StatusTooManyRequests, ErrorTypeRateLimited},
		{"allocation", NewAllocationError("exhausted"), http.StatusInternalServerError, ErrorTypeAllocationFailed},
		{"unavailable", NewServiceUnavailableError("down"), http.StatusServiceUnavailable, ErrorTypeUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.typ, tt.err.Type)
		})
	}
}

func TestGetAppErrorUnwraps(t *testing.T) {
	wrapped := fmt.Errorf("create ticket: %w", NewAllocationError("exhausted"))

	assert.True(t, IsAppError(wrapped))
	assert.True(t, IsAllocationError(wrapped))
	assert.False(t, IsNotFoundError(wrapped))
	assert.Nil(t, GetAppError(fmt.Errorf("plain")))
}

func TestIsDuplicateError(t *testing.T) {
	assert.True(t, IsDuplicateError(fmt.Errorf("Error 1062: Duplicate entry 'RCH25010001' for key 'ticket_number'")))
	assert.True(t, IsDuplicateError(fmt.Errorf("ERROR: duplicate key value violates unique constraint \"idx_ticket_number\"")))
	assert.True(t, IsDuplicateError(fmt.Errorf("UNIQUE constraint failed: support_tickets.ticket_number")))
	assert.True(t, IsDuplicateError(fmt.Errorf("write exception: E11000 duplicate key error collection")))
	assert.False(t, IsDuplicateError(fmt.Errorf("connection refused")))
	assert.False(t, IsDuplicateError(nil))
}

func TestWithFields(t *testing.T) {
	err := NewValidationError("Validation failed").WithFields(FieldError{Field: "phone", Message: "phone is required"})

	assert.Len(t, err.Fields, 1)
	assert.Equal(t, "phone", err.Fields[0].Field)
}

package contact

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage(t *testing.T) {
	m, err := NewMessage(" Jane ", "Jane@Example.com", "", "", "web design", "Need a website", time.Now())
	require.NoError(t, err)

	assert.Equal(t, "Jane", m.Name())
	assert.Equal(t, "jane@example.com", m.Email())
	assert.Equal(t, "New enquiry from Jane", m.Subject())
	assert.Equal(t, StatusNew, m.Status())

	_, err = NewMessage("Jane", "jane@example.com", "", "", "", "  ", time.Now())
	assert.Error(t, err)
}

func TestMarkStatus(t *testing.T) {
	m, err := NewMessage("Jane", "jane@example.com", "", "Hi", "", "Hello", time.Now())
	require.NoError(t, err)

	assert.NoError(t, m.MarkStatus(StatusReplied, time.Now()))
	assert.Equal(t, StatusReplied, m.Status())
	assert.Error(t, m.MarkStatus("spam", time.Now()))
}

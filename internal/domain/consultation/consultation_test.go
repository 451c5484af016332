package consultation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remotcyberhelp/internal/shared/errors"
)

var now = time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC)

func TestNewConsultation(t *testing.T) {
	c, err := NewConsultation(NewParams{
		Name:        "Jane",
		Email:       "jane@example.com",
		ServiceType: "network setup",
		ScheduledAt: now.Add(24 * time.Hour),
	}, now)
	require.NoError(t, err)

	assert.Equal(t, StatusPending, c.Status())
	assert.Equal(t, ModeRemote, c.Mode())
	assert.Equal(t, now.Add(25*time.Hour), c.EndsAt())
}

func TestNewConsultationRejectsPast(t *testing.T) {
	_, err := NewConsultation(NewParams{Name: "Jane", ServiceType: "x", ScheduledAt: now.Add(-time.Hour)}, now)
	assert.True(t, errors.IsValidationError(err))
}

func TestOverlaps(t *testing.T) {
	c, err := NewConsultation(NewParams{Name: "Jane", ServiceType: "x", ScheduledAt: now.Add(3 * time.Hour)}, now)
	require.NoError(t, err)

	assert.True(t, c.Overlaps(now.Add(3*time.Hour+30*time.Minute), now.Add(4*time.Hour+30*time.Minute)))
	assert.False(t, c.Overlaps(now.Add(4*time.Hour), now.Add(5*time.Hour)))
	assert.False(t, c.Overlaps(now.Add(2*time.Hour), now.Add(3*time.Hour)))
}

func TestUpdateStatus(t *testing.T) {
	c, err := NewConsultation(NewParams{Name: "Jane", ServiceType: "x", ScheduledAt: now.Add(time.Hour)}, now)
	require.NoError(t, err)

	require.NoError(t, c.UpdateStatus(StatusConfirmed, "Bring laptop", now))
	assert.Equal(t, StatusConfirmed, c.Status())
	assert.Equal(t, "Bring laptop", c.State().AdminNotes)
	assert.Error(t, c.UpdateStatus("maybe", "", now))
}

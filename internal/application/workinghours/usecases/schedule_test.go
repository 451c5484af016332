package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remotcyberhelp/internal/domain/workinghours"
	apperrors "remotcyberhelp/internal/shared/errors"
	"remotcyberhelp/internal/shared/logger"
)

type memoryHours struct {
	days     []workinghours.DayHours
	holidays []workinghours.Holiday
}

func (m *memoryHours) Get(context.Context) (*workinghours.Schedule, error) {
	if m.days == nil {
		return nil, apperrors.NewNotFoundError("working hours not configured")
	}
	return &workinghours.Schedule{Days: m.days, Holidays: m.holidays}, nil
}

func (m *memoryHours) SaveDays(_ context.Context, days []workinghours.DayHours) error {
	m.days = days
	return nil
}

func (m *memoryHours) AddHoliday(_ context.Context, h workinghours.Holiday) error {
	if m.days == nil {
		m.days = workinghours.DefaultSchedule().Days
	}
	m.holidays = append(m.holidays, h)
	return nil
}

func (m *memoryHours) DeleteHoliday(_ context.Context, date string) error {
	for i, h := range m.holidays {
		if h.Date == date {
			m.holidays = append(m.holidays[:i], m.holidays[i+1:]...)
			return nil
		}
	}
	return apperrors.NewNotFoundError("holiday not found")
}

func TestGetScheduleDefaults(t *testing.T) {
	got, err := NewGetScheduleUseCase(&memoryHours{}).Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Africa/Nairobi", got.Timezone)
	require.Len(t, got.Days, 7)
	assert.Equal(t, "sunday", got.Days[0].Day)
	assert.True(t, got.Days[0].Closed)
	assert.Equal(t, "08:00", got.Days[1].Open)
	assert.NotNil(t, got.Holidays)
}

func TestStatus(t *testing.T) {
	tests := []struct {
		name     string
		now      time.Time
		holidays []workinghours.Holiday
		open     bool
		nextOpen string
	}{
		// Nairobi is UTC+3.
		{name: "monday morning", now: time.Date(2025, 6, 2, 7, 0, 0, 0, time.UTC), open: true},
		{name: "monday night", now: time.Date(2025, 6, 2, 16, 0, 0, 0, time.UTC), nextOpen: "2025-06-03T08:00:00+03:00"},
		{name: "sunday", now: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC), nextOpen: "2025-06-02T08:00:00+03:00"},
		{
			name:     "holiday",
			now:      time.Date(2025, 6, 2, 7, 0, 0, 0, time.UTC),
			holidays: []workinghours.Holiday{{Date: "2025-06-02", Name: "Madaraka Day"}},
			nextOpen: "2025-06-03T08:00:00+03:00",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &memoryHours{days: workinghours.DefaultSchedule().Days, holidays: tt.holidays}
			uc := NewGetScheduleUseCase(repo)
			uc.now = func() time.Time { return tt.now }

			got, err := uc.Status(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.open, got.IsOpen)
			if tt.nextOpen == "" {
				assert.Nil(t, got.NextOpenAt)
			} else {
				require.NotNil(t, got.NextOpenAt)
				assert.Equal(t, tt.nextOpen, got.NextOpenAt.Format(time.RFC3339))
			}
			if tt.holidays != nil {
				require.NotNil(t, got.Holiday)
				assert.True(t, got.Today.Closed)
			}
		})
	}
}

func TestUpdateSchedule(t *testing.T) {
	repo := &memoryHours{}
	uc := NewUpdateScheduleUseCase(repo, logger.NewNopLogger())

	got, err := uc.Execute(context.Background(), []DayInput{
		{Day: "Monday", Open: "09:00", Close: "17:00"},
		{Day: "sat", Open: "10:00", Close: "12:00"},
	})
	require.NoError(t, err)
	require.Len(t, got.Days, 7)
	assert.Equal(t, "09:00", got.Days[1].Open)
	assert.True(t, got.Days[2].Closed)
	assert.Equal(t, "10:00", got.Days[6].Open)

	_, err = uc.Execute(context.Background(), []DayInput{{Day: "funday", Open: "09:00", Close: "10:00"}})
	assert.True(t, apperrors.IsValidationError(err))

	_, err = uc.Execute(context.Background(), []DayInput{{Day: "monday", Open: "18:00", Close: "09:00"}})
	assert.True(t, apperrors.IsValidationError(err))
}

func TestManageHolidays(t *testing.T) {
	repo := &memoryHours{}
	uc := NewManageHolidaysUseCase(repo, logger.NewNopLogger())

	h, err := uc.Add(context.Background(), "2025-12-25", " Christmas ")
	require.NoError(t, err)
	assert.Equal(t, "Christmas", h.Name)
	assert.Len(t, repo.holidays, 1)

	_, err = uc.Add(context.Background(), "25/12/2025", "Christmas")
	assert.True(t, apperrors.IsValidationError(err))

	require.NoError(t, uc.Delete(context.Background(), "2025-12-25"))
	assert.True(t, apperrors.IsNotFoundError(uc.Delete(context.Background(), "2025-12-25")))
}

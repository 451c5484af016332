package workinghours

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var nairobi = func() *time.Location {
	loc, err := time.LoadLocation("Africa/Nairobi")
	if err != nil {
		return time.FixedZone("EAT", 3*3600)
	}
	return loc
}()

func at(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, nairobi)
}

func TestIsOpenAt(t *testing.T) {
	s := DefaultSchedule()

	tests := []struct {
		name string
		when time.Time
		want bool
	}{
		{"weekday morning", at(2025, 1, 15, 9, 30), true}, // Wednesday
		{"weekday at opening", at(2025, 1, 15, 8, 0), true},
		{"weekday at closing", at(2025, 1, 15, 18, 0), false},
		{"weekday night", at(2025, 1, 15, 22, 0), false},
		{"saturday morning", at(2025, 1, 18, 10, 0), true},
		{"saturday afternoon", at(2025, 1, 18, 14, 0), false},
		{"sunday", at(2025, 1, 19, 10, 0), false},
		{"utc instant in hours", time.Date(2025, 1, 15, 6, 0, 0, 0, time.UTC), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.IsOpenAt(tt.when, nairobi))
		})
	}
}

func TestHolidayClosesTheDay(t *testing.T) {
	s := DefaultSchedule()
	h, err := NewHoliday("2025-06-02", "Madaraka Day (observed)")
	require.NoError(t, err)
	s.Holidays = append(s.Holidays, h)

	assert.False(t, s.IsOpenAt(at(2025, 6, 2, 10, 0), nairobi))
	got, ok := s.HolidayOn(at(2025, 6, 2, 10, 0), nairobi)
	assert.True(t, ok)
	assert.Equal(t, "Madaraka Day (observed)", got.Name)
}

func TestNextOpening(t *testing.T) {
	s := DefaultSchedule()

	next, ok := s.NextOpening(at(2025, 1, 18, 14, 0), nairobi) // Saturday afternoon
	require.True(t, ok)
	assert.True(t, next.Equal(at(2025, 1, 20, 8, 0)), next.String())

	next, ok = s.NextOpening(at(2025, 1, 15, 6, 0), nairobi)
	require.True(t, ok)
	assert.True(t, next.Equal(at(2025, 1, 15, 8, 0)))

	now := at(2025, 1, 15, 9, 0)
	next, ok = s.NextOpening(now, nairobi)
	require.True(t, ok)
	assert.True(t, next.Equal(now))

	closed := &Schedule{}
	_, ok = closed.NextOpening(now, nairobi)
	assert.False(t, ok)
}

func TestSlots(t *testing.T) {
	s := DefaultSchedule()

	slots := s.Slots(at(2025, 1, 18, 0, 0), time.Hour, nairobi)
	require.Len(t, slots, 4)
	assert.True(t, slots[0].Equal(at(2025, 1, 18, 9, 0)))
	assert.True(t, slots[3].Equal(at(2025, 1, 18, 12, 0)))

	assert.Empty(t, s.Slots(at(2025, 1, 19, 0, 0), time.Hour, nairobi))
	assert.Len(t, s.Slots(at(2025, 1, 15, 0, 0), 90*time.Minute, nairobi), 6)
}

func TestValidateDays(t *testing.T) {
	days, err := ValidateDays([]DayHours{
		{Weekday: time.Monday, Open: "08:00", Close: "17:00"},
	})
	require.NoError(t, err)
	assert.Len(t, days, 7)
	assert.Equal(t, time.Sunday, days[0].Weekday)
	assert.True(t, days[0].Closed)
	assert.False(t, days[1].Closed)

	_, err = ValidateDays([]DayHours{{Weekday: time.Monday, Open: "18:00", Close: "08:00"}})
	assert.Error(t, err)

	_, err = ValidateDays([]DayHours{{Weekday: time.Monday, Open: "8am", Close: "17:00"}})
	assert.Error(t, err)

	_, err = ValidateDays([]DayHours{
		{Weekday: time.Monday, Closed: true},
		{Weekday: time.Monday, Closed: true},
	})
	assert.Error(t, err)
}

func TestNewHoliday(t *testing.T) {
	_, err := NewHoliday("01/06/2025", "x")
	assert.Error(t, err)
	_, err = NewHoliday("2025-06-01", " ")
	assert.Error(t, err)
}

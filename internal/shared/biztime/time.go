// Package biztime provides business timezone calculations.
// Storage and transport use UTC. The business timezone is used for opening
// hours, consultation slots and day/month boundaries.
package biztime

import (
	"fmt"
	"sync"
	"time"
)

// DefaultTimezone is the default business timezone.
const DefaultTimezone = "Africa/Nairobi"

var (
	bizLocation     *time.Location
	bizLocationOnce sync.Once
	initErr         error
)

// Init initializes the business timezone. Should be called once at startup.
func Init(tz string) error {
	bizLocationOnce.Do(func() {
		if tz == "" {
			tz = DefaultTimezone
		}
		bizLocation, initErr = time.LoadLocation(tz)
	})
	return initErr
}

// Location returns the business timezone, initializing the default on first use.
func Location() *time.Location {
	if bizLocation == nil {
		if err := Init(""); err != nil {
			panic(fmt.Sprintf("biztime: failed to auto-initialize with default timezone: %v", err))
		}
	}
	return bizLocation
}

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// ToBizTimezone converts t to the business timezone.
func ToBizTimezone(t time.Time) time.Time {
	return t.In(Location())
}

// StartOfDayUTC returns business-day midnight for t, expressed in UTC.
func StartOfDayUTC(t time.Time) time.Time {
	b := t.In(Location())
	return time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, Location()).UTC()
}

// StartOfMonthUTC returns the first instant of a business month in UTC.
func StartOfMonthUTC(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, Location()).UTC()
}

// ParseDate parses YYYY-MM-DD as a business-timezone date.
func ParseDate(dateStr string) (time.Time, error) {
	t, err := time.ParseInLocation(time.DateOnly, dateStr, Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", dateStr, err)
	}
	return t, nil
}

// ParseDateTime combines a YYYY-MM-DD date and an HH:MM clock in the business timezone.
func ParseDateTime(dateStr, clock string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02 15:04", dateStr+" "+clock, Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date/time %q %q: %w", dateStr, clock, err)
	}
	return t, nil
}

// ClockMinutes converts an HH:MM string to minutes after midnight.
func ClockMinutes(clock string) (int, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return 0, fmt.Errorf("invalid clock %q: %w", clock, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock renders minutes after midnight as HH:MM.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// FormatInBizTimezone formats t in the business timezone.
func FormatInBizTimezone(t time.Time, layout string) string {
	return t.In(Location()).Format(layout)
}

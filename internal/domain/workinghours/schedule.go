// Package workinghours models the weekly opening schedule and public holidays.
// All clock values are HH:MM in the business timezone.
package workinghours

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"remotcyberhelp/internal/shared/biztime"
	"remotcyberhelp/internal/shared/errors"
)

// lookahead bounds the search for the next opening.
const lookahead = 21

type DayHours struct {
	Weekday time.Weekday
	Open    string
	Close   string
	Closed  bool
}

func (d DayHours) minutes() (int, int, error) {
	open, err := biztime.ClockMinutes(d.Open)
	if err != nil {
		return 0, 0, err
	}
	closing, err := biztime.ClockMinutes(d.Close)
	if err != nil {
		return 0, 0, err
	}
	return open, closing, nil
}

type Holiday struct {
	Date string // YYYY-MM-DD
	Name string
}

type Schedule struct {
	Days     []DayHours
	Holidays []Holiday
}

// DefaultSchedule is used until an administrator saves one.
func DefaultSchedule() *Schedule {
	days := make([]DayHours, 0, 7)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		switch wd {
		case time.Sunday:
			days = append(days, DayHours{Weekday: wd, Closed: true})
		case time.Saturday:
			days = append(days, DayHours{Weekday: wd, Open: "09:00", Close: "13:00"})
		default:
			days = append(days, DayHours{Weekday: wd, Open: "08:00", Close: "18:00"})
		}
	}
	return &Schedule{Days: days}
}

// ValidateDays checks a full week definition. Missing weekdays are treated as closed.
func ValidateDays(days []DayHours) ([]DayHours, error) {
	seen := make(map[time.Weekday]bool, 7)
	out := make([]DayHours, 0, 7)
	for _, d := range days {
		if d.Weekday < time.Sunday || d.Weekday > time.Saturday {
			return nil, errors.NewValidationError(fmt.Sprintf("invalid weekday: %d", d.Weekday))
		}
		if seen[d.Weekday] {
			return nil, errors.NewValidationError(fmt.Sprintf("duplicate weekday: %s", d.Weekday))
		}
		seen[d.Weekday] = true
		if d.Closed {
			out = append(out, DayHours{Weekday: d.Weekday, Closed: true})
			continue
		}
		open, closing, err := d.minutes()
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		if open >= closing {
			return nil, errors.NewValidationError(fmt.Sprintf("%s: opening time must be before closing time", d.Weekday))
		}
		out = append(out, d)
	}
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if !seen[wd] {
			out = append(out, DayHours{Weekday: wd, Closed: true})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Weekday < out[j].Weekday })
	return out, nil
}

func NewHoliday(date, name string) (Holiday, error) {
	if _, err := time.Parse(time.DateOnly, date); err != nil {
		return Holiday{}, errors.NewValidationError("date must be YYYY-MM-DD")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Holiday{}, errors.NewValidationError("holiday name is required")
	}
	return Holiday{Date: date, Name: name}, nil
}

func (s *Schedule) day(wd time.Weekday) DayHours {
	for _, d := range s.Days {
		if d.Weekday == wd {
			return d
		}
	}
	return DayHours{Weekday: wd, Closed: true}
}

// HolidayOn returns the holiday covering the business date of t, if any.
func (s *Schedule) HolidayOn(t time.Time, loc *time.Location) (Holiday, bool) {
	date := t.In(loc).Format(time.DateOnly)
	for _, h := range s.Holidays {
		if h.Date == date {
			return h, true
		}
	}
	return Holiday{}, false
}

// Window returns the opening interval for the business date of t.
// ok is false on closed days and holidays.
func (s *Schedule) Window(t time.Time, loc *time.Location) (start, end time.Time, ok bool) {
	local := t.In(loc)
	if _, holiday := s.HolidayOn(local, loc); holiday {
		return time.Time{}, time.Time{}, false
	}
	d := s.day(local.Weekday())
	if d.Closed {
		return time.Time{}, time.Time{}, false
	}
	open, closing, err := d.minutes()
	if err != nil || open >= closing {
		return time.Time{}, time.Time{}, false
	}
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return midnight.Add(time.Duration(open) * time.Minute), midnight.Add(time.Duration(closing) * time.Minute), true
}

func (s *Schedule) IsOpenAt(t time.Time, loc *time.Location) bool {
	start, end, ok := s.Window(t, loc)
	if !ok {
		return false
	}
	return !t.Before(start) && t.Before(end)
}

// NextOpening returns the next instant the business opens at or after t.
// If t is within opening hours, t itself is returned.
func (s *Schedule) NextOpening(t time.Time, loc *time.Location) (time.Time, bool) {
	if s.IsOpenAt(t, loc) {
		return t, true
	}
	local := t.In(loc)
	for i := 0; i < lookahead; i++ {
		day := time.Date(local.Year(), local.Month(), local.Day()+i, 12, 0, 0, 0, loc)
		start, _, ok := s.Window(day, loc)
		if ok && start.After(t) {
			return start, true
		}
	}
	return time.Time{}, false
}

// Slots splits the opening window of date into slot-length starts.
// Slots that would run past closing time are dropped.
func (s *Schedule) Slots(date time.Time, slot time.Duration, loc *time.Location) []time.Time {
	if slot <= 0 {
		slot = time.Hour
	}
	start, end, ok := s.Window(date, loc)
	if !ok {
		return nil
	}
	var out []time.Time
	for t := start; !t.Add(slot).After(end); t = t.Add(slot) {
		out = append(out, t)
	}
	return out
}

type Repository interface {
	// Get returns the stored schedule, or NotFound when none was saved.
	Get(ctx context.Context) (*Schedule, error)
	SaveDays(ctx context.Context, days []DayHours) error
	AddHoliday(ctx context.Context, h Holiday) error
	DeleteHoliday(ctx context.Context, date string) error
}

// Load returns the stored schedule, or DefaultSchedule when none was saved.
func Load(ctx context.Context, repo Repository) (*Schedule, error) {
	s, err := repo.Get(ctx)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return DefaultSchedule(), nil
		}
		return nil, err
	}
	return s, nil
}

package dto

import (
	"strings"
	"time"

	"remotcyberhelp/internal/domain/workinghours"
)

type DayDTO struct {
	Day    string `json:"day"`
	Open   string `json:"open,omitempty"`
	Close  string `json:"close,omitempty"`
	Closed bool   `json:"closed"`
}

type HolidayDTO struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

type ScheduleDTO struct {
	Timezone string       `json:"timezone"`
	Days     []DayDTO     `json:"days"`
	Holidays []HolidayDTO `json:"holidays"`
}

type StatusDTO struct {
	IsOpen     bool        `json:"isOpen"`
	Now        time.Time   `json:"now"`
	Today      DayDTO      `json:"today"`
	Holiday    *HolidayDTO `json:"holiday,omitempty"`
	NextOpenAt *time.Time  `json:"nextOpenAt,omitempty"`
}

func DayName(wd time.Weekday) string {
	return strings.ToLower(wd.String())
}

func ToDayDTO(d workinghours.DayHours) DayDTO {
	out := DayDTO{Day: DayName(d.Weekday), Closed: d.Closed}
	if !d.Closed {
		out.Open = d.Open
		out.Close = d.Close
	}
	return out
}

func ToScheduleDTO(s *workinghours.Schedule, tz string) *ScheduleDTO {
	out := &ScheduleDTO{
		Timezone: tz,
		Days:     make([]DayDTO, 0, len(s.Days)),
		Holidays: make([]HolidayDTO, 0, len(s.Holidays)),
	}
	for _, d := range s.Days {
		out.Days = append(out.Days, ToDayDTO(d))
	}
	for _, h := range s.Holidays {
		out.Holidays = append(out.Holidays, HolidayDTO{Date: h.Date, Name: h.Name})
	}
	return out
}

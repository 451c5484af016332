package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"remotcyberhelp/internal/application/workinghours/dto"
	"remotcyberhelp/internal/domain/workinghours"
	"remotcyberhelp/internal/shared/biztime"
	"remotcyberhelp/internal/shared/errors"
	"remotcyberhelp/internal/shared/logger"
)

type GetScheduleUseCase struct {
	repo workinghours.Repository
	now  func() time.Time
}

func NewGetScheduleUseCase(repo workinghours.Repository) *GetScheduleUseCase {
	return &GetScheduleUseCase{repo: repo, now: biztime.NowUTC}
}

func (uc *GetScheduleUseCase) Execute(ctx context.Context) (*dto.ScheduleDTO, error) {
	s, err := workinghours.Load(ctx, uc.repo)
	if err != nil {
		return nil, err
	}
	return dto.ToScheduleDTO(s, biztime.Location().String()), nil
}

// Status reports whether the business is open right now.
func (uc *GetScheduleUseCase) Status(ctx context.Context) (*dto.StatusDTO, error) {
	s, err := workinghours.Load(ctx, uc.repo)
	if err != nil {
		return nil, err
	}
	loc := biztime.Location()
	now := uc.now()
	local := now.In(loc)

	out := &dto.StatusDTO{
		IsOpen: s.IsOpenAt(now, loc),
		Now:    local,
	}
	for _, d := range s.Days {
		if d.Weekday == local.Weekday() {
			out.Today = dto.ToDayDTO(d)
		}
	}
	if out.Today.Day == "" {
		out.Today = dto.DayDTO{Day: dto.DayName(local.Weekday()), Closed: true}
	}
	if h, ok := s.HolidayOn(now, loc); ok {
		out.Holiday = &dto.HolidayDTO{Date: h.Date, Name: h.Name}
		out.Today.Closed = true
	}
	if !out.IsOpen {
		if next, ok := s.NextOpening(now, loc); ok {
			next = next.In(loc)
			out.NextOpenAt = &next
		}
	}
	return out, nil
}

type DayInput struct {
	Day    string
	Open   string
	Close  string
	Closed bool
}

type UpdateScheduleUseCase struct {
	repo   workinghours.Repository
	logger logger.Interface
}

func NewUpdateScheduleUseCase(repo workinghours.Repository, logger logger.Interface) *UpdateScheduleUseCase {
	return &UpdateScheduleUseCase{repo: repo, logger: logger}
}

// Execute replaces the weekly hours. Weekdays left out are stored as closed.
func (uc *UpdateScheduleUseCase) Execute(ctx context.Context, days []DayInput) (*dto.ScheduleDTO, error) {
	parsed := make([]workinghours.DayHours, 0, len(days))
	for _, d := range days {
		wd, err := parseWeekday(d.Day)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, workinghours.DayHours{Weekday: wd, Open: d.Open, Close: d.Close, Closed: d.Closed})
	}
	valid, err := workinghours.ValidateDays(parsed)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.SaveDays(ctx, valid); err != nil {
		uc.logger.Errorw("failed to save working hours", "error", err)
		return nil, err
	}
	uc.logger.Infow("working hours updated")
	s, err := workinghours.Load(ctx, uc.repo)
	if err != nil {
		return nil, err
	}
	return dto.ToScheduleDTO(s, biztime.Location().String()), nil
}

func parseWeekday(name string) (time.Weekday, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		full := dto.DayName(wd)
		if n == full || n == full[:3] {
			return wd, nil
		}
	}
	return 0, errors.NewValidationError(fmt.Sprintf("invalid day: %q", name))
}

type ManageHolidaysUseCase struct {
	repo   workinghours.Repository
	logger logger.Interface
}

func NewManageHolidaysUseCase(repo workinghours.Repository, logger logger.Interface) *ManageHolidaysUseCase {
	return &ManageHolidaysUseCase{repo: repo, logger: logger}
}

func (uc *ManageHolidaysUseCase) Add(ctx context.Context, date, name string) (*dto.HolidayDTO, error) {
	h, err := workinghours.NewHoliday(strings.TrimSpace(date), name)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.AddHoliday(ctx, h); err != nil {
		uc.logger.Errorw("failed to add holiday", "date", h.Date, "error", err)
		return nil, err
	}
	uc.logger.Infow("holiday added", "date", h.Date, "name", h.Name)
	return &dto.HolidayDTO{Date: h.Date, Name: h.Name}, nil
}

func (uc *ManageHolidaysUseCase) Delete(ctx context.Context, date string) error {
	if err := uc.repo.DeleteHoliday(ctx, strings.TrimSpace(date)); err != nil {
		return err
	}
	uc.logger.Infow("holiday removed", "date", date)
	return nil
}

package usecases

import (
	"context"
	"time"

	"remotcyberhelp/internal/application/consultation/dto"
	"remotcyberhelp/internal/domain/consultation"
	"remotcyberhelp/internal/domain/workinghours"
	"remotcyberhelp/internal/shared/biztime"
	"remotcyberhelp/internal/shared/errors"
	"remotcyberhelp/internal/shared/logger"
)

type GetAvailabilityUseCase struct {
	repo   consultation.Repository
	hours  workinghours.Repository
	logger logger.Interface
	now    func() time.Time
}

func NewGetAvailabilityUseCase(repo consultation.Repository, hours workinghours.Repository, logger logger.Interface) *GetAvailabilityUseCase {
	return &GetAvailabilityUseCase{repo: repo, hours: hours, logger: logger, now: biztime.NowUTC}
}

// Execute lists the one-hour slots of date. Past slots and slots that
// overlap an active booking are marked unavailable.
func (uc *GetAvailabilityUseCase) Execute(ctx context.Context, date string) (*dto.AvailabilityDTO, error) {
	day, err := biztime.ParseDate(date)
	if err != nil {
		return nil, errors.NewValidationError("date must be YYYY-MM-DD")
	}
	schedule, err := workinghours.Load(ctx, uc.hours)
	if err != nil {
		return nil, err
	}

	loc := biztime.Location()
	out := &dto.AvailabilityDTO{Date: date, Slots: []dto.SlotDTO{}}
	if h, ok := schedule.HolidayOn(day, loc); ok {
		out.Holiday = h.Name
		return out, nil
	}
	slots := schedule.Slots(day, SlotLength, loc)
	if len(slots) == 0 {
		return out, nil
	}
	out.Open = true

	booked, err := uc.repo.ListActiveBetween(ctx, slots[0], slots[len(slots)-1].Add(SlotLength))
	if err != nil {
		uc.logger.Errorw("failed to load bookings", "date", date, "error", err)
		return nil, err
	}

	now := uc.now()
	for _, start := range slots {
		available := start.After(now)
		for _, b := range booked {
			if !available {
				break
			}
			if b.Overlaps(start, start.Add(SlotLength)) {
				available = false
			}
		}
		out.Slots = append(out.Slots, dto.SlotDTO{
			Time:      start.In(loc).Format("15:04"),
			StartsAt:  start.UTC(),
			Available: available,
		})
	}
	return out, nil
}

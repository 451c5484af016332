package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"remotcyberhelp/internal/domain/workinghours"
	"remotcyberhelp/internal/infrastructure/persistence/mappers"
	"remotcyberhelp/internal/infrastructure/persistence/models"
	"remotcyberhelp/internal/shared/db"
	apperrors "remotcyberhelp/internal/shared/errors"
)

type WorkingHoursRepository struct {
	db *gorm.DB
}

func NewWorkingHoursRepository(db *gorm.DB) *WorkingHoursRepository {
	return &WorkingHoursRepository{db: db}
}

func (r *WorkingHoursRepository) Get(ctx context.Context) (*workinghours.Schedule, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var days []models.WorkingDayModel
	if err := tx.Order("weekday ASC").Find(&days).Error; err != nil {
		return nil, fmt.Errorf("failed to load working days: %w", err)
	}
	if len(days) == 0 {
		return nil, apperrors.NewNotFoundError("working hours not configured")
	}

	var holidays []models.HolidayModel
	if err := tx.Order("date ASC").Find(&holidays).Error; err != nil {
		return nil, fmt.Errorf("failed to load holidays: %w", err)
	}

	s := &workinghours.Schedule{
		Days:     make([]workinghours.DayHours, 0, len(days)),
		Holidays: make([]workinghours.Holiday, 0, len(holidays)),
	}
	for i := range days {
		s.Days = append(s.Days, mappers.WorkingDayToDomain(&days[i]))
	}
	for _, h := range holidays {
		s.Holidays = append(s.Holidays, workinghours.Holiday{Date: h.Date, Name: h.Name})
	}
	return s, nil
}

// SaveDays replaces the weekly schedule.
func (r *WorkingHoursRepository) SaveDays(ctx context.Context, days []workinghours.DayHours) error {
	rows := make([]*models.WorkingDayModel, len(days))
	for i, d := range days {
		rows[i] = mappers.WorkingDayToModel(d)
	}
	err := db.GetTxFromContext(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "weekday"}},
			DoUpdates: clause.AssignmentColumns([]string{"open_time", "close_time", "closed", "updated_at"}),
		}).
		Create(&rows).Error
	if err != nil {
		return fmt.Errorf("failed to save working days: %w", err)
	}
	return nil
}

func (r *WorkingHoursRepository) AddHoliday(ctx context.Context, h workinghours.Holiday) error {
	err := db.GetTxFromContext(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"name"}),
		}).
		Create(&models.HolidayModel{Date: h.Date, Name: h.Name}).Error
	if err != nil {
		return fmt.Errorf("failed to save holiday: %w", err)
	}
	return nil
}

func (r *WorkingHoursRepository) DeleteHoliday(ctx context.Context, date string) error {
	result := db.GetTxFromContext(ctx, r.db).Where("date = ?", date).Delete(&models.HolidayModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete holiday: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("holiday not found")
	}
	return nil
}

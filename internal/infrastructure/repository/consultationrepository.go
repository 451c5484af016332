package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"remotcyberhelp/internal/domain/consultation"
	"remotcyberhelp/internal/infrastructure/persistence/mappers"
	"remotcyberhelp/internal/infrastructure/persistence/models"
	"remotcyberhelp/internal/shared/db"
	apperrors "remotcyberhelp/internal/shared/errors"
)

var consultationSortFields = map[string]string{
	"createdAt":   "created_at",
	"scheduledAt": "scheduled_at",
	"status":      "status",
}

type ConsultationRepository struct {
	db *gorm.DB
}

func NewConsultationRepository(db *gorm.DB) *ConsultationRepository {
	return &ConsultationRepository{db: db}
}

func (r *ConsultationRepository) Create(ctx context.Context, c *consultation.Consultation) error {
	if err := db.GetTxFromContext(ctx, r.db).Create(mappers.ConsultationToModel(c)).Error; err != nil {
		return fmt.Errorf("failed to save consultation: %w", err)
	}
	return nil
}

func (r *ConsultationRepository) Update(ctx context.Context, c *consultation.Consultation) error {
	model := mappers.ConsultationToModel(c)
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.ConsultationModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(model).Error
	if err != nil {
		return fmt.Errorf("failed to update consultation: %w", err)
	}
	return nil
}

func (r *ConsultationRepository) Delete(ctx context.Context, id string) error {
	result := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).Delete(&models.ConsultationModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete consultation: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("consultation not found")
	}
	return nil
}

func (r *ConsultationRepository) GetByID(ctx context.Context, id string) (*consultation.Consultation, error) {
	var model models.ConsultationModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("consultation not found")
		}
		return nil, fmt.Errorf("failed to get consultation: %w", err)
	}
	return mappers.ConsultationToDomain(&model), nil
}

func (r *ConsultationRepository) List(ctx context.Context, filter consultation.Filter) ([]*consultation.Consultation, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.ConsultationModel{})
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	query = query.Scopes(db.Search(filter.Search, "name", "email", "service_type"))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count consultations: %w", err)
	}

	var rows []models.ConsultationModel
	if err := query.
		Order(filter.OrderClause(consultationSortFields, "scheduled_at DESC")).
		Scopes(db.Paginate(filter.Offset(), filter.Limit())).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list consultations: %w", err)
	}

	out := make([]*consultation.Consultation, len(rows))
	for i := range rows {
		out[i] = mappers.ConsultationToDomain(&rows[i])
	}
	return out, total, nil
}

func (r *ConsultationRepository) CountByStatus(ctx context.Context, status consultation.Status) (int64, error) {
	var count int64
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.ConsultationModel{}).
		Where("status = ?", string(status)).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count consultations: %w", err)
	}
	return count, nil
}

// ListActiveBetween widens the lower bound by consultation.MaxDuration so bookings
// that started earlier and run into the window are found.
func (r *ConsultationRepository) ListActiveBetween(ctx context.Context, from, to time.Time) ([]*consultation.Consultation, error) {
	var rows []models.ConsultationModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("status <> ?", string(consultation.StatusCancelled)).
		Where("scheduled_at >= ? AND scheduled_at < ?", from.Add(-consultation.MaxDuration).UTC(), to.UTC()).
		Order("scheduled_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	out := make([]*consultation.Consultation, 0, len(rows))
	for i := range rows {
		c := mappers.ConsultationToDomain(&rows[i])
		if c.Overlaps(from, to) {
			out = append(out, c)
		}
	}
	return out, nil
}

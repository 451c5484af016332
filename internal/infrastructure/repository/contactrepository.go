package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"remotcyberhelp/internal/domain/contact"
	"remotcyberhelp/internal/infrastructure/persistence/mappers"
	"remotcyberhelp/internal/infrastructure/persistence/models"
	"remotcyberhelp/internal/shared/db"
	apperrors "remotcyberhelp/internal/shared/errors"
)

var contactSortFields = map[string]string{
	"createdAt": "created_at",
	"status":    "status",
	"name":      "name",
}

type ContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Create(ctx context.Context, m *contact.Message) error {
	if err := db.GetTxFromContext(ctx, r.db).Create(mappers.ContactToModel(m)).Error; err != nil {
		return fmt.Errorf("failed to save contact message: %w", err)
	}
	return nil
}

func (r *ContactRepository) Update(ctx context.Context, m *contact.Message) error {
	model := mappers.ContactToModel(m)
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.ContactMessageModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{"status": model.Status, "updated_at": model.UpdatedAt}).Error
	if err != nil {
		return fmt.Errorf("failed to update contact message: %w", err)
	}
	return nil
}

func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	result := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).Delete(&models.ContactMessageModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete contact message: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("message not found")
	}
	return nil
}

func (r *ContactRepository) GetByID(ctx context.Context, id string) (*contact.Message, error) {
	var model models.ContactMessageModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("message not found")
		}
		return nil, fmt.Errorf("failed to get contact message: %w", err)
	}
	return mappers.ContactToDomain(&model), nil
}

func (r *ContactRepository) List(ctx context.Context, filter contact.Filter) ([]*contact.Message, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.ContactMessageModel{})
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	query = query.Scopes(db.Search(filter.Search, "name", "email", "subject", "body"))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count contact messages: %w", err)
	}

	var rows []models.ContactMessageModel
	if err := query.
		Order(filter.OrderClause(contactSortFields, "created_at DESC")).
		Scopes(db.Paginate(filter.Offset(), filter.Limit())).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list contact messages: %w", err)
	}

	out := make([]*contact.Message, len(rows))
	for i := range rows {
		out[i] = mappers.ContactToDomain(&rows[i])
	}
	return out, total, nil
}

func (r *ContactRepository) CountByStatus(ctx context.Context, status contact.Status) (int64, error) {
	var count int64
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.ContactMessageModel{}).
		Where("status = ?", string(status)).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count contact messages: %w", err)
	}
	return count, nil
}

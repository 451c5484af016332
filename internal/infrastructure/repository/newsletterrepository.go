package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"remotcyberhelp/internal/domain/newsletter"
	"remotcyberhelp/internal/infrastructure/persistence/mappers"
	"remotcyberhelp/internal/infrastructure/persistence/models"
	"remotcyberhelp/internal/shared/db"
	apperrors "remotcyberhelp/internal/shared/errors"
)

var subscriberSortFields = map[string]string{
	"createdAt":    "created_at",
	"subscribedAt": "subscribed_at",
	"email":        "email",
}

type NewsletterRepository struct {
	db *gorm.DB
}

func NewNewsletterRepository(db *gorm.DB) *NewsletterRepository {
	return &NewsletterRepository{db: db}
}

func (r *NewsletterRepository) Create(ctx context.Context, s *newsletter.Subscriber) error {
	if err := db.GetTxFromContext(ctx, r.db).Create(mappers.SubscriberToModel(s)).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.NewConflictError("email is already subscribed")
		}
		return fmt.Errorf("failed to create subscriber: %w", err)
	}
	return nil
}

func (r *NewsletterRepository) Update(ctx context.Context, s *newsletter.Subscriber) error {
	model := mappers.SubscriberToModel(s)
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.SubscriberModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"name":            model.Name,
			"active":          model.Active,
			"subscribed_at":   model.SubscribedAt,
			"unsubscribed_at": model.UnsubscribedAt,
			"updated_at":      model.UpdatedAt,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update subscriber: %w", err)
	}
	return nil
}

func (r *NewsletterRepository) GetByEmail(ctx context.Context, email string) (*newsletter.Subscriber, error) {
	return r.getOne(ctx, "email = ?", strings.ToLower(strings.TrimSpace(email)))
}

func (r *NewsletterRepository) GetByToken(ctx context.Context, token string) (*newsletter.Subscriber, error) {
	return r.getOne(ctx, "token = ?", token)
}

func (r *NewsletterRepository) getOne(ctx context.Context, cond string, arg interface{}) (*newsletter.Subscriber, error) {
	var model models.SubscriberModel
	if err := db.GetTxFromContext(ctx, r.db).Where(cond, arg).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("subscriber not found")
		}
		return nil, fmt.Errorf("failed to get subscriber: %w", err)
	}
	return mappers.SubscriberToDomain(&model), nil
}

func (r *NewsletterRepository) List(ctx context.Context, filter newsletter.Filter) ([]*newsletter.Subscriber, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.SubscriberModel{})
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}
	query = query.Scopes(db.Search(filter.Search, "email", "name"))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count subscribers: %w", err)
	}

	var rows []models.SubscriberModel
	if err := query.
		Order(filter.OrderClause(subscriberSortFields, "created_at DESC")).
		Scopes(db.Paginate(filter.Offset(), filter.Limit())).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list subscribers: %w", err)
	}

	out := make([]*newsletter.Subscriber, len(rows))
	for i := range rows {
		out[i] = mappers.SubscriberToDomain(&rows[i])
	}
	return out, total, nil
}

func (r *NewsletterRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.SubscriberModel{}).
		Where("active = ?", true).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count subscribers: %w", err)
	}
	return count, nil
}

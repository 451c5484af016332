package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"remotcyberhelp/internal/domain/government"
	"remotcyberhelp/internal/infrastructure/persistence/mappers"
	"remotcyberhelp/internal/infrastructure/persistence/models"
	"remotcyberhelp/internal/shared/db"
	apperrors "remotcyberhelp/internal/shared/errors"
)

type GovernmentServiceRepository struct {
	db *gorm.DB
}

func NewGovernmentServiceRepository(db *gorm.DB) *GovernmentServiceRepository {
	return &GovernmentServiceRepository{db: db}
}

func (r *GovernmentServiceRepository) List(ctx context.Context, activeOnly bool) ([]*government.Service, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.GovernmentServiceModel{})
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	var rows []models.GovernmentServiceModel
	if err := query.Order("category ASC, name ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	out := make([]*government.Service, len(rows))
	for i := range rows {
		out[i] = mappers.GovernmentServiceToDomain(&rows[i])
	}
	return out, nil
}

func (r *GovernmentServiceRepository) GetByCode(ctx context.Context, code string) (*government.Service, error) {
	var model models.GovernmentServiceModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("code = ?", strings.ToLower(strings.TrimSpace(code))).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("service not found")
		}
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return mappers.GovernmentServiceToDomain(&model), nil
}

func (r *GovernmentServiceRepository) Upsert(ctx context.Context, s *government.Service) error {
	model := mappers.GovernmentServiceToModel(s)
	err := db.GetTxFromContext(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "description", "category", "fee", "processing_days", "requirements", "active", "updated_at"}),
		}).
		Create(model).Error
	if err != nil {
		return fmt.Errorf("failed to upsert service %s: %w", s.Code, err)
	}
	return nil
}

var governmentRequestSortFields = map[string]string{
	"createdAt": "created_at",
	"status":    "status",
	"reference": "reference",
}

type GovernmentRequestRepository struct {
	db *gorm.DB
}

func NewGovernmentRequestRepository(db *gorm.DB) *GovernmentRequestRepository {
	return &GovernmentRequestRepository{db: db}
}

func (r *GovernmentRequestRepository) Create(ctx context.Context, req *government.Request) error {
	if err := db.GetTxFromContext(ctx, r.db).Create(mappers.GovernmentRequestToModel(req)).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.NewConflictError("request reference already exists", req.Reference())
		}
		return fmt.Errorf("failed to create request: %w", err)
	}
	return nil
}

func (r *GovernmentRequestRepository) Update(ctx context.Context, req *government.Request) error {
	model := mappers.GovernmentRequestToModel(req)
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.GovernmentRequestModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"status":      model.Status,
			"admin_notes": model.AdminNotes,
			"updated_at":  model.UpdatedAt,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update request: %w", err)
	}
	return nil
}

func (r *GovernmentRequestRepository) GetByReference(ctx context.Context, reference string) (*government.Request, error) {
	var model models.GovernmentRequestModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("reference = ?", strings.ToUpper(strings.TrimSpace(reference))).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("request not found")
		}
		return nil, fmt.Errorf("failed to get request: %w", err)
	}
	return mappers.GovernmentRequestToDomain(&model), nil
}

func (r *GovernmentRequestRepository) ExistsByReference(ctx context.Context, reference string) (bool, error) {
	var count int64
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.GovernmentRequestModel{}).
		Where("reference = ?", reference).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check reference: %w", err)
	}
	return count > 0, nil
}

func (r *GovernmentRequestRepository) List(ctx context.Context, filter government.RequestFilter) ([]*government.Request, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.GovernmentRequestModel{})
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.ServiceCode != "" {
		query = query.Where("service_code = ?", filter.ServiceCode)
	}
	query = query.Scopes(db.Search(filter.Search, "reference", "full_name", "email"))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count requests: %w", err)
	}

	var rows []models.GovernmentRequestModel
	if err := query.
		Order(filter.OrderClause(governmentRequestSortFields, "created_at DESC")).
		Scopes(db.Paginate(filter.Offset(), filter.Limit())).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list requests: %w", err)
	}

	out := make([]*government.Request, len(rows))
	for i := range rows {
		out[i] = mappers.GovernmentRequestToDomain(&rows[i])
	}
	return out, total, nil
}

func (r *GovernmentRequestRepository) CountByStatus(ctx context.Context, status government.RequestStatus) (int64, error) {
	var count int64
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.GovernmentRequestModel{}).
		Where("status = ?", string(status)).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count requests: %w", err)
	}
	return count, nil
}

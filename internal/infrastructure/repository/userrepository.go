package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"remotcyberhelp/internal/domain/user"
	"remotcyberhelp/internal/infrastructure/persistence/mappers"
	"remotcyberhelp/internal/infrastructure/persistence/models"
	"remotcyberhelp/internal/shared/authorization"
	"remotcyberhelp/internal/shared/db"
	apperrors "remotcyberhelp/internal/shared/errors"
	"remotcyberhelp/internal/shared/logger"
)

// UserRepository implements user.Repository on SQL.
type UserRepository struct {
	db     *gorm.DB
	mapper mappers.UserMapper
	logger logger.Interface
}

func NewUserRepository(db *gorm.DB, logger logger.Interface) *UserRepository {
	return &UserRepository{
		db:     db,
		mapper: mappers.NewUserMapper(),
		logger: logger,
	}
}

func (r *UserRepository) Create(ctx context.Context, a *user.Account) error {
	model := r.mapper.ToModel(a)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.NewConflictError("an account with this email already exists")
		}
		r.logger.Errorw("failed to create user in database", "error", err)
		return fmt.Errorf("failed to create user: %w", err)
	}
	r.logger.Infow("user created", "id", model.ID, "role", model.Role)
	return nil
}

func (r *UserRepository) Update(ctx context.Context, a *user.Account) error {
	model := r.mapper.ToModel(a)
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.UserModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(model).Error
	if err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.NewConflictError("an account with this email already exists")
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*user.Account, error) {
	return r.getOne(ctx, "id = ?", id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.Account, error) {
	return r.getOne(ctx, "email = ?", strings.ToLower(strings.TrimSpace(email)))
}

func (r *UserRepository) getOne(ctx context.Context, cond string, arg interface{}) (*user.Account, error) {
	var model models.UserModel
	if err := db.GetTxFromContext(ctx, r.db).Where(cond, arg).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("user not found")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.UserModel{}).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return count > 0, nil
}

func (r *UserRepository) List(ctx context.Context, filter user.ListFilter) ([]*user.Account, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.UserModel{})
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	query = query.Scopes(db.Search(filter.Search, "email", "name"))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	var rows []*models.UserModel
	if err := query.
		Order(filter.OrderClause(user.SortableFields, "created_at DESC")).
		Scopes(db.Paginate(filter.Offset(), filter.Limit())).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	accounts, err := r.mapper.ToEntities(rows)
	if err != nil {
		return nil, 0, err
	}
	return accounts, total, nil
}

func (r *UserRepository) ListAdminEmails(ctx context.Context) ([]string, error) {
	var emails []string
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.UserModel{}).
		Where("role IN ? AND active = ?", []string{string(authorization.RoleAdmin), string(authorization.RoleSuperAdmin)}, true).
		Pluck("email", &emails).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list admin emails: %w", err)
	}
	return emails, nil
}

func (r *UserRepository) ClearExpiredResetCodes(ctx context.Context, now time.Time) (int64, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.UserModel{}).
		Where("reset_code_expires_at IS NOT NULL AND reset_code_expires_at < ?", now.UTC()).
		Updates(map[string]interface{}{
			"reset_code_hash":       "",
			"reset_code_expires_at": nil,
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to clear reset codes: %w", result.Error)
	}
	return result.RowsAffected, nil
}

package mappers

import (
	"fmt"

	"remotcyberhelp/internal/domain/user"
	"remotcyberhelp/internal/infrastructure/persistence/models"
)

// UserMapper handles the conversion between accounts and persistence models.
type UserMapper interface {
	ToEntity(model *models.UserModel) (*user.Account, error)
	ToModel(entity *user.Account) *models.UserModel
	ToEntities(models []*models.UserModel) ([]*user.Account, error)
}

type UserMapperImpl struct{}

func NewUserMapper() UserMapper {
	return &UserMapperImpl{}
}

func (m *UserMapperImpl) ToEntity(model *models.UserModel) (*user.Account, error) {
	if model == nil {
		return nil, nil
	}
	account, err := user.ReconstructAccount(user.AccountState{
		ID:                 model.ID,
		Email:              model.Email,
		Name:               model.Name,
		PasswordHash:       model.PasswordHash,
		Role:               model.Role,
		Active:             model.Active,
		LoginAttempts:      model.LoginAttempts,
		LockUntil:          model.LockUntil,
		LastLogin:          model.LastLogin,
		ResetCodeHash:      model.ResetCodeHash,
		ResetCodeExpiresAt: model.ResetCodeExpiresAt,
		CreatedAt:          model.CreatedAt,
		UpdatedAt:          model.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct account %s: %w", model.ID, err)
	}
	return account, nil
}

func (m *UserMapperImpl) ToModel(entity *user.Account) *models.UserModel {
	s := entity.State()
	return &models.UserModel{
		ID:                 s.ID,
		Email:              s.Email,
		Name:               s.Name,
		PasswordHash:       s.PasswordHash,
		Role:               s.Role,
		Active:             s.Active,
		LoginAttempts:      s.LoginAttempts,
		LockUntil:          s.LockUntil,
		LastLogin:          s.LastLogin,
		ResetCodeHash:      s.ResetCodeHash,
		ResetCodeExpiresAt: s.ResetCodeExpiresAt,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}

func (m *UserMapperImpl) ToEntities(rows []*models.UserModel) ([]*user.Account, error) {
	out := make([]*user.Account, 0, len(rows))
	for _, row := range rows {
		a, err := m.ToEntity(row)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

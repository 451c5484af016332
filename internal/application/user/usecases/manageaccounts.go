package usecases

import (
	"context"

	"remotcyberhelp/internal/application/user/dto"
	"remotcyberhelp/internal/domain/user"
	"remotcyberhelp/internal/shared/authorization"
	"remotcyberhelp/internal/shared/biztime"
	"remotcyberhelp/internal/shared/errors"
	"remotcyberhelp/internal/shared/logger"
	"remotcyberhelp/internal/shared/query"
)

type ListAccountsQuery struct {
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
	Role      string
	Search    string
}

type ListAccountsResult struct {
	Accounts []*dto.AccountDTO
	Total    int64
	Page     int
	Limit    int
}

type ListAccountsUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewListAccountsUseCase(userRepo user.Repository, logger logger.Interface) *ListAccountsUseCase {
	return &ListAccountsUseCase{userRepo: userRepo, logger: logger}
}

func (uc *ListAccountsUseCase) Execute(ctx context.Context, q ListAccountsQuery) (*ListAccountsResult, error) {
	if q.Role != "" && !authorization.UserRole(q.Role).IsValid() {
		return nil, errors.NewValidationError("invalid role filter")
	}
	filter := user.ListFilter{
		BaseFilter: query.NewBaseFilter(q.Page, q.PageSize, q.SortBy, q.SortOrder),
		Role:       q.Role,
		Search:     q.Search,
	}
	accounts, total, err := uc.userRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list accounts", "error", err)
		return nil, err
	}
	return &ListAccountsResult{
		Accounts: dto.ToAdminAccountDTOs(accounts),
		Total:    total,
		Page:     max(filter.Page, 1),
		Limit:    filter.Limit(),
	}, nil
}

type ChangeRoleCommand struct {
	UserID    string
	Role      string
	ActorID   string
	ActorRole authorization.UserRole
}

type ChangeRoleUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewChangeRoleUseCase(userRepo user.Repository, logger logger.Interface) *ChangeRoleUseCase {
	return &ChangeRoleUseCase{userRepo: userRepo, logger: logger}
}

// Execute is reserved to super admins, who cannot demote themselves.
func (uc *ChangeRoleUseCase) Execute(ctx context.Context, cmd ChangeRoleCommand) (*dto.AccountDTO, error) {
	if !cmd.ActorRole.IsSuperAdmin() {
		return nil, errors.NewForbiddenError("Super admin access required")
	}
	role := authorization.UserRole(cmd.Role)
	if !role.IsValid() {
		return nil, errors.NewValidationError("role must be one of user, admin, super_admin")
	}
	if cmd.UserID == cmd.ActorID && role != authorization.RoleSuperAdmin {
		return nil, errors.NewValidationError("You cannot demote your own account")
	}

	account, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}
	if err := account.ChangeRole(role, biztime.NowUTC()); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.userRepo.Update(ctx, account); err != nil {
		uc.logger.Errorw("failed to change role", "error", err, "user_id", account.ID())
		return nil, err
	}

	uc.logger.Infow("account role changed", "user_id", account.ID(), "role", role, "by", cmd.ActorID)
	return dto.ToAdminAccountDTO(account), nil
}

type UnlockAccountUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewUnlockAccountUseCase(userRepo user.Repository, logger logger.Interface) *UnlockAccountUseCase {
	return &UnlockAccountUseCase{userRepo: userRepo, logger: logger}
}

func (uc *UnlockAccountUseCase) Execute(ctx context.Context, userID, actorID string) (*dto.AccountDTO, error) {
	account, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	account.Unlock(biztime.NowUTC())
	if err := uc.userRepo.Update(ctx, account); err != nil {
		uc.logger.Errorw("failed to unlock account", "error", err, "user_id", userID)
		return nil, err
	}
	uc.logger.Infow("account unlocked", "user_id", userID, "by", actorID)
	return dto.ToAdminAccountDTO(account), nil
}

type SetAccountActiveUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewSetAccountActiveUseCase(userRepo user.Repository, logger logger.Interface) *SetAccountActiveUseCase {
	return &SetAccountActiveUseCase{userRepo: userRepo, logger: logger}
}

func (uc *SetAccountActiveUseCase) Execute(ctx context.Context, userID string, active bool, actorID string) (*dto.AccountDTO, error) {
	if userID == actorID && !active {
		return nil, errors.NewValidationError("You cannot deactivate your own account")
	}
	account, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if active {
		account.Activate(biztime.NowUTC())
	} else {
		account.Deactivate(biztime.NowUTC())
	}
	if err := uc.userRepo.Update(ctx, account); err != nil {
		uc.logger.Errorw("failed to change account status", "error", err, "user_id", userID)
		return nil, err
	}
	uc.logger.Infow("account status changed", "user_id", userID, "active", active, "by", actorID)
	return dto.ToAdminAccountDTO(account), nil
}

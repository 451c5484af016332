package user

import (
	"context"
	"time"

	"remotcyberhelp/internal/shared/query"
)

// Repository persists accounts. Implementations exist for SQL (gorm) and MongoDB.
type Repository interface {
	Create(ctx context.Context, a *Account) error
	Update(ctx context.Context, a *Account) error
	GetByID(ctx context.Context, id string) (*Account, error)
	GetByEmail(ctx context.Context, email string) (*Account, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, filter ListFilter) ([]*Account, int64, error)
	// ListAdminEmails returns the addresses of active admin and super_admin accounts.
	ListAdminEmails(ctx context.Context) ([]string, error)
	// ClearExpiredResetCodes removes reset codes that expired before now.
	ClearExpiredResetCodes(ctx context.Context, now time.Time) (int64, error)
}

type ListFilter struct {
	query.BaseFilter
	Role   string
	Search string
}

var SortableFields = map[string]string{
	"createdAt": "created_at",
	"email":     "email",
	"lastLogin": "last_login",
	"role":      "role",
}

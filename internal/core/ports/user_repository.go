package ports

import (
	"context"

	"github.com/staffdir/directory-api/internal/core/domain"
)

// UserRepository defines the persistence contract for user records.
//
// SetDepartment and ClearDepartment are the bulk back-reference writes used by
// the membership engine; both are no-ops when no document matches.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error)
	UpdateRefreshToken(ctx context.Context, id, token string) error
	SetDepartment(ctx context.Context, ids []string, departmentID string) error
	ClearDepartment(ctx context.Context, departmentID string) error
}

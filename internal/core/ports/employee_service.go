package ports

import (
	"context"

	"github.com/staffdir/directory-api/internal/core/domain"
)

// EmployeeService serves the self-service reads of the authenticated user.
type EmployeeService interface {
	Profile(ctx context.Context, userID string) (*domain.User, error)
	// Department resolves the caller's own department. A user without an
	// assignment (or with a dangling reference) yields (nil, nil), not an
	// error.
	Department(ctx context.Context, userID string) (*domain.Department, error)
}

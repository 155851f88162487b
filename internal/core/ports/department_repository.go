package ports

import (
	"context"

	"github.com/staffdir/directory-api/internal/core/domain"
)

// DepartmentRepository defines the persistence contract for departments.
type DepartmentRepository interface {
	Create(ctx context.Context, dept *domain.Department) (*domain.Department, error)
	FindByID(ctx context.Context, id string) (*domain.Department, error)
	// Update applies a partial $set-style merge and returns the updated
	// document, or domain.ErrDepartmentNotFound when id does not exist.
	Update(ctx context.Context, id string, fields map[string]any) (*domain.Department, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, skip, limit int) ([]*domain.Department, error)
	Count(ctx context.Context) (int64, error)
	SetEmployees(ctx context.Context, id string, employees []string) error
	// PullEmployees removes the given ids from the roster of every department
	// except exceptID. Used to evict prior memberships on reassignment.
	PullEmployees(ctx context.Context, employeeIDs []string, exceptID string) error
	FindByCategory(ctx context.Context, category string) ([]*domain.Department, error)
	FindByCategoryAndLocationPrefix(ctx context.Context, category, prefix string) ([]*domain.Department, error)
}

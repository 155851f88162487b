package ports

import (
	"context"

	"github.com/staffdir/directory-api/internal/core/domain"
)

// CreateDepartmentInput carries the create payload into the service.
type CreateDepartmentInput struct {
	DepartmentName string
	CategoryName   string
	Location       string
	Salary         float64
}

// DepartmentPage is one page of departments with rosters expanded.
type DepartmentPage struct {
	Departments []*domain.DepartmentView
	CurrentPage int
	TotalPages  int
	TotalItems  int64
}

// DepartmentService is the membership engine: the only writer of the
// department-employee cross-references.
type DepartmentService interface {
	Create(ctx context.Context, in CreateDepartmentInput) (*domain.Department, error)
	Update(ctx context.Context, id string, updates map[string]any) (*domain.Department, error)
	Delete(ctx context.Context, id string) (*domain.Department, error)
	Assign(ctx context.Context, id string, employeeIDs []string) (*domain.Department, error)
	List(ctx context.Context, page int) (*DepartmentPage, error)
}

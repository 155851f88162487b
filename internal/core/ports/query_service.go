package ports

import (
	"context"

	"github.com/staffdir/directory-api/internal/core/domain"
)

// QueryService exposes the cross-department directory reports.
type QueryService interface {
	// ITEmployeesInLocationA flattens the rosters of every IT department
	// whose location starts with "A" (case-insensitive).
	ITEmployeesInLocationA(ctx context.Context) ([]domain.EmployeeRef, error)
	// SalesEmployeesSorted flattens the rosters of every Sales department,
	// each roster sorted by first name descending.
	SalesEmployeesSorted(ctx context.Context) ([]domain.EmployeeRef, error)
}

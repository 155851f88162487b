package service

import (
	"context"
	"sort"

	"github.com/staffdir/directory-api/internal/core/domain"
	"github.com/staffdir/directory-api/internal/core/ports"
)

// QueryService composes the cross-department directory reports from
// department rosters and user projections.
type QueryService struct {
	departments ports.DepartmentRepository
	users       ports.UserRepository
}

func NewQueryService(departments ports.DepartmentRepository, users ports.UserRepository) *QueryService {
	return &QueryService{departments: departments, users: users}
}

// ITEmployeesInLocationA returns the employees of every department with
// category "IT" and a location starting with "A" (case-insensitive), flattened
// in department iteration order.
func (s *QueryService) ITEmployeesInLocationA(ctx context.Context) ([]domain.EmployeeRef, error) {
	depts, err := s.departments.FindByCategoryAndLocationPrefix(ctx, "IT", "A")
	if err != nil {
		return nil, err
	}
	return s.flatten(ctx, depts, nil)
}

// SalesEmployeesSorted returns the employees of every "Sales" department, each
// department's roster sorted by first name descending before flattening.
func (s *QueryService) SalesEmployeesSorted(ctx context.Context) ([]domain.EmployeeRef, error) {
	depts, err := s.departments.FindByCategory(ctx, "Sales")
	if err != nil {
		return nil, err
	}
	return s.flatten(ctx, depts, func(refs []domain.EmployeeRef) {
		sort.Slice(refs, func(i, j int) bool {
			return refs[i].FirstName > refs[j].FirstName
		})
	})
}

// flatten expands each department's roster and concatenates the results,
// applying the optional per-department ordering first.
func (s *QueryService) flatten(ctx context.Context, depts []*domain.Department, order func([]domain.EmployeeRef)) ([]domain.EmployeeRef, error) {
	employees := make([]domain.EmployeeRef, 0)
	for _, dept := range depts {
		refs, err := expandRoster(ctx, s.users, dept)
		if err != nil {
			return nil, err
		}
		if order != nil {
			order(refs)
		}
		employees = append(employees, refs...)
	}
	return employees, nil
}

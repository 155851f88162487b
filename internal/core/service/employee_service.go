package service

import (
	"context"

	"github.com/staffdir/directory-api/internal/core/domain"
	"github.com/staffdir/directory-api/internal/core/ports"
)

// EmployeeService serves the authenticated user's own profile and department.
type EmployeeService struct {
	users       ports.UserRepository
	departments ports.DepartmentRepository
}

func NewEmployeeService(users ports.UserRepository, departments ports.DepartmentRepository) *EmployeeService {
	return &EmployeeService{users: users, departments: departments}
}

func (s *EmployeeService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

// Department resolves the caller's department from their own department
// reference, the authoritative side for "my department" reads. An unassigned
// user or a reference to a since-deleted department yields (nil, nil).
func (s *EmployeeService) Department(ctx context.Context, userID string) (*domain.Department, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.DepartmentID == "" {
		return nil, nil
	}

	dept, err := s.departments.FindByID(ctx, user.DepartmentID)
	if err != nil {
		if err == domain.ErrDepartmentNotFound {
			return nil, nil
		}
		return nil, err
	}
	return dept, nil
}

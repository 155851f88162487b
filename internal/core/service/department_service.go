package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/staffdir/directory-api/internal/core/domain"
	"github.com/staffdir/directory-api/internal/core/ports"
)

// DefaultPageSize is the fixed page size for department listings.
const DefaultPageSize = 5

// normalizeUpdates validates the field names and value types of a partial
// update before anything reaches storage; a mistyped value must never be
// persisted. The employees roster is not updatable here: cross-references are
// written only through Assign and Delete so both sides stay consistent.
// JSON numbers arrive as float64.
func normalizeUpdates(updates map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(updates))
	for field, value := range updates {
		switch field {
		case "departmentName", "categoryName", "location":
			s, ok := value.(string)
			if !ok || s == "" {
				return nil, fmt.Errorf("%w: %s must be a non-empty string", domain.ErrInvalidInput, field)
			}
			out[field] = s
		case "salary":
			n, ok := toNumber(value)
			if !ok {
				return nil, fmt.Errorf("%w: salary must be a number", domain.ErrInvalidInput)
			}
			if n < 0 {
				return nil, fmt.Errorf("%w: salary must not be negative", domain.ErrInvalidInput)
			}
			out[field] = n
		default:
			return nil, fmt.Errorf("%w: field %q cannot be updated", domain.ErrInvalidInput, field)
		}
	}
	return out, nil
}

func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// DepartmentService is the membership engine. It owns the invariant that a
// department's roster and its employees' department references mirror each
// other on every mutating path.
type DepartmentService struct {
	departments ports.DepartmentRepository
	users       ports.UserRepository
	logger      zerolog.Logger
}

func NewDepartmentService(departments ports.DepartmentRepository, users ports.UserRepository, logger zerolog.Logger) *DepartmentService {
	return &DepartmentService{departments: departments, users: users, logger: logger}
}

func (s *DepartmentService) Create(ctx context.Context, in ports.CreateDepartmentInput) (*domain.Department, error) {
	if in.DepartmentName == "" || in.CategoryName == "" || in.Location == "" {
		return nil, fmt.Errorf("%w: departmentName, categoryName and location are required", domain.ErrInvalidInput)
	}
	if in.Salary < 0 {
		return nil, fmt.Errorf("%w: salary must not be negative", domain.ErrInvalidInput)
	}

	dept := &domain.Department{
		DepartmentName: in.DepartmentName,
		CategoryName:   in.CategoryName,
		Location:       in.Location,
		Salary:         in.Salary,
		Employees:      []string{},
	}

	created, err := s.departments.Create(ctx, dept)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("department_id", created.ID).Str("name", created.DepartmentName).Msg("department created")
	return created, nil
}

// Update applies a partial merge of the given fields. An empty payload,
// unknown field names and mistyped values are all rejected before the write.
func (s *DepartmentService) Update(ctx context.Context, id string, updates map[string]any) (*domain.Department, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: department id is required", domain.ErrInvalidInput)
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("%w: no updates provided", domain.ErrInvalidInput)
	}

	normalized, err := normalizeUpdates(updates)
	if err != nil {
		return nil, err
	}

	return s.departments.Update(ctx, id, normalized)
}

// Delete removes the department and clears the department reference of every
// employee that pointed at it, so no dangling back-references survive.
func (s *DepartmentService) Delete(ctx context.Context, id string) (*domain.Department, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: department id is required", domain.ErrInvalidInput)
	}

	dept, err := s.departments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.departments.Delete(ctx, id); err != nil {
		return nil, err
	}
	if err := s.users.ClearDepartment(ctx, id); err != nil {
		return nil, fmt.Errorf("clear employee references: %w", err)
	}

	s.logger.Info().Str("department_id", id).Int("employees", len(dept.Employees)).Msg("department deleted")
	return dept, nil
}

// Assign merges employeeIDs into the department's roster with set semantics
// and points each employee's department reference at it. Each employee is
// first pulled from any other department's roster, so a reassignment never
// leaves a stale entry behind. Assignment is all-or-nothing: a single unknown
// id rejects the whole request.
func (s *DepartmentService) Assign(ctx context.Context, id string, employeeIDs []string) (*domain.Department, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: department id is required", domain.ErrInvalidInput)
	}
	employeeIDs = dedupe(employeeIDs)
	if len(employeeIDs) == 0 {
		return nil, fmt.Errorf("%w: employee ids are required", domain.ErrInvalidInput)
	}

	dept, err := s.departments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	found, err := s.users.FindByIDs(ctx, employeeIDs)
	if err != nil {
		return nil, err
	}
	if len(found) != len(employeeIDs) {
		return nil, fmt.Errorf("%w: one or more employee ids are invalid", domain.ErrInvalidInput)
	}

	roster := unionRoster(dept.Employees, employeeIDs)

	if err := s.departments.PullEmployees(ctx, employeeIDs, id); err != nil {
		return nil, fmt.Errorf("evict prior memberships: %w", err)
	}
	if err := s.departments.SetEmployees(ctx, id, roster); err != nil {
		return nil, err
	}
	if err := s.users.SetDepartment(ctx, employeeIDs, id); err != nil {
		return nil, fmt.Errorf("update employee references: %w", err)
	}

	dept.Employees = roster
	s.logger.Info().Str("department_id", id).Int("assigned", len(employeeIDs)).Int("roster", len(roster)).Msg("employees assigned")
	return dept, nil
}

// List returns one 1-indexed page of departments with rosters expanded to
// minimal projections. Out-of-range pages yield an empty page, not an error.
func (s *DepartmentService) List(ctx context.Context, page int) (*ports.DepartmentPage, error) {
	if page < 1 {
		page = 1
	}

	total, err := s.departments.Count(ctx)
	if err != nil {
		return nil, err
	}

	depts, err := s.departments.List(ctx, (page-1)*DefaultPageSize, DefaultPageSize)
	if err != nil {
		return nil, err
	}

	views := make([]*domain.DepartmentView, 0, len(depts))
	for _, dept := range depts {
		refs, err := expandRoster(ctx, s.users, dept)
		if err != nil {
			return nil, err
		}
		views = append(views, &domain.DepartmentView{
			ID:             dept.ID,
			DepartmentName: dept.DepartmentName,
			CategoryName:   dept.CategoryName,
			Location:       dept.Location,
			Salary:         dept.Salary,
			Employees:      refs,
		})
	}

	totalPages := int((total + DefaultPageSize - 1) / DefaultPageSize)

	return &ports.DepartmentPage{
		Departments: views,
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalItems:  total,
	}, nil
}

// unionRoster merges ids into roster preserving existing order; duplicates
// collapse, so re-assigning an existing member is a no-op.
func unionRoster(roster, ids []string) []string {
	seen := make(map[string]struct{}, len(roster)+len(ids))
	merged := make([]string, 0, len(roster)+len(ids))
	for _, id := range roster {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		merged = append(merged, id)
	}
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		merged = append(merged, id)
	}
	return merged
}

// expandRoster resolves a department's roster to minimal projections in roster
// order. Ids that no longer resolve to a user are skipped: roster reads treat
// the roster side as authoritative and must tolerate one-sided references.
func expandRoster(ctx context.Context, users ports.UserRepository, dept *domain.Department) ([]domain.EmployeeRef, error) {
	if len(dept.Employees) == 0 {
		return []domain.EmployeeRef{}, nil
	}

	resolved, err := users.FindByIDs(ctx, dept.Employees)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*domain.User, len(resolved))
	for _, u := range resolved {
		byID[u.ID] = u
	}

	refs := make([]domain.EmployeeRef, 0, len(dept.Employees))
	for _, id := range dept.Employees {
		if u, ok := byID[id]; ok {
			refs = append(refs, u.Ref())
		}
	}
	return refs, nil
}

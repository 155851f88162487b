package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/staffdir/directory-api/internal/core/domain"
	"github.com/staffdir/directory-api/internal/core/ports"
)

func newDeptService(depts *memDeptRepo, users *memUserRepo) *DepartmentService {
	return NewDepartmentService(depts, users, zerolog.Nop())
}

func seedUser(t *testing.T, repo *memUserRepo, first, last string) *domain.User {
	t.Helper()
	user, err := repo.Create(context.Background(), &domain.User{
		FirstName: first,
		LastName:  last,
		Email:     fmt.Sprintf("%s.%s@example.com", first, last),
		Role:      domain.RoleEmployee,
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func seedDept(t *testing.T, svc *DepartmentService, name, category, location string) *domain.Department {
	t.Helper()
	dept, err := svc.Create(context.Background(), ports.CreateDepartmentInput{
		DepartmentName: name,
		CategoryName:   category,
		Location:       location,
		Salary:         50000,
	})
	if err != nil {
		t.Fatalf("seed department: %v", err)
	}
	return dept
}

func TestDepartmentService_Create_Validation(t *testing.T) {
	svc := newDeptService(newMemDeptRepo(), newMemUserRepo())

	_, err := svc.Create(context.Background(), ports.CreateDepartmentInput{CategoryName: "IT", Location: "Austin"})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing name, got %v", err)
	}

	_, err = svc.Create(context.Background(), ports.CreateDepartmentInput{
		DepartmentName: "Platform", CategoryName: "IT", Location: "Austin", Salary: -1,
	})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative salary, got %v", err)
	}
}

func TestDepartmentService_Update_EmptyPayload(t *testing.T) {
	svc := newDeptService(newMemDeptRepo(), newMemUserRepo())
	dept := seedDept(t, svc, "Platform", "IT", "Austin")

	if _, err := svc.Update(context.Background(), dept.ID, map[string]any{}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty payload, got %v", err)
	}
}

func TestDepartmentService_Update_RejectsUnknownField(t *testing.T) {
	svc := newDeptService(newMemDeptRepo(), newMemUserRepo())
	dept := seedDept(t, svc, "Platform", "IT", "Austin")

	_, err := svc.Update(context.Background(), dept.ID, map[string]any{"employees": []string{"u1"}})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for roster write via update, got %v", err)
	}
}

func TestDepartmentService_Update_RejectsWrongValueTypes(t *testing.T) {
	depts := newMemDeptRepo()
	svc := newDeptService(depts, newMemUserRepo())
	dept := seedDept(t, svc, "Platform", "IT", "Austin")

	cases := []map[string]any{
		{"salary": "high"},
		{"salary": -1.0},
		{"departmentName": 42.0},
		{"location": ""},
		{"categoryName": []any{"IT"}},
	}
	for _, updates := range cases {
		if _, err := svc.Update(context.Background(), dept.ID, updates); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("%v: expected ErrInvalidInput, got %v", updates, err)
		}
	}

	stored, err := depts.FindByID(context.Background(), dept.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if stored.Salary != 50000 || stored.DepartmentName != "Platform" {
		t.Fatalf("rejected update reached storage: %+v", stored)
	}
}

func TestDepartmentService_Update_NormalizesIntegerSalary(t *testing.T) {
	svc := newDeptService(newMemDeptRepo(), newMemUserRepo())
	dept := seedDept(t, svc, "Platform", "IT", "Austin")

	updated, err := svc.Update(context.Background(), dept.ID, map[string]any{"salary": 80000})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Salary != 80000 {
		t.Fatalf("expected salary 80000, got %v", updated.Salary)
	}
}

func TestDepartmentService_Update_PartialMerge(t *testing.T) {
	svc := newDeptService(newMemDeptRepo(), newMemUserRepo())
	dept := seedDept(t, svc, "Platform", "IT", "Austin")

	updated, err := svc.Update(context.Background(), dept.ID, map[string]any{"location": "Boston"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Location != "Boston" {
		t.Fatalf("expected location updated, got %q", updated.Location)
	}
	if updated.DepartmentName != "Platform" || updated.CategoryName != "IT" {
		t.Fatalf("expected untouched fields preserved, got %+v", updated)
	}
}

func TestDepartmentService_Update_NotFound(t *testing.T) {
	svc := newDeptService(newMemDeptRepo(), newMemUserRepo())

	if _, err := svc.Update(context.Background(), "missing", map[string]any{"location": "Boston"}); !errors.Is(err, domain.ErrDepartmentNotFound) {
		t.Fatalf("expected ErrDepartmentNotFound, got %v", err)
	}
}

func TestDepartmentService_Assign_SetSemantics(t *testing.T) {
	users := newMemUserRepo()
	depts := newMemDeptRepo()
	svc := newDeptService(depts, users)

	dept := seedDept(t, svc, "Platform", "IT", "Austin")
	a := seedUser(t, users, "Ann", "Archer")
	b := seedUser(t, users, "Bob", "Baker")

	first, err := svc.Assign(context.Background(), dept.ID, []string{a.ID, b.ID, a.ID})
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if len(first.Employees) != 2 {
		t.Fatalf("expected duplicates collapsed, got %v", first.Employees)
	}

	// Idempotence: assigning the same set again yields the same roster.
	second, err := svc.Assign(context.Background(), dept.ID, []string{a.ID, b.ID})
	if err != nil {
		t.Fatalf("re-assign: %v", err)
	}
	if len(second.Employees) != 2 {
		t.Fatalf("expected idempotent roster, got %v", second.Employees)
	}

	for _, id := range []string{a.ID, b.ID} {
		u, _ := users.FindByID(context.Background(), id)
		if u.DepartmentID != dept.ID {
			t.Fatalf("expected back-reference %s on user %s, got %q", dept.ID, id, u.DepartmentID)
		}
	}
}

func TestDepartmentService_Assign_NoPartialAssignment(t *testing.T) {
	users := newMemUserRepo()
	depts := newMemDeptRepo()
	svc := newDeptService(depts, users)

	dept := seedDept(t, svc, "Platform", "IT", "Austin")
	a := seedUser(t, users, "Ann", "Archer")

	_, err := svc.Assign(context.Background(), dept.ID, []string{a.ID, "missing"})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	// Nothing may have been applied.
	got, _ := depts.FindByID(context.Background(), dept.ID)
	if len(got.Employees) != 0 {
		t.Fatalf("expected roster untouched, got %v", got.Employees)
	}
	u, _ := users.FindByID(context.Background(), a.ID)
	if u.DepartmentID != "" {
		t.Fatalf("expected no back-reference, got %q", u.DepartmentID)
	}
}

func TestDepartmentService_Assign_DepartmentNotFound(t *testing.T) {
	users := newMemUserRepo()
	svc := newDeptService(newMemDeptRepo(), users)
	a := seedUser(t, users, "Ann", "Archer")

	if _, err := svc.Assign(context.Background(), "missing", []string{a.ID}); !errors.Is(err, domain.ErrDepartmentNotFound) {
		t.Fatalf("expected ErrDepartmentNotFound, got %v", err)
	}
}

func TestDepartmentService_Assign_ReassignmentEvictsPriorRoster(t *testing.T) {
	users := newMemUserRepo()
	depts := newMemDeptRepo()
	svc := newDeptService(depts, users)

	first := seedDept(t, svc, "Platform", "IT", "Austin")
	second := seedDept(t, svc, "Revenue", "Sales", "Atlanta")
	a := seedUser(t, users, "Ann", "Archer")

	if _, err := svc.Assign(context.Background(), first.ID, []string{a.ID}); err != nil {
		t.Fatalf("first assign: %v", err)
	}
	if _, err := svc.Assign(context.Background(), second.ID, []string{a.ID}); err != nil {
		t.Fatalf("second assign: %v", err)
	}

	prior, _ := depts.FindByID(context.Background(), first.ID)
	if len(prior.Employees) != 0 {
		t.Fatalf("expected employee evicted from prior roster, got %v", prior.Employees)
	}
	current, _ := depts.FindByID(context.Background(), second.ID)
	if len(current.Employees) != 1 || current.Employees[0] != a.ID {
		t.Fatalf("expected employee on new roster, got %v", current.Employees)
	}
	u, _ := users.FindByID(context.Background(), a.ID)
	if u.DepartmentID != second.ID {
		t.Fatalf("expected back-reference moved, got %q", u.DepartmentID)
	}
}

func TestDepartmentService_Delete_ClearsBackReferences(t *testing.T) {
	users := newMemUserRepo()
	depts := newMemDeptRepo()
	svc := newDeptService(depts, users)

	dept := seedDept(t, svc, "Platform", "IT", "Austin")
	a := seedUser(t, users, "Ann", "Archer")
	b := seedUser(t, users, "Bob", "Baker")

	if _, err := svc.Assign(context.Background(), dept.ID, []string{a.ID, b.ID}); err != nil {
		t.Fatalf("assign: %v", err)
	}

	deleted, err := svc.Delete(context.Background(), dept.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted.ID != dept.ID {
		t.Fatalf("expected deleted document echoed, got %+v", deleted)
	}

	for _, id := range []string{a.ID, b.ID} {
		u, _ := users.FindByID(context.Background(), id)
		if u.DepartmentID != "" {
			t.Fatalf("expected back-reference cleared on %s, got %q", id, u.DepartmentID)
		}
	}
}

func TestDepartmentService_Delete_NotFound(t *testing.T) {
	svc := newDeptService(newMemDeptRepo(), newMemUserRepo())

	if _, err := svc.Delete(context.Background(), "missing"); !errors.Is(err, domain.ErrDepartmentNotFound) {
		t.Fatalf("expected ErrDepartmentNotFound, got %v", err)
	}
}

func TestDepartmentService_List_Pagination(t *testing.T) {
	users := newMemUserRepo()
	depts := newMemDeptRepo()
	svc := newDeptService(depts, users)

	for i := 0; i < 12; i++ {
		seedDept(t, svc, fmt.Sprintf("Dept %02d", i), "IT", "Austin")
	}

	page, err := svc.List(context.Background(), 1)
	if err != nil {
		t.Fatalf("list page 1: %v", err)
	}
	if len(page.Departments) != 5 {
		t.Fatalf("expected 5 items on page 1, got %d", len(page.Departments))
	}
	if page.TotalPages != 3 || page.TotalItems != 12 || page.CurrentPage != 1 {
		t.Fatalf("unexpected pagination: %+v", page)
	}

	last, err := svc.List(context.Background(), 3)
	if err != nil {
		t.Fatalf("list page 3: %v", err)
	}
	if len(last.Departments) != 2 {
		t.Fatalf("expected 2 items on page 3, got %d", len(last.Departments))
	}

	empty, err := svc.List(context.Background(), 99)
	if err != nil {
		t.Fatalf("out-of-range page must not error: %v", err)
	}
	if len(empty.Departments) != 0 {
		t.Fatalf("expected empty page, got %d items", len(empty.Departments))
	}
	if empty.TotalPages != 3 {
		t.Fatalf("expected totalPages preserved, got %d", empty.TotalPages)
	}
}

func TestDepartmentService_List_ExpandsRosterProjections(t *testing.T) {
	users := newMemUserRepo()
	depts := newMemDeptRepo()
	svc := newDeptService(depts, users)

	dept := seedDept(t, svc, "Platform", "IT", "Austin")
	a := seedUser(t, users, "Ann", "Archer")
	if _, err := svc.Assign(context.Background(), dept.ID, []string{a.ID}); err != nil {
		t.Fatalf("assign: %v", err)
	}

	// A roster entry whose user no longer resolves must be tolerated.
	_ = depts.SetEmployees(context.Background(), dept.ID, []string{a.ID, "ghost"})

	page, err := svc.List(context.Background(), 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	roster := page.Departments[0].Employees
	if len(roster) != 1 {
		t.Fatalf("expected dangling entry skipped, got %+v", roster)
	}
	want := domain.EmployeeRef{ID: a.ID, FirstName: "Ann", LastName: "Archer", Email: "Ann.Archer@example.com"}
	if roster[0] != want {
		t.Fatalf("unexpected projection: %+v", roster[0])
	}
}

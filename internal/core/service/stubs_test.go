package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/staffdir/directory-api/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories mirroring the Mongo implementations' semantics
// ---------------------------------------------------------------------------

type memUserRepo struct {
	users map[string]*domain.User // keyed by id
	order []string
	seq   int
	err   error // if set, every call fails with this error
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailExists
		}
	}
	r.seq++
	created := cloneUser(user)
	created.ID = fmt.Sprintf("u%d", r.seq)
	r.users[created.ID] = cloneUser(created)
	r.order = append(r.order, created.ID)
	return created, nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, id := range r.order {
		if r.users[id].Email == email {
			return cloneUser(r.users[id]), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *memUserRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	found := make([]*domain.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			found = append(found, cloneUser(u))
		}
	}
	return found, nil
}

func (r *memUserRepo) UpdateRefreshToken(_ context.Context, id, token string) error {
	if r.err != nil {
		return r.err
	}
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.RefreshToken = token
	return nil
}

func (r *memUserRepo) SetDepartment(_ context.Context, ids []string, departmentID string) error {
	if r.err != nil {
		return r.err
	}
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			u.DepartmentID = departmentID
		}
	}
	return nil
}

func (r *memUserRepo) ClearDepartment(_ context.Context, departmentID string) error {
	if r.err != nil {
		return r.err
	}
	for _, u := range r.users {
		if u.DepartmentID == departmentID {
			u.DepartmentID = ""
		}
	}
	return nil
}

type memDeptRepo struct {
	depts map[string]*domain.Department
	order []string
	seq   int
}

func newMemDeptRepo() *memDeptRepo {
	return &memDeptRepo{depts: make(map[string]*domain.Department)}
}

func cloneDept(d *domain.Department) *domain.Department {
	clone := *d
	clone.Employees = append([]string(nil), d.Employees...)
	if clone.Employees == nil {
		clone.Employees = []string{}
	}
	return &clone
}

func (r *memDeptRepo) Create(_ context.Context, dept *domain.Department) (*domain.Department, error) {
	r.seq++
	created := cloneDept(dept)
	created.ID = fmt.Sprintf("d%d", r.seq)
	r.depts[created.ID] = cloneDept(created)
	r.order = append(r.order, created.ID)
	return created, nil
}

func (r *memDeptRepo) FindByID(_ context.Context, id string) (*domain.Department, error) {
	d, ok := r.depts[id]
	if !ok {
		return nil, domain.ErrDepartmentNotFound
	}
	return cloneDept(d), nil
}

func (r *memDeptRepo) Update(_ context.Context, id string, fields map[string]any) (*domain.Department, error) {
	d, ok := r.depts[id]
	if !ok {
		return nil, domain.ErrDepartmentNotFound
	}
	for field, value := range fields {
		switch field {
		case "departmentName":
			d.DepartmentName = value.(string)
		case "categoryName":
			d.CategoryName = value.(string)
		case "location":
			d.Location = value.(string)
		case "salary":
			d.Salary = value.(float64)
		}
	}
	return cloneDept(d), nil
}

func (r *memDeptRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.depts[id]; !ok {
		return domain.ErrDepartmentNotFound
	}
	delete(r.depts, id)
	for i, got := range r.order {
		if got == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *memDeptRepo) List(_ context.Context, skip, limit int) ([]*domain.Department, error) {
	out := make([]*domain.Department, 0, limit)
	if skip >= len(r.order) {
		return out, nil
	}
	end := skip + limit
	if end > len(r.order) {
		end = len(r.order)
	}
	for _, id := range r.order[skip:end] {
		out = append(out, cloneDept(r.depts[id]))
	}
	return out, nil
}

func (r *memDeptRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.order)), nil
}

func (r *memDeptRepo) SetEmployees(_ context.Context, id string, employees []string) error {
	d, ok := r.depts[id]
	if !ok {
		return domain.ErrDepartmentNotFound
	}
	d.Employees = append([]string(nil), employees...)
	return nil
}

func (r *memDeptRepo) PullEmployees(_ context.Context, employeeIDs []string, exceptID string) error {
	pulled := make(map[string]struct{}, len(employeeIDs))
	for _, id := range employeeIDs {
		pulled[id] = struct{}{}
	}
	for id, d := range r.depts {
		if id == exceptID {
			continue
		}
		kept := d.Employees[:0]
		for _, emp := range d.Employees {
			if _, ok := pulled[emp]; !ok {
				kept = append(kept, emp)
			}
		}
		d.Employees = kept
	}
	return nil
}

func (r *memDeptRepo) FindByCategory(_ context.Context, category string) ([]*domain.Department, error) {
	out := make([]*domain.Department, 0)
	for _, id := range r.order {
		if r.depts[id].CategoryName == category {
			out = append(out, cloneDept(r.depts[id]))
		}
	}
	return out, nil
}

func (r *memDeptRepo) FindByCategoryAndLocationPrefix(_ context.Context, category, prefix string) ([]*domain.Department, error) {
	out := make([]*domain.Department, 0)
	for _, id := range r.order {
		d := r.depts[id]
		if d.CategoryName != category {
			continue
		}
		if !strings.HasPrefix(strings.ToLower(d.Location), strings.ToLower(prefix)) {
			continue
		}
		out = append(out, cloneDept(d))
	}
	return out, nil
}

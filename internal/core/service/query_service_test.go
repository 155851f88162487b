package service

import (
	"context"
	"testing"
)

func TestQueryService_ITEmployeesInLocationA(t *testing.T) {
	users := newMemUserRepo()
	depts := newMemDeptRepo()
	deptSvc := newDeptService(depts, users)
	svc := NewQueryService(depts, users)

	austin := seedDept(t, deptSvc, "Platform", "IT", "Austin")
	boston := seedDept(t, deptSvc, "Infra", "IT", "Boston")
	atlanta := seedDept(t, deptSvc, "Revenue", "Sales", "Atlanta")

	inAustin := seedUser(t, users, "Ann", "Archer")
	inBoston := seedUser(t, users, "Bob", "Baker")
	inAtlanta := seedUser(t, users, "Cara", "Cole")

	mustAssign(t, deptSvc, austin.ID, inAustin.ID)
	mustAssign(t, deptSvc, boston.ID, inBoston.ID)
	mustAssign(t, deptSvc, atlanta.ID, inAtlanta.ID)

	got, err := svc.ITEmployeesInLocationA(context.Background())
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected only the Austin IT employee, got %+v", got)
	}
	if got[0].ID != inAustin.ID {
		t.Fatalf("expected %s, got %s", inAustin.ID, got[0].ID)
	}
}

func TestQueryService_ITEmployeesInLocationA_PrefixIsCaseInsensitive(t *testing.T) {
	users := newMemUserRepo()
	depts := newMemDeptRepo()
	deptSvc := newDeptService(depts, users)
	svc := NewQueryService(depts, users)

	lower := seedDept(t, deptSvc, "Platform", "IT", "austin")
	emp := seedUser(t, users, "Ann", "Archer")
	mustAssign(t, deptSvc, lower.ID, emp.ID)

	got, err := svc.ITEmployeesInLocationA(context.Background())
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected lowercase location matched, got %+v", got)
	}
}

func TestQueryService_SalesEmployeesSorted(t *testing.T) {
	users := newMemUserRepo()
	depts := newMemDeptRepo()
	deptSvc := newDeptService(depts, users)
	svc := NewQueryService(depts, users)

	east := seedDept(t, deptSvc, "East Sales", "Sales", "Atlanta")
	west := seedDept(t, deptSvc, "West Sales", "Sales", "Denver")
	it := seedDept(t, deptSvc, "Platform", "IT", "Austin")

	ann := seedUser(t, users, "Ann", "Archer")
	zoe := seedUser(t, users, "Zoe", "Zhang")
	mia := seedUser(t, users, "Mia", "Moss")
	bob := seedUser(t, users, "Bob", "Baker")
	tec := seedUser(t, users, "Ted", "Tech")

	mustAssign(t, deptSvc, east.ID, ann.ID, zoe.ID, mia.ID)
	mustAssign(t, deptSvc, west.ID, bob.ID)
	mustAssign(t, deptSvc, it.ID, tec.ID)

	got, err := svc.SalesEmployeesSorted(context.Background())
	if err != nil {
		t.Fatalf("query: %v", err)
	}

	// Department iteration order, each roster sorted by first name descending.
	wantFirstNames := []string{"Zoe", "Mia", "Ann", "Bob"}
	if len(got) != len(wantFirstNames) {
		t.Fatalf("expected %d employees, got %+v", len(wantFirstNames), got)
	}
	for i, want := range wantFirstNames {
		if got[i].FirstName != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, got[i].FirstName)
		}
	}
}

func TestQueryService_EmptyResult(t *testing.T) {
	users := newMemUserRepo()
	depts := newMemDeptRepo()
	svc := NewQueryService(depts, users)

	got, err := svc.SalesEmployeesSorted(context.Background())
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %+v", got)
	}
}

func mustAssign(t *testing.T, svc *DepartmentService, deptID string, employeeIDs ...string) {
	t.Helper()
	if _, err := svc.Assign(context.Background(), deptID, employeeIDs); err != nil {
		t.Fatalf("assign to %s: %v", deptID, err)
	}
}

package domain

// Department groups employees under a named organizational unit.
//
// Employees holds user ids with set semantics. Every id must point to a User
// whose DepartmentID equals this department's ID; the membership engine is the
// only writer of either side of that relationship.
type Department struct {
	ID             string   `json:"id"`
	DepartmentName string   `json:"departmentName"`
	CategoryName   string   `json:"categoryName"`
	Location       string   `json:"location"`
	Salary         float64  `json:"salary"`
	Employees      []string `json:"employees"`
}

// EmployeeRef is the minimal user projection exposed on roster reads.
type EmployeeRef struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// DepartmentView is a department with its roster expanded to projections.
type DepartmentView struct {
	ID             string        `json:"id"`
	DepartmentName string        `json:"departmentName"`
	CategoryName   string        `json:"categoryName"`
	Location       string        `json:"location"`
	Salary         float64       `json:"salary"`
	Employees      []EmployeeRef `json:"employees"`
}

package domain

import "time"

const (
	RoleManager  = "manager"
	RoleEmployee = "employee"
)

// ValidRole reports whether role names a known role.
func ValidRole(role string) bool {
	return role == RoleManager || role == RoleEmployee
}

// User models a member of the directory. PasswordHash and RefreshToken are
// never serialized, so every read path excludes them.
type User struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Gender       string    `json:"gender,omitempty"`
	Hobbies      []string  `json:"hobbies,omitempty"`
	Role         string    `json:"role"`
	DepartmentID string    `json:"departmentId,omitempty"`
	RefreshToken string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Ref returns the minimal projection embedded in roster reads.
func (u *User) Ref() EmployeeRef {
	return EmployeeRef{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
	}
}

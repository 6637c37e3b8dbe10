package user

type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
	RoleHR       Role = "hr"
	RoleAdmin    Role = "company_admin"
)

// IsHR reports whether the role may decide HR approval stages.
func (r Role) IsHR() bool {
	return r == RoleHR || r == RoleAdmin
}

// IsAdmin reports whether the role may decide management approval stages and
// run company-wide operations (accrual runs, period closure).
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

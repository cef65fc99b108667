package user

import "slices"

type Role string

const (
	RoleEmployee Role = "employee" // Records attendance and requests leave
	RoleManager  Role = "manager"  // Reviews leave for their own department
	RoleAdmin    Role = "admin"    // Reviews leave across the organization
)

// ParseRole maps a claim value onto a known role.
func ParseRole(s string) (Role, bool) {
	switch r := Role(s); r {
	case RoleEmployee, RoleManager, RoleAdmin:
		return r, true
	}
	return "", false
}

// ReviewScope is how far a principal's reviewing authority reaches.
type ReviewScope int

const (
	ScopeNone ReviewScope = iota
	ScopeDepartment
	ScopeOrganization
)

func (s ReviewScope) String() string {
	switch s {
	case ScopeDepartment:
		return "department"
	case ScopeOrganization:
		return "organization"
	default:
		return "none"
	}
}

// Principal is the resolved identity of the caller. It is always passed to
// services explicitly.
type Principal struct {
	EmployeeID   string
	DepartmentID *int64
	Roles        []Role
}

// HasRole checks if the principal holds role
func (p Principal) HasRole(role Role) bool {
	return slices.Contains(p.Roles, role)
}

// ReviewScope returns the widest scope granted by the principal's roles.
func (p Principal) ReviewScope() ReviewScope {
	switch {
	case p.HasRole(RoleAdmin):
		return ScopeOrganization
	case p.HasRole(RoleManager):
		return ScopeDepartment
	default:
		return ScopeNone
	}
}

// CanReview reports whether reviewer may decide on work authored by an
// employee of authorDepartmentID. Two missing departments count as equal.
func CanReview(reviewer Principal, authorDepartmentID *int64) bool {
	switch reviewer.ReviewScope() {
	case ScopeOrganization:
		return true
	case ScopeDepartment:
		return sameDepartment(reviewer.DepartmentID, authorDepartmentID)
	default:
		return false
	}
}

func sameDepartment(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

package employee

import (
	"time"

	"github.com/cmlabs-hris/leave-portal/internal/domain/user"
)

// Employee is owned by the identity side of the portal. The leave and
// attendance engines only read ID and DepartmentID.
type Employee struct {
	ID           string
	FullName     string
	Email        string
	PasswordHash string
	DepartmentID *int64
	Roles        []user.Role
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Join
	DepartmentName *string
}

// Principal converts the employee into the identity passed to services.
func (e Employee) Principal() user.Principal {
	return user.Principal{
		EmployeeID:   e.ID,
		DepartmentID: e.DepartmentID,
		Roles:        e.Roles,
	}
}

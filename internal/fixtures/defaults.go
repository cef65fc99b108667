package fixtures

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/leave-portal/internal/domain/department"
	"github.com/cmlabs-hris/leave-portal/internal/domain/employee"
	"github.com/cmlabs-hris/leave-portal/internal/domain/leave"
	"github.com/cmlabs-hris/leave-portal/internal/domain/user"
)

// DefaultPassword is the password of every seeded account.
const DefaultPassword = "Pass@123"

// ==========================================
// SEEDED DATA RESULT
// ==========================================

// SeededDataIDs holds IDs of all seeded default data
type SeededDataIDs struct {
	// Department IDs by name
	DepartmentIDs map[string]int64 // e.g., "Engineering" -> 2

	// Employee IDs by email
	EmployeeIDs map[string]string

	// Number of default balances created by this run
	BalancesCreated int
}

// NewSeededDataIDs creates a new SeededDataIDs with initialized maps
func NewSeededDataIDs() *SeededDataIDs {
	return &SeededDataIDs{
		DepartmentIDs: make(map[string]int64),
		EmployeeIDs:   make(map[string]string),
	}
}

// ==========================================
// DEFAULT DEPARTMENTS
// ==========================================

// GetDefaultDepartments returns the departments of a fresh portal
func GetDefaultDepartments() []string {
	return []string{"Human Resources", "Engineering", "Finance"}
}

// ==========================================
// DEFAULT USERS
// ==========================================

type DefaultUser struct {
	FullName   string
	Email      string
	Department string
	Roles      []user.Role
}

// GetDefaultUsers returns one account per role plus a second employee
func GetDefaultUsers() []DefaultUser {
	return []DefaultUser{
		{FullName: "Portal Admin", Email: "admin@elp.local", Department: "Human Resources", Roles: []user.Role{user.RoleAdmin}},
		{FullName: "Engineering Manager", Email: "manager@elp.local", Department: "Engineering", Roles: []user.Role{user.RoleManager}},
		{FullName: "Employee One", Email: "employee1@elp.local", Department: "Engineering", Roles: []user.Role{user.RoleEmployee}},
		{FullName: "Employee Two", Email: "employee2@elp.local", Department: "Engineering", Roles: []user.Role{user.RoleEmployee}},
	}
}

// ==========================================
// SEEDER
// ==========================================

// Seeder writes the default data. Running it twice changes nothing.
type Seeder struct {
	Departments  department.DepartmentRepository
	Employees    employee.EmployeeRepository
	Balances     leave.BalanceService
	HashPassword func(string) (string, error)
}

func (s *Seeder) Seed(ctx context.Context) (*SeededDataIDs, error) {
	ids := NewSeededDataIDs()

	for _, name := range GetDefaultDepartments() {
		dept, err := s.Departments.Ensure(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to seed department %q: %w", name, err)
		}
		ids.DepartmentIDs[name] = dept.ID
	}

	hash, err := s.HashPassword(DefaultPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash default password: %w", err)
	}

	for _, u := range GetDefaultUsers() {
		deptID := ids.DepartmentIDs[u.Department]
		emp, err := s.Employees.Create(ctx, employee.Employee{
			FullName:     u.FullName,
			Email:        u.Email,
			PasswordHash: hash,
			DepartmentID: &deptID,
			Roles:        u.Roles,
		})
		if errors.Is(err, employee.ErrEmailExists) {
			emp, err = s.Employees.GetByEmail(ctx, u.Email)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to seed user %q: %w", u.Email, err)
		}
		ids.EmployeeIDs[u.Email] = emp.ID

		if _, created, err := s.Balances.ProvisionDefaultBalance(ctx, emp.ID); err != nil {
			return nil, fmt.Errorf("failed to seed balance for %q: %w", u.Email, err)
		} else if created {
			ids.BalancesCreated++
		}
	}

	slog.Info("Seed completed", "departments", len(ids.DepartmentIDs), "employees", len(ids.EmployeeIDs), "balances_created", ids.BalancesCreated)
	return ids, nil
}

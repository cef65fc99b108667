package postgresql_test

import (
	"context"
	"os"
	"testing"

	"github.com/cmlabs-hris/leave-portal/internal/domain/employee"
	"github.com/cmlabs-hris/leave-portal/internal/domain/user"
	"github.com/cmlabs-hris/leave-portal/internal/pkg/database"
	"github.com/cmlabs-hris/leave-portal/internal/repository/postgresql"
	"github.com/stretchr/testify/require"
)

// newTestDB connects to TEST_DATABASE_URL, migrates the schema and empties
// every table. Tests are skipped when the variable is unset.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, postgresql.Migrate(ctx, db))
	require.NoError(t, postgresql.Truncate(ctx, db))
	return db
}

// createTestEmployee inserts an employee in a fresh department.
func createTestEmployee(t *testing.T, db *database.DB, email, departmentName string, roles ...user.Role) employee.Employee {
	t.Helper()
	ctx := context.Background()

	var deptID *int64
	if departmentName != "" {
		dept, err := postgresql.NewDepartmentRepository(db).Ensure(ctx, departmentName)
		require.NoError(t, err)
		deptID = &dept.ID
	}

	e, err := postgresql.NewEmployeeRepository(db).Create(ctx, employee.Employee{
		FullName:     email,
		Email:        email,
		PasswordHash: "hash",
		DepartmentID: deptID,
		Roles:        roles,
	})
	require.NoError(t, err)
	return e
}

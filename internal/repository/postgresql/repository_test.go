package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/leave-portal/internal/domain/attendance"
	"github.com/cmlabs-hris/leave-portal/internal/domain/employee"
	"github.com/cmlabs-hris/leave-portal/internal/domain/leave"
	"github.com/cmlabs-hris/leave-portal/internal/domain/user"
	"github.com/cmlabs-hris/leave-portal/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestEmployeeRepository(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(db)

	created := createTestEmployee(t, db, "Manager@elp.local", "Engineering", user.RoleManager, user.RoleEmployee)

	t.Run("get by email ignores case", func(t *testing.T) {
		got, err := repo.GetByEmail(ctx, "manager@ELP.local")
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.ElementsMatch(t, []user.Role{user.RoleManager, user.RoleEmployee}, got.Roles)
		require.NotNil(t, got.DepartmentName)
		assert.Equal(t, "Engineering", *got.DepartmentName)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := repo.Create(ctx, employee.Employee{FullName: "x", Email: "Manager@elp.local", PasswordHash: "h"})
		assert.ErrorIs(t, err, employee.ErrEmailExists)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := repo.GetByID(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	})
}

func TestAttendanceRepository_OneEntryPerDay(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(db)
	emp := createTestEmployee(t, db, "employee1@elp.local", "Engineering", user.RoleEmployee)

	checkIn := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	entry, err := repo.Create(ctx, attendance.Entry{
		EmployeeID:  emp.ID,
		WorkDate:    date("2024-06-10"),
		CheckIn:     &checkIn,
		HoursWorked: decimal.Zero,
	})
	require.NoError(t, err)
	assert.Equal(t, attendance.StateCheckedIn, entry.State())

	_, err = repo.Create(ctx, attendance.Entry{EmployeeID: emp.ID, WorkDate: date("2024-06-10"), CheckIn: &checkIn})
	assert.ErrorIs(t, err, attendance.ErrAttendanceExists)

	checkOut := checkIn.Add(8*time.Hour + 30*time.Minute)
	closed, err := repo.CloseEntry(ctx, entry.ID, checkOut, decimal.NewNullDecimal(decimal.RequireFromString("8.5")))
	require.NoError(t, err)
	assert.Equal(t, "8.50", closed.HoursWorked.StringFixed(2))
	assert.Equal(t, attendance.StateCheckedOut, closed.State())

	_, err = repo.CloseEntry(ctx, entry.ID, checkOut.Add(time.Hour), decimal.NewNullDecimal(decimal.NewFromInt(9)))
	assert.ErrorIs(t, err, attendance.ErrAttendanceAlreadyClosed)

	got, err := repo.GetByEmployeeAndDate(ctx, emp.ID, date("2024-06-10"))
	require.NoError(t, err)
	assert.True(t, got.CheckOut.Equal(checkOut))
	assert.Equal(t, "8.5", got.HoursWorked.String())
}

func TestAttendanceRepository_CloseWithoutHoursKeepsZero(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(db)
	emp := createTestEmployee(t, db, "employee1@elp.local", "", user.RoleEmployee)

	checkIn := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	entry, err := repo.Create(ctx, attendance.Entry{EmployeeID: emp.ID, WorkDate: date("2024-06-10"), CheckIn: &checkIn})
	require.NoError(t, err)

	closed, err := repo.CloseEntry(ctx, entry.ID, checkIn.Add(-time.Hour), decimal.NullDecimal{})
	require.NoError(t, err)
	assert.True(t, closed.HoursWorked.IsZero())
	assert.NotNil(t, closed.CheckOut)
}

func TestLeaveRequestRepository(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewLeaveRequestRepository(db)

	author := createTestEmployee(t, db, "employee1@elp.local", "Engineering", user.RoleEmployee)
	other := createTestEmployee(t, db, "finance@elp.local", "Finance", user.RoleEmployee)
	manager := createTestEmployee(t, db, "manager@elp.local", "Engineering", user.RoleManager)

	req, err := repo.Create(ctx, leave.Request{
		EmployeeID: author.ID,
		StartDate:  date("2024-06-10"),
		EndDate:    date("2024-06-12"),
		Type:       leave.TypeCasual,
		Reason:     "family trip",
		Status:     leave.StatusPending,
	})
	require.NoError(t, err)
	_, err = repo.Create(ctx, leave.Request{
		EmployeeID: other.ID,
		StartDate:  date("2024-06-01"),
		EndDate:    date("2024-06-01"),
		Type:       leave.TypeSick,
		Reason:     "flu",
		Status:     leave.StatusPending,
	})
	require.NoError(t, err)

	t.Run("overlap is inclusive", func(t *testing.T) {
		overlap, err := repo.HasOverlap(ctx, author.ID, leave.DateRange{Start: date("2024-06-12"), End: date("2024-06-14")})
		require.NoError(t, err)
		assert.True(t, overlap)

		overlap, err = repo.HasOverlap(ctx, author.ID, leave.DateRange{Start: date("2024-06-13"), End: date("2024-06-14")})
		require.NoError(t, err)
		assert.False(t, overlap)
	})

	t.Run("pending filtered by author department", func(t *testing.T) {
		pending, err := repo.ListPending(ctx, leave.PendingFilter{DepartmentID: manager.DepartmentID})
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, req.ID, pending[0].ID)
		require.NotNil(t, pending[0].EmployeeName)
		assert.Equal(t, author.FullName, *pending[0].EmployeeName)

		all, err := repo.ListPending(ctx, leave.PendingFilter{AllDepartments: true})
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.True(t, all[0].StartDate.Before(all[1].StartDate))
	})

	t.Run("decide only once", func(t *testing.T) {
		comments := "enjoy"
		decided, err := repo.Decide(ctx, req.ID, leave.DecisionUpdate{
			Status:     leave.StatusApproved,
			Comments:   &comments,
			ReviewedBy: manager.ID,
			ReviewedAt: time.Now(),
		})
		require.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, decided.Status)

		_, err = repo.Decide(ctx, req.ID, leave.DecisionUpdate{Status: leave.StatusRejected, ReviewedBy: manager.ID, ReviewedAt: time.Now()})
		assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)

		_, err = repo.Decide(ctx, "00000000-0000-0000-0000-000000000000", leave.DecisionUpdate{Status: leave.StatusRejected, ReviewedBy: manager.ID, ReviewedAt: time.Now()})
		assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
	})

	t.Run("rejected requests do not overlap", func(t *testing.T) {
		rejected, err := repo.Create(ctx, leave.Request{
			EmployeeID: other.ID,
			StartDate:  date("2024-07-01"),
			EndDate:    date("2024-07-02"),
			Type:       leave.TypeUnpaid,
			Reason:     "move",
			Status:     leave.StatusPending,
		})
		require.NoError(t, err)
		_, err = repo.Decide(ctx, rejected.ID, leave.DecisionUpdate{Status: leave.StatusRejected, ReviewedBy: manager.ID, ReviewedAt: time.Now()})
		require.NoError(t, err)

		overlap, err := repo.HasOverlap(ctx, other.ID, leave.DateRange{Start: date("2024-07-02"), End: date("2024-07-03")})
		require.NoError(t, err)
		assert.False(t, overlap)
	})
}

func TestLeaveBalanceRepository_AddUsedUpserts(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewLeaveBalanceRepository(db)
	emp := createTestEmployee(t, db, "employee1@elp.local", "Engineering", user.RoleEmployee)

	_, err := repo.GetByEmployeeAndType(ctx, emp.ID, leave.TypeSick)
	assert.ErrorIs(t, err, leave.ErrBalanceNotFound)

	b, err := repo.AddUsed(ctx, emp.ID, leave.TypeSick, 3, 12)
	require.NoError(t, err)
	assert.Equal(t, 12, b.TotalAllowed)
	assert.Equal(t, 3, b.Used)

	b, err = repo.AddUsed(ctx, emp.ID, leave.TypeSick, 11, 20)
	require.NoError(t, err)
	assert.Equal(t, 12, b.TotalAllowed)
	assert.Equal(t, 14, b.Used)
	assert.Equal(t, -2, b.Remaining())

	_, err = repo.Create(ctx, leave.Balance{EmployeeID: emp.ID, Type: leave.TypeSick, TotalAllowed: 5})
	assert.ErrorIs(t, err, leave.ErrBalanceExists)
}

func TestWithTransaction_RollsBackOnError(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewLeaveBalanceRepository(db)
	emp := createTestEmployee(t, db, "employee1@elp.local", "Engineering", user.RoleEmployee)

	errBoom := errors.New("boom")
	err := postgresql.NewTransactor(db).WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := repo.AddUsed(ctx, emp.ID, leave.TypeCasual, 2, 12); err != nil {
			return err
		}
		return errBoom
	})
	require.ErrorIs(t, err, errBoom)

	_, err = repo.GetByEmployeeAndType(ctx, emp.ID, leave.TypeCasual)
	assert.ErrorIs(t, err, leave.ErrBalanceNotFound)
}

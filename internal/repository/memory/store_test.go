package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/leave-portal/internal/domain/attendance"
	"github.com/cmlabs-hris/leave-portal/internal/domain/employee"
	"github.com/cmlabs-hris/leave-portal/internal/domain/leave"
	"github.com/cmlabs-hris/leave-portal/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestStore_TransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	errBoom := errors.New("boom")

	err := s.WithinTransaction(ctx, func(ctx context.Context) error {
		_, err := s.LeaveBalances().AddUsed(ctx, "emp-1", leave.TypeCasual, 3, 12)
		require.NoError(t, err)
		return errBoom
	})
	assert.ErrorIs(t, err, errBoom)

	_, err = s.LeaveBalances().GetByEmployeeAndType(ctx, "emp-1", leave.TypeCasual)
	assert.ErrorIs(t, err, leave.ErrBalanceNotFound)
}

func TestStore_TransactionCommits(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	err := s.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.LeaveBalances().AddUsed(ctx, "emp-1", leave.TypeSick, 2, 12); err != nil {
			return err
		}
		// Nested calls join the outer transaction.
		return s.WithinTransaction(ctx, func(ctx context.Context) error {
			_, err := s.LeaveBalances().AddUsed(ctx, "emp-1", leave.TypeSick, 1, 12)
			return err
		})
	})
	require.NoError(t, err)

	b, err := s.LeaveBalances().GetByEmployeeAndType(ctx, "emp-1", leave.TypeSick)
	require.NoError(t, err)
	assert.Equal(t, 3, b.Used)
	assert.Equal(t, 12, b.TotalAllowed)
}

func TestAttendanceRepository_UniquePerDay(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Attendance()
	in := time.Date(2024, 6, 10, 9, 0, 0, 0, time.Local)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Create(ctx, attendance.Entry{EmployeeID: "emp-1", WorkDate: date("2024-06-10"), CheckIn: &in})
			if err == nil {
				mu.Lock()
				created++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, attendance.ErrAttendanceExists)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, created)

	entries, err := repo.ListByEmployee(ctx, "emp-1")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestAttendanceRepository_CloseEntryOnce(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Attendance()
	in := time.Date(2024, 6, 10, 9, 0, 0, 0, time.Local)
	out := in.Add(8 * time.Hour)

	e, err := repo.Create(ctx, attendance.Entry{EmployeeID: "emp-1", WorkDate: date("2024-06-10"), CheckIn: &in})
	require.NoError(t, err)

	closed, err := repo.CloseEntry(ctx, e.ID, out, nullDecimal("8"))
	require.NoError(t, err)
	assert.Equal(t, "8", closed.HoursWorked.String())

	_, err = repo.CloseEntry(ctx, e.ID, out.Add(time.Hour), nullDecimal("9"))
	assert.ErrorIs(t, err, attendance.ErrAttendanceAlreadyClosed)

	got, err := repo.GetByEmployeeAndDate(ctx, "emp-1", date("2024-06-10"))
	require.NoError(t, err)
	assert.True(t, got.CheckOut.Equal(out))
}

func TestLeaveRequestRepository_PendingFilter(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	eng, err := s.Departments().Ensure(ctx, "Engineering")
	require.NoError(t, err)
	fin, err := s.Departments().Ensure(ctx, "Finance")
	require.NoError(t, err)

	newEmployee := func(email string, dept *int64) employee.Employee {
		e, err := s.Employees().Create(ctx, employee.Employee{FullName: email, Email: email, DepartmentID: dept, Roles: []user.Role{user.RoleEmployee}})
		require.NoError(t, err)
		return e
	}
	engineer := newEmployee("eng@elp.local", &eng.ID)
	accountant := newEmployee("fin@elp.local", &fin.ID)
	drifter := newEmployee("none@elp.local", nil)

	submit := func(emp employee.Employee, start, end string) leave.Request {
		r, err := s.LeaveRequests().Create(ctx, leave.Request{
			EmployeeID: emp.ID, StartDate: date(start), EndDate: date(end), Type: leave.TypeCasual, Reason: "r",
		})
		require.NoError(t, err)
		return r
	}
	late := submit(engineer, "2024-07-01", "2024-07-02")
	early := submit(engineer, "2024-06-01", "2024-06-02")
	submit(accountant, "2024-06-05", "2024-06-05")
	orphan := submit(drifter, "2024-06-09", "2024-06-09")

	got, err := s.LeaveRequests().ListPending(ctx, leave.PendingFilter{DepartmentID: &eng.ID})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, early.ID, got[0].ID)
	assert.Equal(t, late.ID, got[1].ID)
	assert.Equal(t, "eng@elp.local", *got[0].EmployeeName)

	got, err = s.LeaveRequests().ListPending(ctx, leave.PendingFilter{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, orphan.ID, got[0].ID)

	got, err = s.LeaveRequests().ListPending(ctx, leave.PendingFilter{AllDepartments: true})
	require.NoError(t, err)
	assert.Len(t, got, 4)
}

func TestLeaveRequestRepository_DecideOnlyPending(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().LeaveRequests()

	r, err := repo.Create(ctx, leave.Request{EmployeeID: "emp-1", StartDate: date("2024-06-10"), EndDate: date("2024-06-12"), Type: leave.TypeCasual})
	require.NoError(t, err)
	assert.Equal(t, leave.StatusPending, r.Status)

	update := leave.DecisionUpdate{Status: leave.StatusApproved, ReviewedBy: "mgr-1", ReviewedAt: time.Now()}
	decided, err := repo.Decide(ctx, r.ID, update)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, decided.Status)

	update.Status = leave.StatusRejected
	_, err = repo.Decide(ctx, r.ID, update)
	assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)

	_, err = repo.Decide(ctx, "missing", update)
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}

func TestLeaveRequestRepository_HasOverlapIgnoresRejected(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().LeaveRequests()

	_, err := repo.Create(ctx, leave.Request{EmployeeID: "emp-1", StartDate: date("2024-06-10"), EndDate: date("2024-06-12"), Status: leave.StatusRejected})
	require.NoError(t, err)

	overlap, err := repo.HasOverlap(ctx, "emp-1", leave.DateRange{Start: date("2024-06-11"), End: date("2024-06-11")})
	require.NoError(t, err)
	assert.False(t, overlap)

	_, err = repo.Create(ctx, leave.Request{EmployeeID: "emp-1", StartDate: date("2024-06-10"), EndDate: date("2024-06-12")})
	require.NoError(t, err)

	overlap, err = repo.HasOverlap(ctx, "emp-1", leave.DateRange{Start: date("2024-06-12"), End: date("2024-06-14")})
	require.NoError(t, err)
	assert.True(t, overlap)

	overlap, err = repo.HasOverlap(ctx, "emp-2", leave.DateRange{Start: date("2024-06-12"), End: date("2024-06-14")})
	require.NoError(t, err)
	assert.False(t, overlap)
}

func TestLeaveBalanceRepository_CreateConflict(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().LeaveBalances()

	_, err := repo.Create(ctx, leave.Balance{EmployeeID: "emp-1", Type: leave.TypeCasual, TotalAllowed: 12})
	require.NoError(t, err)
	_, err = repo.Create(ctx, leave.Balance{EmployeeID: "emp-1", Type: leave.TypeCasual, TotalAllowed: 20})
	assert.ErrorIs(t, err, leave.ErrBalanceExists)

	list, err := repo.ListByEmployee(ctx, "emp-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 12, list[0].TotalAllowed)
}

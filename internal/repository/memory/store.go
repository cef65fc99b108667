// Package memory provides in-memory implementations of the portal
// repositories for tests and local development.
package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/cmlabs-hris/leave-portal/internal/domain/attendance"
	"github.com/cmlabs-hris/leave-portal/internal/domain/department"
	"github.com/cmlabs-hris/leave-portal/internal/domain/employee"
	"github.com/cmlabs-hris/leave-portal/internal/domain/leave"
)

type attendanceKey struct {
	employeeID string
	workDate   string
}

func dayKey(employeeID string, workDate time.Time) attendanceKey {
	return attendanceKey{employeeID: employeeID, workDate: workDate.Format(time.DateOnly)}
}

type balanceKey struct {
	employeeID string
	leaveType  leave.Type
}

type data struct {
	nextDepartmentID int64
	departments      map[int64]department.Department
	employees        map[string]employee.Employee
	attendance       map[string]attendance.Entry
	attendanceByDay  map[attendanceKey]string
	requests         map[string]leave.Request
	balances         map[balanceKey]leave.Balance
}

func (d data) clone() data {
	return data{
		nextDepartmentID: d.nextDepartmentID,
		departments:      maps.Clone(d.departments),
		employees:        maps.Clone(d.employees),
		attendance:       maps.Clone(d.attendance),
		attendanceByDay:  maps.Clone(d.attendanceByDay),
		requests:         maps.Clone(d.requests),
		balances:         maps.Clone(d.balances),
	}
}

// Store holds every table. Writes are serialized by txMu, which a
// transaction holds for its whole duration so a rollback can restore the
// snapshot taken at its start.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex
	data data
	now  func() time.Time
}

func NewStore() *Store {
	return &Store{
		data: data{
			departments:     make(map[int64]department.Department),
			employees:       make(map[string]employee.Employee),
			attendance:      make(map[string]attendance.Entry),
			attendanceByDay: make(map[attendanceKey]string),
			requests:        make(map[string]leave.Request),
			balances:        make(map[balanceKey]leave.Balance),
		},
		now: time.Now,
	}
}

type txKey struct{}

func inTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(txKey{}).(*Store)
	return ok
}

// WithinTransaction implements database.Transactor.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTransaction(ctx) {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	snapshot := s.data.clone()
	s.mu.RUnlock()

	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *Store) write(ctx context.Context, fn func(d *data) error) error {
	if !inTransaction(ctx) {
		s.txMu.Lock()
		defer s.txMu.Unlock()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&s.data)
}

func (s *Store) read(fn func(d *data) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(&s.data)
}

// Employees returns the employee repository view of the store.
func (s *Store) Employees() employee.EmployeeRepository { return &employeeRepository{s} }

func (s *Store) Departments() department.DepartmentRepository { return &departmentRepository{s} }

func (s *Store) Attendance() attendance.AttendanceRepository { return &attendanceRepository{s} }

func (s *Store) LeaveRequests() leave.LeaveRequestRepository { return &leaveRequestRepository{s} }

func (s *Store) LeaveBalances() leave.LeaveBalanceRepository { return &leaveBalanceRepository{s} }

// Package repository selects the storage backend for the portal.
package repository

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/leave-portal/internal/config"
	"github.com/cmlabs-hris/leave-portal/internal/domain/attendance"
	"github.com/cmlabs-hris/leave-portal/internal/domain/department"
	"github.com/cmlabs-hris/leave-portal/internal/domain/employee"
	"github.com/cmlabs-hris/leave-portal/internal/domain/leave"
	"github.com/cmlabs-hris/leave-portal/internal/pkg/database"
	"github.com/cmlabs-hris/leave-portal/internal/repository/memory"
	"github.com/cmlabs-hris/leave-portal/internal/repository/postgresql"
)

// Repositories bundles every store the services depend on. Close releases the
// backend.
type Repositories struct {
	Transactor    database.Transactor
	Employees     employee.EmployeeRepository
	Departments   department.DepartmentRepository
	Attendance    attendance.AttendanceRepository
	LeaveRequests leave.LeaveRequestRepository
	LeaveBalances leave.LeaveBalanceRepository
	Close         func()
}

// Open connects the configured backend. The PostgreSQL schema is migrated
// before returning.
func Open(ctx context.Context, cfg *config.Config) (*Repositories, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		return NewMemory(memory.NewStore()), nil
	case config.StoreDriverPostgres:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := postgresql.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to migrate schema: %w", err)
		}
		return NewPostgreSQL(db), nil
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}
}

func NewPostgreSQL(db *database.DB) *Repositories {
	return &Repositories{
		Transactor:    postgresql.NewTransactor(db),
		Employees:     postgresql.NewEmployeeRepository(db),
		Departments:   postgresql.NewDepartmentRepository(db),
		Attendance:    postgresql.NewAttendanceRepository(db),
		LeaveRequests: postgresql.NewLeaveRequestRepository(db),
		LeaveBalances: postgresql.NewLeaveBalanceRepository(db),
		Close:         db.Close,
	}
}

func NewMemory(store *memory.Store) *Repositories {
	return &Repositories{
		Transactor:    store,
		Employees:     store.Employees(),
		Departments:   store.Departments(),
		Attendance:    store.Attendance(),
		LeaveRequests: store.LeaveRequests(),
		LeaveBalances: store.LeaveBalances(),
		Close:         func() {},
	}
}

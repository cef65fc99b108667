package leave

import (
	"context"
	"time"
)

// PendingFilter narrows the pending queue. When AllDepartments is false only
// requests whose author's department equals DepartmentID are returned, a nil
// DepartmentID matching authors without a department.
type PendingFilter struct {
	AllDepartments bool
	DepartmentID   *int64
}

// DecisionUpdate is applied to a request still in StatusPending.
type DecisionUpdate struct {
	Status     Status
	Comments   *string
	ReviewedBy string
	ReviewedAt time.Time
}

// LeaveRequestRepository - interface for leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, req Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)

	// ListByEmployee orders by start date, newest first.
	ListByEmployee(ctx context.Context, employeeID string) ([]Request, error)
	// ListPending orders by start date, earliest first.
	ListPending(ctx context.Context, filter PendingFilter) ([]Request, error)
	// ListAll orders by start date, newest first.
	ListAll(ctx context.Context) ([]Request, error)

	// HasOverlap reports whether a non-rejected request of the employee
	// intersects r.
	HasOverlap(ctx context.Context, employeeID string, r DateRange) (bool, error)

	// Decide returns ErrLeaveRequestAlreadyProcessed when the request is no
	// longer pending at write time.
	Decide(ctx context.Context, id string, update DecisionUpdate) (Request, error)
}

// LeaveBalanceRepository - interface for leave_balances table
type LeaveBalanceRepository interface {
	// Create returns ErrBalanceExists when the pair is already present.
	Create(ctx context.Context, balance Balance) (Balance, error)
	GetByEmployeeAndType(ctx context.Context, employeeID string, leaveType Type) (Balance, error)

	// AddUsed increments used by days, creating the balance with
	// defaultAllowance first when it does not exist.
	AddUsed(ctx context.Context, employeeID string, leaveType Type, days int, defaultAllowance int) (Balance, error)

	ListByEmployee(ctx context.Context, employeeID string) ([]Balance, error)
}

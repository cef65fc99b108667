package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/cmlabs-hris/leave-portal/internal/domain/leave"
	"github.com/google/uuid"
)

type leaveRequestRepository struct {
	s *Store
}

func joinAuthor(d *data, req leave.Request) leave.Request {
	req.EmployeeName, req.EmployeeDepartmentID = nil, nil
	if e, ok := d.employees[req.EmployeeID]; ok {
		name := e.FullName
		req.EmployeeName = &name
		if e.DepartmentID != nil {
			dept := *e.DepartmentID
			req.EmployeeDepartmentID = &dept
		}
	}
	return req
}

func sameDepartment(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// newestFirst orders by start date descending, then creation descending.
func newestFirst(a, b leave.Request) int {
	if c := b.StartDate.Compare(a.StartDate); c != 0 {
		return c
	}
	return b.CreatedAt.Compare(a.CreatedAt)
}

func (r *leaveRequestRepository) filter(keep func(leave.Request) bool, order func(a, b leave.Request) int) []leave.Request {
	var list []leave.Request
	_ = r.s.read(func(d *data) error {
		for _, req := range d.requests {
			req = joinAuthor(d, req)
			if keep(req) {
				list = append(list, req)
			}
		}
		return nil
	})
	slices.SortFunc(list, order)
	return list
}

func (r *leaveRequestRepository) Create(ctx context.Context, req leave.Request) (leave.Request, error) {
	err := r.s.write(ctx, func(d *data) error {
		if req.ID == "" {
			req.ID = uuid.NewString()
		}
		if req.Status == "" {
			req.Status = leave.StatusPending
		}
		now := r.s.now()
		req.CreatedAt, req.UpdatedAt = now, now
		req.EmployeeName, req.EmployeeDepartmentID = nil, nil
		d.requests[req.ID] = req
		return nil
	})
	if err != nil {
		return leave.Request{}, err
	}
	return req, nil
}

func (r *leaveRequestRepository) GetByID(_ context.Context, id string) (leave.Request, error) {
	var found leave.Request
	err := r.s.read(func(d *data) error {
		req, ok := d.requests[id]
		if !ok {
			return leave.ErrLeaveRequestNotFound
		}
		found = joinAuthor(d, req)
		return nil
	})
	return found, err
}

func (r *leaveRequestRepository) ListByEmployee(_ context.Context, employeeID string) ([]leave.Request, error) {
	return r.filter(func(req leave.Request) bool {
		return req.EmployeeID == employeeID
	}, newestFirst), nil
}

func (r *leaveRequestRepository) ListPending(_ context.Context, f leave.PendingFilter) ([]leave.Request, error) {
	return r.filter(func(req leave.Request) bool {
		if req.Status != leave.StatusPending {
			return false
		}
		return f.AllDepartments || sameDepartment(req.EmployeeDepartmentID, f.DepartmentID)
	}, func(a, b leave.Request) int {
		if c := a.StartDate.Compare(b.StartDate); c != 0 {
			return c
		}
		return a.CreatedAt.Compare(b.CreatedAt)
	}), nil
}

func (r *leaveRequestRepository) ListAll(_ context.Context) ([]leave.Request, error) {
	return r.filter(func(leave.Request) bool { return true }, newestFirst), nil
}

func (r *leaveRequestRepository) HasOverlap(_ context.Context, employeeID string, dr leave.DateRange) (bool, error) {
	var overlap bool
	_ = r.s.read(func(d *data) error {
		for _, req := range d.requests {
			if req.EmployeeID == employeeID && req.Status != leave.StatusRejected && req.Range().Overlaps(dr) {
				overlap = true
				return nil
			}
		}
		return nil
	})
	return overlap, nil
}

func (r *leaveRequestRepository) Decide(ctx context.Context, id string, update leave.DecisionUpdate) (leave.Request, error) {
	var decided leave.Request
	err := r.s.write(ctx, func(d *data) error {
		req, ok := d.requests[id]
		if !ok {
			return leave.ErrLeaveRequestNotFound
		}
		if req.Status != leave.StatusPending {
			return leave.ErrLeaveRequestAlreadyProcessed
		}
		reviewedBy, reviewedAt := update.ReviewedBy, update.ReviewedAt
		req.Status = update.Status
		req.ReviewerComments = update.Comments
		req.ReviewedBy = &reviewedBy
		req.ReviewedAt = &reviewedAt
		req.UpdatedAt = r.s.now()
		d.requests[id] = req
		decided = joinAuthor(d, req)
		return nil
	})
	return decided, err
}

type leaveBalanceRepository struct {
	s *Store
}

func (r *leaveBalanceRepository) Create(ctx context.Context, balance leave.Balance) (leave.Balance, error) {
	err := r.s.write(ctx, func(d *data) error {
		key := balanceKey{employeeID: balance.EmployeeID, leaveType: balance.Type}
		if _, exists := d.balances[key]; exists {
			return leave.ErrBalanceExists
		}
		if balance.ID == "" {
			balance.ID = uuid.NewString()
		}
		now := r.s.now()
		balance.CreatedAt, balance.UpdatedAt = now, now
		d.balances[key] = balance
		return nil
	})
	if err != nil {
		return leave.Balance{}, err
	}
	return balance, nil
}

func (r *leaveBalanceRepository) GetByEmployeeAndType(_ context.Context, employeeID string, leaveType leave.Type) (leave.Balance, error) {
	var found leave.Balance
	err := r.s.read(func(d *data) error {
		b, ok := d.balances[balanceKey{employeeID: employeeID, leaveType: leaveType}]
		if !ok {
			return leave.ErrBalanceNotFound
		}
		found = b
		return nil
	})
	return found, err
}

func (r *leaveBalanceRepository) AddUsed(ctx context.Context, employeeID string, leaveType leave.Type, days int, defaultAllowance int) (leave.Balance, error) {
	var updated leave.Balance
	err := r.s.write(ctx, func(d *data) error {
		key := balanceKey{employeeID: employeeID, leaveType: leaveType}
		now := r.s.now()
		b, ok := d.balances[key]
		if !ok {
			b = leave.Balance{
				ID:           uuid.NewString(),
				EmployeeID:   employeeID,
				Type:         leaveType,
				TotalAllowed: defaultAllowance,
				CreatedAt:    now,
			}
		}
		b.Used += days
		b.UpdatedAt = now
		d.balances[key] = b
		updated = b
		return nil
	})
	return updated, err
}

func (r *leaveBalanceRepository) ListByEmployee(_ context.Context, employeeID string) ([]leave.Balance, error) {
	var list []leave.Balance
	_ = r.s.read(func(d *data) error {
		for _, b := range d.balances {
			if b.EmployeeID == employeeID {
				list = append(list, b)
			}
		}
		return nil
	})
	slices.SortFunc(list, func(a, b leave.Balance) int {
		return cmp.Compare(a.Type, b.Type)
	})
	return list, nil
}

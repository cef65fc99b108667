package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/leave-portal/internal/domain/leave"
	"github.com/cmlabs-hris/leave-portal/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestSelect = `
	SELECT lr.id, lr.employee_id, lr.start_date, lr.end_date, lr.leave_type, lr.reason, lr.status,
		   lr.reviewer_comments, lr.reviewed_by, lr.reviewed_at, lr.created_at, lr.updated_at,
		   e.full_name, e.department_id
	FROM leave_requests lr
	INNER JOIN employees e ON lr.employee_id = e.id
`

func scanLeaveRequest(row pgx.Row) (leave.Request, error) {
	var lr leave.Request
	err := row.Scan(
		&lr.ID,
		&lr.EmployeeID,
		&lr.StartDate,
		&lr.EndDate,
		&lr.Type,
		&lr.Reason,
		&lr.Status,
		&lr.ReviewerComments,
		&lr.ReviewedBy,
		&lr.ReviewedAt,
		&lr.CreatedAt,
		&lr.UpdatedAt,
		&lr.EmployeeName,
		&lr.EmployeeDepartmentID,
	)
	return lr, err
}

func (r *leaveRequestRepositoryImpl) list(ctx context.Context, query string, args ...any) ([]leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []leave.Request
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, lr)
	}
	return requests, rows.Err()
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.Request) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	if request.ID == "" {
		request.ID = uuid.NewString()
	}
	if request.Status == "" {
		request.Status = leave.StatusPending
	}

	query := `
		INSERT INTO leave_requests (id, employee_id, start_date, end_date, leave_type, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		request.ID,
		request.EmployeeID,
		request.StartDate,
		request.EndDate,
		string(request.Type),
		request.Reason,
		string(request.Status),
	).Scan(&request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return leave.Request{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	return request, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.Request, error) {
	if uuid.Validate(id) != nil {
		return leave.Request{}, leave.ErrLeaveRequestNotFound
	}
	q := GetQuerier(ctx, r.db)

	lr, err := scanLeaveRequest(q.QueryRow(ctx, leaveRequestSelect+` WHERE lr.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Request{}, leave.ErrLeaveRequestNotFound
		}
		return leave.Request{}, fmt.Errorf("failed to get leave request %s: %w", id, err)
	}
	return lr, nil
}

// ListByEmployee implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]leave.Request, error) {
	requests, err := r.list(ctx, leaveRequestSelect+`
		WHERE lr.employee_id = $1
		ORDER BY lr.start_date DESC, lr.created_at DESC
	`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests of employee %s: %w", employeeID, err)
	}
	return requests, nil
}

// ListPending implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListPending(ctx context.Context, filter leave.PendingFilter) ([]leave.Request, error) {
	var (
		requests []leave.Request
		err      error
	)
	if filter.AllDepartments {
		requests, err = r.list(ctx, leaveRequestSelect+`
			WHERE lr.status = $1
			ORDER BY lr.start_date ASC, lr.created_at ASC
		`, string(leave.StatusPending))
	} else {
		requests, err = r.list(ctx, leaveRequestSelect+`
			WHERE lr.status = $1 AND e.department_id IS NOT DISTINCT FROM $2
			ORDER BY lr.start_date ASC, lr.created_at ASC
		`, string(leave.StatusPending), filter.DepartmentID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list pending leave requests: %w", err)
	}
	return requests, nil
}

// ListAll implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListAll(ctx context.Context) ([]leave.Request, error) {
	requests, err := r.list(ctx, leaveRequestSelect+`
		ORDER BY lr.start_date DESC, lr.created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return requests, nil
}

// HasOverlap implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) HasOverlap(ctx context.Context, employeeID string, dr leave.DateRange) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM leave_requests
			WHERE employee_id = $1
			  AND status <> $2
			  AND NOT ($4 < start_date OR $3 > end_date)
		)
	`
	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, string(leave.StatusRejected), dr.Start, dr.End).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check leave overlap: %w", err)
	}
	return exists, nil
}

// Decide implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Decide(ctx context.Context, id string, update leave.DecisionUpdate) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $2, reviewer_comments = $3, reviewed_by = $4, reviewed_at = $5, updated_at = NOW()
		WHERE id = $1 AND status = $6
	`
	tag, err := q.Exec(ctx, query,
		id,
		string(update.Status),
		update.Comments,
		update.ReviewedBy,
		update.ReviewedAt,
		string(leave.StatusPending),
	)
	if err != nil {
		return leave.Request{}, fmt.Errorf("failed to decide leave request %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return leave.Request{}, err
		}
		return leave.Request{}, leave.ErrLeaveRequestAlreadyProcessed
	}
	return r.GetByID(ctx, id)
}

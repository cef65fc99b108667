package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/leave-portal/internal/domain/leave"
	"github.com/cmlabs-hris/leave-portal/internal/domain/user"
	"github.com/cmlabs-hris/leave-portal/internal/pkg/database"
	"github.com/cmlabs-hris/leave-portal/internal/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

type LeaveServiceImpl struct {
	tx database.Transactor
	leave.LeaveRequestRepository
	leave.LeaveBalanceRepository
	policy leave.Policy
	now    func() time.Time
}

func NewLeaveService(
	tx database.Transactor,
	leaveRequestRepository leave.LeaveRequestRepository,
	leaveBalanceRepository leave.LeaveBalanceRepository,
	policy leave.Policy,
	clock func() time.Time,
) leave.LeaveService {
	if clock == nil {
		clock = time.Now
	}
	return &LeaveServiceImpl{
		tx:                     tx,
		LeaveRequestRepository: leaveRequestRepository,
		LeaveBalanceRepository: leaveBalanceRepository,
		policy:                 policy,
		now:                    clock,
	}
}

// Submit implements leave.LeaveService.
func (s *LeaveServiceImpl) Submit(ctx context.Context, principal user.Principal, req leave.SubmitLeaveRequest) (leave.Request, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "leave.Submit")
	defer span.End()

	sub, errs := req.Parse()

	if sub.DatesParsed {
		overlap, err := s.LeaveRequestRepository.HasOverlap(ctx, principal.EmployeeID, sub.Range)
		if err != nil {
			return leave.Request{}, fmt.Errorf("failed to check overlapping leave: %w", err)
		}
		if overlap {
			errs.AddErr("date_range", leave.ErrOverlappingLeave)
		}
	}
	if err := errs.OrNil(); err != nil {
		return leave.Request{}, err
	}

	created, err := s.LeaveRequestRepository.Create(ctx, leave.Request{
		EmployeeID: principal.EmployeeID,
		StartDate:  sub.Range.Start,
		EndDate:    sub.Range.End,
		Type:       sub.Type,
		Reason:     sub.Reason,
		Status:     leave.StatusPending,
	})
	if err != nil {
		return leave.Request{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	slog.Info("Leave request submitted", "request_id", created.ID, "employee_id", principal.EmployeeID, "days", sub.Range.Days())
	return created, nil
}

// ListMine implements leave.LeaveService.
func (s *LeaveServiceImpl) ListMine(ctx context.Context, principal user.Principal) ([]leave.Request, error) {
	requests, err := s.LeaveRequestRepository.ListByEmployee(ctx, principal.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return requests, nil
}

// ListPending implements leave.LeaveService.
func (s *LeaveServiceImpl) ListPending(ctx context.Context, reviewer user.Principal) ([]leave.Request, error) {
	var filter leave.PendingFilter
	switch reviewer.ReviewScope() {
	case user.ScopeOrganization:
		filter.AllDepartments = true
	case user.ScopeDepartment:
		filter.DepartmentID = reviewer.DepartmentID
	default:
		return nil, user.ErrReviewScopeRequired
	}

	requests, err := s.LeaveRequestRepository.ListPending(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending leave requests: %w", err)
	}
	return requests, nil
}

// ListAll implements leave.LeaveService.
func (s *LeaveServiceImpl) ListAll(ctx context.Context, reviewer user.Principal) ([]leave.Request, error) {
	if reviewer.ReviewScope() != user.ScopeOrganization {
		return nil, user.ErrInsufficientPermissions
	}
	requests, err := s.LeaveRequestRepository.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return requests, nil
}

// Approve implements leave.LeaveService.
func (s *LeaveServiceImpl) Approve(ctx context.Context, reviewer user.Principal, requestID string, comments *string) (leave.Request, error) {
	return s.decide(ctx, reviewer, requestID, comments, leave.DecisionApprove)
}

// Reject implements leave.LeaveService.
func (s *LeaveServiceImpl) Reject(ctx context.Context, reviewer user.Principal, requestID string, comments *string) (leave.Request, error) {
	return s.decide(ctx, reviewer, requestID, comments, leave.DecisionReject)
}

func (s *LeaveServiceImpl) decide(ctx context.Context, reviewer user.Principal, requestID string, comments *string, decision leave.Decision) (leave.Request, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "leave.Decide")
	defer span.End()
	span.SetAttributes(
		attribute.String("leave.request_id", requestID),
		attribute.String("leave.decision", decision.String()),
	)

	var decided leave.Request

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		request, err := s.LeaveRequestRepository.GetByID(ctx, requestID)
		if err != nil {
			return err
		}

		next, err := request.Status.Decide(decision)
		if err != nil {
			return err
		}

		if !user.CanReview(reviewer, request.EmployeeDepartmentID) {
			return leave.ErrNotAuthorizedToReview
		}

		decided, err = s.LeaveRequestRepository.Decide(ctx, requestID, leave.DecisionUpdate{
			Status:     next,
			Comments:   comments,
			ReviewedBy: reviewer.EmployeeID,
			ReviewedAt: s.now(),
		})
		if err != nil {
			return err
		}

		if next != leave.StatusApproved {
			return nil
		}
		days := request.Range().Days()
		balance, err := s.LeaveBalanceRepository.AddUsed(ctx, request.EmployeeID, request.Type, days, s.policy.DefaultAllowance)
		if err != nil {
			return fmt.Errorf("failed to update leave balance: %w", err)
		}
		slog.Info("Leave balance charged",
			"employee_id", request.EmployeeID,
			"leave_type", request.Type,
			"days", days,
			"used", balance.Used,
			"remaining", balance.Remaining(),
		)
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return leave.Request{}, err
	}

	slog.Info("Leave request decided", "request_id", requestID, "status", decided.Status, "reviewer_id", reviewer.EmployeeID)
	return decided, nil
}

package leave

import (
	"context"

	"github.com/cmlabs-hris/leave-portal/internal/domain/user"
)

// LeaveService drives the leave request lifecycle.
type LeaveService interface {
	// Submit reports every validation failure at once as
	// validator.ValidationErrors and creates nothing in that case.
	Submit(ctx context.Context, principal user.Principal, req SubmitLeaveRequest) (Request, error)
	ListMine(ctx context.Context, principal user.Principal) ([]Request, error)

	// ListPending returns the reviewer's queue within their review scope.
	ListPending(ctx context.Context, reviewer user.Principal) ([]Request, error)
	// ListAll requires organization scope.
	ListAll(ctx context.Context, reviewer user.Principal) ([]Request, error)

	// Approve also charges the request's days to the author's balance.
	Approve(ctx context.Context, reviewer user.Principal, requestID string, comments *string) (Request, error)
	Reject(ctx context.Context, reviewer user.Principal, requestID string, comments *string) (Request, error)
}

type BalanceService interface {
	ListMyBalances(ctx context.Context, principal user.Principal) ([]Balance, error)

	// ProvisionDefaultBalance creates the default leave type balance for an
	// employee. created is false when it already existed.
	ProvisionDefaultBalance(ctx context.Context, employeeID string) (balance Balance, created bool, err error)

	// ProvisionAllDefaultBalances provisions every employee and returns how
	// many balances were created.
	ProvisionAllDefaultBalances(ctx context.Context) (created int, err error)
}

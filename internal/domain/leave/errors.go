package leave

import "errors"

var (
	ErrLeaveRequestNotFound         = errors.New("leave request not found")
	ErrLeaveRequestAlreadyProcessed = errors.New("leave request already processed")
	ErrNotAuthorizedToReview        = errors.New("not authorized to review this leave request")
	ErrInvalidDecision              = errors.New("invalid leave decision")

	// Submission
	ErrInvalidDateRange = errors.New("end date cannot be before start date")
	ErrOverlappingLeave = errors.New("overlapping leave request exists in the selected range")
	ErrInvalidLeaveType = errors.New("invalid leave type")

	// Balance
	ErrBalanceNotFound = errors.New("leave balance not found")
	ErrBalanceExists   = errors.New("leave balance already exists")
)

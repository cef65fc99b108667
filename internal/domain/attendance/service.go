package attendance

import (
	"context"

	"github.com/cmlabs-hris/leave-portal/internal/domain/user"
)

// AttendanceService is the attendance clock. Every operation acts on the
// caller's own record for the current calendar day.
type AttendanceService interface {
	// CheckIn opens today's entry. A second call returns the existing entry.
	CheckIn(ctx context.Context, principal user.Principal) (Entry, error)

	// CheckOut closes today's open entry. Without one it returns ok=false and
	// changes nothing.
	CheckOut(ctx context.Context, principal user.Principal) (entry Entry, ok bool, err error)

	GetToday(ctx context.Context, principal user.Principal) (Day, error)
	GetHistory(ctx context.Context, principal user.Principal) ([]Entry, error)
}

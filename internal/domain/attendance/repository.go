package attendance

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type AttendanceRepository interface {
	// Create inserts a new entry. It returns ErrAttendanceExists when the
	// employee already has an entry for entry.WorkDate.
	Create(ctx context.Context, entry Entry) (Entry, error)

	GetByEmployeeAndDate(ctx context.Context, employeeID string, workDate time.Time) (Entry, error)

	// CloseEntry sets the check-out time, and hours when valid, on an entry
	// that has none yet. It returns ErrAttendanceAlreadyClosed otherwise.
	CloseEntry(ctx context.Context, id string, checkOut time.Time, hours decimal.NullDecimal) (Entry, error)

	// ListByEmployee returns every entry of the employee, newest date first.
	ListByEmployee(ctx context.Context, employeeID string) ([]Entry, error)
}

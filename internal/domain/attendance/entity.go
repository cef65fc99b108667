package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// State of an employee's attendance for one calendar day.
type State string

const (
	StateAbsent     State = "absent"
	StateCheckedIn  State = "checked_in"
	StateCheckedOut State = "checked_out"
)

// Entry is the single attendance record of an employee for a calendar day.
type Entry struct {
	ID          string
	EmployeeID  string
	WorkDate    time.Time
	CheckIn     *time.Time
	CheckOut    *time.Time
	HoursWorked decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// State derives the clock state from the recorded timestamps. A nil entry is
// an absent day.
func (e *Entry) State() State {
	switch {
	case e == nil || e.CheckIn == nil:
		return StateAbsent
	case e.CheckOut == nil:
		return StateCheckedIn
	default:
		return StateCheckedOut
	}
}

// CanCheckOut reports whether the entry is open for a check-out.
func (e *Entry) CanCheckOut() bool {
	return e.State() == StateCheckedIn
}

// Day is the caller's view of one calendar date. Entry is nil while absent.
type Day struct {
	Date  time.Time
	Entry *Entry
}

// CalendarDate truncates t to its wall-clock date. The result is midnight UTC
// so dates compare equal regardless of the clock's location.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// WorkedHours returns the duration between check-in and check-out in hours,
// rounded to two decimal places. ok is false when the duration is not
// strictly positive.
func WorkedHours(checkIn, checkOut time.Time) (hours decimal.Decimal, ok bool) {
	hours = decimal.NewFromFloat(checkOut.Sub(checkIn).Hours()).Round(2)
	return hours, hours.IsPositive()
}

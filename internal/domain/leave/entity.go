package leave

import (
	"time"
)

// Type is the closed set of leave categories.
type Type string

const (
	TypeCasual Type = "casual"
	TypeSick   Type = "sick"
	TypeEarned Type = "earned"
	TypeUnpaid Type = "unpaid"
)

// Types lists every leave type in display order.
func Types() []Type {
	return []Type{TypeCasual, TypeSick, TypeEarned, TypeUnpaid}
}

func (t Type) Valid() bool {
	switch t {
	case TypeCasual, TypeSick, TypeEarned, TypeUnpaid:
		return true
	}
	return false
}

func ParseType(s string) (Type, error) {
	t := Type(s)
	if !t.Valid() {
		return "", ErrInvalidLeaveType
	}
	return t, nil
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// IsFinal reports whether no further transition is possible.
func (s Status) IsFinal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Decision is a reviewer's verdict on a pending request.
type Decision int

const (
	DecisionApprove Decision = iota + 1
	DecisionReject
)

func (d Decision) String() string {
	switch d {
	case DecisionApprove:
		return "approve"
	case DecisionReject:
		return "reject"
	}
	return "unknown"
}

// Decide returns the status reached by applying d. Only pending requests can
// be decided.
func (s Status) Decide(d Decision) (Status, error) {
	if s != StatusPending {
		return s, ErrLeaveRequestAlreadyProcessed
	}
	switch d {
	case DecisionApprove:
		return StatusApproved, nil
	case DecisionReject:
		return StatusRejected, nil
	}
	return s, ErrInvalidDecision
}

// DateRange is an inclusive range of calendar dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Ordered reports whether End is not before Start.
func (r DateRange) Ordered() bool {
	return !r.End.Before(r.Start)
}

// Overlaps reports whether the two ranges share at least one day.
func (r DateRange) Overlaps(other DateRange) bool {
	return !(r.End.Before(other.Start) || r.Start.After(other.End))
}

// Days is the inclusive number of days in the range, zero when reversed.
func (r DateRange) Days() int {
	days := int(r.End.Sub(r.Start).Hours()/24) + 1
	return max(0, days)
}

type Request struct {
	ID               string
	EmployeeID       string
	StartDate        time.Time
	EndDate          time.Time
	Type             Type
	Reason           string
	Status           Status
	ReviewerComments *string
	ReviewedBy       *string
	ReviewedAt       *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Join
	EmployeeName         *string
	EmployeeDepartmentID *int64
}

func (r Request) Range() DateRange {
	return DateRange{Start: r.StartDate, End: r.EndDate}
}

// Balance counts allowed against used days of one leave type.
type Balance struct {
	ID           string
	EmployeeID   string
	Type         Type
	TotalAllowed int
	Used         int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Remaining may be negative; approvals are not capped by the allowance.
func (b Balance) Remaining() int {
	return b.TotalAllowed - b.Used
}

// Policy holds the allowance rules applied when balances are created.
type Policy struct {
	DefaultAllowance int
	DefaultType      Type
}

func DefaultPolicy() Policy {
	return Policy{DefaultAllowance: 12, DefaultType: TypeCasual}
}

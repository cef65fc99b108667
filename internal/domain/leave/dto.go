package leave

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/leave-portal/internal/pkg/validator"
)

const (
	maxReasonLength   = 500
	maxCommentsLength = 1000
)

type SubmitLeaveRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	LeaveType string `json:"leave_type"`
	Reason    string `json:"reason"`
}

// Submission is a parsed SubmitLeaveRequest.
type Submission struct {
	Range  DateRange
	Type   Type
	Reason string

	// DatesParsed is false when either date failed to parse.
	DatesParsed bool
}

// Parse converts the request and collects every input error, including a
// reversed date range.
func (r SubmitLeaveRequest) Parse() (Submission, validator.ValidationErrors) {
	var (
		sub  Submission
		errs validator.ValidationErrors
	)

	start, startOK := parseDate(&errs, "start_date", r.StartDate)
	end, endOK := parseDate(&errs, "end_date", r.EndDate)
	sub.Range = DateRange{Start: start, End: end}
	sub.DatesParsed = startOK && endOK
	if sub.DatesParsed && !sub.Range.Ordered() {
		errs.AddErr("end_date", ErrInvalidDateRange)
	}

	if validator.IsEmpty(r.LeaveType) {
		errs.Add("leave_type", "leave_type is required")
	} else if t, err := ParseType(strings.ToLower(r.LeaveType)); err != nil {
		errs.AddErr("leave_type", err)
	} else {
		sub.Type = t
	}

	sub.Reason = strings.TrimSpace(r.Reason)
	if sub.Reason == "" {
		errs.Add("reason", "reason is required")
	}
	if len(sub.Reason) > maxReasonLength {
		errs.Add("reason", "reason must not exceed 500 characters")
	}

	return sub, errs
}

func (r SubmitLeaveRequest) Validate() error {
	_, errs := r.Parse()
	return errs.OrNil()
}

func parseDate(errs *validator.ValidationErrors, field, value string) (time.Time, bool) {
	if validator.IsEmpty(value) {
		errs.Add(field, field+" is required")
		return time.Time{}, false
	}
	date, ok := validator.IsValidDate(value)
	if !ok {
		errs.Add(field, field+" must be in YYYY-MM-DD format")
		return time.Time{}, false
	}
	return date, true
}

type DecisionRequest struct {
	Comments *string `json:"comments,omitempty"`
}

func (r DecisionRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Comments != nil && len(*r.Comments) > maxCommentsLength {
		errs.Add("comments", "comments must not exceed 1000 characters")
	}
	return errs.OrNil()
}

// Normalized drops blank comments.
func (r DecisionRequest) Normalized() *string {
	if r.Comments == nil || validator.IsEmpty(*r.Comments) {
		return nil
	}
	c := strings.TrimSpace(*r.Comments)
	return &c
}

type RequestResponse struct {
	ID               string     `json:"id"`
	EmployeeID       string     `json:"employee_id"`
	EmployeeName     *string    `json:"employee_name,omitempty"`
	StartDate        string     `json:"start_date"`
	EndDate          string     `json:"end_date"`
	Days             int        `json:"days"`
	LeaveType        Type       `json:"leave_type"`
	Reason           string     `json:"reason"`
	Status           Status     `json:"status"`
	ReviewerComments *string    `json:"reviewer_comments,omitempty"`
	ReviewedBy       *string    `json:"reviewed_by,omitempty"`
	ReviewedAt       *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

type ListRequestResponse struct {
	Requests []RequestResponse `json:"requests"`
	Total    int               `json:"total"`
}

type BalanceResponse struct {
	LeaveType    Type `json:"leave_type"`
	TotalAllowed int  `json:"total_allowed"`
	Used         int  `json:"used"`
	Remaining    int  `json:"remaining"`
}

func NewRequestResponse(r Request) RequestResponse {
	return RequestResponse{
		ID:               r.ID,
		EmployeeID:       r.EmployeeID,
		EmployeeName:     r.EmployeeName,
		StartDate:        r.StartDate.Format(validator.DateLayout),
		EndDate:          r.EndDate.Format(validator.DateLayout),
		Days:             r.Range().Days(),
		LeaveType:        r.Type,
		Reason:           r.Reason,
		Status:           r.Status,
		ReviewerComments: r.ReviewerComments,
		ReviewedBy:       r.ReviewedBy,
		ReviewedAt:       r.ReviewedAt,
		CreatedAt:        r.CreatedAt,
	}
}

func NewListRequestResponse(requests []Request) ListRequestResponse {
	resp := ListRequestResponse{Requests: make([]RequestResponse, 0, len(requests)), Total: len(requests)}
	for _, r := range requests {
		resp.Requests = append(resp.Requests, NewRequestResponse(r))
	}
	return resp
}

func NewBalanceResponses(balances []Balance) []BalanceResponse {
	resp := make([]BalanceResponse, 0, len(balances))
	for _, b := range balances {
		resp = append(resp, BalanceResponse{
			LeaveType:    b.Type,
			TotalAllowed: b.TotalAllowed,
			Used:         b.Used,
			Remaining:    b.Remaining(),
		})
	}
	return resp
}

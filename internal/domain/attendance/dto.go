package attendance

import (
	"time"

	"github.com/cmlabs-hris/leave-portal/internal/pkg/validator"
)

type EntryResponse struct {
	ID          string     `json:"id"`
	EmployeeID  string     `json:"employee_id"`
	WorkDate    string     `json:"work_date"`
	CheckIn     *time.Time `json:"check_in"`
	CheckOut    *time.Time `json:"check_out"`
	HoursWorked string     `json:"hours_worked"`
	State       State      `json:"state"`
}

// TodayResponse describes the caller's current day. Entry is nil while absent.
type TodayResponse struct {
	Date  string         `json:"date"`
	State State          `json:"state"`
	Entry *EntryResponse `json:"entry"`
}

type HistoryResponse struct {
	Entries []EntryResponse `json:"entries"`
	Total   int             `json:"total"`
}

func NewEntryResponse(e Entry) EntryResponse {
	return EntryResponse{
		ID:          e.ID,
		EmployeeID:  e.EmployeeID,
		WorkDate:    e.WorkDate.Format(validator.DateLayout),
		CheckIn:     e.CheckIn,
		CheckOut:    e.CheckOut,
		HoursWorked: e.HoursWorked.StringFixed(2),
		State:       e.State(),
	}
}

func NewTodayResponse(day Day) TodayResponse {
	resp := TodayResponse{
		Date:  day.Date.Format(validator.DateLayout),
		State: day.Entry.State(),
	}
	if day.Entry != nil {
		entry := NewEntryResponse(*day.Entry)
		resp.Entry = &entry
	}
	return resp
}

func NewHistoryResponse(entries []Entry) HistoryResponse {
	resp := HistoryResponse{Entries: make([]EntryResponse, 0, len(entries)), Total: len(entries)}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, NewEntryResponse(e))
	}
	return resp
}

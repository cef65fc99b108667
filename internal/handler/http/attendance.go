package http

import (
	"net/http"

	"github.com/cmlabs-hris/leave-portal/internal/domain/attendance"
	"github.com/cmlabs-hris/leave-portal/internal/handler/http/middleware"
	"github.com/cmlabs-hris/leave-portal/internal/handler/http/response"
)

type AttendanceHandler interface {
	Today(w http.ResponseWriter, r *http.Request)
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

// Today implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	day, err := h.attendanceService.GetToday(r.Context(), principal)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, attendance.NewTodayResponse(day))
}

// CheckIn implements AttendanceHandler.
func (h *AttendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	entry, err := h.attendanceService.CheckIn(r.Context(), principal)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked in", attendance.NewEntryResponse(entry))
}

// CheckOut implements AttendanceHandler.
func (h *AttendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	entry, checkedOut, err := h.attendanceService.CheckOut(r.Context(), principal)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if !checkedOut {
		var data *attendance.EntryResponse
		if entry.ID != "" {
			e := attendance.NewEntryResponse(entry)
			data = &e
		}
		response.SuccessWithMessage(w, "Nothing to check out", data)
		return
	}
	response.SuccessWithMessage(w, "Checked out", attendance.NewEntryResponse(entry))
}

// History implements AttendanceHandler.
func (h *AttendanceHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	entries, err := h.attendanceService.GetHistory(r.Context(), principal)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, attendance.NewHistoryResponse(entries))
}

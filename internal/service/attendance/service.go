package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/leave-portal/internal/domain/attendance"
	"github.com/cmlabs-hris/leave-portal/internal/domain/user"
	"github.com/shopspring/decimal"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	now func() time.Time
}

// NewAttendanceService builds the attendance clock. A nil clock uses
// time.Now.
func NewAttendanceService(attendanceRepository attendance.AttendanceRepository, clock func() time.Time) attendance.AttendanceService {
	if clock == nil {
		clock = time.Now
	}
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepository,
		now:                  clock,
	}
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, principal user.Principal) (attendance.Entry, error) {
	now := s.now()
	today := attendance.CalendarDate(now)

	existing, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, principal.EmployeeID, today)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, attendance.ErrAttendanceNotFound) {
		return attendance.Entry{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}

	entry, err := s.AttendanceRepository.Create(ctx, attendance.Entry{
		EmployeeID:  principal.EmployeeID,
		WorkDate:    today,
		CheckIn:     &now,
		HoursWorked: decimal.Zero,
	})
	if errors.Is(err, attendance.ErrAttendanceExists) {
		// Lost the race to a concurrent check-in.
		return s.AttendanceRepository.GetByEmployeeAndDate(ctx, principal.EmployeeID, today)
	}
	if err != nil {
		return attendance.Entry{}, fmt.Errorf("failed to check in: %w", err)
	}

	slog.Info("Employee checked in", "employee_id", principal.EmployeeID, "work_date", today.Format(time.DateOnly))
	return entry, nil
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, principal user.Principal) (attendance.Entry, bool, error) {
	now := s.now()
	today := attendance.CalendarDate(now)

	entry, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, principal.EmployeeID, today)
	if errors.Is(err, attendance.ErrAttendanceNotFound) {
		return attendance.Entry{}, false, nil
	}
	if err != nil {
		return attendance.Entry{}, false, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if !entry.CanCheckOut() {
		return entry, false, nil
	}

	var hours decimal.NullDecimal
	if worked, ok := attendance.WorkedHours(*entry.CheckIn, now); ok {
		hours = decimal.NullDecimal{Decimal: worked, Valid: true}
	} else {
		slog.Debug("Ignoring non-positive worked duration", "employee_id", principal.EmployeeID, "hours", worked.String())
	}

	closed, err := s.AttendanceRepository.CloseEntry(ctx, entry.ID, now, hours)
	if errors.Is(err, attendance.ErrAttendanceAlreadyClosed) {
		current, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, principal.EmployeeID, today)
		return current, false, err
	}
	if err != nil {
		return attendance.Entry{}, false, fmt.Errorf("failed to check out: %w", err)
	}

	slog.Info("Employee checked out", "employee_id", principal.EmployeeID, "hours_worked", closed.HoursWorked.String())
	return closed, true, nil
}

// GetToday implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetToday(ctx context.Context, principal user.Principal) (attendance.Day, error) {
	day := attendance.Day{Date: attendance.CalendarDate(s.now())}

	entry, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, principal.EmployeeID, day.Date)
	if errors.Is(err, attendance.ErrAttendanceNotFound) {
		return day, nil
	}
	if err != nil {
		return attendance.Day{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	day.Entry = &entry
	return day, nil
}

// GetHistory implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetHistory(ctx context.Context, principal user.Principal) ([]attendance.Entry, error) {
	entries, err := s.AttendanceRepository.ListByEmployee(ctx, principal.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance history: %w", err)
	}
	return entries, nil
}

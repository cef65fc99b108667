package memory

import (
	"context"
	"slices"
	"time"

	"github.com/cmlabs-hris/leave-portal/internal/domain/attendance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type attendanceRepository struct {
	s *Store
}

func (r *attendanceRepository) Create(ctx context.Context, entry attendance.Entry) (attendance.Entry, error) {
	err := r.s.write(ctx, func(d *data) error {
		key := dayKey(entry.EmployeeID, entry.WorkDate)
		if _, exists := d.attendanceByDay[key]; exists {
			return attendance.ErrAttendanceExists
		}
		if entry.ID == "" {
			entry.ID = uuid.NewString()
		}
		now := r.s.now()
		entry.CreatedAt, entry.UpdatedAt = now, now
		d.attendance[entry.ID] = entry
		d.attendanceByDay[key] = entry.ID
		return nil
	})
	if err != nil {
		return attendance.Entry{}, err
	}
	return entry, nil
}

func (r *attendanceRepository) GetByEmployeeAndDate(_ context.Context, employeeID string, workDate time.Time) (attendance.Entry, error) {
	var found attendance.Entry
	err := r.s.read(func(d *data) error {
		id, ok := d.attendanceByDay[dayKey(employeeID, workDate)]
		if !ok {
			return attendance.ErrAttendanceNotFound
		}
		found = d.attendance[id]
		return nil
	})
	return found, err
}

func (r *attendanceRepository) CloseEntry(ctx context.Context, id string, checkOut time.Time, hours decimal.NullDecimal) (attendance.Entry, error) {
	var closed attendance.Entry
	err := r.s.write(ctx, func(d *data) error {
		e, ok := d.attendance[id]
		if !ok || !e.CanCheckOut() {
			return attendance.ErrAttendanceAlreadyClosed
		}
		e.CheckOut = &checkOut
		if hours.Valid {
			e.HoursWorked = hours.Decimal
		}
		e.UpdatedAt = r.s.now()
		d.attendance[id] = e
		closed = e
		return nil
	})
	return closed, err
}

func (r *attendanceRepository) ListByEmployee(_ context.Context, employeeID string) ([]attendance.Entry, error) {
	var entries []attendance.Entry
	_ = r.s.read(func(d *data) error {
		for _, e := range d.attendance {
			if e.EmployeeID == employeeID {
				entries = append(entries, e)
			}
		}
		return nil
	})
	slices.SortFunc(entries, func(a, b attendance.Entry) int {
		return b.WorkDate.Compare(a.WorkDate)
	})
	return entries, nil
}

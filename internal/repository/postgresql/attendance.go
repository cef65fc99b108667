package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/leave-portal/internal/domain/attendance"
	"github.com/cmlabs-hris/leave-portal/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceColumns = `id, employee_id, work_date, check_in, check_out, hours_worked::text, created_at, updated_at`

func scanAttendance(row pgx.Row) (attendance.Entry, error) {
	var (
		e     attendance.Entry
		hours string
	)
	err := row.Scan(
		&e.ID,
		&e.EmployeeID,
		&e.WorkDate,
		&e.CheckIn,
		&e.CheckOut,
		&hours,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return attendance.Entry{}, err
	}
	if e.HoursWorked, err = decimal.NewFromString(hours); err != nil {
		return attendance.Entry{}, fmt.Errorf("parse hours_worked %q: %w", hours, err)
	}
	return e, nil
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, entry attendance.Entry) (attendance.Entry, error) {
	q := GetQuerier(ctx, r.db)

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	query := `
		INSERT INTO attendance_entries (id, employee_id, work_date, check_in, check_out, hours_worked)
		VALUES ($1, $2, $3, $4, $5, $6::numeric)
		ON CONFLICT (employee_id, work_date) DO NOTHING
		RETURNING ` + attendanceColumns

	created, err := scanAttendance(q.QueryRow(ctx, query,
		entry.ID,
		entry.EmployeeID,
		entry.WorkDate,
		entry.CheckIn,
		entry.CheckOut,
		entry.HoursWorked.String(),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Entry{}, attendance.ErrAttendanceExists
		}
		return attendance.Entry{}, fmt.Errorf("failed to create attendance entry: %w", err)
	}
	return created, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, workDate time.Time) (attendance.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendance_entries
		WHERE employee_id = $1 AND work_date = $2
	`
	e, err := scanAttendance(q.QueryRow(ctx, query, employeeID, workDate))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Entry{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Entry{}, fmt.Errorf("failed to get attendance entry: %w", err)
	}
	return e, nil
}

// CloseEntry implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) CloseEntry(ctx context.Context, id string, checkOut time.Time, hours decimal.NullDecimal) (attendance.Entry, error) {
	q := GetQuerier(ctx, r.db)

	var hoursText *string
	if hours.Valid {
		s := hours.Decimal.String()
		hoursText = &s
	}

	query := `
		UPDATE attendance_entries
		SET check_out = $2,
			hours_worked = COALESCE($3::numeric, hours_worked),
			updated_at = NOW()
		WHERE id = $1 AND check_in IS NOT NULL AND check_out IS NULL
		RETURNING ` + attendanceColumns

	e, err := scanAttendance(q.QueryRow(ctx, query, id, checkOut, hoursText))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Entry{}, attendance.ErrAttendanceAlreadyClosed
		}
		return attendance.Entry{}, fmt.Errorf("failed to close attendance entry %s: %w", id, err)
	}
	return e, nil
}

// ListByEmployee implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]attendance.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendance_entries
		WHERE employee_id = $1
		ORDER BY work_date DESC
	`
	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance entries: %w", err)
	}
	defer rows.Close()

	var entries []attendance.Entry
	for rows.Next() {
		e, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

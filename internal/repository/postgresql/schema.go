package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/leave-portal/internal/pkg/database"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS departments (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(100) NOT NULL UNIQUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS employees (
		id UUID PRIMARY KEY,
		full_name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		department_id BIGINT REFERENCES departments(id) ON DELETE SET NULL,
		roles TEXT[] NOT NULL DEFAULT '{employee}',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS attendance_entries (
		id UUID PRIMARY KEY,
		employee_id UUID NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
		work_date DATE NOT NULL,
		check_in TIMESTAMPTZ,
		check_out TIMESTAMPTZ,
		hours_worked NUMERIC(5,2) NOT NULL DEFAULT 0 CHECK (hours_worked >= 0),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (employee_id, work_date)
	)`,
	`CREATE TABLE IF NOT EXISTS leave_requests (
		id UUID PRIMARY KEY,
		employee_id UUID NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
		start_date DATE NOT NULL,
		end_date DATE NOT NULL,
		leave_type VARCHAR(20) NOT NULL,
		reason VARCHAR(500) NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		reviewer_comments TEXT,
		reviewed_by UUID REFERENCES employees(id) ON DELETE SET NULL,
		reviewed_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CHECK (end_date >= start_date)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_leave_requests_employee_dates
		ON leave_requests (employee_id, start_date, end_date)`,
	`CREATE INDEX IF NOT EXISTS idx_leave_requests_pending
		ON leave_requests (start_date) WHERE status = 'pending'`,
	`CREATE TABLE IF NOT EXISTS leave_balances (
		id UUID PRIMARY KEY,
		employee_id UUID NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
		leave_type VARCHAR(20) NOT NULL,
		total_allowed INT NOT NULL,
		used INT NOT NULL DEFAULT 0 CHECK (used >= 0),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (employee_id, leave_type)
	)`,
}

// Migrate creates the portal tables when they do not exist.
func Migrate(ctx context.Context, db *database.DB) error {
	return WithTransaction(ctx, db, func(ctx context.Context) error {
		q := GetQuerier(ctx, db)
		for i, stmt := range schema {
			if _, err := q.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("migrate statement %d: %w", i+1, err)
			}
		}
		return nil
	})
}

// Truncate empties every portal table. Used by integration tests.
func Truncate(ctx context.Context, db *database.DB) error {
	_, err := GetQuerier(ctx, db).Exec(ctx,
		`TRUNCATE leave_balances, leave_requests, attendance_entries, employees, departments RESTART IDENTITY CASCADE`)
	return err
}

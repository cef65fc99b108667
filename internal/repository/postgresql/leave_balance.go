package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/leave-portal/internal/domain/leave"
	"github.com/cmlabs-hris/leave-portal/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type leaveBalanceRepositoryImpl struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.LeaveBalanceRepository {
	return &leaveBalanceRepositoryImpl{db: db}
}

const leaveBalanceColumns = `id, employee_id, leave_type, total_allowed, used, created_at, updated_at`

func scanLeaveBalance(row pgx.Row) (leave.Balance, error) {
	var b leave.Balance
	err := row.Scan(
		&b.ID,
		&b.EmployeeID,
		&b.Type,
		&b.TotalAllowed,
		&b.Used,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	return b, err
}

// Create implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) Create(ctx context.Context, balance leave.Balance) (leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	if balance.ID == "" {
		balance.ID = uuid.NewString()
	}

	query := `
		INSERT INTO leave_balances (id, employee_id, leave_type, total_allowed, used)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (employee_id, leave_type) DO NOTHING
		RETURNING ` + leaveBalanceColumns

	created, err := scanLeaveBalance(q.QueryRow(ctx, query,
		balance.ID,
		balance.EmployeeID,
		string(balance.Type),
		balance.TotalAllowed,
		balance.Used,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Balance{}, leave.ErrBalanceExists
		}
		return leave.Balance{}, fmt.Errorf("failed to create leave balance: %w", err)
	}
	return created, nil
}

// GetByEmployeeAndType implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) GetByEmployeeAndType(ctx context.Context, employeeID string, leaveType leave.Type) (leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveBalanceColumns + ` FROM leave_balances WHERE employee_id = $1 AND leave_type = $2`
	b, err := scanLeaveBalance(q.QueryRow(ctx, query, employeeID, string(leaveType)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Balance{}, leave.ErrBalanceNotFound
		}
		return leave.Balance{}, fmt.Errorf("failed to get leave balance: %w", err)
	}
	return b, nil
}

// AddUsed implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) AddUsed(ctx context.Context, employeeID string, leaveType leave.Type, days int, defaultAllowance int) (leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_balances (id, employee_id, leave_type, total_allowed, used)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (employee_id, leave_type)
		DO UPDATE SET used = leave_balances.used + EXCLUDED.used, updated_at = NOW()
		RETURNING ` + leaveBalanceColumns

	b, err := scanLeaveBalance(q.QueryRow(ctx, query,
		uuid.NewString(),
		employeeID,
		string(leaveType),
		defaultAllowance,
		days,
	))
	if err != nil {
		return leave.Balance{}, fmt.Errorf("failed to add %d used days to %s balance: %w", days, leaveType, err)
	}
	return b, nil
}

// ListByEmployee implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveBalanceColumns + ` FROM leave_balances WHERE employee_id = $1 ORDER BY leave_type`
	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave balances: %w", err)
	}
	defer rows.Close()

	var balances []leave.Balance
	for rows.Next() {
		b, err := scanLeaveBalance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave balance: %w", err)
		}
		balances = append(balances, b)
	}
	return balances, rows.Err()
}

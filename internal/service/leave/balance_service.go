package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/leave-portal/internal/domain/employee"
	"github.com/cmlabs-hris/leave-portal/internal/domain/leave"
	"github.com/cmlabs-hris/leave-portal/internal/domain/user"
)

type BalanceServiceImpl struct {
	leave.LeaveBalanceRepository
	employee.EmployeeRepository
	policy leave.Policy
}

func NewBalanceService(leaveBalanceRepository leave.LeaveBalanceRepository, employeeRepository employee.EmployeeRepository, policy leave.Policy) leave.BalanceService {
	return &BalanceServiceImpl{
		LeaveBalanceRepository: leaveBalanceRepository,
		EmployeeRepository:     employeeRepository,
		policy:                 policy,
	}
}

// ListMyBalances implements leave.BalanceService.
func (s *BalanceServiceImpl) ListMyBalances(ctx context.Context, principal user.Principal) ([]leave.Balance, error) {
	balances, err := s.LeaveBalanceRepository.ListByEmployee(ctx, principal.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave balances: %w", err)
	}
	return balances, nil
}

// ProvisionDefaultBalance implements leave.BalanceService.
func (s *BalanceServiceImpl) ProvisionDefaultBalance(ctx context.Context, employeeID string) (leave.Balance, bool, error) {
	created, err := s.LeaveBalanceRepository.Create(ctx, leave.Balance{
		EmployeeID:   employeeID,
		Type:         s.policy.DefaultType,
		TotalAllowed: s.policy.DefaultAllowance,
	})
	if errors.Is(err, leave.ErrBalanceExists) {
		existing, err := s.LeaveBalanceRepository.GetByEmployeeAndType(ctx, employeeID, s.policy.DefaultType)
		return existing, false, err
	}
	if err != nil {
		return leave.Balance{}, false, fmt.Errorf("failed to provision leave balance: %w", err)
	}
	return created, true, nil
}

// ProvisionAllDefaultBalances implements leave.BalanceService.
func (s *BalanceServiceImpl) ProvisionAllDefaultBalances(ctx context.Context) (int, error) {
	employees, err := s.EmployeeRepository.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list employees: %w", err)
	}

	var created int
	for _, emp := range employees {
		_, ok, err := s.ProvisionDefaultBalance(ctx, emp.ID)
		if err != nil {
			slog.Warn("Failed to provision leave balance", "employee_id", emp.ID, "error", err)
			continue
		}
		if ok {
			created++
		}
	}
	if created > 0 {
		slog.Info("Provisioned default leave balances", "leave_type", s.policy.DefaultType, "count", created)
	}
	return created, nil
}

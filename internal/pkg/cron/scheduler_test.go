package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cmlabs-hris/leave-portal/internal/domain/employee"
	"github.com/cmlabs-hris/leave-portal/internal/domain/leave"
	"github.com/cmlabs-hris/leave-portal/internal/domain/user"
	"github.com/cmlabs-hris/leave-portal/internal/repository/memory"
	leavesvc "github.com/cmlabs-hris/leave-portal/internal/service/leave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_StartRunsImmediatelyAndStops(t *testing.T) {
	s := NewScheduler()
	var runs atomic.Int32
	s.AddJob("tick", time.Hour, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	s.Start(context.Background())
	assert.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, 5*time.Millisecond)
	s.Stop()
	assert.Equal(t, int32(1), runs.Load())
}

func TestScheduler_RunOnceReturnsFirstError(t *testing.T) {
	s := NewScheduler()
	errFirst := errors.New("first")
	var ran []string
	s.AddJob("a", time.Minute, func(context.Context) error { ran = append(ran, "a"); return errFirst })
	s.AddJob("b", time.Minute, func(context.Context) error { ran = append(ran, "b"); return errors.New("second") })

	err := s.RunOnce(context.Background())
	assert.ErrorIs(t, err, errFirst)
	assert.Equal(t, []string{"a", "b"}, ran)
	assert.Equal(t, []string{"a", "b"}, s.Jobs())
}

func TestLeaveJobs_ProvisionDefaultBalances(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	for _, email := range []string{"employee1@elp.local", "employee2@elp.local"} {
		_, err := store.Employees().Create(ctx, employee.Employee{FullName: email, Email: email, Roles: []user.Role{user.RoleEmployee}})
		require.NoError(t, err)
	}

	balances := leavesvc.NewBalanceService(store.LeaveBalances(), store.Employees(), leave.DefaultPolicy())
	s := NewScheduler()
	NewLeaveJobs(balances, time.Hour).RegisterJobs(s)
	assert.Equal(t, []string{ProvisionDefaultBalancesJob}, s.Jobs())

	require.NoError(t, s.RunOnce(ctx))
	require.NoError(t, s.RunOnce(ctx))

	employees, err := store.Employees().List(ctx)
	require.NoError(t, err)
	for _, e := range employees {
		list, err := store.LeaveBalances().ListByEmployee(ctx, e.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, leave.TypeCasual, list[0].Type)
		assert.Equal(t, 12, list[0].TotalAllowed)
		assert.Zero(t, list[0].Used)
	}
}

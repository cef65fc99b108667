package cron

import (
	"context"
	"time"

	"github.com/cmlabs-hris/leave-portal/internal/domain/leave"
)

const ProvisionDefaultBalancesJob = "provision_default_balances"

type LeaveJobs struct {
	balanceService leave.BalanceService
	interval       time.Duration
}

func NewLeaveJobs(balanceService leave.BalanceService, interval time.Duration) *LeaveJobs {
	return &LeaveJobs{
		balanceService: balanceService,
		interval:       interval,
	}
}

func (j *LeaveJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob(ProvisionDefaultBalancesJob, j.interval, j.ProvisionDefaultBalances)
}

// ProvisionDefaultBalances gives every employee without one a balance of the
// default leave type.
func (j *LeaveJobs) ProvisionDefaultBalances(ctx context.Context) error {
	_, err := j.balanceService.ProvisionAllDefaultBalances(ctx)
	return err
}

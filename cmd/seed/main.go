package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/cmlabs-hris/leave-portal/internal/config"
	"github.com/cmlabs-hris/leave-portal/internal/fixtures"
	"github.com/cmlabs-hris/leave-portal/internal/repository"
	serviceAuth "github.com/cmlabs-hris/leave-portal/internal/service/auth"
	leaveService "github.com/cmlabs-hris/leave-portal/internal/service/leave"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Error loading config", "error", err)
		os.Exit(1)
	}
	if cfg.StoreDriver == config.StoreDriverMemory {
		slog.Error("Seeding the memory store has no lasting effect, set STORE_DRIVER=postgres")
		os.Exit(1)
	}

	ctx := context.Background()
	repos, err := repository.Open(ctx, cfg)
	if err != nil {
		slog.Error("Error opening store", "error", err)
		os.Exit(1)
	}
	defer repos.Close()

	seeder := &fixtures.Seeder{
		Departments:  repos.Departments,
		Employees:    repos.Employees,
		Balances:     leaveService.NewBalanceService(repos.LeaveBalances, repos.Employees, cfg.LeavePolicy()),
		HashPassword: serviceAuth.HashPassword,
	}
	if _, err := seeder.Seed(ctx); err != nil {
		slog.Error("Seed failed", "error", err)
		repos.Close()
		os.Exit(1)
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/leave-portal/internal/config"
	appHTTP "github.com/cmlabs-hris/leave-portal/internal/handler/http"
	"github.com/cmlabs-hris/leave-portal/internal/pkg/cron"
	"github.com/cmlabs-hris/leave-portal/internal/pkg/jwt"
	"github.com/cmlabs-hris/leave-portal/internal/pkg/telemetry"
	"github.com/cmlabs-hris/leave-portal/internal/repository"
	attendanceService "github.com/cmlabs-hris/leave-portal/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/leave-portal/internal/service/auth"
	leaveService "github.com/cmlabs-hris/leave-portal/internal/service/leave"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"
)

const (
	appName    = "leave-portal"
	appVersion = "v1.0.0"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})).With(slog.String("app", appName), slog.String("env", cfg.App.Env)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing := telemetry.Setup(ctx, telemetry.Config{
		ServiceName: cfg.Telemetry.ServiceName,
		Endpoint:    cfg.Telemetry.OTLPEndpoint,
		Insecure:    cfg.Telemetry.OTLPInsecure,
	})
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			slog.Warn("Failed to flush traces", "error", err)
		}
	}()

	repos, err := repository.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer repos.Close()
	slog.Info("Store ready", "driver", cfg.StoreDriver)

	policy := cfg.LeavePolicy()
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	authService := serviceAuth.NewAuthService(repos.Employees, JWTService)
	attendanceSvc := attendanceService.NewAttendanceService(repos.Attendance, nil)
	leaveSvc := leaveService.NewLeaveService(repos.Transactor, repos.LeaveRequests, repos.LeaveBalances, policy, nil)
	balanceSvc := leaveService.NewBalanceService(repos.LeaveBalances, repos.Employees, policy)

	scheduler := cron.NewScheduler()
	cron.NewLeaveJobs(balanceSvc, cfg.Leave.ProvisionInterval).RegisterJobs(scheduler)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			AppName:        appName,
			Version:        appVersion,
			Env:            cfg.App.Env,
			LogLevel:       cfg.SlogLevel(),
			AllowedOrigins: cfg.App.FrontendOrigins,
		},
		JWTService,
		appHTTP.NewAuthHandler(authService),
		appHTTP.NewAttendanceHandler(attendanceSvc),
		appHTTP.NewLeaveHandler(leaveSvc, balanceSvc),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           otelhttp.NewHandler(router, appName),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Server running", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		slog.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

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

	"github.com/cmlabs-hris/ems-backend-go/internal/config"
	"github.com/cmlabs-hris/ems-backend-go/internal/fixtures"
	appHTTP "github.com/cmlabs-hris/ems-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/cache"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/ems-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/ems-backend-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/ems-backend-go/internal/service/auth"
	dashboardService "github.com/cmlabs-hris/ems-backend-go/internal/service/dashboard"
	employeeService "github.com/cmlabs-hris/ems-backend-go/internal/service/employee"
	"github.com/cmlabs-hris/ems-backend-go/internal/service/master"
	payrollService "github.com/cmlabs-hris/ems-backend-go/internal/service/payroll"
	reportService "github.com/cmlabs-hris/ems-backend-go/internal/service/report"
	scheduleService "github.com/cmlabs-hris/ems-backend-go/internal/service/schedule"
	"github.com/go-chi/httplog/v3"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "ems-backend"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db := database.New(cfg.DatabaseURL())
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := db.Migrate(ctx); err != nil {
			return fmt.Errorf("error migrating database: %w", err)
		}
		slog.Info("Database schema is up to date")
	}

	var appCache cache.Cache = cache.Noop{}
	if cfg.Redis.Addr != "" {
		appCache = cache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		slog.Info("Dashboard cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.CacheTTL)
	}
	defer appCache.Close()

	appMetrics := metrics.New()

	// Repositories
	transactor := postgresql.NewTransactor(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	departmentRepo := postgresql.NewDepartmentRepository(db)
	designationRepo := postgresql.NewDesignationRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	employeeShiftRepo := postgresql.NewEmployeeShiftRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	salaryTemplateRepo := postgresql.NewSalaryTemplateRepository(db)
	payrollRunRepo := postgresql.NewPayrollRunRepository(db)
	reportRepo := postgresql.NewReportRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	// Services
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	authSvc := serviceAuth.NewAuthService(employeeRepo, JWTService)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	masterSvc := master.NewMasterService(departmentRepo, designationRepo)
	scheduleSvc := scheduleService.NewScheduleService(shiftRepo, employeeShiftRepo)
	attendanceSvc := attendanceService.NewAttendanceService(transactor, attendanceRepo, appCache, appMetrics)
	payrollSvc := payrollService.NewPayrollService(transactor, salaryTemplateRepo, payrollRunRepo, attendanceRepo, appCache, appMetrics)
	reportSvc := reportService.NewReportService(reportRepo, employeeShiftRepo, payrollRunRepo, employeeRepo)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo, appCache, cfg.Redis.CacheTTL)

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{
			Logger:      logger,
			CORSOrigins: cfg.App.CORSOrigins,
			JWTService:  JWTService,
			Metrics:     appMetrics,
			Health: map[string]appHTTP.Pinger{
				"database": db,
				"redis":    appCache,
			},
		},
		appHTTP.Handlers{
			Auth:       appHTTP.NewAuthHandler(authSvc),
			Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
			Master:     appHTTP.NewMasterHandler(masterSvc),
			Schedule:   appHTTP.NewScheduleHandler(scheduleSvc),
			Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
			Payroll:    appHTTP.NewPayrollHandler(payrollSvc),
			Report:     appHTTP.NewReportHandler(reportSvc),
			Dashboard:  appHTTP.NewDashboardHandler(dashboardSvc),
		},
	)

	seeder := fixtures.NewSeeder(transactor, employeeRepo, departmentRepo, shiftRepo)
	if err := seeder.Seed(ctx, cfg.Admin); err != nil {
		return fmt.Errorf("error seeding admin: %w", err)
	}

	if cfg.Cron.Enabled {
		scheduler := cron.NewScheduler()
		if err := cron.NewPayrollJobs(payrollSvc).RegisterJobs(scheduler, cfg.Cron.PayrollSchedule); err != nil {
			return fmt.Errorf("error registering cron jobs: %w", err)
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	slog.Info("Server stopped")
	return nil
}

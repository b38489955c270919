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

	"github.com/cmlabs-hris/payroll-backend-go/internal/config"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	appHTTP "github.com/cmlabs-hris/payroll-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/payroll-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/payroll-backend-go/internal/service/attendance"
	dashboardService "github.com/cmlabs-hris/payroll-backend-go/internal/service/dashboard"
	employeeService "github.com/cmlabs-hris/payroll-backend-go/internal/service/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/service/file"
	leaveService "github.com/cmlabs-hris/payroll-backend-go/internal/service/leave"
	"github.com/cmlabs-hris/payroll-backend-go/internal/service/master"
	overtimeService "github.com/cmlabs-hris/payroll-backend-go/internal/service/overtime"
	payrollService "github.com/cmlabs-hris/payroll-backend-go/internal/service/payroll"
	"github.com/ulule/limiter/v3"
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
		return fmt.Errorf("load config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})).With(
		slog.String("app", cfg.App.Name),
		slog.String("env", cfg.App.Env),
	))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dsn := cfg.DatabaseURL()
	if cfg.Migration.AutoMigrate {
		if err := database.RunMigrations(dsn, cfg.Migration.Path); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
	}

	db, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	// Repositories
	departmentRepo := postgresql.NewDepartmentRepository(db)
	positionRepo := postgresql.NewPositionRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	overtimeRepo := postgresql.NewOvertimeRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	leaveBalanceRepo := postgresql.NewLeaveBalanceRepository(db)
	leaveEntryRepo := postgresql.NewLeaveEntryRepository(db)
	adjustmentRepo := postgresql.NewAdjustmentRepository(db)
	monthConfigRepo := postgresql.NewMonthConfigRepository(db)
	runRepo := postgresql.NewPayrollRunRepository(db)
	lineRepo := postgresql.NewPayrollLineRepository(db)
	coverageRepo := postgresql.NewLeaveCoverageRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)
	tx := postgresql.NewTransactor(db)

	var fileStorage storage.FileStorage
	var filesDir string
	switch cfg.Storage.Type {
	case "local":
		local, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
		if err != nil {
			return fmt.Errorf("initialize local storage: %w", err)
		}
		fileStorage = local
		filesDir = local.BasePath()
	default:
		return fmt.Errorf("unsupported storage type: %s", cfg.Storage.Type)
	}

	// Services
	fileSvc := file.NewFileService(fileStorage)
	masterSvc := master.NewMasterService(departmentRepo, positionRepo)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, positionRepo)
	attendanceSvc := attendanceService.NewAttendanceService(tx, attendanceRepo, employeeRepo)
	overtimeSvc := overtimeService.NewOvertimeService(tx, overtimeRepo, employeeRepo)
	leaveSvc := leaveService.NewLeaveService(tx, leaveTypeRepo, leaveBalanceRepo, leaveEntryRepo, attendanceRepo, employeeRepo)
	adjustmentSvc := payrollService.NewAdjustmentService(adjustmentRepo, employeeRepo)
	reconciler := payrollService.NewReconciler(attendanceRepo, leaveTypeRepo, leaveBalanceRepo, leaveEntryRepo)
	payrollSvc := payrollService.NewPayrollService(
		tx,
		runRepo,
		lineRepo,
		coverageRepo,
		monthConfigRepo,
		adjustmentRepo,
		employeeRepo,
		overtimeRepo,
		reconciler,
		fileSvc,
	)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo)

	var ipLimiter *limiter.Limiter
	if cfg.RateLimit.Rate != "" {
		ipLimiter, err = middleware.NewIPLimiter(cfg.RateLimit.Rate)
		if err != nil {
			return err
		}
	}

	router := appHTTP.NewRouter(appHTTP.RouterOptions{
		AppName:        cfg.App.Name,
		Env:            cfg.App.Env,
		LogLevel:       cfg.SlogLevel(),
		AllowedOrigins: cfg.App.CORSAllowedOrigins,
		Limiter:        ipLimiter,
		FilesDir:       filesDir,
	}, appHTTP.Handlers{
		Master:     appHTTP.NewMasterHandler(masterSvc),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Calendar:   appHTTP.NewCalendarHandler(),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Overtime:   appHTTP.NewOvertimeHandler(overtimeSvc),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
		Bonus:      appHTTP.NewAdjustmentHandler(adjustmentSvc, payroll.AdjustmentBonus),
		Prepaid:    appHTTP.NewAdjustmentHandler(adjustmentSvc, payroll.AdjustmentPrepaid),
		Payroll:    appHTTP.NewPayrollHandler(payrollSvc),
		Dashboard:  appHTTP.NewDashboardHandler(dashboardSvc),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/faranhr/payroll-backend-go/internal/config"
	"github.com/faranhr/payroll-backend-go/internal/domain/advance"
	"github.com/faranhr/payroll-backend-go/internal/domain/attendance"
	"github.com/faranhr/payroll-backend-go/internal/domain/employee"
	"github.com/faranhr/payroll-backend-go/internal/domain/loan"
	"github.com/faranhr/payroll-backend-go/internal/domain/payroll"
	"github.com/faranhr/payroll-backend-go/internal/domain/report"
	"github.com/faranhr/payroll-backend-go/internal/fixtures"
	appHTTP "github.com/faranhr/payroll-backend-go/internal/handler/http"
	"github.com/faranhr/payroll-backend-go/internal/pkg/database"
	"github.com/faranhr/payroll-backend-go/internal/repository/memory"
	"github.com/faranhr/payroll-backend-go/internal/repository/postgresql"
	advanceService "github.com/faranhr/payroll-backend-go/internal/service/advance"
	attendanceService "github.com/faranhr/payroll-backend-go/internal/service/attendance"
	employeeService "github.com/faranhr/payroll-backend-go/internal/service/employee"
	loanService "github.com/faranhr/payroll-backend-go/internal/service/loan"
	payrollService "github.com/faranhr/payroll-backend-go/internal/service/payroll"
	reportService "github.com/faranhr/payroll-backend-go/internal/service/report"
	"github.com/go-chi/httplog/v3"
)

type repositories struct {
	employee   employee.EmployeeRepository
	attendance attendance.AttendanceRepository
	loan       loan.LoanRepository
	advance    advance.AdvanceRepository
	payroll    payroll.PayrollRepository
	report     report.ReportRepository
	transactor payroll.Transactor
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env == "development")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       logLevel(cfg.App.LogLevel),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "payroll-backend"),
		slog.String("env", cfg.App.Env),
	)

	ctx := context.Background()

	var repos repositories
	switch cfg.Store.Type {
	case "postgres":
		db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := postgresql.CreateTables(ctx, db); err != nil {
			logger.Error("failed to create tables", "error", err)
			os.Exit(1)
		}

		repos = repositories{
			employee:   postgresql.NewEmployeeRepository(db),
			attendance: postgresql.NewAttendanceRepository(db),
			loan:       postgresql.NewLoanRepository(db),
			advance:    postgresql.NewAdvanceRepository(db),
			payroll:    postgresql.NewPayrollRepository(db),
			report:     postgresql.NewReportRepository(db),
			transactor: postgresql.NewTransactor(db, logger),
		}
	case "memory":
		store := memory.NewStore()
		repos = repositories{
			employee:   memory.NewEmployeeRepository(store),
			attendance: memory.NewAttendanceRepository(store),
			loan:       memory.NewLoanRepository(store),
			advance:    memory.NewAdvanceRepository(store),
			payroll:    memory.NewPayrollRepository(store),
			report:     memory.NewReportRepository(store),
			transactor: store,
		}

		if err := fixtures.SeedDemoData(ctx, fixtures.Repositories{
			Employees:  repos.employee,
			Attendance: repos.attendance,
			Loans:      repos.loan,
			Advances:   repos.advance,
			Payroll:    repos.payroll,
		}); err != nil {
			logger.Error("failed to seed demo data", "error", err)
			os.Exit(1)
		}
		logger.Info("running in demo mode with in-memory store")
	}

	employeeSvc := employeeService.NewEmployeeService(repos.employee)
	attendanceSvc := attendanceService.NewAttendanceService(repos.attendance, repos.employee)
	loanSvc := loanService.NewLoanService(repos.loan, repos.employee)
	advanceSvc := advanceService.NewAdvanceService(repos.advance, repos.employee)
	payrollSvc := payrollService.NewPayrollService(
		repos.payroll,
		repos.employee,
		repos.attendance,
		repos.loan,
		repos.advance,
		repos.transactor,
		logger,
	)
	reportSvc := reportService.NewReportService(repos.report)

	router := appHTTP.NewRouter(logger, appHTTP.Handlers{
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Loan:       appHTTP.NewLoanHandler(loanSvc),
		Advance:    appHTTP.NewAdvanceHandler(advanceSvc),
		Payroll:    appHTTP.NewPayrollHandler(payrollSvc),
		Report:     appHTTP.NewReportHandler(reportSvc),
	})

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	logger.Info("server listening", "addr", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

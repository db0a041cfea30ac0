package payroll

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/faranhr/payroll-backend-go/internal/domain/advance"
	"github.com/faranhr/payroll-backend-go/internal/domain/attendance"
	"github.com/faranhr/payroll-backend-go/internal/domain/employee"
	"github.com/faranhr/payroll-backend-go/internal/domain/loan"
	"github.com/faranhr/payroll-backend-go/internal/domain/payroll"
	"github.com/faranhr/payroll-backend-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	store          *memory.Store
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	loanRepo       loan.LoanRepository
	advanceRepo    advance.AdvanceRepository
	payrollRepo    payroll.PayrollRepository
	service        payroll.PayrollService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{store: memory.NewStore()}
	env.employeeRepo = memory.NewEmployeeRepository(env.store)
	env.attendanceRepo = memory.NewAttendanceRepository(env.store)
	env.loanRepo = memory.NewLoanRepository(env.store)
	env.advanceRepo = memory.NewAdvanceRepository(env.store)
	env.payrollRepo = memory.NewPayrollRepository(env.store)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	env.service = NewPayrollService(
		env.payrollRepo,
		env.employeeRepo,
		env.attendanceRepo,
		env.loanRepo,
		env.advanceRepo,
		env.store,
		logger,
	)

	return env
}

func (env *testEnv) addEmployee(t *testing.T, code string, baseSalary int64, children int) employee.Employee {
	t.Helper()

	created, err := env.employeeRepo.Create(context.Background(), employee.Employee{
		EmployeeCode:         code,
		FirstName:            "Test",
		LastName:             code,
		NationalID:           code + "000000",
		HireDate:             time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		BaseSalary:           decimal.NewFromInt(baseSalary),
		HousingAllowanceRate: decimal.NewFromFloat(0.25),
		FamilyAllowanceRate:  decimal.NewFromFloat(0.10),
		ChildrenCount:        children,
		IsActive:             true,
	})
	require.NoError(t, err)
	return created
}

func generateRequest() payroll.GeneratePayrollRequest {
	return payroll.GeneratePayrollRequest{Year: 2024, Month: 3}
}

func TestGeneratePayroll(t *testing.T) {
	ctx := context.Background()

	t.Run("creates one record per active employee", func(t *testing.T) {
		env := newTestEnv(t)
		env.addEmployee(t, "1001", 56000000, 2)
		env.addEmployee(t, "1002", 48000000, 1)

		inactive := env.addEmployee(t, "1003", 75000000, 3)
		active := false
		err := env.employeeRepo.Update(ctx, employee.UpdateEmployeeRequest{ID: inactive.ID, IsActive: &active})
		require.NoError(t, err)

		result, err := env.service.GeneratePayroll(ctx, generateRequest())
		require.NoError(t, err)

		assert.Equal(t, 2, result.Total)
		assert.Equal(t, 2, result.Succeeded)
		assert.Empty(t, result.Skipped)

		records, err := env.payrollRepo.ListByPeriod(ctx, 2024, 3)
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})

	t.Run("overtime hours aggregate into the record", func(t *testing.T) {
		env := newTestEnv(t)
		emp := env.addEmployee(t, "1001", 56000000, 0)

		for _, hours := range []float64{1.5, 2.0} {
			_, err := env.attendanceRepo.Create(ctx, attendance.Attendance{
				EmployeeID:    emp.ID,
				Date:          time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
				OvertimeHours: decimal.NewFromFloat(hours),
				Status:        attendance.StatusPresent,
			})
			require.NoError(t, err)
		}
		// Outside the period, must not count.
		_, err := env.attendanceRepo.Create(ctx, attendance.Attendance{
			EmployeeID:    emp.ID,
			Date:          time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC),
			OvertimeHours: decimal.NewFromInt(8),
			Status:        attendance.StatusPresent,
		})
		require.NoError(t, err)

		_, err = env.service.GeneratePayroll(ctx, generateRequest())
		require.NoError(t, err)

		record, err := env.payrollRepo.GetByEmployeePeriod(ctx, emp.ID, 2024, 3)
		require.NoError(t, err)

		// 3.5 * (56,000,000 / 240) * 1.4
		expected := decimal.RequireFromString("1143333.33")
		assert.True(t, record.OvertimeAmount.Equal(expected), "got %s", record.OvertimeAmount)
	})

	t.Run("loan installment is applied exactly once", func(t *testing.T) {
		env := newTestEnv(t)
		emp := env.addEmployee(t, "1001", 56000000, 0)
		openLoan, err := env.loanRepo.Create(ctx, loan.Loan{
			EmployeeID:            emp.ID,
			LoanAmount:            decimal.NewFromInt(10000000),
			InstallmentAmount:     decimal.NewFromInt(500000),
			RemainingInstallments: 18,
			TotalInstallments:     20,
			StartDate:             time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			IsActive:              true,
		})
		require.NoError(t, err)

		_, err = env.service.GeneratePayroll(ctx, generateRequest())
		require.NoError(t, err)

		// Recompute for the same period.
		_, err = env.service.GeneratePayroll(ctx, generateRequest())
		require.NoError(t, err)

		after, err := env.loanRepo.GetByID(ctx, openLoan.ID)
		require.NoError(t, err)
		assert.Equal(t, 17, after.RemainingInstallments)

		record, err := env.payrollRepo.GetByEmployeePeriod(ctx, emp.ID, 2024, 3)
		require.NoError(t, err)
		assert.True(t, record.LoanDeduction.Equal(decimal.NewFromInt(500000)))
	})

	t.Run("loan deactivates when the last installment is applied", func(t *testing.T) {
		env := newTestEnv(t)
		emp := env.addEmployee(t, "1001", 56000000, 0)
		openLoan, err := env.loanRepo.Create(ctx, loan.Loan{
			EmployeeID:            emp.ID,
			LoanAmount:            decimal.NewFromInt(1000000),
			InstallmentAmount:     decimal.NewFromInt(500000),
			RemainingInstallments: 1,
			TotalInstallments:     2,
			StartDate:             time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			IsActive:              true,
		})
		require.NoError(t, err)

		_, err = env.service.GeneratePayroll(ctx, generateRequest())
		require.NoError(t, err)

		after, err := env.loanRepo.GetByID(ctx, openLoan.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, after.RemainingInstallments)
		assert.False(t, after.IsActive)
	})

	t.Run("advance is settled once and carried on recompute", func(t *testing.T) {
		env := newTestEnv(t)
		emp := env.addEmployee(t, "1001", 56000000, 0)
		adv, err := env.advanceRepo.Create(ctx, advance.Advance{
			EmployeeID:  emp.ID,
			Amount:      decimal.NewFromInt(2000000),
			AdvanceDate: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)

		_, err = env.service.GeneratePayroll(ctx, generateRequest())
		require.NoError(t, err)

		settled, err := env.advanceRepo.GetByID(ctx, adv.ID)
		require.NoError(t, err)
		assert.True(t, settled.IsSettled)

		_, err = env.service.GeneratePayroll(ctx, generateRequest())
		require.NoError(t, err)

		record, err := env.payrollRepo.GetByEmployeePeriod(ctx, emp.ID, 2024, 3)
		require.NoError(t, err)
		assert.True(t, record.AdvanceDeduction.Equal(decimal.NewFromInt(2000000)), "got %s", record.AdvanceDeduction)
	})

	t.Run("recompute preserves payment status", func(t *testing.T) {
		env := newTestEnv(t)
		emp := env.addEmployee(t, "1001", 56000000, 2)

		_, err := env.service.GeneratePayroll(ctx, generateRequest())
		require.NoError(t, err)

		record, err := env.payrollRepo.GetByEmployeePeriod(ctx, emp.ID, 2024, 3)
		require.NoError(t, err)
		require.NoError(t, env.service.PaySalary(ctx, record.ID))

		// New salary, then recompute.
		newSalary := decimal.NewFromInt(60000000)
		require.NoError(t, env.employeeRepo.Update(ctx, employee.UpdateEmployeeRequest{ID: emp.ID, BaseSalary: &newSalary}))

		_, err = env.service.GeneratePayroll(ctx, generateRequest())
		require.NoError(t, err)

		after, err := env.payrollRepo.GetByID(ctx, record.ID)
		require.NoError(t, err)
		assert.True(t, after.IsPaid)
		assert.NotNil(t, after.PaymentDate)
		assert.True(t, after.BaseSalary.Equal(newSalary))
	})

	t.Run("invalid employee record is skipped with a reason", func(t *testing.T) {
		env := newTestEnv(t)
		good := env.addEmployee(t, "1001", 56000000, 0)

		// The repository has no field checks, so stored rows can violate
		// the request-level rules.
		negativeSalary, err := env.employeeRepo.Create(ctx, employee.Employee{
			EmployeeCode:         "1002",
			FirstName:            "Test",
			LastName:             "1002",
			NationalID:           "1002000000",
			HireDate:             time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
			BaseSalary:           decimal.NewFromInt(-1000),
			HousingAllowanceRate: decimal.NewFromFloat(0.25),
			FamilyAllowanceRate:  decimal.NewFromFloat(0.10),
			IsActive:             true,
		})
		require.NoError(t, err)

		badRate, err := env.employeeRepo.Create(ctx, employee.Employee{
			EmployeeCode:         "1003",
			FirstName:            "Test",
			LastName:             "1003",
			NationalID:           "1003000000",
			HireDate:             time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
			BaseSalary:           decimal.NewFromInt(48000000),
			HousingAllowanceRate: decimal.NewFromFloat(1.5),
			FamilyAllowanceRate:  decimal.NewFromFloat(0.10),
			IsActive:             true,
		})
		require.NoError(t, err)

		result, err := env.service.GeneratePayroll(ctx, generateRequest())
		require.NoError(t, err)

		assert.Equal(t, 3, result.Total)
		assert.Equal(t, 1, result.Succeeded)
		require.Len(t, result.Skipped, 2)

		reasons := make(map[string]string, len(result.Skipped))
		for _, skipped := range result.Skipped {
			reasons[skipped.EmployeeCode] = skipped.Reason
		}
		assert.Equal(t, employee.ErrInvalidBaseSalary.Error(), reasons["1002"])
		assert.Equal(t, employee.ErrInvalidAllowanceRate.Error(), reasons["1003"])

		_, err = env.payrollRepo.GetByEmployeePeriod(ctx, good.ID, 2024, 3)
		assert.NoError(t, err)
		_, err = env.payrollRepo.GetByEmployeePeriod(ctx, negativeSalary.ID, 2024, 3)
		assert.ErrorIs(t, err, payroll.ErrPayrollRecordNotFound)
		_, err = env.payrollRepo.GetByEmployeePeriod(ctx, badRate.ID, 2024, 3)
		assert.ErrorIs(t, err, payroll.ErrPayrollRecordNotFound)
	})

	t.Run("invalid settings abort before any write", func(t *testing.T) {
		env := newTestEnv(t)
		env.addEmployee(t, "1001", 56000000, 0)

		bad := DefaultSettings()
		bad.InsuranceEmployeeRate = decimal.NewFromInt(3)
		_, err := env.payrollRepo.UpsertSettings(ctx, bad)
		require.NoError(t, err)

		_, err = env.service.GeneratePayroll(ctx, generateRequest())
		require.ErrorIs(t, err, payroll.ErrInvalidSettings)

		records, err := env.payrollRepo.ListByPeriod(ctx, 2024, 3)
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("no active employees is an error", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.service.GeneratePayroll(ctx, generateRequest())
		assert.ErrorIs(t, err, payroll.ErrNoActiveEmployees)
	})

	t.Run("invalid period is rejected", func(t *testing.T) {
		env := newTestEnv(t)
		env.addEmployee(t, "1001", 56000000, 0)

		_, err := env.service.GeneratePayroll(ctx, payroll.GeneratePayrollRequest{Year: 2024, Month: 13})
		assert.Error(t, err)
	})

	t.Run("cancelled context stops the batch", func(t *testing.T) {
		env := newTestEnv(t)
		env.addEmployee(t, "1001", 56000000, 0)

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := env.service.GeneratePayroll(cancelled, generateRequest())
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestSettlement(t *testing.T) {
	ctx := context.Background()

	t.Run("paying twice is a no-op", func(t *testing.T) {
		env := newTestEnv(t)
		emp := env.addEmployee(t, "1001", 56000000, 0)

		_, err := env.service.GeneratePayroll(ctx, generateRequest())
		require.NoError(t, err)

		record, err := env.payrollRepo.GetByEmployeePeriod(ctx, emp.ID, 2024, 3)
		require.NoError(t, err)

		require.NoError(t, env.service.PaySalary(ctx, record.ID))
		first, err := env.payrollRepo.GetByID(ctx, record.ID)
		require.NoError(t, err)

		require.NoError(t, env.service.PaySalary(ctx, record.ID))
		second, err := env.payrollRepo.GetByID(ctx, record.ID)
		require.NoError(t, err)

		assert.Equal(t, first.PaymentDate, second.PaymentDate)
	})

	t.Run("paying a missing record fails", func(t *testing.T) {
		env := newTestEnv(t)
		err := env.service.PaySalary(ctx, "no-such-record")
		assert.ErrorIs(t, err, payroll.ErrPayrollRecordNotFound)
	})

	t.Run("pay all settles only unpaid records", func(t *testing.T) {
		env := newTestEnv(t)
		a := env.addEmployee(t, "1001", 56000000, 0)
		env.addEmployee(t, "1002", 48000000, 0)

		_, err := env.service.GeneratePayroll(ctx, generateRequest())
		require.NoError(t, err)

		record, err := env.payrollRepo.GetByEmployeePeriod(ctx, a.ID, 2024, 3)
		require.NoError(t, err)
		require.NoError(t, env.service.PaySalary(ctx, record.ID))

		settled, err := env.service.PayAllForPeriod(ctx, 2024, 3)
		require.NoError(t, err)
		assert.Equal(t, int64(1), settled)

		// Everything is paid now, a second sweep settles nothing.
		settled, err = env.service.PayAllForPeriod(ctx, 2024, 3)
		require.NoError(t, err)
		assert.Equal(t, int64(0), settled)
	})
}

func TestRecords(t *testing.T) {
	ctx := context.Background()

	t.Run("summary splits paid and unpaid", func(t *testing.T) {
		env := newTestEnv(t)
		a := env.addEmployee(t, "1001", 56000000, 0)
		env.addEmployee(t, "1002", 48000000, 0)

		_, err := env.service.GeneratePayroll(ctx, generateRequest())
		require.NoError(t, err)

		record, err := env.payrollRepo.GetByEmployeePeriod(ctx, a.ID, 2024, 3)
		require.NoError(t, err)
		require.NoError(t, env.service.PaySalary(ctx, record.ID))

		summary, err := env.service.GetSummary(ctx, 2024, 3)
		require.NoError(t, err)

		assert.Equal(t, 2, summary.EmployeeCount)
		assert.Equal(t, 1, summary.PaidCount)
		assert.True(t, summary.PaidNet.Add(summary.UnpaidNet).Equal(summary.TotalNet))
		assert.True(t, summary.PaidNet.Equal(record.NetSalary))
	})

	t.Run("deleting a paid record is rejected", func(t *testing.T) {
		env := newTestEnv(t)
		emp := env.addEmployee(t, "1001", 56000000, 0)

		_, err := env.service.GeneratePayroll(ctx, generateRequest())
		require.NoError(t, err)

		record, err := env.payrollRepo.GetByEmployeePeriod(ctx, emp.ID, 2024, 3)
		require.NoError(t, err)
		require.NoError(t, env.service.PaySalary(ctx, record.ID))

		err = env.service.DeleteRecord(ctx, record.ID)
		assert.ErrorIs(t, err, payroll.ErrPayrollRecordAlreadyPaid)
	})

	t.Run("deleting an unpaid record works", func(t *testing.T) {
		env := newTestEnv(t)
		emp := env.addEmployee(t, "1001", 56000000, 0)

		_, err := env.service.GeneratePayroll(ctx, generateRequest())
		require.NoError(t, err)

		record, err := env.payrollRepo.GetByEmployeePeriod(ctx, emp.ID, 2024, 3)
		require.NoError(t, err)
		require.NoError(t, env.service.DeleteRecord(ctx, record.ID))

		_, err = env.payrollRepo.GetByID(ctx, record.ID)
		assert.ErrorIs(t, err, payroll.ErrPayrollRecordNotFound)
	})
}

func TestSettings(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults are served before any save", func(t *testing.T) {
		env := newTestEnv(t)

		settings, err := env.service.GetSettings(ctx)
		require.NoError(t, err)

		defaults := DefaultSettings()
		assert.True(t, settings.ReferenceBaseSalary.Equal(defaults.ReferenceBaseSalary))
		assert.True(t, settings.TaxThreshold.Equal(defaults.TaxThreshold))
	})

	t.Run("partial update keeps the other fields", func(t *testing.T) {
		env := newTestEnv(t)

		threshold := decimal.NewFromInt(60000000)
		updated, err := env.service.UpdateSettings(ctx, payroll.UpdateSettingsRequest{TaxThreshold: &threshold})
		require.NoError(t, err)

		assert.True(t, updated.TaxThreshold.Equal(threshold))
		assert.True(t, updated.HousingAllowanceRate.Equal(DefaultSettings().HousingAllowanceRate))
	})

	t.Run("out-of-range rate is rejected", func(t *testing.T) {
		env := newTestEnv(t)

		rate := decimal.NewFromInt(2)
		_, err := env.service.UpdateSettings(ctx, payroll.UpdateSettingsRequest{InsuranceEmployeeRate: &rate})
		assert.Error(t, err)
	})
}

func TestGeneratePayrollSkipsFailingEmployee(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	good := env.addEmployee(t, "1001", 56000000, 0)
	bad := env.addEmployee(t, "1002", 48000000, 0)

	failing := &failingOvertimeRepo{
		AttendanceRepository: env.attendanceRepo,
		failFor:              bad.ID,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewPayrollService(env.payrollRepo, env.employeeRepo, failing, env.loanRepo, env.advanceRepo, env.store, logger)

	result, err := svc.GeneratePayroll(ctx, generateRequest())
	require.NoError(t, err)

	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 1, result.Succeeded)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, "1002", result.Skipped[0].EmployeeCode)

	_, err = env.payrollRepo.GetByEmployeePeriod(ctx, good.ID, 2024, 3)
	assert.NoError(t, err)
	_, err = env.payrollRepo.GetByEmployeePeriod(ctx, bad.ID, 2024, 3)
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordNotFound)
}

type failingOvertimeRepo struct {
	attendance.AttendanceRepository
	failFor string
}

func (r *failingOvertimeRepo) SumOvertimeHours(ctx context.Context, employeeID string, year, month int) (decimal.Decimal, error) {
	if employeeID == r.failFor {
		return decimal.Decimal{}, errors.New("storage unavailable")
	}
	return r.AttendanceRepository.SumOvertimeHours(ctx, employeeID, year, month)
}

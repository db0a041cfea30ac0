// Package payroll implements the calculation engine: batch generation,
// settlement and rate configuration.
package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/faranhr/payroll-backend-go/internal/domain/advance"
	"github.com/faranhr/payroll-backend-go/internal/domain/attendance"
	"github.com/faranhr/payroll-backend-go/internal/domain/employee"
	"github.com/faranhr/payroll-backend-go/internal/domain/loan"
	"github.com/faranhr/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

type PayrollServiceImpl struct {
	payrollRepo    payroll.PayrollRepository
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	loanRepo       loan.LoanRepository
	advanceRepo    advance.AdvanceRepository
	transactor     payroll.Transactor
	logger         *slog.Logger
}

func NewPayrollService(
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	loanRepo loan.LoanRepository,
	advanceRepo advance.AdvanceRepository,
	transactor payroll.Transactor,
	logger *slog.Logger,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		payrollRepo:    payrollRepo,
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		loanRepo:       loanRepo,
		advanceRepo:    advanceRepo,
		transactor:     transactor,
		logger:         logger,
	}
}

// DefaultSettings are used until the first explicit configuration is saved.
func DefaultSettings() payroll.Settings {
	return payroll.Settings{
		ReferenceBaseSalary:   decimal.NewFromInt(56000000),
		HousingAllowanceRate:  decimal.NewFromFloat(0.25),
		FamilyAllowanceRate:   decimal.NewFromFloat(0.10),
		ChildAllowanceAmount:  decimal.NewFromInt(500000),
		InsuranceEmployeeRate: decimal.NewFromFloat(0.07),
		InsuranceEmployerRate: decimal.NewFromFloat(0.23),
		TaxThreshold:          decimal.NewFromInt(56000000),
	}
}

// ========== SETTINGS ==========

func (s *PayrollServiceImpl) currentSettings(ctx context.Context) (payroll.Settings, error) {
	settings, err := s.payrollRepo.GetSettings(ctx)
	if err != nil {
		if errors.Is(err, payroll.ErrSettingsNotFound) {
			return DefaultSettings(), nil
		}
		return payroll.Settings{}, err
	}
	return settings, nil
}

func (s *PayrollServiceImpl) GetSettings(ctx context.Context) (payroll.SettingsResponse, error) {
	settings, err := s.currentSettings(ctx)
	if err != nil {
		return payroll.SettingsResponse{}, err
	}
	return toSettingsResponse(settings), nil
}

func (s *PayrollServiceImpl) UpdateSettings(ctx context.Context, req payroll.UpdateSettingsRequest) (payroll.SettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.SettingsResponse{}, err
	}

	current, err := s.currentSettings(ctx)
	if err != nil {
		return payroll.SettingsResponse{}, err
	}

	if req.ReferenceBaseSalary != nil {
		current.ReferenceBaseSalary = *req.ReferenceBaseSalary
	}
	if req.HousingAllowanceRate != nil {
		current.HousingAllowanceRate = *req.HousingAllowanceRate
	}
	if req.FamilyAllowanceRate != nil {
		current.FamilyAllowanceRate = *req.FamilyAllowanceRate
	}
	if req.ChildAllowanceAmount != nil {
		current.ChildAllowanceAmount = *req.ChildAllowanceAmount
	}
	if req.InsuranceEmployeeRate != nil {
		current.InsuranceEmployeeRate = *req.InsuranceEmployeeRate
	}
	if req.InsuranceEmployerRate != nil {
		current.InsuranceEmployerRate = *req.InsuranceEmployerRate
	}
	if req.TaxThreshold != nil {
		current.TaxThreshold = *req.TaxThreshold
	}

	updated, err := s.payrollRepo.UpsertSettings(ctx, current)
	if err != nil {
		return payroll.SettingsResponse{}, err
	}

	return toSettingsResponse(updated), nil
}

// ========== CALCULATION ==========

func (s *PayrollServiceImpl) GeneratePayroll(ctx context.Context, req payroll.GeneratePayrollRequest) (payroll.RunResult, error) {
	if err := req.Validate(); err != nil {
		return payroll.RunResult{}, err
	}

	settings, err := s.currentSettings(ctx)
	if err != nil {
		return payroll.RunResult{}, err
	}
	// A broken rate configuration aborts the whole run before any write.
	if err := settings.Validate(); err != nil {
		return payroll.RunResult{}, fmt.Errorf("%w: %v", payroll.ErrInvalidSettings, err)
	}

	employees, err := s.employeeRepo.GetActive(ctx)
	if err != nil {
		return payroll.RunResult{}, err
	}
	if len(employees) == 0 {
		return payroll.RunResult{}, payroll.ErrNoActiveEmployees
	}

	result := payroll.RunResult{
		Year:  req.Year,
		Month: req.Month,
		Total: len(employees),
	}
	for _, emp := range employees {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		err := s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
			return s.generateForEmployee(txCtx, emp, req.Year, req.Month, settings)
		})
		if err != nil {
			s.logger.WarnContext(ctx, "payroll calculation skipped",
				"employee_code", emp.EmployeeCode,
				"year", req.Year,
				"month", req.Month,
				"error", err,
			)
			result.Skipped = append(result.Skipped, payroll.SkippedEmployee{
				EmployeeID:   emp.ID,
				EmployeeCode: emp.EmployeeCode,
				Reason:       err.Error(),
			})
			continue
		}
		result.Succeeded++
	}

	s.logger.InfoContext(ctx, "payroll run finished",
		"year", req.Year,
		"month", req.Month,
		"total", result.Total,
		"succeeded", result.Succeeded,
		"skipped", len(result.Skipped),
	)

	return result, nil
}

// generateForEmployee runs inside one transaction. Deduction side effects
// happen only when the period record is created: a recomputation carries the
// deductions already booked on the existing record so a loan installment is
// never applied twice for the same period.
func (s *PayrollServiceImpl) generateForEmployee(ctx context.Context, emp employee.Employee, year, month int, settings payroll.Settings) error {
	if err := emp.Validate(); err != nil {
		return err
	}

	inputs, firstRun, err := s.resolvePeriodInputs(ctx, emp, year, month)
	if err != nil {
		return err
	}

	record := Calculate(emp, inputs, settings)
	record.Year = year
	record.Month = month

	if _, _, err := s.payrollRepo.Upsert(ctx, record); err != nil {
		return err
	}

	if firstRun {
		if inputs.LoanID != nil {
			if err := s.loanRepo.ApplyInstallment(ctx, *inputs.LoanID); err != nil {
				return fmt.Errorf("failed to apply loan installment: %w", err)
			}
		}
		if inputs.AdvanceID != nil {
			if err := s.advanceRepo.MarkSettled(ctx, *inputs.AdvanceID); err != nil {
				return fmt.Errorf("failed to settle advance: %w", err)
			}
		}
	}

	return nil
}

// resolvePeriodInputs gathers overtime and deductions for one employee and
// period. firstRun reports whether no record exists for the period yet, which
// is when open loans and advances are resolved and later consumed.
func (s *PayrollServiceImpl) resolvePeriodInputs(ctx context.Context, emp employee.Employee, year, month int) (payroll.PeriodInputs, bool, error) {
	var inputs payroll.PeriodInputs

	overtime, err := s.attendanceRepo.SumOvertimeHours(ctx, emp.ID, year, month)
	if err != nil {
		return payroll.PeriodInputs{}, false, fmt.Errorf("failed to resolve overtime hours: %w", err)
	}
	inputs.OvertimeHours = overtime

	existing, err := s.payrollRepo.GetByEmployeePeriod(ctx, emp.ID, year, month)
	if err == nil {
		inputs.LoanInstallment = existing.LoanDeduction
		inputs.AdvanceAmount = existing.AdvanceDeduction
		inputs.OtherAllowances = existing.OtherAllowances
		inputs.OtherDeductions = existing.OtherDeductions
		return inputs, false, nil
	}
	if !errors.Is(err, payroll.ErrPayrollRecordNotFound) {
		return payroll.PeriodInputs{}, false, err
	}

	openLoan, err := s.loanRepo.GetOpenByEmployee(ctx, emp.ID)
	switch {
	case err == nil:
		inputs.LoanID = &openLoan.ID
		inputs.LoanInstallment = openLoan.InstallmentAmount
	case errors.Is(err, loan.ErrNoOpenLoan):
		inputs.LoanInstallment = decimal.Zero
	default:
		return payroll.PeriodInputs{}, false, fmt.Errorf("failed to resolve open loan: %w", err)
	}

	openAdvance, err := s.advanceRepo.GetOpenByEmployee(ctx, emp.ID)
	switch {
	case err == nil:
		inputs.AdvanceID = &openAdvance.ID
		inputs.AdvanceAmount = openAdvance.Amount
	case errors.Is(err, advance.ErrNoOpenAdvance):
		inputs.AdvanceAmount = decimal.Zero
	default:
		return payroll.PeriodInputs{}, false, fmt.Errorf("failed to resolve open advance: %w", err)
	}

	inputs.OtherAllowances = decimal.Zero
	inputs.OtherDeductions = decimal.Zero

	return inputs, true, nil
}

// ========== RECORDS ==========

func (s *PayrollServiceImpl) GetRecord(ctx context.Context, id string) (payroll.PayrollRecordResponse, error) {
	record, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	return toRecordResponse(record), nil
}

func (s *PayrollServiceImpl) ListRecords(ctx context.Context, year, month int) ([]payroll.PayrollRecordResponse, error) {
	if err := validatePeriod(year, month); err != nil {
		return nil, err
	}

	records, err := s.payrollRepo.ListByPeriod(ctx, year, month)
	if err != nil {
		return nil, err
	}

	responses := make([]payroll.PayrollRecordResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, toRecordResponse(record))
	}

	return responses, nil
}

func (s *PayrollServiceImpl) GetSummary(ctx context.Context, year, month int) (payroll.SummaryResponse, error) {
	if err := validatePeriod(year, month); err != nil {
		return payroll.SummaryResponse{}, err
	}

	summary, err := s.payrollRepo.GetSummary(ctx, year, month)
	if err != nil {
		return payroll.SummaryResponse{}, err
	}

	return payroll.SummaryResponse{
		EmployeeCount: summary.EmployeeCount,
		PaidCount:     summary.PaidCount,
		TotalNet:      summary.TotalNet,
		PaidNet:       summary.PaidNet,
		UnpaidNet:     summary.UnpaidNet,
	}, nil
}

func (s *PayrollServiceImpl) DeleteRecord(ctx context.Context, id string) error {
	record, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if record.IsPaid {
		return payroll.ErrPayrollRecordAlreadyPaid
	}
	return s.payrollRepo.DeleteByID(ctx, id)
}

// ========== SETTLEMENT ==========

func (s *PayrollServiceImpl) PaySalary(ctx context.Context, id string) error {
	transitioned, err := s.payrollRepo.MarkPaid(ctx, id, time.Now())
	if err != nil {
		return err
	}
	if !transitioned {
		// Paying a paid record again is a no-op, not an error.
		s.logger.DebugContext(ctx, "payroll record already paid", "record_id", id)
	}
	return nil
}

func (s *PayrollServiceImpl) PayAllForPeriod(ctx context.Context, year, month int) (int64, error) {
	if err := validatePeriod(year, month); err != nil {
		return 0, err
	}

	settled, err := s.payrollRepo.MarkAllPaidForPeriod(ctx, year, month, time.Now())
	if err != nil {
		return 0, err
	}

	s.logger.InfoContext(ctx, "period settled",
		"year", year,
		"month", month,
		"records", settled,
	)

	return settled, nil
}

// ========== HELPERS ==========

func validatePeriod(year, month int) error {
	req := payroll.GeneratePayrollRequest{Year: year, Month: month}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("%w: %v", payroll.ErrInvalidPeriod, err)
	}
	return nil
}

func toSettingsResponse(s payroll.Settings) payroll.SettingsResponse {
	return payroll.SettingsResponse{
		ReferenceBaseSalary:   s.ReferenceBaseSalary,
		HousingAllowanceRate:  s.HousingAllowanceRate,
		FamilyAllowanceRate:   s.FamilyAllowanceRate,
		ChildAllowanceAmount:  s.ChildAllowanceAmount,
		InsuranceEmployeeRate: s.InsuranceEmployeeRate,
		InsuranceEmployerRate: s.InsuranceEmployerRate,
		TaxThreshold:          s.TaxThreshold,
	}
}

func toRecordResponse(r payroll.PayrollRecord) payroll.PayrollRecordResponse {
	resp := payroll.PayrollRecordResponse{
		ID:                r.ID,
		EmployeeID:        r.EmployeeID,
		Year:              r.Year,
		Month:             r.Month,
		BaseSalary:        r.BaseSalary,
		HousingAllowance:  r.HousingAllowance,
		FamilyAllowance:   r.FamilyAllowance,
		ChildAllowance:    r.ChildAllowance,
		OvertimeAmount:    r.OvertimeAmount,
		OtherAllowances:   r.OtherAllowances,
		GrossSalary:       r.GrossSalary,
		InsuranceEmployee: r.InsuranceEmployee,
		InsuranceEmployer: r.InsuranceEmployer,
		TaxAmount:         r.TaxAmount,
		LoanDeduction:     r.LoanDeduction,
		AdvanceDeduction:  r.AdvanceDeduction,
		OtherDeductions:   r.OtherDeductions,
		TotalDeductions:   r.TotalDeductions(),
		NetSalary:         r.NetSalary,
		IsPaid:            r.IsPaid,
	}
	if r.EmployeeCode != nil {
		resp.EmployeeCode = *r.EmployeeCode
	}
	if r.EmployeeName != nil {
		resp.EmployeeName = *r.EmployeeName
	}
	if r.PaymentDate != nil {
		d := r.PaymentDate.Format("2006-01-02")
		resp.PaymentDate = &d
	}
	return resp
}

package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/faranhr/payroll-backend-go/internal/domain/payroll"
	"github.com/faranhr/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

// ========== SETTINGS ==========

func (r *payrollRepository) GetSettings(ctx context.Context) (payroll.Settings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT reference_base_salary, housing_allowance_rate, family_allowance_rate,
			   child_allowance_amount, insurance_employee_rate, insurance_employer_rate,
			   tax_threshold, updated_at
		FROM payroll_settings
		WHERE id = 1
	`

	var s payroll.Settings
	err := q.QueryRow(ctx, query).Scan(
		&s.ReferenceBaseSalary, &s.HousingAllowanceRate, &s.FamilyAllowanceRate,
		&s.ChildAllowanceAmount, &s.InsuranceEmployeeRate, &s.InsuranceEmployerRate,
		&s.TaxThreshold, &s.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Settings{}, payroll.ErrSettingsNotFound
		}
		return payroll.Settings{}, fmt.Errorf("failed to get payroll settings: %w", err)
	}

	return s, nil
}

func (r *payrollRepository) UpsertSettings(ctx context.Context, settings payroll.Settings) (payroll.Settings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_settings (
			id, reference_base_salary, housing_allowance_rate, family_allowance_rate,
			child_allowance_amount, insurance_employee_rate, insurance_employer_rate, tax_threshold
		) VALUES (1, $1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			reference_base_salary = EXCLUDED.reference_base_salary,
			housing_allowance_rate = EXCLUDED.housing_allowance_rate,
			family_allowance_rate = EXCLUDED.family_allowance_rate,
			child_allowance_amount = EXCLUDED.child_allowance_amount,
			insurance_employee_rate = EXCLUDED.insurance_employee_rate,
			insurance_employer_rate = EXCLUDED.insurance_employer_rate,
			tax_threshold = EXCLUDED.tax_threshold,
			updated_at = NOW()
		RETURNING reference_base_salary, housing_allowance_rate, family_allowance_rate,
			child_allowance_amount, insurance_employee_rate, insurance_employer_rate,
			tax_threshold, updated_at
	`

	var s payroll.Settings
	err := q.QueryRow(ctx, query,
		settings.ReferenceBaseSalary, settings.HousingAllowanceRate, settings.FamilyAllowanceRate,
		settings.ChildAllowanceAmount, settings.InsuranceEmployeeRate, settings.InsuranceEmployerRate,
		settings.TaxThreshold,
	).Scan(
		&s.ReferenceBaseSalary, &s.HousingAllowanceRate, &s.FamilyAllowanceRate,
		&s.ChildAllowanceAmount, &s.InsuranceEmployeeRate, &s.InsuranceEmployerRate,
		&s.TaxThreshold, &s.UpdatedAt,
	)
	if err != nil {
		return payroll.Settings{}, fmt.Errorf("failed to upsert payroll settings: %w", err)
	}

	return s, nil
}

// ========== RECORDS ==========

const payrollSelect = `
	SELECT pr.id, pr.personnel_id, pr.year, pr.month,
		   pr.base_salary, pr.housing_allowance, pr.family_allowance, pr.child_allowance,
		   pr.overtime_amount, pr.other_allowances, pr.gross_salary,
		   pr.insurance_employee, pr.insurance_employer, pr.tax_amount,
		   pr.loan_deduction, pr.advance_deduction, pr.other_deductions,
		   pr.net_salary, pr.is_paid, pr.payment_date, pr.created_at,
		   p.employee_code, p.first_name || ' ' || p.last_name
	FROM payroll pr
	JOIN personnel p ON pr.personnel_id = p.id
`

func scanPayrollRecord(row pgx.Row) (payroll.PayrollRecord, error) {
	var rec payroll.PayrollRecord
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.Year, &rec.Month,
		&rec.BaseSalary, &rec.HousingAllowance, &rec.FamilyAllowance, &rec.ChildAllowance,
		&rec.OvertimeAmount, &rec.OtherAllowances, &rec.GrossSalary,
		&rec.InsuranceEmployee, &rec.InsuranceEmployer, &rec.TaxAmount,
		&rec.LoanDeduction, &rec.AdvanceDeduction, &rec.OtherDeductions,
		&rec.NetSalary, &rec.IsPaid, &rec.PaymentDate, &rec.CreatedAt,
		&rec.EmployeeCode, &rec.EmployeeName,
	)
	return rec, err
}

func (r *payrollRepository) Upsert(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, bool, error) {
	q := GetQuerier(ctx, r.db)

	// Computed columns only; is_paid and payment_date survive recomputation.
	query := `
		INSERT INTO payroll (
			personnel_id, year, month, base_salary, housing_allowance, family_allowance,
			child_allowance, overtime_amount, other_allowances, gross_salary,
			insurance_employee, insurance_employer, tax_amount,
			loan_deduction, advance_deduction, other_deductions, net_salary
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (personnel_id, year, month) DO UPDATE SET
			base_salary = EXCLUDED.base_salary,
			housing_allowance = EXCLUDED.housing_allowance,
			family_allowance = EXCLUDED.family_allowance,
			child_allowance = EXCLUDED.child_allowance,
			overtime_amount = EXCLUDED.overtime_amount,
			other_allowances = EXCLUDED.other_allowances,
			gross_salary = EXCLUDED.gross_salary,
			insurance_employee = EXCLUDED.insurance_employee,
			insurance_employer = EXCLUDED.insurance_employer,
			tax_amount = EXCLUDED.tax_amount,
			loan_deduction = EXCLUDED.loan_deduction,
			advance_deduction = EXCLUDED.advance_deduction,
			other_deductions = EXCLUDED.other_deductions,
			net_salary = EXCLUDED.net_salary
		RETURNING id, personnel_id, year, month, base_salary, housing_allowance,
			family_allowance, child_allowance, overtime_amount, other_allowances,
			gross_salary, insurance_employee, insurance_employer, tax_amount,
			loan_deduction, advance_deduction, other_deductions, net_salary,
			is_paid, payment_date, created_at, (xmax = 0)
	`

	var rec payroll.PayrollRecord
	var inserted bool
	err := q.QueryRow(ctx, query,
		record.EmployeeID, record.Year, record.Month,
		record.BaseSalary, record.HousingAllowance, record.FamilyAllowance,
		record.ChildAllowance, record.OvertimeAmount, record.OtherAllowances,
		record.GrossSalary, record.InsuranceEmployee, record.InsuranceEmployer,
		record.TaxAmount, record.LoanDeduction, record.AdvanceDeduction,
		record.OtherDeductions, record.NetSalary,
	).Scan(
		&rec.ID, &rec.EmployeeID, &rec.Year, &rec.Month,
		&rec.BaseSalary, &rec.HousingAllowance, &rec.FamilyAllowance, &rec.ChildAllowance,
		&rec.OvertimeAmount, &rec.OtherAllowances, &rec.GrossSalary,
		&rec.InsuranceEmployee, &rec.InsuranceEmployer, &rec.TaxAmount,
		&rec.LoanDeduction, &rec.AdvanceDeduction, &rec.OtherDeductions,
		&rec.NetSalary, &rec.IsPaid, &rec.PaymentDate, &rec.CreatedAt, &inserted,
	)
	if err != nil {
		return payroll.PayrollRecord{}, false, fmt.Errorf("failed to upsert payroll record: %w", err)
	}

	return rec, inserted, nil
}

func (r *payrollRepository) GetByID(ctx context.Context, id string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	rec, err := scanPayrollRecord(q.QueryRow(ctx, payrollSelect+` WHERE pr.id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return rec, nil
}

func (r *payrollRepository) GetByEmployeePeriod(ctx context.Context, employeeID string, year, month int) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := payrollSelect + ` WHERE pr.personnel_id = $1 AND pr.year = $2 AND pr.month = $3`

	rec, err := scanPayrollRecord(q.QueryRow(ctx, query, employeeID, year, month))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record by period: %w", err)
	}

	return rec, nil
}

func (r *payrollRepository) ListByPeriod(ctx context.Context, year, month int) ([]payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := payrollSelect + ` WHERE pr.year = $1 AND pr.month = $2 ORDER BY p.employee_code`

	rows, err := q.Query(ctx, query, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.PayrollRecord
	for rows.Next() {
		rec, err := scanPayrollRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

func (r *payrollRepository) DeleteByID(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	var deletedID string
	err := q.QueryRow(ctx, `DELETE FROM payroll WHERE id = $1 RETURNING id`, id).Scan(&deletedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.ErrPayrollRecordNotFound
		}
		return fmt.Errorf("failed to delete payroll record: %w", err)
	}

	return nil
}

// ========== SETTLEMENT ==========

func (r *payrollRepository) MarkPaid(ctx context.Context, id string, paymentDate time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll
		SET is_paid = TRUE, payment_date = $2
		WHERE id = $1 AND is_paid = FALSE
	`

	tag, err := q.Exec(ctx, query, id, paymentDate)
	if err != nil {
		return false, fmt.Errorf("failed to mark payroll record paid: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return true, nil
	}

	// Nothing updated: either already paid (fine) or missing.
	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM payroll WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check payroll record: %w", err)
	}
	if !exists {
		return false, payroll.ErrPayrollRecordNotFound
	}

	return false, nil
}

func (r *payrollRepository) MarkAllPaidForPeriod(ctx context.Context, year, month int, paymentDate time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll
		SET is_paid = TRUE, payment_date = $3
		WHERE year = $1 AND month = $2 AND is_paid = FALSE
	`

	tag, err := q.Exec(ctx, query, year, month, paymentDate)
	if err != nil {
		return 0, fmt.Errorf("failed to mark period paid: %w", err)
	}

	return tag.RowsAffected(), nil
}

// ========== AGGREGATIONS ==========

func (r *payrollRepository) GetSummary(ctx context.Context, year, month int) (payroll.Summary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*),
			   COUNT(CASE WHEN is_paid THEN 1 END),
			   COALESCE(SUM(net_salary), 0),
			   COALESCE(SUM(CASE WHEN is_paid THEN net_salary END), 0),
			   COALESCE(SUM(CASE WHEN NOT is_paid THEN net_salary END), 0)
		FROM payroll
		WHERE year = $1 AND month = $2
	`

	var s payroll.Summary
	err := q.QueryRow(ctx, query, year, month).Scan(
		&s.EmployeeCount, &s.PaidCount, &s.TotalNet, &s.PaidNet, &s.UnpaidNet,
	)
	if err != nil {
		return payroll.Summary{}, fmt.Errorf("failed to get payroll summary: %w", err)
	}

	return s, nil
}

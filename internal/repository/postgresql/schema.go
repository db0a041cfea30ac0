package postgresql

import (
	"context"
	"fmt"

	"github.com/faranhr/payroll-backend-go/internal/pkg/database"
)

// CreateTables bootstraps the schema on startup. Statements are idempotent.
func CreateTables(ctx context.Context, db *database.DB) error {
	tables := []struct {
		name string
		ddl  string
	}{
		{"personnel", `
			CREATE TABLE IF NOT EXISTS personnel (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				employee_code VARCHAR(20) UNIQUE NOT NULL,
				first_name VARCHAR(100) NOT NULL,
				last_name VARCHAR(100) NOT NULL,
				national_id VARCHAR(10) UNIQUE NOT NULL,
				hire_date DATE NOT NULL,
				position VARCHAR(100),
				base_salary DECIMAL(15,2) NOT NULL CHECK (base_salary > 0),
				housing_allowance_rate DECIMAL(5,2) NOT NULL DEFAULT 0.25,
				family_allowance_rate DECIMAL(5,2) NOT NULL DEFAULT 0.10,
				children_count INTEGER NOT NULL DEFAULT 0,
				is_active BOOLEAN NOT NULL DEFAULT TRUE,
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			)
		`},
		{"attendance", `
			CREATE TABLE IF NOT EXISTS attendance (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				personnel_id UUID NOT NULL REFERENCES personnel(id),
				date DATE NOT NULL,
				entry_time VARCHAR(5),
				exit_time VARCHAR(5),
				overtime_hours DECIMAL(4,2) NOT NULL DEFAULT 0,
				status VARCHAR(20) NOT NULL DEFAULT 'present',
				note TEXT,
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			)
		`},
		{"loans", `
			CREATE TABLE IF NOT EXISTS loans (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				personnel_id UUID NOT NULL REFERENCES personnel(id),
				loan_amount DECIMAL(15,2) NOT NULL,
				installment_amount DECIMAL(15,2) NOT NULL,
				remaining_installments INTEGER NOT NULL,
				total_installments INTEGER NOT NULL,
				start_date DATE NOT NULL,
				note TEXT,
				is_active BOOLEAN NOT NULL DEFAULT TRUE,
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				CHECK (remaining_installments <= total_installments)
			)
		`},
		{"advances", `
			CREATE TABLE IF NOT EXISTS advances (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				personnel_id UUID NOT NULL REFERENCES personnel(id),
				advance_amount DECIMAL(15,2) NOT NULL,
				advance_date DATE NOT NULL,
				note TEXT,
				is_settled BOOLEAN NOT NULL DEFAULT FALSE,
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			)
		`},
		{"payroll", `
			CREATE TABLE IF NOT EXISTS payroll (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				personnel_id UUID NOT NULL REFERENCES personnel(id),
				year INTEGER NOT NULL,
				month INTEGER NOT NULL CHECK (month BETWEEN 1 AND 12),
				base_salary DECIMAL(15,2) NOT NULL,
				housing_allowance DECIMAL(15,2) NOT NULL DEFAULT 0,
				family_allowance DECIMAL(15,2) NOT NULL DEFAULT 0,
				child_allowance DECIMAL(15,2) NOT NULL DEFAULT 0,
				overtime_amount DECIMAL(15,2) NOT NULL DEFAULT 0,
				other_allowances DECIMAL(15,2) NOT NULL DEFAULT 0,
				gross_salary DECIMAL(15,2) NOT NULL,
				insurance_employee DECIMAL(15,2) NOT NULL DEFAULT 0,
				insurance_employer DECIMAL(15,2) NOT NULL DEFAULT 0,
				tax_amount DECIMAL(15,2) NOT NULL DEFAULT 0,
				loan_deduction DECIMAL(15,2) NOT NULL DEFAULT 0,
				advance_deduction DECIMAL(15,2) NOT NULL DEFAULT 0,
				other_deductions DECIMAL(15,2) NOT NULL DEFAULT 0,
				net_salary DECIMAL(15,2) NOT NULL,
				is_paid BOOLEAN NOT NULL DEFAULT FALSE,
				payment_date DATE,
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				UNIQUE (personnel_id, year, month)
			)
		`},
		{"payroll_settings", `
			CREATE TABLE IF NOT EXISTS payroll_settings (
				id INTEGER PRIMARY KEY DEFAULT 1 CHECK (id = 1),
				reference_base_salary DECIMAL(15,2) NOT NULL,
				housing_allowance_rate DECIMAL(5,2) NOT NULL,
				family_allowance_rate DECIMAL(5,2) NOT NULL,
				child_allowance_amount DECIMAL(15,2) NOT NULL,
				insurance_employee_rate DECIMAL(5,2) NOT NULL,
				insurance_employer_rate DECIMAL(5,2) NOT NULL,
				tax_threshold DECIMAL(15,2) NOT NULL,
				updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			)
		`},
	}

	for _, table := range tables {
		if _, err := db.Exec(ctx, table.ddl); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_attendance_personnel_date ON attendance (personnel_id, date)`,
		`CREATE INDEX IF NOT EXISTS idx_loans_personnel ON loans (personnel_id)`,
		`CREATE INDEX IF NOT EXISTS idx_advances_personnel ON advances (personnel_id)`,
		`CREATE INDEX IF NOT EXISTS idx_payroll_period ON payroll (year, month)`,
	}
	for _, idx := range indexes {
		if _, err := db.Exec(ctx, idx); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

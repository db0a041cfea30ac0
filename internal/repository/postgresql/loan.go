package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/faranhr/payroll-backend-go/internal/domain/loan"
	"github.com/faranhr/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type loanRepository struct {
	db *database.DB
}

func NewLoanRepository(db *database.DB) loan.LoanRepository {
	return &loanRepository{db: db}
}

const loanSelect = `
	SELECT l.id, l.personnel_id, l.loan_amount, l.installment_amount,
		   l.remaining_installments, l.total_installments, l.start_date,
		   l.note, l.is_active, l.created_at,
		   p.employee_code, p.first_name || ' ' || p.last_name
	FROM loans l
	JOIN personnel p ON l.personnel_id = p.id
`

func scanLoan(row pgx.Row) (loan.Loan, error) {
	var l loan.Loan
	err := row.Scan(
		&l.ID, &l.EmployeeID, &l.LoanAmount, &l.InstallmentAmount,
		&l.RemainingInstallments, &l.TotalInstallments, &l.StartDate,
		&l.Note, &l.IsActive, &l.CreatedAt,
		&l.EmployeeCode, &l.EmployeeName,
	)
	return l, err
}

func (r *loanRepository) Create(ctx context.Context, newLoan loan.Loan) (loan.Loan, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO loans (personnel_id, loan_amount, installment_amount,
			remaining_installments, total_installments, start_date, note, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, personnel_id, loan_amount, installment_amount,
			remaining_installments, total_installments, start_date, note, is_active, created_at
	`

	var l loan.Loan
	err := q.QueryRow(ctx, query,
		newLoan.EmployeeID, newLoan.LoanAmount, newLoan.InstallmentAmount,
		newLoan.RemainingInstallments, newLoan.TotalInstallments,
		newLoan.StartDate, newLoan.Note, newLoan.IsActive,
	).Scan(
		&l.ID, &l.EmployeeID, &l.LoanAmount, &l.InstallmentAmount,
		&l.RemainingInstallments, &l.TotalInstallments, &l.StartDate,
		&l.Note, &l.IsActive, &l.CreatedAt,
	)
	if err != nil {
		return loan.Loan{}, fmt.Errorf("failed to create loan: %w", err)
	}

	return l, nil
}

func (r *loanRepository) GetByID(ctx context.Context, id string) (loan.Loan, error) {
	q := GetQuerier(ctx, r.db)

	l, err := scanLoan(q.QueryRow(ctx, loanSelect+` WHERE l.id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return loan.Loan{}, loan.ErrLoanNotFound
		}
		return loan.Loan{}, fmt.Errorf("failed to get loan: %w", err)
	}

	return l, nil
}

func (r *loanRepository) List(ctx context.Context, activeOnly bool) ([]loan.Loan, error) {
	q := GetQuerier(ctx, r.db)

	query := loanSelect
	if activeOnly {
		query += ` WHERE l.is_active = TRUE`
	}
	query += ` ORDER BY l.start_date, p.employee_code`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}
	defer rows.Close()

	return collectLoans(rows)
}

func (r *loanRepository) ListByEmployee(ctx context.Context, employeeID string) ([]loan.Loan, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, loanSelect+` WHERE l.personnel_id = $1 ORDER BY l.start_date`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employee loans: %w", err)
	}
	defer rows.Close()

	return collectLoans(rows)
}

func collectLoans(rows pgx.Rows) ([]loan.Loan, error) {
	var loans []loan.Loan
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan loan: %w", err)
		}
		loans = append(loans, l)
	}
	return loans, rows.Err()
}

func (r *loanRepository) Update(ctx context.Context, req loan.UpdateLoanRequest) error {
	q := GetQuerier(ctx, r.db)

	setParts := []string{}
	args := []interface{}{req.ID}
	argIdx := 2

	if req.InstallmentAmount != nil {
		setParts = append(setParts, fmt.Sprintf("installment_amount = $%d", argIdx))
		args = append(args, *req.InstallmentAmount)
		argIdx++
	}
	if req.RemainingInstallments != nil {
		setParts = append(setParts, fmt.Sprintf("remaining_installments = $%d", argIdx))
		args = append(args, *req.RemainingInstallments)
		argIdx++
	}
	if req.Note != nil {
		setParts = append(setParts, fmt.Sprintf("note = $%d", argIdx))
		args = append(args, *req.Note)
		argIdx++
	}
	if req.IsActive != nil {
		setParts = append(setParts, fmt.Sprintf("is_active = $%d", argIdx))
		args = append(args, *req.IsActive)
		argIdx++
	}

	if len(setParts) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		UPDATE loans
		SET %s
		WHERE id = $1
		RETURNING id
	`, strings.Join(setParts, ", "))

	var updatedID string
	err := q.QueryRow(ctx, query, args...).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return loan.ErrLoanNotFound
		}
		if strings.Contains(err.Error(), "loans_check") {
			return loan.ErrInvalidInstallments
		}
		return fmt.Errorf("failed to update loan: %w", err)
	}

	return nil
}

func (r *loanRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	var deletedID string
	err := q.QueryRow(ctx, `DELETE FROM loans WHERE id = $1 RETURNING id`, id).Scan(&deletedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return loan.ErrLoanNotFound
		}
		return fmt.Errorf("failed to delete loan: %w", err)
	}

	return nil
}

func (r *loanRepository) GetOpenByEmployee(ctx context.Context, employeeID string) (loan.Loan, error) {
	q := GetQuerier(ctx, r.db)

	// Oldest loan first: one loan is serviced at a time per payroll cycle.
	query := loanSelect + `
		WHERE l.personnel_id = $1 AND l.is_active = TRUE AND l.remaining_installments > 0
		ORDER BY l.start_date, l.created_at
		LIMIT 1
	`

	l, err := scanLoan(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return loan.Loan{}, loan.ErrNoOpenLoan
		}
		return loan.Loan{}, fmt.Errorf("failed to get open loan: %w", err)
	}

	return l, nil
}

func (r *loanRepository) ApplyInstallment(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE loans
		SET remaining_installments = remaining_installments - 1,
			is_active = (remaining_installments - 1 > 0)
		WHERE id = $1 AND remaining_installments > 0
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, id).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return loan.ErrLoanFullyRepaid
		}
		return fmt.Errorf("failed to apply loan installment: %w", err)
	}

	return nil
}

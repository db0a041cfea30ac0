package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/faranhr/payroll-backend-go/internal/domain/advance"
	"github.com/faranhr/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type advanceRepository struct {
	db *database.DB
}

func NewAdvanceRepository(db *database.DB) advance.AdvanceRepository {
	return &advanceRepository{db: db}
}

const advanceSelect = `
	SELECT a.id, a.personnel_id, a.advance_amount, a.advance_date,
		   a.note, a.is_settled, a.created_at,
		   p.employee_code, p.first_name || ' ' || p.last_name
	FROM advances a
	JOIN personnel p ON a.personnel_id = p.id
`

func scanAdvance(row pgx.Row) (advance.Advance, error) {
	var a advance.Advance
	err := row.Scan(
		&a.ID, &a.EmployeeID, &a.Amount, &a.AdvanceDate,
		&a.Note, &a.IsSettled, &a.CreatedAt,
		&a.EmployeeCode, &a.EmployeeName,
	)
	return a, err
}

func (r *advanceRepository) Create(ctx context.Context, newAdvance advance.Advance) (advance.Advance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO advances (personnel_id, advance_amount, advance_date, note, is_settled)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, personnel_id, advance_amount, advance_date, note, is_settled, created_at
	`

	var a advance.Advance
	err := q.QueryRow(ctx, query,
		newAdvance.EmployeeID, newAdvance.Amount, newAdvance.AdvanceDate,
		newAdvance.Note, newAdvance.IsSettled,
	).Scan(
		&a.ID, &a.EmployeeID, &a.Amount, &a.AdvanceDate,
		&a.Note, &a.IsSettled, &a.CreatedAt,
	)
	if err != nil {
		return advance.Advance{}, fmt.Errorf("failed to create advance: %w", err)
	}

	return a, nil
}

func (r *advanceRepository) GetByID(ctx context.Context, id string) (advance.Advance, error) {
	q := GetQuerier(ctx, r.db)

	a, err := scanAdvance(q.QueryRow(ctx, advanceSelect+` WHERE a.id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return advance.Advance{}, advance.ErrAdvanceNotFound
		}
		return advance.Advance{}, fmt.Errorf("failed to get advance: %w", err)
	}

	return a, nil
}

func (r *advanceRepository) List(ctx context.Context, unsettledOnly bool) ([]advance.Advance, error) {
	q := GetQuerier(ctx, r.db)

	query := advanceSelect
	if unsettledOnly {
		query += ` WHERE a.is_settled = FALSE`
	}
	query += ` ORDER BY a.advance_date, p.employee_code`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list advances: %w", err)
	}
	defer rows.Close()

	return collectAdvances(rows)
}

func (r *advanceRepository) ListByEmployee(ctx context.Context, employeeID string) ([]advance.Advance, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, advanceSelect+` WHERE a.personnel_id = $1 ORDER BY a.advance_date`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employee advances: %w", err)
	}
	defer rows.Close()

	return collectAdvances(rows)
}

func collectAdvances(rows pgx.Rows) ([]advance.Advance, error) {
	var advances []advance.Advance
	for rows.Next() {
		a, err := scanAdvance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan advance: %w", err)
		}
		advances = append(advances, a)
	}
	return advances, rows.Err()
}

func (r *advanceRepository) Update(ctx context.Context, req advance.UpdateAdvanceRequest) error {
	q := GetQuerier(ctx, r.db)

	setParts := []string{}
	args := []interface{}{req.ID}
	argIdx := 2

	if req.Amount != nil {
		setParts = append(setParts, fmt.Sprintf("advance_amount = $%d", argIdx))
		args = append(args, *req.Amount)
		argIdx++
	}
	if req.Note != nil {
		setParts = append(setParts, fmt.Sprintf("note = $%d", argIdx))
		args = append(args, *req.Note)
		argIdx++
	}
	if req.IsSettled != nil {
		setParts = append(setParts, fmt.Sprintf("is_settled = $%d", argIdx))
		args = append(args, *req.IsSettled)
		argIdx++
	}

	if len(setParts) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		UPDATE advances
		SET %s
		WHERE id = $1
		RETURNING id
	`, strings.Join(setParts, ", "))

	var updatedID string
	err := q.QueryRow(ctx, query, args...).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return advance.ErrAdvanceNotFound
		}
		return fmt.Errorf("failed to update advance: %w", err)
	}

	return nil
}

func (r *advanceRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	var deletedID string
	err := q.QueryRow(ctx, `DELETE FROM advances WHERE id = $1 RETURNING id`, id).Scan(&deletedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return advance.ErrAdvanceNotFound
		}
		return fmt.Errorf("failed to delete advance: %w", err)
	}

	return nil
}

func (r *advanceRepository) GetOpenByEmployee(ctx context.Context, employeeID string) (advance.Advance, error) {
	q := GetQuerier(ctx, r.db)

	// Oldest unsettled advance first: one advance is settled per payroll cycle.
	query := advanceSelect + `
		WHERE a.personnel_id = $1 AND a.is_settled = FALSE
		ORDER BY a.advance_date, a.created_at
		LIMIT 1
	`

	a, err := scanAdvance(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return advance.Advance{}, advance.ErrNoOpenAdvance
		}
		return advance.Advance{}, fmt.Errorf("failed to get open advance: %w", err)
	}

	return a, nil
}

func (r *advanceRepository) MarkSettled(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE advances
		SET is_settled = TRUE
		WHERE id = $1 AND is_settled = FALSE
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, id).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return advance.ErrAlreadySettled
		}
		return fmt.Errorf("failed to settle advance: %w", err)
	}

	return nil
}

package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/faranhr/payroll-backend-go/internal/domain/attendance"
	"github.com/faranhr/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) Create(ctx context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance (personnel_id, date, entry_time, exit_time, overtime_hours, status, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, personnel_id, date, entry_time, exit_time, overtime_hours, status, note, created_at
	`

	var a attendance.Attendance
	err := q.QueryRow(ctx, query,
		record.EmployeeID, record.Date, record.EntryTime, record.ExitTime,
		record.OvertimeHours, record.Status, record.Note,
	).Scan(
		&a.ID, &a.EmployeeID, &a.Date, &a.EntryTime, &a.ExitTime,
		&a.OvertimeHours, &a.Status, &a.Note, &a.CreatedAt,
	)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return a, nil
}

func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.personnel_id, a.date, a.entry_time, a.exit_time,
			   a.overtime_hours, a.status, a.note, a.created_at,
			   p.employee_code, p.first_name || ' ' || p.last_name
		FROM attendance a
		JOIN personnel p ON a.personnel_id = p.id
		WHERE a.id = $1
	`

	var a attendance.Attendance
	err := q.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.EmployeeID, &a.Date, &a.EntryTime, &a.ExitTime,
		&a.OvertimeHours, &a.Status, &a.Note, &a.CreatedAt,
		&a.EmployeeCode, &a.EmployeeName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	return a, nil
}

func (r *attendanceRepository) ListByPeriod(ctx context.Context, employeeID string, year, month int) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.personnel_id, a.date, a.entry_time, a.exit_time,
			   a.overtime_hours, a.status, a.note, a.created_at,
			   p.employee_code, p.first_name || ' ' || p.last_name
		FROM attendance a
		JOIN personnel p ON a.personnel_id = p.id
		WHERE EXTRACT(YEAR FROM a.date) = $1
			AND EXTRACT(MONTH FROM a.date) = $2
	`
	args := []interface{}{year, month}

	if employeeID != "" {
		query += ` AND a.personnel_id = $3`
		args = append(args, employeeID)
	}
	query += ` ORDER BY a.date, p.employee_code`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		var a attendance.Attendance
		if err := rows.Scan(
			&a.ID, &a.EmployeeID, &a.Date, &a.EntryTime, &a.ExitTime,
			&a.OvertimeHours, &a.Status, &a.Note, &a.CreatedAt,
			&a.EmployeeCode, &a.EmployeeName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, a)
	}

	return records, rows.Err()
}

func (r *attendanceRepository) Update(ctx context.Context, req attendance.UpdateAttendanceRequest) error {
	q := GetQuerier(ctx, r.db)

	setParts := []string{}
	args := []interface{}{req.ID}
	argIdx := 2

	if req.EntryTime != nil {
		setParts = append(setParts, fmt.Sprintf("entry_time = $%d", argIdx))
		args = append(args, *req.EntryTime)
		argIdx++
	}
	if req.ExitTime != nil {
		setParts = append(setParts, fmt.Sprintf("exit_time = $%d", argIdx))
		args = append(args, *req.ExitTime)
		argIdx++
	}
	if req.OvertimeHours != nil {
		setParts = append(setParts, fmt.Sprintf("overtime_hours = $%d", argIdx))
		args = append(args, *req.OvertimeHours)
		argIdx++
	}
	if req.Status != nil {
		setParts = append(setParts, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *req.Status)
		argIdx++
	}
	if req.Note != nil {
		setParts = append(setParts, fmt.Sprintf("note = $%d", argIdx))
		args = append(args, *req.Note)
		argIdx++
	}

	if len(setParts) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		UPDATE attendance
		SET %s
		WHERE id = $1
		RETURNING id
	`, strings.Join(setParts, ", "))

	var updatedID string
	err := q.QueryRow(ctx, query, args...).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.ErrAttendanceNotFound
		}
		return fmt.Errorf("failed to update attendance record: %w", err)
	}

	return nil
}

func (r *attendanceRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	var deletedID string
	err := q.QueryRow(ctx, `DELETE FROM attendance WHERE id = $1 RETURNING id`, id).Scan(&deletedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.ErrAttendanceNotFound
		}
		return fmt.Errorf("failed to delete attendance record: %w", err)
	}

	return nil
}

func (r *attendanceRepository) SumOvertimeHours(ctx context.Context, employeeID string, year, month int) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(overtime_hours), 0)
		FROM attendance
		WHERE personnel_id = $1
			AND EXTRACT(YEAR FROM date) = $2
			AND EXTRACT(MONTH FROM date) = $3
	`

	var total decimal.Decimal
	if err := q.QueryRow(ctx, query, employeeID, year, month).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum overtime hours: %w", err)
	}

	return total, nil
}

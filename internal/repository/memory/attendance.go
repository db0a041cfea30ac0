package memory

import (
	"context"
	"sort"
	"time"

	"github.com/faranhr/payroll-backend-go/internal/domain/attendance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type attendanceRepository struct {
	store *Store
}

func NewAttendanceRepository(store *Store) attendance.AttendanceRepository {
	return &attendanceRepository{store: store}
}

func (r *attendanceRepository) joinEmployee(record attendance.Attendance) attendance.Attendance {
	if e, ok := r.store.employees[record.EmployeeID]; ok {
		code := e.EmployeeCode
		name := e.FullName()
		record.EmployeeCode = &code
		record.EmployeeName = &name
	}
	return record
}

func (r *attendanceRepository) Create(ctx context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	record.ID = uuid.NewString()
	record.CreatedAt = time.Now()
	r.store.attendance[record.ID] = record

	return r.joinEmployee(record), nil
}

func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	record, ok := r.store.attendance[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return r.joinEmployee(record), nil
}

func (r *attendanceRepository) ListByPeriod(ctx context.Context, employeeID string, year, month int) ([]attendance.Attendance, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	var records []attendance.Attendance
	for _, record := range r.store.attendance {
		if record.Date.Year() != year || int(record.Date.Month()) != month {
			continue
		}
		if employeeID != "" && record.EmployeeID != employeeID {
			continue
		}
		records = append(records, r.joinEmployee(record))
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})

	return records, nil
}

func (r *attendanceRepository) Update(ctx context.Context, req attendance.UpdateAttendanceRequest) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	record, ok := r.store.attendance[req.ID]
	if !ok {
		return attendance.ErrAttendanceNotFound
	}

	if req.EntryTime != nil {
		record.EntryTime = req.EntryTime
	}
	if req.ExitTime != nil {
		record.ExitTime = req.ExitTime
	}
	if req.OvertimeHours != nil {
		record.OvertimeHours = *req.OvertimeHours
	}
	if req.Status != nil {
		record.Status = attendance.Status(*req.Status)
	}
	if req.Note != nil {
		record.Note = req.Note
	}
	r.store.attendance[record.ID] = record

	return nil
}

func (r *attendanceRepository) Delete(ctx context.Context, id string) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	if _, ok := r.store.attendance[id]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	delete(r.store.attendance, id)

	return nil
}

func (r *attendanceRepository) SumOvertimeHours(ctx context.Context, employeeID string, year, month int) (decimal.Decimal, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	total := decimal.Zero
	for _, record := range r.store.attendance {
		if record.EmployeeID != employeeID {
			continue
		}
		if record.Date.Year() != year || int(record.Date.Month()) != month {
			continue
		}
		total = total.Add(record.OvertimeHours)
	}

	return total, nil
}

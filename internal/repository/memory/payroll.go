package memory

import (
	"context"
	"sort"
	"time"

	"github.com/faranhr/payroll-backend-go/internal/domain/payroll"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type payrollRepository struct {
	store *Store
}

func NewPayrollRepository(store *Store) payroll.PayrollRepository {
	return &payrollRepository{store: store}
}

func (r *payrollRepository) joinEmployee(rec payroll.PayrollRecord) payroll.PayrollRecord {
	if e, ok := r.store.employees[rec.EmployeeID]; ok {
		code := e.EmployeeCode
		name := e.FullName()
		rec.EmployeeCode = &code
		rec.EmployeeName = &name
	}
	return rec
}

func (r *payrollRepository) GetSettings(ctx context.Context) (payroll.Settings, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	if r.store.settings == nil {
		return payroll.Settings{}, payroll.ErrSettingsNotFound
	}
	return *r.store.settings, nil
}

func (r *payrollRepository) UpsertSettings(ctx context.Context, settings payroll.Settings) (payroll.Settings, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	settings.UpdatedAt = time.Now()
	r.store.settings = &settings

	return settings, nil
}

func (r *payrollRepository) findByPeriod(employeeID string, year, month int) (payroll.PayrollRecord, bool) {
	for _, rec := range r.store.records {
		if rec.EmployeeID == employeeID && rec.Year == year && rec.Month == month {
			return rec, true
		}
	}
	return payroll.PayrollRecord{}, false
}

func (r *payrollRepository) Upsert(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, bool, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	existing, found := r.findByPeriod(record.EmployeeID, record.Year, record.Month)
	if found {
		// Recompute keeps identity and settlement state.
		record.ID = existing.ID
		record.IsPaid = existing.IsPaid
		record.PaymentDate = existing.PaymentDate
		record.CreatedAt = existing.CreatedAt
	} else {
		record.ID = uuid.NewString()
		record.IsPaid = false
		record.PaymentDate = nil
		record.CreatedAt = time.Now()
	}
	r.store.records[record.ID] = record

	return r.joinEmployee(record), !found, nil
}

func (r *payrollRepository) GetByID(ctx context.Context, id string) (payroll.PayrollRecord, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	rec, ok := r.store.records[id]
	if !ok {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
	}
	return r.joinEmployee(rec), nil
}

func (r *payrollRepository) GetByEmployeePeriod(ctx context.Context, employeeID string, year, month int) (payroll.PayrollRecord, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	rec, ok := r.findByPeriod(employeeID, year, month)
	if !ok {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
	}
	return r.joinEmployee(rec), nil
}

func (r *payrollRepository) ListByPeriod(ctx context.Context, year, month int) ([]payroll.PayrollRecord, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	var records []payroll.PayrollRecord
	for _, rec := range r.store.records {
		if rec.Year != year || rec.Month != month {
			continue
		}
		records = append(records, r.joinEmployee(rec))
	}
	sort.Slice(records, func(i, j int) bool {
		ci, cj := "", ""
		if records[i].EmployeeCode != nil {
			ci = *records[i].EmployeeCode
		}
		if records[j].EmployeeCode != nil {
			cj = *records[j].EmployeeCode
		}
		return ci < cj
	})

	return records, nil
}

func (r *payrollRepository) DeleteByID(ctx context.Context, id string) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	if _, ok := r.store.records[id]; !ok {
		return payroll.ErrPayrollRecordNotFound
	}
	delete(r.store.records, id)

	return nil
}

func (r *payrollRepository) MarkPaid(ctx context.Context, id string, paymentDate time.Time) (bool, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	rec, ok := r.store.records[id]
	if !ok {
		return false, payroll.ErrPayrollRecordNotFound
	}
	if rec.IsPaid {
		return false, nil
	}

	rec.IsPaid = true
	rec.PaymentDate = &paymentDate
	r.store.records[rec.ID] = rec

	return true, nil
}

func (r *payrollRepository) MarkAllPaidForPeriod(ctx context.Context, year, month int, paymentDate time.Time) (int64, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	var settled int64
	for id, rec := range r.store.records {
		if rec.Year != year || rec.Month != month || rec.IsPaid {
			continue
		}
		rec.IsPaid = true
		rec.PaymentDate = &paymentDate
		r.store.records[id] = rec
		settled++
	}

	return settled, nil
}

func (r *payrollRepository) GetSummary(ctx context.Context, year, month int) (payroll.Summary, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	s := payroll.Summary{
		TotalNet:  decimal.Zero,
		PaidNet:   decimal.Zero,
		UnpaidNet: decimal.Zero,
	}
	for _, rec := range r.store.records {
		if rec.Year != year || rec.Month != month {
			continue
		}
		s.EmployeeCount++
		s.TotalNet = s.TotalNet.Add(rec.NetSalary)
		if rec.IsPaid {
			s.PaidCount++
			s.PaidNet = s.PaidNet.Add(rec.NetSalary)
		} else {
			s.UnpaidNet = s.UnpaidNet.Add(rec.NetSalary)
		}
	}

	return s, nil
}

// Package fixtures seeds the in-memory store with a small data set so the
// demo mode starts with something to look at.
package fixtures

import (
	"context"
	"fmt"
	"time"

	"github.com/faranhr/payroll-backend-go/internal/domain/advance"
	"github.com/faranhr/payroll-backend-go/internal/domain/attendance"
	"github.com/faranhr/payroll-backend-go/internal/domain/employee"
	"github.com/faranhr/payroll-backend-go/internal/domain/loan"
	"github.com/faranhr/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

func strPtr(s string) *string { return &s }

func money(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// Repositories collects what SeedDemoData writes to.
type Repositories struct {
	Employees  employee.EmployeeRepository
	Attendance attendance.AttendanceRepository
	Loans      loan.LoanRepository
	Advances   advance.AdvanceRepository
	Payroll    payroll.PayrollRepository
}

// SeedDemoData inserts three employees, one attendance record with overtime,
// one open loan, one unsettled advance and one already-paid payroll record.
func SeedDemoData(ctx context.Context, repos Repositories) error {
	employees := []employee.Employee{
		{
			EmployeeCode:         "1001",
			FirstName:            "Ali",
			LastName:             "Rezaei",
			NationalID:           "1234567890",
			Position:             strPtr("Software Developer"),
			HireDate:             date("2023-01-15"),
			BaseSalary:           money(56000000),
			HousingAllowanceRate: decimal.NewFromFloat(0.25),
			FamilyAllowanceRate:  decimal.NewFromFloat(0.10),
			ChildrenCount:        2,
			IsActive:             true,
		},
		{
			EmployeeCode:         "1002",
			FirstName:            "Fatemeh",
			LastName:             "Mohammadi",
			NationalID:           "0987654321",
			Position:             strPtr("HR Specialist"),
			HireDate:             date("2023-02-20"),
			BaseSalary:           money(48000000),
			HousingAllowanceRate: decimal.NewFromFloat(0.25),
			FamilyAllowanceRate:  decimal.NewFromFloat(0.10),
			ChildrenCount:        1,
			IsActive:             true,
		},
		{
			EmployeeCode:         "1003",
			FirstName:            "Mohammad",
			LastName:             "Karimi",
			NationalID:           "1122334455",
			Position:             strPtr("Finance Manager"),
			HireDate:             date("2023-03-10"),
			BaseSalary:           money(75000000),
			HousingAllowanceRate: decimal.NewFromFloat(0.25),
			FamilyAllowanceRate:  decimal.NewFromFloat(0.10),
			ChildrenCount:        3,
			IsActive:             true,
		},
	}

	ids := make([]string, 0, len(employees))
	for _, e := range employees {
		created, err := repos.Employees.Create(ctx, e)
		if err != nil {
			return fmt.Errorf("failed to seed employee %s: %w", e.EmployeeCode, err)
		}
		ids = append(ids, created.ID)
	}

	_, err := repos.Attendance.Create(ctx, attendance.Attendance{
		EmployeeID:    ids[0],
		Date:          date("2024-01-15"),
		EntryTime:     strPtr("08:00"),
		ExitTime:      strPtr("16:30"),
		OvertimeHours: decimal.NewFromFloat(2.5),
		Status:        attendance.StatusPresent,
		Note:          strPtr("Regular day"),
	})
	if err != nil {
		return fmt.Errorf("failed to seed attendance: %w", err)
	}

	_, err = repos.Loans.Create(ctx, loan.Loan{
		EmployeeID:            ids[0],
		LoanAmount:            money(10000000),
		InstallmentAmount:     money(500000),
		RemainingInstallments: 18,
		TotalInstallments:     20,
		StartDate:             date("2024-01-01"),
		Note:                  strPtr("Housing loan"),
		IsActive:              true,
	})
	if err != nil {
		return fmt.Errorf("failed to seed loan: %w", err)
	}

	_, err = repos.Advances.Create(ctx, advance.Advance{
		EmployeeID:  ids[1],
		Amount:      money(2000000),
		AdvanceDate: date("2024-01-10"),
		Note:        strPtr("Medical advance"),
		IsSettled:   false,
	})
	if err != nil {
		return fmt.Errorf("failed to seed advance: %w", err)
	}

	record, _, err := repos.Payroll.Upsert(ctx, payroll.PayrollRecord{
		EmployeeID:        ids[0],
		Year:              2024,
		Month:             1,
		BaseSalary:        money(56000000),
		HousingAllowance:  money(14000000),
		FamilyAllowance:   money(5600000),
		ChildAllowance:    money(1000000),
		OvertimeAmount:    money(3500000),
		OtherAllowances:   money(0),
		GrossSalary:       money(80100000),
		InsuranceEmployee: money(5607000),
		InsuranceEmployer: money(18423000),
		TaxAmount:         money(2450000),
		LoanDeduction:     money(500000),
		AdvanceDeduction:  money(0),
		OtherDeductions:   money(0),
		NetSalary:         money(71543000),
	})
	if err != nil {
		return fmt.Errorf("failed to seed payroll record: %w", err)
	}
	if _, err := repos.Payroll.MarkPaid(ctx, record.ID, date("2024-02-01")); err != nil {
		return fmt.Errorf("failed to settle seeded payroll record: %w", err)
	}

	return nil
}

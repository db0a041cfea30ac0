package payroll

import (
	"testing"

	"github.com/faranhr/payroll-backend-go/internal/domain/employee"
	"github.com/faranhr/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func testEmployee() employee.Employee {
	return employee.Employee{
		ID:                   "emp-1",
		EmployeeCode:         "1001",
		BaseSalary:           d(56000000),
		HousingAllowanceRate: decimal.NewFromFloat(0.25),
		FamilyAllowanceRate:  decimal.NewFromFloat(0.10),
		ChildrenCount:        2,
		IsActive:             true,
	}
}

func TestCalculate(t *testing.T) {
	settings := DefaultSettings()

	t.Run("standard breakdown without overtime or deductions", func(t *testing.T) {
		record := Calculate(testEmployee(), payroll.PeriodInputs{}, settings)

		assert.True(t, record.BaseSalary.Equal(d(56000000)))
		assert.True(t, record.HousingAllowance.Equal(d(14000000)), "got %s", record.HousingAllowance)
		assert.True(t, record.FamilyAllowance.Equal(d(5600000)), "got %s", record.FamilyAllowance)
		assert.True(t, record.ChildAllowance.Equal(d(1000000)), "got %s", record.ChildAllowance)
		assert.True(t, record.OvertimeAmount.IsZero())
		assert.True(t, record.GrossSalary.Equal(d(76600000)), "got %s", record.GrossSalary)
		assert.True(t, record.InsuranceEmployee.Equal(d(5362000)), "got %s", record.InsuranceEmployee)
		assert.True(t, record.TaxAmount.Equal(d(1523800)), "got %s", record.TaxAmount)
		assert.True(t, record.NetSalary.Equal(d(69714200)), "got %s", record.NetSalary)
	})

	t.Run("employer insurance is informational", func(t *testing.T) {
		record := Calculate(testEmployee(), payroll.PeriodInputs{}, settings)

		assert.True(t, record.InsuranceEmployer.Equal(d(17618000)), "got %s", record.InsuranceEmployer)
		// Gross minus everything withheld equals net; employer insurance is
		// not part of the withholding.
		assert.True(t, record.GrossSalary.Sub(record.TotalDeductions()).Equal(record.NetSalary))
	})

	t.Run("overtime uses the reference salary hourly rate", func(t *testing.T) {
		inputs := payroll.PeriodInputs{OvertimeHours: decimal.NewFromInt(10)}
		record := Calculate(testEmployee(), inputs, settings)

		// 10 * (56,000,000 / 240) * 1.4 rounded to 2 places
		expected := decimal.RequireFromString("3266666.67")
		assert.True(t, record.OvertimeAmount.Equal(expected), "got %s", record.OvertimeAmount)
	})

	t.Run("overtime rate ignores the employee's own salary", func(t *testing.T) {
		lowPaid := testEmployee()
		lowPaid.BaseSalary = d(30000000)
		inputs := payroll.PeriodInputs{OvertimeHours: decimal.NewFromInt(4)}

		a := Calculate(testEmployee(), inputs, settings)
		b := Calculate(lowPaid, inputs, settings)

		assert.True(t, a.OvertimeAmount.Equal(b.OvertimeAmount))
	})

	t.Run("no tax at or below the threshold", func(t *testing.T) {
		emp := testEmployee()
		emp.BaseSalary = d(40000000)
		emp.ChildrenCount = 0
		record := Calculate(emp, payroll.PeriodInputs{}, settings)

		// gross = 40M * 1.35 = 54M, minus 7% insurance is below the 56M threshold
		assert.True(t, record.TaxAmount.IsZero(), "got %s", record.TaxAmount)
	})

	t.Run("tax starts one unit above the threshold", func(t *testing.T) {
		emp := testEmployee()

		// Pin the threshold to this employee's exact taxable income.
		atThreshold := settings
		atThreshold.TaxThreshold = d(76600000).Sub(d(5362000))
		record := Calculate(emp, payroll.PeriodInputs{}, atThreshold)
		assert.True(t, record.TaxAmount.IsZero(), "got %s", record.TaxAmount)

		oneBelow := settings
		oneBelow.TaxThreshold = atThreshold.TaxThreshold.Sub(d(1))
		record = Calculate(emp, payroll.PeriodInputs{}, oneBelow)
		assert.True(t, record.TaxAmount.Equal(decimal.RequireFromString("0.1")), "got %s", record.TaxAmount)
	})

	t.Run("loan and advance deductions reduce net", func(t *testing.T) {
		inputs := payroll.PeriodInputs{
			LoanInstallment: d(500000),
			AdvanceAmount:   d(2000000),
		}
		record := Calculate(testEmployee(), inputs, settings)

		assert.True(t, record.LoanDeduction.Equal(d(500000)))
		assert.True(t, record.AdvanceDeduction.Equal(d(2000000)))
		assert.True(t, record.NetSalary.Equal(d(69714200).Sub(d(2500000))), "got %s", record.NetSalary)
	})

	t.Run("gross is the exact sum of its components", func(t *testing.T) {
		inputs := payroll.PeriodInputs{
			OvertimeHours:   decimal.NewFromFloat(7.5),
			OtherAllowances: d(1234567),
		}
		record := Calculate(testEmployee(), inputs, settings)

		sum := record.BaseSalary.
			Add(record.HousingAllowance).
			Add(record.FamilyAllowance).
			Add(record.ChildAllowance).
			Add(record.OvertimeAmount).
			Add(record.OtherAllowances)
		assert.True(t, record.GrossSalary.Equal(sum))
	})

	t.Run("zero children means zero child allowance", func(t *testing.T) {
		emp := testEmployee()
		emp.ChildrenCount = 0
		record := Calculate(emp, payroll.PeriodInputs{}, settings)

		assert.True(t, record.ChildAllowance.IsZero())
	})
}

package payroll

import (
	"github.com/faranhr/payroll-backend-go/internal/domain/employee"
	"github.com/faranhr/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// standardMonthlyHours divides the reference base salary into an hourly rate.
const standardMonthlyHours = 240

var (
	overtimeMultiplier = decimal.NewFromFloat(1.4)
	taxRate            = decimal.NewFromFloat(0.10)
)

// Calculate computes one payroll record from an employee's contract fields,
// the resolved period inputs and the rate configuration. Every monetary
// component is rounded to two decimal places; gross and net are exact sums of
// the rounded components, so the itemization always adds up.
//
// The overtime hourly rate comes from the configured reference base salary,
// not the employee's own salary, so one overtime hour pays the same for
// everyone.
func Calculate(emp employee.Employee, inputs payroll.PeriodInputs, settings payroll.Settings) payroll.PayrollRecord {
	base := emp.BaseSalary.Round(2)
	housing := emp.BaseSalary.Mul(emp.HousingAllowanceRate).Round(2)
	family := emp.BaseSalary.Mul(emp.FamilyAllowanceRate).Round(2)
	child := settings.ChildAllowanceAmount.Mul(decimal.NewFromInt(int64(emp.ChildrenCount))).Round(2)

	hourlyRate := settings.ReferenceBaseSalary.Div(decimal.NewFromInt(standardMonthlyHours))
	overtime := inputs.OvertimeHours.Mul(hourlyRate).Mul(overtimeMultiplier).Round(2)

	otherAllowances := inputs.OtherAllowances.Round(2)
	gross := base.Add(housing).Add(family).Add(child).Add(overtime).Add(otherAllowances)

	insuranceEmployee := gross.Mul(settings.InsuranceEmployeeRate).Round(2)
	insuranceEmployer := gross.Mul(settings.InsuranceEmployerRate).Round(2)

	// Flat tax on what exceeds the threshold after employee insurance.
	taxable := gross.Sub(insuranceEmployee).Sub(settings.TaxThreshold)
	tax := decimal.Zero
	if taxable.IsPositive() {
		tax = taxable.Mul(taxRate).Round(2)
	}

	loanDeduction := inputs.LoanInstallment.Round(2)
	advanceDeduction := inputs.AdvanceAmount.Round(2)
	otherDeductions := inputs.OtherDeductions.Round(2)

	net := gross.
		Sub(insuranceEmployee).
		Sub(tax).
		Sub(loanDeduction).
		Sub(advanceDeduction).
		Sub(otherDeductions)

	return payroll.PayrollRecord{
		EmployeeID:        emp.ID,
		BaseSalary:        base,
		HousingAllowance:  housing,
		FamilyAllowance:   family,
		ChildAllowance:    child,
		OvertimeAmount:    overtime,
		OtherAllowances:   otherAllowances,
		GrossSalary:       gross,
		InsuranceEmployee: insuranceEmployee,
		InsuranceEmployer: insuranceEmployer,
		TaxAmount:         tax,
		LoanDeduction:     loanDeduction,
		AdvanceDeduction:  advanceDeduction,
		OtherDeductions:   otherDeductions,
		NetSalary:         net,
	}
}

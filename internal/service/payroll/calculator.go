package payroll

import (
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Pay is the monthly pay derived from a salary template.
type Pay struct {
	Basic           decimal.Decimal
	TotalAllowances decimal.Decimal
	TotalDeductions decimal.Decimal
	Gross           decimal.Decimal
	Net             decimal.Decimal
}

// Calculate computes gross, deductions and net for t, rounded to 2 places.
func Calculate(t payroll.SalaryTemplate) Pay {
	basic := t.BasicSalary

	gross := basic.
		Add(basic.Mul(t.AllowancePercent).Div(hundred)).
		Add(t.AllowanceFixed).
		Round(2)
	deductions := t.DeductionFixed.
		Add(basic.Mul(t.DeductionPercent).Div(hundred)).
		Round(2)

	return Pay{
		Basic:           basic.Round(2),
		TotalAllowances: gross.Sub(basic).Round(2),
		TotalDeductions: deductions,
		Gross:           gross,
		Net:             gross.Sub(deductions).Round(2),
	}
}

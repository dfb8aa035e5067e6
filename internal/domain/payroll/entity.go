package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalaryTemplate is the single salary definition of an employee. Upserting
// replaces it; no history is kept.
type SalaryTemplate struct {
	ID               string
	EmployeeID       string
	BasicSalary      decimal.Decimal
	AllowanceFixed   decimal.Decimal
	AllowancePercent decimal.Decimal
	DeductionFixed   decimal.Decimal
	DeductionPercent decimal.Decimal
	EffectiveFrom    time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Joined fields
	EmployeeCode string
	EmployeeName string
}

// PayrollRun is the payroll result of one employee for one (year, month).
type PayrollRun struct {
	ID              string
	EmployeeID      string
	PeriodYear      int
	PeriodMonth     int
	WorkingDays     int
	PresentDays     int
	OvertimeHours   decimal.Decimal
	BasicSalary     decimal.Decimal
	TotalAllowances decimal.Decimal
	TotalDeductions decimal.Decimal
	GrossPay        decimal.Decimal
	NetPay          decimal.Decimal
	GeneratedAt     time.Time
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Joined fields
	EmployeeCode   string
	EmployeeName   string
	DepartmentName *string
}

// Summary aggregates the runs of one period.
type Summary struct {
	Year     int             `json:"year"`
	Month    int             `json:"month"`
	Count    int64           `json:"count"`
	TotalNet decimal.Decimal `json:"total_net"`
}

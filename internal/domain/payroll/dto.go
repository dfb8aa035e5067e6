package payroll

import (
	"time"

	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/utils"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== SALARY TEMPLATE DTOs ==========

type UpsertSalaryTemplateRequest struct {
	EmployeeID       string           `json:"employee_id" validate:"required,uuid"`
	BasicSalary      *decimal.Decimal `json:"basic_salary"`
	AllowanceFixed   *decimal.Decimal `json:"allowance_fixed,omitempty"`
	AllowancePercent *decimal.Decimal `json:"allowance_percent,omitempty"`
	DeductionFixed   *decimal.Decimal `json:"deduction_fixed,omitempty"`
	DeductionPercent *decimal.Decimal `json:"deduction_percent,omitempty"`
	EffectiveFrom    string           `json:"effective_from" validate:"required"`
}

// Validate returns the template described by the request with optional
// amounts defaulted to zero.
func (r *UpsertSalaryTemplateRequest) Validate() (SalaryTemplate, error) {
	errs := validator.Struct(r)

	if r.BasicSalary == nil {
		errs.Add("basic_salary", "is required")
	}
	nonNegative(&errs, "basic_salary", r.BasicSalary)
	nonNegative(&errs, "allowance_fixed", r.AllowanceFixed)
	nonNegative(&errs, "allowance_percent", r.AllowancePercent)
	nonNegative(&errs, "deduction_fixed", r.DeductionFixed)
	nonNegative(&errs, "deduction_percent", r.DeductionPercent)

	var effective time.Time
	if r.EffectiveFrom != "" {
		d, err := utils.ParseDate(r.EffectiveFrom)
		if err != nil {
			errs.Add("effective_from", "must be a date (YYYY-MM-DD) or RFC3339 timestamp")
		}
		effective = d
	}

	if err := errs.OrNil(); err != nil {
		return SalaryTemplate{}, err
	}

	return SalaryTemplate{
		EmployeeID:       r.EmployeeID,
		BasicSalary:      *r.BasicSalary,
		AllowanceFixed:   orZero(r.AllowanceFixed),
		AllowancePercent: orZero(r.AllowancePercent),
		DeductionFixed:   orZero(r.DeductionFixed),
		DeductionPercent: orZero(r.DeductionPercent),
		EffectiveFrom:    effective,
	}, nil
}

type SalaryTemplateFilter struct {
	EmployeeID *string
	pagination.Params
}

type SalaryTemplateResponse struct {
	ID               string          `json:"id"`
	EmployeeID       string          `json:"employee_id"`
	EmployeeCode     string          `json:"employee_code,omitempty"`
	EmployeeName     string          `json:"employee_name,omitempty"`
	BasicSalary      decimal.Decimal `json:"basic_salary"`
	AllowanceFixed   decimal.Decimal `json:"allowance_fixed"`
	AllowancePercent decimal.Decimal `json:"allowance_percent"`
	DeductionFixed   decimal.Decimal `json:"deduction_fixed"`
	DeductionPercent decimal.Decimal `json:"deduction_percent"`
	EffectiveFrom    string          `json:"effective_from"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

type ListSalaryTemplateResponse struct {
	Data       []SalaryTemplateResponse `json:"data"`
	TotalCount int64                    `json:"total_count"`
	Page       int                      `json:"page"`
	Limit      int                      `json:"limit"`
}

func ToTemplateResponse(t SalaryTemplate) SalaryTemplateResponse {
	return SalaryTemplateResponse{
		ID:               t.ID,
		EmployeeID:       t.EmployeeID,
		EmployeeCode:     t.EmployeeCode,
		EmployeeName:     t.EmployeeName,
		BasicSalary:      t.BasicSalary,
		AllowanceFixed:   t.AllowanceFixed,
		AllowancePercent: t.AllowancePercent,
		DeductionFixed:   t.DeductionFixed,
		DeductionPercent: t.DeductionPercent,
		EffectiveFrom:    utils.FormatDate(t.EffectiveFrom),
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}

// ========== PAYROLL RUN DTOs ==========

type GeneratePayrollRequest struct {
	Year       int     `json:"year" validate:"required,gte=1900,lte=9999"`
	Month      int     `json:"month" validate:"required,gte=1,lte=12"`
	EmployeeID *string `json:"employee_id,omitempty" validate:"omitempty,uuid"`
}

func (r *GeneratePayrollRequest) Validate() error {
	return validator.Struct(r).OrNil()
}

type GeneratePayrollResponse struct {
	Generated int                  `json:"generated"`
	Runs      []PayrollRunResponse `json:"runs"`
}

type UpdatePayrollRunRequest struct {
	ID              string           `json:"-"`
	WorkingDays     *int             `json:"working_days,omitempty" validate:"omitempty,gte=0"`
	PresentDays     *int             `json:"present_days,omitempty" validate:"omitempty,gte=0"`
	OvertimeHours   *decimal.Decimal `json:"overtime_hours,omitempty"`
	BasicSalary     *decimal.Decimal `json:"basic_salary,omitempty"`
	TotalAllowances *decimal.Decimal `json:"total_allowances,omitempty"`
	TotalDeductions *decimal.Decimal `json:"total_deductions,omitempty"`
	GrossPay        *decimal.Decimal `json:"gross_pay,omitempty"`
	NetPay          *decimal.Decimal `json:"net_pay,omitempty"`
	Notes           *string          `json:"notes,omitempty"`
}

// Apply validates the request and merges it onto current. Values are stored
// as given; nothing is recomputed.
func (r *UpdatePayrollRunRequest) Apply(current PayrollRun) (PayrollRun, error) {
	errs := validator.Struct(r)
	nonNegative(&errs, "overtime_hours", r.OvertimeHours)
	if err := errs.OrNil(); err != nil {
		return PayrollRun{}, err
	}

	next := current
	if r.WorkingDays != nil {
		next.WorkingDays = *r.WorkingDays
	}
	if r.PresentDays != nil {
		next.PresentDays = *r.PresentDays
	}
	if r.OvertimeHours != nil {
		next.OvertimeHours = *r.OvertimeHours
	}
	if r.BasicSalary != nil {
		next.BasicSalary = *r.BasicSalary
	}
	if r.TotalAllowances != nil {
		next.TotalAllowances = *r.TotalAllowances
	}
	if r.TotalDeductions != nil {
		next.TotalDeductions = *r.TotalDeductions
	}
	if r.GrossPay != nil {
		next.GrossPay = *r.GrossPay
	}
	if r.NetPay != nil {
		next.NetPay = *r.NetPay
	}
	if r.Notes != nil {
		next.Notes = r.Notes
	}
	return next, nil
}

type PayrollFilter struct {
	EmployeeID *string
	Year       *int
	Month      *int
	pagination.Params
}

type PayrollRunResponse struct {
	ID              string          `json:"id"`
	EmployeeID      string          `json:"employee_id"`
	EmployeeCode    string          `json:"employee_code,omitempty"`
	EmployeeName    string          `json:"employee_name,omitempty"`
	PeriodYear      int             `json:"period_year"`
	PeriodMonth     int             `json:"period_month"`
	WorkingDays     int             `json:"working_days"`
	PresentDays     int             `json:"present_days"`
	OvertimeHours   decimal.Decimal `json:"overtime_hours"`
	BasicSalary     decimal.Decimal `json:"basic_salary"`
	TotalAllowances decimal.Decimal `json:"total_allowances"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	GrossPay        decimal.Decimal `json:"gross_pay"`
	NetPay          decimal.Decimal `json:"net_pay"`
	GeneratedAt     time.Time       `json:"generated_at"`
	Notes           *string         `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type ListPayrollRunResponse struct {
	Data       []PayrollRunResponse `json:"data"`
	TotalCount int64                `json:"total_count"`
	Page       int                  `json:"page"`
	Limit      int                  `json:"limit"`
}

func ToRunResponse(r PayrollRun) PayrollRunResponse {
	return PayrollRunResponse{
		ID:              r.ID,
		EmployeeID:      r.EmployeeID,
		EmployeeCode:    r.EmployeeCode,
		EmployeeName:    r.EmployeeName,
		PeriodYear:      r.PeriodYear,
		PeriodMonth:     r.PeriodMonth,
		WorkingDays:     r.WorkingDays,
		PresentDays:     r.PresentDays,
		OvertimeHours:   r.OvertimeHours,
		BasicSalary:     r.BasicSalary,
		TotalAllowances: r.TotalAllowances,
		TotalDeductions: r.TotalDeductions,
		GrossPay:        r.GrossPay,
		NetPay:          r.NetPay,
		GeneratedAt:     r.GeneratedAt,
		Notes:           r.Notes,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func nonNegative(errs *validator.ValidationErrors, field string, d *decimal.Decimal) {
	if d != nil && d.IsNegative() {
		errs.Add(field, "must be greater than or equal to 0")
	}
}

func orZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

package report

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Report is a tabular result that can be sent as JSON (Data) or rendered to a
// spreadsheet (Headers and Rows).
type Report struct {
	Filename string
	Sheet    string
	Headers  []string
	Rows     [][]any
	Data     any
}

// ========================================
// REQUESTS
// ========================================

// Dates are YYYY-MM-DD or RFC3339. Zero values mean the parameter was missing.

type DateRequest struct {
	Date string
}

type RangeRequest struct {
	From string
	To   string
}

type PeriodRequest struct {
	Year  int
	Month int
}

func (p PeriodRequest) Valid() bool {
	return p.Year > 0 && p.Month >= 1 && p.Month <= 12
}

// Suffix is the YYYY-MM part of period filenames.
func (p PeriodRequest) Suffix() string {
	return fmt.Sprintf("%d-%02d", p.Year, p.Month)
}

type PayslipRequest struct {
	EmployeeID string
	PeriodRequest
}

type HeadcountRequest struct {
	DepartmentID *string
}

type ProfileRequest struct {
	EmployeeID string
}

// ========================================
// ROWS
// ========================================

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type DepartmentCost struct {
	DepartmentID   *string         `json:"department_id,omitempty"`
	DepartmentName string          `json:"department_name"`
	TotalNet       decimal.Decimal `json:"total_net"`
}

type HeadcountResult struct {
	DepartmentID *string `json:"department_id,omitempty"`
	Count        int64   `json:"count"`
}

type ShiftAssignmentRow struct {
	EmployeeID   string  `json:"employee_id"`
	EmployeeCode string  `json:"employee_code"`
	EmployeeName string  `json:"employee_name"`
	ShiftID      string  `json:"shift_id"`
	ShiftName    string  `json:"shift_name"`
	StartDate    string  `json:"start_date"`
	EndDate      *string `json:"end_date,omitempty"`
}

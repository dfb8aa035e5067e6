package report

import "errors"

var (
	ErrMissingDate      = errors.New("missing date")
	ErrMissingRange     = errors.New("missing range")
	ErrMissingPeriod    = errors.New("missing year/month")
	ErrMissingFields    = errors.New("missing fields")
	ErrInvalidDate      = errors.New("invalid date")
	ErrPayslipNotFound  = errors.New("payslip not found")
	ErrEmployeeNotFound = errors.New("employee not found")
)

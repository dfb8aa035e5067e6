package payroll

import "errors"

var (
	ErrSalaryTemplateNotFound = errors.New("salary template not found")
	ErrPayrollNotFound        = errors.New("payroll not found")
	ErrEmployeeNotFound       = errors.New("employee not found")
	ErrInvalidPeriod          = errors.New("invalid payroll period")
)

package schedule

import "errors"

var (
	ErrShiftNotFound         = errors.New("shift not found")
	ErrShiftNameExists       = errors.New("shift name already exists")
	ErrEmployeeShiftNotFound = errors.New("employee shift not found")
	ErrEmployeeNotFound      = errors.New("employee not found")
	ErrInvalidDateRange      = errors.New("end_date must not be before start_date")
)

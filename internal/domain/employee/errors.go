package employee

import "errors"

var (
	ErrEmployeeNotFound       = errors.New("employee not found")
	ErrEmployeeCodeExists     = errors.New("employee code already exists")
	ErrEmailExists            = errors.New("email already registered")
	ErrDepartmentNotFound     = errors.New("department not found")
	ErrDesignationNotFound    = errors.New("designation not found")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
)

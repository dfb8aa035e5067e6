package designation

import "errors"

var (
	ErrDesignationNotFound    = errors.New("designation not found")
	ErrDesignationTitleExists = errors.New("designation title already exists in this department")
	ErrDepartmentNotFound     = errors.New("department not found")
)

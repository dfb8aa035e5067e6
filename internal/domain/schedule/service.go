package schedule

import "context"

type ScheduleService interface {
	CreateShift(ctx context.Context, req CreateShiftRequest) (ShiftResponse, error)
	GetShift(ctx context.Context, id string) (ShiftResponse, error)
	ListShifts(ctx context.Context, filter ShiftFilter) (ListShiftResponse, error)
	UpdateShift(ctx context.Context, req UpdateShiftRequest) (ShiftResponse, error)
	DeleteShift(ctx context.Context, id string) error

	AssignShift(ctx context.Context, req CreateEmployeeShiftRequest) (EmployeeShiftResponse, error)
	GetEmployeeShift(ctx context.Context, id string) (EmployeeShiftResponse, error)
	ListEmployeeShifts(ctx context.Context, filter EmployeeShiftFilter) (ListEmployeeShiftResponse, error)
	UpdateEmployeeShift(ctx context.Context, req UpdateEmployeeShiftRequest) (EmployeeShiftResponse, error)
	DeleteEmployeeShift(ctx context.Context, id string) error
}

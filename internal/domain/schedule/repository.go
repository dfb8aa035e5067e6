package schedule

import (
	"context"
	"time"
)

type ShiftRepository interface {
	Create(ctx context.Context, s Shift) (Shift, error)
	GetByID(ctx context.Context, id string) (Shift, error)
	List(ctx context.Context, params ShiftFilter) ([]Shift, int64, error)
	Update(ctx context.Context, req UpdateShiftRequest) (Shift, error)
	Delete(ctx context.Context, id string) error
}

type EmployeeShiftRepository interface {
	Create(ctx context.Context, es EmployeeShift) (EmployeeShift, error)
	GetByID(ctx context.Context, id string) (EmployeeShift, error)
	List(ctx context.Context, filter EmployeeShiftFilter) ([]EmployeeShift, int64, error)
	Update(ctx context.Context, es EmployeeShift) (EmployeeShift, error)
	Delete(ctx context.Context, id string) error

	// ActiveOn returns assignments covering day, ordered by employee code.
	ActiveOn(ctx context.Context, day time.Time) ([]EmployeeShift, error)
	// Overlapping returns assignments intersecting [from, to].
	Overlapping(ctx context.Context, from, to time.Time) ([]EmployeeShift, error)
}

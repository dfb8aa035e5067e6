package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	// UpsertCheckIn creates the record for (employeeID, date) with status P, or
	// overwrites check_in on the existing one.
	UpsertCheckIn(ctx context.Context, employeeID string, date time.Time, checkIn time.Time) (Attendance, error)
	// GetForUpdate locks the record for (employeeID, date) inside the caller's transaction.
	GetForUpdate(ctx context.Context, employeeID string, date time.Time) (Attendance, error)
	SetCheckOut(ctx context.Context, id string, checkOut time.Time, hoursWorked float64) (Attendance, error)

	Create(ctx context.Context, a Attendance) (Attendance, error)
	GetByID(ctx context.Context, id string) (Attendance, error)
	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)
	Update(ctx context.Context, a Attendance) (Attendance, error)
	Delete(ctx context.Context, id string) error

	// CountPresent counts P records for employeeID with att_date in [from, to].
	CountPresent(ctx context.Context, employeeID string, from, to time.Time) (int, error)
}

package report

import (
	"context"
	"time"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/attendance"
)

// ReportRepository defines the interface for report data access
type ReportRepository interface {
	// AttendanceBetween returns records with att_date in [from, to] joined to the employee
	AttendanceBetween(ctx context.Context, from, to time.Time) ([]attendance.Attendance, error)
	AttendanceStatusCounts(ctx context.Context, from, to time.Time) ([]StatusCount, error)
	DepartmentCost(ctx context.Context, year, month int) ([]DepartmentCost, error)
	Headcount(ctx context.Context, departmentID *string) (int64, error)
}

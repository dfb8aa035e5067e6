package dashboard

import (
	"context"
	"time"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/attendance"
)

// DashboardRepository holds the read-only aggregate queries behind the dashboard
type DashboardRepository interface {
	// CountEmployees counts employees, optionally restricted to one employment status
	CountEmployees(ctx context.Context, status *string) (int64, error)
	CountAttendanceOn(ctx context.Context, day time.Time, status attendance.Status) (int64, error)

	// AttendanceTrend returns one zero-filled bucket per day in [from, to] in a single query
	AttendanceTrend(ctx context.Context, from, to time.Time) ([]CountPoint, error)
	AttendanceBreakdown(ctx context.Context, day time.Time) ([]LabelValue, error)
	DepartmentsHeadcount(ctx context.Context) ([]LabelValue, error)

	// PayrollTrend returns twelve zero-filled monthly net totals
	PayrollTrend(ctx context.Context, year int) ([]AmountPoint, error)
	PayrollByDepartment(ctx context.Context, year, month int) ([]LabelAmount, error)
	CountPayrollRuns(ctx context.Context, year, month int) (int64, error)

	EmployeeAttendance(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error)
}

package dashboard

import (
	"context"
	"time"
)

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// KPIs returns active headcount and present count for day, fetched in parallel
	KPIs(ctx context.Context, day time.Time) (*KPIResponse, error)
	AttendanceTrend(ctx context.Context, from, to time.Time) (*AttendanceTrendResponse, error)
	AttendanceBreakdown(ctx context.Context, day time.Time) (*BreakdownResponse, error)
	DepartmentsHeadcount(ctx context.Context) (*BreakdownResponse, error)
	PayrollTrend(ctx context.Context, year int) (*PayrollTrendResponse, error)
	PayrollDepartment(ctx context.Context, year, month int) (*AmountBreakdownResponse, error)
	PayrollCoverage(ctx context.Context, year, month int) (*PayrollCoverageResponse, error)
	EmployeeSnapshot(ctx context.Context, employeeID string, from, to time.Time) (*EmployeeSnapshotResponse, error)

	ShiftsCoverage(ctx context.Context) (*CoverageResponse, error)
	OvertimeTop(ctx context.Context) (*ListResponse, error)
	AttendanceLate(ctx context.Context) (*ListResponse, error)
}

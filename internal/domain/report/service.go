package report

import "context"

// ReportService builds the exportable reports
type ReportService interface {
	AttendanceDaily(ctx context.Context, req DateRequest) (*Report, error)
	AttendanceRange(ctx context.Context, req RangeRequest) (*Report, error)
	AttendanceSummary(ctx context.Context, req PeriodRequest) (*Report, error)
	AttendanceLate(ctx context.Context) (*Report, error)

	ShiftsCoverage(ctx context.Context, req DateRequest) (*Report, error)
	ShiftsRoster(ctx context.Context, req RangeRequest) (*Report, error)

	PayrollSummary(ctx context.Context, req PeriodRequest) (*Report, error)
	Payslip(ctx context.Context, req PayslipRequest) (*Report, error)
	SalaryDepartmentCost(ctx context.Context, req PeriodRequest) (*Report, error)
	Overtime(ctx context.Context) (*Report, error)

	Headcount(ctx context.Context, req HeadcountRequest) (*Report, error)
	EmployeeProfile(ctx context.Context, req ProfileRequest) (*Report, error)
}

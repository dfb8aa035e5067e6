package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/utils"
)

var (
	attendanceHeaders = []string{"Employee Code", "Name", "Date", "Status", "Check In", "Check Out", "Hours Worked"}
	shiftHeaders      = []string{"Employee Code", "Name", "Shift", "Start", "End"}
)

type ReportServiceImpl struct {
	reportRepo        report.ReportRepository
	employeeShiftRepo schedule.EmployeeShiftRepository
	payrollRunRepo    payroll.PayrollRunRepository
	employeeRepo      employee.EmployeeRepository
}

func NewReportService(
	reportRepo report.ReportRepository,
	employeeShiftRepo schedule.EmployeeShiftRepository,
	payrollRunRepo payroll.PayrollRunRepository,
	employeeRepo employee.EmployeeRepository,
) report.ReportService {
	return &ReportServiceImpl{
		reportRepo:        reportRepo,
		employeeShiftRepo: employeeShiftRepo,
		payrollRunRepo:    payrollRunRepo,
		employeeRepo:      employeeRepo,
	}
}

func parseDay(s string) (time.Time, error) {
	d, err := utils.ParseDate(s)
	if err != nil {
		return time.Time{}, report.ErrInvalidDate
	}
	return d, nil
}

func parseRange(req report.RangeRequest) (time.Time, time.Time, error) {
	if req.From == "" || req.To == "" {
		return time.Time{}, time.Time{}, report.ErrMissingRange
	}
	from, err := parseDay(req.From)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := parseDay(req.To)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}

func timestamp(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func attendanceReport(records []attendance.Attendance, filename, sheet string) *report.Report {
	data := make([]attendance.AttendanceResponse, 0, len(records))
	rows := make([][]any, 0, len(records))
	for _, a := range records {
		data = append(data, attendance.ToResponse(a))
		rows = append(rows, []any{
			a.EmployeeCode,
			a.EmployeeName,
			utils.FormatDate(a.AttDate),
			string(a.Status),
			timestamp(a.CheckIn),
			timestamp(a.CheckOut),
			a.HoursWorked,
		})
	}
	return &report.Report{
		Filename: filename,
		Sheet:    sheet,
		Headers:  attendanceHeaders,
		Rows:     rows,
		Data:     data,
	}
}

func shiftReport(assignments []schedule.EmployeeShift, filename, sheet string) *report.Report {
	data := make([]report.ShiftAssignmentRow, 0, len(assignments))
	rows := make([][]any, 0, len(assignments))
	for _, es := range assignments {
		row := report.ShiftAssignmentRow{
			EmployeeID:   es.EmployeeID,
			EmployeeCode: es.EmployeeCode,
			EmployeeName: es.EmployeeName,
			ShiftID:      es.ShiftID,
			ShiftName:    es.ShiftName,
			StartDate:    utils.FormatDate(es.StartDate),
		}
		end := ""
		if es.EndDate != nil {
			end = utils.FormatDate(*es.EndDate)
			row.EndDate = &end
		}
		data = append(data, row)
		rows = append(rows, []any{es.EmployeeCode, es.EmployeeName, es.ShiftName, row.StartDate, end})
	}
	return &report.Report{
		Filename: filename,
		Sheet:    sheet,
		Headers:  shiftHeaders,
		Rows:     rows,
		Data:     data,
	}
}

// ========================================
// ATTENDANCE
// ========================================

func (s *ReportServiceImpl) AttendanceDaily(ctx context.Context, req report.DateRequest) (*report.Report, error) {
	if req.Date == "" {
		return nil, report.ErrMissingDate
	}
	day, err := parseDay(req.Date)
	if err != nil {
		return nil, err
	}

	records, err := s.reportRepo.AttendanceBetween(ctx, day, day)
	if err != nil {
		return nil, err
	}
	return attendanceReport(records, fmt.Sprintf("attendance-daily-%s.xlsx", req.Date), "Attendance Daily"), nil
}

func (s *ReportServiceImpl) AttendanceRange(ctx context.Context, req report.RangeRequest) (*report.Report, error) {
	from, to, err := parseRange(req)
	if err != nil {
		return nil, err
	}

	records, err := s.reportRepo.AttendanceBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return attendanceReport(records, fmt.Sprintf("attendance-range-%s_to_%s.xlsx", req.From, req.To), "Attendance Range"), nil
}

func (s *ReportServiceImpl) AttendanceSummary(ctx context.Context, req report.PeriodRequest) (*report.Report, error) {
	if !req.Valid() {
		return nil, report.ErrMissingPeriod
	}

	counts, err := s.reportRepo.AttendanceStatusCounts(ctx,
		utils.StartOfMonth(req.Year, req.Month),
		utils.EndOfMonth(req.Year, req.Month),
	)
	if err != nil {
		return nil, err
	}

	rows := make([][]any, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, []any{c.Status, c.Count})
	}
	return &report.Report{
		Filename: fmt.Sprintf("attendance-summary-%s.xlsx", req.Suffix()),
		Sheet:    "Attendance Summary",
		Headers:  []string{"Status", "Count"},
		Rows:     rows,
		Data:     counts,
	}, nil
}

// AttendanceLate has no data source yet; it returns the sheet layout only.
func (s *ReportServiceImpl) AttendanceLate(ctx context.Context) (*report.Report, error) {
	return &report.Report{
		Filename: "attendance-late.xlsx",
		Sheet:    "Late Report",
		Headers:  []string{"Employee Code", "Name", "Date", "Minutes Late"},
		Rows:     [][]any{},
		Data:     []any{},
	}, nil
}

// ========================================
// SHIFTS
// ========================================

func (s *ReportServiceImpl) ShiftsCoverage(ctx context.Context, req report.DateRequest) (*report.Report, error) {
	if req.Date == "" {
		return nil, report.ErrMissingDate
	}
	day, err := parseDay(req.Date)
	if err != nil {
		return nil, err
	}

	assignments, err := s.employeeShiftRepo.ActiveOn(ctx, day)
	if err != nil {
		return nil, err
	}
	return shiftReport(assignments, fmt.Sprintf("shifts-coverage-%s.xlsx", req.Date), "Shifts Coverage"), nil
}

func (s *ReportServiceImpl) ShiftsRoster(ctx context.Context, req report.RangeRequest) (*report.Report, error) {
	from, to, err := parseRange(req)
	if err != nil {
		return nil, err
	}

	assignments, err := s.employeeShiftRepo.Overlapping(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return shiftReport(assignments, fmt.Sprintf("shifts-roster-%s_to_%s.xlsx", req.From, req.To), "Shifts Roster"), nil
}

// ========================================
// PAYROLL
// ========================================

func (s *ReportServiceImpl) PayrollSummary(ctx context.Context, req report.PeriodRequest) (*report.Report, error) {
	if !req.Valid() {
		return nil, report.ErrMissingPeriod
	}

	summary, err := s.payrollRunRepo.Summary(ctx, req.Year, req.Month)
	if err != nil {
		return nil, err
	}

	return &report.Report{
		Filename: fmt.Sprintf("payroll-summary-%s.xlsx", req.Suffix()),
		Sheet:    "Payroll Summary",
		Headers:  []string{"Year", "Month", "Total Net", "Count"},
		Rows:     [][]any{{summary.Year, summary.Month, summary.TotalNet.InexactFloat64(), summary.Count}},
		Data:     summary,
	}, nil
}

func (s *ReportServiceImpl) Payslip(ctx context.Context, req report.PayslipRequest) (*report.Report, error) {
	if req.EmployeeID == "" || !req.Valid() {
		return nil, report.ErrMissingFields
	}

	run, err := s.payrollRunRepo.GetByEmployeePeriod(ctx, req.EmployeeID, req.Year, req.Month)
	if err != nil {
		if errors.Is(err, payroll.ErrPayrollNotFound) {
			return nil, report.ErrPayslipNotFound
		}
		return nil, err
	}

	return &report.Report{
		Filename: fmt.Sprintf("payslip-%s.xlsx", req.Suffix()),
		Sheet:    "Payslip",
		Headers: []string{
			"Employee Code", "Name", "Year", "Month", "Basic", "Allowances",
			"Deductions", "Gross", "Net", "Present Days", "Working Days",
		},
		Rows: [][]any{{
			run.EmployeeCode,
			run.EmployeeName,
			run.PeriodYear,
			run.PeriodMonth,
			run.BasicSalary.InexactFloat64(),
			run.TotalAllowances.InexactFloat64(),
			run.TotalDeductions.InexactFloat64(),
			run.GrossPay.InexactFloat64(),
			run.NetPay.InexactFloat64(),
			run.PresentDays,
			run.WorkingDays,
		}},
		Data: payroll.ToRunResponse(run),
	}, nil
}

func (s *ReportServiceImpl) SalaryDepartmentCost(ctx context.Context, req report.PeriodRequest) (*report.Report, error) {
	if !req.Valid() {
		return nil, report.ErrMissingPeriod
	}

	costs, err := s.reportRepo.DepartmentCost(ctx, req.Year, req.Month)
	if err != nil {
		return nil, err
	}

	rows := make([][]any, 0, len(costs))
	for _, c := range costs {
		rows = append(rows, []any{c.DepartmentName, c.TotalNet.InexactFloat64()})
	}
	return &report.Report{
		Filename: fmt.Sprintf("salary-department-cost-%s.xlsx", req.Suffix()),
		Sheet:    "Department Cost",
		Headers:  []string{"Department", "Total Net"},
		Rows:     rows,
		Data:     costs,
	}, nil
}

// Overtime is not tracked; it returns the sheet layout only.
func (s *ReportServiceImpl) Overtime(ctx context.Context) (*report.Report, error) {
	return &report.Report{
		Filename: "overtime.xlsx",
		Sheet:    "Overtime",
		Headers:  []string{"Employee Code", "Name", "Hours"},
		Rows:     [][]any{},
		Data:     []any{},
	}, nil
}

// ========================================
// EMPLOYEES
// ========================================

func (s *ReportServiceImpl) Headcount(ctx context.Context, req report.HeadcountRequest) (*report.Report, error) {
	count, err := s.reportRepo.Headcount(ctx, req.DepartmentID)
	if err != nil {
		return nil, err
	}

	department := "All"
	if req.DepartmentID != nil {
		department = *req.DepartmentID
	}
	return &report.Report{
		Filename: "headcount.xlsx",
		Sheet:    "Headcount",
		Headers:  []string{"DepartmentId", "Count"},
		Rows:     [][]any{{department, count}},
		Data:     report.HeadcountResult{DepartmentID: req.DepartmentID, Count: count},
	}, nil
}

func (s *ReportServiceImpl) EmployeeProfile(ctx context.Context, req report.ProfileRequest) (*report.Report, error) {
	if req.EmployeeID == "" {
		return nil, report.ErrMissingFields
	}

	e, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return nil, report.ErrEmployeeNotFound
		}
		return nil, err
	}

	deref := func(p *string) string {
		if p == nil {
			return ""
		}
		return *p
	}

	return &report.Report{
		Filename: fmt.Sprintf("employee-profile-%s.xlsx", req.EmployeeID),
		Sheet:    "Employee Profile",
		Headers:  []string{"Employee Code", "First Name", "Last Name", "Email", "Department", "Designation", "Status"},
		Rows: [][]any{{
			e.EmployeeCode,
			e.FirstName,
			e.LastName,
			e.Email,
			deref(e.DepartmentName),
			deref(e.DesignationName),
			string(e.EmploymentStatus),
		}},
		Data: employee.ToResponse(e),
	}, nil
}

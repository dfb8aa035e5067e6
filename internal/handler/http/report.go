package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/ems-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/excel"
)

type ReportHandler interface {
	// Attendance
	AttendanceDaily(w http.ResponseWriter, r *http.Request)
	AttendanceRange(w http.ResponseWriter, r *http.Request)
	AttendanceSummary(w http.ResponseWriter, r *http.Request)
	AttendanceLate(w http.ResponseWriter, r *http.Request)

	// Shifts
	ShiftsCoverage(w http.ResponseWriter, r *http.Request)
	ShiftsRoster(w http.ResponseWriter, r *http.Request)

	// Payroll
	PayrollSummary(w http.ResponseWriter, r *http.Request)
	Payslip(w http.ResponseWriter, r *http.Request)
	SalaryDepartmentCost(w http.ResponseWriter, r *http.Request)
	Overtime(w http.ResponseWriter, r *http.Request)

	// Employees
	Headcount(w http.ResponseWriter, r *http.Request)
	EmployeeProfile(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

func dateRequest(r *http.Request) report.DateRequest {
	return report.DateRequest{Date: r.URL.Query().Get("date")}
}

func rangeRequest(r *http.Request) report.RangeRequest {
	q := r.URL.Query()
	return report.RangeRequest{From: q.Get("from"), To: q.Get("to")}
}

func periodRequest(r *http.Request) report.PeriodRequest {
	return report.PeriodRequest{Year: intQuery(r, "year"), Month: intQuery(r, "month")}
}

// render writes rep as JSON when ?format=json, otherwise as an xlsx attachment.
func render(w http.ResponseWriter, r *http.Request, rep *report.Report, err error) {
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if strings.EqualFold(r.URL.Query().Get("format"), "json") {
		response.Success(w, rep.Data)
		return
	}

	buf, err := excel.Render(rep.Sheet, rep.Headers, rep.Rows)
	if err != nil {
		slog.Error("failed to render report", "report", rep.Filename, "error", err)
		response.InternalServerError(w, "Failed to render report")
		return
	}

	w.Header().Set("Content-Type", excel.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", rep.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Warn("failed to write report", "report", rep.Filename, "error", err)
	}
}

// AttendanceDaily handles GET /reports/attendance/daily?date=
func (h *reportHandlerImpl) AttendanceDaily(w http.ResponseWriter, r *http.Request) {
	rep, err := h.reportService.AttendanceDaily(r.Context(), dateRequest(r))
	render(w, r, rep, err)
}

// AttendanceRange handles GET /reports/attendance/range?from=&to=
func (h *reportHandlerImpl) AttendanceRange(w http.ResponseWriter, r *http.Request) {
	rep, err := h.reportService.AttendanceRange(r.Context(), rangeRequest(r))
	render(w, r, rep, err)
}

// AttendanceSummary handles GET /reports/attendance/summary?year=&month=
func (h *reportHandlerImpl) AttendanceSummary(w http.ResponseWriter, r *http.Request) {
	rep, err := h.reportService.AttendanceSummary(r.Context(), periodRequest(r))
	render(w, r, rep, err)
}

func (h *reportHandlerImpl) AttendanceLate(w http.ResponseWriter, r *http.Request) {
	rep, err := h.reportService.AttendanceLate(r.Context())
	render(w, r, rep, err)
}

// ShiftsCoverage handles GET /reports/shifts/coverage?date=
func (h *reportHandlerImpl) ShiftsCoverage(w http.ResponseWriter, r *http.Request) {
	rep, err := h.reportService.ShiftsCoverage(r.Context(), dateRequest(r))
	render(w, r, rep, err)
}

// ShiftsRoster handles GET /reports/shifts/roster?from=&to=
func (h *reportHandlerImpl) ShiftsRoster(w http.ResponseWriter, r *http.Request) {
	rep, err := h.reportService.ShiftsRoster(r.Context(), rangeRequest(r))
	render(w, r, rep, err)
}

// PayrollSummary handles GET /reports/payroll/summary?year=&month=
func (h *reportHandlerImpl) PayrollSummary(w http.ResponseWriter, r *http.Request) {
	rep, err := h.reportService.PayrollSummary(r.Context(), periodRequest(r))
	render(w, r, rep, err)
}

// Payslip handles GET /reports/payroll/payslip?employee_id=&year=&month=
func (h *reportHandlerImpl) Payslip(w http.ResponseWriter, r *http.Request) {
	req := report.PayslipRequest{
		EmployeeID:    r.URL.Query().Get("employee_id"),
		PeriodRequest: periodRequest(r),
	}
	rep, err := h.reportService.Payslip(r.Context(), req)
	render(w, r, rep, err)
}

// SalaryDepartmentCost handles GET /reports/salary/department-cost?year=&month=
func (h *reportHandlerImpl) SalaryDepartmentCost(w http.ResponseWriter, r *http.Request) {
	rep, err := h.reportService.SalaryDepartmentCost(r.Context(), periodRequest(r))
	render(w, r, rep, err)
}

func (h *reportHandlerImpl) Overtime(w http.ResponseWriter, r *http.Request) {
	rep, err := h.reportService.Overtime(r.Context())
	render(w, r, rep, err)
}

// Headcount handles GET /reports/headcount?department_id=
func (h *reportHandlerImpl) Headcount(w http.ResponseWriter, r *http.Request) {
	rep, err := h.reportService.Headcount(r.Context(), report.HeadcountRequest{DepartmentID: optionalQuery(r, "department_id")})
	render(w, r, rep, err)
}

// EmployeeProfile handles GET /reports/employees/profile?employee_id=
func (h *reportHandlerImpl) EmployeeProfile(w http.ResponseWriter, r *http.Request) {
	rep, err := h.reportService.EmployeeProfile(r.Context(), report.ProfileRequest{EmployeeID: r.URL.Query().Get("employee_id")})
	render(w, r, rep, err)
}

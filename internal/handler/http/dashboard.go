package http

import (
	"net/http"
	"time"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/ems-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type DashboardHandler interface {
	// GetKPIs returns active headcount and today's present count
	GetKPIs(w http.ResponseWriter, r *http.Request)
	GetAttendanceTrend(w http.ResponseWriter, r *http.Request)
	GetAttendanceBreakdown(w http.ResponseWriter, r *http.Request)
	GetDepartmentsHeadcount(w http.ResponseWriter, r *http.Request)
	GetPayrollTrend(w http.ResponseWriter, r *http.Request)
	GetPayrollDepartment(w http.ResponseWriter, r *http.Request)
	GetPayrollCoverage(w http.ResponseWriter, r *http.Request)
	GetEmployeeSnapshot(w http.ResponseWriter, r *http.Request)

	// Widgets without a data source yet
	GetShiftsCoverage(w http.ResponseWriter, r *http.Request)
	GetOvertimeTop(w http.ResponseWriter, r *http.Request)
	GetAttendanceLate(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
	now              func() time.Time
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService, now: time.Now}
}

// dayOrToday parses ?date=, defaulting to today
func (h *dashboardHandlerImpl) dayOrToday(r *http.Request) (time.Time, bool) {
	day, ok := dateQuery(r, "date")
	if ok && day.IsZero() {
		day = h.now().UTC()
	}
	return day, ok
}

// period reads ?year=&month=, defaulting missing values to the current month
func (h *dashboardHandlerImpl) period(r *http.Request) (int, int) {
	now := h.now().UTC()
	year, month := now.Year(), int(now.Month())
	if v := optionalIntQuery(r, "year"); v != nil {
		year = *v
	}
	if v := optionalIntQuery(r, "month"); v != nil {
		month = *v
	}
	return year, month
}

// writeResult sends result as the bare dashboard payload
func writeResult(w http.ResponseWriter, result any, err error) {
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// GetKPIs handles GET /dashboard/kpis
func (h *dashboardHandlerImpl) GetKPIs(w http.ResponseWriter, r *http.Request) {
	day, ok := h.dayOrToday(r)
	if !ok {
		response.HandleError(w, report.ErrInvalidDate)
		return
	}

	result, err := h.dashboardService.KPIs(r.Context(), day)
	writeResult(w, result, err)
}

// GetAttendanceTrend handles GET /dashboard/attendance/trend?from=&to=
func (h *dashboardHandlerImpl) GetAttendanceTrend(w http.ResponseWriter, r *http.Request) {
	from, okFrom := dateQuery(r, "from")
	to, okTo := dateQuery(r, "to")
	if !okFrom || !okTo {
		response.HandleError(w, report.ErrInvalidDate)
		return
	}

	result, err := h.dashboardService.AttendanceTrend(r.Context(), from, to)
	writeResult(w, result, err)
}

// GetAttendanceBreakdown handles GET /dashboard/attendance/breakdown?date=
func (h *dashboardHandlerImpl) GetAttendanceBreakdown(w http.ResponseWriter, r *http.Request) {
	day, ok := h.dayOrToday(r)
	if !ok {
		response.HandleError(w, report.ErrInvalidDate)
		return
	}

	result, err := h.dashboardService.AttendanceBreakdown(r.Context(), day)
	writeResult(w, result, err)
}

// GetDepartmentsHeadcount handles GET /dashboard/departments/headcount
func (h *dashboardHandlerImpl) GetDepartmentsHeadcount(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.DepartmentsHeadcount(r.Context())
	writeResult(w, result, err)
}

// GetPayrollTrend handles GET /dashboard/payroll/trend?year=
func (h *dashboardHandlerImpl) GetPayrollTrend(w http.ResponseWriter, r *http.Request) {
	year, _ := h.period(r)

	result, err := h.dashboardService.PayrollTrend(r.Context(), year)
	writeResult(w, result, err)
}

// GetPayrollDepartment handles GET /dashboard/payroll/department?year=&month=
func (h *dashboardHandlerImpl) GetPayrollDepartment(w http.ResponseWriter, r *http.Request) {
	year, month := h.period(r)

	result, err := h.dashboardService.PayrollDepartment(r.Context(), year, month)
	writeResult(w, result, err)
}

// GetPayrollCoverage handles GET /dashboard/payroll/coverage?year=&month=
func (h *dashboardHandlerImpl) GetPayrollCoverage(w http.ResponseWriter, r *http.Request) {
	year, month := h.period(r)

	result, err := h.dashboardService.PayrollCoverage(r.Context(), year, month)
	writeResult(w, result, err)
}

// GetEmployeeSnapshot handles GET /dashboard/employee/{employeeID}/snapshot?from=&to=
func (h *dashboardHandlerImpl) GetEmployeeSnapshot(w http.ResponseWriter, r *http.Request) {
	from, okFrom := dateQuery(r, "from")
	to, okTo := dateQuery(r, "to")
	if !okFrom || !okTo {
		response.HandleError(w, report.ErrInvalidDate)
		return
	}

	result, err := h.dashboardService.EmployeeSnapshot(r.Context(), chi.URLParam(r, "employeeID"), from, to)
	writeResult(w, result, err)
}

func (h *dashboardHandlerImpl) GetShiftsCoverage(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.ShiftsCoverage(r.Context())
	writeResult(w, result, err)
}

func (h *dashboardHandlerImpl) GetOvertimeTop(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.OvertimeTop(r.Context())
	writeResult(w, result, err)
}

func (h *dashboardHandlerImpl) GetAttendanceLate(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.AttendanceLate(r.Context())
	writeResult(w, result, err)
}

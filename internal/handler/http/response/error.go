package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/master/department"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/master/designation"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid credentials")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrUnauthorized):
		Unauthorized(w, "Unauthorized")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound),
		errors.Is(err, schedule.ErrEmployeeNotFound),
		errors.Is(err, attendance.ErrEmployeeNotFound),
		errors.Is(err, payroll.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, report.ErrEmployeeNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, employee.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Master data errors
	case errors.Is(err, department.ErrDepartmentNotFound),
		errors.Is(err, designation.ErrDepartmentNotFound),
		errors.Is(err, employee.ErrDepartmentNotFound):
		NotFound(w, "Department not found")
	case errors.Is(err, department.ErrDepartmentNameExists):
		Conflict(w, "Department name already exists")
	case errors.Is(err, designation.ErrDesignationNotFound),
		errors.Is(err, employee.ErrDesignationNotFound):
		NotFound(w, "Designation not found")
	case errors.Is(err, designation.ErrDesignationTitleExists):
		Conflict(w, "Designation title already exists in this department")

	// Schedule domain errors
	case errors.Is(err, schedule.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, schedule.ErrShiftNameExists):
		Conflict(w, "Shift name already exists")
	case errors.Is(err, schedule.ErrEmployeeShiftNotFound):
		NotFound(w, "Employee shift not found")
	case errors.Is(err, schedule.ErrInvalidDateRange):
		ValidationError(w, map[string]string{"end_date": "must not be before start_date"})

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFoundToday):
		NotFound(w, "Attendance not found for today")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance not found")
	case errors.Is(err, attendance.ErrAttendanceExists):
		Conflict(w, "Attendance already recorded for this date")
	case errors.Is(err, attendance.ErrCheckForOtherEmployee):
		Forbidden(w, "Cannot record attendance for another employee")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrSalaryTemplateNotFound):
		NotFound(w, "Salary template not found")
	case errors.Is(err, payroll.ErrPayrollNotFound):
		NotFound(w, "Payroll not found")
	case errors.Is(err, payroll.ErrInvalidPeriod),
		errors.Is(err, dashboard.ErrInvalidPeriod):
		BadRequest(w, "Invalid year or month", nil)

	// Report and dashboard parameters
	case errors.Is(err, report.ErrMissingDate):
		BadRequest(w, "Missing date", nil)
	case errors.Is(err, report.ErrMissingRange),
		errors.Is(err, dashboard.ErrMissingRange):
		BadRequest(w, "Missing range", nil)
	case errors.Is(err, report.ErrMissingPeriod):
		BadRequest(w, "Missing year/month", nil)
	case errors.Is(err, report.ErrMissingFields):
		BadRequest(w, "Missing fields", nil)
	case errors.Is(err, report.ErrInvalidDate):
		BadRequest(w, "Invalid date", nil)
	case errors.Is(err, dashboard.ErrRangeTooLarge):
		BadRequest(w, "Range must not exceed 366 days", nil)
	case errors.Is(err, report.ErrPayslipNotFound):
		NotFound(w, "Payslip not found")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}

package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/ems-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	// Salary templates
	UpsertTemplate(w http.ResponseWriter, r *http.Request)
	GetTemplate(w http.ResponseWriter, r *http.Request)
	ListTemplates(w http.ResponseWriter, r *http.Request)
	DeleteTemplate(w http.ResponseWriter, r *http.Request)

	// Payroll runs
	GeneratePayroll(w http.ResponseWriter, r *http.Request)
	GetPayrollRun(w http.ResponseWriter, r *http.Request)
	ListPayrollRuns(w http.ResponseWriter, r *http.Request)
	UpdatePayrollRun(w http.ResponseWriter, r *http.Request)
	DeletePayrollRun(w http.ResponseWriter, r *http.Request)

	// Summary
	GetPayrollSummary(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// ========== SALARY TEMPLATES ==========

// UpsertTemplate handles POST /salary-templates and PUT /salary-templates/{employeeID}
func (h *payrollHandlerImpl) UpsertTemplate(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpsertSalaryTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if employeeID := chi.URLParam(r, "employeeID"); employeeID != "" {
		req.EmployeeID = employeeID
	}

	result, err := h.payrollService.UpsertTemplate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary template saved successfully", result)
}

func (h *payrollHandlerImpl) GetTemplate(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.GetTemplate(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ListTemplates(w http.ResponseWriter, r *http.Request) {
	filter := payroll.SalaryTemplateFilter{
		EmployeeID: optionalQuery(r, "employee_id"),
		Params:     paginationFrom(r),
	}

	results, err := h.payrollService.ListTemplates(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, results.Data, response.NewMeta(results.Page, results.Limit, results.TotalCount))
}

func (h *payrollHandlerImpl) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	if err := h.payrollService.DeleteTemplate(r.Context(), chi.URLParam(r, "employeeID")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary template deleted successfully", nil)
}

// ========== PAYROLL RUNS ==========

// GeneratePayroll handles POST /payroll/generate
func (h *payrollHandlerImpl) GeneratePayroll(w http.ResponseWriter, r *http.Request) {
	var req payroll.GeneratePayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.GeneratePayroll(r.Context(), req.Year, req.Month, req.EmployeeID)
	if err != nil {
		slog.Error("Payroll generation incomplete", "year", req.Year, "month", req.Month, "generated", result.Generated, "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll generated successfully", result)
}

func (h *payrollHandlerImpl) GetPayrollRun(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.GetRun(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ListPayrollRuns(w http.ResponseWriter, r *http.Request) {
	filter := payroll.PayrollFilter{
		EmployeeID: optionalQuery(r, "employee_id"),
		Year:       optionalIntQuery(r, "year"),
		Month:      optionalIntQuery(r, "month"),
		Params:     paginationFrom(r),
	}

	results, err := h.payrollService.ListRuns(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, results.Data, response.NewMeta(results.Page, results.Limit, results.TotalCount))
}

func (h *payrollHandlerImpl) UpdatePayrollRun(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpdatePayrollRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.payrollService.UpdateRun(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll updated successfully", result)
}

func (h *payrollHandlerImpl) DeletePayrollRun(w http.ResponseWriter, r *http.Request) {
	if err := h.payrollService.DeleteRun(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll deleted successfully", nil)
}

// ========== SUMMARY ==========

// GetPayrollSummary handles GET /payroll/summary?year=&month=
func (h *payrollHandlerImpl) GetPayrollSummary(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.Summary(r.Context(), intQuery(r, "year"), intQuery(r, "month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/ems-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ScheduleHandler interface {
	// Shift handlers
	CreateShift(w http.ResponseWriter, r *http.Request)
	GetShift(w http.ResponseWriter, r *http.Request)
	ListShifts(w http.ResponseWriter, r *http.Request)
	UpdateShift(w http.ResponseWriter, r *http.Request)
	DeleteShift(w http.ResponseWriter, r *http.Request)

	// Employee shift handlers
	AssignShift(w http.ResponseWriter, r *http.Request)
	GetEmployeeShift(w http.ResponseWriter, r *http.Request)
	ListEmployeeShifts(w http.ResponseWriter, r *http.Request)
	UpdateEmployeeShift(w http.ResponseWriter, r *http.Request)
	DeleteEmployeeShift(w http.ResponseWriter, r *http.Request)
}

type scheduleHandlerImpl struct {
	scheduleService schedule.ScheduleService
}

func NewScheduleHandler(scheduleService schedule.ScheduleService) ScheduleHandler {
	return &scheduleHandlerImpl{
		scheduleService: scheduleService,
	}
}

// ==================== SHIFT HANDLERS ====================

func (h *scheduleHandlerImpl) CreateShift(w http.ResponseWriter, r *http.Request) {
	var req schedule.CreateShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.scheduleService.CreateShift(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Shift created successfully", result)
}

func (h *scheduleHandlerImpl) GetShift(w http.ResponseWriter, r *http.Request) {
	result, err := h.scheduleService.GetShift(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *scheduleHandlerImpl) ListShifts(w http.ResponseWriter, r *http.Request) {
	filter := schedule.ShiftFilter{
		Search: optionalQuery(r, "q"),
		Params: paginationFrom(r),
	}

	results, err := h.scheduleService.ListShifts(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, results.Data, response.NewMeta(results.Page, results.Limit, results.TotalCount))
}

func (h *scheduleHandlerImpl) UpdateShift(w http.ResponseWriter, r *http.Request) {
	var req schedule.UpdateShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.scheduleService.UpdateShift(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift updated successfully", result)
}

func (h *scheduleHandlerImpl) DeleteShift(w http.ResponseWriter, r *http.Request) {
	if err := h.scheduleService.DeleteShift(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift deleted successfully", nil)
}

// ==================== EMPLOYEE SHIFT HANDLERS ====================

func (h *scheduleHandlerImpl) AssignShift(w http.ResponseWriter, r *http.Request) {
	var req schedule.CreateEmployeeShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.scheduleService.AssignShift(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Shift assigned successfully", result)
}

func (h *scheduleHandlerImpl) GetEmployeeShift(w http.ResponseWriter, r *http.Request) {
	result, err := h.scheduleService.GetEmployeeShift(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *scheduleHandlerImpl) ListEmployeeShifts(w http.ResponseWriter, r *http.Request) {
	filter := schedule.EmployeeShiftFilter{
		EmployeeID: optionalQuery(r, "employee_id"),
		ShiftID:    optionalQuery(r, "shift_id"),
		Params:     paginationFrom(r),
	}

	results, err := h.scheduleService.ListEmployeeShifts(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, results.Data, response.NewMeta(results.Page, results.Limit, results.TotalCount))
}

func (h *scheduleHandlerImpl) UpdateEmployeeShift(w http.ResponseWriter, r *http.Request) {
	var req schedule.UpdateEmployeeShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.scheduleService.UpdateEmployeeShift(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee shift updated successfully", result)
}

func (h *scheduleHandlerImpl) DeleteEmployeeShift(w http.ResponseWriter, r *http.Request) {
	if err := h.scheduleService.DeleteEmployeeShift(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee shift deleted successfully", nil)
}

package schedule

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/utils"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/validator"
)

type CreateShiftRequest struct {
	Name         string `json:"name" validate:"required,max=100"`
	StartTime    string `json:"start_time" validate:"required,clock"`
	EndTime      string `json:"end_time" validate:"required,clock"`
	BreakMinutes int    `json:"break_minutes" validate:"gte=0"`
}

func (r *CreateShiftRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	return validator.Struct(r).OrNil()
}

type UpdateShiftRequest struct {
	ID           string  `json:"-"`
	Name         *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	StartTime    *string `json:"start_time,omitempty" validate:"omitempty,clock"`
	EndTime      *string `json:"end_time,omitempty" validate:"omitempty,clock"`
	BreakMinutes *int    `json:"break_minutes,omitempty" validate:"omitempty,gte=0"`
}

func (r *UpdateShiftRequest) Validate() error {
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		r.Name = &name
	}
	return validator.Struct(r).OrNil()
}

type ShiftFilter struct {
	Search *string
	pagination.Params
}

type ShiftResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
	BreakMinutes int       `json:"break_minutes"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type ListShiftResponse struct {
	Data       []ShiftResponse `json:"data"`
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
}

func ToShiftResponse(s Shift) ShiftResponse {
	return ShiftResponse{
		ID:           s.ID,
		Name:         s.Name,
		StartTime:    s.StartTime,
		EndTime:      s.EndTime,
		BreakMinutes: s.BreakMinutes,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

type CreateEmployeeShiftRequest struct {
	EmployeeID string  `json:"employee_id" validate:"required,uuid"`
	ShiftID    string  `json:"shift_id" validate:"required,uuid"`
	StartDate  string  `json:"start_date" validate:"required"`
	EndDate    *string `json:"end_date,omitempty"`
}

// Validate checks the payload and returns the parsed date range.
func (r *CreateEmployeeShiftRequest) Validate() (time.Time, *time.Time, error) {
	errs := validator.Struct(r)
	start, end := parseRange(&errs, &r.StartDate, r.EndDate)
	if err := errs.OrNil(); err != nil {
		return time.Time{}, nil, err
	}
	return *start, end, nil
}

type UpdateEmployeeShiftRequest struct {
	ID         string  `json:"-"`
	EmployeeID *string `json:"employee_id,omitempty" validate:"omitempty,uuid"`
	ShiftID    *string `json:"shift_id,omitempty" validate:"omitempty,uuid"`
	StartDate  *string `json:"start_date,omitempty"`
	EndDate    *string `json:"end_date,omitempty"`
}

// Validate checks the payload and returns whichever dates were supplied.
func (r *UpdateEmployeeShiftRequest) Validate() (*time.Time, *time.Time, error) {
	errs := validator.Struct(r)
	start, end := parseRange(&errs, r.StartDate, r.EndDate)
	if err := errs.OrNil(); err != nil {
		return nil, nil, err
	}
	return start, end, nil
}

func parseRange(errs *validator.ValidationErrors, startStr, endStr *string) (*time.Time, *time.Time) {
	var start, end *time.Time
	if startStr != nil && *startStr != "" {
		if d, err := utils.ParseDate(*startStr); err != nil {
			errs.Add("start_date", "must be a date (YYYY-MM-DD) or RFC3339 timestamp")
		} else {
			start = &d
		}
	}
	if endStr != nil && *endStr != "" {
		if d, err := utils.ParseDate(*endStr); err != nil {
			errs.Add("end_date", "must be a date (YYYY-MM-DD) or RFC3339 timestamp")
		} else {
			end = &d
		}
	}
	if start != nil && end != nil && end.Before(*start) {
		errs.Add("end_date", "must not be before start_date")
	}
	return start, end
}

type EmployeeShiftFilter struct {
	EmployeeID *string
	ShiftID    *string
	pagination.Params
}

type EmployeeShiftResponse struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employee_id"`
	EmployeeCode string    `json:"employee_code,omitempty"`
	EmployeeName string    `json:"employee_name,omitempty"`
	ShiftID      string    `json:"shift_id"`
	ShiftName    string    `json:"shift_name,omitempty"`
	StartDate    string    `json:"start_date"`
	EndDate      *string   `json:"end_date,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type ListEmployeeShiftResponse struct {
	Data       []EmployeeShiftResponse `json:"data"`
	TotalCount int64                   `json:"total_count"`
	Page       int                     `json:"page"`
	Limit      int                     `json:"limit"`
}

func ToEmployeeShiftResponse(es EmployeeShift) EmployeeShiftResponse {
	resp := EmployeeShiftResponse{
		ID:           es.ID,
		EmployeeID:   es.EmployeeID,
		EmployeeCode: es.EmployeeCode,
		EmployeeName: es.EmployeeName,
		ShiftID:      es.ShiftID,
		ShiftName:    es.ShiftName,
		StartDate:    utils.FormatDate(es.StartDate),
		CreatedAt:    es.CreatedAt,
		UpdatedAt:    es.UpdatedAt,
	}
	if es.EndDate != nil {
		end := utils.FormatDate(*es.EndDate)
		resp.EndDate = &end
	}
	return resp
}

package attendance

import (
	"time"

	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/utils"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/validator"
)

// CheckRequest is the body of check-in and check-out. EmployeeID defaults to
// the caller and Timestamp defaults to now.
type CheckRequest struct {
	EmployeeID string  `json:"employee_id" validate:"omitempty,uuid"`
	Timestamp  *string `json:"timestamp,omitempty"`
}

// Validate returns the parsed timestamp, or nil when none was given.
func (r *CheckRequest) Validate() (*time.Time, error) {
	errs := validator.Struct(r)
	var ts *time.Time
	if r.Timestamp != nil && *r.Timestamp != "" {
		t, err := utils.ParseTimestamp(*r.Timestamp)
		if err != nil {
			errs.Add("timestamp", "must be an RFC3339 timestamp")
		} else {
			ts = &t
		}
	}
	if err := errs.OrNil(); err != nil {
		return nil, err
	}
	return ts, nil
}

type CreateAttendanceRequest struct {
	EmployeeID  string   `json:"employee_id" validate:"required,uuid"`
	AttDate     string   `json:"att_date" validate:"required"`
	Status      string   `json:"status" validate:"required,oneof=P A L H"`
	CheckIn     *string  `json:"check_in,omitempty"`
	CheckOut    *string  `json:"check_out,omitempty"`
	HoursWorked *float64 `json:"hours_worked,omitempty" validate:"omitempty,gte=0"`
}

// Validate returns the record described by the request. Hours are derived
// from check-in and check-out when not supplied.
func (r *CreateAttendanceRequest) Validate() (Attendance, error) {
	errs := validator.Struct(r)

	a := Attendance{EmployeeID: r.EmployeeID, Status: Status(r.Status)}
	if r.AttDate != "" {
		d, err := utils.ParseDate(r.AttDate)
		if err != nil {
			errs.Add("att_date", "must be a date (YYYY-MM-DD) or RFC3339 timestamp")
		}
		a.AttDate = d
	}
	a.CheckIn = parseOptionalTimestamp(&errs, "check_in", r.CheckIn)
	a.CheckOut = parseOptionalTimestamp(&errs, "check_out", r.CheckOut)

	if err := errs.OrNil(); err != nil {
		return Attendance{}, err
	}

	if r.HoursWorked != nil {
		a.HoursWorked = *r.HoursWorked
	} else {
		a.HoursWorked = DeriveHours(a.CheckIn, a.CheckOut)
	}
	return a, nil
}

type UpdateAttendanceRequest struct {
	ID          string   `json:"-"`
	EmployeeID  *string  `json:"employee_id,omitempty" validate:"omitempty,uuid"`
	AttDate     *string  `json:"att_date,omitempty"`
	Status      *string  `json:"status,omitempty" validate:"omitempty,oneof=P A L H"`
	CheckIn     *string  `json:"check_in,omitempty"`
	CheckOut    *string  `json:"check_out,omitempty"`
	HoursWorked *float64 `json:"hours_worked,omitempty" validate:"omitempty,gte=0"`
}

// Apply validates the request and merges it onto current.
func (r *UpdateAttendanceRequest) Apply(current Attendance) (Attendance, error) {
	errs := validator.Struct(r)

	next := current
	if r.EmployeeID != nil {
		next.EmployeeID = *r.EmployeeID
	}
	if r.AttDate != nil {
		d, err := utils.ParseDate(*r.AttDate)
		if err != nil {
			errs.Add("att_date", "must be a date (YYYY-MM-DD) or RFC3339 timestamp")
		}
		next.AttDate = d
	}
	if r.Status != nil {
		next.Status = Status(*r.Status)
	}
	if in := parseOptionalTimestamp(&errs, "check_in", r.CheckIn); in != nil {
		next.CheckIn = in
	}
	if out := parseOptionalTimestamp(&errs, "check_out", r.CheckOut); out != nil {
		next.CheckOut = out
	}

	if err := errs.OrNil(); err != nil {
		return Attendance{}, err
	}

	switch {
	case r.HoursWorked != nil:
		next.HoursWorked = *r.HoursWorked
	case r.CheckIn != nil || r.CheckOut != nil:
		next.HoursWorked = DeriveHours(next.CheckIn, next.CheckOut)
	}
	return next, nil
}

func parseOptionalTimestamp(errs *validator.ValidationErrors, field string, s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := utils.ParseTimestamp(*s)
	if err != nil {
		errs.Add(field, "must be an RFC3339 timestamp")
		return nil
	}
	return &t
}

type AttendanceFilter struct {
	EmployeeID *string
	Status     *string
	From       *time.Time
	To         *time.Time
	pagination.Params
}

type AttendanceResponse struct {
	ID           string     `json:"id"`
	EmployeeID   string     `json:"employee_id"`
	EmployeeCode string     `json:"employee_code,omitempty"`
	EmployeeName string     `json:"employee_name,omitempty"`
	AttDate      string     `json:"att_date"`
	Status       string     `json:"status"`
	CheckIn      *time.Time `json:"check_in,omitempty"`
	CheckOut     *time.Time `json:"check_out,omitempty"`
	HoursWorked  float64    `json:"hours_worked"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type ListAttendanceResponse struct {
	Data       []AttendanceResponse `json:"data"`
	TotalCount int64                `json:"total_count"`
	Page       int                  `json:"page"`
	Limit      int                  `json:"limit"`
}

func ToResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:           a.ID,
		EmployeeID:   a.EmployeeID,
		EmployeeCode: a.EmployeeCode,
		EmployeeName: a.EmployeeName,
		AttDate:      utils.FormatDate(a.AttDate),
		Status:       string(a.Status),
		CheckIn:      a.CheckIn,
		CheckOut:     a.CheckOut,
		HoursWorked:  a.HoursWorked,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

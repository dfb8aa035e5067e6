package employee

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/utils"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	EmployeeCode     string  `json:"employee_code" validate:"required,max=50"`
	FirstName        string  `json:"first_name" validate:"required,max=100"`
	LastName         string  `json:"last_name" validate:"required,max=100"`
	Email            string  `json:"email" validate:"required,email"`
	Phone            *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	DepartmentID     *string `json:"department_id,omitempty" validate:"omitempty,uuid"`
	DesignationID    *string `json:"designation_id,omitempty" validate:"omitempty,uuid"`
	HireDate         *string `json:"hire_date,omitempty"`
	EmploymentStatus *string `json:"employment_status,omitempty" validate:"omitempty,oneof=ACTIVE INACTIVE ON_LEAVE TERMINATED"`
	Password         string  `json:"password" validate:"required,min=6"`
	Role             *string `json:"role,omitempty" validate:"omitempty,oneof=ADMIN EMPLOYEE"`
}

func (r *CreateEmployeeRequest) Validate() error {
	errs := validator.Struct(r)
	if r.HireDate != nil {
		if _, err := utils.ParseDate(*r.HireDate); err != nil {
			errs.Add("hire_date", "must be a date (YYYY-MM-DD) or RFC3339 timestamp")
		}
	}
	return errs.OrNil()
}

// Normalize trims identifiers and lower-cases the email.
func (r *CreateEmployeeRequest) Normalize() {
	r.EmployeeCode = strings.TrimSpace(r.EmployeeCode)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

type UpdateEmployeeRequest struct {
	EmployeeCode     *string `json:"employee_code,omitempty" validate:"omitempty,min=1,max=50"`
	FirstName        *string `json:"first_name,omitempty" validate:"omitempty,min=1,max=100"`
	LastName         *string `json:"last_name,omitempty" validate:"omitempty,min=1,max=100"`
	Email            *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone            *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	DepartmentID     *string `json:"department_id,omitempty" validate:"omitempty,uuid"`
	DesignationID    *string `json:"designation_id,omitempty" validate:"omitempty,uuid"`
	HireDate         *string `json:"hire_date,omitempty"`
	EmploymentStatus *string `json:"employment_status,omitempty" validate:"omitempty,oneof=ACTIVE INACTIVE ON_LEAVE TERMINATED"`
	Password         *string `json:"password,omitempty" validate:"omitempty,min=6"`
	Role             *string `json:"role,omitempty" validate:"omitempty,oneof=ADMIN EMPLOYEE"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	errs := validator.Struct(r)
	if r.HireDate != nil {
		if _, err := utils.ParseDate(*r.HireDate); err != nil {
			errs.Add("hire_date", "must be a date (YYYY-MM-DD) or RFC3339 timestamp")
		}
	}
	return errs.OrNil()
}

func (r *UpdateEmployeeRequest) Normalize() {
	if r.EmployeeCode != nil {
		code := strings.TrimSpace(*r.EmployeeCode)
		r.EmployeeCode = &code
	}
	if r.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*r.Email))
		r.Email = &email
	}
}

type EmployeeFilter struct {
	DepartmentID  *string
	DesignationID *string
	Status        *string
	Search        *string
	pagination.Params
}

type EmployeeResponse struct {
	ID               string    `json:"id"`
	EmployeeCode     string    `json:"employee_code"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	Email            string    `json:"email"`
	Phone            *string   `json:"phone,omitempty"`
	DepartmentID     *string   `json:"department_id,omitempty"`
	DepartmentName   *string   `json:"department_name,omitempty"`
	DesignationID    *string   `json:"designation_id,omitempty"`
	DesignationName  *string   `json:"designation_name,omitempty"`
	HireDate         *string   `json:"hire_date,omitempty"`
	EmploymentStatus string    `json:"employment_status"`
	Role             string    `json:"role"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type ListEmployeeResponse struct {
	Data       []EmployeeResponse `json:"data"`
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
}

func ToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:               e.ID,
		EmployeeCode:     e.EmployeeCode,
		FirstName:        e.FirstName,
		LastName:         e.LastName,
		Email:            e.Email,
		Phone:            e.Phone,
		DepartmentID:     e.DepartmentID,
		DepartmentName:   e.DepartmentName,
		DesignationID:    e.DesignationID,
		DesignationName:  e.DesignationName,
		EmploymentStatus: string(e.EmploymentStatus),
		Role:             string(e.Role),
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
	if e.HireDate != nil {
		d := utils.FormatDate(*e.HireDate)
		resp.HireDate = &d
	}
	return resp
}

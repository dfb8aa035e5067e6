package department

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/validator"
)

type CreateDepartmentRequest struct {
	Name        string  `json:"name" validate:"required,max=150"`
	Description *string `json:"description,omitempty"`
}

func (r *CreateDepartmentRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	return validator.Struct(r).OrNil()
}

type UpdateDepartmentRequest struct {
	ID          string  `json:"-"`
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=150"`
	Description *string `json:"description,omitempty"`
}

func (r *UpdateDepartmentRequest) Validate() error {
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		r.Name = &name
	}
	errs := validator.Struct(r)
	if validator.IsEmpty(r.ID) {
		errs.Add("id", "is required")
	}
	return errs.OrNil()
}

type DepartmentFilter struct {
	Search *string
	pagination.Params
}

type DepartmentResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ListDepartmentResponse struct {
	Data       []DepartmentResponse `json:"data"`
	TotalCount int64                `json:"total_count"`
	Page       int                  `json:"page"`
	Limit      int                  `json:"limit"`
}

func ToResponse(d Department) DepartmentResponse {
	return DepartmentResponse{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

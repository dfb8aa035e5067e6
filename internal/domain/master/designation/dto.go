package designation

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/validator"
)

type CreateDesignationRequest struct {
	DepartmentID string  `json:"department_id" validate:"required,uuid"`
	Title        string  `json:"title" validate:"required,max=150"`
	Level        *string `json:"level,omitempty" validate:"omitempty,max=50"`
}

func (r *CreateDesignationRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	return validator.Struct(r).OrNil()
}

type UpdateDesignationRequest struct {
	ID           string  `json:"-"`
	DepartmentID *string `json:"department_id,omitempty" validate:"omitempty,uuid"`
	Title        *string `json:"title,omitempty" validate:"omitempty,min=1,max=150"`
	Level        *string `json:"level,omitempty" validate:"omitempty,max=50"`
}

func (r *UpdateDesignationRequest) Validate() error {
	if r.Title != nil {
		title := strings.TrimSpace(*r.Title)
		r.Title = &title
	}
	errs := validator.Struct(r)
	if validator.IsEmpty(r.ID) {
		errs.Add("id", "is required")
	}
	return errs.OrNil()
}

type DesignationFilter struct {
	DepartmentID *string
	pagination.Params
}

type DesignationResponse struct {
	ID             string    `json:"id"`
	DepartmentID   string    `json:"department_id"`
	DepartmentName string    `json:"department_name,omitempty"`
	Title          string    `json:"title"`
	Level          *string   `json:"level,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type ListDesignationResponse struct {
	Data       []DesignationResponse `json:"data"`
	TotalCount int64                 `json:"total_count"`
	Page       int                   `json:"page"`
	Limit      int                   `json:"limit"`
}

func ToResponse(d Designation) DesignationResponse {
	return DesignationResponse{
		ID:             d.ID,
		DepartmentID:   d.DepartmentID,
		DepartmentName: d.DepartmentName,
		Title:          d.Title,
		Level:          d.Level,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

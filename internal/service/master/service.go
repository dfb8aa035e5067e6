package master

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/master/department"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/master/designation"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/database"
)

type MasterService interface {
	// Department operations
	CreateDepartment(ctx context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error)
	GetDepartment(ctx context.Context, id string) (department.DepartmentResponse, error)
	ListDepartments(ctx context.Context, filter department.DepartmentFilter) (department.ListDepartmentResponse, error)
	UpdateDepartment(ctx context.Context, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error)
	DeleteDepartment(ctx context.Context, id string) error

	// Designation operations
	CreateDesignation(ctx context.Context, req designation.CreateDesignationRequest) (designation.DesignationResponse, error)
	GetDesignation(ctx context.Context, id string) (designation.DesignationResponse, error)
	ListDesignations(ctx context.Context, filter designation.DesignationFilter) (designation.ListDesignationResponse, error)
	UpdateDesignation(ctx context.Context, req designation.UpdateDesignationRequest) (designation.DesignationResponse, error)
	DeleteDesignation(ctx context.Context, id string) error
}

type masterServiceImpl struct {
	departmentRepo  department.DepartmentRepository
	designationRepo designation.DesignationRepository
}

func NewMasterService(
	departmentRepo department.DepartmentRepository,
	designationRepo designation.DesignationRepository,
) MasterService {
	return &masterServiceImpl{
		departmentRepo:  departmentRepo,
		designationRepo: designationRepo,
	}
}

// ==================== DEPARTMENT OPERATIONS ====================

func (s *masterServiceImpl) CreateDepartment(ctx context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
	// Validate request
	if err := req.Validate(); err != nil {
		return department.DepartmentResponse{}, err
	}

	created, err := s.departmentRepo.Create(ctx, department.Department{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		if database.IsUniqueViolation(err) {
			return department.DepartmentResponse{}, department.ErrDepartmentNameExists
		}
		return department.DepartmentResponse{}, fmt.Errorf("failed to create department: %w", err)
	}

	slog.Info("Department created", "department_id", created.ID, "name", created.Name)
	return department.ToResponse(created), nil
}

func (s *masterServiceImpl) GetDepartment(ctx context.Context, id string) (department.DepartmentResponse, error) {
	d, err := s.departmentRepo.GetByID(ctx, id)
	if err != nil {
		return department.DepartmentResponse{}, err
	}
	return department.ToResponse(d), nil
}

func (s *masterServiceImpl) ListDepartments(ctx context.Context, filter department.DepartmentFilter) (department.ListDepartmentResponse, error) {
	filter.Normalize()

	departments, total, err := s.departmentRepo.List(ctx, filter)
	if err != nil {
		return department.ListDepartmentResponse{}, err
	}

	data := make([]department.DepartmentResponse, 0, len(departments))
	for _, d := range departments {
		data = append(data, department.ToResponse(d))
	}

	return department.ListDepartmentResponse{
		Data:       data,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *masterServiceImpl) UpdateDepartment(ctx context.Context, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error) {
	if err := req.Validate(); err != nil {
		return department.DepartmentResponse{}, err
	}

	updated, err := s.departmentRepo.Update(ctx, req)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return department.DepartmentResponse{}, department.ErrDepartmentNameExists
		}
		return department.DepartmentResponse{}, err
	}
	return department.ToResponse(updated), nil
}

func (s *masterServiceImpl) DeleteDepartment(ctx context.Context, id string) error {
	if err := s.departmentRepo.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("Department deleted", "department_id", id)
	return nil
}

// ==================== DESIGNATION OPERATIONS ====================

func (s *masterServiceImpl) CreateDesignation(ctx context.Context, req designation.CreateDesignationRequest) (designation.DesignationResponse, error) {
	// Validate request
	if err := req.Validate(); err != nil {
		return designation.DesignationResponse{}, err
	}

	created, err := s.designationRepo.Create(ctx, designation.Designation{
		DepartmentID: req.DepartmentID,
		Title:        req.Title,
		Level:        req.Level,
	})
	if err != nil {
		return designation.DesignationResponse{}, mapDesignationError(err)
	}

	return designation.ToResponse(created), nil
}

func (s *masterServiceImpl) GetDesignation(ctx context.Context, id string) (designation.DesignationResponse, error) {
	d, err := s.designationRepo.GetByID(ctx, id)
	if err != nil {
		return designation.DesignationResponse{}, err
	}
	return designation.ToResponse(d), nil
}

func (s *masterServiceImpl) ListDesignations(ctx context.Context, filter designation.DesignationFilter) (designation.ListDesignationResponse, error) {
	filter.Normalize()

	designations, total, err := s.designationRepo.List(ctx, filter)
	if err != nil {
		return designation.ListDesignationResponse{}, err
	}

	data := make([]designation.DesignationResponse, 0, len(designations))
	for _, d := range designations {
		data = append(data, designation.ToResponse(d))
	}

	return designation.ListDesignationResponse{
		Data:       data,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *masterServiceImpl) UpdateDesignation(ctx context.Context, req designation.UpdateDesignationRequest) (designation.DesignationResponse, error) {
	if err := req.Validate(); err != nil {
		return designation.DesignationResponse{}, err
	}

	updated, err := s.designationRepo.Update(ctx, req)
	if err != nil {
		return designation.DesignationResponse{}, mapDesignationError(err)
	}
	return designation.ToResponse(updated), nil
}

func (s *masterServiceImpl) DeleteDesignation(ctx context.Context, id string) error {
	return s.designationRepo.Delete(ctx, id)
}

func mapDesignationError(err error) error {
	switch {
	case database.IsUniqueViolation(err):
		return designation.ErrDesignationTitleExists
	case database.IsForeignKeyViolation(err):
		return designation.ErrDepartmentNotFound
	}
	return err
}

package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/utils"
	"golang.org/x/crypto/bcrypt"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{employeeRepo: employeeRepo}
}

// HashPassword bcrypt-hashes a plain password with the default cost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// mapWriteError turns constraint violations from inserts and updates into domain errors.
func mapWriteError(err error) error {
	switch {
	case database.IsUniqueViolation(err):
		if strings.Contains(database.ConstraintName(err), "email") {
			return employee.ErrEmailExists
		}
		return employee.ErrEmployeeCodeExists
	case database.IsForeignKeyViolation(err):
		if strings.Contains(database.ConstraintName(err), "designation") {
			return employee.ErrDesignationNotFound
		}
		return employee.ErrDepartmentNotFound
	}
	return err
}

// Create implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	// Validate request
	req.Normalize()
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	passwordHash, err := HashPassword(req.Password)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	newEmployee := employee.Employee{
		EmployeeCode:     req.EmployeeCode,
		FirstName:        strings.TrimSpace(req.FirstName),
		LastName:         strings.TrimSpace(req.LastName),
		Email:            req.Email,
		Phone:            req.Phone,
		DepartmentID:     req.DepartmentID,
		DesignationID:    req.DesignationID,
		EmploymentStatus: employee.EmploymentStatusActive,
		PasswordHash:     passwordHash,
		Role:             employee.RoleEmployee,
	}
	if req.HireDate != nil {
		hireDate, _ := utils.ParseDate(*req.HireDate)
		newEmployee.HireDate = &hireDate
	}
	if req.EmploymentStatus != nil {
		newEmployee.EmploymentStatus = employee.EmploymentStatus(*req.EmploymentStatus)
	}
	if req.Role != nil {
		newEmployee.Role = employee.Role(*req.Role)
	}

	created, err := s.employeeRepo.Create(ctx, newEmployee)
	if err != nil {
		return employee.EmployeeResponse{}, mapWriteError(err)
	}

	slog.Info("Employee created", "employee_id", created.ID, "employee_code", created.EmployeeCode, "role", created.Role)
	return employee.ToResponse(created), nil
}

// Get implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(emp), nil
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	filter.Normalize()

	employees, total, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	data := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		data = append(data, employee.ToResponse(e))
	}

	return employee.ListEmployeeResponse{
		Data:       data,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// Update implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	var passwordHash *string
	if req.Password != nil {
		hash, err := HashPassword(*req.Password)
		if err != nil {
			return employee.EmployeeResponse{}, err
		}
		passwordHash = &hash
	}

	updated, err := s.employeeRepo.Update(ctx, id, req, passwordHash)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.EmployeeResponse{}, err
		}
		return employee.EmployeeResponse{}, mapWriteError(err)
	}
	return employee.ToResponse(updated), nil
}

// Deactivate implements employee.EmployeeService. The row is kept; only the
// employment status changes.
func (s *EmployeeServiceImpl) Deactivate(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	updated, err := s.employeeRepo.SetStatus(ctx, id, employee.EmploymentStatusInactive)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("Employee deactivated", "employee_id", id)
	return employee.ToResponse(updated), nil
}

package fixtures

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/ems-backend-go/internal/config"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/master/department"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/pagination"
	employeeService "github.com/cmlabs-hris/ems-backend-go/internal/service/employee"
)

// firstPage is enough to learn whether a table has any rows.
var firstPage = pagination.Params{Page: 1, Limit: 1, SortOrder: "DESC"}

// Transactor runs fn in one database transaction.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Seeder struct {
	tx             Transactor
	employeeRepo   employee.EmployeeRepository
	departmentRepo department.DepartmentRepository
	shiftRepo      schedule.ShiftRepository
}

func NewSeeder(
	tx Transactor,
	employeeRepo employee.EmployeeRepository,
	departmentRepo department.DepartmentRepository,
	shiftRepo schedule.ShiftRepository,
) *Seeder {
	return &Seeder{
		tx:             tx,
		employeeRepo:   employeeRepo,
		departmentRepo: departmentRepo,
		shiftRepo:      shiftRepo,
	}
}

// Seed bootstraps an empty install. It is a no-op once any ADMIN exists, so it
// is safe to run on every start.
func (s *Seeder) Seed(ctx context.Context, cfg config.AdminConfig) error {
	if !cfg.Seed {
		return nil
	}

	exists, err := s.employeeRepo.ExistsByRole(ctx, employee.RoleAdmin)
	if err != nil {
		return fmt.Errorf("failed to check for admin: %w", err)
	}
	if exists {
		slog.Debug("Admin already present, skipping seed")
		return nil
	}

	passwordHash, err := employeeService.HashPassword(cfg.Password)
	if err != nil {
		return err
	}

	return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		departmentID, err := s.seedDepartments(ctx)
		if err != nil {
			return err
		}
		if err := s.seedShifts(ctx); err != nil {
			return err
		}

		admin, err := s.employeeRepo.Create(ctx, employee.Employee{
			EmployeeCode:     cfg.EmployeeCode,
			FirstName:        cfg.FirstName,
			LastName:         cfg.LastName,
			Email:            cfg.Email,
			DepartmentID:     departmentID,
			EmploymentStatus: employee.EmploymentStatusActive,
			PasswordHash:     passwordHash,
			Role:             employee.RoleAdmin,
		})
		if err != nil {
			return fmt.Errorf("failed to create admin: %w", err)
		}

		slog.Info("Seeded admin account", "employee_id", admin.ID, "email", admin.Email)
		return nil
	})
}

// seedDepartments creates the default departments when none exist and returns
// the ID of the admin department, if it was created.
func (s *Seeder) seedDepartments(ctx context.Context) (*string, error) {
	_, total, err := s.departmentRepo.List(ctx, department.DepartmentFilter{Params: firstPage})
	if err != nil {
		return nil, fmt.Errorf("failed to count departments: %w", err)
	}
	if total > 0 {
		return nil, nil
	}

	var adminDepartmentID *string
	for _, d := range GetDefaultDepartments() {
		created, err := s.departmentRepo.Create(ctx, d)
		if err != nil {
			return nil, fmt.Errorf("failed to seed department %q: %w", d.Name, err)
		}
		if created.Name == AdminDepartment {
			id := created.ID
			adminDepartmentID = &id
		}
	}

	slog.Info("Seeded default departments", "count", len(GetDefaultDepartments()))
	return adminDepartmentID, nil
}

func (s *Seeder) seedShifts(ctx context.Context) error {
	_, total, err := s.shiftRepo.List(ctx, schedule.ShiftFilter{Params: firstPage})
	if err != nil {
		return fmt.Errorf("failed to count shifts: %w", err)
	}
	if total > 0 {
		return nil
	}

	for _, shift := range GetDefaultShifts() {
		if _, err := s.shiftRepo.Create(ctx, shift); err != nil {
			return fmt.Errorf("failed to seed shift %q: %w", shift.Name, err)
		}
	}

	slog.Info("Seeded default shifts", "count", len(GetDefaultShifts()))
	return nil
}

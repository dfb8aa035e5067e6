package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByEmail(ctx context.Context, email string) (Employee, error)
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest, passwordHash *string) (Employee, error)
	SetStatus(ctx context.Context, id string, status EmploymentStatus) (Employee, error)
	ExistsByRole(ctx context.Context, role Role) (bool, error)
	CountByStatus(ctx context.Context, status *EmploymentStatus) (int64, error)
}

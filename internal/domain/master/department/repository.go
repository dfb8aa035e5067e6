package department

import "context"

type DepartmentRepository interface {
	Create(ctx context.Context, d Department) (Department, error)
	GetByID(ctx context.Context, id string) (Department, error)
	List(ctx context.Context, filter DepartmentFilter) ([]Department, int64, error)
	Update(ctx context.Context, req UpdateDepartmentRequest) (Department, error)
	Delete(ctx context.Context, id string) error
}

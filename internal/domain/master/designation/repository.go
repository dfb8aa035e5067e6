package designation

import "context"

type DesignationRepository interface {
	Create(ctx context.Context, d Designation) (Designation, error)
	GetByID(ctx context.Context, id string) (Designation, error)
	List(ctx context.Context, filter DesignationFilter) ([]Designation, int64, error)
	Update(ctx context.Context, req UpdateDesignationRequest) (Designation, error)
	Delete(ctx context.Context, id string) error
}

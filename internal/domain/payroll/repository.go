package payroll

import "context"

type SalaryTemplateRepository interface {
	// Upsert inserts or replaces the template keyed by employee.
	Upsert(ctx context.Context, t SalaryTemplate) (SalaryTemplate, error)
	GetByEmployee(ctx context.Context, employeeID string) (SalaryTemplate, error)
	List(ctx context.Context, filter SalaryTemplateFilter) ([]SalaryTemplate, int64, error)
	// ListForGeneration returns every template, or only employeeID's when set.
	ListForGeneration(ctx context.Context, employeeID *string) ([]SalaryTemplate, error)
	DeleteByEmployee(ctx context.Context, employeeID string) error
}

type PayrollRunRepository interface {
	// Upsert inserts or replaces the run keyed by (employee, year, month).
	Upsert(ctx context.Context, run PayrollRun) (PayrollRun, error)
	GetByID(ctx context.Context, id string) (PayrollRun, error)
	GetByEmployeePeriod(ctx context.Context, employeeID string, year, month int) (PayrollRun, error)
	List(ctx context.Context, filter PayrollFilter) ([]PayrollRun, int64, error)
	Update(ctx context.Context, run PayrollRun) (PayrollRun, error)
	Delete(ctx context.Context, id string) error
	Summary(ctx context.Context, year, month int) (Summary, error)
}

package payroll

import "context"

type PayrollService interface {
	UpsertTemplate(ctx context.Context, req UpsertSalaryTemplateRequest) (SalaryTemplateResponse, error)
	GetTemplate(ctx context.Context, employeeID string) (SalaryTemplateResponse, error)
	ListTemplates(ctx context.Context, filter SalaryTemplateFilter) (ListSalaryTemplateResponse, error)
	DeleteTemplate(ctx context.Context, employeeID string) error

	GeneratePayroll(ctx context.Context, year, month int, employeeID *string) (GeneratePayrollResponse, error)
	GetRun(ctx context.Context, id string) (PayrollRunResponse, error)
	ListRuns(ctx context.Context, filter PayrollFilter) (ListPayrollRunResponse, error)
	UpdateRun(ctx context.Context, req UpdatePayrollRunRequest) (PayrollRunResponse, error)
	DeleteRun(ctx context.Context, id string) error
	Summary(ctx context.Context, year, month int) (Summary, error)
}

package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type salaryTemplateRepositoryImpl struct {
	db *database.DB
}

func NewSalaryTemplateRepository(db *database.DB) payroll.SalaryTemplateRepository {
	return &salaryTemplateRepositoryImpl{db: db}
}

const salaryTemplateSelect = `
	SELECT t.id, t.employee_id, t.basic_salary, t.allowance_fixed, t.allowance_percent,
		t.deduction_fixed, t.deduction_percent, t.effective_from, t.created_at, t.updated_at,
		e.employee_code, e.first_name || ' ' || e.last_name
	FROM salary_templates t
	JOIN employees e ON e.id = t.employee_id
`

func scanSalaryTemplate(row pgx.Row) (payroll.SalaryTemplate, error) {
	var t payroll.SalaryTemplate
	err := row.Scan(
		&t.ID, &t.EmployeeID, &t.BasicSalary, &t.AllowanceFixed, &t.AllowancePercent,
		&t.DeductionFixed, &t.DeductionPercent, &t.EffectiveFrom, &t.CreatedAt, &t.UpdatedAt,
		&t.EmployeeCode, &t.EmployeeName,
	)
	return t, err
}

func (r *salaryTemplateRepositoryImpl) queryAll(ctx context.Context, query string, args ...interface{}) ([]payroll.SalaryTemplate, error) {
	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return nil, err
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query salary templates: %w", err)
	}
	defer rows.Close()

	templates := make([]payroll.SalaryTemplate, 0)
	for rows.Next() {
		t, err := scanSalaryTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary template: %w", err)
		}
		templates = append(templates, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return templates, nil
}

// Upsert implements payroll.SalaryTemplateRepository.
func (r *salaryTemplateRepositoryImpl) Upsert(ctx context.Context, t payroll.SalaryTemplate) (payroll.SalaryTemplate, error) {
	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return payroll.SalaryTemplate{}, err
	}

	query := `
		INSERT INTO salary_templates (
			id, employee_id, basic_salary, allowance_fixed, allowance_percent,
			deduction_fixed, deduction_percent, effective_from, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		ON CONFLICT (employee_id) DO UPDATE SET
			basic_salary = EXCLUDED.basic_salary,
			allowance_fixed = EXCLUDED.allowance_fixed,
			allowance_percent = EXCLUDED.allowance_percent,
			deduction_fixed = EXCLUDED.deduction_fixed,
			deduction_percent = EXCLUDED.deduction_percent,
			effective_from = EXCLUDED.effective_from,
			updated_at = NOW()
		RETURNING id
	`

	var id string
	err = q.QueryRow(ctx, query,
		uuid.New().String(), t.EmployeeID, t.BasicSalary, t.AllowanceFixed, t.AllowancePercent,
		t.DeductionFixed, t.DeductionPercent, t.EffectiveFrom,
	).Scan(&id)
	if err != nil {
		return payroll.SalaryTemplate{}, fmt.Errorf("failed to upsert salary template: %w", err)
	}

	return r.GetByEmployee(ctx, t.EmployeeID)
}

// GetByEmployee implements payroll.SalaryTemplateRepository.
func (r *salaryTemplateRepositoryImpl) GetByEmployee(ctx context.Context, employeeID string) (payroll.SalaryTemplate, error) {
	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return payroll.SalaryTemplate{}, err
	}

	t, err := scanSalaryTemplate(q.QueryRow(ctx, salaryTemplateSelect+" WHERE t.employee_id = $1", employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.SalaryTemplate{}, payroll.ErrSalaryTemplateNotFound
		}
		return payroll.SalaryTemplate{}, fmt.Errorf("failed to get salary template: %w", err)
	}
	return t, nil
}

// List implements payroll.SalaryTemplateRepository.
func (r *salaryTemplateRepositoryImpl) List(ctx context.Context, filter payroll.SalaryTemplateFilter) ([]payroll.SalaryTemplate, int64, error) {
	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return nil, 0, err
	}

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("t.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	whereClause := strings.Join(conditions, " AND ")

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM salary_templates t WHERE "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count salary templates: %w", err)
	}

	sortColumn := filter.SortColumn(map[string]string{
		"basic_salary":   "t.basic_salary",
		"effective_from": "t.effective_from",
		"created_at":     "t.created_at",
	}, "t.created_at")

	query := fmt.Sprintf("%s WHERE %s ORDER BY %s %s, t.id LIMIT $%d OFFSET $%d",
		salaryTemplateSelect, whereClause, sortColumn, filter.SortOrder, argIdx, argIdx+1)
	args = append(args, filter.Limit, filter.Offset())

	templates, err := r.queryAll(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return templates, total, nil
}

// ListForGeneration implements payroll.SalaryTemplateRepository.
func (r *salaryTemplateRepositoryImpl) ListForGeneration(ctx context.Context, employeeID *string) ([]payroll.SalaryTemplate, error) {
	if employeeID != nil && *employeeID != "" {
		return r.queryAll(ctx, salaryTemplateSelect+" WHERE t.employee_id = $1", *employeeID)
	}
	return r.queryAll(ctx, salaryTemplateSelect+" ORDER BY e.employee_code")
}

// DeleteByEmployee implements payroll.SalaryTemplateRepository.
func (r *salaryTemplateRepositoryImpl) DeleteByEmployee(ctx context.Context, employeeID string) error {
	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return err
	}

	commandTag, err := q.Exec(ctx, `DELETE FROM salary_templates WHERE employee_id = $1`, employeeID)
	if err != nil {
		return fmt.Errorf("failed to delete salary template: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return payroll.ErrSalaryTemplateNotFound
	}
	return nil
}

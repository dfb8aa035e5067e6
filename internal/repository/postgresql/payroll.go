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
	"github.com/shopspring/decimal"
)

type payrollRunRepositoryImpl struct {
	db *database.DB
}

func NewPayrollRunRepository(db *database.DB) payroll.PayrollRunRepository {
	return &payrollRunRepositoryImpl{db: db}
}

const payrollRunSelect = `
	SELECT p.id, p.employee_id, p.period_year, p.period_month, p.working_days, p.present_days,
		p.overtime_hours, p.basic_salary, p.total_allowances, p.total_deductions, p.gross_pay, p.net_pay,
		p.generated_at, p.notes, p.created_at, p.updated_at,
		e.employee_code, e.first_name || ' ' || e.last_name, d.name
	FROM payroll_runs p
	JOIN employees e ON e.id = p.employee_id
	LEFT JOIN departments d ON d.id = e.department_id
`

func scanPayrollRun(row pgx.Row) (payroll.PayrollRun, error) {
	var p payroll.PayrollRun
	err := row.Scan(
		&p.ID, &p.EmployeeID, &p.PeriodYear, &p.PeriodMonth, &p.WorkingDays, &p.PresentDays,
		&p.OvertimeHours, &p.BasicSalary, &p.TotalAllowances, &p.TotalDeductions, &p.GrossPay, &p.NetPay,
		&p.GeneratedAt, &p.Notes, &p.CreatedAt, &p.UpdatedAt,
		&p.EmployeeCode, &p.EmployeeName, &p.DepartmentName,
	)
	return p, err
}

// Upsert implements payroll.PayrollRunRepository.
func (r *payrollRunRepositoryImpl) Upsert(ctx context.Context, run payroll.PayrollRun) (payroll.PayrollRun, error) {
	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return payroll.PayrollRun{}, err
	}

	query := `
		INSERT INTO payroll_runs (
			id, employee_id, period_year, period_month, working_days, present_days, overtime_hours,
			basic_salary, total_allowances, total_deductions, gross_pay, net_pay, generated_at,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
		ON CONFLICT ON CONSTRAINT payroll_runs_employee_period_key DO UPDATE SET
			working_days = EXCLUDED.working_days,
			present_days = EXCLUDED.present_days,
			overtime_hours = EXCLUDED.overtime_hours,
			basic_salary = EXCLUDED.basic_salary,
			total_allowances = EXCLUDED.total_allowances,
			total_deductions = EXCLUDED.total_deductions,
			gross_pay = EXCLUDED.gross_pay,
			net_pay = EXCLUDED.net_pay,
			generated_at = EXCLUDED.generated_at,
			updated_at = NOW()
		RETURNING id
	`

	var id string
	err = q.QueryRow(ctx, query,
		uuid.New().String(), run.EmployeeID, run.PeriodYear, run.PeriodMonth, run.WorkingDays, run.PresentDays,
		run.OvertimeHours, run.BasicSalary, run.TotalAllowances, run.TotalDeductions, run.GrossPay, run.NetPay,
		run.GeneratedAt,
	).Scan(&id)
	if err != nil {
		return payroll.PayrollRun{}, fmt.Errorf("failed to upsert payroll run: %w", err)
	}

	return r.GetByID(ctx, id)
}

// GetByID implements payroll.PayrollRunRepository.
func (r *payrollRunRepositoryImpl) GetByID(ctx context.Context, id string) (payroll.PayrollRun, error) {
	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return payroll.PayrollRun{}, err
	}

	p, err := scanPayrollRun(q.QueryRow(ctx, payrollRunSelect+" WHERE p.id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRun{}, payroll.ErrPayrollNotFound
		}
		return payroll.PayrollRun{}, fmt.Errorf("failed to get payroll run: %w", err)
	}
	return p, nil
}

// GetByEmployeePeriod implements payroll.PayrollRunRepository.
func (r *payrollRunRepositoryImpl) GetByEmployeePeriod(ctx context.Context, employeeID string, year, month int) (payroll.PayrollRun, error) {
	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return payroll.PayrollRun{}, err
	}

	query := payrollRunSelect + " WHERE p.employee_id = $1 AND p.period_year = $2 AND p.period_month = $3"
	p, err := scanPayrollRun(q.QueryRow(ctx, query, employeeID, year, month))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRun{}, payroll.ErrPayrollNotFound
		}
		return payroll.PayrollRun{}, fmt.Errorf("failed to get payroll run: %w", err)
	}
	return p, nil
}

// List implements payroll.PayrollRunRepository.
func (r *payrollRunRepositoryImpl) List(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollRun, int64, error) {
	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return nil, 0, err
	}

	// Build WHERE conditions
	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("p.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Year != nil {
		conditions = append(conditions, fmt.Sprintf("p.period_year = $%d", argIdx))
		args = append(args, *filter.Year)
		argIdx++
	}
	if filter.Month != nil {
		conditions = append(conditions, fmt.Sprintf("p.period_month = $%d", argIdx))
		args = append(args, *filter.Month)
		argIdx++
	}
	whereClause := strings.Join(conditions, " AND ")

	// Count query
	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM payroll_runs p WHERE "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll runs: %w", err)
	}

	sortColumn := filter.SortColumn(map[string]string{
		"period_year":  "p.period_year",
		"period_month": "p.period_month",
		"net_pay":      "p.net_pay",
		"gross_pay":    "p.gross_pay",
		"generated_at": "p.generated_at",
		"created_at":   "p.created_at",
	}, "p.created_at")

	query := fmt.Sprintf("%s WHERE %s ORDER BY %s %s, p.id LIMIT $%d OFFSET $%d",
		payrollRunSelect, whereClause, sortColumn, filter.SortOrder, argIdx, argIdx+1)
	args = append(args, filter.Limit, filter.Offset())

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payroll runs: %w", err)
	}
	defer rows.Close()

	runs := make([]payroll.PayrollRun, 0)
	for rows.Next() {
		p, err := scanPayrollRun(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll run: %w", err)
		}
		runs = append(runs, p)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return runs, total, nil
}

// Update implements payroll.PayrollRunRepository. Amounts are stored as given.
func (r *payrollRunRepositoryImpl) Update(ctx context.Context, run payroll.PayrollRun) (payroll.PayrollRun, error) {
	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return payroll.PayrollRun{}, err
	}

	query := `
		UPDATE payroll_runs
		SET working_days = $1, present_days = $2, overtime_hours = $3, basic_salary = $4,
			total_allowances = $5, total_deductions = $6, gross_pay = $7, net_pay = $8,
			notes = $9, updated_at = NOW()
		WHERE id = $10
	`

	commandTag, err := q.Exec(ctx, query,
		run.WorkingDays, run.PresentDays, run.OvertimeHours, run.BasicSalary,
		run.TotalAllowances, run.TotalDeductions, run.GrossPay, run.NetPay,
		run.Notes, run.ID,
	)
	if err != nil {
		return payroll.PayrollRun{}, fmt.Errorf("failed to update payroll run: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return payroll.PayrollRun{}, payroll.ErrPayrollNotFound
	}

	return r.GetByID(ctx, run.ID)
}

// Delete implements payroll.PayrollRunRepository.
func (r *payrollRunRepositoryImpl) Delete(ctx context.Context, id string) error {
	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return err
	}

	commandTag, err := q.Exec(ctx, `DELETE FROM payroll_runs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete payroll run: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return payroll.ErrPayrollNotFound
	}
	return nil
}

// Summary implements payroll.PayrollRunRepository.
func (r *payrollRunRepositoryImpl) Summary(ctx context.Context, year, month int) (payroll.Summary, error) {
	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return payroll.Summary{}, err
	}

	summary := payroll.Summary{Year: year, Month: month, TotalNet: decimal.Zero}
	err = q.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(net_pay), 0)
		FROM payroll_runs
		WHERE period_year = $1 AND period_month = $2
	`, year, month).Scan(&summary.Count, &summary.TotalNet)
	if err != nil {
		return payroll.Summary{}, fmt.Errorf("failed to summarize payroll: %w", err)
	}
	return summary, nil
}

package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

func (r *dashboardRepositoryImpl) countOne(ctx context.Context, query string, args ...interface{}) (int64, error) {
	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := q.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// CountEmployees implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) CountEmployees(ctx context.Context, status *string) (int64, error) {
	var (
		count int64
		err   error
	)
	if status != nil {
		count, err = r.countOne(ctx, `SELECT COUNT(*) FROM employees WHERE employment_status = $1`, *status)
	} else {
		count, err = r.countOne(ctx, `SELECT COUNT(*) FROM employees`)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to count employees: %w", err)
	}
	return count, nil
}

// CountAttendanceOn implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) CountAttendanceOn(ctx context.Context, day time.Time, status attendance.Status) (int64, error) {
	count, err := r.countOne(ctx, `SELECT COUNT(*) FROM attendances WHERE att_date = $1::date AND status = $2`, day, string(status))
	if err != nil {
		return 0, fmt.Errorf("failed to count attendance: %w", err)
	}
	return count, nil
}

// AttendanceTrend implements dashboard.DashboardRepository. Days without
// attendance come back as zero buckets from the generated series.
func (r *dashboardRepositoryImpl) AttendanceTrend(ctx context.Context, from, to time.Time) ([]dashboard.CountPoint, error) {
	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT to_char(g.day, 'YYYY-MM-DD') AS x, COUNT(a.id) AS y
		FROM generate_series($1::date, $2::date, INTERVAL '1 day') AS g(day)
		LEFT JOIN attendances a ON a.att_date = g.day::date AND a.status = 'P'
		GROUP BY g.day
		ORDER BY g.day
	`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance trend: %w", err)
	}
	defer rows.Close()

	series := make([]dashboard.CountPoint, 0)
	for rows.Next() {
		var p dashboard.CountPoint
		if err := rows.Scan(&p.X, &p.Y); err != nil {
			return nil, fmt.Errorf("failed to scan attendance trend: %w", err)
		}
		series = append(series, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return series, nil
}

func (r *dashboardRepositoryImpl) labelValues(ctx context.Context, query string, args ...interface{}) ([]dashboard.LabelValue, error) {
	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return nil, err
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (dashboard.LabelValue, error) {
		var lv dashboard.LabelValue
		err := row.Scan(&lv.Label, &lv.Value)
		return lv, err
	})
}

// AttendanceBreakdown implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) AttendanceBreakdown(ctx context.Context, day time.Time) ([]dashboard.LabelValue, error) {
	items, err := r.labelValues(ctx, `
		SELECT status, COUNT(*)
		FROM attendances
		WHERE att_date = $1::date
		GROUP BY status
		ORDER BY status
	`, day)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance breakdown: %w", err)
	}
	return items, nil
}

// DepartmentsHeadcount implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) DepartmentsHeadcount(ctx context.Context) ([]dashboard.LabelValue, error) {
	items, err := r.labelValues(ctx, `
		SELECT COALESCE(d.name, 'Unassigned') AS label, COUNT(e.id)
		FROM employees e
		LEFT JOIN departments d ON d.id = e.department_id
		GROUP BY COALESCE(d.name, 'Unassigned')
		ORDER BY label
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query department headcount: %w", err)
	}
	return items, nil
}

// PayrollTrend implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) PayrollTrend(ctx context.Context, year int) ([]dashboard.AmountPoint, error) {
	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT $1::int || '-' || lpad(m::text, 2, '0') AS x, COALESCE(SUM(p.net_pay), 0) AS y
		FROM generate_series(1, 12) AS m
		LEFT JOIN payroll_runs p ON p.period_year = $1::int AND p.period_month = m
		GROUP BY m
		ORDER BY m
	`

	rows, err := q.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query payroll trend: %w", err)
	}
	series, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (dashboard.AmountPoint, error) {
		var p dashboard.AmountPoint
		err := row.Scan(&p.X, &p.Y)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan payroll trend: %w", err)
	}
	return series, nil
}

// PayrollByDepartment implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) PayrollByDepartment(ctx context.Context, year, month int) ([]dashboard.LabelAmount, error) {
	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT COALESCE(d.name, 'Unassigned') AS label, COALESCE(SUM(p.net_pay), 0)
		FROM payroll_runs p
		JOIN employees e ON e.id = p.employee_id
		LEFT JOIN departments d ON d.id = e.department_id
		WHERE p.period_year = $1 AND p.period_month = $2
		GROUP BY COALESCE(d.name, 'Unassigned')
		ORDER BY label
	`

	rows, err := q.Query(ctx, query, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to query payroll by department: %w", err)
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (dashboard.LabelAmount, error) {
		var la dashboard.LabelAmount
		err := row.Scan(&la.Label, &la.Value)
		return la, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan payroll by department: %w", err)
	}
	return items, nil
}

// CountPayrollRuns implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) CountPayrollRuns(ctx context.Context, year, month int) (int64, error) {
	count, err := r.countOne(ctx, `SELECT COUNT(*) FROM payroll_runs WHERE period_year = $1 AND period_month = $2`, year, month)
	if err != nil {
		return 0, fmt.Errorf("failed to count payroll runs: %w", err)
	}
	return count, nil
}

// EmployeeAttendance implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) EmployeeAttendance(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return nil, err
	}

	query := attendanceSelect + ` WHERE a.employee_id = $1 AND a.att_date BETWEEN $2::date AND $3::date ORDER BY a.att_date`
	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query employee attendance: %w", err)
	}
	return scanAttendanceRows(rows)
}

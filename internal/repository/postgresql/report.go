package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type reportRepositoryImpl struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepositoryImpl{db: db}
}

// AttendanceBetween retrieves attendance rows ordered by date, then employee code
func (r *reportRepositoryImpl) AttendanceBetween(ctx context.Context, from, to time.Time) ([]attendance.Attendance, error) {
	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return nil, err
	}

	query := attendanceSelect + ` WHERE a.att_date BETWEEN $1::date AND $2::date ORDER BY a.att_date, e.employee_code`
	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance report: %w", err)
	}
	return scanAttendanceRows(rows)
}

// AttendanceStatusCounts groups attendance in [from, to] by status
func (r *reportRepositoryImpl) AttendanceStatusCounts(ctx context.Context, from, to time.Time) ([]report.StatusCount, error) {
	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT status, COUNT(*)
		FROM attendances
		WHERE att_date BETWEEN $1::date AND $2::date
		GROUP BY status
		ORDER BY status
	`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance summary: %w", err)
	}
	counts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (report.StatusCount, error) {
		var sc report.StatusCount
		err := row.Scan(&sc.Status, &sc.Count)
		return sc, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan attendance summary: %w", err)
	}
	return counts, nil
}

// DepartmentCost sums net pay per department for one period
func (r *reportRepositoryImpl) DepartmentCost(ctx context.Context, year, month int) ([]report.DepartmentCost, error) {
	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT d.id, COALESCE(d.name, 'Unassigned'), COALESCE(SUM(p.net_pay), 0)
		FROM payroll_runs p
		JOIN employees e ON e.id = p.employee_id
		LEFT JOIN departments d ON d.id = e.department_id
		WHERE p.period_year = $1 AND p.period_month = $2
		GROUP BY d.id, d.name
		ORDER BY COALESCE(d.name, 'Unassigned')
	`

	rows, err := q.Query(ctx, query, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to query department cost: %w", err)
	}
	costs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (report.DepartmentCost, error) {
		var dc report.DepartmentCost
		err := row.Scan(&dc.DepartmentID, &dc.DepartmentName, &dc.TotalNet)
		return dc, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan department cost: %w", err)
	}
	return costs, nil
}

// Headcount counts employees, optionally within one department
func (r *reportRepositoryImpl) Headcount(ctx context.Context, departmentID *string) (int64, error) {
	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return 0, err
	}

	var count int64
	if departmentID != nil && *departmentID != "" {
		err = q.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE department_id = $1`, *departmentID).Scan(&count)
	} else {
		err = q.QueryRow(ctx, `SELECT COUNT(*) FROM employees`).Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to count headcount: %w", err)
	}
	return count, nil
}

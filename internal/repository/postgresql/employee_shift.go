package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type employeeShiftRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeShiftRepository(db *database.DB) schedule.EmployeeShiftRepository {
	return &employeeShiftRepositoryImpl{db: db}
}

const employeeShiftSelect = `
	SELECT es.id, es.employee_id, es.shift_id, es.start_date, es.end_date, es.created_at, es.updated_at,
		e.employee_code, e.first_name || ' ' || e.last_name, s.name, s.start_time, s.end_time
	FROM employee_shifts es
	JOIN employees e ON e.id = es.employee_id
	JOIN shifts s ON s.id = es.shift_id
`

func scanEmployeeShift(row pgx.Row) (schedule.EmployeeShift, error) {
	var es schedule.EmployeeShift
	err := row.Scan(
		&es.ID, &es.EmployeeID, &es.ShiftID, &es.StartDate, &es.EndDate, &es.CreatedAt, &es.UpdatedAt,
		&es.EmployeeCode, &es.EmployeeName, &es.ShiftName, &es.ShiftStart, &es.ShiftEnd,
	)
	return es, err
}

func (r *employeeShiftRepositoryImpl) queryAll(ctx context.Context, query string, args ...interface{}) ([]schedule.EmployeeShift, error) {
	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return nil, err
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query employee shifts: %w", err)
	}
	defer rows.Close()

	items := make([]schedule.EmployeeShift, 0)
	for rows.Next() {
		es, err := scanEmployeeShift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee shift: %w", err)
		}
		items = append(items, es)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return items, nil
}

// Create implements schedule.EmployeeShiftRepository.
func (r *employeeShiftRepositoryImpl) Create(ctx context.Context, es schedule.EmployeeShift) (schedule.EmployeeShift, error) {
	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return schedule.EmployeeShift{}, err
	}

	query := `
		INSERT INTO employee_shifts (id, employee_id, shift_id, start_date, end_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id
	`

	var id string
	if err := q.QueryRow(ctx, query, uuid.New().String(), es.EmployeeID, es.ShiftID, es.StartDate, es.EndDate).Scan(&id); err != nil {
		return schedule.EmployeeShift{}, fmt.Errorf("failed to create employee shift: %w", err)
	}

	return r.GetByID(ctx, id)
}

// GetByID implements schedule.EmployeeShiftRepository.
func (r *employeeShiftRepositoryImpl) GetByID(ctx context.Context, id string) (schedule.EmployeeShift, error) {
	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return schedule.EmployeeShift{}, err
	}

	es, err := scanEmployeeShift(q.QueryRow(ctx, employeeShiftSelect+" WHERE es.id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.EmployeeShift{}, schedule.ErrEmployeeShiftNotFound
		}
		return schedule.EmployeeShift{}, fmt.Errorf("failed to get employee shift: %w", err)
	}
	return es, nil
}

// List implements schedule.EmployeeShiftRepository.
func (r *employeeShiftRepositoryImpl) List(ctx context.Context, filter schedule.EmployeeShiftFilter) ([]schedule.EmployeeShift, int64, error) {
	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return nil, 0, err
	}

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("es.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.ShiftID != nil && *filter.ShiftID != "" {
		conditions = append(conditions, fmt.Sprintf("es.shift_id = $%d", argIdx))
		args = append(args, *filter.ShiftID)
		argIdx++
	}
	whereClause := strings.Join(conditions, " AND ")

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM employee_shifts es WHERE "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employee shifts: %w", err)
	}

	sortColumn := filter.SortColumn(map[string]string{
		"start_date":    "es.start_date",
		"end_date":      "es.end_date",
		"employee_code": "e.employee_code",
		"created_at":    "es.created_at",
	}, "es.created_at")

	query := fmt.Sprintf("%s WHERE %s ORDER BY %s %s, es.id LIMIT $%d OFFSET $%d",
		employeeShiftSelect, whereClause, sortColumn, filter.SortOrder, argIdx, argIdx+1)
	args = append(args, filter.Limit, filter.Offset())

	items, err := r.queryAll(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Update implements schedule.EmployeeShiftRepository. The full row is replaced.
func (r *employeeShiftRepositoryImpl) Update(ctx context.Context, es schedule.EmployeeShift) (schedule.EmployeeShift, error) {
	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return schedule.EmployeeShift{}, err
	}

	query := `
		UPDATE employee_shifts
		SET employee_id = $1, shift_id = $2, start_date = $3, end_date = $4, updated_at = NOW()
		WHERE id = $5
	`

	commandTag, err := q.Exec(ctx, query, es.EmployeeID, es.ShiftID, es.StartDate, es.EndDate, es.ID)
	if err != nil {
		return schedule.EmployeeShift{}, fmt.Errorf("failed to update employee shift: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return schedule.EmployeeShift{}, schedule.ErrEmployeeShiftNotFound
	}

	return r.GetByID(ctx, es.ID)
}

// Delete implements schedule.EmployeeShiftRepository.
func (r *employeeShiftRepositoryImpl) Delete(ctx context.Context, id string) error {
	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return err
	}

	commandTag, err := q.Exec(ctx, `DELETE FROM employee_shifts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee shift: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return schedule.ErrEmployeeShiftNotFound
	}
	return nil
}

// ActiveOn implements schedule.EmployeeShiftRepository.
func (r *employeeShiftRepositoryImpl) ActiveOn(ctx context.Context, day time.Time) ([]schedule.EmployeeShift, error) {
	query := employeeShiftSelect + `
		WHERE es.start_date <= $1 AND (es.end_date IS NULL OR es.end_date >= $1)
		ORDER BY e.employee_code, es.start_date
	`
	return r.queryAll(ctx, query, day)
}

// Overlapping implements schedule.EmployeeShiftRepository.
func (r *employeeShiftRepositoryImpl) Overlapping(ctx context.Context, from, to time.Time) ([]schedule.EmployeeShift, error) {
	query := employeeShiftSelect + `
		WHERE es.start_date <= $2 AND (es.end_date IS NULL OR es.end_date >= $1)
		ORDER BY e.employee_code, es.start_date
	`
	return r.queryAll(ctx, query, from, to)
}

package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceSelect = `
	SELECT a.id, a.employee_id, a.att_date, a.status, a.check_in, a.check_out, a.hours_worked,
		a.created_at, a.updated_at, e.employee_code, e.first_name || ' ' || e.last_name
	FROM attendances a
	JOIN employees e ON e.id = a.employee_id
`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var a attendance.Attendance
	err := row.Scan(
		&a.ID, &a.EmployeeID, &a.AttDate, &a.Status, &a.CheckIn, &a.CheckOut, &a.HoursWorked,
		&a.CreatedAt, &a.UpdatedAt, &a.EmployeeCode, &a.EmployeeName,
	)
	return a, err
}

func scanAttendanceRows(rows pgx.Rows) ([]attendance.Attendance, error) {
	defer rows.Close()

	items := make([]attendance.Attendance, 0)
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		items = append(items, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return items, nil
}

// UpsertCheckIn implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) UpsertCheckIn(ctx context.Context, employeeID string, date time.Time, checkIn time.Time) (attendance.Attendance, error) {
	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return attendance.Attendance{}, err
	}

	// status is only set when the row is created
	query := `
		INSERT INTO attendances (id, employee_id, att_date, status, check_in, hours_worked, created_at, updated_at)
		VALUES ($1, $2, $3, 'P', $4, 0, NOW(), NOW())
		ON CONFLICT ON CONSTRAINT attendances_employee_date_key
		DO UPDATE SET check_in = EXCLUDED.check_in, updated_at = NOW()
		RETURNING id
	`

	var id string
	if err := q.QueryRow(ctx, query, uuid.New().String(), employeeID, date, checkIn).Scan(&id); err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to record check-in: %w", err)
	}

	return r.GetByID(ctx, id)
}

// GetForUpdate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetForUpdate(ctx context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return attendance.Attendance{}, err
	}

	query := `
		SELECT id, employee_id, att_date, status, check_in, check_out, hours_worked, created_at, updated_at
		FROM attendances
		WHERE employee_id = $1 AND att_date = $2
		FOR UPDATE
	`

	var a attendance.Attendance
	err = q.QueryRow(ctx, query, employeeID, date).Scan(
		&a.ID, &a.EmployeeID, &a.AttDate, &a.Status, &a.CheckIn, &a.CheckOut, &a.HoursWorked,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to lock attendance: %w", err)
	}
	return a, nil
}

// SetCheckOut implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) SetCheckOut(ctx context.Context, id string, checkOut time.Time, hoursWorked float64) (attendance.Attendance, error) {
	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return attendance.Attendance{}, err
	}

	commandTag, err := q.Exec(ctx, `
		UPDATE attendances SET check_out = $1, hours_worked = $2, updated_at = NOW() WHERE id = $3
	`, checkOut, hoursWorked, id)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to record check-out: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}

	return r.GetByID(ctx, id)
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return attendance.Attendance{}, err
	}

	query := `
		INSERT INTO attendances (id, employee_id, att_date, status, check_in, check_out, hours_worked, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id
	`

	var id string
	err = q.QueryRow(ctx, query,
		uuid.New().String(), a.EmployeeID, a.AttDate, a.Status, a.CheckIn, a.CheckOut, a.HoursWorked,
	).Scan(&id)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return r.GetByID(ctx, id)
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return attendance.Attendance{}, err
	}

	a, err := scanAttendance(q.QueryRow(ctx, attendanceSelect+" WHERE a.id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return a, nil
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return nil, 0, err
	}

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("a.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.From != nil {
		conditions = append(conditions, fmt.Sprintf("a.att_date >= $%d", argIdx))
		args = append(args, *filter.From)
		argIdx++
	}
	if filter.To != nil {
		conditions = append(conditions, fmt.Sprintf("a.att_date <= $%d", argIdx))
		args = append(args, *filter.To)
		argIdx++
	}
	whereClause := strings.Join(conditions, " AND ")

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM attendances a WHERE "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	sortColumn := filter.SortColumn(map[string]string{
		"att_date":     "a.att_date",
		"status":       "a.status",
		"check_in":     "a.check_in",
		"hours_worked": "a.hours_worked",
		"created_at":   "a.created_at",
	}, "a.created_at")

	query := fmt.Sprintf("%s WHERE %s ORDER BY %s %s, a.id LIMIT $%d OFFSET $%d",
		attendanceSelect, whereClause, sortColumn, filter.SortOrder, argIdx, argIdx+1)
	args = append(args, filter.Limit, filter.Offset())

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendances: %w", err)
	}
	items, err := scanAttendanceRows(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Update implements attendance.AttendanceRepository. The full row is replaced.
func (r *attendanceRepositoryImpl) Update(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return attendance.Attendance{}, err
	}

	query := `
		UPDATE attendances
		SET employee_id = $1, att_date = $2, status = $3, check_in = $4, check_out = $5,
			hours_worked = $6, updated_at = NOW()
		WHERE id = $7
	`

	commandTag, err := q.Exec(ctx, query, a.EmployeeID, a.AttDate, a.Status, a.CheckIn, a.CheckOut, a.HoursWorked, a.ID)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to update attendance: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}

	return r.GetByID(ctx, a.ID)
}

// Delete implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Delete(ctx context.Context, id string) error {
	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return err
	}

	commandTag, err := q.Exec(ctx, `DELETE FROM attendances WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// CountPresent implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) CountPresent(ctx context.Context, employeeID string, from, to time.Time) (int, error) {
	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return 0, err
	}

	var count int
	err = q.QueryRow(ctx, `
		SELECT COUNT(*) FROM attendances
		WHERE employee_id = $1 AND status = $2 AND att_date BETWEEN $3::date AND $4::date
	`, employeeID, attendance.StatusPresent, from, to).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count present days: %w", err)
	}
	return count, nil
}

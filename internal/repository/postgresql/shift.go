package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type shiftRepositoryImpl struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) schedule.ShiftRepository {
	return &shiftRepositoryImpl{db: db}
}

const shiftColumns = `id, name, start_time, end_time, break_minutes, created_at, updated_at`

func scanShift(row pgx.Row) (schedule.Shift, error) {
	var s schedule.Shift
	err := row.Scan(&s.ID, &s.Name, &s.StartTime, &s.EndTime, &s.BreakMinutes, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

// Create implements schedule.ShiftRepository.
func (r *shiftRepositoryImpl) Create(ctx context.Context, s schedule.Shift) (schedule.Shift, error) {
	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return schedule.Shift{}, err
	}

	query := `
		INSERT INTO shifts (id, name, start_time, end_time, break_minutes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING ` + shiftColumns

	created, err := scanShift(q.QueryRow(ctx, query, uuid.New().String(), s.Name, s.StartTime, s.EndTime, s.BreakMinutes))
	if err != nil {
		return schedule.Shift{}, fmt.Errorf("failed to create shift: %w", err)
	}
	return created, nil
}

// GetByID implements schedule.ShiftRepository.
func (r *shiftRepositoryImpl) GetByID(ctx context.Context, id string) (schedule.Shift, error) {
	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return schedule.Shift{}, err
	}

	s, err := scanShift(q.QueryRow(ctx, `SELECT `+shiftColumns+` FROM shifts WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.Shift{}, schedule.ErrShiftNotFound
		}
		return schedule.Shift{}, fmt.Errorf("failed to get shift: %w", err)
	}
	return s, nil
}

// List implements schedule.ShiftRepository.
func (r *shiftRepositoryImpl) List(ctx context.Context, filter schedule.ShiftFilter) ([]schedule.Shift, int64, error) {
	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return nil, 0, err
	}

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.Search != nil && *filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", argIdx))
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}
	whereClause := strings.Join(conditions, " AND ")

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM shifts WHERE "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count shifts: %w", err)
	}

	sortColumn := filter.SortColumn(map[string]string{
		"name":       "name",
		"start_time": "start_time",
		"created_at": "created_at",
	}, "created_at")

	query := fmt.Sprintf("SELECT %s FROM shifts WHERE %s ORDER BY %s %s, id LIMIT $%d OFFSET $%d",
		shiftColumns, whereClause, sortColumn, filter.SortOrder, argIdx, argIdx+1)
	args = append(args, filter.Limit, filter.Offset())

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list shifts: %w", err)
	}
	defer rows.Close()

	shifts := make([]schedule.Shift, 0)
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, s)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return shifts, total, nil
}

// Update implements schedule.ShiftRepository.
func (r *shiftRepositoryImpl) Update(ctx context.Context, req schedule.UpdateShiftRequest) (schedule.Shift, error) {
	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return schedule.Shift{}, err
	}

	query := `
		UPDATE shifts
		SET name = COALESCE($1, name),
			start_time = COALESCE($2, start_time),
			end_time = COALESCE($3, end_time),
			break_minutes = COALESCE($4, break_minutes),
			updated_at = NOW()
		WHERE id = $5
		RETURNING ` + shiftColumns

	s, err := scanShift(q.QueryRow(ctx, query, req.Name, req.StartTime, req.EndTime, req.BreakMinutes, req.ID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.Shift{}, schedule.ErrShiftNotFound
		}
		return schedule.Shift{}, fmt.Errorf("failed to update shift: %w", err)
	}
	return s, nil
}

// Delete implements schedule.ShiftRepository.
func (r *shiftRepositoryImpl) Delete(ctx context.Context, id string) error {
	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return err
	}

	commandTag, err := q.Exec(ctx, `DELETE FROM shifts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return schedule.ErrShiftNotFound
	}
	return nil
}

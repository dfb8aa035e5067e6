package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/master/department"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type departmentRepositoryImpl struct {
	db *database.DB
}

func NewDepartmentRepository(db *database.DB) department.DepartmentRepository {
	return &departmentRepositoryImpl{db: db}
}

// Create implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) Create(ctx context.Context, d department.Department) (department.Department, error) {
	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return department.Department{}, err
	}

	query := `
		INSERT INTO departments (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, name, description, created_at, updated_at
	`

	var result department.Department
	err = q.QueryRow(ctx, query, uuid.New().String(), d.Name, d.Description).Scan(
		&result.ID,
		&result.Name,
		&result.Description,
		&result.CreatedAt,
		&result.UpdatedAt,
	)
	if err != nil {
		return department.Department{}, fmt.Errorf("failed to create department: %w", err)
	}

	return result, nil
}

// GetByID implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) GetByID(ctx context.Context, id string) (department.Department, error) {
	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return department.Department{}, err
	}

	query := `
		SELECT id, name, description, created_at, updated_at
		FROM departments
		WHERE id = $1
	`

	var result department.Department
	err = q.QueryRow(ctx, query, id).Scan(
		&result.ID,
		&result.Name,
		&result.Description,
		&result.CreatedAt,
		&result.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return department.Department{}, department.ErrDepartmentNotFound
		}
		return department.Department{}, fmt.Errorf("failed to get department: %w", err)
	}

	return result, nil
}

// List implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) List(ctx context.Context, filter department.DepartmentFilter) ([]department.Department, int64, error) {
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
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM departments WHERE "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count departments: %w", err)
	}

	sortColumn := filter.SortColumn(map[string]string{
		"name":       "name",
		"created_at": "created_at",
		"updated_at": "updated_at",
	}, "created_at")

	query := fmt.Sprintf(`
		SELECT id, name, description, created_at, updated_at
		FROM departments
		WHERE %s
		ORDER BY %s %s, id
		LIMIT $%d OFFSET $%d
	`, whereClause, sortColumn, filter.SortOrder, argIdx, argIdx+1)
	args = append(args, filter.Limit, filter.Offset())

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list departments: %w", err)
	}
	defer rows.Close()

	departments := make([]department.Department, 0)
	for rows.Next() {
		var d department.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan department: %w", err)
		}
		departments = append(departments, d)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return departments, total, nil
}

// Update implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) Update(ctx context.Context, req department.UpdateDepartmentRequest) (department.Department, error) {
	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return department.Department{}, err
	}

	query := `
		UPDATE departments
		SET name = COALESCE($1, name),
			description = COALESCE($2, description),
			updated_at = NOW()
		WHERE id = $3
		RETURNING id, name, description, created_at, updated_at
	`

	var result department.Department
	err = q.QueryRow(ctx, query, req.Name, req.Description, req.ID).Scan(
		&result.ID,
		&result.Name,
		&result.Description,
		&result.CreatedAt,
		&result.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return department.Department{}, department.ErrDepartmentNotFound
		}
		return department.Department{}, fmt.Errorf("failed to update department: %w", err)
	}

	return result, nil
}

// Delete implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) Delete(ctx context.Context, id string) error {
	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return err
	}

	commandTag, err := q.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete department: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return department.ErrDepartmentNotFound
	}

	return nil
}

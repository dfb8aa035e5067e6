package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/master/designation"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type designationRepositoryImpl struct {
	db *database.DB
}

func NewDesignationRepository(db *database.DB) designation.DesignationRepository {
	return &designationRepositoryImpl{db: db}
}

const designationSelect = `
	SELECT g.id, g.department_id, g.title, g.level, g.created_at, g.updated_at, d.name
	FROM designations g
	JOIN departments d ON d.id = g.department_id
`

func scanDesignation(row pgx.Row) (designation.Designation, error) {
	var d designation.Designation
	err := row.Scan(&d.ID, &d.DepartmentID, &d.Title, &d.Level, &d.CreatedAt, &d.UpdatedAt, &d.DepartmentName)
	return d, err
}

// Create implements designation.DesignationRepository.
func (r *designationRepositoryImpl) Create(ctx context.Context, d designation.Designation) (designation.Designation, error) {
	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return designation.Designation{}, err
	}

	query := `
		INSERT INTO designations (id, department_id, title, level, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id
	`

	var id string
	if err := q.QueryRow(ctx, query, uuid.New().String(), d.DepartmentID, d.Title, d.Level).Scan(&id); err != nil {
		return designation.Designation{}, fmt.Errorf("failed to create designation: %w", err)
	}

	return r.GetByID(ctx, id)
}

// GetByID implements designation.DesignationRepository.
func (r *designationRepositoryImpl) GetByID(ctx context.Context, id string) (designation.Designation, error) {
	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return designation.Designation{}, err
	}

	d, err := scanDesignation(q.QueryRow(ctx, designationSelect+" WHERE g.id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return designation.Designation{}, designation.ErrDesignationNotFound
		}
		return designation.Designation{}, fmt.Errorf("failed to get designation: %w", err)
	}
	return d, nil
}

// List implements designation.DesignationRepository.
func (r *designationRepositoryImpl) List(ctx context.Context, filter designation.DesignationFilter) ([]designation.Designation, int64, error) {
	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return nil, 0, err
	}

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.DepartmentID != nil && *filter.DepartmentID != "" {
		conditions = append(conditions, fmt.Sprintf("g.department_id = $%d", argIdx))
		args = append(args, *filter.DepartmentID)
		argIdx++
	}
	whereClause := strings.Join(conditions, " AND ")

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM designations g WHERE "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count designations: %w", err)
	}

	sortColumn := filter.SortColumn(map[string]string{
		"title":      "g.title",
		"level":      "g.level",
		"created_at": "g.created_at",
	}, "g.created_at")

	query := fmt.Sprintf("%s WHERE %s ORDER BY %s %s, g.id LIMIT $%d OFFSET $%d",
		designationSelect, whereClause, sortColumn, filter.SortOrder, argIdx, argIdx+1)
	args = append(args, filter.Limit, filter.Offset())

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list designations: %w", err)
	}
	defer rows.Close()

	designations := make([]designation.Designation, 0)
	for rows.Next() {
		d, err := scanDesignation(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan designation: %w", err)
		}
		designations = append(designations, d)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return designations, total, nil
}

// Update implements designation.DesignationRepository.
func (r *designationRepositoryImpl) Update(ctx context.Context, req designation.UpdateDesignationRequest) (designation.Designation, error) {
	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return designation.Designation{}, err
	}

	query := `
		UPDATE designations
		SET department_id = COALESCE($1, department_id),
			title = COALESCE($2, title),
			level = COALESCE($3, level),
			updated_at = NOW()
		WHERE id = $4
	`

	commandTag, err := q.Exec(ctx, query, req.DepartmentID, req.Title, req.Level, req.ID)
	if err != nil {
		return designation.Designation{}, fmt.Errorf("failed to update designation: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return designation.Designation{}, designation.ErrDesignationNotFound
	}

	return r.GetByID(ctx, req.ID)
}

// Delete implements designation.DesignationRepository.
func (r *designationRepositoryImpl) Delete(ctx context.Context, id string) error {
	q, err := GetQuerier(ctx, r.db)
	if err != nil {
		return err
	}

	commandTag, err := q.Exec(ctx, `DELETE FROM designations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete designation: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return designation.ErrDesignationNotFound
	}

	return nil
}

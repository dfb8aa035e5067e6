package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/utils"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeSelect = `
	SELECT e.id, e.employee_code, e.first_name, e.last_name, e.email, e.phone,
		e.department_id, e.designation_id, e.hire_date, e.employment_status,
		e.password_hash, e.role, e.created_at, e.updated_at,
		d.name, g.title
	FROM employees e
	LEFT JOIN departments d ON d.id = e.department_id
	LEFT JOIN designations g ON g.id = e.designation_id
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.EmployeeCode, &emp.FirstName, &emp.LastName, &emp.Email, &emp.Phone,
		&emp.DepartmentID, &emp.DesignationID, &emp.HireDate, &emp.EmploymentStatus,
		&emp.PasswordHash, &emp.Role, &emp.CreatedAt, &emp.UpdatedAt,
		&emp.DepartmentName, &emp.DesignationName,
	)
	return emp, err
}

// Create implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q, err := GetQuerier(ctx, e.db)
	if err != nil {
		return employee.Employee{}, err
	}

	query := `
		INSERT INTO employees (
			id, employee_code, first_name, last_name, email, phone,
			department_id, designation_id, hire_date, employment_status,
			password_hash, role, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
		RETURNING id
	`

	var id string
	err = q.QueryRow(ctx, query,
		uuid.New().String(), newEmployee.EmployeeCode, newEmployee.FirstName, newEmployee.LastName,
		newEmployee.Email, newEmployee.Phone, newEmployee.DepartmentID, newEmployee.DesignationID,
		newEmployee.HireDate, newEmployee.EmploymentStatus, newEmployee.PasswordHash, newEmployee.Role,
	).Scan(&id)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return e.GetByID(ctx, id)
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q, err := GetQuerier(ctx, e.db)
	if err != nil {
		return employee.Employee{}, err
	}

	emp, err := scanEmployee(q.QueryRow(ctx, employeeSelect+" WHERE e.id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by id %s: %w", id, err)
	}
	return emp, nil
}

// GetByEmail implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	q, err := GetQuerier(ctx, e.db)
	if err != nil {
		return employee.Employee{}, err
	}

	emp, err := scanEmployee(q.QueryRow(ctx, employeeSelect+" WHERE e.email = $1", strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by email: %w", err)
	}
	return emp, nil
}

// List implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	q, err := GetQuerier(ctx, e.db)
	if err != nil {
		return nil, 0, err
	}

	// Build WHERE conditions
	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.Search != nil && *filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(e.first_name ILIKE $%d OR e.last_name ILIKE $%d OR e.email ILIKE $%d OR e.employee_code ILIKE $%d)",
			argIdx, argIdx, argIdx, argIdx))
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}
	if filter.DepartmentID != nil && *filter.DepartmentID != "" {
		conditions = append(conditions, fmt.Sprintf("e.department_id = $%d", argIdx))
		args = append(args, *filter.DepartmentID)
		argIdx++
	}
	if filter.DesignationID != nil && *filter.DesignationID != "" {
		conditions = append(conditions, fmt.Sprintf("e.designation_id = $%d", argIdx))
		args = append(args, *filter.DesignationID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("e.employment_status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	// Count query
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM employees e WHERE %s", whereClause)
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	// Validate sort column
	sortColumn := filter.SortColumn(map[string]string{
		"first_name":        "e.first_name",
		"last_name":         "e.last_name",
		"email":             "e.email",
		"employee_code":     "e.employee_code",
		"hire_date":         "e.hire_date",
		"employment_status": "e.employment_status",
		"created_at":        "e.created_at",
	}, "e.created_at")

	// Main query with pagination
	query := fmt.Sprintf("%s WHERE %s ORDER BY %s %s, e.id LIMIT $%d OFFSET $%d",
		employeeSelect, whereClause, sortColumn, filter.SortOrder, argIdx, argIdx+1)
	args = append(args, filter.Limit, filter.Offset())

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	employees := make([]employee.Employee, 0)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return employees, total, nil
}

// Update implements employee.EmployeeRepository. Only non-nil fields are written.
func (e *employeeRepositoryImpl) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest, passwordHash *string) (employee.Employee, error) {
	q, err := GetQuerier(ctx, e.db)
	if err != nil {
		return employee.Employee{}, err
	}

	updates := []string{}
	args := []interface{}{}
	argIdx := 1

	set := func(column string, value interface{}) {
		updates = append(updates, fmt.Sprintf("%s = $%d", column, argIdx))
		args = append(args, value)
		argIdx++
	}

	if req.EmployeeCode != nil {
		set("employee_code", *req.EmployeeCode)
	}
	if req.FirstName != nil {
		set("first_name", *req.FirstName)
	}
	if req.LastName != nil {
		set("last_name", *req.LastName)
	}
	if req.Email != nil {
		set("email", strings.ToLower(*req.Email))
	}
	if req.Phone != nil {
		set("phone", *req.Phone)
	}
	if req.DepartmentID != nil {
		set("department_id", *req.DepartmentID)
	}
	if req.DesignationID != nil {
		set("designation_id", *req.DesignationID)
	}
	if req.HireDate != nil {
		hireDate, err := utils.ParseDate(*req.HireDate)
		if err != nil {
			return employee.Employee{}, err
		}
		set("hire_date", hireDate)
	}
	if req.EmploymentStatus != nil {
		set("employment_status", *req.EmploymentStatus)
	}
	if req.Role != nil {
		set("role", *req.Role)
	}
	if passwordHash != nil {
		set("password_hash", *passwordHash)
	}

	if len(updates) == 0 {
		return e.GetByID(ctx, id)
	}

	updates = append(updates, "updated_at = NOW()")
	query := fmt.Sprintf("UPDATE employees SET %s WHERE id = $%d", strings.Join(updates, ", "), argIdx)
	args = append(args, id)

	commandTag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to update employee: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}

	return e.GetByID(ctx, id)
}

// SetStatus implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) SetStatus(ctx context.Context, id string, status employee.EmploymentStatus) (employee.Employee, error) {
	q, err := GetQuerier(ctx, e.db)
	if err != nil {
		return employee.Employee{}, err
	}

	commandTag, err := q.Exec(ctx, `
		UPDATE employees SET employment_status = $1, updated_at = NOW() WHERE id = $2
	`, status, id)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to set employee status: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}

	return e.GetByID(ctx, id)
}

// ExistsByRole implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ExistsByRole(ctx context.Context, role employee.Role) (bool, error) {
	q, err := GetQuerier(ctx, e.db)
	if err != nil {
		return false, err
	}

	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM employees WHERE role = $1)`, role).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check role existence: %w", err)
	}
	return exists, nil
}

// CountByStatus implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) CountByStatus(ctx context.Context, status *employee.EmploymentStatus) (int64, error) {
	q, err := GetQuerier(ctx, e.db)
	if err != nil {
		return 0, err
	}

	var count int64
	if status == nil {
		err = q.QueryRow(ctx, `SELECT COUNT(*) FROM employees`).Scan(&count)
	} else {
		err = q.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE employment_status = $1`, *status).Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to count employees: %w", err)
	}
	return count, nil
}

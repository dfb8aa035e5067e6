package employee

import (
	"context"
	"fmt"
	"testing"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/validator"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeEmployeeRepo struct {
	byID    map[string]employee.Employee
	nextID  int
	lastReq employee.UpdateEmployeeRequest
	lastPwd *string
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{byID: make(map[string]employee.Employee)}
}

func (f *fakeEmployeeRepo) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	for _, existing := range f.byID {
		if existing.Email == e.Email {
			return employee.Employee{}, fmt.Errorf("failed to create employee: %w", &pgconn.PgError{Code: "23505", ConstraintName: "employees_email_key"})
		}
		if existing.EmployeeCode == e.EmployeeCode {
			return employee.Employee{}, fmt.Errorf("failed to create employee: %w", &pgconn.PgError{Code: "23505", ConstraintName: "employees_employee_code_key"})
		}
	}
	if e.DepartmentID != nil && *e.DepartmentID == "00000000-0000-0000-0000-000000000000" {
		return employee.Employee{}, &pgconn.PgError{Code: "23503", ConstraintName: "employees_department_id_fkey"}
	}
	f.nextID++
	e.ID = fmt.Sprintf("emp-%d", f.nextID)
	f.byID[e.ID] = e
	return e, nil
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	e, ok := f.byID[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRepo) GetByEmail(_ context.Context, email string) (employee.Employee, error) {
	for _, e := range f.byID {
		if e.Email == email {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) List(_ context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	out := make([]employee.Employee, 0)
	for _, e := range f.byID {
		out = append(out, e)
	}
	return out, int64(len(out)), nil
}

func (f *fakeEmployeeRepo) Update(_ context.Context, id string, req employee.UpdateEmployeeRequest, passwordHash *string) (employee.Employee, error) {
	e, ok := f.byID[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	f.lastReq, f.lastPwd = req, passwordHash
	if req.FirstName != nil {
		e.FirstName = *req.FirstName
	}
	if req.Email != nil {
		e.Email = *req.Email
	}
	if passwordHash != nil {
		e.PasswordHash = *passwordHash
	}
	f.byID[id] = e
	return e, nil
}

func (f *fakeEmployeeRepo) SetStatus(_ context.Context, id string, status employee.EmploymentStatus) (employee.Employee, error) {
	e, ok := f.byID[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	e.EmploymentStatus = status
	f.byID[id] = e
	return e, nil
}

func (f *fakeEmployeeRepo) ExistsByRole(_ context.Context, role employee.Role) (bool, error) {
	for _, e := range f.byID {
		if e.Role == role {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeEmployeeRepo) CountByStatus(_ context.Context, status *employee.EmploymentStatus) (int64, error) {
	var n int64
	for _, e := range f.byID {
		if status == nil || e.EmploymentStatus == *status {
			n++
		}
	}
	return n, nil
}

func validCreateRequest() employee.CreateEmployeeRequest {
	hireDate := "2024-02-01"
	return employee.CreateEmployeeRequest{
		EmployeeCode: " EMP-001 ",
		FirstName:    "Jane",
		LastName:     "Doe",
		Email:        "Jane.Doe@Example.com",
		HireDate:     &hireDate,
		Password:     "secret123",
	}
}

func TestEmployeeService_Create(t *testing.T) {
	repo := newFakeEmployeeRepo()
	svc := NewEmployeeService(repo)

	res, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, "EMP-001", res.EmployeeCode)
	assert.Equal(t, "jane.doe@example.com", res.Email)
	assert.Equal(t, "ACTIVE", res.EmploymentStatus)
	assert.Equal(t, "EMPLOYEE", res.Role)
	require.NotNil(t, res.HireDate)
	assert.Equal(t, "2024-02-01", *res.HireDate)

	stored := repo.byID[res.ID]
	assert.NotEqual(t, "secret123", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret123")))
}

func TestEmployeeService_Create_Validation(t *testing.T) {
	svc := NewEmployeeService(newFakeEmployeeRepo())

	req := validCreateRequest()
	req.Password = "123"
	req.Email = "not-an-email"

	_, err := svc.Create(context.Background(), req)
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "password")
	assert.Contains(t, verrs.ToMap(), "email")
}

func TestEmployeeService_Create_Conflicts(t *testing.T) {
	repo := newFakeEmployeeRepo()
	svc := NewEmployeeService(repo)

	_, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), validCreateRequest())
	assert.ErrorIs(t, err, employee.ErrEmailExists)

	sameCode := validCreateRequest()
	sameCode.Email = "other@example.com"
	_, err = svc.Create(context.Background(), sameCode)
	assert.ErrorIs(t, err, employee.ErrEmployeeCodeExists)

	badDept := validCreateRequest()
	badDept.Email = "third@example.com"
	badDept.EmployeeCode = "EMP-003"
	dept := "00000000-0000-0000-0000-000000000000"
	badDept.DepartmentID = &dept
	_, err = svc.Create(context.Background(), badDept)
	assert.ErrorIs(t, err, employee.ErrDepartmentNotFound)
}

func TestEmployeeService_Update_RehashesPassword(t *testing.T) {
	repo := newFakeEmployeeRepo()
	svc := NewEmployeeService(repo)
	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	pwd := "new-secret"
	email := "  NEW@Example.com "
	_, err = svc.Update(context.Background(), created.ID, employee.UpdateEmployeeRequest{Password: &pwd, Email: &email})
	require.NoError(t, err)

	require.NotNil(t, repo.lastPwd)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*repo.lastPwd), []byte(pwd)))
	assert.Equal(t, "new@example.com", *repo.lastReq.Email)
}

func TestEmployeeService_Update_NotFound(t *testing.T) {
	svc := NewEmployeeService(newFakeEmployeeRepo())

	name := "Jim"
	_, err := svc.Update(context.Background(), "missing", employee.UpdateEmployeeRequest{FirstName: &name})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestEmployeeService_Deactivate(t *testing.T) {
	repo := newFakeEmployeeRepo()
	svc := NewEmployeeService(repo)
	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	res, err := svc.Deactivate(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "INACTIVE", res.EmploymentStatus)
	assert.Len(t, repo.byID, 1)

	_, err = svc.Deactivate(context.Background(), "missing")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestEmployeeService_List(t *testing.T) {
	repo := newFakeEmployeeRepo()
	svc := NewEmployeeService(repo)
	_, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	res, err := svc.List(context.Background(), employee.EmployeeFilter{})
	require.NoError(t, err)
	assert.Len(t, res.Data, 1)
	assert.Equal(t, int64(1), res.TotalCount)
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, 10, res.Limit)
}

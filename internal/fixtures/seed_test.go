package fixtures

import (
	"context"
	"errors"
	"testing"

	"github.com/cmlabs-hris/ems-backend-go/internal/config"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/master/department"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeTransactor struct{ calls int }

func (f *fakeTransactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	hasAdmin bool
	created  []employee.Employee
}

func (f *fakeEmployeeRepo) ExistsByRole(_ context.Context, role employee.Role) (bool, error) {
	return role == employee.RoleAdmin && f.hasAdmin, nil
}

func (f *fakeEmployeeRepo) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	e.ID = "emp-admin"
	f.created = append(f.created, e)
	return e, nil
}

type fakeDepartmentRepo struct {
	department.DepartmentRepository
	existing int64
	created  []department.Department
}

func (f *fakeDepartmentRepo) List(context.Context, department.DepartmentFilter) ([]department.Department, int64, error) {
	return nil, f.existing, nil
}

func (f *fakeDepartmentRepo) Create(_ context.Context, d department.Department) (department.Department, error) {
	d.ID = "dept-" + d.Name
	f.created = append(f.created, d)
	return d, nil
}

type fakeShiftRepo struct {
	schedule.ShiftRepository
	existing int64
	created  []schedule.Shift
	failWith error
}

func (f *fakeShiftRepo) List(context.Context, schedule.ShiftFilter) ([]schedule.Shift, int64, error) {
	return nil, f.existing, nil
}

func (f *fakeShiftRepo) Create(_ context.Context, s schedule.Shift) (schedule.Shift, error) {
	if f.failWith != nil {
		return schedule.Shift{}, f.failWith
	}
	f.created = append(f.created, s)
	return s, nil
}

func adminConfig() config.AdminConfig {
	return config.AdminConfig{
		Seed:         true,
		Email:        "admin@example.com",
		Password:     "Admin@12345",
		FirstName:    "System",
		LastName:     "Admin",
		EmployeeCode: "EMP-ADMIN-0001",
	}
}

func TestSeed_EmptyInstall(t *testing.T) {
	tx := &fakeTransactor{}
	employees := &fakeEmployeeRepo{}
	departments := &fakeDepartmentRepo{}
	shifts := &fakeShiftRepo{}

	err := NewSeeder(tx, employees, departments, shifts).Seed(context.Background(), adminConfig())
	require.NoError(t, err)

	assert.Equal(t, 1, tx.calls)
	assert.Len(t, departments.created, len(GetDefaultDepartments()))
	assert.Len(t, shifts.created, len(GetDefaultShifts()))

	require.Len(t, employees.created, 1)
	admin := employees.created[0]
	assert.Equal(t, employee.RoleAdmin, admin.Role)
	assert.Equal(t, employee.EmploymentStatusActive, admin.EmploymentStatus)
	assert.Equal(t, "EMP-ADMIN-0001", admin.EmployeeCode)
	require.NotNil(t, admin.DepartmentID)
	assert.Equal(t, "dept-"+AdminDepartment, *admin.DepartmentID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("Admin@12345")))
}

func TestSeed_KeepsExistingMasterData(t *testing.T) {
	employees := &fakeEmployeeRepo{}
	departments := &fakeDepartmentRepo{existing: 3}
	shifts := &fakeShiftRepo{existing: 1}

	err := NewSeeder(&fakeTransactor{}, employees, departments, shifts).Seed(context.Background(), adminConfig())
	require.NoError(t, err)

	assert.Empty(t, departments.created)
	assert.Empty(t, shifts.created)
	require.Len(t, employees.created, 1)
	assert.Nil(t, employees.created[0].DepartmentID)
}

func TestSeed_SkipsWhenAdminExists(t *testing.T) {
	tx := &fakeTransactor{}
	employees := &fakeEmployeeRepo{hasAdmin: true}

	err := NewSeeder(tx, employees, &fakeDepartmentRepo{}, &fakeShiftRepo{}).Seed(context.Background(), adminConfig())
	require.NoError(t, err)
	assert.Zero(t, tx.calls)
	assert.Empty(t, employees.created)
}

func TestSeed_Disabled(t *testing.T) {
	cfg := adminConfig()
	cfg.Seed = false
	employees := &fakeEmployeeRepo{}

	err := NewSeeder(&fakeTransactor{}, employees, &fakeDepartmentRepo{}, &fakeShiftRepo{}).Seed(context.Background(), cfg)
	require.NoError(t, err)
	assert.Empty(t, employees.created)
}

func TestSeed_ShiftFailureAbortsAdmin(t *testing.T) {
	employees := &fakeEmployeeRepo{}
	shifts := &fakeShiftRepo{failWith: errors.New("insert failed")}

	err := NewSeeder(&fakeTransactor{}, employees, &fakeDepartmentRepo{}, shifts).Seed(context.Background(), adminConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Regular")
	assert.Empty(t, employees.created)
}

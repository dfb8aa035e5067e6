package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/ems-backend-go/internal/repository/postgresql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var (
	testDB      *database.DB
	testDBErr   error
	testDBSetup sync.Once
)

// tables in dependency order, truncated before every test
var tables = []string{
	"payroll_runs",
	"salary_templates",
	"attendances",
	"employee_shifts",
	"shifts",
	"employees",
	"designations",
	"departments",
}

// newTestDB returns a migrated, empty database. Tests are skipped unless
// TEST_DATABASE_URL points at a disposable PostgreSQL database.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	testDBSetup.Do(func() {
		testDB = database.New(dsn)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		testDBErr = testDB.Migrate(ctx)
	})
	require.NoError(t, testDBErr)

	truncateAll(t)
	return testDB
}

func truncateAll(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	pool, err := testDB.Pool(ctx)
	require.NoError(t, err)

	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err, "truncate %s", table)
	}
}

// createEmployee inserts an ACTIVE employee with a unique code and email.
func createEmployee(t *testing.T, db *database.DB, firstName string) employee.Employee {
	t.Helper()
	suffix := uuid.NewString()[:8]
	emp, err := postgresql.NewEmployeeRepository(db).Create(context.Background(), employee.Employee{
		EmployeeCode:     "EMP-" + suffix,
		FirstName:        firstName,
		LastName:         "Test",
		Email:            firstName + "-" + suffix + "@example.com",
		EmploymentStatus: employee.EmploymentStatusActive,
		PasswordHash:     "x",
		Role:             employee.RoleEmployee,
	})
	require.NoError(t, err)
	return emp
}

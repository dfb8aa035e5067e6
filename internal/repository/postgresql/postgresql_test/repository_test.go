package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/ems-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployeeRepository_UniqueEmail(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(db)

	alice := createEmployee(t, db, "alice")

	found, err := repo.GetByEmail(ctx, alice.Email)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, found.ID)

	dup := alice
	dup.EmployeeCode = "EMP-OTHER"
	_, err = repo.Create(ctx, dup)
	require.Error(t, err)
	assert.True(t, database.IsUniqueViolation(err))

	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	assert.True(t, errors.Is(err, employee.ErrEmployeeNotFound))
}

func TestAttendanceRepository_CheckInIsOnePerDay(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(db)
	emp := createEmployee(t, db, "bob")

	day := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	first, err := repo.UpsertCheckIn(ctx, emp.ID, day, day.Add(8*time.Hour))
	require.NoError(t, err)
	second, err := repo.UpsertCheckIn(ctx, emp.ID, day, day.Add(9*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, attendance.StatusPresent, second.Status)
	require.NotNil(t, second.CheckIn)
	assert.True(t, second.CheckIn.Equal(day.Add(9*time.Hour)))

	out, err := repo.SetCheckOut(ctx, second.ID, day.Add(17*time.Hour), 8)
	require.NoError(t, err)
	assert.Equal(t, 8.0, out.HoursWorked)

	present, err := repo.CountPresent(ctx, emp.ID, day, day)
	require.NoError(t, err)
	assert.Equal(t, 1, present)
}

func TestPayrollRunRepository_UpsertByPeriod(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewPayrollRunRepository(db)
	emp := createEmployee(t, db, "carol")

	run := payroll.PayrollRun{
		EmployeeID:      emp.ID,
		PeriodYear:      2024,
		PeriodMonth:     5,
		WorkingDays:     23,
		PresentDays:     20,
		OvertimeHours:   decimal.Zero,
		BasicSalary:     decimal.NewFromInt(5000),
		TotalAllowances: decimal.NewFromInt(700),
		TotalDeductions: decimal.NewFromInt(350),
		GrossPay:        decimal.NewFromInt(5700),
		NetPay:          decimal.NewFromInt(5350),
		GeneratedAt:     time.Now().UTC(),
	}
	first, err := repo.Upsert(ctx, run)
	require.NoError(t, err)

	run.PresentDays = 22
	run.NetPay = decimal.NewFromInt(5400)
	second, err := repo.Upsert(ctx, run)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 22, second.PresentDays)
	assert.True(t, second.NetPay.Equal(decimal.NewFromInt(5400)))

	summary, err := repo.Summary(ctx, 2024, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.Count)
	assert.True(t, summary.TotalNet.Equal(decimal.NewFromInt(5400)))
}

func TestSalaryTemplateRepository_UpsertReplaces(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewSalaryTemplateRepository(db)
	emp := createEmployee(t, db, "dave")

	tmpl := payroll.SalaryTemplate{
		EmployeeID:       emp.ID,
		BasicSalary:      decimal.NewFromInt(3000),
		AllowanceFixed:   decimal.Zero,
		AllowancePercent: decimal.NewFromInt(10),
		DeductionFixed:   decimal.Zero,
		DeductionPercent: decimal.Zero,
		EffectiveFrom:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	_, err := repo.Upsert(ctx, tmpl)
	require.NoError(t, err)

	tmpl.BasicSalary = decimal.NewFromInt(3500)
	_, err = repo.Upsert(ctx, tmpl)
	require.NoError(t, err)

	got, err := repo.GetByEmployee(ctx, emp.ID)
	require.NoError(t, err)
	assert.True(t, got.BasicSalary.Equal(decimal.NewFromInt(3500)))

	all, err := repo.ListForGeneration(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestTransactor_RollsBack(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(db)
	emp := createEmployee(t, db, "erin")

	boom := errors.New("boom")
	err := postgresql.NewTransactor(db).WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := repo.SetStatus(ctx, emp.ID, employee.EmploymentStatusInactive); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := repo.GetByID(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, employee.EmploymentStatusActive, got.EmploymentStatus)
}

package payroll

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/metrics"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

const (
	aliceID = "0b7c8a5e-3f7a-4d8e-9a51-3a2b9c1d0e4f"
	bobID   = "6f1d2c3b-4a5e-4f60-8b7a-9c8d7e6f5a4b"
)

type fakeTemplateRepo struct {
	payroll.SalaryTemplateRepository
	templates []payroll.SalaryTemplate
	upsertErr error
}

func (f *fakeTemplateRepo) Upsert(_ context.Context, t payroll.SalaryTemplate) (payroll.SalaryTemplate, error) {
	if f.upsertErr != nil {
		return payroll.SalaryTemplate{}, f.upsertErr
	}
	t.ID = "tpl-" + t.EmployeeID
	f.templates = append(f.templates, t)
	return t, nil
}

func (f *fakeTemplateRepo) ListForGeneration(_ context.Context, employeeID *string) ([]payroll.SalaryTemplate, error) {
	out := make([]payroll.SalaryTemplate, 0)
	for _, t := range f.templates {
		if employeeID == nil || *employeeID == t.EmployeeID {
			out = append(out, t)
		}
	}
	return out, nil
}

type runKey struct {
	employeeID  string
	year, month int
}

// fakeRunRepo keeps one run per (employee, year, month).
type fakeRunRepo struct {
	payroll.PayrollRunRepository
	mu      sync.Mutex
	runs    map[runKey]payroll.PayrollRun
	failFor string
}

func newFakeRunRepo() *fakeRunRepo {
	return &fakeRunRepo{runs: make(map[runKey]payroll.PayrollRun)}
}

func (f *fakeRunRepo) Upsert(_ context.Context, run payroll.PayrollRun) (payroll.PayrollRun, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if run.EmployeeID == f.failFor {
		return payroll.PayrollRun{}, errors.New("connection reset")
	}
	key := runKey{run.EmployeeID, run.PeriodYear, run.PeriodMonth}
	if existing, ok := f.runs[key]; ok {
		run.ID = existing.ID
	} else {
		run.ID = fmt.Sprintf("run-%s-%d-%02d", run.EmployeeID, run.PeriodYear, run.PeriodMonth)
	}
	f.runs[key] = run
	return run, nil
}

func (f *fakeRunRepo) GetByID(_ context.Context, id string) (payroll.PayrollRun, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.runs {
		if r.ID == id {
			return r, nil
		}
	}
	return payroll.PayrollRun{}, payroll.ErrPayrollNotFound
}

func (f *fakeRunRepo) Update(_ context.Context, run payroll.PayrollRun) (payroll.PayrollRun, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runs[runKey{run.EmployeeID, run.PeriodYear, run.PeriodMonth}] = run
	return run, nil
}

func (f *fakeRunRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for k, r := range f.runs {
		if r.ID == id {
			delete(f.runs, k)
			return nil
		}
	}
	return payroll.ErrPayrollNotFound
}

type fakeAttendanceRepo struct {
	attendance.AttendanceRepository
	mu      sync.Mutex
	present map[string]int
	from    time.Time
	to      time.Time
}

func (f *fakeAttendanceRepo) CountPresent(_ context.Context, employeeID string, from, to time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.from, f.to = from, to
	return f.present[employeeID], nil
}

type fakeTransactor struct {
	mu    sync.Mutex
	calls int
}

func (f *fakeTransactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return fn(ctx)
}

// fakeCache records invalidated keys.
type fakeCache struct {
	mu      sync.Mutex
	deleted []string
}

func (f *fakeCache) Get(context.Context, string, interface{}) (bool, error) { return false, nil }
func (f *fakeCache) Set(context.Context, string, interface{}, time.Duration) error {
	return nil
}
func (f *fakeCache) Delete(_ context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, keys...)
	return nil
}
func (f *fakeCache) Ping(context.Context) error { return nil }
func (f *fakeCache) Close() error               { return nil }

type fixture struct {
	svc        *PayrollServiceImpl
	templates  *fakeTemplateRepo
	runs       *fakeRunRepo
	attendance *fakeAttendanceRepo
	tx         *fakeTransactor
	cache      *fakeCache
	metrics    *metrics.Metrics
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	f := fixture{
		templates: &fakeTemplateRepo{templates: []payroll.SalaryTemplate{
			{
				EmployeeID:       aliceID,
				BasicSalary:      dec("5000"),
				AllowanceFixed:   dec("200"),
				AllowancePercent: dec("10"),
				DeductionFixed:   dec("100"),
				DeductionPercent: dec("5"),
			},
			{EmployeeID: bobID, BasicSalary: dec("3000")},
		}},
		runs:       newFakeRunRepo(),
		attendance: &fakeAttendanceRepo{present: map[string]int{aliceID: 20, bobID: 18}},
		tx:         &fakeTransactor{},
		cache:      &fakeCache{},
		metrics:    metrics.New(),
	}
	svc, ok := NewPayrollService(f.tx, f.templates, f.runs, f.attendance, f.cache, f.metrics).(*PayrollServiceImpl)
	require.True(t, ok)
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 2, 0, 0, 0, time.UTC) }
	f.svc = svc
	return f
}

func TestGeneratePayroll(t *testing.T) {
	f := newFixture(t)

	res, err := f.svc.GeneratePayroll(context.Background(), 2024, 5, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Generated)
	require.Len(t, res.Runs, 2)
	assert.Equal(t, 2, f.tx.calls)

	alice := f.runs.runs[runKey{aliceID, 2024, 5}]
	assert.Equal(t, 23, alice.WorkingDays)
	assert.Equal(t, 20, alice.PresentDays)
	assert.True(t, dec("5700").Equal(alice.GrossPay))
	assert.True(t, dec("5350").Equal(alice.NetPay))
	assert.True(t, dec("700").Equal(alice.TotalAllowances))
	assert.True(t, dec("350").Equal(alice.TotalDeductions))
	assert.True(t, alice.OvertimeHours.IsZero())
	assert.Equal(t, time.Date(2024, 6, 1, 2, 0, 0, 0, time.UTC), alice.GeneratedAt)

	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), f.attendance.from)
	assert.Equal(t, time.Date(2024, 5, 31, 23, 59, 59, 999000000, time.UTC), f.attendance.to)

	assert.Equal(t, float64(2), testutil.ToFloat64(f.metrics.PayrollGenerated))
}

func TestGeneratePayroll_Rerun(t *testing.T) {
	f := newFixture(t)

	first, err := f.svc.GeneratePayroll(context.Background(), 2024, 5, nil)
	require.NoError(t, err)

	f.attendance.present[aliceID] = 21
	second, err := f.svc.GeneratePayroll(context.Background(), 2024, 5, nil)
	require.NoError(t, err)

	assert.Len(t, f.runs.runs, 2)
	assert.Equal(t, first.Runs[0].ID, second.Runs[0].ID)
	assert.Equal(t, 21, f.runs.runs[runKey{aliceID, 2024, 5}].PresentDays)
}

func TestGeneratePayroll_RerunIsStable(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.GeneratePayroll(context.Background(), 2024, 5, nil)
	require.NoError(t, err)
	before := make(map[runKey]payroll.PayrollRun, len(f.runs.runs))
	for k, v := range f.runs.runs {
		before[k] = v
	}

	rerunAt := time.Date(2024, 6, 2, 8, 30, 0, 0, time.UTC)
	f.svc.now = func() time.Time { return rerunAt }
	_, err = f.svc.GeneratePayroll(context.Background(), 2024, 5, nil)
	require.NoError(t, err)

	require.Len(t, f.runs.runs, len(before))
	for k, first := range before {
		second := f.runs.runs[k]
		assert.Equal(t, rerunAt, second.GeneratedAt)

		first.GeneratedAt, second.GeneratedAt = time.Time{}, time.Time{}
		assert.Equal(t, first, second, "employee %s", k.employeeID)
	}
}

func TestGeneratePayroll_ConcurrentEmployees(t *testing.T) {
	f := newFixture(t)

	var g errgroup.Group
	for _, id := range []string{aliceID, bobID} {
		g.Go(func() error {
			res, err := f.svc.GeneratePayroll(context.Background(), 2024, 5, &id)
			if err != nil {
				return err
			}
			if res.Generated != 1 || res.Runs[0].EmployeeID != id {
				return fmt.Errorf("employee %s: unexpected result %+v", id, res)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	require.Len(t, f.runs.runs, 2)
	alice := f.runs.runs[runKey{aliceID, 2024, 5}]
	bob := f.runs.runs[runKey{bobID, 2024, 5}]
	assert.Equal(t, 20, alice.PresentDays)
	assert.True(t, dec("5350").Equal(alice.NetPay))
	assert.Equal(t, 18, bob.PresentDays)
	assert.True(t, dec("3000").Equal(bob.NetPay))
	assert.NotEqual(t, alice.ID, bob.ID)
	assert.Equal(t, float64(2), testutil.ToFloat64(f.metrics.PayrollGenerated))
}

func TestGeneratePayroll_SingleEmployee(t *testing.T) {
	f := newFixture(t)

	id := bobID
	res, err := f.svc.GeneratePayroll(context.Background(), 2024, 5, &id)
	require.NoError(t, err)
	require.Equal(t, 1, res.Generated)
	assert.Equal(t, bobID, res.Runs[0].EmployeeID)
	assert.True(t, dec("3000").Equal(res.Runs[0].NetPay))
}

func TestGeneratePayroll_NoTemplates(t *testing.T) {
	f := newFixture(t)

	missing := "9a9a9a9a-1111-4222-8333-444455556666"
	res, err := f.svc.GeneratePayroll(context.Background(), 2024, 5, &missing)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Generated)
	assert.NotNil(t, res.Runs)
	assert.Empty(t, res.Runs)
}

func TestGeneratePayroll_PartialFailure(t *testing.T) {
	f := newFixture(t)
	f.runs.failFor = aliceID

	res, err := f.svc.GeneratePayroll(context.Background(), 2024, 5, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), aliceID)
	assert.Equal(t, 1, res.Generated)
	assert.Equal(t, bobID, res.Runs[0].EmployeeID)
	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.PayrollFailures))
}

func TestGeneratePayroll_InvalidPeriod(t *testing.T) {
	f := newFixture(t)

	for _, p := range [][2]int{{2024, 0}, {2024, 13}, {1899, 1}, {10000, 1}} {
		_, err := f.svc.GeneratePayroll(context.Background(), p[0], p[1], nil)
		assert.ErrorIs(t, err, payroll.ErrInvalidPeriod, "period %v", p)
	}
	assert.Zero(t, f.tx.calls)
}

func TestUpsertTemplate(t *testing.T) {
	f := newFixture(t)

	basic := dec("4200")
	res, err := f.svc.UpsertTemplate(context.Background(), payroll.UpsertSalaryTemplateRequest{
		EmployeeID:    aliceID,
		BasicSalary:   &basic,
		EffectiveFrom: "2024-01-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", res.EffectiveFrom)
	assert.True(t, res.AllowanceFixed.IsZero())

	negative := dec("-1")
	_, err = f.svc.UpsertTemplate(context.Background(), payroll.UpsertSalaryTemplateRequest{
		EmployeeID:    aliceID,
		BasicSalary:   &negative,
		EffectiveFrom: "2024-01-01",
	})
	assert.Error(t, err)

	f.templates.upsertErr = &pgconn.PgError{Code: "23503", ConstraintName: "salary_templates_employee_id_fkey"}
	_, err = f.svc.UpsertTemplate(context.Background(), payroll.UpsertSalaryTemplateRequest{
		EmployeeID:    bobID,
		BasicSalary:   &basic,
		EffectiveFrom: "2024-01-01",
	})
	assert.ErrorIs(t, err, payroll.ErrEmployeeNotFound)
}

func TestUpdateRun_StoresValuesAsGiven(t *testing.T) {
	f := newFixture(t)
	res, err := f.svc.GeneratePayroll(context.Background(), 2024, 5, nil)
	require.NoError(t, err)

	net := dec("1")
	notes := "manual correction"
	updated, err := f.svc.UpdateRun(context.Background(), payroll.UpdatePayrollRunRequest{
		ID:     res.Runs[0].ID,
		NetPay: &net,
		Notes:  &notes,
	})
	require.NoError(t, err)
	assert.True(t, net.Equal(updated.NetPay))
	assert.True(t, res.Runs[0].GrossPay.Equal(updated.GrossPay))
	require.NotNil(t, updated.Notes)
	assert.Equal(t, notes, *updated.Notes)

	_, err = f.svc.UpdateRun(context.Background(), payroll.UpdatePayrollRunRequest{ID: "missing"})
	assert.ErrorIs(t, err, payroll.ErrPayrollNotFound)
}

func TestRunWrites_InvalidatePayrollTrend(t *testing.T) {
	tests := []struct {
		name  string
		write func(t *testing.T, f fixture) error
		want  []string
	}{
		{
			name: "generate",
			write: func(t *testing.T, f fixture) error {
				_, err := f.svc.GeneratePayroll(context.Background(), 2024, 5, nil)
				return err
			},
			want: []string{"dashboard:payroll-trend:2024"},
		},
		{
			name: "generate without templates",
			write: func(t *testing.T, f fixture) error {
				f.templates.templates = nil
				_, err := f.svc.GeneratePayroll(context.Background(), 2024, 5, nil)
				return err
			},
			want: nil,
		},
		{
			name: "update",
			write: func(t *testing.T, f fixture) error {
				f.runs.runs[runKey{aliceID, 2023, 12}] = payroll.PayrollRun{ID: "run-1", EmployeeID: aliceID, PeriodYear: 2023, PeriodMonth: 12}
				notes := "bonus paid separately"
				_, err := f.svc.UpdateRun(context.Background(), payroll.UpdatePayrollRunRequest{ID: "run-1", Notes: &notes})
				return err
			},
			want: []string{"dashboard:payroll-trend:2023"},
		},
		{
			name: "delete",
			write: func(t *testing.T, f fixture) error {
				f.runs.runs[runKey{bobID, 2022, 3}] = payroll.PayrollRun{ID: "run-2", EmployeeID: bobID, PeriodYear: 2022, PeriodMonth: 3}
				return f.svc.DeleteRun(context.Background(), "run-2")
			},
			want: []string{"dashboard:payroll-trend:2022"},
		},
		{
			name: "delete missing run",
			write: func(t *testing.T, f fixture) error {
				err := f.svc.DeleteRun(context.Background(), "missing")
				assert.ErrorIs(t, err, payroll.ErrPayrollNotFound)
				return nil
			},
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			require.NoError(t, tt.write(t, f))
			assert.Equal(t, tt.want, f.cache.deleted)
		})
	}
}

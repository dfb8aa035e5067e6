package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/payroll"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_AddJobRejectsBadSpec(t *testing.T) {
	s := NewScheduler()

	err := s.AddJob("broken", "every now and then", func(context.Context) error { return nil })
	assert.Error(t, err)
	assert.Empty(t, s.Jobs())
}

func TestScheduler_RunOnce(t *testing.T) {
	s := NewScheduler()
	calls := 0
	require.NoError(t, s.AddJob("counter", "0 2 1 * *", func(context.Context) error {
		calls++
		return nil
	}))
	require.NoError(t, s.AddJob("failing", "@hourly", func(context.Context) error {
		return errors.New("boom")
	}))

	s.RunOnce(context.Background())
	assert.Equal(t, 1, calls)
	assert.Len(t, s.Jobs(), 2)
}

func TestScheduler_StartStop(t *testing.T) {
	s := NewScheduler()
	require.NoError(t, s.AddJob("noop", "@every 1h", func(context.Context) error { return nil }))

	s.Start()
	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}

type fakeGenerator struct {
	year, month int
	employeeID  *string
	err         error
}

func (f *fakeGenerator) GeneratePayroll(_ context.Context, year, month int, employeeID *string) (payroll.GeneratePayrollResponse, error) {
	f.year, f.month, f.employeeID = year, month, employeeID
	return payroll.GeneratePayrollResponse{Generated: 3}, f.err
}

func TestPayrollJobs_GeneratePreviousMonth(t *testing.T) {
	gen := &fakeGenerator{}
	jobs := NewPayrollJobs(gen)
	jobs.now = func() time.Time { return time.Date(2026, time.January, 1, 2, 0, 0, 0, time.UTC) }

	require.NoError(t, jobs.GeneratePreviousMonth(context.Background()))
	assert.Equal(t, 2025, gen.year)
	assert.Equal(t, 12, gen.month)
	assert.Nil(t, gen.employeeID)

	gen.err = errors.New("db down")
	assert.Error(t, jobs.GeneratePreviousMonth(context.Background()))
}

func TestPayrollJobs_Register(t *testing.T) {
	s := NewScheduler()
	require.NoError(t, NewPayrollJobs(&fakeGenerator{}).RegisterJobs(s, "0 2 1 * *"))

	jobs := s.Jobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, "generate_monthly_payroll", jobs[0].Name)
}

func TestPreviousPeriod(t *testing.T) {
	y, m := PreviousPeriod(time.Date(2024, time.March, 31, 23, 0, 0, 0, time.UTC))
	assert.Equal(t, 2024, y)
	assert.Equal(t, 2, m)
}

package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/payroll"
)

// PayrollGenerator is the part of the payroll service the job needs.
type PayrollGenerator interface {
	GeneratePayroll(ctx context.Context, year, month int, employeeID *string) (payroll.GeneratePayrollResponse, error)
}

type PayrollJobs struct {
	generator PayrollGenerator
	now       func() time.Time
}

func NewPayrollJobs(generator PayrollGenerator) *PayrollJobs {
	return &PayrollJobs{generator: generator, now: time.Now}
}

func (j *PayrollJobs) RegisterJobs(scheduler *Scheduler, spec string) error {
	return scheduler.AddJob("generate_monthly_payroll", spec, j.GeneratePreviousMonth)
}

// GeneratePreviousMonth generates payroll for every template for the month
// before the current one.
func (j *PayrollJobs) GeneratePreviousMonth(ctx context.Context) error {
	year, month := PreviousPeriod(j.now())

	slog.Info("Cron: Starting payroll generation", "year", year, "month", month)
	res, err := j.generator.GeneratePayroll(ctx, year, month, nil)
	if err != nil {
		slog.Error("Cron: Payroll generation finished with errors", "year", year, "month", month, "generated", res.Generated, "error", err)
		return err
	}

	slog.Info("Cron: Payroll generation completed", "year", year, "month", month, "generated", res.Generated)
	return nil
}

// PreviousPeriod returns the (year, month) before now's month in UTC.
func PreviousPeriod(now time.Time) (int, int) {
	first := time.Date(now.UTC().Year(), now.UTC().Month(), 1, 0, 0, 0, 0, time.UTC)
	prev := first.AddDate(0, -1, 0)
	return prev.Year(), int(prev.Month())
}

package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/cache"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/utils"
	"github.com/shopspring/decimal"
)

// Transactor runs fn in one database transaction.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type PayrollServiceImpl struct {
	tx             Transactor
	templateRepo   payroll.SalaryTemplateRepository
	runRepo        payroll.PayrollRunRepository
	attendanceRepo attendance.AttendanceRepository
	cache          cache.Cache
	metrics        *metrics.Metrics
	now            func() time.Time
}

// NewPayrollService builds the service. Run writes drop the cached dashboard
// payroll trend of the run's year; c may be nil.
func NewPayrollService(
	tx Transactor,
	templateRepo payroll.SalaryTemplateRepository,
	runRepo payroll.PayrollRunRepository,
	attendanceRepo attendance.AttendanceRepository,
	c cache.Cache,
	m *metrics.Metrics,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		tx:             tx,
		templateRepo:   templateRepo,
		runRepo:        runRepo,
		attendanceRepo: attendanceRepo,
		cache:          c,
		metrics:        m,
		now:            time.Now,
	}
}

// ========== SALARY TEMPLATES ==========

func (s *PayrollServiceImpl) UpsertTemplate(ctx context.Context, req payroll.UpsertSalaryTemplateRequest) (payroll.SalaryTemplateResponse, error) {
	t, err := req.Validate()
	if err != nil {
		return payroll.SalaryTemplateResponse{}, err
	}

	saved, err := s.templateRepo.Upsert(ctx, t)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return payroll.SalaryTemplateResponse{}, payroll.ErrEmployeeNotFound
		}
		return payroll.SalaryTemplateResponse{}, err
	}

	slog.Info("Salary template saved", "employee_id", saved.EmployeeID, "basic_salary", saved.BasicSalary.String())
	return payroll.ToTemplateResponse(saved), nil
}

func (s *PayrollServiceImpl) GetTemplate(ctx context.Context, employeeID string) (payroll.SalaryTemplateResponse, error) {
	t, err := s.templateRepo.GetByEmployee(ctx, employeeID)
	if err != nil {
		return payroll.SalaryTemplateResponse{}, err
	}
	return payroll.ToTemplateResponse(t), nil
}

func (s *PayrollServiceImpl) ListTemplates(ctx context.Context, filter payroll.SalaryTemplateFilter) (payroll.ListSalaryTemplateResponse, error) {
	filter.Normalize()

	templates, total, err := s.templateRepo.List(ctx, filter)
	if err != nil {
		return payroll.ListSalaryTemplateResponse{}, err
	}

	data := make([]payroll.SalaryTemplateResponse, 0, len(templates))
	for _, t := range templates {
		data = append(data, payroll.ToTemplateResponse(t))
	}

	return payroll.ListSalaryTemplateResponse{
		Data:       data,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *PayrollServiceImpl) DeleteTemplate(ctx context.Context, employeeID string) error {
	return s.templateRepo.DeleteByEmployee(ctx, employeeID)
}

// ========== GENERATION ==========

// GeneratePayroll computes and upserts the run of every templated employee
// (or only employeeID) for the period. Each employee is written in its own
// transaction; failures are collected and returned with the runs that did
// succeed.
func (s *PayrollServiceImpl) GeneratePayroll(ctx context.Context, year, month int, employeeID *string) (payroll.GeneratePayrollResponse, error) {
	if year < 1900 || year > 9999 || month < 1 || month > 12 {
		return payroll.GeneratePayrollResponse{}, payroll.ErrInvalidPeriod
	}

	templates, err := s.templateRepo.ListForGeneration(ctx, employeeID)
	if err != nil {
		return payroll.GeneratePayrollResponse{}, err
	}

	from := utils.StartOfMonth(year, month)
	to := utils.EndOfMonth(year, month)
	workingDays := utils.WeekdaysInMonth(year, month)

	runs := make([]payroll.PayrollRunResponse, 0, len(templates))
	var errs []error
	for _, t := range templates {
		var saved payroll.PayrollRun
		err := s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
			present, err := s.attendanceRepo.CountPresent(txCtx, t.EmployeeID, from, to)
			if err != nil {
				return err
			}

			pay := Calculate(t)
			saved, err = s.runRepo.Upsert(txCtx, payroll.PayrollRun{
				EmployeeID:      t.EmployeeID,
				PeriodYear:      year,
				PeriodMonth:     month,
				WorkingDays:     workingDays,
				PresentDays:     present,
				OvertimeHours:   decimal.Zero,
				BasicSalary:     pay.Basic,
				TotalAllowances: pay.TotalAllowances,
				TotalDeductions: pay.TotalDeductions,
				GrossPay:        pay.Gross,
				NetPay:          pay.Net,
				GeneratedAt:     s.now().UTC(),
			})
			return err
		})
		if err != nil {
			slog.Error("Payroll generation failed", "employee_id", t.EmployeeID, "year", year, "month", month, "error", err)
			errs = append(errs, fmt.Errorf("employee %s: %w", t.EmployeeID, err))
			continue
		}
		runs = append(runs, payroll.ToRunResponse(saved))
	}

	if len(runs) > 0 {
		cache.Invalidate(ctx, s.cache, dashboard.PayrollTrendCacheKey(year))
	}
	s.metrics.PayrollRuns(len(runs), len(errs))
	slog.Info("Payroll generated", "year", year, "month", month, "generated", len(runs), "failed", len(errs))

	return payroll.GeneratePayrollResponse{Generated: len(runs), Runs: runs}, errors.Join(errs...)
}

// ========== RUNS ==========

func (s *PayrollServiceImpl) GetRun(ctx context.Context, id string) (payroll.PayrollRunResponse, error) {
	run, err := s.runRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.PayrollRunResponse{}, err
	}
	return payroll.ToRunResponse(run), nil
}

func (s *PayrollServiceImpl) ListRuns(ctx context.Context, filter payroll.PayrollFilter) (payroll.ListPayrollRunResponse, error) {
	filter.Normalize()

	runs, total, err := s.runRepo.List(ctx, filter)
	if err != nil {
		return payroll.ListPayrollRunResponse{}, err
	}

	data := make([]payroll.PayrollRunResponse, 0, len(runs))
	for _, r := range runs {
		data = append(data, payroll.ToRunResponse(r))
	}

	return payroll.ListPayrollRunResponse{
		Data:       data,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *PayrollServiceImpl) UpdateRun(ctx context.Context, req payroll.UpdatePayrollRunRequest) (payroll.PayrollRunResponse, error) {
	current, err := s.runRepo.GetByID(ctx, req.ID)
	if err != nil {
		return payroll.PayrollRunResponse{}, err
	}

	next, err := req.Apply(current)
	if err != nil {
		return payroll.PayrollRunResponse{}, err
	}

	updated, err := s.runRepo.Update(ctx, next)
	if err != nil {
		return payroll.PayrollRunResponse{}, err
	}
	cache.Invalidate(ctx, s.cache, dashboard.PayrollTrendCacheKey(updated.PeriodYear))
	return payroll.ToRunResponse(updated), nil
}

func (s *PayrollServiceImpl) DeleteRun(ctx context.Context, id string) error {
	current, err := s.runRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.runRepo.Delete(ctx, id); err != nil {
		return err
	}
	cache.Invalidate(ctx, s.cache, dashboard.PayrollTrendCacheKey(current.PeriodYear))
	return nil
}

// ========== SUMMARY ==========

func (s *PayrollServiceImpl) Summary(ctx context.Context, year, month int) (payroll.Summary, error) {
	if year < 1900 || year > 9999 || month < 1 || month > 12 {
		return payroll.Summary{}, payroll.ErrInvalidPeriod
	}
	return s.runRepo.Summary(ctx, year, month)
}

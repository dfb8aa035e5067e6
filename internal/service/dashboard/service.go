package dashboard

import (
	"context"
	"time"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/cache"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/utils"
	"golang.org/x/sync/errgroup"
)

const maxTrendDays = 366

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
	cache cache.Cache
	ttl   time.Duration
}

// NewDashboardService wires the repository behind a read-through cache.
// A nil cache disables caching.
func NewDashboardService(repo dashboard.DashboardRepository, c cache.Cache, ttl time.Duration) dashboard.DashboardService {
	if c == nil {
		c = cache.Noop{}
	}
	return &DashboardServiceImpl{
		DashboardRepository: repo,
		cache:               c,
		ttl:                 ttl,
	}
}

func validPeriod(year, month int) bool {
	return year >= 1900 && year <= 9999 && month >= 1 && month <= 12
}

// KPIs returns the active headcount and the present count for day (2 queries in parallel)
func (s *DashboardServiceImpl) KPIs(ctx context.Context, day time.Time) (*dashboard.KPIResponse, error) {
	day = utils.DateOnly(day)
	return cache.Remember(ctx, s.cache, dashboard.KPICacheKey(day), s.ttl, func(ctx context.Context) (*dashboard.KPIResponse, error) {
		var active, present int64

		g, gCtx := errgroup.WithContext(ctx)

		g.Go(func() error {
			status := string(employee.EmploymentStatusActive)
			n, err := s.CountEmployees(gCtx, &status)
			active = n
			return err
		})

		g.Go(func() error {
			n, err := s.CountAttendanceOn(gCtx, day, attendance.StatusPresent)
			present = n
			return err
		})

		if err := g.Wait(); err != nil {
			return nil, err
		}

		return &dashboard.KPIResponse{
			TotalActiveEmployees: active,
			PresentToday:         present,
		}, nil
	})
}

// AttendanceTrend returns one present-count bucket per day in [from, to]
func (s *DashboardServiceImpl) AttendanceTrend(ctx context.Context, from, to time.Time) (*dashboard.AttendanceTrendResponse, error) {
	if from.IsZero() || to.IsZero() {
		return nil, dashboard.ErrMissingRange
	}

	from, to = utils.DateOnly(from), utils.DateOnly(to)
	if from.After(to) {
		return &dashboard.AttendanceTrendResponse{Series: []dashboard.CountPoint{}}, nil
	}
	if days := int(to.Sub(from).Hours()/24) + 1; days > maxTrendDays {
		return nil, dashboard.ErrRangeTooLarge
	}

	series, err := s.DashboardRepository.AttendanceTrend(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return &dashboard.AttendanceTrendResponse{Series: series}, nil
}

func (s *DashboardServiceImpl) AttendanceBreakdown(ctx context.Context, day time.Time) (*dashboard.BreakdownResponse, error) {
	breakdown, err := s.DashboardRepository.AttendanceBreakdown(ctx, utils.DateOnly(day))
	if err != nil {
		return nil, err
	}
	return &dashboard.BreakdownResponse{Breakdown: breakdown}, nil
}

func (s *DashboardServiceImpl) DepartmentsHeadcount(ctx context.Context) (*dashboard.BreakdownResponse, error) {
	return cache.Remember(ctx, s.cache, dashboard.HeadcountCacheKey, s.ttl, func(ctx context.Context) (*dashboard.BreakdownResponse, error) {
		breakdown, err := s.DashboardRepository.DepartmentsHeadcount(ctx)
		if err != nil {
			return nil, err
		}
		return &dashboard.BreakdownResponse{Breakdown: breakdown}, nil
	})
}

// PayrollTrend returns the net pay total of every month of year
func (s *DashboardServiceImpl) PayrollTrend(ctx context.Context, year int) (*dashboard.PayrollTrendResponse, error) {
	if !validPeriod(year, 1) {
		return nil, dashboard.ErrInvalidPeriod
	}

	return cache.Remember(ctx, s.cache, dashboard.PayrollTrendCacheKey(year), s.ttl, func(ctx context.Context) (*dashboard.PayrollTrendResponse, error) {
		series, err := s.DashboardRepository.PayrollTrend(ctx, year)
		if err != nil {
			return nil, err
		}
		return &dashboard.PayrollTrendResponse{Series: series}, nil
	})
}

func (s *DashboardServiceImpl) PayrollDepartment(ctx context.Context, year, month int) (*dashboard.AmountBreakdownResponse, error) {
	if !validPeriod(year, month) {
		return nil, dashboard.ErrInvalidPeriod
	}

	breakdown, err := s.PayrollByDepartment(ctx, year, month)
	if err != nil {
		return nil, err
	}
	return &dashboard.AmountBreakdownResponse{Breakdown: breakdown}, nil
}

// PayrollCoverage compares the runs of a period with the employee count (2 queries in parallel)
func (s *DashboardServiceImpl) PayrollCoverage(ctx context.Context, year, month int) (*dashboard.PayrollCoverageResponse, error) {
	if !validPeriod(year, month) {
		return nil, dashboard.ErrInvalidPeriod
	}

	var total, processed int64

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.CountEmployees(gCtx, nil)
		total = n
		return err
	})

	g.Go(func() error {
		n, err := s.CountPayrollRuns(gCtx, year, month)
		processed = n
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var coverage float64
	if total > 0 {
		coverage = float64(processed) / float64(total)
	}

	return &dashboard.PayrollCoverageResponse{
		TotalEmployees: total,
		Processed:      processed,
		Coverage:       coverage,
	}, nil
}

// EmployeeSnapshot returns the attendance of one employee over the whole
// months spanned by from and to.
func (s *DashboardServiceImpl) EmployeeSnapshot(ctx context.Context, employeeID string, from, to time.Time) (*dashboard.EmployeeSnapshotResponse, error) {
	if from.IsZero() || to.IsZero() {
		return nil, dashboard.ErrMissingRange
	}

	from, to = from.UTC(), to.UTC()
	start := utils.StartOfMonth(from.Year(), int(from.Month()))
	end := utils.EndOfMonth(to.Year(), int(to.Month()))

	records, err := s.EmployeeAttendance(ctx, employeeID, start, end)
	if err != nil {
		return nil, err
	}

	data := make([]attendance.AttendanceResponse, 0, len(records))
	for _, a := range records {
		data = append(data, attendance.ToResponse(a))
	}

	return &dashboard.EmployeeSnapshotResponse{
		EmployeeID: employeeID,
		Range:      dashboard.SnapshotRange{From: start, To: end},
		Attendance: data,
	}, nil
}

// ========== PLACEHOLDERS ==========

func (s *DashboardServiceImpl) ShiftsCoverage(ctx context.Context) (*dashboard.CoverageResponse, error) {
	return &dashboard.CoverageResponse{Coverage: []any{}}, nil
}

func (s *DashboardServiceImpl) OvertimeTop(ctx context.Context) (*dashboard.ListResponse, error) {
	return &dashboard.ListResponse{Data: []any{}}, nil
}

func (s *DashboardServiceImpl) AttendanceLate(ctx context.Context) (*dashboard.ListResponse, error) {
	return &dashboard.ListResponse{Data: []any{}}, nil
}

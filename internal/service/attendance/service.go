package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/cache"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/utils"
)

// Transactor runs fn in one database transaction.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type AttendanceServiceImpl struct {
	tx             Transactor
	attendanceRepo attendance.AttendanceRepository
	cache          cache.Cache
	metrics        *metrics.Metrics
	now            func() time.Time
}

// NewAttendanceService builds the service. Writes drop the dashboard KPIs
// cached for the affected days; c may be nil.
func NewAttendanceService(
	tx Transactor,
	attendanceRepo attendance.AttendanceRepository,
	c cache.Cache,
	m *metrics.Metrics,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		tx:             tx,
		attendanceRepo: attendanceRepo,
		cache:          c,
		metrics:        m,
		now:            time.Now,
	}
}

// invalidateDays drops the cached dashboard KPIs of every given day.
func (s *AttendanceServiceImpl) invalidateDays(ctx context.Context, days ...time.Time) {
	keys := make([]string, 0, len(days))
	for _, d := range days {
		key := dashboard.KPICacheKey(d)
		if len(keys) == 0 || keys[len(keys)-1] != key {
			keys = append(keys, key)
		}
	}
	cache.Invalidate(ctx, s.cache, keys...)
}

// resolveEmployee picks the employee a check-in/out is for. Only admins may
// record attendance on behalf of someone else.
func resolveEmployee(ctx context.Context, requested string) (string, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return "", auth.ErrUnauthorized
	}
	if requested == "" || requested == claims.UserID {
		return claims.UserID, nil
	}
	if !claims.IsAdmin() {
		return "", attendance.ErrCheckForOtherEmployee
	}
	return requested, nil
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckRequest) (attendance.AttendanceResponse, error) {
	ts, err := req.Validate()
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	employeeID, err := resolveEmployee(ctx, req.EmployeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	at := s.now().UTC()
	if ts != nil {
		at = *ts
	}

	record, err := s.attendanceRepo.UpsertCheckIn(ctx, employeeID, utils.DateOnly(at), at)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return attendance.AttendanceResponse{}, attendance.ErrEmployeeNotFound
		}
		return attendance.AttendanceResponse{}, err
	}

	s.invalidateDays(ctx, record.AttDate)
	s.metrics.CheckIn()
	slog.Info("Attendance check-in", "employee_id", employeeID, "att_date", utils.FormatDate(record.AttDate), "check_in", at)
	return attendance.ToResponse(record), nil
}

// CheckOut implements attendance.AttendanceService. The record is locked so
// hours are computed against the committed check-in.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckRequest) (attendance.AttendanceResponse, error) {
	ts, err := req.Validate()
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	employeeID, err := resolveEmployee(ctx, req.EmployeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	at := s.now().UTC()
	if ts != nil {
		at = *ts
	}

	var record attendance.Attendance
	err = s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		current, err := s.attendanceRepo.GetForUpdate(txCtx, employeeID, utils.DateOnly(at))
		if err != nil {
			if errors.Is(err, attendance.ErrAttendanceNotFound) {
				return attendance.ErrAttendanceNotFoundToday
			}
			return err
		}

		// no check-in: check_out is stored and hours stay 0
		hours := attendance.DeriveHours(current.CheckIn, &at)

		record, err = s.attendanceRepo.SetCheckOut(txCtx, current.ID, at, hours)
		return err
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	s.metrics.CheckOut()
	slog.Info("Attendance check-out", "employee_id", employeeID, "att_date", utils.FormatDate(record.AttDate), "hours_worked", record.HoursWorked)
	return attendance.ToResponse(record), nil
}

// Create implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Create(ctx context.Context, req attendance.CreateAttendanceRequest) (attendance.AttendanceResponse, error) {
	a, err := req.Validate()
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	created, err := s.attendanceRepo.Create(ctx, a)
	if err != nil {
		return attendance.AttendanceResponse{}, mapWriteError(err)
	}
	s.invalidateDays(ctx, created.AttDate)
	return attendance.ToResponse(created), nil
}

// Get implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Get(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	a, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.ToResponse(a), nil
}

// List implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) List(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	filter.Normalize()

	records, total, err := s.attendanceRepo.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	data := make([]attendance.AttendanceResponse, 0, len(records))
	for _, a := range records {
		data = append(data, attendance.ToResponse(a))
	}

	return attendance.ListAttendanceResponse{
		Data:       data,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// Update implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Update(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	current, err := s.attendanceRepo.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	next, err := req.Apply(current)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	updated, err := s.attendanceRepo.Update(ctx, next)
	if err != nil {
		return attendance.AttendanceResponse{}, mapWriteError(err)
	}
	s.invalidateDays(ctx, current.AttDate, updated.AttDate)
	return attendance.ToResponse(updated), nil
}

// Delete implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Delete(ctx context.Context, id string) error {
	current, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.attendanceRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateDays(ctx, current.AttDate)
	return nil
}

func mapWriteError(err error) error {
	switch {
	case database.IsUniqueViolation(err):
		return attendance.ErrAttendanceExists
	case database.IsForeignKeyViolation(err):
		return attendance.ErrEmployeeNotFound
	}
	return fmt.Errorf("failed to save attendance: %w", err)
}

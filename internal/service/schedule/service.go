package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/database"
)

type ScheduleServiceImpl struct {
	shiftRepo         schedule.ShiftRepository
	employeeShiftRepo schedule.EmployeeShiftRepository
}

func NewScheduleService(
	shiftRepo schedule.ShiftRepository,
	employeeShiftRepo schedule.EmployeeShiftRepository,
) schedule.ScheduleService {
	return &ScheduleServiceImpl{
		shiftRepo:         shiftRepo,
		employeeShiftRepo: employeeShiftRepo,
	}
}

// ==================== SHIFT OPERATIONS ====================

// CreateShift implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) CreateShift(ctx context.Context, req schedule.CreateShiftRequest) (schedule.ShiftResponse, error) {
	// Validate request
	if err := req.Validate(); err != nil {
		return schedule.ShiftResponse{}, err
	}

	created, err := s.shiftRepo.Create(ctx, schedule.Shift{
		Name:         req.Name,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		BreakMinutes: req.BreakMinutes,
	})
	if err != nil {
		if database.IsUniqueViolation(err) {
			return schedule.ShiftResponse{}, schedule.ErrShiftNameExists
		}
		return schedule.ShiftResponse{}, fmt.Errorf("failed to create shift: %w", err)
	}

	slog.Info("Shift created", "shift_id", created.ID, "name", created.Name)
	return schedule.ToShiftResponse(created), nil
}

// GetShift implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) GetShift(ctx context.Context, id string) (schedule.ShiftResponse, error) {
	shift, err := s.shiftRepo.GetByID(ctx, id)
	if err != nil {
		return schedule.ShiftResponse{}, err
	}
	return schedule.ToShiftResponse(shift), nil
}

// ListShifts implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) ListShifts(ctx context.Context, filter schedule.ShiftFilter) (schedule.ListShiftResponse, error) {
	filter.Normalize()

	shifts, total, err := s.shiftRepo.List(ctx, filter)
	if err != nil {
		return schedule.ListShiftResponse{}, err
	}

	data := make([]schedule.ShiftResponse, 0, len(shifts))
	for _, shift := range shifts {
		data = append(data, schedule.ToShiftResponse(shift))
	}

	return schedule.ListShiftResponse{
		Data:       data,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// UpdateShift implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) UpdateShift(ctx context.Context, req schedule.UpdateShiftRequest) (schedule.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.ShiftResponse{}, err
	}

	updated, err := s.shiftRepo.Update(ctx, req)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return schedule.ShiftResponse{}, schedule.ErrShiftNameExists
		}
		return schedule.ShiftResponse{}, err
	}
	return schedule.ToShiftResponse(updated), nil
}

// DeleteShift implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) DeleteShift(ctx context.Context, id string) error {
	return s.shiftRepo.Delete(ctx, id)
}

// ==================== EMPLOYEE SHIFT OPERATIONS ====================

// AssignShift implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) AssignShift(ctx context.Context, req schedule.CreateEmployeeShiftRequest) (schedule.EmployeeShiftResponse, error) {
	start, end, err := req.Validate()
	if err != nil {
		return schedule.EmployeeShiftResponse{}, err
	}

	created, err := s.employeeShiftRepo.Create(ctx, schedule.EmployeeShift{
		EmployeeID: req.EmployeeID,
		ShiftID:    req.ShiftID,
		StartDate:  start,
		EndDate:    end,
	})
	if err != nil {
		return schedule.EmployeeShiftResponse{}, mapAssignmentError(err)
	}

	slog.Info("Shift assigned", "employee_id", created.EmployeeID, "shift_id", created.ShiftID, "start_date", created.StartDate)
	return schedule.ToEmployeeShiftResponse(created), nil
}

// GetEmployeeShift implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) GetEmployeeShift(ctx context.Context, id string) (schedule.EmployeeShiftResponse, error) {
	es, err := s.employeeShiftRepo.GetByID(ctx, id)
	if err != nil {
		return schedule.EmployeeShiftResponse{}, err
	}
	return schedule.ToEmployeeShiftResponse(es), nil
}

// ListEmployeeShifts implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) ListEmployeeShifts(ctx context.Context, filter schedule.EmployeeShiftFilter) (schedule.ListEmployeeShiftResponse, error) {
	filter.Normalize()

	assignments, total, err := s.employeeShiftRepo.List(ctx, filter)
	if err != nil {
		return schedule.ListEmployeeShiftResponse{}, err
	}

	data := make([]schedule.EmployeeShiftResponse, 0, len(assignments))
	for _, es := range assignments {
		data = append(data, schedule.ToEmployeeShiftResponse(es))
	}

	return schedule.ListEmployeeShiftResponse{
		Data:       data,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// UpdateEmployeeShift implements schedule.ScheduleService. Supplied fields are
// merged into the stored assignment and the merged range is re-checked.
func (s *ScheduleServiceImpl) UpdateEmployeeShift(ctx context.Context, req schedule.UpdateEmployeeShiftRequest) (schedule.EmployeeShiftResponse, error) {
	start, end, err := req.Validate()
	if err != nil {
		return schedule.EmployeeShiftResponse{}, err
	}

	current, err := s.employeeShiftRepo.GetByID(ctx, req.ID)
	if err != nil {
		return schedule.EmployeeShiftResponse{}, err
	}

	if req.EmployeeID != nil {
		current.EmployeeID = *req.EmployeeID
	}
	if req.ShiftID != nil {
		current.ShiftID = *req.ShiftID
	}
	if start != nil {
		current.StartDate = *start
	}
	if req.EndDate != nil {
		// an explicit empty end_date reopens the assignment
		current.EndDate = end
	}
	if current.EndDate != nil && current.EndDate.Before(current.StartDate) {
		return schedule.EmployeeShiftResponse{}, schedule.ErrInvalidDateRange
	}

	updated, err := s.employeeShiftRepo.Update(ctx, current)
	if err != nil {
		return schedule.EmployeeShiftResponse{}, mapAssignmentError(err)
	}
	return schedule.ToEmployeeShiftResponse(updated), nil
}

// DeleteEmployeeShift implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) DeleteEmployeeShift(ctx context.Context, id string) error {
	return s.employeeShiftRepo.Delete(ctx, id)
}

func mapAssignmentError(err error) error {
	if database.IsForeignKeyViolation(err) {
		if strings.Contains(database.ConstraintName(err), "shift_id") {
			return schedule.ErrShiftNotFound
		}
		return schedule.ErrEmployeeNotFound
	}
	return err
}

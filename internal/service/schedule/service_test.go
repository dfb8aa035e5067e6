package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/validator"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeShiftRepo struct {
	schedule.ShiftRepository
	createErr error
}

func (f *fakeShiftRepo) Create(_ context.Context, s schedule.Shift) (schedule.Shift, error) {
	if f.createErr != nil {
		return schedule.Shift{}, f.createErr
	}
	s.ID = "shift-1"
	return s, nil
}

type fakeEmployeeShiftRepo struct {
	schedule.EmployeeShiftRepository
	items     map[string]schedule.EmployeeShift
	createErr error
}

func (f *fakeEmployeeShiftRepo) Create(_ context.Context, es schedule.EmployeeShift) (schedule.EmployeeShift, error) {
	if f.createErr != nil {
		return schedule.EmployeeShift{}, f.createErr
	}
	es.ID = "es-1"
	f.items[es.ID] = es
	return es, nil
}

func (f *fakeEmployeeShiftRepo) GetByID(_ context.Context, id string) (schedule.EmployeeShift, error) {
	es, ok := f.items[id]
	if !ok {
		return schedule.EmployeeShift{}, schedule.ErrEmployeeShiftNotFound
	}
	return es, nil
}

func (f *fakeEmployeeShiftRepo) Update(_ context.Context, es schedule.EmployeeShift) (schedule.EmployeeShift, error) {
	f.items[es.ID] = es
	return es, nil
}

const (
	employeeID = "0b7c8a5e-3f7a-4d8e-9a51-3a2b9c1d0e4f"
	shiftID    = "6f1d2c3b-4a5e-4f60-8b7a-9c8d7e6f5a4b"
)

func newTestScheduleService() (schedule.ScheduleService, *fakeShiftRepo, *fakeEmployeeShiftRepo) {
	shifts := &fakeShiftRepo{}
	assignments := &fakeEmployeeShiftRepo{items: make(map[string]schedule.EmployeeShift)}
	return NewScheduleService(shifts, assignments), shifts, assignments
}

func TestScheduleService_CreateShift(t *testing.T) {
	svc, shifts, _ := newTestScheduleService()

	res, err := svc.CreateShift(context.Background(), schedule.CreateShiftRequest{Name: "Morning", StartTime: "08:00", EndTime: "16:00", BreakMinutes: 60})
	require.NoError(t, err)
	assert.Equal(t, "08:00", res.StartTime)

	_, err = svc.CreateShift(context.Background(), schedule.CreateShiftRequest{Name: "Night", StartTime: "25:00", EndTime: "06:00", BreakMinutes: -5})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "must be in HH:mm format", verrs.ToMap()["start_time"])
	assert.Contains(t, verrs.ToMap(), "break_minutes")

	shifts.createErr = &pgconn.PgError{Code: "23505", ConstraintName: "shifts_name_key"}
	_, err = svc.CreateShift(context.Background(), schedule.CreateShiftRequest{Name: "Morning", StartTime: "08:00", EndTime: "16:00"})
	assert.ErrorIs(t, err, schedule.ErrShiftNameExists)
}

func TestScheduleService_AssignShift(t *testing.T) {
	svc, _, assignments := newTestScheduleService()

	end := "2024-03-31"
	res, err := svc.AssignShift(context.Background(), schedule.CreateEmployeeShiftRequest{
		EmployeeID: employeeID, ShiftID: shiftID, StartDate: "2024-03-01", EndDate: &end,
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", res.StartDate)
	require.NotNil(t, res.EndDate)
	assert.Equal(t, "2024-03-31", *res.EndDate)

	before := "2024-02-01"
	_, err = svc.AssignShift(context.Background(), schedule.CreateEmployeeShiftRequest{
		EmployeeID: employeeID, ShiftID: shiftID, StartDate: "2024-03-01", EndDate: &before,
	})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "must not be before start_date", verrs.ToMap()["end_date"])

	assignments.createErr = &pgconn.PgError{Code: "23503", ConstraintName: "employee_shifts_shift_id_fkey"}
	_, err = svc.AssignShift(context.Background(), schedule.CreateEmployeeShiftRequest{EmployeeID: employeeID, ShiftID: shiftID, StartDate: "2024-03-01"})
	assert.ErrorIs(t, err, schedule.ErrShiftNotFound)

	assignments.createErr = &pgconn.PgError{Code: "23503", ConstraintName: "employee_shifts_employee_id_fkey"}
	_, err = svc.AssignShift(context.Background(), schedule.CreateEmployeeShiftRequest{EmployeeID: employeeID, ShiftID: shiftID, StartDate: "2024-03-01"})
	assert.ErrorIs(t, err, schedule.ErrEmployeeNotFound)
}

func TestScheduleService_UpdateEmployeeShift_ChecksMergedRange(t *testing.T) {
	svc, _, assignments := newTestScheduleService()
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	assignments.items["es-1"] = schedule.EmployeeShift{
		ID: "es-1", EmployeeID: employeeID, ShiftID: shiftID,
		StartDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), EndDate: &end,
	}

	lateStart := "2024-04-15"
	_, err := svc.UpdateEmployeeShift(context.Background(), schedule.UpdateEmployeeShiftRequest{ID: "es-1", StartDate: &lateStart})
	assert.ErrorIs(t, err, schedule.ErrInvalidDateRange)

	open := ""
	res, err := svc.UpdateEmployeeShift(context.Background(), schedule.UpdateEmployeeShiftRequest{ID: "es-1", StartDate: &lateStart, EndDate: &open})
	require.NoError(t, err)
	assert.Equal(t, "2024-04-15", res.StartDate)
	assert.Nil(t, res.EndDate)

	_, err = svc.UpdateEmployeeShift(context.Background(), schedule.UpdateEmployeeShiftRequest{ID: "missing"})
	assert.ErrorIs(t, err, schedule.ErrEmployeeShiftNotFound)
}

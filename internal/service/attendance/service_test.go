package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/utils"
	"github.com/go-chi/jwtauth/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	employeeID = "0b7c8a5e-3f7a-4d8e-9a51-3a2b9c1d0e4f"
	otherID    = "6f1d2c3b-4a5e-4f60-8b7a-9c8d7e6f5a4b"
)

type recordKey struct {
	employeeID string
	date       string
}

// fakeAttendanceRepo keeps one record per (employee, date) like the unique constraint.
type fakeAttendanceRepo struct {
	attendance.AttendanceRepository
	records map[recordKey]attendance.Attendance
	byID    map[string]recordKey
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{
		records: make(map[recordKey]attendance.Attendance),
		byID:    make(map[string]recordKey),
	}
}

func (f *fakeAttendanceRepo) UpsertCheckIn(_ context.Context, empID string, date time.Time, checkIn time.Time) (attendance.Attendance, error) {
	key := recordKey{empID, utils.FormatDate(date)}
	rec, ok := f.records[key]
	if !ok {
		rec = attendance.Attendance{ID: "att-" + key.date + "-" + empID, EmployeeID: empID, AttDate: date, Status: attendance.StatusPresent}
		f.byID[rec.ID] = key
	}
	rec.CheckIn = &checkIn
	f.records[key] = rec
	return rec, nil
}

func (f *fakeAttendanceRepo) GetForUpdate(_ context.Context, empID string, date time.Time) (attendance.Attendance, error) {
	rec, ok := f.records[recordKey{empID, utils.FormatDate(date)}]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return rec, nil
}

func (f *fakeAttendanceRepo) SetCheckOut(_ context.Context, id string, checkOut time.Time, hours float64) (attendance.Attendance, error) {
	key := f.byID[id]
	rec := f.records[key]
	rec.CheckOut = &checkOut
	rec.HoursWorked = hours
	f.records[key] = rec
	return rec, nil
}

func (f *fakeAttendanceRepo) GetByID(_ context.Context, id string) (attendance.Attendance, error) {
	key, ok := f.byID[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return f.records[key], nil
}

func (f *fakeAttendanceRepo) Update(_ context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	f.records[f.byID[a.ID]] = a
	return a, nil
}

func (f *fakeAttendanceRepo) Delete(_ context.Context, id string) error {
	key, ok := f.byID[id]
	if !ok {
		return attendance.ErrAttendanceNotFound
	}
	delete(f.records, key)
	delete(f.byID, id)
	return nil
}

// fakeCache records invalidated keys.
type fakeCache struct {
	deleted   []string
	deleteErr error
}

func (f *fakeCache) Get(context.Context, string, interface{}) (bool, error) { return false, nil }
func (f *fakeCache) Set(context.Context, string, interface{}, time.Duration) error {
	return nil
}
func (f *fakeCache) Delete(_ context.Context, keys ...string) error {
	f.deleted = append(f.deleted, keys...)
	return f.deleteErr
}
func (f *fakeCache) Ping(context.Context) error { return nil }
func (f *fakeCache) Close() error               { return nil }

type fakeTransactor struct {
	calls int
}

func (f *fakeTransactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

func contextFor(t *testing.T, userID string, role employee.Role) context.Context {
	t.Helper()
	svc := jwt.NewJWTService("test-secret", "1h")
	tokenString, _, err := svc.GenerateAccessToken(userID, "user@example.com", role)
	require.NoError(t, err)
	token, err := jwtauth.VerifyToken(svc.JWTAuth(), tokenString)
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func ts(s string) *string { return &s }

func newTestService(now time.Time) (*AttendanceServiceImpl, *fakeAttendanceRepo, *fakeTransactor, *metrics.Metrics) {
	repo := newFakeAttendanceRepo()
	tx := &fakeTransactor{}
	m := metrics.New()
	svc := NewAttendanceService(tx, repo, &fakeCache{}, m).(*AttendanceServiceImpl)
	svc.now = func() time.Time { return now }
	return svc, repo, tx, m
}

func TestCheckInThenCheckOut_DerivesHours(t *testing.T) {
	svc, _, tx, m := newTestService(time.Now())
	ctx := contextFor(t, employeeID, employee.RoleEmployee)

	in, err := svc.CheckIn(ctx, attendance.CheckRequest{Timestamp: ts("2024-05-02T08:00:00Z")})
	require.NoError(t, err)
	assert.Equal(t, "2024-05-02", in.AttDate)
	assert.Equal(t, "P", in.Status)
	assert.Equal(t, employeeID, in.EmployeeID)

	out, err := svc.CheckOut(ctx, attendance.CheckRequest{Timestamp: ts("2024-05-02T16:30:00Z")})
	require.NoError(t, err)
	assert.Equal(t, 8.5, out.HoursWorked)
	assert.Equal(t, 1, tx.calls)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.AttendanceEvents.WithLabelValues("check_in")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AttendanceEvents.WithLabelValues("check_out")))
}

func TestCheckIn_SameDayKeepsOneRecord(t *testing.T) {
	svc, repo, _, _ := newTestService(time.Now())
	ctx := contextFor(t, employeeID, employee.RoleEmployee)

	_, err := svc.CheckIn(ctx, attendance.CheckRequest{Timestamp: ts("2024-05-02T08:00:00Z")})
	require.NoError(t, err)
	second, err := svc.CheckIn(ctx, attendance.CheckRequest{Timestamp: ts("2024-05-02T09:15:00Z")})
	require.NoError(t, err)

	assert.Len(t, repo.records, 1)
	assert.Equal(t, time.Date(2024, 5, 2, 9, 15, 0, 0, time.UTC), second.CheckIn.UTC())
}

func TestCheckIn_DefaultsToNow(t *testing.T) {
	now := time.Date(2024, 7, 1, 7, 45, 0, 0, time.UTC)
	svc, _, _, _ := newTestService(now)

	res, err := svc.CheckIn(contextFor(t, employeeID, employee.RoleEmployee), attendance.CheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, "2024-07-01", res.AttDate)
	assert.Equal(t, now, *res.CheckIn)
}

func TestCheckOut_WithoutRecord(t *testing.T) {
	svc, _, _, _ := newTestService(time.Now())

	_, err := svc.CheckOut(contextFor(t, employeeID, employee.RoleEmployee), attendance.CheckRequest{Timestamp: ts("2024-05-02T16:00:00Z")})
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFoundToday)
}

func TestCheckOut_BeforeCheckInClampsToZero(t *testing.T) {
	svc, _, _, _ := newTestService(time.Now())
	ctx := contextFor(t, employeeID, employee.RoleEmployee)

	_, err := svc.CheckIn(ctx, attendance.CheckRequest{Timestamp: ts("2024-05-02T12:00:00Z")})
	require.NoError(t, err)
	out, err := svc.CheckOut(ctx, attendance.CheckRequest{Timestamp: ts("2024-05-02T10:00:00Z")})
	require.NoError(t, err)
	assert.Equal(t, 0.0, out.HoursWorked)
}

func TestCheckIn_ForAnotherEmployee(t *testing.T) {
	svc, _, _, _ := newTestService(time.Now())

	_, err := svc.CheckIn(contextFor(t, employeeID, employee.RoleEmployee), attendance.CheckRequest{EmployeeID: otherID})
	assert.ErrorIs(t, err, attendance.ErrCheckForOtherEmployee)

	res, err := svc.CheckIn(contextFor(t, employeeID, employee.RoleAdmin), attendance.CheckRequest{EmployeeID: otherID})
	require.NoError(t, err)
	assert.Equal(t, otherID, res.EmployeeID)
}

func TestCheckIn_RequiresClaims(t *testing.T) {
	svc, _, _, _ := newTestService(time.Now())

	_, err := svc.CheckIn(context.Background(), attendance.CheckRequest{})
	assert.ErrorIs(t, err, auth.ErrUnauthorized)
}

func TestUpdate_RederivesHours(t *testing.T) {
	svc, _, _, _ := newTestService(time.Now())
	ctx := contextFor(t, employeeID, employee.RoleEmployee)

	in, err := svc.CheckIn(ctx, attendance.CheckRequest{Timestamp: ts("2024-05-02T08:00:00Z")})
	require.NoError(t, err)
	_, err = svc.CheckOut(ctx, attendance.CheckRequest{Timestamp: ts("2024-05-02T16:00:00Z")})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, attendance.UpdateAttendanceRequest{ID: in.ID, CheckOut: ts("2024-05-02T17:20:00Z")})
	require.NoError(t, err)
	assert.Equal(t, 9.33, updated.HoursWorked)

	manual := 4.0
	updated, err = svc.Update(ctx, attendance.UpdateAttendanceRequest{ID: in.ID, HoursWorked: &manual})
	require.NoError(t, err)
	assert.Equal(t, 4.0, updated.HoursWorked)

	_, err = svc.Update(ctx, attendance.UpdateAttendanceRequest{ID: "missing"})
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func TestWrites_InvalidateDashboardKPIs(t *testing.T) {
	svc, _, _, _ := newTestService(time.Now())
	c := svc.cache.(*fakeCache)
	ctx := contextFor(t, employeeID, employee.RoleAdmin)

	in, err := svc.CheckIn(ctx, attendance.CheckRequest{Timestamp: ts("2025-01-10T09:05:00Z")})
	require.NoError(t, err)
	assert.Equal(t, []string{"dashboard:kpis:2025-01-10"}, c.deleted)

	c.deleted = nil
	_, err = svc.Update(ctx, attendance.UpdateAttendanceRequest{ID: in.ID, CheckOut: ts("2025-01-10T17:32:00Z")})
	require.NoError(t, err)
	assert.Equal(t, []string{"dashboard:kpis:2025-01-10"}, c.deleted)

	c.deleted = nil
	_, err = svc.Update(ctx, attendance.UpdateAttendanceRequest{ID: in.ID, AttDate: ts("2025-01-11")})
	require.NoError(t, err)
	assert.Equal(t, []string{"dashboard:kpis:2025-01-10", "dashboard:kpis:2025-01-11"}, c.deleted)

	c.deleted = nil
	require.NoError(t, svc.Delete(ctx, in.ID))
	assert.Equal(t, []string{"dashboard:kpis:2025-01-11"}, c.deleted)

	c.deleted = nil
	assert.ErrorIs(t, svc.Delete(ctx, in.ID), attendance.ErrAttendanceNotFound)
	assert.Empty(t, c.deleted)
}

func TestCheckIn_CacheFailureDoesNotFail(t *testing.T) {
	svc, repo, _, _ := newTestService(time.Now())
	svc.cache = &fakeCache{deleteErr: errors.New("redis down")}

	_, err := svc.CheckIn(contextFor(t, employeeID, employee.RoleEmployee), attendance.CheckRequest{Timestamp: ts("2024-05-02T08:00:00Z")})
	require.NoError(t, err)
	assert.Len(t, repo.records, 1)
}

func TestCheckIn_NilCache(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := NewAttendanceService(&fakeTransactor{}, repo, nil, metrics.New())

	_, err := svc.CheckIn(contextFor(t, employeeID, employee.RoleEmployee), attendance.CheckRequest{Timestamp: ts("2024-05-02T08:00:00Z")})
	require.NoError(t, err)
	assert.Len(t, repo.records, 1)
}

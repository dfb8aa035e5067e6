package attendance

import "context"

type AttendanceService interface {
	CheckIn(ctx context.Context, req CheckRequest) (AttendanceResponse, error)
	CheckOut(ctx context.Context, req CheckRequest) (AttendanceResponse, error)

	Create(ctx context.Context, req CreateAttendanceRequest) (AttendanceResponse, error)
	Get(ctx context.Context, id string) (AttendanceResponse, error)
	List(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)
	Update(ctx context.Context, req UpdateAttendanceRequest) (AttendanceResponse, error)
	Delete(ctx context.Context, id string) error
}

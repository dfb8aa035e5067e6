package attendance

import "errors"

var (
	ErrAttendanceNotFound      = errors.New("attendance not found")
	ErrAttendanceNotFoundToday = errors.New("attendance not found for today")
	ErrAttendanceExists        = errors.New("attendance already recorded for this date")
	ErrEmployeeNotFound        = errors.New("employee not found")
	ErrCheckForOtherEmployee   = errors.New("cannot record attendance for another employee")
)

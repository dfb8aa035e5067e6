package attendance

import "time"

type Status string

const (
	StatusPresent Status = "P"
	StatusAbsent  Status = "A"
	StatusLeave   Status = "L"
	StatusHoliday Status = "H"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLeave, StatusHoliday:
		return true
	}
	return false
}

// Attendance is the single record of an employee for one calendar date.
type Attendance struct {
	ID          string
	EmployeeID  string
	AttDate     time.Time
	Status      Status
	CheckIn     *time.Time
	CheckOut    *time.Time
	HoursWorked float64
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined fields
	EmployeeCode string
	EmployeeName string
}

package schedule

import "time"

// Shift is a named working window expressed as HH:mm wall-clock times.
type Shift struct {
	ID           string
	Name         string
	StartTime    string
	EndTime      string
	BreakMinutes int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// EmployeeShift assigns a shift to an employee from StartDate until EndDate
// inclusive. A nil EndDate is open-ended.
type EmployeeShift struct {
	ID         string
	EmployeeID string
	ShiftID    string
	StartDate  time.Time
	EndDate    *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Joined fields
	EmployeeCode string
	EmployeeName string
	ShiftName    string
	ShiftStart   string
	ShiftEnd     string
}

// ActiveOn reports whether the assignment covers day.
func (es EmployeeShift) ActiveOn(day time.Time) bool {
	if es.StartDate.After(day) {
		return false
	}
	return es.EndDate == nil || !es.EndDate.Before(day)
}

package designation

import "time"

type Designation struct {
	ID           string
	DepartmentID string
	Title        string
	Level        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Joined fields
	DepartmentName string
}

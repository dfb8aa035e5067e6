package employee

import "time"

// Employee is both the personnel record and the login identity.
type Employee struct {
	ID               string
	EmployeeCode     string
	FirstName        string
	LastName         string
	Email            string
	Phone            *string
	DepartmentID     *string
	DesignationID    *string
	HireDate         *time.Time
	EmploymentStatus EmploymentStatus
	PasswordHash     string
	Role             Role
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Joined fields
	DepartmentName  *string
	DesignationName *string
}

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "ACTIVE"
	EmploymentStatusInactive   EmploymentStatus = "INACTIVE"
	EmploymentStatusOnLeave    EmploymentStatus = "ON_LEAVE"
	EmploymentStatusTerminated EmploymentStatus = "TERMINATED"
)

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleEmployee Role = "EMPLOYEE"
)

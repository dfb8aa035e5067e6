package fixtures

import (
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/master/department"
	"github.com/cmlabs-hris/ems-backend-go/internal/domain/schedule"
)

func strPtr(s string) *string { return &s }

// AdminDepartment is the department the bootstrap administrator is placed in.
const AdminDepartment = "Administration"

// ==========================================
// DEFAULT DEPARTMENTS
// ==========================================

// GetDefaultDepartments returns the departments created on an empty install
func GetDefaultDepartments() []department.Department {
	return []department.Department{
		{Name: AdminDepartment, Description: strPtr("System administration and HR operations")},
		{Name: "Engineering", Description: strPtr("Product development and infrastructure")},
		{Name: "Finance", Description: strPtr("Accounting, payroll and budgeting")},
		{Name: "Operations", Description: strPtr("Day-to-day business operations")},
		{Name: "Sales", Description: strPtr("Sales and customer accounts")},
	}
}

// ==========================================
// DEFAULT SHIFTS
// ==========================================

// GetDefaultShifts returns the shifts created on an empty install
func GetDefaultShifts() []schedule.Shift {
	return []schedule.Shift{
		{Name: "Regular", StartTime: "09:00", EndTime: "17:00", BreakMinutes: 60},
		{Name: "Morning", StartTime: "06:00", EndTime: "14:00", BreakMinutes: 30},
		{Name: "Night", StartTime: "22:00", EndTime: "06:00", BreakMinutes: 30},
	}
}

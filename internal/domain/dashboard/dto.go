package dashboard

import (
	"time"

	"github.com/cmlabs-hris/ems-backend-go/internal/domain/attendance"
	"github.com/shopspring/decimal"
)

// ========== KPIs ==========

// KPIResponse holds the headline numbers for a single day
type KPIResponse struct {
	TotalActiveEmployees int64 `json:"totalActiveEmployees"`
	PresentToday         int64 `json:"presentToday"`
}

// ========== SERIES ==========

// CountPoint is one bucket of a count series. X is YYYY-MM-DD.
type CountPoint struct {
	X string `json:"x"`
	Y int64  `json:"y"`
}

// AmountPoint is one bucket of a money series. X is YYYY-MM.
type AmountPoint struct {
	X string          `json:"x"`
	Y decimal.Decimal `json:"y"`
}

type AttendanceTrendResponse struct {
	Series []CountPoint `json:"series"`
}

type PayrollTrendResponse struct {
	Series []AmountPoint `json:"series"`
}

// ========== BREAKDOWNS ==========

type LabelValue struct {
	Label string `json:"label"`
	Value int64  `json:"value"`
}

type LabelAmount struct {
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
}

type BreakdownResponse struct {
	Breakdown []LabelValue `json:"breakdown"`
}

type AmountBreakdownResponse struct {
	Breakdown []LabelAmount `json:"breakdown"`
}

// ========== PAYROLL COVERAGE ==========

type PayrollCoverageResponse struct {
	TotalEmployees int64   `json:"totalEmployees"`
	Processed      int64   `json:"processed"`
	Coverage       float64 `json:"coverage"`
}

// ========== EMPLOYEE SNAPSHOT ==========

type SnapshotRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

type EmployeeSnapshotResponse struct {
	EmployeeID string                          `json:"employeeId"`
	Range      SnapshotRange                   `json:"range"`
	Attendance []attendance.AttendanceResponse `json:"attendance"`
}

// ========== PLACEHOLDERS ==========

// ListResponse wraps the placeholder widgets that have no data source yet.
type ListResponse struct {
	Data []any `json:"data"`
}

type CoverageResponse struct {
	Coverage []any `json:"coverage"`
}

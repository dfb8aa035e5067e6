package dashboard

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/utils"
)

// HeadcountCacheKey holds the cached department headcount breakdown.
const HeadcountCacheKey = "dashboard:headcount"

// KPICacheKey is the cache key of the KPIs for the calendar day of day.
func KPICacheKey(day time.Time) string {
	return "dashboard:kpis:" + utils.FormatDate(utils.DateOnly(day))
}

// PayrollTrendCacheKey is the cache key of the monthly net pay series of year.
func PayrollTrendCacheKey(year int) string {
	return fmt.Sprintf("dashboard:payroll-trend:%d", year)
}

package leave

import (
	"time"

	"github.com/kelolahr/hrms-backend-go/internal/domain/leave"
	"github.com/shopspring/decimal"
)

var (
	twelve = decimal.NewFromInt(12)
	four   = decimal.NewFromInt(4)
)

// PeriodCredit computes the accrual credit for one employee's leave type over
// one period. Employees hired mid-period get a day-count pro-ration; employees
// hired after the period end get nothing. Results round to 2 decimal places.
func PeriodCredit(annualEntitlement decimal.Decimal, method leave.AccrualMethod, periodStart, periodEnd, hireDate time.Time) decimal.Decimal {
	periodStart = truncateDay(periodStart)
	periodEnd = truncateDay(periodEnd)
	hireDate = truncateDay(hireDate)

	if hireDate.After(periodEnd) {
		return decimal.Zero
	}

	rate := annualEntitlement
	switch method {
	case leave.AccrualMethodMonthly:
		rate = annualEntitlement.Div(twelve)
	case leave.AccrualMethodQuarterly:
		rate = annualEntitlement.Div(four)
	}

	if hireDate.After(periodStart) {
		daysInPeriod := daysInclusive(periodStart, periodEnd)
		daysEmployed := daysInclusive(hireDate, periodEnd)
		rate = rate.
			Mul(decimal.NewFromInt(int64(daysEmployed))).
			Div(decimal.NewFromInt(int64(daysInPeriod)))
	}

	return rate.Round(2)
}

func daysInclusive(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

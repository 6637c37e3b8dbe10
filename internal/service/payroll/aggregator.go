package payroll

import (
	"fmt"
	"time"

	"github.com/kelolahr/hrms-backend-go/internal/domain/attendance"
	"github.com/kelolahr/hrms-backend-go/internal/domain/payroll"
)

// Aggregator folds classified attendance days into per-employee payroll
// summaries using the company's day-type mappings. It is deterministic and
// storage-free; the service layer feeds it data and persists the result.
type Aggregator struct {
	mappings map[attendance.DayStatus]payroll.DayTypeMapping
}

func NewAggregator(rows []payroll.DayTypeMapping) *Aggregator {
	m := make(map[attendance.DayStatus]payroll.DayTypeMapping, len(rows))
	for _, row := range rows {
		m[row.Status] = row
	}
	return &Aggregator{mappings: m}
}

// Aggregate sums one employee's days for a period. Any day whose status has no
// mapping aborts the whole aggregation with ErrUnmappedStatus; a partial
// summary is never produced.
func (a *Aggregator) Aggregate(employeeID, companyID string, periodStart, periodEnd time.Time, days []attendance.DailyAttendance) (payroll.Summary, error) {
	summary := payroll.Summary{
		EmployeeID:  employeeID,
		CompanyID:   companyID,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		GeneratedAt: time.Now().UTC(),
	}

	for _, day := range days {
		m, ok := a.mappings[day.Status]
		if !ok {
			return payroll.Summary{}, fmt.Errorf("%w: status %q on %s for employee %s",
				payroll.ErrUnmappedStatus, day.Status, day.Date.Format("2006-01-02"), employeeID)
		}

		switch {
		case m.IsPaid():
			summary.TotalPaidDays = summary.TotalPaidDays.Add(m.Multiplier)
		case m.IsLOP():
			summary.TotalLopDays = summary.TotalLopDays.Add(m.Multiplier)
		}

		summary.TotalOtMinutes += day.OvertimeMinutes
		switch day.Status {
		case attendance.StatusWeeklyOff:
			summary.TotalWeeklyOffDays++
		case attendance.StatusHoliday:
			summary.TotalHolidayDays++
		}
	}

	return summary, nil
}

package payroll

import (
	"strings"
	"time"

	"github.com/kelolahr/hrms-backend-go/internal/domain/attendance"
	"github.com/shopspring/decimal"
)

// DayTypeMapping maps an attendance status to a payroll day type and a
// day-count weight. Every status in use must have a row; a missing row is an
// aggregation error, never a silent default.
type DayTypeMapping struct {
	ID             string
	CompanyID      string
	Status         attendance.DayStatus
	PayrollDayType string
	Multiplier     decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsPaid reports whether the day type counts toward paid days.
func (m DayTypeMapping) IsPaid() bool {
	return strings.HasPrefix(m.PayrollDayType, "Paid_")
}

// IsLOP reports whether the day type counts toward loss-of-pay days.
func (m DayTypeMapping) IsLOP() bool {
	return strings.HasPrefix(m.PayrollDayType, "LOP_")
}

// Summary is the per-employee day-count aggregation feeding payroll run lines.
type Summary struct {
	ID          string
	EmployeeID  string
	CompanyID   string
	PeriodStart time.Time
	PeriodEnd   time.Time

	TotalPaidDays      decimal.Decimal
	TotalLopDays       decimal.Decimal
	TotalOtMinutes     int
	TotalWeeklyOffDays int
	TotalHolidayDays   int

	GeneratedAt time.Time

	// Joined fields
	EmployeeName *string
}

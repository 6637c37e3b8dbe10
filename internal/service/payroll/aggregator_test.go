package payroll

import (
	"testing"
	"time"

	"github.com/kelolahr/hrms-backend-go/internal/domain/attendance"
	"github.com/kelolahr/hrms-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMappings() []payroll.DayTypeMapping {
	return []payroll.DayTypeMapping{
		{Status: attendance.StatusPresent, PayrollDayType: "Paid_Regular", Multiplier: decimal.NewFromInt(1)},
		{Status: attendance.StatusWeeklyOff, PayrollDayType: "Paid_WeeklyOff", Multiplier: decimal.NewFromInt(1)},
		{Status: attendance.StatusHoliday, PayrollDayType: "Paid_Holiday", Multiplier: decimal.NewFromInt(1)},
		{Status: attendance.StatusLeave, PayrollDayType: "Paid_Leave", Multiplier: decimal.NewFromInt(1)},
		{Status: attendance.StatusHalfDay, PayrollDayType: "Paid_HalfDay", Multiplier: decimal.RequireFromString("0.5")},
		{Status: attendance.StatusAbsent, PayrollDayType: "LOP_Absent", Multiplier: decimal.NewFromInt(1)},
	}
}

func days(statuses ...attendance.DayStatus) []attendance.DailyAttendance {
	out := make([]attendance.DailyAttendance, 0, len(statuses))
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i, s := range statuses {
		out = append(out, attendance.DailyAttendance{
			Status: s,
			Date:   day.AddDate(0, 0, i),
		})
	}
	return out
}

func TestAggregate(t *testing.T) {
	agg := NewAggregator(testMappings())

	var statuses []attendance.DayStatus
	for i := 0; i < 20; i++ {
		statuses = append(statuses, attendance.StatusPresent)
	}
	statuses = append(statuses,
		attendance.StatusWeeklyOff, attendance.StatusWeeklyOff,
		attendance.StatusHalfDay, attendance.StatusAbsent)

	summary, err := agg.Aggregate("emp-1", "co-1",
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		days(statuses...))
	require.NoError(t, err)

	assert.True(t, summary.TotalPaidDays.Equal(decimal.RequireFromString("22.5")),
		"paid %s", summary.TotalPaidDays)
	assert.True(t, summary.TotalLopDays.Equal(decimal.NewFromInt(1)),
		"lop %s", summary.TotalLopDays)
	assert.Equal(t, 2, summary.TotalWeeklyOffDays)
	assert.Equal(t, 0, summary.TotalHolidayDays)
}

func TestAggregate_SumsOvertime(t *testing.T) {
	agg := NewAggregator(testMappings())

	in := days(attendance.StatusPresent, attendance.StatusPresent)
	in[0].OvertimeMinutes = 45
	in[1].OvertimeMinutes = 30

	summary, err := agg.Aggregate("emp-1", "co-1",
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC), in)
	require.NoError(t, err)
	assert.Equal(t, 75, summary.TotalOtMinutes)
}

func TestAggregate_UnmappedStatusAborts(t *testing.T) {
	// No mapping for work_from_home.
	agg := NewAggregator(testMappings())

	_, err := agg.Aggregate("emp-1", "co-1",
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		days(attendance.StatusPresent, attendance.StatusWorkFromHome))
	assert.ErrorIs(t, err, payroll.ErrUnmappedStatus)
}

func TestAggregate_EmptyPeriod(t *testing.T) {
	agg := NewAggregator(testMappings())

	summary, err := agg.Aggregate("emp-1", "co-1",
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)
	assert.True(t, summary.TotalPaidDays.IsZero())
	assert.True(t, summary.TotalLopDays.IsZero())
}

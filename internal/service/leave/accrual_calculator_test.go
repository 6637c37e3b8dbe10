package leave

import (
	"testing"
	"time"

	"github.com/kelolahr/hrms-backend-go/internal/domain/leave"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPeriodCredit_Monthly(t *testing.T) {
	annual := decimal.NewFromInt(24)
	hired := date(2020, 1, 1)

	got := PeriodCredit(annual, leave.AccrualMethodMonthly,
		date(2026, 3, 1), date(2026, 3, 31), hired)
	assert.True(t, got.Equal(decimal.NewFromInt(2)), "got %s", got)
}

func TestPeriodCredit_Quarterly(t *testing.T) {
	annual := decimal.NewFromInt(24)
	hired := date(2020, 1, 1)

	got := PeriodCredit(annual, leave.AccrualMethodQuarterly,
		date(2026, 1, 1), date(2026, 3, 31), hired)
	assert.True(t, got.Equal(decimal.NewFromInt(6)), "got %s", got)
}

func TestPeriodCredit_Yearly(t *testing.T) {
	annual := decimal.NewFromInt(24)
	hired := date(2020, 1, 1)

	got := PeriodCredit(annual, leave.AccrualMethodYearly,
		date(2026, 1, 1), date(2026, 12, 31), hired)
	assert.True(t, got.Equal(decimal.NewFromInt(24)), "got %s", got)
}

func TestPeriodCredit_HiredMidPeriodIsProRated(t *testing.T) {
	annual := decimal.NewFromInt(24)

	// Hired on the 16th of a 30-day month: 15 of 30 days employed.
	got := PeriodCredit(annual, leave.AccrualMethodMonthly,
		date(2026, 4, 1), date(2026, 4, 30), date(2026, 4, 16))
	assert.True(t, got.Equal(decimal.NewFromInt(1)), "got %s", got)
}

func TestPeriodCredit_HiredAfterPeriodGetsNothing(t *testing.T) {
	annual := decimal.NewFromInt(24)

	got := PeriodCredit(annual, leave.AccrualMethodMonthly,
		date(2026, 3, 1), date(2026, 3, 31), date(2026, 4, 1))
	assert.True(t, got.IsZero(), "got %s", got)
}

func TestPeriodCredit_HiredOnPeriodStartGetsFullCredit(t *testing.T) {
	annual := decimal.NewFromInt(24)

	got := PeriodCredit(annual, leave.AccrualMethodMonthly,
		date(2026, 3, 1), date(2026, 3, 31), date(2026, 3, 1))
	assert.True(t, got.Equal(decimal.NewFromInt(2)), "got %s", got)
}

func TestPeriodCredit_RoundsToTwoPlaces(t *testing.T) {
	annual := decimal.NewFromInt(20)

	// 20/12 = 1.6666... rounds to 1.67.
	got := PeriodCredit(annual, leave.AccrualMethodMonthly,
		date(2026, 3, 1), date(2026, 3, 31), date(2020, 1, 1))
	assert.True(t, got.Equal(decimal.RequireFromString("1.67")), "got %s", got)
}

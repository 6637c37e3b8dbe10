package leave

import (
	"math/rand"
	"testing"
	"time"

	"github.com/kelolahr/hrms-backend-go/internal/domain/leave"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func entry(amount string, effective time.Time) leave.BalanceChangeLog {
	return leave.BalanceChangeLog{
		ChangeAmount:  decimal.RequireFromString(amount),
		EffectiveDate: effective,
	}
}

func TestReplayBalance(t *testing.T) {
	logs := []leave.BalanceChangeLog{
		entry("2", date(2026, 1, 31)),    // accrual
		entry("2", date(2026, 2, 28)),    // accrual
		entry("-1.5", date(2026, 2, 10)), // availed
		entry("5", date(2026, 3, 1)),     // opening adjustment
	}

	got := ReplayBalance(logs, date(2026, 2, 28))
	assert.True(t, got.Equal(decimal.RequireFromString("2.5")), "got %s", got)

	// Entries effective after asOf are excluded.
	got = ReplayBalance(logs, date(2026, 1, 31))
	assert.True(t, got.Equal(decimal.NewFromInt(2)), "got %s", got)

	got = ReplayBalance(logs, date(2026, 12, 31))
	assert.True(t, got.Equal(decimal.RequireFromString("7.5")), "got %s", got)
}

// TestReplayBalance_RandomSequences generates random ledgers and checks the
// fold against a running balance maintained alongside, then cuts each ledger
// at a random date and checks the partial replay the same way.
func TestReplayBalance_RandomSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	half := decimal.NewFromInt(2)

	for seq := 0; seq < 50; seq++ {
		var logs []leave.BalanceChangeLog
		running := decimal.Zero
		for i := 0; i < 1+rng.Intn(40); i++ {
			// Credits and debits in half-day steps.
			amount := decimal.NewFromInt(int64(rng.Intn(41) - 20)).Div(half)
			running = running.Add(amount)
			logs = append(logs, leave.BalanceChangeLog{
				ChangeAmount:  amount,
				EffectiveDate: date(2026, 1, 1).AddDate(0, 0, rng.Intn(365)),
				NewBalance:    running,
			})
		}

		got := ReplayBalance(logs, date(2026, 12, 31))
		assert.True(t, got.Equal(running), "sequence %d: got %s want %s", seq, got, running)

		asOf := date(2026, 1, 1).AddDate(0, 0, rng.Intn(365))
		want := decimal.Zero
		for _, l := range logs {
			if !l.EffectiveDate.After(asOf) {
				want = want.Add(l.ChangeAmount)
			}
		}
		got = ReplayBalance(logs, asOf)
		assert.True(t, got.Equal(want), "sequence %d as of %s: got %s want %s",
			seq, asOf.Format("2006-01-02"), got, want)
	}
}

func TestReplayBalance_Empty(t *testing.T) {
	assert.True(t, ReplayBalance(nil, date(2026, 1, 1)).IsZero())
}

func TestCarryForwardSplit(t *testing.T) {
	cap := decimal.NewFromInt(15)

	carried, excess := CarryForwardSplit(decimal.NewFromInt(30), &cap)
	assert.True(t, carried.Equal(decimal.NewFromInt(15)), "carried %s", carried)
	assert.True(t, excess.Equal(decimal.NewFromInt(15)), "excess %s", excess)

	carried, excess = CarryForwardSplit(decimal.NewFromInt(10), &cap)
	assert.True(t, carried.Equal(decimal.NewFromInt(10)), "carried %s", carried)
	assert.True(t, excess.IsZero(), "excess %s", excess)

	// No cap carries everything.
	carried, excess = CarryForwardSplit(decimal.NewFromInt(30), nil)
	assert.True(t, carried.Equal(decimal.NewFromInt(30)), "carried %s", carried)
	assert.True(t, excess.IsZero(), "excess %s", excess)
}

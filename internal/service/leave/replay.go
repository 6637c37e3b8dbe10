package leave

import (
	"time"

	"github.com/kelolahr/hrms-backend-go/internal/domain/leave"
	"github.com/shopspring/decimal"
)

// ReplayBalance folds a change log into the balance as of a date. Entries are
// signed: credits positive, debits negative. The cached balance row must equal
// this at all times; Reconcile verifies it.
func ReplayBalance(logs []leave.BalanceChangeLog, asOf time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, l := range logs {
		if l.EffectiveDate.After(asOf) {
			continue
		}
		total = total.Add(l.ChangeAmount)
	}
	return total
}

// CarryForwardSplit divides a period-end balance into the portion carried into
// the next period and the excess above the cap. A nil cap carries everything.
func CarryForwardSplit(current decimal.Decimal, maxCarryForward *decimal.Decimal) (carried, excess decimal.Decimal) {
	carried = current
	if maxCarryForward != nil && current.GreaterThan(*maxCarryForward) {
		carried = *maxCarryForward
	}
	return carried, current.Sub(carried)
}

package leave

import (
	"context"
	"testing"

	"github.com/kelolahr/hrms-backend-go/internal/domain/leave"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type stubBalanceRepo struct {
	leave.BalanceRepository
	balance leave.Balance
}

func (s stubBalanceRepo) GetByID(_ context.Context, _ string) (leave.Balance, error) {
	return s.balance, nil
}

func TestApplyChange_ClosedPeriodRejected(t *testing.T) {
	svc := &LeaveServiceImpl{ClosureRepository: stubClosureRepo{closed: true}}

	_, err := svc.applyChangeTx(context.Background(), changeInput{
		balanceID:     "bal-1",
		companyID:     "co-1",
		source:        leave.SourceManualAdjustment,
		amount:        decimal.NewFromInt(1),
		effectiveDate: date(2026, 1, 15),
	})
	require.ErrorIs(t, err, leave.ErrPeriodClosed)
}

func TestApplyChange_OverdraftRejected(t *testing.T) {
	svc := &LeaveServiceImpl{
		ClosureRepository: stubClosureRepo{},
		BalanceRepository: stubBalanceRepo{balance: leave.Balance{
			ID:             "bal-1",
			CurrentBalance: decimal.NewFromInt(1),
		}},
	}

	_, err := svc.applyChangeTx(context.Background(), changeInput{
		balanceID:     "bal-1",
		companyID:     "co-1",
		source:        leave.SourceLeaveAvailed,
		amount:        decimal.NewFromInt(-2),
		effectiveDate: date(2026, 1, 15),
	})
	require.ErrorIs(t, err, leave.ErrInsufficientBalance)
}

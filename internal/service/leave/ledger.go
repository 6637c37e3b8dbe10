package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/kelolahr/hrms-backend-go/internal/domain/leave"
	"github.com/kelolahr/hrms-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
)

func (s *LeaveServiceImpl) inTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return postgresql.WithTransaction(ctx, s.db, fn)
}

// changeInput describes one ledgered balance mutation. Amount is signed:
// credits positive, debits negative.
type changeInput struct {
	balanceID     string
	companyID     string
	source        leave.ChangeSource
	amount        decimal.Decimal
	effectiveDate time.Time
	actorID       *string
	reason        *string
	allowNegative bool
}

// applyChangeTx mutates one balance inside the caller's transaction: closure
// gate first, then overdraft check, then the cached-row update and the ledger
// append together. Every balance write in the service funnels through here.
func (s *LeaveServiceImpl) applyChangeTx(ctx context.Context, in changeInput) (leave.ApplyChangeResult, error) {
	closed, err := s.ClosureRepository.IsClosed(ctx, in.companyID, in.effectiveDate)
	if err != nil {
		return leave.ApplyChangeResult{}, fmt.Errorf("check period closure: %w", err)
	}
	if closed {
		return leave.ApplyChangeResult{}, fmt.Errorf("%w: effective date %s",
			leave.ErrPeriodClosed, in.effectiveDate.Format("2006-01-02"))
	}

	balance, err := s.BalanceRepository.GetByID(ctx, in.balanceID)
	if err != nil {
		return leave.ApplyChangeResult{}, err
	}

	newBalance := balance.CurrentBalance.Add(in.amount)
	if newBalance.IsNegative() && !in.allowNegative {
		return leave.ApplyChangeResult{}, fmt.Errorf("%w: balance %s, requested %s",
			leave.ErrInsufficientBalance, balance.CurrentBalance, in.amount.Neg())
	}

	if err := s.BalanceRepository.ApplyComponents(ctx, in.balanceID, in.source, in.amount); err != nil {
		return leave.ApplyChangeResult{}, err
	}

	if _, err := s.BalanceRepository.AppendChangeLog(ctx, leave.BalanceChangeLog{
		BalanceID:     balance.ID,
		EmployeeID:    balance.EmployeeID,
		LeaveTypeID:   balance.LeaveTypeID,
		OldBalance:    balance.CurrentBalance,
		NewBalance:    newBalance,
		ChangeAmount:  in.amount,
		Source:        in.source,
		EffectiveDate: in.effectiveDate,
		ActorID:       in.actorID,
		Reason:        in.reason,
	}); err != nil {
		return leave.ApplyChangeResult{}, err
	}

	return leave.ApplyChangeResult{
		BalanceID:  balance.ID,
		OldBalance: balance.CurrentBalance,
		NewBalance: newBalance,
	}, nil
}

// GetBalances implements leave.LeaveService.
func (s *LeaveServiceImpl) GetBalances(ctx context.Context, employeeID string) ([]leave.BalanceResponse, error) {
	balances, err := s.BalanceRepository.GetByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("load balances: %w", err)
	}
	responses := make([]leave.BalanceResponse, 0, len(balances))
	for _, b := range balances {
		responses = append(responses, leave.ToBalanceResponse(b))
	}
	return responses, nil
}

// GetLedger implements leave.LeaveService.
func (s *LeaveServiceImpl) GetLedger(ctx context.Context, employeeID, leaveTypeID string) ([]leave.BalanceChangeLog, error) {
	return s.BalanceRepository.GetChangeLogs(ctx, employeeID, leaveTypeID)
}

// AdjustBalance implements leave.LeaveService. Manual adjustments are the HR
// escape hatch; they still go through the closure gate and the ledger.
func (s *LeaveServiceImpl) AdjustBalance(ctx context.Context, req leave.AdjustBalanceRequest, actor leave.Actor) (leave.ApplyChangeResult, error) {
	balance, err := s.BalanceRepository.GetByID(ctx, req.BalanceID)
	if err != nil {
		return leave.ApplyChangeResult{}, err
	}
	emp, err := s.EmployeeRepository.GetByID(ctx, balance.EmployeeID)
	if err != nil {
		return leave.ApplyChangeResult{}, err
	}
	leaveType, err := s.LeaveTypeRepository.GetByID(ctx, balance.LeaveTypeID)
	if err != nil {
		return leave.ApplyChangeResult{}, err
	}

	var result leave.ApplyChangeResult
	err = s.inTransaction(ctx, func(ctx context.Context) error {
		result, err = s.applyChangeTx(ctx, changeInput{
			balanceID:     req.BalanceID,
			companyID:     emp.CompanyID,
			source:        leave.SourceManualAdjustment,
			amount:        req.Amount,
			effectiveDate: time.Now().UTC(),
			actorID:       &actor.UserID,
			reason:        &req.Reason,
			allowNegative: leaveType.AllowNegativeBalance,
		})
		return err
	})
	if err != nil {
		return leave.ApplyChangeResult{}, err
	}
	return result, nil
}

// Reconcile implements leave.LeaveService. Replays every ledger for the
// period's balances and reports cache drift without repairing it.
func (s *LeaveServiceImpl) Reconcile(ctx context.Context, companyID string, periodStart, periodEnd time.Time) ([]leave.ReconcileResult, error) {
	balances, err := s.BalanceRepository.GetByCompanyForPeriod(ctx, companyID, periodStart, periodEnd)
	if err != nil {
		return nil, fmt.Errorf("load balances for reconcile: %w", err)
	}

	results := make([]leave.ReconcileResult, 0, len(balances))
	for _, b := range balances {
		logs, err := s.BalanceRepository.GetChangeLogs(ctx, b.EmployeeID, b.LeaveTypeID)
		if err != nil {
			return nil, err
		}
		var perBalance []leave.BalanceChangeLog
		for _, l := range logs {
			if l.BalanceID == b.ID {
				perBalance = append(perBalance, l)
			}
		}
		replayed := b.OpeningBalance.Add(ReplayBalance(perBalance, b.PeriodEnd))
		results = append(results, leave.ReconcileResult{
			BalanceID:     b.ID,
			EmployeeID:    b.EmployeeID,
			LeaveTypeID:   b.LeaveTypeID,
			CachedBalance: b.CurrentBalance,
			ReplayBalance: replayed,
			InSync:        replayed.Equal(b.CurrentBalance),
		})
	}
	return results, nil
}

// DebitForSettlement implements leave.LeaveService.
func (s *LeaveServiceImpl) DebitForSettlement(ctx context.Context, employeeID, leaveTypeID string, days decimal.Decimal, actor leave.Actor) (leave.ApplyChangeResult, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return leave.ApplyChangeResult{}, err
	}
	balance, err := s.BalanceRepository.GetCurrent(ctx, employeeID, leaveTypeID, time.Now().UTC())
	if err != nil {
		return leave.ApplyChangeResult{}, err
	}

	reason := "full and final settlement encashment"
	var result leave.ApplyChangeResult
	err = s.inTransaction(ctx, func(ctx context.Context) error {
		result, err = s.applyChangeTx(ctx, changeInput{
			balanceID:     balance.ID,
			companyID:     emp.CompanyID,
			source:        leave.SourceEncashment,
			amount:        days.Neg(),
			effectiveDate: time.Now().UTC(),
			actorID:       &actor.UserID,
			reason:        &reason,
		})
		return err
	})
	if err != nil {
		return leave.ApplyChangeResult{}, err
	}
	return result, nil
}

package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/kelolahr/hrms-backend-go/internal/domain/attendance"
	"github.com/kelolahr/hrms-backend-go/internal/domain/leave"
	"github.com/shopspring/decimal"
)

// ClosePeriod implements leave.LeaveService. The gate: every active employee
// must have a classified attendance row for every day of the period, no
// pending regularisations are checked here (they die with the closure), and
// the closure row itself is append-only. When the closure ends a leave year,
// balances are carried forward before the range locks.
func (s *LeaveServiceImpl) ClosePeriod(ctx context.Context, req leave.ClosePeriodRequest, actor leave.Actor) (leave.PeriodClosure, error) {
	periodStart, periodEnd, ok := parseDateRange(req.PeriodStart, req.PeriodEnd)
	if !ok {
		return leave.PeriodClosure{}, fmt.Errorf("invalid closure period %q..%q", req.PeriodStart, req.PeriodEnd)
	}

	alreadyClosed, err := s.ClosureRepository.RangeOverlapsClosure(ctx, req.CompanyID, periodStart, periodEnd)
	if err != nil {
		return leave.PeriodClosure{}, fmt.Errorf("check closure overlap: %w", err)
	}
	if alreadyClosed {
		return leave.PeriodClosure{}, fmt.Errorf("%w: range overlaps an existing closure", leave.ErrPeriodClosed)
	}

	if err := s.checkAttendanceComplete(ctx, req.CompanyID, periodStart, periodEnd); err != nil {
		return leave.PeriodClosure{}, err
	}

	if req.IsLeaveYearEnd {
		if err := s.carryForward(ctx, req.CompanyID, periodStart, periodEnd, actor); err != nil {
			return leave.PeriodClosure{}, err
		}
	}

	return s.ClosureRepository.Append(ctx, leave.PeriodClosure{
		CompanyID:      req.CompanyID,
		PeriodStart:    periodStart,
		PeriodEnd:      periodEnd,
		IsLeaveYearEnd: req.IsLeaveYearEnd,
		ClosedBy:       &actor.UserID,
	})
}

// checkAttendanceComplete fails with ErrIncompleteAttendance when any active
// employee is missing a classified day inside the range. Closure never
// force-classifies; the gap has to be processed first.
func (s *LeaveServiceImpl) checkAttendanceComplete(ctx context.Context, companyID string, periodStart, periodEnd time.Time) error {
	employees, err := s.EmployeeRepository.GetActiveByCompanyID(ctx, companyID)
	if err != nil {
		return fmt.Errorf("load active employees: %w", err)
	}
	days, err := s.DailyRepository.GetByCompanyForRange(ctx, companyID, periodStart, periodEnd)
	if err != nil {
		return fmt.Errorf("load daily attendance: %w", err)
	}

	classified := make(map[string]map[string]bool)
	for _, d := range days {
		if classified[d.EmployeeID] == nil {
			classified[d.EmployeeID] = make(map[string]bool)
		}
		classified[d.EmployeeID][d.Date.Format("2006-01-02")] = true
	}

	for _, emp := range employees {
		start := periodStart
		if emp.HireDate.After(start) {
			start = emp.HireDate
		}
		for day := start; !day.After(periodEnd); day = day.AddDate(0, 0, 1) {
			if !classified[emp.ID][day.Format("2006-01-02")] {
				return fmt.Errorf("%w: employee %s missing %s",
					attendance.ErrIncompleteAttendance, emp.ID, day.Format("2006-01-02"))
			}
		}
	}
	return nil
}

// carryForward splits every period balance into the carried portion and the
// capped excess, writing both sides to the ledger with distinguishable
// sources before opening the next period's balance row.
func (s *LeaveServiceImpl) carryForward(ctx context.Context, companyID string, periodStart, periodEnd time.Time, actor leave.Actor) error {
	balances, err := s.BalanceRepository.GetByCompanyForPeriod(ctx, companyID, periodStart, periodEnd)
	if err != nil {
		return fmt.Errorf("load balances for carry forward: %w", err)
	}
	mappings, err := s.PolicyRepository.GetMappingsForCompany(ctx, companyID)
	if err != nil {
		return fmt.Errorf("load policy mappings: %w", err)
	}

	nextStart := periodEnd.AddDate(0, 0, 1)
	nextEnd := periodEnd.AddDate(1, 0, 0)

	for _, balance := range balances {
		emp, err := s.EmployeeRepository.GetByID(ctx, balance.EmployeeID)
		if err != nil {
			return err
		}
		line, err := s.policyLineFor(ctx, emp, balance.LeaveTypeID, periodEnd, mappings)
		if err != nil {
			return err
		}
		var capDays *decimal.Decimal
		overflowEncash := false
		if line != nil {
			capDays = line.MaxCarryForward
			overflowEncash = line.CarryForwardOverflow == leave.OverflowEncash
		}

		carried, excess := CarryForwardSplit(balance.CurrentBalance, capDays)

		err = s.inTransaction(ctx, func(ctx context.Context) error {
			if excess.IsPositive() {
				source := leave.SourceCarryForwardForfeit
				reason := "carry forward cap forfeit"
				if overflowEncash {
					source = leave.SourceEncashment
					reason = "carry forward cap encashment"
				}
				if _, err := s.applyChangeTx(ctx, changeInput{
					balanceID:     balance.ID,
					companyID:     companyID,
					source:        source,
					amount:        excess.Neg(),
					effectiveDate: periodEnd,
					actorID:       &actor.UserID,
					reason:        &reason,
				}); err != nil {
					return err
				}
			}

			next, err := s.BalanceRepository.Create(ctx, leave.Balance{
				EmployeeID:  balance.EmployeeID,
				LeaveTypeID: balance.LeaveTypeID,
				PeriodStart: nextStart,
				PeriodEnd:   nextEnd,
			})
			if err != nil {
				return err
			}
			if carried.IsZero() {
				return nil
			}
			reason := "carry forward from previous period"
			_, err = s.applyChangeTx(ctx, changeInput{
				balanceID:     next.ID,
				companyID:     companyID,
				source:        leave.SourceCarryForward,
				amount:        carried,
				effectiveDate: nextStart,
				actorID:       &actor.UserID,
				reason:        &reason,
				allowNegative: true,
			})
			return err
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// ListClosures implements leave.LeaveService.
func (s *LeaveServiceImpl) ListClosures(ctx context.Context, companyID string) ([]leave.PeriodClosure, error) {
	return s.ClosureRepository.GetByCompanyID(ctx, companyID)
}

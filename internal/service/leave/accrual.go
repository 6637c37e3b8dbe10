package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/kelolahr/hrms-backend-go/internal/domain/employee"
	"github.com/kelolahr/hrms-backend-go/internal/domain/leave"
	"github.com/shopspring/decimal"
)

// TriggerAccrualRun implements leave.LeaveService. Credits every active
// employee's mapped leave types for the period. Scheduled run types are
// guarded against exact repeats; manual runs bypass the guard but still skip
// lines whose idempotency key was already credited.
func (s *LeaveServiceImpl) TriggerAccrualRun(ctx context.Context, req leave.TriggerAccrualRunRequest, actor leave.Actor) (leave.AccrualRun, error) {
	periodStart, periodEnd, ok := parseDateRange(req.PeriodStart, req.PeriodEnd)
	if !ok {
		return leave.AccrualRun{}, fmt.Errorf("invalid accrual period %q..%q", req.PeriodStart, req.PeriodEnd)
	}

	closed, err := s.ClosureRepository.RangeOverlapsClosure(ctx, req.CompanyID, periodStart, periodEnd)
	if err != nil {
		return leave.AccrualRun{}, fmt.Errorf("check closure overlap: %w", err)
	}
	if closed {
		return leave.AccrualRun{}, fmt.Errorf("%w: accrual period overlaps a closed range", leave.ErrPeriodClosed)
	}

	runType := leave.AccrualRunType(req.RunType)
	if runType != leave.RunTypeManual {
		existing, err := s.AccrualRepository.FindRun(ctx, req.CompanyID, runType, periodStart, periodEnd)
		if err == nil {
			return leave.AccrualRun{}, fmt.Errorf("%w: %s run for %s..%s already recorded as %s",
				leave.ErrDuplicateAccrual, runType, req.PeriodStart, req.PeriodEnd, existing.ID)
		}
		if !errors.Is(err, leave.ErrAccrualRunNotFound) {
			return leave.AccrualRun{}, fmt.Errorf("check existing runs: %w", err)
		}
	}

	run, err := s.AccrualRepository.CreateRun(ctx, leave.AccrualRun{
		CompanyID:   req.CompanyID,
		RunType:     runType,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Status:      leave.AccrualRunStatusCompleted,
		CreatedBy:   &actor.UserID,
	})
	if err != nil {
		return leave.AccrualRun{}, err
	}

	employees, err := s.EmployeeRepository.GetActiveByCompanyID(ctx, req.CompanyID)
	if err != nil {
		return leave.AccrualRun{}, fmt.Errorf("load active employees: %w", err)
	}
	mappings, err := s.PolicyRepository.GetMappingsForCompany(ctx, req.CompanyID)
	if err != nil {
		return leave.AccrualRun{}, fmt.Errorf("load policy mappings: %w", err)
	}

	var credited, skipped int
	for _, emp := range employees {
		mapping, err := ResolveMapping(mappings, emp, periodEnd)
		if err != nil {
			if errors.Is(err, leave.ErrNoPolicyMapping) {
				slog.Warn("accrual skipping unmapped employee", "employee_id", emp.ID)
				continue
			}
			return leave.AccrualRun{}, err
		}
		policy, err := s.PolicyRepository.GetPolicyByID(ctx, mapping.PolicyID)
		if err != nil {
			return leave.AccrualRun{}, err
		}

		for _, line := range policy.Lines {
			credit := PeriodCredit(line.AnnualEntitlement, line.AccrualMethod, periodStart, periodEnd, emp.HireDate)
			if credit.IsZero() {
				continue
			}
			wasCredited, err := s.creditLine(ctx, run, emp, line.LeaveTypeID, credit, actor)
			if err != nil {
				return leave.AccrualRun{}, err
			}
			if wasCredited {
				credited++
			} else {
				skipped++
			}
		}
	}

	status := leave.AccrualRunStatusCompleted
	if skipped > 0 {
		status = leave.AccrualRunStatusPartial
	}
	if err := s.AccrualRepository.SetRunTotals(ctx, run.ID, status, credited); err != nil {
		return leave.AccrualRun{}, err
	}
	run.Status = status
	run.TotalLines = credited
	return run, nil
}

// creditLine applies one employee-leave-type credit atomically. Returns false
// when the idempotency key was already used. The key is checked up front so a
// rerun never touches the balance; the unique index inside the transaction
// closes the race between concurrent runs.
func (s *LeaveServiceImpl) creditLine(ctx context.Context, run leave.AccrualRun, emp employee.Employee, leaveTypeID string, credit decimal.Decimal, actor leave.Actor) (bool, error) {
	key := leave.AccrualKey(emp.ID, leaveTypeID, run.PeriodStart, run.PeriodEnd)
	exists, err := s.AccrualRepository.LineExists(ctx, key)
	if err != nil {
		return false, err
	}
	if exists {
		slog.Info("accrual line already credited", "key", key)
		return false, nil
	}

	balance, err := s.ensureBalance(ctx, emp, leaveTypeID, run.PeriodEnd)
	if err != nil {
		return false, err
	}

	err = s.inTransaction(ctx, func(ctx context.Context) error {
		result, err := s.applyChangeTx(ctx, changeInput{
			balanceID:     balance.ID,
			companyID:     emp.CompanyID,
			source:        leave.SourceAccrual,
			amount:        credit,
			effectiveDate: run.PeriodEnd,
			actorID:       run.CreatedBy,
			allowNegative: true,
		})
		if err != nil {
			return err
		}
		_, err = s.AccrualRepository.CreateLine(ctx, leave.AccrualLine{
			RunID:          run.ID,
			EmployeeID:     emp.ID,
			LeaveTypeID:    leaveTypeID,
			PeriodStart:    run.PeriodStart,
			PeriodEnd:      run.PeriodEnd,
			AccrualDays:    credit,
			NewBalance:     result.NewBalance,
			IdempotencyKey: key,
		})
		return err
	})
	if err != nil {
		if errors.Is(err, leave.ErrDuplicateAccrual) {
			slog.Info("accrual line credited by concurrent run", "key", key)
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ensureBalance finds the leave-year balance row covering asOf, creating an
// empty one when the employee has never been credited for this leave type.
func (s *LeaveServiceImpl) ensureBalance(ctx context.Context, emp employee.Employee, leaveTypeID string, asOf time.Time) (leave.Balance, error) {
	balance, err := s.BalanceRepository.GetCurrent(ctx, emp.ID, leaveTypeID, asOf)
	if err == nil {
		return balance, nil
	}
	if !errors.Is(err, leave.ErrBalanceNotFound) {
		return leave.Balance{}, err
	}

	yearStart := time.Date(asOf.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(asOf.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)
	return s.BalanceRepository.Create(ctx, leave.Balance{
		EmployeeID:  emp.ID,
		LeaveTypeID: leaveTypeID,
		PeriodStart: yearStart,
		PeriodEnd:   yearEnd,
	})
}

// ListAccrualRuns implements leave.LeaveService.
func (s *LeaveServiceImpl) ListAccrualRuns(ctx context.Context, companyID string) ([]leave.AccrualRun, error) {
	return s.AccrualRepository.GetRunsByCompanyID(ctx, companyID)
}

func parseDateRange(start, end string) (time.Time, time.Time, bool) {
	s, err := time.Parse("2006-01-02", start)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	e, err := time.Parse("2006-01-02", end)
	if err != nil || e.Before(s) {
		return time.Time{}, time.Time{}, false
	}
	return s, e, true
}

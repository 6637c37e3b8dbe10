package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/kelolahr/hrms-backend-go/internal/domain/approval"
	"github.com/kelolahr/hrms-backend-go/internal/domain/leave"
	approvalsvc "github.com/kelolahr/hrms-backend-go/internal/service/approval"
	"github.com/shopspring/decimal"
)

var half = decimal.NewFromFloat(0.5)

// CreateRequest implements leave.LeaveService. Creation submits in one step:
// the request lands in the first pending stage with the balance already
// checked, though the authoritative debit only happens on final approval.
func (s *LeaveServiceImpl) CreateRequest(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.LeaveRequest, error) {
	startDate, endDate, ok := parseDateRange(req.StartDate, req.EndDate)
	if !ok {
		return leave.LeaveRequest{}, fmt.Errorf("invalid leave range %q..%q", req.StartDate, req.EndDate)
	}

	leaveType, err := s.LeaveTypeRepository.GetByID(ctx, req.LeaveTypeID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if !leaveType.IsActive {
		return leave.LeaveRequest{}, leave.ErrLeaveTypeInactive
	}

	closed, err := s.ClosureRepository.RangeOverlapsClosure(ctx, req.CompanyID, startDate, endDate)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("check closure overlap: %w", err)
	}
	if closed {
		return leave.LeaveRequest{}, fmt.Errorf("%w: requested range overlaps a closed period", leave.ErrPeriodClosed)
	}

	overlapping, err := s.RequestRepository.HasOverlapping(ctx, req.EmployeeID, startDate, endDate)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("check overlapping requests: %w", err)
	}
	if overlapping {
		return leave.LeaveRequest{}, leave.ErrOverlappingLeave
	}

	days := decimal.NewFromInt(int64(endDate.Sub(startDate).Hours()/24) + 1)
	if req.IsHalfDay {
		if !startDate.Equal(endDate) {
			return leave.LeaveRequest{}, fmt.Errorf("half-day request must cover a single date")
		}
		days = half
	}

	if !leaveType.AllowNegativeBalance {
		balance, err := s.BalanceRepository.GetCurrent(ctx, req.EmployeeID, req.LeaveTypeID, startDate)
		if err != nil {
			return leave.LeaveRequest{}, err
		}
		if balance.CurrentBalance.LessThan(days) {
			return leave.LeaveRequest{}, fmt.Errorf("%w: balance %s, requested %s",
				leave.ErrInsufficientBalance, balance.CurrentBalance, days)
		}
	}

	state, err := s.machine.Submit(approval.StateDraft)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	now := time.Now().UTC()

	var created leave.LeaveRequest
	err = s.inTransaction(ctx, func(ctx context.Context) error {
		created, err = s.RequestRepository.Create(ctx, leave.LeaveRequest{
			EmployeeID:  req.EmployeeID,
			CompanyID:   req.CompanyID,
			LeaveTypeID: req.LeaveTypeID,
			StartDate:   startDate,
			EndDate:     endDate,
			Days:        days,
			IsHalfDay:   req.IsHalfDay,
			Reason:      req.Reason,
			State:       state,
			SubmittedAt: &now,
		})
		if err != nil {
			return err
		}
		_, err = s.ApprovalActionRepository.Append(ctx, approvalsvc.Record(
			approval.KindLeaveRequest, created.ID,
			approval.StateDraft, state, approval.ActionSubmit,
			approvalsvc.Actor{ID: req.EmployeeID}, "",
		))
		return err
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	return created, nil
}

// resolveActor fills in whether the acting employee is the request owner's
// manager of record.
func (s *LeaveServiceImpl) resolveActor(ctx context.Context, actor leave.Actor, ownerEmployeeID string) (approvalsvc.Actor, error) {
	resolved := approvalsvc.Actor{ID: actor.UserID, Role: actor.Role}
	owner, err := s.EmployeeRepository.GetByID(ctx, ownerEmployeeID)
	if err != nil {
		return approvalsvc.Actor{}, err
	}
	if owner.ManagerID != nil && actor.EmployeeID != "" && *owner.ManagerID == actor.EmployeeID {
		resolved.IsManagerOfRecord = true
	}
	return resolved, nil
}

// DecideRequest implements leave.LeaveService. The state machine validates
// the actor and the transition; final approval debits the balance through
// the ledger in the same transaction as the state change.
func (s *LeaveServiceImpl) DecideRequest(ctx context.Context, req leave.DecideRequestRequest, actor leave.Actor, action approval.Action) (leave.LeaveRequest, error) {
	request, err := s.RequestRepository.GetByID(ctx, req.RequestID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	machineActor, err := s.resolveActor(ctx, actor, request.EmployeeID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	nextState, err := s.machine.Decide(request.State, machineActor, action)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	now := time.Now().UTC()
	fromState := request.State
	request.State = nextState
	if nextState.IsTerminal() {
		request.DecidedAt = &now
		request.DecidedBy = &actor.UserID
		if nextState == approval.StateRejected && req.Comments != "" {
			request.RejectionReason = &req.Comments
		}
	}

	err = s.inTransaction(ctx, func(ctx context.Context) error {
		if err := s.RequestRepository.UpdateState(ctx, request); err != nil {
			return err
		}
		if _, err := s.ApprovalActionRepository.Append(ctx, approvalsvc.Record(
			approval.KindLeaveRequest, request.ID,
			fromState, nextState, action, machineActor, req.Comments,
		)); err != nil {
			return err
		}
		if nextState != approval.StateApproved {
			return nil
		}

		leaveType, err := s.LeaveTypeRepository.GetByID(ctx, request.LeaveTypeID)
		if err != nil {
			return err
		}
		balance, err := s.BalanceRepository.GetCurrent(ctx, request.EmployeeID, request.LeaveTypeID, request.StartDate)
		if err != nil {
			return err
		}
		reason := fmt.Sprintf("leave request %s approved", request.ID)
		_, err = s.applyChangeTx(ctx, changeInput{
			balanceID:     balance.ID,
			companyID:     request.CompanyID,
			source:        leave.SourceLeaveAvailed,
			amount:        request.Days.Neg(),
			effectiveDate: request.StartDate,
			actorID:       &actor.UserID,
			reason:        &reason,
			allowNegative: leaveType.AllowNegativeBalance,
		})
		return err
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	return request, nil
}

// ListRequests implements leave.LeaveService.
func (s *LeaveServiceImpl) ListRequests(ctx context.Context, companyID string) ([]leave.LeaveRequest, error) {
	return s.RequestRepository.GetByCompanyID(ctx, companyID)
}

// ListMyRequests implements leave.LeaveService.
func (s *LeaveServiceImpl) ListMyRequests(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	return s.RequestRepository.GetByEmployeeID(ctx, employeeID)
}

// CreateEncashment implements leave.LeaveService.
func (s *LeaveServiceImpl) CreateEncashment(ctx context.Context, req leave.CreateEncashmentRequest) (leave.EncashmentRequest, error) {
	leaveType, err := s.LeaveTypeRepository.GetByID(ctx, req.LeaveTypeID)
	if err != nil {
		return leave.EncashmentRequest{}, err
	}
	if !leaveType.AllowEncashment {
		return leave.EncashmentRequest{}, leave.ErrEncashmentNotAllowed
	}

	balance, err := s.BalanceRepository.GetCurrent(ctx, req.EmployeeID, req.LeaveTypeID, time.Now().UTC())
	if err != nil {
		return leave.EncashmentRequest{}, err
	}
	if balance.CurrentBalance.LessThan(req.Days) {
		return leave.EncashmentRequest{}, fmt.Errorf("%w: balance %s, requested %s",
			leave.ErrInsufficientBalance, balance.CurrentBalance, req.Days)
	}

	state, err := s.machine.Submit(approval.StateDraft)
	if err != nil {
		return leave.EncashmentRequest{}, err
	}
	now := time.Now().UTC()

	var created leave.EncashmentRequest
	err = s.inTransaction(ctx, func(ctx context.Context) error {
		created, err = s.RequestRepository.CreateEncashment(ctx, leave.EncashmentRequest{
			EmployeeID:  req.EmployeeID,
			CompanyID:   req.CompanyID,
			LeaveTypeID: req.LeaveTypeID,
			Days:        req.Days,
			Reason:      req.Reason,
			State:       state,
			SubmittedAt: &now,
		})
		if err != nil {
			return err
		}
		_, err = s.ApprovalActionRepository.Append(ctx, approvalsvc.Record(
			approval.KindEncashment, created.ID,
			approval.StateDraft, state, approval.ActionSubmit,
			approvalsvc.Actor{ID: req.EmployeeID}, "",
		))
		return err
	})
	if err != nil {
		return leave.EncashmentRequest{}, err
	}
	return created, nil
}

// DecideEncashment implements leave.LeaveService.
func (s *LeaveServiceImpl) DecideEncashment(ctx context.Context, requestID string, actor leave.Actor, action approval.Action, comments string) (leave.EncashmentRequest, error) {
	request, err := s.RequestRepository.GetEncashmentByID(ctx, requestID)
	if err != nil {
		return leave.EncashmentRequest{}, err
	}

	machineActor, err := s.resolveActor(ctx, actor, request.EmployeeID)
	if err != nil {
		return leave.EncashmentRequest{}, err
	}

	nextState, err := s.machine.Decide(request.State, machineActor, action)
	if err != nil {
		return leave.EncashmentRequest{}, err
	}

	now := time.Now().UTC()
	fromState := request.State
	request.State = nextState
	if nextState.IsTerminal() {
		request.DecidedAt = &now
		request.DecidedBy = &actor.UserID
	}

	err = s.inTransaction(ctx, func(ctx context.Context) error {
		if err := s.RequestRepository.UpdateEncashmentState(ctx, request); err != nil {
			return err
		}
		if _, err := s.ApprovalActionRepository.Append(ctx, approvalsvc.Record(
			approval.KindEncashment, request.ID,
			fromState, nextState, action, machineActor, comments,
		)); err != nil {
			return err
		}
		if nextState != approval.StateApproved {
			return nil
		}

		balance, err := s.BalanceRepository.GetCurrent(ctx, request.EmployeeID, request.LeaveTypeID, now)
		if err != nil {
			return err
		}
		reason := fmt.Sprintf("encashment request %s approved", request.ID)
		_, err = s.applyChangeTx(ctx, changeInput{
			balanceID:     balance.ID,
			companyID:     request.CompanyID,
			source:        leave.SourceEncashment,
			amount:        request.Days.Neg(),
			effectiveDate: now,
			actorID:       &actor.UserID,
			reason:        &reason,
		})
		return err
	})
	if err != nil {
		return leave.EncashmentRequest{}, err
	}
	return request, nil
}

package expense

import (
	"context"
	"fmt"
	"time"

	"github.com/kelolahr/hrms-backend-go/internal/domain/approval"
	"github.com/kelolahr/hrms-backend-go/internal/domain/employee"
	"github.com/kelolahr/hrms-backend-go/internal/domain/expense"
	"github.com/kelolahr/hrms-backend-go/internal/pkg/database"
	"github.com/kelolahr/hrms-backend-go/internal/pkg/validator"
	"github.com/kelolahr/hrms-backend-go/internal/repository/postgresql"
	approvalsvc "github.com/kelolahr/hrms-backend-go/internal/service/approval"
)

type ExpenseServiceImpl struct {
	db *database.DB
	expense.ClaimRepository
	expense.AdvanceRepository
	approval.ApprovalActionRepository
	employee.EmployeeRepository

	machine *approvalsvc.Machine
}

func NewExpenseService(
	db *database.DB,
	claimRepo expense.ClaimRepository,
	advanceRepo expense.AdvanceRepository,
	actionRepo approval.ApprovalActionRepository,
	employeeRepo employee.EmployeeRepository,
) expense.ExpenseService {
	return &ExpenseServiceImpl{
		db:                       db,
		ClaimRepository:          claimRepo,
		AdvanceRepository:        advanceRepo,
		ApprovalActionRepository: actionRepo,
		EmployeeRepository:       employeeRepo,
		machine:                  approvalsvc.TwoStage(),
	}
}

func (s *ExpenseServiceImpl) inTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return postgresql.WithTransaction(ctx, s.db, fn)
}

// CreateAdvance implements expense.ExpenseService.
func (s *ExpenseServiceImpl) CreateAdvance(ctx context.Context, req expense.CreateAdvanceRequest) (expense.Advance, error) {
	if _, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
		return expense.Advance{}, err
	}
	return s.AdvanceRepository.Create(ctx, expense.Advance{
		EmployeeID: req.EmployeeID,
		CompanyID:  req.CompanyID,
		Amount:     req.Amount,
		Purpose:    req.Purpose,
		Status:     expense.AdvanceStatusOpen,
	})
}

// CreateClaim implements expense.ExpenseService. A linked advance must still
// be open.
func (s *ExpenseServiceImpl) CreateClaim(ctx context.Context, req expense.CreateClaimRequest) (expense.Claim, error) {
	expenseOn, ok := validator.IsValidDate(req.ExpenseOn)
	if !ok {
		return expense.Claim{}, fmt.Errorf("invalid expense date %q", req.ExpenseOn)
	}

	if req.AdvanceID != nil {
		advance, err := s.AdvanceRepository.GetByID(ctx, *req.AdvanceID)
		if err != nil {
			return expense.Claim{}, err
		}
		if advance.Status != expense.AdvanceStatusOpen {
			return expense.Claim{}, expense.ErrAdvanceClosed
		}
		if advance.EmployeeID != req.EmployeeID {
			return expense.Claim{}, fmt.Errorf("advance %s belongs to another employee", *req.AdvanceID)
		}
	}

	state, err := s.machine.Submit(approval.StateDraft)
	if err != nil {
		return expense.Claim{}, err
	}
	now := time.Now().UTC()

	var created expense.Claim
	err = s.inTransaction(ctx, func(ctx context.Context) error {
		created, err = s.ClaimRepository.Create(ctx, expense.Claim{
			EmployeeID:  req.EmployeeID,
			CompanyID:   req.CompanyID,
			Title:       req.Title,
			Amount:      req.Amount,
			ExpenseOn:   expenseOn,
			AdvanceID:   req.AdvanceID,
			State:       state,
			SubmittedAt: &now,
		})
		if err != nil {
			return err
		}
		_, err = s.ApprovalActionRepository.Append(ctx, approvalsvc.Record(
			approval.KindExpenseClaim, created.ID,
			approval.StateDraft, state, approval.ActionSubmit,
			approvalsvc.Actor{ID: req.EmployeeID}, "",
		))
		return err
	})
	if err != nil {
		return expense.Claim{}, err
	}
	return created, nil
}

// DecideClaim implements expense.ExpenseService. Final approval closes the
// linked advance in the same transaction.
func (s *ExpenseServiceImpl) DecideClaim(ctx context.Context, claimID string, actor expense.Actor, action approval.Action, comments string) (expense.Claim, error) {
	claim, err := s.ClaimRepository.GetByID(ctx, claimID)
	if err != nil {
		return expense.Claim{}, err
	}

	machineActor := approvalsvc.Actor{ID: actor.UserID, Role: actor.Role}
	owner, err := s.EmployeeRepository.GetByID(ctx, claim.EmployeeID)
	if err != nil {
		return expense.Claim{}, err
	}
	if owner.ManagerID != nil && actor.EmployeeID != "" && *owner.ManagerID == actor.EmployeeID {
		machineActor.IsManagerOfRecord = true
	}

	nextState, err := s.machine.Decide(claim.State, machineActor, action)
	if err != nil {
		return expense.Claim{}, err
	}

	now := time.Now().UTC()
	fromState := claim.State
	claim.State = nextState
	if nextState.IsTerminal() {
		claim.DecidedAt = &now
		claim.DecidedBy = &actor.UserID
		if nextState == approval.StateRejected && comments != "" {
			claim.RejectionReason = &comments
		}
	}

	err = s.inTransaction(ctx, func(ctx context.Context) error {
		if err := s.ClaimRepository.UpdateState(ctx, claim); err != nil {
			return err
		}
		if _, err := s.ApprovalActionRepository.Append(ctx, approvalsvc.Record(
			approval.KindExpenseClaim, claim.ID,
			fromState, nextState, action, machineActor, comments,
		)); err != nil {
			return err
		}
		if nextState == approval.StateApproved && claim.AdvanceID != nil {
			return s.AdvanceRepository.Close(ctx, *claim.AdvanceID)
		}
		return nil
	})
	if err != nil {
		return expense.Claim{}, err
	}
	return claim, nil
}

// ListClaims implements expense.ExpenseService.
func (s *ExpenseServiceImpl) ListClaims(ctx context.Context, companyID string) ([]expense.Claim, error) {
	return s.ClaimRepository.GetByCompanyID(ctx, companyID)
}

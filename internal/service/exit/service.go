package exit

import (
	"context"
	"fmt"
	"time"

	"github.com/kelolahr/hrms-backend-go/internal/domain/approval"
	"github.com/kelolahr/hrms-backend-go/internal/domain/employee"
	"github.com/kelolahr/hrms-backend-go/internal/domain/exit"
	"github.com/kelolahr/hrms-backend-go/internal/domain/leave"
	"github.com/kelolahr/hrms-backend-go/internal/pkg/database"
	"github.com/kelolahr/hrms-backend-go/internal/pkg/validator"
	"github.com/kelolahr/hrms-backend-go/internal/repository/postgresql"
	approvalsvc "github.com/kelolahr/hrms-backend-go/internal/service/approval"
)

type ExitServiceImpl struct {
	db *database.DB
	exit.ResignationRepository
	exit.ChecklistRepository
	exit.FnFRepository
	approval.ApprovalActionRepository
	employee.EmployeeRepository
	leaveService leave.LeaveService

	machine *approvalsvc.Machine
}

func NewExitService(
	db *database.DB,
	resignationRepo exit.ResignationRepository,
	checklistRepo exit.ChecklistRepository,
	fnfRepo exit.FnFRepository,
	actionRepo approval.ApprovalActionRepository,
	employeeRepo employee.EmployeeRepository,
	leaveService leave.LeaveService,
) exit.ExitService {
	return &ExitServiceImpl{
		db:                       db,
		ResignationRepository:    resignationRepo,
		ChecklistRepository:      checklistRepo,
		FnFRepository:            fnfRepo,
		ApprovalActionRepository: actionRepo,
		EmployeeRepository:       employeeRepo,
		leaveService:             leaveService,
		machine:                  approvalsvc.TwoStage(),
	}
}

func (s *ExitServiceImpl) inTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return postgresql.WithTransaction(ctx, s.db, fn)
}

// CreateResignation implements exit.ExitService. One open resignation per
// employee at a time.
func (s *ExitServiceImpl) CreateResignation(ctx context.Context, req exit.CreateResignationRequest) (exit.ResignationRequest, error) {
	noticeDate, lastWorkingDate, ok := validator.IsValidDateRange(req.NoticeDate, req.LastWorkingDate)
	if !ok {
		return exit.ResignationRequest{}, fmt.Errorf("invalid notice/last working dates %q..%q", req.NoticeDate, req.LastWorkingDate)
	}

	open, err := s.ResignationRepository.GetOpenByEmployeeID(ctx, req.EmployeeID)
	if err != nil {
		return exit.ResignationRequest{}, err
	}
	if open != nil {
		return exit.ResignationRequest{}, exit.ErrResignationExists
	}

	state, err := s.machine.Submit(approval.StateDraft)
	if err != nil {
		return exit.ResignationRequest{}, err
	}
	now := time.Now().UTC()

	var created exit.ResignationRequest
	err = s.inTransaction(ctx, func(ctx context.Context) error {
		created, err = s.ResignationRepository.Create(ctx, exit.ResignationRequest{
			EmployeeID:      req.EmployeeID,
			CompanyID:       req.CompanyID,
			Reason:          req.Reason,
			NoticeDate:      noticeDate,
			LastWorkingDate: lastWorkingDate,
			State:           state,
			SubmittedAt:     &now,
		})
		if err != nil {
			return err
		}
		_, err = s.ApprovalActionRepository.Append(ctx, approvalsvc.Record(
			approval.KindResignation, created.ID,
			approval.StateDraft, state, approval.ActionSubmit,
			approvalsvc.Actor{ID: req.EmployeeID}, "",
		))
		return err
	})
	if err != nil {
		return exit.ResignationRequest{}, err
	}
	return created, nil
}

// DecideResignation implements exit.ExitService.
func (s *ExitServiceImpl) DecideResignation(ctx context.Context, resignationID string, actor exit.Actor, action approval.Action, comments string) (exit.ResignationRequest, error) {
	resignation, err := s.ResignationRepository.GetByID(ctx, resignationID)
	if err != nil {
		return exit.ResignationRequest{}, err
	}

	machineActor := approvalsvc.Actor{ID: actor.UserID, Role: actor.Role}
	owner, err := s.EmployeeRepository.GetByID(ctx, resignation.EmployeeID)
	if err != nil {
		return exit.ResignationRequest{}, err
	}
	if owner.ManagerID != nil && actor.EmployeeID != "" && *owner.ManagerID == actor.EmployeeID {
		machineActor.IsManagerOfRecord = true
	}

	nextState, err := s.machine.Decide(resignation.State, machineActor, action)
	if err != nil {
		return exit.ResignationRequest{}, err
	}

	now := time.Now().UTC()
	fromState := resignation.State
	resignation.State = nextState
	if nextState.IsTerminal() {
		resignation.DecidedAt = &now
		resignation.DecidedBy = &actor.UserID
		if nextState == approval.StateRejected && comments != "" {
			resignation.RejectionReason = &comments
		}
	}

	err = s.inTransaction(ctx, func(ctx context.Context) error {
		if err := s.ResignationRepository.UpdateState(ctx, resignation); err != nil {
			return err
		}
		_, err := s.ApprovalActionRepository.Append(ctx, approvalsvc.Record(
			approval.KindResignation, resignation.ID,
			fromState, nextState, action, machineActor, comments,
		))
		return err
	})
	if err != nil {
		return exit.ResignationRequest{}, err
	}
	return resignation, nil
}

// ListResignations implements exit.ExitService.
func (s *ExitServiceImpl) ListResignations(ctx context.Context, companyID string) ([]exit.ResignationRequest, error) {
	return s.ResignationRepository.GetByCompanyID(ctx, companyID)
}

// InitChecklist implements exit.ExitService. Requires an approved resignation.
func (s *ExitServiceImpl) InitChecklist(ctx context.Context, req exit.InitChecklistRequest) error {
	resignation, err := s.ResignationRepository.GetByID(ctx, req.ResignationID)
	if err != nil {
		return err
	}
	if resignation.State != approval.StateApproved {
		return fmt.Errorf("%w: state %s", exit.ErrResignationNotApproved, resignation.State)
	}

	items := make([]exit.ClearanceItem, 0, len(req.Departments))
	for _, dept := range req.Departments {
		items = append(items, exit.ClearanceItem{
			ResignationID: req.ResignationID,
			Department:    dept,
			Status:        exit.ClearancePending,
		})
	}
	assets := make([]exit.Asset, 0, len(req.AssetNames))
	for _, name := range req.AssetNames {
		assets = append(assets, exit.Asset{
			ResignationID: req.ResignationID,
			Name:          name,
			Status:        exit.AssetAssigned,
		})
	}

	return s.inTransaction(ctx, func(ctx context.Context) error {
		if err := s.ChecklistRepository.CreateClearanceItems(ctx, items); err != nil {
			return err
		}
		if len(assets) > 0 {
			if err := s.ChecklistRepository.CreateAssets(ctx, assets); err != nil {
				return err
			}
		}
		_, err := s.ChecklistRepository.UpsertHRForm(ctx, exit.HRForm{ResignationID: req.ResignationID})
		return err
	})
}

// GetChecklist implements exit.ExitService.
func (s *ExitServiceImpl) GetChecklist(ctx context.Context, resignationID string) ([]exit.ClearanceItem, []exit.Asset, *exit.HRForm, error) {
	items, err := s.ChecklistRepository.GetClearanceItems(ctx, resignationID)
	if err != nil {
		return nil, nil, nil, err
	}
	assets, err := s.ChecklistRepository.GetAssets(ctx, resignationID)
	if err != nil {
		return nil, nil, nil, err
	}
	form, err := s.ChecklistRepository.GetHRForm(ctx, resignationID)
	if err != nil {
		return nil, nil, nil, err
	}
	return items, assets, form, nil
}

// ClearItem implements exit.ExitService.
func (s *ExitServiceImpl) ClearItem(ctx context.Context, itemID string, actor exit.Actor, remarks *string) error {
	now := time.Now().UTC()
	return s.ChecklistRepository.UpdateClearanceItem(ctx, exit.ClearanceItem{
		ID:        itemID,
		Status:    exit.ClearanceCleared,
		ClearedBy: &actor.UserID,
		ClearedAt: &now,
		Remarks:   remarks,
	})
}

// ReturnAsset implements exit.ExitService.
func (s *ExitServiceImpl) ReturnAsset(ctx context.Context, assetID string) error {
	now := time.Now().UTC()
	return s.ChecklistRepository.UpdateAsset(ctx, exit.Asset{
		ID:         assetID,
		Status:     exit.AssetReturned,
		ReturnedAt: &now,
	})
}

// SubmitHRForm implements exit.ExitService.
func (s *ExitServiceImpl) SubmitHRForm(ctx context.Context, resignationID string, feedback *string) error {
	now := time.Now().UTC()
	_, err := s.ChecklistRepository.UpsertHRForm(ctx, exit.HRForm{
		ResignationID: resignationID,
		Submitted:     true,
		Feedback:      feedback,
		SubmittedAt:   &now,
	})
	return err
}

// CompleteExit implements exit.ExitService. The checklist gate: every
// clearance item cleared, every asset returned, the HR form submitted. On
// success the employee is marked separated as of the last working date.
func (s *ExitServiceImpl) CompleteExit(ctx context.Context, resignationID string, actor exit.Actor) error {
	resignation, err := s.ResignationRepository.GetByID(ctx, resignationID)
	if err != nil {
		return err
	}
	if resignation.IsExitCompleted {
		return exit.ErrExitAlreadyCompleted
	}
	if resignation.State != approval.StateApproved {
		return fmt.Errorf("%w: state %s", exit.ErrResignationNotApproved, resignation.State)
	}

	items, assets, form, err := s.GetChecklist(ctx, resignationID)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return exit.ErrChecklistNotInitiated
	}
	for _, item := range items {
		if item.Status != exit.ClearanceCleared {
			return fmt.Errorf("%w: %s", exit.ErrClearancePending, item.Department)
		}
	}
	for _, asset := range assets {
		if asset.Status != exit.AssetReturned {
			return fmt.Errorf("%w: %s", exit.ErrAssetsNotReturned, asset.Name)
		}
	}
	if form == nil || !form.Submitted {
		return exit.ErrHRFormNotSubmitted
	}

	exitDate := resignation.LastWorkingDate.Format("2006-01-02")
	return s.inTransaction(ctx, func(ctx context.Context) error {
		if err := s.ResignationRepository.MarkCompleted(ctx, resignationID); err != nil {
			return err
		}
		return s.EmployeeRepository.SetStatus(ctx, resignation.EmployeeID, employee.EmploymentStatusSeparated, &exitDate)
	})
}

// CreateFnF implements exit.ExitService. Encashment value is days times the
// per-day rate; the leave balance is debited through the shared ledger so the
// settlement and the balance never disagree.
func (s *ExitServiceImpl) CreateFnF(ctx context.Context, req exit.CreateFnFRequest, actor exit.Actor) (exit.FnFSettlement, error) {
	resignation, err := s.ResignationRepository.GetByID(ctx, req.ResignationID)
	if err != nil {
		return exit.FnFSettlement{}, err
	}
	if resignation.State != approval.StateApproved {
		return exit.FnFSettlement{}, fmt.Errorf("%w: resignation state %s", exit.ErrFnFNotEligible, resignation.State)
	}

	existing, err := s.FnFRepository.GetByResignationID(ctx, req.ResignationID)
	if err != nil {
		return exit.FnFSettlement{}, err
	}
	if existing != nil {
		return exit.FnFSettlement{}, exit.ErrFnFExists
	}

	value := req.LeaveEncashmentDays.Mul(req.PerDayRate)
	fnf := exit.FnFSettlement{
		ResignationID:        req.ResignationID,
		EmployeeID:           resignation.EmployeeID,
		LeaveEncashmentDays:  req.LeaveEncashmentDays,
		LeaveEncashmentValue: value,
		DeductionAmount:      req.DeductionAmount,
		NetAmount:            value.Sub(req.DeductionAmount),
		Status:               exit.FnFStatusDraft,
	}

	if req.LeaveEncashmentDays.IsPositive() {
		_, err = s.leaveService.DebitForSettlement(ctx, resignation.EmployeeID, req.LeaveTypeID,
			req.LeaveEncashmentDays, leave.Actor{UserID: actor.UserID, EmployeeID: actor.EmployeeID, Role: actor.Role})
		if err != nil {
			return exit.FnFSettlement{}, fmt.Errorf("debit leave for settlement: %w", err)
		}
	}

	return s.FnFRepository.Create(ctx, fnf)
}

// SettleFnF implements exit.ExitService.
func (s *ExitServiceImpl) SettleFnF(ctx context.Context, fnfID string) error {
	return s.FnFRepository.MarkSettled(ctx, fnfID)
}

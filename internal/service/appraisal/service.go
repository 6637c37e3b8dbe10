package appraisal

import (
	"context"
	"fmt"
	"time"

	"github.com/kelolahr/hrms-backend-go/internal/domain/appraisal"
	"github.com/kelolahr/hrms-backend-go/internal/domain/approval"
	"github.com/kelolahr/hrms-backend-go/internal/domain/employee"
	"github.com/kelolahr/hrms-backend-go/internal/pkg/database"
	"github.com/kelolahr/hrms-backend-go/internal/pkg/validator"
	"github.com/kelolahr/hrms-backend-go/internal/repository/postgresql"
	approvalsvc "github.com/kelolahr/hrms-backend-go/internal/service/approval"
)

type AppraisalServiceImpl struct {
	db *database.DB
	appraisal.CycleRepository
	appraisal.FormRepository
	appraisal.PIProposalRepository
	approval.ApprovalActionRepository
	employee.EmployeeRepository

	formMachine     *approvalsvc.Machine
	proposalMachine *approvalsvc.Machine
}

func NewAppraisalService(
	db *database.DB,
	cycleRepo appraisal.CycleRepository,
	formRepo appraisal.FormRepository,
	proposalRepo appraisal.PIProposalRepository,
	actionRepo approval.ApprovalActionRepository,
	employeeRepo employee.EmployeeRepository,
) appraisal.AppraisalService {
	return &AppraisalServiceImpl{
		db:                       db,
		CycleRepository:          cycleRepo,
		FormRepository:           formRepo,
		PIProposalRepository:     proposalRepo,
		ApprovalActionRepository: actionRepo,
		EmployeeRepository:       employeeRepo,
		formMachine:              approvalsvc.TwoStage(),
		proposalMachine:          approvalsvc.ThreeStage(),
	}
}

func (s *AppraisalServiceImpl) inTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return postgresql.WithTransaction(ctx, s.db, fn)
}

// CreateCycle implements appraisal.AppraisalService. The cycle and its items
// land together or not at all.
func (s *AppraisalServiceImpl) CreateCycle(ctx context.Context, req appraisal.CreateCycleRequest, items []appraisal.Item) (appraisal.Cycle, error) {
	periodStart, periodEnd, ok := validator.IsValidDateRange(req.PeriodStart, req.PeriodEnd)
	if !ok {
		return appraisal.Cycle{}, fmt.Errorf("invalid cycle period %q..%q", req.PeriodStart, req.PeriodEnd)
	}

	var created appraisal.Cycle
	err := s.inTransaction(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.CycleRepository.CreateCycle(ctx, appraisal.Cycle{
			CompanyID:              req.CompanyID,
			Name:                   req.Name,
			PeriodStart:            periodStart,
			PeriodEnd:              periodEnd,
			KpiSectionWeight:       req.KpiSectionWeight,
			CoreValueSectionWeight: req.CoreValueSectionWeight,
			Status:                 appraisal.CycleStatusOpen,
		})
		if err != nil {
			return err
		}
		for i := range items {
			items[i].CycleID = created.ID
		}
		return s.CycleRepository.CreateItems(ctx, items)
	})
	if err != nil {
		return appraisal.Cycle{}, err
	}
	return created, nil
}

// ListCycles implements appraisal.AppraisalService.
func (s *AppraisalServiceImpl) ListCycles(ctx context.Context, companyID string) ([]appraisal.Cycle, error) {
	return s.CycleRepository.GetCyclesByCompanyID(ctx, companyID)
}

// CreateForm implements appraisal.AppraisalService. One form per
// (employee, cycle); the cycle must still be open.
func (s *AppraisalServiceImpl) CreateForm(ctx context.Context, cycleID, employeeID string) (appraisal.Form, error) {
	cycle, err := s.CycleRepository.GetCycleByID(ctx, cycleID)
	if err != nil {
		return appraisal.Form{}, err
	}
	if cycle.Status != appraisal.CycleStatusOpen {
		return appraisal.Form{}, appraisal.ErrCycleClosed
	}
	if _, err := s.EmployeeRepository.GetByID(ctx, employeeID); err != nil {
		return appraisal.Form{}, err
	}
	return s.FormRepository.Create(ctx, appraisal.Form{
		CycleID:    cycleID,
		EmployeeID: employeeID,
		Ratings:    appraisal.Ratings{},
		State:      approval.StateDraft,
	})
}

// GetForm implements appraisal.AppraisalService.
func (s *AppraisalServiceImpl) GetForm(ctx context.Context, formID string) (appraisal.Form, error) {
	return s.FormRepository.GetByID(ctx, formID)
}

// SubmitRatings implements appraisal.AppraisalService. Merges one side's
// ratings into the form without clobbering the other side's, then recomputes
// the section and overall scores.
func (s *AppraisalServiceImpl) SubmitRatings(ctx context.Context, req appraisal.SubmitRatingsRequest) (appraisal.Form, error) {
	form, err := s.FormRepository.GetByID(ctx, req.FormID)
	if err != nil {
		return appraisal.Form{}, err
	}
	if form.State.IsTerminal() {
		return appraisal.Form{}, fmt.Errorf("form %s is already %s", form.ID, form.State)
	}

	if form.Ratings == nil {
		form.Ratings = appraisal.Ratings{}
	}
	for itemID, incoming := range req.Ratings {
		current := form.Ratings[itemID]
		if req.AsRole == "manager" {
			current.ManagerRating = incoming.ManagerRating
			current.ManagerComment = incoming.ManagerComment
		} else {
			current.SelfRating = incoming.SelfRating
			current.SelfComment = incoming.SelfComment
		}
		form.Ratings[itemID] = current
	}

	cycle, err := s.CycleRepository.GetCycleByID(ctx, form.CycleID)
	if err != nil {
		return appraisal.Form{}, err
	}
	items, err := s.CycleRepository.GetItemsByCycleID(ctx, form.CycleID)
	if err != nil {
		return appraisal.Form{}, err
	}
	scores, err := ComputeScores(cycle, items, form.Ratings)
	if err != nil {
		return appraisal.Form{}, err
	}
	form.KpiScore = &scores.KpiScore
	form.CoreValueScore = &scores.CoreValueScore
	form.OverallScore = &scores.OverallScore

	if err := s.FormRepository.Update(ctx, form); err != nil {
		return appraisal.Form{}, err
	}
	return form, nil
}

// SubmitForm implements appraisal.AppraisalService.
func (s *AppraisalServiceImpl) SubmitForm(ctx context.Context, formID string) (appraisal.Form, error) {
	form, err := s.FormRepository.GetByID(ctx, formID)
	if err != nil {
		return appraisal.Form{}, err
	}

	state, err := s.formMachine.Submit(form.State)
	if err != nil {
		return appraisal.Form{}, err
	}
	fromState := form.State
	form.State = state

	err = s.inTransaction(ctx, func(ctx context.Context) error {
		if err := s.FormRepository.Update(ctx, form); err != nil {
			return err
		}
		_, err := s.ApprovalActionRepository.Append(ctx, approvalsvc.Record(
			approval.KindAppraisalForm, form.ID,
			fromState, state, approval.ActionSubmit,
			approvalsvc.Actor{ID: form.EmployeeID}, "",
		))
		return err
	})
	if err != nil {
		return appraisal.Form{}, err
	}
	return form, nil
}

// DecideForm implements appraisal.AppraisalService.
func (s *AppraisalServiceImpl) DecideForm(ctx context.Context, formID string, actor appraisal.Actor, action approval.Action, comments string) (appraisal.Form, error) {
	form, err := s.FormRepository.GetByID(ctx, formID)
	if err != nil {
		return appraisal.Form{}, err
	}

	machineActor, err := s.resolveActor(ctx, actor, form.EmployeeID)
	if err != nil {
		return appraisal.Form{}, err
	}

	nextState, err := s.formMachine.Decide(form.State, machineActor, action)
	if err != nil {
		return appraisal.Form{}, err
	}
	fromState := form.State
	form.State = nextState

	err = s.inTransaction(ctx, func(ctx context.Context) error {
		if err := s.FormRepository.Update(ctx, form); err != nil {
			return err
		}
		_, err := s.ApprovalActionRepository.Append(ctx, approvalsvc.Record(
			approval.KindAppraisalForm, form.ID,
			fromState, nextState, action, machineActor, comments,
		))
		return err
	})
	if err != nil {
		return appraisal.Form{}, err
	}
	return form, nil
}

func (s *AppraisalServiceImpl) resolveActor(ctx context.Context, actor appraisal.Actor, ownerEmployeeID string) (approvalsvc.Actor, error) {
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

// proposalState maps the proposal's stage/status pair onto the shared
// workflow states.
func proposalState(p appraisal.PIProposal) approval.State {
	switch p.Status {
	case appraisal.PIStatusApproved:
		return approval.StateApproved
	case appraisal.PIStatusRejected:
		return approval.StateRejected
	case appraisal.PIStatusDraft:
		return approval.StateDraft
	}
	switch p.Stage {
	case appraisal.PIStageHR:
		return approval.StatePendingHR
	case appraisal.PIStageManagement:
		return approval.StatePendingManagement
	default:
		return approval.StatePendingManager
	}
}

// applyProposalState writes the workflow state back onto the stage/status pair.
func applyProposalState(p *appraisal.PIProposal, state approval.State) {
	switch state {
	case approval.StateApproved:
		p.Status = appraisal.PIStatusApproved
	case approval.StateRejected:
		p.Status = appraisal.PIStatusRejected
	case approval.StatePendingManager:
		p.Status = appraisal.PIStatusSubmitted
		p.Stage = appraisal.PIStageManager
	case approval.StatePendingHR:
		p.Status = appraisal.PIStatusSubmitted
		p.Stage = appraisal.PIStageHR
	case approval.StatePendingManagement:
		p.Status = appraisal.PIStatusSubmitted
		p.Stage = appraisal.PIStageManagement
	}
}

// CreateProposal implements appraisal.AppraisalService. Proposals are
// submitted on creation and start at the manager stage.
func (s *AppraisalServiceImpl) CreateProposal(ctx context.Context, req appraisal.CreatePIProposalRequest) (appraisal.PIProposal, error) {
	if _, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
		return appraisal.PIProposal{}, err
	}

	state, err := s.proposalMachine.Submit(approval.StateDraft)
	if err != nil {
		return appraisal.PIProposal{}, err
	}
	now := time.Now().UTC()

	proposal := appraisal.PIProposal{
		EmployeeID:            req.EmployeeID,
		CompanyID:             req.CompanyID,
		CycleID:               req.CycleID,
		ProposedDesignationID: req.ProposedDesignationID,
		ProposedIncrementPct:  req.ProposedIncrementPct,
		Justification:         req.Justification,
		SubmittedAt:           &now,
	}
	applyProposalState(&proposal, state)

	var created appraisal.PIProposal
	err = s.inTransaction(ctx, func(ctx context.Context) error {
		created, err = s.PIProposalRepository.Create(ctx, proposal)
		if err != nil {
			return err
		}
		_, err = s.ApprovalActionRepository.Append(ctx, approvalsvc.Record(
			approval.KindPIProposal, created.ID,
			approval.StateDraft, state, approval.ActionSubmit,
			approvalsvc.Actor{ID: req.EmployeeID}, "",
		))
		return err
	})
	if err != nil {
		return appraisal.PIProposal{}, err
	}
	return created, nil
}

// DecideProposal implements appraisal.AppraisalService. Final approval flags
// the proposal letter-eligible.
func (s *AppraisalServiceImpl) DecideProposal(ctx context.Context, proposalID string, actor appraisal.Actor, action approval.Action, comments string) (appraisal.PIProposal, error) {
	proposal, err := s.PIProposalRepository.GetByID(ctx, proposalID)
	if err != nil {
		return appraisal.PIProposal{}, err
	}

	machineActor, err := s.resolveActor(ctx, actor, proposal.EmployeeID)
	if err != nil {
		return appraisal.PIProposal{}, err
	}

	fromState := proposalState(proposal)
	nextState, err := s.proposalMachine.Decide(fromState, machineActor, action)
	if err != nil {
		return appraisal.PIProposal{}, err
	}

	applyProposalState(&proposal, nextState)
	if nextState.IsTerminal() {
		now := time.Now().UTC()
		proposal.DecidedAt = &now
		proposal.DecidedBy = &actor.UserID
	}
	if nextState == approval.StateApproved {
		proposal.LetterEligible = true
	}

	err = s.inTransaction(ctx, func(ctx context.Context) error {
		if err := s.PIProposalRepository.Update(ctx, proposal); err != nil {
			return err
		}
		_, err := s.ApprovalActionRepository.Append(ctx, approvalsvc.Record(
			approval.KindPIProposal, proposal.ID,
			fromState, nextState, action, machineActor, comments,
		))
		return err
	})
	if err != nil {
		return appraisal.PIProposal{}, err
	}
	return proposal, nil
}

// ListProposals implements appraisal.AppraisalService.
func (s *AppraisalServiceImpl) ListProposals(ctx context.Context, companyID string) ([]appraisal.PIProposal, error) {
	return s.PIProposalRepository.GetByCompanyID(ctx, companyID)
}

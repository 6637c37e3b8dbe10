package appraisal

import (
	"context"

	"github.com/kelolahr/hrms-backend-go/internal/domain/approval"
	"github.com/kelolahr/hrms-backend-go/internal/domain/user"
)

// Actor mirrors leave.Actor for appraisal decisions.
type Actor struct {
	UserID     string
	EmployeeID string
	Role       user.Role
}

type AppraisalService interface {
	CreateCycle(ctx context.Context, req CreateCycleRequest, items []Item) (Cycle, error)
	ListCycles(ctx context.Context, companyID string) ([]Cycle, error)

	CreateForm(ctx context.Context, cycleID, employeeID string) (Form, error)
	GetForm(ctx context.Context, formID string) (Form, error)
	// SubmitRatings merges ratings into the form and recomputes scores.
	SubmitRatings(ctx context.Context, req SubmitRatingsRequest) (Form, error)
	SubmitForm(ctx context.Context, formID string) (Form, error)
	DecideForm(ctx context.Context, formID string, actor Actor, action approval.Action, comments string) (Form, error)

	// Promotion / increment proposals
	CreateProposal(ctx context.Context, req CreatePIProposalRequest) (PIProposal, error)
	DecideProposal(ctx context.Context, proposalID string, actor Actor, action approval.Action, comments string) (PIProposal, error)
	ListProposals(ctx context.Context, companyID string) ([]PIProposal, error)
}

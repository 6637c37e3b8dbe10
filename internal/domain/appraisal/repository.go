package appraisal

import "context"

// CycleRepository - interface for appraisal_cycles and appraisal_items tables.
type CycleRepository interface {
	CreateCycle(ctx context.Context, cycle Cycle) (Cycle, error)
	GetCycleByID(ctx context.Context, id string) (Cycle, error)
	GetCyclesByCompanyID(ctx context.Context, companyID string) ([]Cycle, error)

	CreateItems(ctx context.Context, items []Item) error
	GetItemsByCycleID(ctx context.Context, cycleID string) ([]Item, error)
}

// FormRepository - interface for appraisal_forms table.
type FormRepository interface {
	Create(ctx context.Context, form Form) (Form, error)
	GetByID(ctx context.Context, id string) (Form, error)
	GetByEmployeeAndCycle(ctx context.Context, employeeID, cycleID string) (*Form, error)
	Update(ctx context.Context, form Form) error
}

// PIProposalRepository - interface for pi_proposals table.
type PIProposalRepository interface {
	Create(ctx context.Context, proposal PIProposal) (PIProposal, error)
	GetByID(ctx context.Context, id string) (PIProposal, error)
	GetByCompanyID(ctx context.Context, companyID string) ([]PIProposal, error)
	Update(ctx context.Context, proposal PIProposal) error
}

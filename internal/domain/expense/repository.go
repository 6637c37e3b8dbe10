package expense

import "context"

// ClaimRepository - interface for expense_claims table.
type ClaimRepository interface {
	Create(ctx context.Context, claim Claim) (Claim, error)
	GetByID(ctx context.Context, id string) (Claim, error)
	GetByCompanyID(ctx context.Context, companyID string) ([]Claim, error)
	UpdateState(ctx context.Context, claim Claim) error
}

// AdvanceRepository - interface for expense_advances table.
type AdvanceRepository interface {
	Create(ctx context.Context, advance Advance) (Advance, error)
	GetByID(ctx context.Context, id string) (Advance, error)
	// Close marks an open advance closed; closing a closed advance fails with
	// ErrAdvanceClosed.
	Close(ctx context.Context, id string) error
}

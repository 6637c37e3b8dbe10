package approval

import "context"

// ApprovalActionRepository - interface for approval_actions table.
// Append-only: transitions are never edited or deleted.
type ApprovalActionRepository interface {
	Append(ctx context.Context, action ApprovalAction) (ApprovalAction, error)
	GetByEntity(ctx context.Context, kind EntityKind, entityID string) ([]ApprovalAction, error)
}

package expense

import (
	"context"

	"github.com/kelolahr/hrms-backend-go/internal/domain/approval"
	"github.com/kelolahr/hrms-backend-go/internal/domain/user"
)

// Actor mirrors leave.Actor for expense decisions.
type Actor struct {
	UserID     string
	EmployeeID string
	Role       user.Role
}

type ExpenseService interface {
	CreateAdvance(ctx context.Context, req CreateAdvanceRequest) (Advance, error)
	CreateClaim(ctx context.Context, req CreateClaimRequest) (Claim, error)
	// DecideClaim runs the shared approval flow; final approval closes the
	// linked advance.
	DecideClaim(ctx context.Context, claimID string, actor Actor, action approval.Action, comments string) (Claim, error)
	ListClaims(ctx context.Context, companyID string) ([]Claim, error)
}

package exit

import (
	"context"

	"github.com/kelolahr/hrms-backend-go/internal/domain/approval"
	"github.com/kelolahr/hrms-backend-go/internal/domain/user"
)

// Actor mirrors leave.Actor for exit decisions.
type Actor struct {
	UserID     string
	EmployeeID string
	Role       user.Role
}

type ExitService interface {
	CreateResignation(ctx context.Context, req CreateResignationRequest) (ResignationRequest, error)
	DecideResignation(ctx context.Context, resignationID string, actor Actor, action approval.Action, comments string) (ResignationRequest, error)
	ListResignations(ctx context.Context, companyID string) ([]ResignationRequest, error)

	// Checklist
	InitChecklist(ctx context.Context, req InitChecklistRequest) error
	GetChecklist(ctx context.Context, resignationID string) ([]ClearanceItem, []Asset, *HRForm, error)
	ClearItem(ctx context.Context, itemID string, actor Actor, remarks *string) error
	ReturnAsset(ctx context.Context, assetID string) error
	SubmitHRForm(ctx context.Context, resignationID string, feedback *string) error

	// CompleteExit verifies the checklist and marks the employee separated.
	CompleteExit(ctx context.Context, resignationID string, actor Actor) error

	// Full & final
	CreateFnF(ctx context.Context, req CreateFnFRequest, actor Actor) (FnFSettlement, error)
	SettleFnF(ctx context.Context, fnfID string) error
}

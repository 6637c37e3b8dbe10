package exit

import "context"

// ResignationRepository - interface for resignation_requests table.
type ResignationRepository interface {
	Create(ctx context.Context, req ResignationRequest) (ResignationRequest, error)
	GetByID(ctx context.Context, id string) (ResignationRequest, error)
	GetOpenByEmployeeID(ctx context.Context, employeeID string) (*ResignationRequest, error)
	GetByCompanyID(ctx context.Context, companyID string) ([]ResignationRequest, error)
	UpdateState(ctx context.Context, req ResignationRequest) error
	MarkCompleted(ctx context.Context, id string) error
}

// ChecklistRepository - clearance items, assets and the HR form for one
// resignation.
type ChecklistRepository interface {
	CreateClearanceItems(ctx context.Context, items []ClearanceItem) error
	GetClearanceItems(ctx context.Context, resignationID string) ([]ClearanceItem, error)
	UpdateClearanceItem(ctx context.Context, item ClearanceItem) error

	CreateAssets(ctx context.Context, assets []Asset) error
	GetAssets(ctx context.Context, resignationID string) ([]Asset, error)
	UpdateAsset(ctx context.Context, asset Asset) error

	UpsertHRForm(ctx context.Context, form HRForm) (HRForm, error)
	GetHRForm(ctx context.Context, resignationID string) (*HRForm, error)
}

// FnFRepository - interface for fnf_settlements table.
type FnFRepository interface {
	Create(ctx context.Context, fnf FnFSettlement) (FnFSettlement, error)
	GetByResignationID(ctx context.Context, resignationID string) (*FnFSettlement, error)
	MarkSettled(ctx context.Context, id string) error
}

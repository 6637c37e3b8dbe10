package exit

import (
	"time"

	"github.com/kelolahr/hrms-backend-go/internal/domain/approval"
	"github.com/shopspring/decimal"
)

// ResignationRequest runs through the shared approval flow. IsExitCompleted is
// the terminal gate: all clearance items cleared, all assets returned, HR form
// submitted.
type ResignationRequest struct {
	ID              string
	EmployeeID      string
	CompanyID       string
	Reason          string
	NoticeDate      time.Time
	LastWorkingDate time.Time

	State           approval.State
	RejectionReason *string
	SubmittedAt     *time.Time
	DecidedAt       *time.Time
	DecidedBy       *string

	IsExitCompleted bool
	CompletedAt     *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields
	EmployeeName *string
}

type ClearanceStatus string

const (
	ClearancePending ClearanceStatus = "pending"
	ClearanceCleared ClearanceStatus = "cleared"
)

// ClearanceItem - one departmental sign-off in the exit checklist.
type ClearanceItem struct {
	ID            string
	ResignationID string
	Department    string
	Status        ClearanceStatus
	ClearedBy     *string
	ClearedAt     *time.Time
	Remarks       *string
}

type AssetStatus string

const (
	AssetAssigned AssetStatus = "assigned"
	AssetReturned AssetStatus = "returned"
)

// Asset - one company asset that must come back before exit completes.
type Asset struct {
	ID            string
	ResignationID string
	Name          string
	AssetTag      *string
	Status        AssetStatus
	ReturnedAt    *time.Time
}

// HRForm - the exit interview form; submission is required for completion.
type HRForm struct {
	ID            string
	ResignationID string
	Submitted     bool
	Feedback      *string
	SubmittedAt   *time.Time
}

type FnFStatus string

const (
	FnFStatusDraft   FnFStatus = "draft"
	FnFStatusSettled FnFStatus = "settled"
)

// FnFSettlement - full & final payout, one-to-one with an HR-approved
// resignation.
type FnFSettlement struct {
	ID                   string
	ResignationID        string
	EmployeeID           string
	LeaveEncashmentDays  decimal.Decimal
	LeaveEncashmentValue decimal.Decimal
	DeductionAmount      decimal.Decimal
	NetAmount            decimal.Decimal
	Status               FnFStatus
	SettledAt            *time.Time
	CreatedAt            time.Time
}

package expense

import (
	"time"

	"github.com/kelolahr/hrms-backend-go/internal/domain/approval"
	"github.com/shopspring/decimal"
)

type AdvanceStatus string

const (
	AdvanceStatusOpen   AdvanceStatus = "open"
	AdvanceStatusClosed AdvanceStatus = "closed"
)

// Advance - money paid out before the expense; closed when the linked claim
// reaches final approval.
type Advance struct {
	ID         string
	EmployeeID string
	CompanyID  string
	Amount     decimal.Decimal
	Purpose    string
	Status     AdvanceStatus
	ClosedAt   *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Claim runs through the shared approval flow; HR approval closes the linked
// advance.
type Claim struct {
	ID         string
	EmployeeID string
	CompanyID  string
	Title      string
	Amount     decimal.Decimal
	ExpenseOn  time.Time
	AdvanceID  *string

	State           approval.State
	RejectionReason *string
	SubmittedAt     *time.Time
	DecidedAt       *time.Time
	DecidedBy       *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields
	EmployeeName *string
}

package appraisal

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/kelolahr/hrms-backend-go/internal/domain/approval"
	"github.com/shopspring/decimal"
)

type CycleStatus string

const (
	CycleStatusOpen   CycleStatus = "open"
	CycleStatusClosed CycleStatus = "closed"
)

// Cycle - one appraisal cycle per company, e.g. "FY25 Annual".
type Cycle struct {
	ID                     string
	CompanyID              string
	Name                   string
	PeriodStart            time.Time
	PeriodEnd              time.Time
	KpiSectionWeight       float64
	CoreValueSectionWeight float64
	Status                 CycleStatus
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

type ItemKind string

const (
	ItemKindKPI       ItemKind = "kpi"
	ItemKindCoreValue ItemKind = "core_value"
)

// Item - one goal or core value being rated, with its weightage inside the
// section (weightages per section are expected to sum to 100).
type Item struct {
	ID        string
	CycleID   string
	Kind      ItemKind
	Title     string
	Weightage float64
}

// Rating holds both sides' ratings for one item. The manager rating is
// authoritative for scoring once present.
type Rating struct {
	SelfRating     *float64 `json:"self_rating,omitempty"`
	SelfComment    *string  `json:"self_comment,omitempty"`
	ManagerRating  *float64 `json:"manager_rating,omitempty"`
	ManagerComment *string  `json:"manager_comment,omitempty"`
}

// Ratings is keyed by item id; stored as JSONB.
type Ratings map[string]Rating

// Value implements driver.Valuer for database storage
func (r Ratings) Value() (driver.Value, error) {
	if r == nil {
		return nil, nil
	}
	return json.Marshal(r)
}

// Scan implements sql.Scanner for database retrieval
func (r *Ratings) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan Ratings: invalid type")
	}
	return json.Unmarshal(bytes, r)
}

// Form - one appraisal per (employee, cycle). Section and overall scores are
// derived fields recomputed on every rating mutation.
type Form struct {
	ID         string
	CycleID    string
	EmployeeID string
	Ratings    Ratings

	KpiScore       *float64
	CoreValueScore *float64
	OverallScore   *float64

	State     approval.State
	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields
	EmployeeName *string
}

// PIStage identifies who acts next on a promotion/increment proposal,
// distinct from the terminal status.
type PIStage string

const (
	PIStageManager    PIStage = "manager"
	PIStageHR         PIStage = "hr"
	PIStageManagement PIStage = "management"
)

type PIStatus string

const (
	PIStatusDraft     PIStatus = "draft"
	PIStatusSubmitted PIStatus = "submitted"
	PIStatusApproved  PIStatus = "approved"
	PIStatusRejected  PIStatus = "rejected"
)

// PIProposal - promotion/increment proposal; three-stage approval
// (manager, HR, management).
type PIProposal struct {
	ID                    string
	EmployeeID            string
	CompanyID             string
	CycleID               *string
	ProposedDesignationID *string
	ProposedIncrementPct  *decimal.Decimal
	Justification         string

	Stage  PIStage
	Status PIStatus

	SubmittedAt *time.Time
	DecidedAt   *time.Time
	DecidedBy   *string

	// Set on final approval: the proposal may feed letter generation.
	LetterEligible bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

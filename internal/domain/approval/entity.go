package approval

import "time"

// State is the workflow state shared by every approvable entity (leave
// requests, regularisations, resignations, expense claims, PI proposals,
// encashments). Pending states identify who acts next; Approved and Rejected
// are terminal.
type State string

const (
	StateDraft             State = "draft"
	StateSubmitted         State = "submitted"
	StatePendingManager    State = "pending_manager"
	StatePendingHR         State = "pending_hr"
	StatePendingManagement State = "pending_management"
	StateApproved          State = "approved"
	StateRejected          State = "rejected"
)

// IsTerminal reports whether no further transition is possible from s.
func (s State) IsTerminal() bool {
	return s == StateApproved || s == StateRejected
}

// IsPending reports whether s is waiting on an approver.
func (s State) IsPending() bool {
	return s == StatePendingManager || s == StatePendingHR || s == StatePendingManagement
}

type Action string

const (
	ActionSubmit  Action = "submit"
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

// EntityKind identifies which table an approval action belongs to.
type EntityKind string

const (
	KindLeaveRequest   EntityKind = "leave_request"
	KindEncashment     EntityKind = "leave_encashment"
	KindRegularisation EntityKind = "regularisation_request"
	KindResignation    EntityKind = "resignation_request"
	KindExpenseClaim   EntityKind = "expense_claim"
	KindAppraisalForm  EntityKind = "appraisal_form"
	KindPIProposal     EntityKind = "pi_proposal"
)

// ApprovalAction is one row of the mandatory audit trail. Every transition
// writes one, including rejections and submissions.
type ApprovalAction struct {
	ID         string
	EntityKind EntityKind
	EntityID   string
	FromState  State
	ToState    State
	Action     Action
	ActorID    string
	ActorRole  string
	Comments   *string
	CreatedAt  time.Time
}

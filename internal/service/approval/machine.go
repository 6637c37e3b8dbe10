package approval

import (
	"fmt"
	"time"

	"github.com/kelolahr/hrms-backend-go/internal/domain/approval"
	"github.com/kelolahr/hrms-backend-go/internal/domain/user"
)

// Actor is whoever is attempting a transition, resolved from JWT claims and
// the org tree before the machine is consulted.
type Actor struct {
	ID   string
	Role user.Role
	// IsManagerOfRecord is true when the actor is the resolved reporting
	// manager of the employee the entity belongs to.
	IsManagerOfRecord bool
}

// Stage is one pending state plus the rule for who may decide it.
type Stage struct {
	State   approval.State
	Permits func(Actor) bool
}

// Machine is the generic multi-stage approval workflow shared by leave
// requests, encashments, regularisations, resignations, expense claims and
// PI proposals. Instances differ only in their stage list; side effects on
// final approval belong to the calling service.
type Machine struct {
	stages []Stage
}

func NewMachine(stages ...Stage) *Machine {
	return &Machine{stages: stages}
}

// ManagerStage may only be decided by the employee's resolved manager.
func ManagerStage() Stage {
	return Stage{
		State:   approval.StatePendingManager,
		Permits: func(a Actor) bool { return a.IsManagerOfRecord },
	}
}

// HRStage may be decided by any HR or company-admin actor.
func HRStage() Stage {
	return Stage{
		State:   approval.StatePendingHR,
		Permits: func(a Actor) bool { return a.Role.IsHR() },
	}
}

// ManagementStage may be decided by company admins only.
func ManagementStage() Stage {
	return Stage{
		State:   approval.StatePendingManagement,
		Permits: func(a Actor) bool { return a.Role.IsAdmin() },
	}
}

// TwoStage is the Manager -> HR workflow used by most entities.
func TwoStage() *Machine {
	return NewMachine(ManagerStage(), HRStage())
}

// ThreeStage is the Manager -> HR -> Management workflow used by PI proposals.
func ThreeStage() *Machine {
	return NewMachine(ManagerStage(), HRStage(), ManagementStage())
}

// Submit routes a draft (or freshly created, already-submitted) entity to the
// first pending stage.
func (m *Machine) Submit(current approval.State) (approval.State, error) {
	if current != approval.StateDraft && current != approval.StateSubmitted {
		return "", fmt.Errorf("%w: cannot submit from %q", approval.ErrNotSubmittable, current)
	}
	if len(m.stages) == 0 {
		return approval.StateApproved, nil
	}
	return m.stages[0].State, nil
}

// Decide applies an approve/reject action by actor to the current state.
// Rejection at any pending stage is terminal; approval advances to the next
// stage, or to Approved at the final stage.
func (m *Machine) Decide(current approval.State, actor Actor, action approval.Action) (approval.State, error) {
	if current.IsTerminal() {
		return "", fmt.Errorf("%w: state is %q", approval.ErrAlreadyProcessed, current)
	}

	idx := m.stageIndex(current)
	if idx < 0 {
		return "", fmt.Errorf("%w: no decision possible in state %q", approval.ErrInvalidStageTransition, current)
	}

	if !m.stages[idx].Permits(actor) {
		return "", fmt.Errorf("%w: actor %s (role %s) may not decide stage %q",
			approval.ErrInvalidStageTransition, actor.ID, actor.Role, current)
	}

	switch action {
	case approval.ActionReject:
		return approval.StateRejected, nil
	case approval.ActionApprove:
		if idx == len(m.stages)-1 {
			return approval.StateApproved, nil
		}
		return m.stages[idx+1].State, nil
	default:
		return "", fmt.Errorf("%w: action %q", approval.ErrInvalidStageTransition, action)
	}
}

func (m *Machine) stageIndex(state approval.State) int {
	for i, s := range m.stages {
		if s.State == state {
			return i
		}
	}
	return -1
}

// Record builds the mandatory audit-trail row for a transition.
func Record(kind approval.EntityKind, entityID string, from, to approval.State, action approval.Action, actor Actor, comments string) approval.ApprovalAction {
	rec := approval.ApprovalAction{
		EntityKind: kind,
		EntityID:   entityID,
		FromState:  from,
		ToState:    to,
		Action:     action,
		ActorID:    actor.ID,
		ActorRole:  string(actor.Role),
		CreatedAt:  time.Now().UTC(),
	}
	if comments != "" {
		rec.Comments = &comments
	}
	return rec
}

package approval

import (
	"testing"

	"github.com/kelolahr/hrms-backend-go/internal/domain/approval"
	"github.com/kelolahr/hrms-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	manager    = Actor{ID: "mgr-1", Role: user.RoleManager, IsManagerOfRecord: true}
	notManager = Actor{ID: "mgr-2", Role: user.RoleManager, IsManagerOfRecord: false}
	hr         = Actor{ID: "hr-1", Role: user.RoleHR}
	admin      = Actor{ID: "adm-1", Role: user.RoleAdmin}
	employee   = Actor{ID: "emp-1", Role: user.RoleEmployee}
)

func TestMachine_Submit(t *testing.T) {
	m := TwoStage()

	state, err := m.Submit(approval.StateDraft)
	require.NoError(t, err)
	assert.Equal(t, approval.StatePendingManager, state)

	state, err = m.Submit(approval.StateSubmitted)
	require.NoError(t, err)
	assert.Equal(t, approval.StatePendingManager, state)

	_, err = m.Submit(approval.StateApproved)
	assert.ErrorIs(t, err, approval.ErrNotSubmittable)

	_, err = m.Submit(approval.StatePendingHR)
	assert.ErrorIs(t, err, approval.ErrNotSubmittable)
}

func TestMachine_TwoStage_HappyPath(t *testing.T) {
	m := TwoStage()

	state, err := m.Decide(approval.StatePendingManager, manager, approval.ActionApprove)
	require.NoError(t, err)
	assert.Equal(t, approval.StatePendingHR, state)

	state, err = m.Decide(approval.StatePendingHR, hr, approval.ActionApprove)
	require.NoError(t, err)
	assert.Equal(t, approval.StateApproved, state)
}

func TestMachine_RejectionIsTerminalAtAnyStage(t *testing.T) {
	m := TwoStage()

	state, err := m.Decide(approval.StatePendingManager, manager, approval.ActionReject)
	require.NoError(t, err)
	assert.Equal(t, approval.StateRejected, state)

	state, err = m.Decide(approval.StatePendingHR, hr, approval.ActionReject)
	require.NoError(t, err)
	assert.Equal(t, approval.StateRejected, state)
}

func TestMachine_TerminalStatesAreFrozen(t *testing.T) {
	m := TwoStage()

	_, err := m.Decide(approval.StateApproved, hr, approval.ActionApprove)
	assert.ErrorIs(t, err, approval.ErrAlreadyProcessed)

	_, err = m.Decide(approval.StateRejected, hr, approval.ActionApprove)
	assert.ErrorIs(t, err, approval.ErrAlreadyProcessed)
}

func TestMachine_ActorPermissions(t *testing.T) {
	m := TwoStage()

	// Only the employee's own manager may decide the manager stage.
	_, err := m.Decide(approval.StatePendingManager, notManager, approval.ActionApprove)
	assert.ErrorIs(t, err, approval.ErrInvalidStageTransition)

	_, err = m.Decide(approval.StatePendingManager, employee, approval.ActionApprove)
	assert.ErrorIs(t, err, approval.ErrInvalidStageTransition)

	// A manager without HR role may not decide the HR stage.
	_, err = m.Decide(approval.StatePendingHR, manager, approval.ActionApprove)
	assert.ErrorIs(t, err, approval.ErrInvalidStageTransition)

	// Admins count as HR.
	state, err := m.Decide(approval.StatePendingHR, admin, approval.ActionApprove)
	require.NoError(t, err)
	assert.Equal(t, approval.StateApproved, state)
}

func TestMachine_ThreeStage(t *testing.T) {
	m := ThreeStage()

	state, err := m.Decide(approval.StatePendingManager, manager, approval.ActionApprove)
	require.NoError(t, err)
	assert.Equal(t, approval.StatePendingHR, state)

	state, err = m.Decide(approval.StatePendingHR, hr, approval.ActionApprove)
	require.NoError(t, err)
	assert.Equal(t, approval.StatePendingManagement, state)

	// HR alone cannot decide the management stage.
	_, err = m.Decide(approval.StatePendingManagement, hr, approval.ActionApprove)
	assert.ErrorIs(t, err, approval.ErrInvalidStageTransition)

	state, err = m.Decide(approval.StatePendingManagement, admin, approval.ActionApprove)
	require.NoError(t, err)
	assert.Equal(t, approval.StateApproved, state)
}

func TestMachine_UnknownStateAndAction(t *testing.T) {
	m := TwoStage()

	_, err := m.Decide(approval.StateDraft, hr, approval.ActionApprove)
	assert.ErrorIs(t, err, approval.ErrInvalidStageTransition)

	_, err = m.Decide(approval.StatePendingHR, hr, approval.Action("escalate"))
	assert.ErrorIs(t, err, approval.ErrInvalidStageTransition)
}

func TestRecord(t *testing.T) {
	rec := Record(approval.KindLeaveRequest, "req-1",
		approval.StatePendingManager, approval.StatePendingHR,
		approval.ActionApprove, manager, "looks fine")

	assert.Equal(t, approval.KindLeaveRequest, rec.EntityKind)
	assert.Equal(t, "req-1", rec.EntityID)
	assert.Equal(t, approval.StatePendingManager, rec.FromState)
	assert.Equal(t, approval.StatePendingHR, rec.ToState)
	assert.Equal(t, "mgr-1", rec.ActorID)
	require.NotNil(t, rec.Comments)
	assert.Equal(t, "looks fine", *rec.Comments)

	rec = Record(approval.KindLeaveRequest, "req-1",
		approval.StatePendingHR, approval.StateApproved,
		approval.ActionApprove, hr, "")
	assert.Nil(t, rec.Comments)
}

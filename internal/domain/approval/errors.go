package approval

import "errors"

var (
	// ErrInvalidStageTransition covers both out-of-order actions and actions
	// taken by the wrong actor for the current stage.
	ErrInvalidStageTransition = errors.New("invalid approval stage transition")
	ErrAlreadyProcessed       = errors.New("request already approved or rejected")
	ErrNotSubmittable         = errors.New("only draft requests can be submitted")
)

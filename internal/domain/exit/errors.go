package exit

import "errors"

var (
	ErrResignationNotFound    = errors.New("resignation request not found")
	ErrResignationExists      = errors.New("an open resignation already exists for employee")
	ErrResignationNotApproved = errors.New("resignation is not approved")
	ErrChecklistNotInitiated  = errors.New("exit checklist has not been initialized")
	ErrClearancePending       = errors.New("clearance items are still pending")
	ErrAssetsNotReturned      = errors.New("assets have not all been returned")
	ErrHRFormNotSubmitted     = errors.New("exit HR form has not been submitted")
	ErrExitAlreadyCompleted   = errors.New("exit already completed")
	ErrFnFNotEligible         = errors.New("FnF settlement requires an HR-approved resignation")
	ErrFnFExists              = errors.New("FnF settlement already exists for resignation")
)

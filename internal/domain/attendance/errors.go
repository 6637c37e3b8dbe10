package attendance

import "errors"

var (
	ErrAttendanceNotFound     = errors.New("attendance record not found")
	ErrPunchOutOfOrder        = errors.New("punch is earlier than the last recorded punch")
	ErrNoWorkSchedule         = errors.New("no work schedule resolved for employee")
	ErrRegularisationNotFound = errors.New("regularisation request not found")
	// ErrIncompleteAttendance - closure attempted while days in range remain
	// unclassified.
	ErrIncompleteAttendance = errors.New("unclassified attendance days inside period")
)

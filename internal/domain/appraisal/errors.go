package appraisal

import "errors"

var (
	ErrCycleNotFound    = errors.New("appraisal cycle not found")
	ErrCycleClosed      = errors.New("appraisal cycle is closed")
	ErrFormNotFound     = errors.New("appraisal form not found")
	ErrFormExists       = errors.New("appraisal form already exists for employee and cycle")
	ErrUnknownItem      = errors.New("rating refers to an unknown appraisal item")
	ErrProposalNotFound = errors.New("PI proposal not found")
)

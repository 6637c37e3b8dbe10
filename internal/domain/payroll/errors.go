package payroll

import "errors"

var (
	// ErrUnmappedStatus - an encountered attendance status has no payroll
	// mapping row for the company.
	ErrUnmappedStatus  = errors.New("attendance status has no payroll day type mapping")
	ErrSummaryNotFound = errors.New("payroll summary not found")
	ErrMappingExists   = errors.New("payroll mapping for status already exists")
)

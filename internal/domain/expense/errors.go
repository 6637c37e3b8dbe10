package expense

import "errors"

var (
	ErrClaimNotFound   = errors.New("expense claim not found")
	ErrAdvanceNotFound = errors.New("expense advance not found")
	ErrAdvanceClosed   = errors.New("expense advance is already closed")
)

package user

import "errors"

var (
	ErrHRAccessRequired    = errors.New("HR or company admin role required")
	ErrAdminAccessRequired = errors.New("company admin role required")
	ErrMissingClaims       = errors.New("required claims missing from token")
)

package leave

import "errors"

var (
	ErrLeaveTypeNotFound    = errors.New("leave type not found")
	ErrLeaveTypeInactive    = errors.New("leave type is inactive")
	ErrPolicyNotFound       = errors.New("leave policy not found")
	ErrNoPolicyMapping      = errors.New("no leave policy mapping resolves for employee and date")
	ErrBalanceNotFound      = errors.New("leave balance not found")
	ErrLeaveRequestNotFound = errors.New("leave request not found")
	ErrEncashmentNotFound   = errors.New("encashment request not found")
	ErrEncashmentNotAllowed = errors.New("leave type does not allow encashment")
	ErrAccrualRunNotFound   = errors.New("accrual run not found")
	ErrOverlappingLeave     = errors.New("overlapping leave request exists")

	// ErrPeriodClosed - attempted write into a closed range.
	ErrPeriodClosed = errors.New("period is closed for changes")
	// ErrInsufficientBalance - debit exceeds available balance under a
	// non-overdraft leave type.
	ErrInsufficientBalance = errors.New("insufficient leave balance")
	// ErrDuplicateAccrual - accrual idempotency key already credited.
	ErrDuplicateAccrual = errors.New("period already accrued for employee and leave type")
	// ErrBalanceDrift - cached balance disagrees with ledger replay.
	ErrBalanceDrift = errors.New("cached balance does not match ledger replay")
)

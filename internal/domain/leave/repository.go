package leave

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// LeaveTypeRepository - interface for leave_types table
type LeaveTypeRepository interface {
	Create(ctx context.Context, leaveType LeaveType) (LeaveType, error)
	GetByID(ctx context.Context, id string) (LeaveType, error)
	GetByCompanyID(ctx context.Context, companyID string) ([]LeaveType, error)
	GetActiveByCompanyID(ctx context.Context, companyID string) ([]LeaveType, error)
	Update(ctx context.Context, leaveType LeaveType) error
}

// PolicyRepository - interface for leave_policies, leave_policy_lines and
// leave_policy_mappings tables.
type PolicyRepository interface {
	CreatePolicy(ctx context.Context, policy LeavePolicy) (LeavePolicy, error)
	GetPolicyByID(ctx context.Context, id string) (LeavePolicy, error)
	GetPoliciesByCompanyID(ctx context.Context, companyID string) ([]LeavePolicy, error)
	SetPolicyStatus(ctx context.Context, id string, status PolicyStatus) error

	CreateMapping(ctx context.Context, mapping PolicyMapping) (PolicyMapping, error)
	// GetMappingsForCompany returns every mapping row for the company;
	// priority resolution happens in the service layer.
	GetMappingsForCompany(ctx context.Context, companyID string) ([]PolicyMapping, error)
}

// BalanceRepository - interface for employee_leave_balances and
// leave_balance_change_logs tables. UpdateCachedBalance and AppendChangeLog
// are expected to run inside one transaction.
type BalanceRepository interface {
	Create(ctx context.Context, balance Balance) (Balance, error)
	GetByID(ctx context.Context, id string) (Balance, error)
	GetCurrent(ctx context.Context, employeeID, leaveTypeID string, asOf time.Time) (Balance, error)
	GetByEmployee(ctx context.Context, employeeID string) ([]Balance, error)
	GetByCompanyForPeriod(ctx context.Context, companyID string, periodStart, periodEnd time.Time) ([]Balance, error)
	ApplyComponents(ctx context.Context, balanceID string, source ChangeSource, amount decimal.Decimal) error

	AppendChangeLog(ctx context.Context, log BalanceChangeLog) (BalanceChangeLog, error)
	GetChangeLogs(ctx context.Context, employeeID, leaveTypeID string) ([]BalanceChangeLog, error)
}

// AccrualRepository - interface for leave_accrual_runs and leave_accrual_lines.
type AccrualRepository interface {
	CreateRun(ctx context.Context, run AccrualRun) (AccrualRun, error)
	GetRunByID(ctx context.Context, id string) (AccrualRun, error)
	// FindRun looks up a run by company, type and exact period. Returns
	// ErrAccrualRunNotFound when no such run was recorded.
	FindRun(ctx context.Context, companyID string, runType AccrualRunType, periodStart, periodEnd time.Time) (AccrualRun, error)
	GetRunsByCompanyID(ctx context.Context, companyID string) ([]AccrualRun, error)
	SetRunTotals(ctx context.Context, runID string, status AccrualRunStatus, totalLines int) error

	// CreateLine inserts one accrual line. The idempotency key column carries
	// a unique constraint; a conflict surfaces as ErrDuplicateAccrual.
	CreateLine(ctx context.Context, line AccrualLine) (AccrualLine, error)
	LineExists(ctx context.Context, idempotencyKey string) (bool, error)
	GetLinesByRunID(ctx context.Context, runID string) ([]AccrualLine, error)
}

// ClosureRepository - interface for leave_period_closures table. Append-only.
type ClosureRepository interface {
	Append(ctx context.Context, closure PeriodClosure) (PeriodClosure, error)
	GetByCompanyID(ctx context.Context, companyID string) ([]PeriodClosure, error)
	// IsClosed reports whether date falls inside any closed range for the
	// company. Called at the start of every date-scoped write.
	IsClosed(ctx context.Context, companyID string, date time.Time) (bool, error)
	// RangeOverlapsClosure reports whether any date in [start, end] is closed.
	RangeOverlapsClosure(ctx context.Context, companyID string, start, end time.Time) (bool, error)
}

// RequestRepository - interface for leave_requests and
// leave_encashment_requests tables.
type RequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	GetByEmployeeID(ctx context.Context, employeeID string) ([]LeaveRequest, error)
	GetByCompanyID(ctx context.Context, companyID string) ([]LeaveRequest, error)
	// GetApprovedCovering returns approved full-day requests covering date.
	GetApprovedCovering(ctx context.Context, employeeID string, date time.Time) ([]LeaveRequest, error)
	HasOverlapping(ctx context.Context, employeeID string, start, end time.Time) (bool, error)
	UpdateState(ctx context.Context, req LeaveRequest) error

	CreateEncashment(ctx context.Context, request EncashmentRequest) (EncashmentRequest, error)
	GetEncashmentByID(ctx context.Context, id string) (EncashmentRequest, error)
	UpdateEncashmentState(ctx context.Context, req EncashmentRequest) error
}

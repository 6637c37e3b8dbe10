package leave

import (
	"context"
	"time"

	"github.com/kelolahr/hrms-backend-go/internal/domain/approval"
	"github.com/kelolahr/hrms-backend-go/internal/domain/user"
	"github.com/shopspring/decimal"
)

// Actor identifies who is performing a balance mutation or approval decision.
type Actor struct {
	UserID     string
	EmployeeID string
	Role       user.Role
}

type LeaveService interface {
	// Types
	CreateLeaveType(ctx context.Context, req CreateLeaveTypeRequest) (LeaveType, error)
	ListLeaveTypes(ctx context.Context, companyID string) ([]LeaveType, error)

	// Policies and mappings
	CreatePolicy(ctx context.Context, policy LeavePolicy) (LeavePolicy, error)
	ActivatePolicy(ctx context.Context, policyID string) error
	ListPolicies(ctx context.Context, companyID string) ([]LeavePolicy, error)
	CreateMapping(ctx context.Context, mapping PolicyMapping) (PolicyMapping, error)
	ListMappings(ctx context.Context, companyID string) ([]PolicyMapping, error)
	// ResolvePolicy picks the governing mapping for an employee on a date.
	ResolvePolicy(ctx context.Context, employeeID string, asOf time.Time) (PolicyMapping, error)

	// Balances and ledger
	GetBalances(ctx context.Context, employeeID string) ([]BalanceResponse, error)
	GetLedger(ctx context.Context, employeeID, leaveTypeID string) ([]BalanceChangeLog, error)
	AdjustBalance(ctx context.Context, req AdjustBalanceRequest, actor Actor) (ApplyChangeResult, error)
	// Reconcile replays the ledger for every balance in the company and
	// reports rows whose cache drifted.
	Reconcile(ctx context.Context, companyID string, periodStart, periodEnd time.Time) ([]ReconcileResult, error)

	// Accrual
	TriggerAccrualRun(ctx context.Context, req TriggerAccrualRunRequest, actor Actor) (AccrualRun, error)
	ListAccrualRuns(ctx context.Context, companyID string) ([]AccrualRun, error)

	// Closure
	ClosePeriod(ctx context.Context, req ClosePeriodRequest, actor Actor) (PeriodClosure, error)
	ListClosures(ctx context.Context, companyID string) ([]PeriodClosure, error)

	// Requests
	CreateRequest(ctx context.Context, req CreateLeaveRequestRequest) (LeaveRequest, error)
	DecideRequest(ctx context.Context, req DecideRequestRequest, actor Actor, action approval.Action) (LeaveRequest, error)
	ListRequests(ctx context.Context, companyID string) ([]LeaveRequest, error)
	ListMyRequests(ctx context.Context, employeeID string) ([]LeaveRequest, error)

	// Encashment
	CreateEncashment(ctx context.Context, req CreateEncashmentRequest) (EncashmentRequest, error)
	DecideEncashment(ctx context.Context, requestID string, actor Actor, action approval.Action, comments string) (EncashmentRequest, error)

	// DebitForSettlement debits a balance outside the request flow, used by
	// the exit settlement to encash remaining days.
	DebitForSettlement(ctx context.Context, employeeID, leaveTypeID string, days decimal.Decimal, actor Actor) (ApplyChangeResult, error)
}

package leave

import (
	"time"

	"github.com/kelolahr/hrms-backend-go/internal/domain/approval"
	"github.com/shopspring/decimal"
)

// LeaveType entity
type LeaveType struct {
	ID          string
	CompanyID   string
	Name        string
	Code        *string
	Description *string

	// Overdraft rule: when false, any debit that would push the balance
	// negative fails with ErrInsufficientBalance.
	AllowNegativeBalance bool
	AllowEncashment      bool
	IsActive             bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

type PolicyStatus string

const (
	PolicyStatusDraft  PolicyStatus = "draft"
	PolicyStatusActive PolicyStatus = "active"
	PolicyStatusClosed PolicyStatus = "closed"
)

type AccrualMethod string

const (
	AccrualMethodMonthly   AccrualMethod = "monthly"
	AccrualMethodQuarterly AccrualMethod = "quarterly"
	AccrualMethodYearly    AccrualMethod = "yearly"
)

// CarryForwardOverflow decides what happens to balance above the carry cap at
// leave-year closure.
type CarryForwardOverflow string

const (
	OverflowForfeit CarryForwardOverflow = "forfeit"
	OverflowEncash  CarryForwardOverflow = "encash"
)

// LeavePolicy entity - a named bundle of per-leave-type accrual rules.
type LeavePolicy struct {
	ID            string
	CompanyID     string
	Name          string
	Status        PolicyStatus
	EffectiveFrom time.Time
	Lines         []PolicyLine
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PolicyLine - accrual/limit rules for one leave type inside a policy.
type PolicyLine struct {
	ID                string
	PolicyID          string
	LeaveTypeID       string
	AnnualEntitlement decimal.Decimal
	AccrualMethod     AccrualMethod
	// nil means full carry forward at year closure.
	MaxCarryForward      *decimal.Decimal
	CarryForwardOverflow CarryForwardOverflow
}

// MappingScope is an ordered priority, highest wins during resolution.
// Encoded as an int so resolution compares numerically, never by string.
type MappingScope int

const (
	ScopeDefaultCompany MappingScope = iota
	ScopeDepartment
	ScopeDesignation
	ScopeEmployee
)

func (s MappingScope) String() string {
	switch s {
	case ScopeEmployee:
		return "employee"
	case ScopeDesignation:
		return "designation"
	case ScopeDepartment:
		return "department"
	default:
		return "default_company"
	}
}

// ParseMappingScope maps the persisted label back to the ordered value.
func ParseMappingScope(label string) (MappingScope, bool) {
	switch label {
	case "employee":
		return ScopeEmployee, true
	case "designation":
		return ScopeDesignation, true
	case "department":
		return ScopeDepartment, true
	case "default_company":
		return ScopeDefaultCompany, true
	}
	return ScopeDefaultCompany, false
}

// PolicyMapping assigns a policy + holiday calendar to a scope. ScopeRef holds
// the department/designation/employee id; empty for the company default.
type PolicyMapping struct {
	ID                string
	CompanyID         string
	PolicyID          string
	HolidayCalendarID string
	Scope             MappingScope
	ScopeRef          *string
	EffectiveFrom     time.Time
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Balance is the cached projection of the change log for one
// (employee, leave type, policy period). The change log is authoritative.
type Balance struct {
	ID          string
	EmployeeID  string
	LeaveTypeID string
	PeriodStart time.Time
	PeriodEnd   time.Time

	OpeningBalance       decimal.Decimal
	CarryForwardFromPrev decimal.Decimal
	AccruedTillDate      decimal.Decimal
	AvailedTillDate      decimal.Decimal
	EncashedTillDate     decimal.Decimal
	AdjustedManually     decimal.Decimal
	CurrentBalance       decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields
	EmployeeName  *string
	LeaveTypeName *string
}

// Computed re-derives the cached current balance from the component columns.
func (b Balance) Computed() decimal.Decimal {
	return b.OpeningBalance.
		Add(b.CarryForwardFromPrev).
		Add(b.AccruedTillDate).
		Add(b.AdjustedManually).
		Sub(b.AvailedTillDate).
		Sub(b.EncashedTillDate)
}

type ChangeSource string

const (
	SourceAccrual             ChangeSource = "Accrual"
	SourceLeaveAvailed        ChangeSource = "LeaveAvailed"
	SourceEncashment          ChangeSource = "Encashment"
	SourceManualAdjustment    ChangeSource = "ManualAdjustment"
	SourceCarryForward        ChangeSource = "CarryForward"
	SourceCarryForwardForfeit ChangeSource = "CarryForwardForfeit"
)

// BalanceChangeLog is one append-only ledger entry. Every balance mutation
// writes exactly one, in the same transaction as the cached-row update.
type BalanceChangeLog struct {
	ID            string
	BalanceID     string
	EmployeeID    string
	LeaveTypeID   string
	OldBalance    decimal.Decimal
	NewBalance    decimal.Decimal
	ChangeAmount  decimal.Decimal
	Source        ChangeSource
	EffectiveDate time.Time
	ActorID       *string
	Reason        *string
	CreatedAt     time.Time
}

type AccrualRunType string

const (
	RunTypeMonthly   AccrualRunType = "monthly"
	RunTypeQuarterly AccrualRunType = "quarterly"
	RunTypeYearly    AccrualRunType = "yearly"
	RunTypeManual    AccrualRunType = "manual"
)

type AccrualRunStatus string

const (
	AccrualRunStatusCompleted AccrualRunStatus = "completed"
	AccrualRunStatusPartial   AccrualRunStatus = "partial"
)

// AccrualRun header - one per triggered run.
type AccrualRun struct {
	ID          string
	CompanyID   string
	RunType     AccrualRunType
	PeriodStart time.Time
	PeriodEnd   time.Time
	Status      AccrualRunStatus
	TotalLines  int
	CreatedBy   *string
	CreatedAt   time.Time
}

// AccrualLine credits one employee's one leave-type balance. The idempotency
// key (employee, leave type, period start, period end) is unique in the table;
// a conflicting insert means the period was already credited.
type AccrualLine struct {
	ID             string
	RunID          string
	EmployeeID     string
	LeaveTypeID    string
	PeriodStart    time.Time
	PeriodEnd      time.Time
	AccrualDays    decimal.Decimal
	NewBalance     decimal.Decimal
	IdempotencyKey string
	CreatedAt      time.Time
}

// AccrualKey builds the idempotency key for one accrual credit.
func AccrualKey(employeeID, leaveTypeID string, periodStart, periodEnd time.Time) string {
	return employeeID + ":" + leaveTypeID + ":" +
		periodStart.Format("2006-01-02") + ":" + periodEnd.Format("2006-01-02")
}

// PeriodClosure marks a date range immutable. Append-only: closures are never
// edited or deleted.
type PeriodClosure struct {
	ID             string
	CompanyID      string
	PeriodStart    time.Time
	PeriodEnd      time.Time
	IsLeaveYearEnd bool
	ClosedBy       *string
	ClosedAt       time.Time
}

// Covers reports whether date falls inside the closed range (inclusive).
func (c PeriodClosure) Covers(date time.Time) bool {
	d := date.Truncate(24 * time.Hour)
	return !d.Before(c.PeriodStart.Truncate(24*time.Hour)) && !d.After(c.PeriodEnd.Truncate(24*time.Hour))
}

// LeaveRequest entity
type LeaveRequest struct {
	ID          string
	EmployeeID  string
	CompanyID   string
	LeaveTypeID string
	StartDate   time.Time
	EndDate     time.Time
	Days        decimal.Decimal
	IsHalfDay   bool
	Reason      string

	State           approval.State
	RejectionReason *string
	SubmittedAt     *time.Time
	DecidedAt       *time.Time
	DecidedBy       *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields
	EmployeeName  *string
	LeaveTypeName *string
}

// EncashmentRequest converts unused balance into a payout, through the same
// approval flow as leave requests.
type EncashmentRequest struct {
	ID          string
	EmployeeID  string
	CompanyID   string
	LeaveTypeID string
	Days        decimal.Decimal
	Reason      string

	State       approval.State
	SubmittedAt *time.Time
	DecidedAt   *time.Time
	DecidedBy   *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

package leave

import (
	"github.com/kelolahr/hrms-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateLeaveTypeRequest struct {
	CompanyID            string  `json:"company_id"`
	Name                 string  `json:"name"`
	Code                 *string `json:"code"`
	Description          *string `json:"description"`
	AllowNegativeBalance bool    `json:"allow_negative_balance"`
	AllowEncashment      bool    `json:"allow_encashment"`
}

func (r CreateLeaveTypeRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "Name is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateLeaveRequestRequest struct {
	EmployeeID  string `json:"-"`
	CompanyID   string `json:"-"`
	LeaveTypeID string `json:"leave_type_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	IsHalfDay   bool   `json:"is_half_day"`
	Reason      string `json:"reason"`
}

func (r CreateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{Field: "leave_type_id", Message: "Leave type is required"})
	}
	if _, _, ok := validator.IsValidDateRange(r.StartDate, r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "Valid start/end dates (YYYY-MM-DD, start <= end) are required"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "Reason is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PolicyLineRequest struct {
	LeaveTypeID          string           `json:"leave_type_id"`
	AnnualEntitlement    decimal.Decimal  `json:"annual_entitlement"`
	AccrualMethod        string           `json:"accrual_method"`
	MaxCarryForward      *decimal.Decimal `json:"max_carry_forward"`
	CarryForwardOverflow string           `json:"carry_forward_overflow"`
}

type CreatePolicyRequest struct {
	CompanyID     string              `json:"-"`
	Name          string              `json:"name"`
	EffectiveFrom string              `json:"effective_from"`
	Lines         []PolicyLineRequest `json:"lines"`
}

func (r CreatePolicyRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "Name is required"})
	}
	if _, ok := validator.IsValidDate(r.EffectiveFrom); !ok {
		errs = append(errs, validator.ValidationError{Field: "effective_from", Message: "Effective from must be YYYY-MM-DD"})
	}
	if len(r.Lines) == 0 {
		errs = append(errs, validator.ValidationError{Field: "lines", Message: "At least one policy line is required"})
	}
	for _, line := range r.Lines {
		if !validator.IsInSlice(line.AccrualMethod, []string{"monthly", "quarterly", "yearly"}) {
			errs = append(errs, validator.ValidationError{Field: "lines", Message: "Accrual method must be monthly, quarterly or yearly"})
			break
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToPolicy builds the entity; the effective date must already be validated.
func (r CreatePolicyRequest) ToPolicy() LeavePolicy {
	effectiveFrom, _ := validator.IsValidDate(r.EffectiveFrom)
	policy := LeavePolicy{
		CompanyID:     r.CompanyID,
		Name:          r.Name,
		EffectiveFrom: effectiveFrom,
	}
	for _, line := range r.Lines {
		overflow := OverflowForfeit
		if line.CarryForwardOverflow == string(OverflowEncash) {
			overflow = OverflowEncash
		}
		policy.Lines = append(policy.Lines, PolicyLine{
			LeaveTypeID:          line.LeaveTypeID,
			AnnualEntitlement:    line.AnnualEntitlement,
			AccrualMethod:        AccrualMethod(line.AccrualMethod),
			MaxCarryForward:      line.MaxCarryForward,
			CarryForwardOverflow: overflow,
		})
	}
	return policy
}

type CreateMappingRequest struct {
	CompanyID         string  `json:"-"`
	PolicyID          string  `json:"policy_id"`
	HolidayCalendarID string  `json:"holiday_calendar_id"`
	Scope             string  `json:"scope"`
	ScopeRef          *string `json:"scope_ref"`
	EffectiveFrom     string  `json:"effective_from"`
}

func (r CreateMappingRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.PolicyID) {
		errs = append(errs, validator.ValidationError{Field: "policy_id", Message: "Policy ID is required"})
	}
	scope, ok := ParseMappingScope(r.Scope)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "scope", Message: "Scope must be employee, designation, department or default_company"})
	}
	if ok && scope != ScopeDefaultCompany && (r.ScopeRef == nil || validator.IsEmpty(*r.ScopeRef)) {
		errs = append(errs, validator.ValidationError{Field: "scope_ref", Message: "Scope ref is required for non-default scopes"})
	}
	if _, ok := validator.IsValidDate(r.EffectiveFrom); !ok {
		errs = append(errs, validator.ValidationError{Field: "effective_from", Message: "Effective from must be YYYY-MM-DD"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r CreateMappingRequest) ToMapping() PolicyMapping {
	scope, _ := ParseMappingScope(r.Scope)
	effectiveFrom, _ := validator.IsValidDate(r.EffectiveFrom)
	return PolicyMapping{
		CompanyID:         r.CompanyID,
		PolicyID:          r.PolicyID,
		HolidayCalendarID: r.HolidayCalendarID,
		Scope:             scope,
		ScopeRef:          r.ScopeRef,
		EffectiveFrom:     effectiveFrom,
	}
}

type DecideRequestRequest struct {
	RequestID string `json:"request_id"`
	Comments  string `json:"comments"`
}

func (r DecideRequestRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{Field: "request_id", Message: "Request ID is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TriggerAccrualRunRequest struct {
	CompanyID   string `json:"-"`
	RunType     string `json:"run_type"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
}

func (r TriggerAccrualRunRequest) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsInSlice(r.RunType, []string{"monthly", "quarterly", "yearly", "manual"}) {
		errs = append(errs, validator.ValidationError{Field: "run_type", Message: "Run type must be monthly, quarterly, yearly or manual"})
	}
	if _, _, ok := validator.IsValidDateRange(r.PeriodStart, r.PeriodEnd); !ok {
		errs = append(errs, validator.ValidationError{Field: "period_start", Message: "Valid period start/end dates are required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ClosePeriodRequest struct {
	CompanyID      string `json:"-"`
	PeriodStart    string `json:"period_start"`
	PeriodEnd      string `json:"period_end"`
	IsLeaveYearEnd bool   `json:"is_leave_year_end"`
}

func (r ClosePeriodRequest) Validate() error {
	var errs validator.ValidationErrors
	if _, _, ok := validator.IsValidDateRange(r.PeriodStart, r.PeriodEnd); !ok {
		errs = append(errs, validator.ValidationError{Field: "period_start", Message: "Valid period start/end dates are required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AdjustBalanceRequest struct {
	BalanceID string          `json:"balance_id"`
	Amount    decimal.Decimal `json:"amount"`
	Reason    string          `json:"reason"`
}

func (r AdjustBalanceRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.BalanceID) {
		errs = append(errs, validator.ValidationError{Field: "balance_id", Message: "Balance ID is required"})
	}
	if r.Amount.IsZero() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "Amount must be non-zero"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "Reason is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateEncashmentRequest struct {
	EmployeeID  string          `json:"-"`
	CompanyID   string          `json:"-"`
	LeaveTypeID string          `json:"leave_type_id"`
	Days        decimal.Decimal `json:"days"`
	Reason      string          `json:"reason"`
}

func (r CreateEncashmentRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{Field: "leave_type_id", Message: "Leave type is required"})
	}
	if !r.Days.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "days", Message: "Days must be positive"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BalanceResponse struct {
	ID                   string          `json:"id"`
	EmployeeID           string          `json:"employee_id"`
	EmployeeName         *string         `json:"employee_name,omitempty"`
	LeaveTypeID          string          `json:"leave_type_id"`
	LeaveTypeName        *string         `json:"leave_type_name,omitempty"`
	PeriodStart          string          `json:"period_start"`
	PeriodEnd            string          `json:"period_end"`
	OpeningBalance       decimal.Decimal `json:"opening_balance"`
	CarryForwardFromPrev decimal.Decimal `json:"carry_forward_from_prev"`
	AccruedTillDate      decimal.Decimal `json:"accrued_till_date"`
	AvailedTillDate      decimal.Decimal `json:"availed_till_date"`
	EncashedTillDate     decimal.Decimal `json:"encashed_till_date"`
	AdjustedManually     decimal.Decimal `json:"adjusted_manually"`
	CurrentBalance       decimal.Decimal `json:"current_balance"`
}

func ToBalanceResponse(b Balance) BalanceResponse {
	return BalanceResponse{
		ID:                   b.ID,
		EmployeeID:           b.EmployeeID,
		EmployeeName:         b.EmployeeName,
		LeaveTypeID:          b.LeaveTypeID,
		LeaveTypeName:        b.LeaveTypeName,
		PeriodStart:          b.PeriodStart.Format("2006-01-02"),
		PeriodEnd:            b.PeriodEnd.Format("2006-01-02"),
		OpeningBalance:       b.OpeningBalance,
		CarryForwardFromPrev: b.CarryForwardFromPrev,
		AccruedTillDate:      b.AccruedTillDate,
		AvailedTillDate:      b.AvailedTillDate,
		EncashedTillDate:     b.EncashedTillDate,
		AdjustedManually:     b.AdjustedManually,
		CurrentBalance:       b.CurrentBalance,
	}
}

// ApplyChangeResult reports a ledgered balance mutation back to the caller.
type ApplyChangeResult struct {
	BalanceID  string          `json:"balance_id"`
	OldBalance decimal.Decimal `json:"old_balance"`
	NewBalance decimal.Decimal `json:"new_balance"`
}

// ReconcileResult reports drift detection for one balance row.
type ReconcileResult struct {
	BalanceID     string          `json:"balance_id"`
	EmployeeID    string          `json:"employee_id"`
	LeaveTypeID   string          `json:"leave_type_id"`
	CachedBalance decimal.Decimal `json:"cached_balance"`
	ReplayBalance decimal.Decimal `json:"replay_balance"`
	InSync        bool            `json:"in_sync"`
}

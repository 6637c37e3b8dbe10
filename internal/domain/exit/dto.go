package exit

import (
	"github.com/kelolahr/hrms-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateResignationRequest struct {
	EmployeeID      string `json:"-"`
	CompanyID       string `json:"-"`
	Reason          string `json:"reason"`
	NoticeDate      string `json:"notice_date"`
	LastWorkingDate string `json:"last_working_date"`
}

func (r CreateResignationRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "Reason is required"})
	}
	if _, _, ok := validator.IsValidDateRange(r.NoticeDate, r.LastWorkingDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "notice_date", Message: "Valid notice/last working dates are required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type InitChecklistRequest struct {
	ResignationID string   `json:"-"`
	Departments   []string `json:"departments"`
	AssetNames    []string `json:"asset_names"`
}

func (r InitChecklistRequest) Validate() error {
	var errs validator.ValidationErrors
	if len(r.Departments) == 0 {
		errs = append(errs, validator.ValidationError{Field: "departments", Message: "At least one clearance department is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateFnFRequest struct {
	ResignationID       string          `json:"-"`
	LeaveTypeID         string          `json:"leave_type_id"`
	LeaveEncashmentDays decimal.Decimal `json:"leave_encashment_days"`
	PerDayRate          decimal.Decimal `json:"per_day_rate"`
	DeductionAmount     decimal.Decimal `json:"deduction_amount"`
}

func (r CreateFnFRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.LeaveEncashmentDays.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "leave_encashment_days", Message: "Encashment days must not be negative"})
	}
	if r.PerDayRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "per_day_rate", Message: "Per-day rate must not be negative"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

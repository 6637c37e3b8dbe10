package payroll

import (
	"github.com/kelolahr/hrms-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type GenerateSummaryRequest struct {
	CompanyID   string `json:"-"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
}

func (r GenerateSummaryRequest) Validate() error {
	var errs validator.ValidationErrors
	if _, _, ok := validator.IsValidDateRange(r.PeriodStart, r.PeriodEnd); !ok {
		errs = append(errs, validator.ValidationError{Field: "period_start", Message: "Valid period start/end dates are required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateMappingRequest struct {
	CompanyID      string          `json:"-"`
	Status         string          `json:"status"`
	PayrollDayType string          `json:"payroll_day_type"`
	Multiplier     decimal.Decimal `json:"multiplier"`
}

func (r CreateMappingRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Status) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "Attendance status is required"})
	}
	if validator.IsEmpty(r.PayrollDayType) {
		errs = append(errs, validator.ValidationError{Field: "payroll_day_type", Message: "Payroll day type is required"})
	}
	if r.Multiplier.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "multiplier", Message: "Multiplier must not be negative"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SummaryResponse struct {
	EmployeeID         string          `json:"employee_id"`
	EmployeeName       *string         `json:"employee_name,omitempty"`
	PeriodStart        string          `json:"period_start"`
	PeriodEnd          string          `json:"period_end"`
	TotalPaidDays      decimal.Decimal `json:"total_paid_days"`
	TotalLopDays       decimal.Decimal `json:"total_lop_days"`
	TotalOtMinutes     int             `json:"total_ot_minutes"`
	TotalWeeklyOffDays int             `json:"total_weekly_off_days"`
	TotalHolidayDays   int             `json:"total_holiday_days"`
}

func ToSummaryResponse(s Summary) SummaryResponse {
	return SummaryResponse{
		EmployeeID:         s.EmployeeID,
		EmployeeName:       s.EmployeeName,
		PeriodStart:        s.PeriodStart.Format("2006-01-02"),
		PeriodEnd:          s.PeriodEnd.Format("2006-01-02"),
		TotalPaidDays:      s.TotalPaidDays,
		TotalLopDays:       s.TotalLopDays,
		TotalOtMinutes:     s.TotalOtMinutes,
		TotalWeeklyOffDays: s.TotalWeeklyOffDays,
		TotalHolidayDays:   s.TotalHolidayDays,
	}
}

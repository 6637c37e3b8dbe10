package expense

import (
	"github.com/kelolahr/hrms-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateClaimRequest struct {
	EmployeeID string          `json:"-"`
	CompanyID  string          `json:"-"`
	Title      string          `json:"title"`
	Amount     decimal.Decimal `json:"amount"`
	ExpenseOn  string          `json:"expense_on"`
	AdvanceID  *string         `json:"advance_id"`
}

func (r CreateClaimRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "Title is required"})
	}
	if !r.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "Amount must be positive"})
	}
	if _, ok := validator.IsValidDate(r.ExpenseOn); !ok {
		errs = append(errs, validator.ValidationError{Field: "expense_on", Message: "Expense date must be YYYY-MM-DD"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateAdvanceRequest struct {
	EmployeeID string          `json:"employee_id"`
	CompanyID  string          `json:"-"`
	Amount     decimal.Decimal `json:"amount"`
	Purpose    string          `json:"purpose"`
}

func (r CreateAdvanceRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "Employee ID is required"})
	}
	if !r.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "Amount must be positive"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

package appraisal

import (
	"github.com/kelolahr/hrms-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CycleItemRequest struct {
	Kind      string  `json:"kind"`
	Title     string  `json:"title"`
	Weightage float64 `json:"weightage"`
}

type CreateCycleRequest struct {
	CompanyID              string             `json:"-"`
	Name                   string             `json:"name"`
	PeriodStart            string             `json:"period_start"`
	PeriodEnd              string             `json:"period_end"`
	KpiSectionWeight       float64            `json:"kpi_section_weight"`
	CoreValueSectionWeight float64            `json:"core_value_section_weight"`
	Items                  []CycleItemRequest `json:"items"`
}

// ToItems builds the item entities; cycle id is filled in by the service.
func (r CreateCycleRequest) ToItems() []Item {
	items := make([]Item, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, Item{
			Kind:      ItemKind(item.Kind),
			Title:     item.Title,
			Weightage: item.Weightage,
		})
	}
	return items
}

func (r CreateCycleRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "Name is required"})
	}
	if _, _, ok := validator.IsValidDateRange(r.PeriodStart, r.PeriodEnd); !ok {
		errs = append(errs, validator.ValidationError{Field: "period_start", Message: "Valid period start/end dates are required"})
	}
	if r.KpiSectionWeight+r.CoreValueSectionWeight != 100 {
		errs = append(errs, validator.ValidationError{Field: "kpi_section_weight", Message: "Section weights must sum to 100"})
	}
	if len(r.Items) == 0 {
		errs = append(errs, validator.ValidationError{Field: "items", Message: "At least one item is required"})
	}
	for _, item := range r.Items {
		if item.Kind != string(ItemKindKPI) && item.Kind != string(ItemKindCoreValue) {
			errs = append(errs, validator.ValidationError{Field: "items", Message: "Item kind must be kpi or core_value"})
			break
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SubmitRatingsRequest struct {
	FormID  string  `json:"-"`
	AsRole  string  `json:"-"`
	Ratings Ratings `json:"ratings"`
}

func (r SubmitRatingsRequest) Validate() error {
	var errs validator.ValidationErrors
	if len(r.Ratings) == 0 {
		errs = append(errs, validator.ValidationError{Field: "ratings", Message: "At least one rating is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreatePIProposalRequest struct {
	EmployeeID            string           `json:"employee_id"`
	CompanyID             string           `json:"-"`
	CycleID               *string          `json:"cycle_id"`
	ProposedDesignationID *string          `json:"proposed_designation_id"`
	ProposedIncrementPct  *decimal.Decimal `json:"proposed_increment_pct"`
	Justification         string           `json:"justification"`
}

func (r CreatePIProposalRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "Employee ID is required"})
	}
	if validator.IsEmpty(r.Justification) {
		errs = append(errs, validator.ValidationError{Field: "justification", Message: "Justification is required"})
	}
	if r.ProposedDesignationID == nil && r.ProposedIncrementPct == nil {
		errs = append(errs, validator.ValidationError{Field: "proposed_increment_pct", Message: "A proposed designation or increment is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

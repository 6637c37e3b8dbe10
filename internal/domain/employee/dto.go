package employee

import (
	"github.com/kelolahr/hrms-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	CompanyID     string  `json:"company_id"`
	EmployeeCode  string  `json:"employee_code"`
	FullName      string  `json:"full_name"`
	Email         string  `json:"email"`
	ManagerID     *string `json:"manager_id"`
	DepartmentID  *string `json:"department_id"`
	DesignationID *string `json:"designation_id"`
	GradeID       *string `json:"grade_id"`
	HireDate      string  `json:"hire_date"`
}

func (r CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "Full name is required"})
	}
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "Valid email is required"})
	}
	if _, ok := validator.IsValidDate(r.HireDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "hire_date", Message: "Hire date must be YYYY-MM-DD"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID            string  `json:"id"`
	EmployeeCode  string  `json:"employee_code"`
	FullName      string  `json:"full_name"`
	Email         string  `json:"email"`
	ManagerID     *string `json:"manager_id,omitempty"`
	ManagerName   *string `json:"manager_name,omitempty"`
	DepartmentID  *string `json:"department_id,omitempty"`
	DesignationID *string `json:"designation_id,omitempty"`
	GradeID       *string `json:"grade_id,omitempty"`
	Status        string  `json:"status"`
	HireDate      string  `json:"hire_date"`
	ExitDate      *string `json:"exit_date,omitempty"`
}

func ToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:            e.ID,
		EmployeeCode:  e.EmployeeCode,
		FullName:      e.FullName,
		Email:         e.Email,
		ManagerID:     e.ManagerID,
		ManagerName:   e.ManagerName,
		DepartmentID:  e.DepartmentID,
		DesignationID: e.DesignationID,
		GradeID:       e.GradeID,
		Status:        string(e.Status),
		HireDate:      e.HireDate.Format("2006-01-02"),
	}
	if e.ExitDate != nil {
		formatted := e.ExitDate.Format("2006-01-02")
		resp.ExitDate = &formatted
	}
	return resp
}

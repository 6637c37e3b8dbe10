package employee

import "context"

type EmployeeService interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (Employee, error)
	Get(ctx context.Context, id string) (Employee, error)
	List(ctx context.Context, companyID string) ([]EmployeeResponse, error)
	Update(ctx context.Context, emp Employee) error
	// Separate marks the employee separated with an exit date. Used by the
	// exit workflow on completion.
	Separate(ctx context.Context, id string, exitDate string) error
	// IsManagerOf reports whether managerID is employeeID's resolved manager.
	IsManagerOf(ctx context.Context, managerID, employeeID string) (bool, error)
}

package employee

import "context"

// EmployeeRepository - interface for employees table
type EmployeeRepository interface {
	Create(ctx context.Context, emp Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByCompanyID(ctx context.Context, companyID string) ([]Employee, error)
	GetActiveByCompanyID(ctx context.Context, companyID string) ([]Employee, error)
	// ListCompanyIDs returns every company with at least one employee.
	ListCompanyIDs(ctx context.Context) ([]string, error)
	Update(ctx context.Context, emp Employee) error
	SetStatus(ctx context.Context, id string, status EmploymentStatus, exitDate *string) error
}

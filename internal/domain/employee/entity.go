package employee

import "time"

type Employee struct {
	ID            string
	CompanyID     string
	EmployeeCode  string
	FullName      string
	Email         string
	ManagerID     *string
	DepartmentID  *string
	DesignationID *string
	GradeID       *string
	Status        EmploymentStatus
	HireDate      time.Time
	ExitDate      *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Joined fields
	ManagerName *string
}

type EmploymentStatus string

const (
	EmploymentStatusActive    EmploymentStatus = "active"
	EmploymentStatusSeparated EmploymentStatus = "separated"
)

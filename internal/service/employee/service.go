package employee

import (
	"context"
	"fmt"
	"time"

	"github.com/kelolahr/hrms-backend-go/internal/domain/employee"
	"github.com/kelolahr/hrms-backend-go/internal/pkg/database"
)

type EmployeeServiceImpl struct {
	db *database.DB
	employee.EmployeeRepository
}

func NewEmployeeService(db *database.DB, repo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{db: db, EmployeeRepository: repo}
}

// Create implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.Employee, error) {
	hireDate, err := time.Parse("2006-01-02", req.HireDate)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("parse hire date: %w", err)
	}

	if req.ManagerID != nil {
		if _, err := s.EmployeeRepository.GetByID(ctx, *req.ManagerID); err != nil {
			return employee.Employee{}, employee.ErrManagerNotFound
		}
	}

	emp := employee.Employee{
		CompanyID:     req.CompanyID,
		EmployeeCode:  req.EmployeeCode,
		FullName:      req.FullName,
		Email:         req.Email,
		ManagerID:     req.ManagerID,
		DepartmentID:  req.DepartmentID,
		DesignationID: req.DesignationID,
		GradeID:       req.GradeID,
		Status:        employee.EmploymentStatusActive,
		HireDate:      hireDate,
	}
	return s.EmployeeRepository.Create(ctx, emp)
}

// Get implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.Employee, error) {
	return s.EmployeeRepository.GetByID(ctx, id)
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context, companyID string) ([]employee.EmployeeResponse, error) {
	employees, err := s.EmployeeRepository.GetByCompanyID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, employee.ToResponse(emp))
	}
	return responses, nil
}

// Update implements employee.EmployeeService. Reassigning the manager is
// rejected when it would create a reporting cycle.
func (s *EmployeeServiceImpl) Update(ctx context.Context, emp employee.Employee) error {
	if emp.ManagerID != nil {
		if err := s.checkManagerCycle(ctx, emp.ID, *emp.ManagerID); err != nil {
			return err
		}
	}
	return s.EmployeeRepository.Update(ctx, emp)
}

// checkManagerCycle walks the proposed manager's chain upward; finding the
// employee means the assignment would loop.
func (s *EmployeeServiceImpl) checkManagerCycle(ctx context.Context, employeeID, managerID string) error {
	const maxDepth = 100
	current := managerID
	for i := 0; i < maxDepth; i++ {
		if current == employeeID {
			return employee.ErrManagerCycleDetected
		}
		mgr, err := s.EmployeeRepository.GetByID(ctx, current)
		if err != nil {
			return employee.ErrManagerNotFound
		}
		if mgr.ManagerID == nil {
			return nil
		}
		current = *mgr.ManagerID
	}
	return employee.ErrManagerCycleDetected
}

// Separate implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Separate(ctx context.Context, id string, exitDate string) error {
	return s.EmployeeRepository.SetStatus(ctx, id, employee.EmploymentStatusSeparated, &exitDate)
}

// IsManagerOf implements employee.EmployeeService.
func (s *EmployeeServiceImpl) IsManagerOf(ctx context.Context, managerID, employeeID string) (bool, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return false, err
	}
	return emp.ManagerID != nil && *emp.ManagerID == managerID, nil
}

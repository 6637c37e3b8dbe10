package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/kelolahr/hrms-backend-go/internal/domain/approval"
	"github.com/kelolahr/hrms-backend-go/internal/domain/attendance"
	"github.com/kelolahr/hrms-backend-go/internal/domain/employee"
	"github.com/kelolahr/hrms-backend-go/internal/domain/leave"
	"github.com/kelolahr/hrms-backend-go/internal/pkg/database"
	approvalsvc "github.com/kelolahr/hrms-backend-go/internal/service/approval"
)

type LeaveServiceImpl struct {
	db *database.DB
	leave.LeaveTypeRepository
	leave.PolicyRepository
	leave.BalanceRepository
	leave.AccrualRepository
	leave.ClosureRepository
	leave.RequestRepository
	approval.ApprovalActionRepository
	employee.EmployeeRepository
	attendance.DailyRepository

	machine *approvalsvc.Machine
}

func NewLeaveService(
	db *database.DB,
	leaveTypeRepo leave.LeaveTypeRepository,
	policyRepo leave.PolicyRepository,
	balanceRepo leave.BalanceRepository,
	accrualRepo leave.AccrualRepository,
	closureRepo leave.ClosureRepository,
	requestRepo leave.RequestRepository,
	actionRepo approval.ApprovalActionRepository,
	employeeRepo employee.EmployeeRepository,
	dailyRepo attendance.DailyRepository,
) leave.LeaveService {
	return &LeaveServiceImpl{
		db:                       db,
		LeaveTypeRepository:      leaveTypeRepo,
		PolicyRepository:         policyRepo,
		BalanceRepository:        balanceRepo,
		AccrualRepository:        accrualRepo,
		ClosureRepository:        closureRepo,
		RequestRepository:        requestRepo,
		ApprovalActionRepository: actionRepo,
		EmployeeRepository:       employeeRepo,
		DailyRepository:          dailyRepo,
		machine:                  approvalsvc.TwoStage(),
	}
}

// CreateLeaveType implements leave.LeaveService.
func (s *LeaveServiceImpl) CreateLeaveType(ctx context.Context, req leave.CreateLeaveTypeRequest) (leave.LeaveType, error) {
	lt := leave.LeaveType{
		CompanyID:            req.CompanyID,
		Name:                 req.Name,
		Code:                 req.Code,
		Description:          req.Description,
		AllowNegativeBalance: req.AllowNegativeBalance,
		AllowEncashment:      req.AllowEncashment,
		IsActive:             true,
	}
	return s.LeaveTypeRepository.Create(ctx, lt)
}

// ListLeaveTypes implements leave.LeaveService.
func (s *LeaveServiceImpl) ListLeaveTypes(ctx context.Context, companyID string) ([]leave.LeaveType, error) {
	return s.LeaveTypeRepository.GetByCompanyID(ctx, companyID)
}

// CreatePolicy implements leave.LeaveService. Policies start as drafts; lines
// are validated against existing leave types.
func (s *LeaveServiceImpl) CreatePolicy(ctx context.Context, policy leave.LeavePolicy) (leave.LeavePolicy, error) {
	for _, line := range policy.Lines {
		if _, err := s.LeaveTypeRepository.GetByID(ctx, line.LeaveTypeID); err != nil {
			return leave.LeavePolicy{}, fmt.Errorf("policy line leave type %s: %w", line.LeaveTypeID, err)
		}
	}
	policy.Status = leave.PolicyStatusDraft

	var created leave.LeavePolicy
	err := s.inTransaction(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.PolicyRepository.CreatePolicy(ctx, policy)
		return err
	})
	if err != nil {
		return leave.LeavePolicy{}, err
	}
	return created, nil
}

// ActivatePolicy implements leave.LeaveService.
func (s *LeaveServiceImpl) ActivatePolicy(ctx context.Context, policyID string) error {
	return s.PolicyRepository.SetPolicyStatus(ctx, policyID, leave.PolicyStatusActive)
}

// ListPolicies implements leave.LeaveService.
func (s *LeaveServiceImpl) ListPolicies(ctx context.Context, companyID string) ([]leave.LeavePolicy, error) {
	return s.PolicyRepository.GetPoliciesByCompanyID(ctx, companyID)
}

// CreateMapping implements leave.LeaveService.
func (s *LeaveServiceImpl) CreateMapping(ctx context.Context, mapping leave.PolicyMapping) (leave.PolicyMapping, error) {
	policy, err := s.PolicyRepository.GetPolicyByID(ctx, mapping.PolicyID)
	if err != nil {
		return leave.PolicyMapping{}, err
	}
	if policy.Status != leave.PolicyStatusActive {
		return leave.PolicyMapping{}, fmt.Errorf("policy %s is not active", mapping.PolicyID)
	}
	mapping.IsActive = true
	return s.PolicyRepository.CreateMapping(ctx, mapping)
}

// ListMappings implements leave.LeaveService.
func (s *LeaveServiceImpl) ListMappings(ctx context.Context, companyID string) ([]leave.PolicyMapping, error) {
	return s.PolicyRepository.GetMappingsForCompany(ctx, companyID)
}

// ResolvePolicy implements leave.LeaveService.
func (s *LeaveServiceImpl) ResolvePolicy(ctx context.Context, employeeID string, asOf time.Time) (leave.PolicyMapping, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return leave.PolicyMapping{}, err
	}
	mappings, err := s.PolicyRepository.GetMappingsForCompany(ctx, emp.CompanyID)
	if err != nil {
		return leave.PolicyMapping{}, fmt.Errorf("load policy mappings: %w", err)
	}
	return ResolveMapping(mappings, emp, asOf)
}

// policyLineFor resolves the governing policy line for an employee's leave
// type on a date.
func (s *LeaveServiceImpl) policyLineFor(ctx context.Context, emp employee.Employee, leaveTypeID string, asOf time.Time, mappings []leave.PolicyMapping) (*leave.PolicyLine, error) {
	mapping, err := ResolveMapping(mappings, emp, asOf)
	if err != nil {
		return nil, err
	}
	policy, err := s.PolicyRepository.GetPolicyByID(ctx, mapping.PolicyID)
	if err != nil {
		return nil, err
	}
	for i := range policy.Lines {
		if policy.Lines[i].LeaveTypeID == leaveTypeID {
			return &policy.Lines[i], nil
		}
	}
	return nil, nil
}

package payroll

import (
	"context"
	"fmt"

	"github.com/kelolahr/hrms-backend-go/internal/domain/attendance"
	"github.com/kelolahr/hrms-backend-go/internal/domain/employee"
	"github.com/kelolahr/hrms-backend-go/internal/domain/leave"
	"github.com/kelolahr/hrms-backend-go/internal/domain/payroll"
	"github.com/kelolahr/hrms-backend-go/internal/pkg/database"
	"github.com/kelolahr/hrms-backend-go/internal/pkg/validator"
	"github.com/kelolahr/hrms-backend-go/internal/repository/postgresql"
)

var knownStatuses = map[attendance.DayStatus]bool{
	attendance.StatusPresent:      true,
	attendance.StatusAbsent:       true,
	attendance.StatusHalfDay:      true,
	attendance.StatusWeeklyOff:    true,
	attendance.StatusHoliday:      true,
	attendance.StatusLeave:        true,
	attendance.StatusOnDuty:       true,
	attendance.StatusWorkFromHome: true,
}

type PayrollServiceImpl struct {
	db *database.DB
	payroll.MappingRepository
	payroll.SummaryRepository
	attendance.DailyRepository
	employee.EmployeeRepository
	closures leave.ClosureRepository
}

func NewPayrollService(
	db *database.DB,
	mappingRepo payroll.MappingRepository,
	summaryRepo payroll.SummaryRepository,
	dailyRepo attendance.DailyRepository,
	employeeRepo employee.EmployeeRepository,
	closureRepo leave.ClosureRepository,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		db:                 db,
		MappingRepository:  mappingRepo,
		SummaryRepository:  summaryRepo,
		DailyRepository:    dailyRepo,
		EmployeeRepository: employeeRepo,
		closures:           closureRepo,
	}
}

// CreateMapping implements payroll.PayrollService.
func (s *PayrollServiceImpl) CreateMapping(ctx context.Context, req payroll.CreateMappingRequest) (payroll.DayTypeMapping, error) {
	status := attendance.DayStatus(req.Status)
	if !knownStatuses[status] {
		return payroll.DayTypeMapping{}, fmt.Errorf("unknown attendance status %q", req.Status)
	}
	return s.MappingRepository.Create(ctx, payroll.DayTypeMapping{
		CompanyID:      req.CompanyID,
		Status:         status,
		PayrollDayType: req.PayrollDayType,
		Multiplier:     req.Multiplier,
	})
}

// ListMappings implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListMappings(ctx context.Context, companyID string) ([]payroll.DayTypeMapping, error) {
	return s.MappingRepository.GetByCompanyID(ctx, companyID)
}

// GenerateSummaries implements payroll.PayrollService. Recomputes every active
// employee's summary for the period in one transaction; an unmapped status
// anywhere aborts the run so payroll never sees a partial period. Closed
// periods cannot be regenerated.
func (s *PayrollServiceImpl) GenerateSummaries(ctx context.Context, req payroll.GenerateSummaryRequest) ([]payroll.SummaryResponse, error) {
	periodStart, periodEnd, ok := validator.IsValidDateRange(req.PeriodStart, req.PeriodEnd)
	if !ok {
		return nil, fmt.Errorf("invalid summary period %q..%q", req.PeriodStart, req.PeriodEnd)
	}

	closed, err := s.closures.RangeOverlapsClosure(ctx, req.CompanyID, periodStart, periodEnd)
	if err != nil {
		return nil, fmt.Errorf("check period closure: %w", err)
	}
	if closed {
		return nil, fmt.Errorf("%w: summary period %s..%s overlaps a closed range",
			leave.ErrPeriodClosed, req.PeriodStart, req.PeriodEnd)
	}

	mappings, err := s.MappingRepository.GetByCompanyID(ctx, req.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("load day type mappings: %w", err)
	}
	aggregator := NewAggregator(mappings)

	employees, err := s.EmployeeRepository.GetActiveByCompanyID(ctx, req.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("load active employees: %w", err)
	}

	summaries := make([]payroll.Summary, 0, len(employees))
	for _, emp := range employees {
		days, err := s.DailyRepository.GetForRange(ctx, emp.ID, periodStart, periodEnd)
		if err != nil {
			return nil, fmt.Errorf("load attendance for %s: %w", emp.ID, err)
		}
		summary, err := aggregator.Aggregate(emp.ID, req.CompanyID, periodStart, periodEnd, days)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}

	responses := make([]payroll.SummaryResponse, 0, len(summaries))
	err = postgresql.WithTransaction(ctx, s.db, func(ctx context.Context) error {
		for _, summary := range summaries {
			saved, err := s.SummaryRepository.Upsert(ctx, summary)
			if err != nil {
				return err
			}
			responses = append(responses, payroll.ToSummaryResponse(saved))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return responses, nil
}

// ListSummaries implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListSummaries(ctx context.Context, req payroll.GenerateSummaryRequest) ([]payroll.SummaryResponse, error) {
	periodStart, periodEnd, ok := validator.IsValidDateRange(req.PeriodStart, req.PeriodEnd)
	if !ok {
		return nil, fmt.Errorf("invalid summary period %q..%q", req.PeriodStart, req.PeriodEnd)
	}
	summaries, err := s.SummaryRepository.GetByCompanyForPeriod(ctx, req.CompanyID, periodStart, periodEnd)
	if err != nil {
		return nil, err
	}
	responses := make([]payroll.SummaryResponse, 0, len(summaries))
	for _, summary := range summaries {
		responses = append(responses, payroll.ToSummaryResponse(summary))
	}
	return responses, nil
}

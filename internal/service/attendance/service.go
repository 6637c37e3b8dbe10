package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/kelolahr/hrms-backend-go/internal/domain/approval"
	"github.com/kelolahr/hrms-backend-go/internal/domain/attendance"
	"github.com/kelolahr/hrms-backend-go/internal/domain/employee"
	"github.com/kelolahr/hrms-backend-go/internal/domain/leave"
	"github.com/kelolahr/hrms-backend-go/internal/pkg/database"
	"github.com/kelolahr/hrms-backend-go/internal/pkg/validator"
	"github.com/kelolahr/hrms-backend-go/internal/repository/postgresql"
	approvalsvc "github.com/kelolahr/hrms-backend-go/internal/service/approval"
)

type AttendanceServiceImpl struct {
	db *database.DB
	attendance.PunchRepository
	attendance.DailyRepository
	attendance.ScheduleRepository
	attendance.RegularisationRepository
	attendance.OverrideRepository
	leaveRequests leave.RequestRepository
	closures      leave.ClosureRepository
	approval.ApprovalActionRepository
	employee.EmployeeRepository

	machine *approvalsvc.Machine
}

func NewAttendanceService(
	db *database.DB,
	punchRepo attendance.PunchRepository,
	dailyRepo attendance.DailyRepository,
	scheduleRepo attendance.ScheduleRepository,
	regularisationRepo attendance.RegularisationRepository,
	overrideRepo attendance.OverrideRepository,
	leaveRequestRepo leave.RequestRepository,
	closureRepo leave.ClosureRepository,
	actionRepo approval.ApprovalActionRepository,
	employeeRepo employee.EmployeeRepository,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:                       db,
		PunchRepository:          punchRepo,
		DailyRepository:          dailyRepo,
		ScheduleRepository:       scheduleRepo,
		RegularisationRepository: regularisationRepo,
		OverrideRepository:       overrideRepo,
		leaveRequests:            leaveRequestRepo,
		closures:                 closureRepo,
		ApprovalActionRepository: actionRepo,
		EmployeeRepository:       employeeRepo,
		machine:                  approvalsvc.TwoStage(),
	}
}

func (s *AttendanceServiceImpl) inTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return postgresql.WithTransaction(ctx, s.db, fn)
}

// RecordPunch implements attendance.AttendanceService. Punches are append-only
// and rejected once the day falls inside a closed period.
func (s *AttendanceServiceImpl) RecordPunch(ctx context.Context, req attendance.RecordPunchRequest) (attendance.Punch, error) {
	punchedAt, ok := validator.IsValidDateTime(req.PunchedAt)
	if !ok {
		return attendance.Punch{}, fmt.Errorf("invalid punch timestamp %q", req.PunchedAt)
	}

	closed, err := s.closures.IsClosed(ctx, req.CompanyID, punchedAt)
	if err != nil {
		return attendance.Punch{}, fmt.Errorf("check period closure: %w", err)
	}
	if closed {
		return attendance.Punch{}, fmt.Errorf("%w: punch date %s",
			leave.ErrPeriodClosed, punchedAt.Format("2006-01-02"))
	}

	return s.PunchRepository.Append(ctx, attendance.Punch{
		EmployeeID:     req.EmployeeID,
		CompanyID:      req.CompanyID,
		PunchedAt:      punchedAt,
		Type:           attendance.PunchType(req.Type),
		Source:         req.Source,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		AccuracyMeters: req.AccuracyMeters,
	})
}

// ClassifyDay implements attendance.AttendanceService. Assembles the day's
// inputs, runs the classifier and upserts the result. Days inside closed
// periods are immutable.
func (s *AttendanceServiceImpl) ClassifyDay(ctx context.Context, employeeID, companyID string, date time.Time) (attendance.DailyAttendance, error) {
	closed, err := s.closures.IsClosed(ctx, companyID, date)
	if err != nil {
		return attendance.DailyAttendance{}, fmt.Errorf("check period closure: %w", err)
	}
	if closed {
		return attendance.DailyAttendance{}, fmt.Errorf("%w: date %s",
			leave.ErrPeriodClosed, date.Format("2006-01-02"))
	}

	input, err := s.buildDayInput(ctx, employeeID, companyID, date)
	if err != nil {
		return attendance.DailyAttendance{}, err
	}
	return s.DailyRepository.Upsert(ctx, Classify(input))
}

// buildDayInput gathers punches, the resolved schedule, holiday and leave
// flags and any approved regularisation or override for one employee-day.
func (s *AttendanceServiceImpl) buildDayInput(ctx context.Context, employeeID, companyID string, date time.Time) (DayInput, error) {
	schedule, err := s.ScheduleRepository.GetScheduleForEmployee(ctx, employeeID, date)
	if err != nil {
		return DayInput{}, err
	}
	punches, err := s.PunchRepository.GetForDay(ctx, employeeID, date)
	if err != nil {
		return DayInput{}, fmt.Errorf("load punches: %w", err)
	}
	isHoliday, err := s.ScheduleRepository.IsCompanyHoliday(ctx, companyID, date)
	if err != nil {
		return DayInput{}, fmt.Errorf("check holiday: %w", err)
	}

	approvedLeave, err := s.leaveRequests.GetApprovedCovering(ctx, employeeID, date)
	if err != nil {
		return DayInput{}, fmt.Errorf("load approved leave: %w", err)
	}
	onLeave := false
	for _, lr := range approvedLeave {
		if !lr.IsHalfDay {
			onLeave = true
			break
		}
	}

	override, err := s.OverrideRepository.GetForDay(ctx, employeeID, date)
	if err != nil {
		return DayInput{}, fmt.Errorf("load day override: %w", err)
	}
	regularisation, err := s.RegularisationRepository.GetApprovedForDay(ctx, employeeID, date)
	if err != nil {
		return DayInput{}, fmt.Errorf("load regularisation: %w", err)
	}

	return DayInput{
		EmployeeID:      employeeID,
		CompanyID:       companyID,
		Date:            date,
		Punches:         punches,
		Schedule:        schedule,
		IsHoliday:       isHoliday,
		OnApprovedLeave: onLeave,
		Override:        override,
		Regularisation:  regularisation,
	}, nil
}

// ProcessRange implements attendance.AttendanceService. Classifies every
// (active employee, day) pair; employees without a schedule are skipped with
// a warning instead of failing the whole run.
func (s *AttendanceServiceImpl) ProcessRange(ctx context.Context, req attendance.ProcessRangeRequest) ([]attendance.DailyAttendance, error) {
	start, end, ok := validator.IsValidDateRange(req.PeriodStart, req.PeriodEnd)
	if !ok {
		return nil, fmt.Errorf("invalid processing range %q..%q", req.PeriodStart, req.PeriodEnd)
	}

	employees, err := s.EmployeeRepository.GetActiveByCompanyID(ctx, req.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("load active employees: %w", err)
	}

	var results []attendance.DailyAttendance
	for _, emp := range employees {
		from := start
		if emp.HireDate.After(from) {
			from = emp.HireDate
		}
		for day := from; !day.After(end); day = day.AddDate(0, 0, 1) {
			record, err := s.ClassifyDay(ctx, emp.ID, req.CompanyID, day)
			if err != nil {
				if errors.Is(err, attendance.ErrNoWorkSchedule) {
					slog.Warn("skipping employee without schedule", "employee_id", emp.ID)
					break
				}
				return nil, fmt.Errorf("classify %s %s: %w", emp.ID, day.Format("2006-01-02"), err)
			}
			results = append(results, record)
		}
	}
	return results, nil
}

// GetMyAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.DailyAttendanceResponse, error) {
	days, err := s.DailyRepository.GetForRange(ctx, employeeID, start, end)
	if err != nil {
		return nil, err
	}
	return toResponses(days), nil
}

// GetCompanyAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetCompanyAttendance(ctx context.Context, companyID string, start, end time.Time) ([]attendance.DailyAttendanceResponse, error) {
	days, err := s.DailyRepository.GetByCompanyForRange(ctx, companyID, start, end)
	if err != nil {
		return nil, err
	}
	return toResponses(days), nil
}

func toResponses(days []attendance.DailyAttendance) []attendance.DailyAttendanceResponse {
	responses := make([]attendance.DailyAttendanceResponse, 0, len(days))
	for _, d := range days {
		responses = append(responses, attendance.ToDailyResponse(d))
	}
	return responses
}

// CreateRegularisation implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CreateRegularisation(ctx context.Context, req attendance.CreateRegularisationRequest) (attendance.RegularisationRequest, error) {
	date, ok := validator.IsValidDate(req.Date)
	if !ok {
		return attendance.RegularisationRequest{}, fmt.Errorf("invalid date %q", req.Date)
	}
	proposedIn, ok := validator.IsValidDateTime(req.ProposedIn)
	if !ok {
		return attendance.RegularisationRequest{}, fmt.Errorf("invalid proposed in %q", req.ProposedIn)
	}
	proposedOut, ok := validator.IsValidDateTime(req.ProposedOut)
	if !ok || !proposedOut.After(proposedIn) {
		return attendance.RegularisationRequest{}, fmt.Errorf("proposed out must be after proposed in")
	}

	closed, err := s.closures.IsClosed(ctx, req.CompanyID, date)
	if err != nil {
		return attendance.RegularisationRequest{}, fmt.Errorf("check period closure: %w", err)
	}
	if closed {
		return attendance.RegularisationRequest{}, fmt.Errorf("%w: date %s",
			leave.ErrPeriodClosed, date.Format("2006-01-02"))
	}

	state, err := s.machine.Submit(approval.StateDraft)
	if err != nil {
		return attendance.RegularisationRequest{}, err
	}
	now := time.Now().UTC()

	var created attendance.RegularisationRequest
	err = s.inTransaction(ctx, func(ctx context.Context) error {
		created, err = s.RegularisationRepository.Create(ctx, attendance.RegularisationRequest{
			EmployeeID:  req.EmployeeID,
			CompanyID:   req.CompanyID,
			Date:        date,
			ProposedIn:  proposedIn,
			ProposedOut: proposedOut,
			Reason:      req.Reason,
			State:       state,
			SubmittedAt: &now,
		})
		if err != nil {
			return err
		}
		_, err = s.ApprovalActionRepository.Append(ctx, approvalsvc.Record(
			approval.KindRegularisation, created.ID,
			approval.StateDraft, state, approval.ActionSubmit,
			approvalsvc.Actor{ID: req.EmployeeID}, "",
		))
		return err
	})
	if err != nil {
		return attendance.RegularisationRequest{}, err
	}
	return created, nil
}

// DecideRegularisation implements attendance.AttendanceService. On final
// approval the affected day is re-classified with the corrected times.
func (s *AttendanceServiceImpl) DecideRegularisation(ctx context.Context, requestID string, actor attendance.Actor, action approval.Action, comments string) (attendance.RegularisationRequest, error) {
	request, err := s.RegularisationRepository.GetByID(ctx, requestID)
	if err != nil {
		return attendance.RegularisationRequest{}, err
	}

	machineActor := approvalsvc.Actor{ID: actor.UserID, Role: actor.Role}
	owner, err := s.EmployeeRepository.GetByID(ctx, request.EmployeeID)
	if err != nil {
		return attendance.RegularisationRequest{}, err
	}
	if owner.ManagerID != nil && actor.EmployeeID != "" && *owner.ManagerID == actor.EmployeeID {
		machineActor.IsManagerOfRecord = true
	}

	nextState, err := s.machine.Decide(request.State, machineActor, action)
	if err != nil {
		return attendance.RegularisationRequest{}, err
	}

	now := time.Now().UTC()
	fromState := request.State
	request.State = nextState
	if nextState.IsTerminal() {
		request.DecidedAt = &now
		request.DecidedBy = &actor.UserID
	}

	err = s.inTransaction(ctx, func(ctx context.Context) error {
		if err := s.RegularisationRepository.UpdateState(ctx, request); err != nil {
			return err
		}
		_, err := s.ApprovalActionRepository.Append(ctx, approvalsvc.Record(
			approval.KindRegularisation, request.ID,
			fromState, nextState, action, machineActor, comments,
		))
		return err
	})
	if err != nil {
		return attendance.RegularisationRequest{}, err
	}

	if nextState == approval.StateApproved {
		if _, err := s.ClassifyDay(ctx, request.EmployeeID, request.CompanyID, request.Date); err != nil {
			return attendance.RegularisationRequest{}, fmt.Errorf("reclassify regularised day: %w", err)
		}
	}
	return request, nil
}

// CreateSchedule implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CreateSchedule(ctx context.Context, schedule attendance.WorkSchedule) (attendance.WorkSchedule, error) {
	if schedule.EndMinutes <= schedule.StartMinutes {
		return attendance.WorkSchedule{}, fmt.Errorf("schedule end must be after start")
	}
	return s.ScheduleRepository.CreateSchedule(ctx, schedule)
}

// AssignSchedule implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) AssignSchedule(ctx context.Context, employeeID, scheduleID string, effectiveFrom time.Time) error {
	if _, err := s.EmployeeRepository.GetByID(ctx, employeeID); err != nil {
		return err
	}
	return s.ScheduleRepository.AssignSchedule(ctx, employeeID, scheduleID, effectiveFrom)
}

// CreateCalendar implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CreateCalendar(ctx context.Context, calendar attendance.HolidayCalendar) (attendance.HolidayCalendar, error) {
	return s.ScheduleRepository.CreateCalendar(ctx, calendar)
}

// AddHoliday implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) AddHoliday(ctx context.Context, holiday attendance.Holiday) (attendance.Holiday, error) {
	return s.ScheduleRepository.AddHoliday(ctx, holiday)
}

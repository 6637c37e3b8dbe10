package attendance

import (
	"context"
	"time"

	"github.com/kelolahr/hrms-backend-go/internal/domain/approval"
	"github.com/kelolahr/hrms-backend-go/internal/domain/user"
)

// Actor mirrors leave.Actor for attendance decisions.
type Actor struct {
	UserID     string
	EmployeeID string
	Role       user.Role
}

type AttendanceService interface {
	RecordPunch(ctx context.Context, req RecordPunchRequest) (Punch, error)

	// ClassifyDay re-derives the daily record for one employee-day.
	ClassifyDay(ctx context.Context, employeeID, companyID string, date time.Time) (DailyAttendance, error)
	// ProcessRange classifies every (active employee, day) in the range.
	ProcessRange(ctx context.Context, req ProcessRangeRequest) ([]DailyAttendance, error)
	GetMyAttendance(ctx context.Context, employeeID string, start, end time.Time) ([]DailyAttendanceResponse, error)
	GetCompanyAttendance(ctx context.Context, companyID string, start, end time.Time) ([]DailyAttendanceResponse, error)

	// Regularisation
	CreateRegularisation(ctx context.Context, req CreateRegularisationRequest) (RegularisationRequest, error)
	DecideRegularisation(ctx context.Context, requestID string, actor Actor, action approval.Action, comments string) (RegularisationRequest, error)

	// Settings
	CreateSchedule(ctx context.Context, schedule WorkSchedule) (WorkSchedule, error)
	AssignSchedule(ctx context.Context, employeeID, scheduleID string, effectiveFrom time.Time) error
	CreateCalendar(ctx context.Context, calendar HolidayCalendar) (HolidayCalendar, error)
	AddHoliday(ctx context.Context, holiday Holiday) (Holiday, error)
}

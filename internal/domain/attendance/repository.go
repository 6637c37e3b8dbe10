package attendance

import (
	"context"
	"time"
)

// PunchRepository - interface for attendance_punches table. Append-only.
type PunchRepository interface {
	Append(ctx context.Context, punch Punch) (Punch, error)
	GetForDay(ctx context.Context, employeeID string, date time.Time) ([]Punch, error)
	// DistinctPunchDays returns the set of (employeeID, date) pairs with at
	// least one punch inside [start, end] for the company.
	DistinctPunchDays(ctx context.Context, companyID string, start, end time.Time) (map[string][]time.Time, error)
}

// DailyRepository - interface for daily_attendances table.
type DailyRepository interface {
	// Upsert overwrites the row for (employee, date).
	Upsert(ctx context.Context, day DailyAttendance) (DailyAttendance, error)
	GetForDay(ctx context.Context, employeeID string, date time.Time) (DailyAttendance, error)
	GetForRange(ctx context.Context, employeeID string, start, end time.Time) ([]DailyAttendance, error)
	GetByCompanyForRange(ctx context.Context, companyID string, start, end time.Time) ([]DailyAttendance, error)
}

// ScheduleRepository - interface for work_schedules, holiday_calendars and
// holidays tables.
type ScheduleRepository interface {
	CreateSchedule(ctx context.Context, schedule WorkSchedule) (WorkSchedule, error)
	GetScheduleForEmployee(ctx context.Context, employeeID string, asOf time.Time) (WorkSchedule, error)
	AssignSchedule(ctx context.Context, employeeID, scheduleID string, effectiveFrom time.Time) error

	CreateCalendar(ctx context.Context, calendar HolidayCalendar) (HolidayCalendar, error)
	AddHoliday(ctx context.Context, holiday Holiday) (Holiday, error)
	IsHoliday(ctx context.Context, calendarID string, date time.Time) (bool, error)
	// IsCompanyHoliday checks the date against every calendar of the company.
	IsCompanyHoliday(ctx context.Context, companyID string, date time.Time) (bool, error)
	GetHolidays(ctx context.Context, calendarID string, start, end time.Time) ([]Holiday, error)
}

// RegularisationRepository - interface for regularisation_requests table.
type RegularisationRepository interface {
	Create(ctx context.Context, req RegularisationRequest) (RegularisationRequest, error)
	GetByID(ctx context.Context, id string) (RegularisationRequest, error)
	GetByEmployeeID(ctx context.Context, employeeID string) ([]RegularisationRequest, error)
	// GetApprovedForDay returns the approved regularisation for the date, if any.
	GetApprovedForDay(ctx context.Context, employeeID string, date time.Time) (*RegularisationRequest, error)
	UpdateState(ctx context.Context, req RegularisationRequest) error
}

// OverrideRepository - approved WFH / on-duty day flags.
type OverrideRepository interface {
	GetForDay(ctx context.Context, employeeID string, date time.Time) (*DayOverrideKind, error)
	Set(ctx context.Context, employeeID string, date time.Time, kind DayOverrideKind) error
}

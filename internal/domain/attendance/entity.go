package attendance

import (
	"time"

	"github.com/kelolahr/hrms-backend-go/internal/domain/approval"
)

type PunchType string

const (
	PunchIn  PunchType = "IN"
	PunchOut PunchType = "OUT"
)

// Punch is one raw clock event. Append-only: never mutated after capture.
// Multiple punches per day are valid; classification derives first-in/last-out.
type Punch struct {
	ID             string
	EmployeeID     string
	CompanyID      string
	PunchedAt      time.Time
	Type           PunchType
	Source         string
	Latitude       *float64
	Longitude      *float64
	AccuracyMeters *float64
	CreatedAt      time.Time
}

type DayStatus string

const (
	StatusPresent      DayStatus = "present"
	StatusAbsent       DayStatus = "absent"
	StatusHalfDay      DayStatus = "half_day"
	StatusWeeklyOff    DayStatus = "weekly_off"
	StatusHoliday      DayStatus = "holiday"
	StatusLeave        DayStatus = "leave"
	StatusOnDuty       DayStatus = "on_duty"
	StatusWorkFromHome DayStatus = "work_from_home"
)

// DailyAttendance is one classified row per employee per date. The classifier
// creates and overwrites it until the containing period is closed.
type DailyAttendance struct {
	ID              string
	EmployeeID      string
	CompanyID       string
	Date            time.Time
	FirstIn         *time.Time
	LastOut         *time.Time
	Status          DayStatus
	IsLate          bool
	IsRegularised   bool
	WorkedMinutes   int
	LateMinutes     int
	OvertimeMinutes int
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Joined fields
	EmployeeName *string
}

// WorkSchedule - shift definition resolved per employee. Times are minutes
// from midnight so schedules stay timezone-neutral.
type WorkSchedule struct {
	ID                   string
	CompanyID            string
	Name                 string
	StartMinutes         int
	EndMinutes           int
	GraceMinutes         int
	HalfDayThresholdMins int
	FullDayMinutes       int
	WeeklyOffDays        []time.Weekday
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// IsWeeklyOff reports whether date falls on the schedule's weekly-off pattern.
func (w WorkSchedule) IsWeeklyOff(date time.Time) bool {
	for _, d := range w.WeeklyOffDays {
		if date.Weekday() == d {
			return true
		}
	}
	return false
}

type HolidayCalendar struct {
	ID        string
	CompanyID string
	Name      string
	CreatedAt time.Time
}

type Holiday struct {
	ID         string
	CalendarID string
	Date       time.Time
	Name       string
}

// DayOverrideKind - approved request flags that override a Present
// classification for a date.
type DayOverrideKind string

const (
	OverrideWorkFromHome DayOverrideKind = "work_from_home"
	OverrideOnDuty       DayOverrideKind = "on_duty"
)

// RegularisationRequest proposes corrected punch times for one date. It runs
// through the shared approval flow; once approved the classifier re-runs for
// the date with the corrected times.
type RegularisationRequest struct {
	ID          string
	EmployeeID  string
	CompanyID   string
	Date        time.Time
	ProposedIn  time.Time
	ProposedOut time.Time
	Reason      string

	State       approval.State
	SubmittedAt *time.Time
	DecidedAt   *time.Time
	DecidedBy   *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

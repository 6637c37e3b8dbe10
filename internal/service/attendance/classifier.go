package attendance

import (
	"time"

	"github.com/kelolahr/hrms-backend-go/internal/domain/attendance"
)

// DayInput carries everything needed to classify one employee-day. The
// service layer assembles it from punches, schedules, calendars, approved
// leave and approved regularisations; classification itself touches no
// storage.
type DayInput struct {
	EmployeeID string
	CompanyID  string
	Date       time.Time

	Punches  []attendance.Punch
	Schedule attendance.WorkSchedule

	IsHoliday       bool
	OnApprovedLeave bool
	Override        *attendance.DayOverrideKind

	// Regularisation, when set, is an approved correction whose proposed
	// times replace the raw punch times.
	Regularisation *attendance.RegularisationRequest
}

// Classify derives the daily attendance record for one employee-day.
//
// The decision order is fixed: approved leave wins over holidays, holidays
// win over weekly offs, weekly offs win over absence, and only then are
// punch times inspected. A weekly off with punches is treated as a worked
// day.
func Classify(in DayInput) attendance.DailyAttendance {
	day := attendance.DailyAttendance{
		EmployeeID: in.EmployeeID,
		CompanyID:  in.CompanyID,
		Date:       truncateDay(in.Date),
	}

	firstIn, lastOut := effectiveTimes(in)
	hasPunches := firstIn != nil

	switch {
	case in.OnApprovedLeave:
		day.Status = attendance.StatusLeave
		return day
	case in.IsHoliday:
		day.Status = attendance.StatusHoliday
		return day
	case in.Schedule.IsWeeklyOff(in.Date) && !hasPunches:
		day.Status = attendance.StatusWeeklyOff
		return day
	case !hasPunches:
		day.Status = attendance.StatusAbsent
		return day
	}

	day.FirstIn = firstIn
	day.LastOut = lastOut
	day.IsRegularised = in.Regularisation != nil

	worked := 0
	if lastOut != nil && lastOut.After(*firstIn) {
		worked = int(lastOut.Sub(*firstIn).Minutes())
	}
	day.WorkedMinutes = worked

	inMinutes := firstIn.Hour()*60 + firstIn.Minute()
	if inMinutes > in.Schedule.StartMinutes+in.Schedule.GraceMinutes {
		day.IsLate = true
		day.LateMinutes = inMinutes - in.Schedule.StartMinutes
	}

	if worked > in.Schedule.FullDayMinutes {
		day.OvertimeMinutes = worked - in.Schedule.FullDayMinutes
	}

	if worked < in.Schedule.HalfDayThresholdMins {
		day.Status = attendance.StatusHalfDay
		return day
	}

	day.Status = attendance.StatusPresent
	if in.Override != nil {
		switch *in.Override {
		case attendance.OverrideWorkFromHome:
			day.Status = attendance.StatusWorkFromHome
		case attendance.OverrideOnDuty:
			day.Status = attendance.StatusOnDuty
		}
	}
	return day
}

// effectiveTimes resolves first-in and last-out, preferring an approved
// regularisation's proposed times over raw punches.
func effectiveTimes(in DayInput) (firstIn, lastOut *time.Time) {
	if in.Regularisation != nil {
		proposedIn := in.Regularisation.ProposedIn
		proposedOut := in.Regularisation.ProposedOut
		return &proposedIn, &proposedOut
	}

	for i := range in.Punches {
		p := in.Punches[i]
		switch p.Type {
		case attendance.PunchIn:
			if firstIn == nil || p.PunchedAt.Before(*firstIn) {
				t := p.PunchedAt
				firstIn = &t
			}
		case attendance.PunchOut:
			if lastOut == nil || p.PunchedAt.After(*lastOut) {
				t := p.PunchedAt
				lastOut = &t
			}
		}
	}
	return firstIn, lastOut
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

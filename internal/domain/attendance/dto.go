package attendance

import (
	"time"

	"github.com/kelolahr/hrms-backend-go/internal/pkg/validator"
)

type RecordPunchRequest struct {
	EmployeeID     string   `json:"-"`
	CompanyID      string   `json:"-"`
	PunchedAt      string   `json:"punched_at"`
	Type           string   `json:"type"`
	Source         string   `json:"source"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	AccuracyMeters *float64 `json:"accuracy_meters"`
}

func (r RecordPunchRequest) Validate() error {
	var errs validator.ValidationErrors
	if _, ok := validator.IsValidDateTime(r.PunchedAt); !ok {
		errs = append(errs, validator.ValidationError{Field: "punched_at", Message: "Punched at must be an ISO8601 timestamp"})
	}
	if r.Type != string(PunchIn) && r.Type != string(PunchOut) {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "Type must be IN or OUT"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ProcessRangeRequest struct {
	CompanyID   string `json:"-"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
}

func (r ProcessRangeRequest) Validate() error {
	var errs validator.ValidationErrors
	if _, _, ok := validator.IsValidDateRange(r.PeriodStart, r.PeriodEnd); !ok {
		errs = append(errs, validator.ValidationError{Field: "period_start", Message: "Valid period start/end dates are required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateRegularisationRequest struct {
	EmployeeID  string `json:"-"`
	CompanyID   string `json:"-"`
	Date        string `json:"date"`
	ProposedIn  string `json:"proposed_in"`
	ProposedOut string `json:"proposed_out"`
	Reason      string `json:"reason"`
}

func (r CreateRegularisationRequest) Validate() error {
	var errs validator.ValidationErrors
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "Date must be YYYY-MM-DD"})
	}
	if _, ok := validator.IsValidDateTime(r.ProposedIn); !ok {
		errs = append(errs, validator.ValidationError{Field: "proposed_in", Message: "Proposed in must be an ISO8601 timestamp"})
	}
	if _, ok := validator.IsValidDateTime(r.ProposedOut); !ok {
		errs = append(errs, validator.ValidationError{Field: "proposed_out", Message: "Proposed out must be an ISO8601 timestamp"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "Reason is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateScheduleRequest struct {
	CompanyID            string `json:"-"`
	Name                 string `json:"name"`
	StartMinutes         int    `json:"start_minutes"`
	EndMinutes           int    `json:"end_minutes"`
	GraceMinutes         int    `json:"grace_minutes"`
	HalfDayThresholdMins int    `json:"half_day_threshold_mins"`
	FullDayMinutes       int    `json:"full_day_minutes"`
	WeeklyOffDays        []int  `json:"weekly_off_days"`
}

func (r CreateScheduleRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "Name is required"})
	}
	if r.EndMinutes <= r.StartMinutes {
		errs = append(errs, validator.ValidationError{Field: "end_minutes", Message: "End must be after start"})
	}
	for _, d := range r.WeeklyOffDays {
		if d < 0 || d > 6 {
			errs = append(errs, validator.ValidationError{Field: "weekly_off_days", Message: "Weekdays must be 0 (Sunday) through 6 (Saturday)"})
			break
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r CreateScheduleRequest) ToSchedule() WorkSchedule {
	ws := WorkSchedule{
		CompanyID:            r.CompanyID,
		Name:                 r.Name,
		StartMinutes:         r.StartMinutes,
		EndMinutes:           r.EndMinutes,
		GraceMinutes:         r.GraceMinutes,
		HalfDayThresholdMins: r.HalfDayThresholdMins,
		FullDayMinutes:       r.FullDayMinutes,
	}
	for _, d := range r.WeeklyOffDays {
		ws.WeeklyOffDays = append(ws.WeeklyOffDays, time.Weekday(d))
	}
	return ws
}

type AssignScheduleRequest struct {
	EmployeeID    string `json:"employee_id"`
	ScheduleID    string `json:"schedule_id"`
	EffectiveFrom string `json:"effective_from"`
}

func (r AssignScheduleRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "Employee ID is required"})
	}
	if validator.IsEmpty(r.ScheduleID) {
		errs = append(errs, validator.ValidationError{Field: "schedule_id", Message: "Schedule ID is required"})
	}
	if _, ok := validator.IsValidDate(r.EffectiveFrom); !ok {
		errs = append(errs, validator.ValidationError{Field: "effective_from", Message: "Effective from must be YYYY-MM-DD"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateCalendarRequest struct {
	CompanyID string `json:"-"`
	Name      string `json:"name"`
}

func (r CreateCalendarRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "Name is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AddHolidayRequest struct {
	CalendarID string `json:"-"`
	Date       string `json:"date"`
	Name       string `json:"name"`
}

func (r AddHolidayRequest) Validate() error {
	var errs validator.ValidationErrors
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "Date must be YYYY-MM-DD"})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "Name is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DailyAttendanceResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	EmployeeName    *string `json:"employee_name,omitempty"`
	Date            string  `json:"date"`
	FirstIn         *string `json:"first_in,omitempty"`
	LastOut         *string `json:"last_out,omitempty"`
	Status          string  `json:"status"`
	IsLate          bool    `json:"is_late"`
	IsRegularised   bool    `json:"is_regularised"`
	WorkedMinutes   int     `json:"worked_minutes"`
	LateMinutes     int     `json:"late_minutes"`
	OvertimeMinutes int     `json:"overtime_minutes"`
}

func ToDailyResponse(d DailyAttendance) DailyAttendanceResponse {
	resp := DailyAttendanceResponse{
		ID:              d.ID,
		EmployeeID:      d.EmployeeID,
		EmployeeName:    d.EmployeeName,
		Date:            d.Date.Format("2006-01-02"),
		Status:          string(d.Status),
		IsLate:          d.IsLate,
		IsRegularised:   d.IsRegularised,
		WorkedMinutes:   d.WorkedMinutes,
		LateMinutes:     d.LateMinutes,
		OvertimeMinutes: d.OvertimeMinutes,
	}
	if d.FirstIn != nil {
		s := d.FirstIn.Format("2006-01-02 15:04:05")
		resp.FirstIn = &s
	}
	if d.LastOut != nil {
		s := d.LastOut.Format("2006-01-02 15:04:05")
		resp.LastOut = &s
	}
	return resp
}

package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/kelolahr/hrms-backend-go/internal/domain/attendance"
	"github.com/kelolahr/hrms-backend-go/internal/pkg/database"
)

type scheduleRepositoryImpl struct {
	db *database.DB
}

func NewScheduleRepository(db *database.DB) attendance.ScheduleRepository {
	return &scheduleRepositoryImpl{db: db}
}

// weekdaysToInts converts for int[] column storage.
func weekdaysToInts(days []time.Weekday) []int {
	out := make([]int, len(days))
	for i, d := range days {
		out[i] = int(d)
	}
	return out
}

func intsToWeekdays(days []int) []time.Weekday {
	out := make([]time.Weekday, len(days))
	for i, d := range days {
		out[i] = time.Weekday(d)
	}
	return out
}

// CreateSchedule implements attendance.ScheduleRepository.
func (r *scheduleRepositoryImpl) CreateSchedule(ctx context.Context, schedule attendance.WorkSchedule) (attendance.WorkSchedule, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO work_schedules (
			id, company_id, name, start_minutes, end_minutes, grace_minutes,
			half_day_threshold_mins, full_day_minutes, weekly_off_days,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		schedule.CompanyID, schedule.Name, schedule.StartMinutes, schedule.EndMinutes,
		schedule.GraceMinutes, schedule.HalfDayThresholdMins, schedule.FullDayMinutes,
		weekdaysToInts(schedule.WeeklyOffDays),
	).Scan(&schedule.ID, &schedule.CreatedAt, &schedule.UpdatedAt)
	if err != nil {
		return attendance.WorkSchedule{}, fmt.Errorf("insert work schedule: %w", err)
	}
	return schedule, nil
}

// GetScheduleForEmployee implements attendance.ScheduleRepository. Resolves
// through the latest assignment effective on or before asOf.
func (r *scheduleRepositoryImpl) GetScheduleForEmployee(ctx context.Context, employeeID string, asOf time.Time) (attendance.WorkSchedule, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ws.id, ws.company_id, ws.name, ws.start_minutes, ws.end_minutes,
			   ws.grace_minutes, ws.half_day_threshold_mins, ws.full_day_minutes,
			   ws.weekly_off_days, ws.created_at, ws.updated_at
		FROM work_schedule_assignments wsa
		JOIN work_schedules ws ON ws.id = wsa.schedule_id
		WHERE wsa.employee_id = $1 AND wsa.effective_from <= $2
		ORDER BY wsa.effective_from DESC
		LIMIT 1
	`
	var ws attendance.WorkSchedule
	var offDays []int
	err := q.QueryRow(ctx, query, employeeID, asOf).Scan(
		&ws.ID, &ws.CompanyID, &ws.Name, &ws.StartMinutes, &ws.EndMinutes,
		&ws.GraceMinutes, &ws.HalfDayThresholdMins, &ws.FullDayMinutes,
		&offDays, &ws.CreatedAt, &ws.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.WorkSchedule{}, attendance.ErrNoWorkSchedule
		}
		return attendance.WorkSchedule{}, err
	}
	ws.WeeklyOffDays = intsToWeekdays(offDays)
	return ws, nil
}

// AssignSchedule implements attendance.ScheduleRepository.
func (r *scheduleRepositoryImpl) AssignSchedule(ctx context.Context, employeeID, scheduleID string, effectiveFrom time.Time) error {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO work_schedule_assignments (
			id, employee_id, schedule_id, effective_from, created_at
		) VALUES (
			uuidv7(), $1, $2, $3, NOW()
		)
	`
	if _, err := q.Exec(ctx, query, employeeID, scheduleID, effectiveFrom); err != nil {
		return fmt.Errorf("assign work schedule: %w", err)
	}
	return nil
}

// CreateCalendar implements attendance.ScheduleRepository.
func (r *scheduleRepositoryImpl) CreateCalendar(ctx context.Context, calendar attendance.HolidayCalendar) (attendance.HolidayCalendar, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO holiday_calendars (id, company_id, name, created_at)
		VALUES (uuidv7(), $1, $2, NOW())
		RETURNING id, created_at
	`
	err := q.QueryRow(ctx, query, calendar.CompanyID, calendar.Name).
		Scan(&calendar.ID, &calendar.CreatedAt)
	if err != nil {
		return attendance.HolidayCalendar{}, fmt.Errorf("insert holiday calendar: %w", err)
	}
	return calendar, nil
}

// AddHoliday implements attendance.ScheduleRepository.
func (r *scheduleRepositoryImpl) AddHoliday(ctx context.Context, holiday attendance.Holiday) (attendance.Holiday, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO holidays (id, calendar_id, date, name)
		VALUES (uuidv7(), $1, $2, $3)
		RETURNING id
	`
	err := q.QueryRow(ctx, query, holiday.CalendarID, holiday.Date, holiday.Name).
		Scan(&holiday.ID)
	if err != nil {
		return attendance.Holiday{}, fmt.Errorf("insert holiday: %w", err)
	}
	return holiday, nil
}

// IsHoliday implements attendance.ScheduleRepository.
func (r *scheduleRepositoryImpl) IsHoliday(ctx context.Context, calendarID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT EXISTS (
			SELECT 1 FROM holidays WHERE calendar_id = $1 AND date = $2::date
		)
	`
	var isHoliday bool
	if err := q.QueryRow(ctx, query, calendarID, date).Scan(&isHoliday); err != nil {
		return false, err
	}
	return isHoliday, nil
}

// IsCompanyHoliday implements attendance.ScheduleRepository.
func (r *scheduleRepositoryImpl) IsCompanyHoliday(ctx context.Context, companyID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM holidays h
			JOIN holiday_calendars hc ON hc.id = h.calendar_id
			WHERE hc.company_id = $1 AND h.date = $2::date
		)
	`
	var isHoliday bool
	if err := q.QueryRow(ctx, query, companyID, date).Scan(&isHoliday); err != nil {
		return false, err
	}
	return isHoliday, nil
}

// GetHolidays implements attendance.ScheduleRepository.
func (r *scheduleRepositoryImpl) GetHolidays(ctx context.Context, calendarID string, start, end time.Time) ([]attendance.Holiday, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, calendar_id, date, name
		FROM holidays
		WHERE calendar_id = $1 AND date BETWEEN $2::date AND $3::date
		ORDER BY date
	`
	rows, err := q.Query(ctx, query, calendarID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holidays []attendance.Holiday
	for rows.Next() {
		var h attendance.Holiday
		if err := rows.Scan(&h.ID, &h.CalendarID, &h.Date, &h.Name); err != nil {
			return nil, err
		}
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}

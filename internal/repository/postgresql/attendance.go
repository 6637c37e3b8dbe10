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

type punchRepositoryImpl struct {
	db *database.DB
}

func NewPunchRepository(db *database.DB) attendance.PunchRepository {
	return &punchRepositoryImpl{db: db}
}

// Append implements attendance.PunchRepository. Insert-only; corrections go
// through regularisation requests, never through edits here.
func (r *punchRepositoryImpl) Append(ctx context.Context, punch attendance.Punch) (attendance.Punch, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO attendance_punches (
			id, employee_id, company_id, punched_at, type, source,
			latitude, longitude, accuracy_meters, created_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, NOW()
		) RETURNING id, created_at
	`
	err := q.QueryRow(ctx, query,
		punch.EmployeeID, punch.CompanyID, punch.PunchedAt, punch.Type, punch.Source,
		punch.Latitude, punch.Longitude, punch.AccuracyMeters,
	).Scan(&punch.ID, &punch.CreatedAt)
	if err != nil {
		return attendance.Punch{}, fmt.Errorf("insert punch: %w", err)
	}
	return punch, nil
}

// GetForDay implements attendance.PunchRepository.
func (r *punchRepositoryImpl) GetForDay(ctx context.Context, employeeID string, date time.Time) ([]attendance.Punch, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, employee_id, company_id, punched_at, type, source,
			   latitude, longitude, accuracy_meters, created_at
		FROM attendance_punches
		WHERE employee_id = $1 AND punched_at::date = $2::date
		ORDER BY punched_at
	`
	rows, err := q.Query(ctx, query, employeeID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var punches []attendance.Punch
	for rows.Next() {
		var p attendance.Punch
		if err := rows.Scan(
			&p.ID, &p.EmployeeID, &p.CompanyID, &p.PunchedAt, &p.Type, &p.Source,
			&p.Latitude, &p.Longitude, &p.AccuracyMeters, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		punches = append(punches, p)
	}
	return punches, rows.Err()
}

// DistinctPunchDays implements attendance.PunchRepository.
func (r *punchRepositoryImpl) DistinctPunchDays(ctx context.Context, companyID string, start, end time.Time) (map[string][]time.Time, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT DISTINCT employee_id, punched_at::date
		FROM attendance_punches
		WHERE company_id = $1 AND punched_at::date BETWEEN $2::date AND $3::date
		ORDER BY employee_id, punched_at::date
	`
	rows, err := q.Query(ctx, query, companyID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	days := make(map[string][]time.Time)
	for rows.Next() {
		var employeeID string
		var date time.Time
		if err := rows.Scan(&employeeID, &date); err != nil {
			return nil, err
		}
		days[employeeID] = append(days[employeeID], date)
	}
	return days, rows.Err()
}

type dailyRepositoryImpl struct {
	db *database.DB
}

func NewDailyRepository(db *database.DB) attendance.DailyRepository {
	return &dailyRepositoryImpl{db: db}
}

const dailyColumns = `
	d.id, d.employee_id, d.company_id, d.date, d.first_in, d.last_out,
	d.status, d.is_late, d.is_regularised,
	d.worked_minutes, d.late_minutes, d.overtime_minutes,
	d.created_at, d.updated_at, e.full_name AS employee_name`

func scanDaily(row pgx.Row) (attendance.DailyAttendance, error) {
	var d attendance.DailyAttendance
	err := row.Scan(
		&d.ID, &d.EmployeeID, &d.CompanyID, &d.Date, &d.FirstIn, &d.LastOut,
		&d.Status, &d.IsLate, &d.IsRegularised,
		&d.WorkedMinutes, &d.LateMinutes, &d.OvertimeMinutes,
		&d.CreatedAt, &d.UpdatedAt, &d.EmployeeName,
	)
	return d, err
}

// Upsert implements attendance.DailyRepository. Re-classification overwrites
// the row for (employee, date) in place.
func (r *dailyRepositoryImpl) Upsert(ctx context.Context, day attendance.DailyAttendance) (attendance.DailyAttendance, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO daily_attendances (
			id, employee_id, company_id, date, first_in, last_out,
			status, is_late, is_regularised,
			worked_minutes, late_minutes, overtime_minutes,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW()
		)
		ON CONFLICT (employee_id, date) DO UPDATE SET
			first_in = EXCLUDED.first_in,
			last_out = EXCLUDED.last_out,
			status = EXCLUDED.status,
			is_late = EXCLUDED.is_late,
			is_regularised = EXCLUDED.is_regularised,
			worked_minutes = EXCLUDED.worked_minutes,
			late_minutes = EXCLUDED.late_minutes,
			overtime_minutes = EXCLUDED.overtime_minutes,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		day.EmployeeID, day.CompanyID, day.Date, day.FirstIn, day.LastOut,
		day.Status, day.IsLate, day.IsRegularised,
		day.WorkedMinutes, day.LateMinutes, day.OvertimeMinutes,
	).Scan(&day.ID, &day.CreatedAt, &day.UpdatedAt)
	if err != nil {
		return attendance.DailyAttendance{}, fmt.Errorf("upsert daily attendance: %w", err)
	}
	return day, nil
}

// GetForDay implements attendance.DailyRepository.
func (r *dailyRepositoryImpl) GetForDay(ctx context.Context, employeeID string, date time.Time) (attendance.DailyAttendance, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + dailyColumns + `
		FROM daily_attendances d
		JOIN employees e ON e.id = d.employee_id
		WHERE d.employee_id = $1 AND d.date = $2::date
	`
	d, err := scanDaily(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.DailyAttendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.DailyAttendance{}, err
	}
	return d, nil
}

// GetForRange implements attendance.DailyRepository.
func (r *dailyRepositoryImpl) GetForRange(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.DailyAttendance, error) {
	query := `
		SELECT ` + dailyColumns + `
		FROM daily_attendances d
		JOIN employees e ON e.id = d.employee_id
		WHERE d.employee_id = $1 AND d.date BETWEEN $2::date AND $3::date
		ORDER BY d.date
	`
	return r.list(ctx, query, employeeID, start, end)
}

// GetByCompanyForRange implements attendance.DailyRepository.
func (r *dailyRepositoryImpl) GetByCompanyForRange(ctx context.Context, companyID string, start, end time.Time) ([]attendance.DailyAttendance, error) {
	query := `
		SELECT ` + dailyColumns + `
		FROM daily_attendances d
		JOIN employees e ON e.id = d.employee_id
		WHERE d.company_id = $1 AND d.date BETWEEN $2::date AND $3::date
		ORDER BY e.full_name, d.date
	`
	return r.list(ctx, query, companyID, start, end)
}

func (r *dailyRepositoryImpl) list(ctx context.Context, query string, args ...interface{}) ([]attendance.DailyAttendance, error) {
	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []attendance.DailyAttendance
	for rows.Next() {
		d, err := scanDaily(rows)
		if err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

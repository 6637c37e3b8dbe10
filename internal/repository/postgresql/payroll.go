package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/kelolahr/hrms-backend-go/internal/domain/attendance"
	"github.com/kelolahr/hrms-backend-go/internal/domain/payroll"
	"github.com/kelolahr/hrms-backend-go/internal/pkg/database"
)

type mappingRepositoryImpl struct {
	db *database.DB
}

func NewMappingRepository(db *database.DB) payroll.MappingRepository {
	return &mappingRepositoryImpl{db: db}
}

// Create implements payroll.MappingRepository. One row per status per company.
func (r *mappingRepositoryImpl) Create(ctx context.Context, mapping payroll.DayTypeMapping) (payroll.DayTypeMapping, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO attendance_payroll_mappings (
			id, company_id, status, payroll_day_type, multiplier,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		mapping.CompanyID, mapping.Status, mapping.PayrollDayType, mapping.Multiplier,
	).Scan(&mapping.ID, &mapping.CreatedAt, &mapping.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return payroll.DayTypeMapping{}, payroll.ErrMappingExists
		}
		return payroll.DayTypeMapping{}, fmt.Errorf("insert day type mapping: %w", err)
	}
	return mapping, nil
}

// GetByCompanyID implements payroll.MappingRepository.
func (r *mappingRepositoryImpl) GetByCompanyID(ctx context.Context, companyID string) ([]payroll.DayTypeMapping, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, company_id, status, payroll_day_type, multiplier,
			   created_at, updated_at
		FROM attendance_payroll_mappings
		WHERE company_id = $1
		ORDER BY status
	`
	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mappings []payroll.DayTypeMapping
	for rows.Next() {
		var m payroll.DayTypeMapping
		if err := rows.Scan(
			&m.ID, &m.CompanyID, &m.Status, &m.PayrollDayType, &m.Multiplier,
			&m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, err
		}
		mappings = append(mappings, m)
	}
	return mappings, rows.Err()
}

// GetByStatus implements payroll.MappingRepository.
func (r *mappingRepositoryImpl) GetByStatus(ctx context.Context, companyID string, status attendance.DayStatus) (payroll.DayTypeMapping, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, company_id, status, payroll_day_type, multiplier,
			   created_at, updated_at
		FROM attendance_payroll_mappings
		WHERE company_id = $1 AND status = $2
	`
	var m payroll.DayTypeMapping
	err := q.QueryRow(ctx, query, companyID, status).Scan(
		&m.ID, &m.CompanyID, &m.Status, &m.PayrollDayType, &m.Multiplier,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.DayTypeMapping{}, fmt.Errorf("%w: status %q", payroll.ErrUnmappedStatus, status)
		}
		return payroll.DayTypeMapping{}, err
	}
	return m, nil
}

// Update implements payroll.MappingRepository.
func (r *mappingRepositoryImpl) Update(ctx context.Context, mapping payroll.DayTypeMapping) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE attendance_payroll_mappings
		SET payroll_day_type = $1, multiplier = $2, updated_at = NOW()
		WHERE id = $3
	`
	tag, err := q.Exec(ctx, query, mapping.PayrollDayType, mapping.Multiplier, mapping.ID)
	if err != nil {
		return fmt.Errorf("update day type mapping %s: %w", mapping.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: mapping %s", payroll.ErrUnmappedStatus, mapping.ID)
	}
	return nil
}

type summaryRepositoryImpl struct {
	db *database.DB
}

func NewSummaryRepository(db *database.DB) payroll.SummaryRepository {
	return &summaryRepositoryImpl{db: db}
}

// Upsert implements payroll.SummaryRepository.
func (r *summaryRepositoryImpl) Upsert(ctx context.Context, summary payroll.Summary) (payroll.Summary, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO payroll_summaries (
			id, employee_id, company_id, period_start, period_end,
			total_paid_days, total_lop_days, total_ot_minutes,
			total_weekly_off_days, total_holiday_days, generated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, $9, NOW()
		)
		ON CONFLICT (employee_id, period_start, period_end) DO UPDATE SET
			total_paid_days = EXCLUDED.total_paid_days,
			total_lop_days = EXCLUDED.total_lop_days,
			total_ot_minutes = EXCLUDED.total_ot_minutes,
			total_weekly_off_days = EXCLUDED.total_weekly_off_days,
			total_holiday_days = EXCLUDED.total_holiday_days,
			generated_at = NOW()
		RETURNING id, generated_at
	`
	err := q.QueryRow(ctx, query,
		summary.EmployeeID, summary.CompanyID, summary.PeriodStart, summary.PeriodEnd,
		summary.TotalPaidDays, summary.TotalLopDays, summary.TotalOtMinutes,
		summary.TotalWeeklyOffDays, summary.TotalHolidayDays,
	).Scan(&summary.ID, &summary.GeneratedAt)
	if err != nil {
		return payroll.Summary{}, fmt.Errorf("upsert payroll summary: %w", err)
	}
	return summary, nil
}

// GetByCompanyForPeriod implements payroll.SummaryRepository.
func (r *summaryRepositoryImpl) GetByCompanyForPeriod(ctx context.Context, companyID string, periodStart, periodEnd time.Time) ([]payroll.Summary, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT s.id, s.employee_id, s.company_id, s.period_start, s.period_end,
			   s.total_paid_days, s.total_lop_days, s.total_ot_minutes,
			   s.total_weekly_off_days, s.total_holiday_days, s.generated_at,
			   e.full_name AS employee_name
		FROM payroll_summaries s
		JOIN employees e ON e.id = s.employee_id
		WHERE s.company_id = $1 AND s.period_start = $2 AND s.period_end = $3
		ORDER BY e.full_name
	`
	rows, err := q.Query(ctx, query, companyID, periodStart, periodEnd)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []payroll.Summary
	for rows.Next() {
		var s payroll.Summary
		if err := rows.Scan(
			&s.ID, &s.EmployeeID, &s.CompanyID, &s.PeriodStart, &s.PeriodEnd,
			&s.TotalPaidDays, &s.TotalLopDays, &s.TotalOtMinutes,
			&s.TotalWeeklyOffDays, &s.TotalHolidayDays, &s.GeneratedAt,
			&s.EmployeeName,
		); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// DeleteForPeriod implements payroll.SummaryRepository.
func (r *summaryRepositoryImpl) DeleteForPeriod(ctx context.Context, companyID string, periodStart, periodEnd time.Time) error {
	q := GetQuerier(ctx, r.db)
	query := `
		DELETE FROM payroll_summaries
		WHERE company_id = $1 AND period_start = $2 AND period_end = $3
	`
	if _, err := q.Exec(ctx, query, companyID, periodStart, periodEnd); err != nil {
		return fmt.Errorf("delete payroll summaries: %w", err)
	}
	return nil
}

package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/kelolahr/hrms-backend-go/internal/domain/leave"
	"github.com/kelolahr/hrms-backend-go/internal/pkg/database"
)

const uniqueViolation = "23505"

type accrualRepositoryImpl struct {
	db *database.DB
}

func NewAccrualRepository(db *database.DB) leave.AccrualRepository {
	return &accrualRepositoryImpl{db: db}
}

// CreateRun implements leave.AccrualRepository.
func (r *accrualRepositoryImpl) CreateRun(ctx context.Context, run leave.AccrualRun) (leave.AccrualRun, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO leave_accrual_runs (
			id, company_id, run_type, period_start, period_end,
			status, total_lines, created_by, created_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6, $7, NOW()
		) RETURNING id, created_at
	`
	err := q.QueryRow(ctx, query,
		run.CompanyID, run.RunType, run.PeriodStart, run.PeriodEnd,
		run.Status, run.TotalLines, run.CreatedBy,
	).Scan(&run.ID, &run.CreatedAt)
	if err != nil {
		return leave.AccrualRun{}, fmt.Errorf("insert accrual run: %w", err)
	}
	return run, nil
}

// GetRunByID implements leave.AccrualRepository.
func (r *accrualRepositoryImpl) GetRunByID(ctx context.Context, id string) (leave.AccrualRun, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, company_id, run_type, period_start, period_end,
			   status, total_lines, created_by, created_at
		FROM leave_accrual_runs
		WHERE id = $1
	`
	var run leave.AccrualRun
	err := q.QueryRow(ctx, query, id).Scan(
		&run.ID, &run.CompanyID, &run.RunType, &run.PeriodStart, &run.PeriodEnd,
		&run.Status, &run.TotalLines, &run.CreatedBy, &run.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.AccrualRun{}, leave.ErrAccrualRunNotFound
		}
		return leave.AccrualRun{}, err
	}
	return run, nil
}

// FindRun implements leave.AccrualRepository.
func (r *accrualRepositoryImpl) FindRun(ctx context.Context, companyID string, runType leave.AccrualRunType, periodStart, periodEnd time.Time) (leave.AccrualRun, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, company_id, run_type, period_start, period_end,
			   status, total_lines, created_by, created_at
		FROM leave_accrual_runs
		WHERE company_id = $1 AND run_type = $2 AND period_start = $3 AND period_end = $4
		ORDER BY created_at DESC
		LIMIT 1
	`
	var run leave.AccrualRun
	err := q.QueryRow(ctx, query, companyID, runType, periodStart, periodEnd).Scan(
		&run.ID, &run.CompanyID, &run.RunType, &run.PeriodStart, &run.PeriodEnd,
		&run.Status, &run.TotalLines, &run.CreatedBy, &run.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.AccrualRun{}, leave.ErrAccrualRunNotFound
		}
		return leave.AccrualRun{}, err
	}
	return run, nil
}

// GetRunsByCompanyID implements leave.AccrualRepository.
func (r *accrualRepositoryImpl) GetRunsByCompanyID(ctx context.Context, companyID string) ([]leave.AccrualRun, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, company_id, run_type, period_start, period_end,
			   status, total_lines, created_by, created_at
		FROM leave_accrual_runs
		WHERE company_id = $1
		ORDER BY created_at DESC
	`
	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []leave.AccrualRun
	for rows.Next() {
		var run leave.AccrualRun
		if err := rows.Scan(
			&run.ID, &run.CompanyID, &run.RunType, &run.PeriodStart, &run.PeriodEnd,
			&run.Status, &run.TotalLines, &run.CreatedBy, &run.CreatedAt,
		); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// SetRunTotals implements leave.AccrualRepository.
func (r *accrualRepositoryImpl) SetRunTotals(ctx context.Context, runID string, status leave.AccrualRunStatus, totalLines int) error {
	q := GetQuerier(ctx, r.db)
	query := `UPDATE leave_accrual_runs SET status = $1, total_lines = $2 WHERE id = $3`
	tag, err := q.Exec(ctx, query, status, totalLines, runID)
	if err != nil {
		return fmt.Errorf("set accrual run totals %s: %w", runID, err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrAccrualRunNotFound
	}
	return nil
}

// CreateLine implements leave.AccrualRepository. The idempotency key carries
// a unique index, so crediting the same period twice fails here no matter how
// the run was triggered.
func (r *accrualRepositoryImpl) CreateLine(ctx context.Context, line leave.AccrualLine) (leave.AccrualLine, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO leave_accrual_lines (
			id, run_id, employee_id, leave_type_id,
			period_start, period_end, accrual_days, new_balance,
			idempotency_key, created_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, NOW()
		) RETURNING id, created_at
	`
	err := q.QueryRow(ctx, query,
		line.RunID, line.EmployeeID, line.LeaveTypeID,
		line.PeriodStart, line.PeriodEnd, line.AccrualDays, line.NewBalance,
		line.IdempotencyKey,
	).Scan(&line.ID, &line.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return leave.AccrualLine{}, fmt.Errorf("%w: key %s", leave.ErrDuplicateAccrual, line.IdempotencyKey)
		}
		return leave.AccrualLine{}, fmt.Errorf("insert accrual line: %w", err)
	}
	return line, nil
}

// LineExists implements leave.AccrualRepository.
func (r *accrualRepositoryImpl) LineExists(ctx context.Context, idempotencyKey string) (bool, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT EXISTS (SELECT 1 FROM leave_accrual_lines WHERE idempotency_key = $1)`
	var exists bool
	if err := q.QueryRow(ctx, query, idempotencyKey).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// GetLinesByRunID implements leave.AccrualRepository.
func (r *accrualRepositoryImpl) GetLinesByRunID(ctx context.Context, runID string) ([]leave.AccrualLine, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, run_id, employee_id, leave_type_id,
			   period_start, period_end, accrual_days, new_balance,
			   idempotency_key, created_at
		FROM leave_accrual_lines
		WHERE run_id = $1
		ORDER BY created_at
	`
	rows, err := q.Query(ctx, query, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []leave.AccrualLine
	for rows.Next() {
		var l leave.AccrualLine
		if err := rows.Scan(
			&l.ID, &l.RunID, &l.EmployeeID, &l.LeaveTypeID,
			&l.PeriodStart, &l.PeriodEnd, &l.AccrualDays, &l.NewBalance,
			&l.IdempotencyKey, &l.CreatedAt,
		); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

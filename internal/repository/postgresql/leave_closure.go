package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/kelolahr/hrms-backend-go/internal/domain/leave"
	"github.com/kelolahr/hrms-backend-go/internal/pkg/database"
)

type closureRepositoryImpl struct {
	db *database.DB
}

func NewClosureRepository(db *database.DB) leave.ClosureRepository {
	return &closureRepositoryImpl{db: db}
}

// Append implements leave.ClosureRepository. Closures are insert-only; there
// is no update or delete path.
func (r *closureRepositoryImpl) Append(ctx context.Context, closure leave.PeriodClosure) (leave.PeriodClosure, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO leave_period_closures (
			id, company_id, period_start, period_end,
			is_leave_year_end, closed_by, closed_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, NOW()
		) RETURNING id, closed_at
	`
	err := q.QueryRow(ctx, query,
		closure.CompanyID, closure.PeriodStart, closure.PeriodEnd,
		closure.IsLeaveYearEnd, closure.ClosedBy,
	).Scan(&closure.ID, &closure.ClosedAt)
	if err != nil {
		return leave.PeriodClosure{}, fmt.Errorf("insert period closure: %w", err)
	}
	return closure, nil
}

// GetByCompanyID implements leave.ClosureRepository.
func (r *closureRepositoryImpl) GetByCompanyID(ctx context.Context, companyID string) ([]leave.PeriodClosure, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, company_id, period_start, period_end,
			   is_leave_year_end, closed_by, closed_at
		FROM leave_period_closures
		WHERE company_id = $1
		ORDER BY period_start DESC
	`
	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var closures []leave.PeriodClosure
	for rows.Next() {
		var c leave.PeriodClosure
		if err := rows.Scan(
			&c.ID, &c.CompanyID, &c.PeriodStart, &c.PeriodEnd,
			&c.IsLeaveYearEnd, &c.ClosedBy, &c.ClosedAt,
		); err != nil {
			return nil, err
		}
		closures = append(closures, c)
	}
	return closures, rows.Err()
}

// IsClosed implements leave.ClosureRepository.
func (r *closureRepositoryImpl) IsClosed(ctx context.Context, companyID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT EXISTS (
			SELECT 1 FROM leave_period_closures
			WHERE company_id = $1 AND period_start <= $2 AND period_end >= $2
		)
	`
	var closed bool
	if err := q.QueryRow(ctx, query, companyID, date).Scan(&closed); err != nil {
		return false, err
	}
	return closed, nil
}

// RangeOverlapsClosure implements leave.ClosureRepository.
func (r *closureRepositoryImpl) RangeOverlapsClosure(ctx context.Context, companyID string, start, end time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT EXISTS (
			SELECT 1 FROM leave_period_closures
			WHERE company_id = $1 AND period_start <= $3 AND period_end >= $2
		)
	`
	var overlaps bool
	if err := q.QueryRow(ctx, query, companyID, start, end).Scan(&overlaps); err != nil {
		return false, err
	}
	return overlaps, nil
}

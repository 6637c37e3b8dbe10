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

type regularisationRepositoryImpl struct {
	db *database.DB
}

func NewRegularisationRepository(db *database.DB) attendance.RegularisationRepository {
	return &regularisationRepositoryImpl{db: db}
}

const regularisationColumns = `
	id, employee_id, company_id, date, proposed_in, proposed_out, reason,
	state, submitted_at, decided_at, decided_by, created_at, updated_at`

func scanRegularisation(row pgx.Row) (attendance.RegularisationRequest, error) {
	var rr attendance.RegularisationRequest
	err := row.Scan(
		&rr.ID, &rr.EmployeeID, &rr.CompanyID, &rr.Date,
		&rr.ProposedIn, &rr.ProposedOut, &rr.Reason,
		&rr.State, &rr.SubmittedAt, &rr.DecidedAt, &rr.DecidedBy,
		&rr.CreatedAt, &rr.UpdatedAt,
	)
	return rr, err
}

// Create implements attendance.RegularisationRepository.
func (r *regularisationRepositoryImpl) Create(ctx context.Context, req attendance.RegularisationRequest) (attendance.RegularisationRequest, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO regularisation_requests (
			id, employee_id, company_id, date, proposed_in, proposed_out,
			reason, state, submitted_at, created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		req.EmployeeID, req.CompanyID, req.Date, req.ProposedIn, req.ProposedOut,
		req.Reason, req.State, req.SubmittedAt,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return attendance.RegularisationRequest{}, fmt.Errorf("insert regularisation request: %w", err)
	}
	return req, nil
}

// GetByID implements attendance.RegularisationRepository.
func (r *regularisationRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.RegularisationRequest, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + regularisationColumns + ` FROM regularisation_requests WHERE id = $1`
	rr, err := scanRegularisation(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.RegularisationRequest{}, attendance.ErrRegularisationNotFound
		}
		return attendance.RegularisationRequest{}, err
	}
	return rr, nil
}

// GetByEmployeeID implements attendance.RegularisationRepository.
func (r *regularisationRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID string) ([]attendance.RegularisationRequest, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + regularisationColumns + `
		FROM regularisation_requests
		WHERE employee_id = $1
		ORDER BY date DESC
	`
	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []attendance.RegularisationRequest
	for rows.Next() {
		rr, err := scanRegularisation(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, rr)
	}
	return requests, rows.Err()
}

// GetApprovedForDay implements attendance.RegularisationRepository. The most
// recently decided approval wins when the date was regularised twice.
func (r *regularisationRepositoryImpl) GetApprovedForDay(ctx context.Context, employeeID string, date time.Time) (*attendance.RegularisationRequest, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + regularisationColumns + `
		FROM regularisation_requests
		WHERE employee_id = $1 AND date = $2::date AND state = 'approved'
		ORDER BY decided_at DESC
		LIMIT 1
	`
	rr, err := scanRegularisation(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rr, nil
}

// UpdateState implements attendance.RegularisationRepository.
func (r *regularisationRepositoryImpl) UpdateState(ctx context.Context, req attendance.RegularisationRequest) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE regularisation_requests
		SET state = $1, decided_at = $2, decided_by = $3, updated_at = NOW()
		WHERE id = $4
	`
	tag, err := q.Exec(ctx, query, req.State, req.DecidedAt, req.DecidedBy, req.ID)
	if err != nil {
		return fmt.Errorf("update regularisation state %s: %w", req.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrRegularisationNotFound
	}
	return nil
}

type overrideRepositoryImpl struct {
	db *database.DB
}

func NewOverrideRepository(db *database.DB) attendance.OverrideRepository {
	return &overrideRepositoryImpl{db: db}
}

// GetForDay implements attendance.OverrideRepository.
func (r *overrideRepositoryImpl) GetForDay(ctx context.Context, employeeID string, date time.Time) (*attendance.DayOverrideKind, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT kind FROM attendance_day_overrides WHERE employee_id = $1 AND date = $2::date`
	var kind attendance.DayOverrideKind
	err := q.QueryRow(ctx, query, employeeID, date).Scan(&kind)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &kind, nil
}

// Set implements attendance.OverrideRepository.
func (r *overrideRepositoryImpl) Set(ctx context.Context, employeeID string, date time.Time, kind attendance.DayOverrideKind) error {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO attendance_day_overrides (id, employee_id, date, kind, created_at)
		VALUES (uuidv7(), $1, $2::date, $3, NOW())
		ON CONFLICT (employee_id, date) DO UPDATE SET kind = EXCLUDED.kind
	`
	if _, err := q.Exec(ctx, query, employeeID, date, kind); err != nil {
		return fmt.Errorf("set day override: %w", err)
	}
	return nil
}

package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/kelolahr/hrms-backend-go/internal/domain/expense"
	"github.com/kelolahr/hrms-backend-go/internal/pkg/database"
)

type claimRepositoryImpl struct {
	db *database.DB
}

func NewClaimRepository(db *database.DB) expense.ClaimRepository {
	return &claimRepositoryImpl{db: db}
}

const claimColumns = `
	c.id, c.employee_id, c.company_id, c.title, c.amount, c.expense_on, c.advance_id,
	c.state, c.rejection_reason, c.submitted_at, c.decided_at, c.decided_by,
	c.created_at, c.updated_at, e.full_name AS employee_name`

func scanClaim(row pgx.Row) (expense.Claim, error) {
	var c expense.Claim
	err := row.Scan(
		&c.ID, &c.EmployeeID, &c.CompanyID, &c.Title, &c.Amount, &c.ExpenseOn, &c.AdvanceID,
		&c.State, &c.RejectionReason, &c.SubmittedAt, &c.DecidedAt, &c.DecidedBy,
		&c.CreatedAt, &c.UpdatedAt, &c.EmployeeName,
	)
	return c, err
}

// Create implements expense.ClaimRepository.
func (r *claimRepositoryImpl) Create(ctx context.Context, claim expense.Claim) (expense.Claim, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO expense_claims (
			id, employee_id, company_id, title, amount, expense_on, advance_id,
			state, submitted_at, created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		claim.EmployeeID, claim.CompanyID, claim.Title, claim.Amount, claim.ExpenseOn,
		claim.AdvanceID, claim.State, claim.SubmittedAt,
	).Scan(&claim.ID, &claim.CreatedAt, &claim.UpdatedAt)
	if err != nil {
		return expense.Claim{}, fmt.Errorf("insert expense claim: %w", err)
	}
	return claim, nil
}

// GetByID implements expense.ClaimRepository.
func (r *claimRepositoryImpl) GetByID(ctx context.Context, id string) (expense.Claim, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + claimColumns + `
		FROM expense_claims c
		JOIN employees e ON e.id = c.employee_id
		WHERE c.id = $1
	`
	c, err := scanClaim(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return expense.Claim{}, expense.ErrClaimNotFound
		}
		return expense.Claim{}, err
	}
	return c, nil
}

// GetByCompanyID implements expense.ClaimRepository.
func (r *claimRepositoryImpl) GetByCompanyID(ctx context.Context, companyID string) ([]expense.Claim, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + claimColumns + `
		FROM expense_claims c
		JOIN employees e ON e.id = c.employee_id
		WHERE c.company_id = $1
		ORDER BY c.created_at DESC
	`
	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var claims []expense.Claim
	for rows.Next() {
		c, err := scanClaim(rows)
		if err != nil {
			return nil, err
		}
		claims = append(claims, c)
	}
	return claims, rows.Err()
}

// UpdateState implements expense.ClaimRepository.
func (r *claimRepositoryImpl) UpdateState(ctx context.Context, claim expense.Claim) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE expense_claims
		SET state = $1, rejection_reason = $2, decided_at = $3, decided_by = $4,
			updated_at = NOW()
		WHERE id = $5
	`
	tag, err := q.Exec(ctx, query,
		claim.State, claim.RejectionReason, claim.DecidedAt, claim.DecidedBy, claim.ID,
	)
	if err != nil {
		return fmt.Errorf("update expense claim state %s: %w", claim.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return expense.ErrClaimNotFound
	}
	return nil
}

type advanceRepositoryImpl struct {
	db *database.DB
}

func NewAdvanceRepository(db *database.DB) expense.AdvanceRepository {
	return &advanceRepositoryImpl{db: db}
}

// Create implements expense.AdvanceRepository.
func (r *advanceRepositoryImpl) Create(ctx context.Context, advance expense.Advance) (expense.Advance, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO expense_advances (
			id, employee_id, company_id, amount, purpose, status,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		advance.EmployeeID, advance.CompanyID, advance.Amount, advance.Purpose, advance.Status,
	).Scan(&advance.ID, &advance.CreatedAt, &advance.UpdatedAt)
	if err != nil {
		return expense.Advance{}, fmt.Errorf("insert expense advance: %w", err)
	}
	return advance, nil
}

// GetByID implements expense.AdvanceRepository.
func (r *advanceRepositoryImpl) GetByID(ctx context.Context, id string) (expense.Advance, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, employee_id, company_id, amount, purpose, status, closed_at,
			   created_at, updated_at
		FROM expense_advances
		WHERE id = $1
	`
	var a expense.Advance
	err := q.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.EmployeeID, &a.CompanyID, &a.Amount, &a.Purpose, &a.Status, &a.ClosedAt,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return expense.Advance{}, expense.ErrAdvanceNotFound
		}
		return expense.Advance{}, err
	}
	return a, nil
}

// Close implements expense.AdvanceRepository.
func (r *advanceRepositoryImpl) Close(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE expense_advances
		SET status = 'closed', closed_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status = 'open'
	`
	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("close expense advance %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return expense.ErrAdvanceClosed
	}
	return nil
}

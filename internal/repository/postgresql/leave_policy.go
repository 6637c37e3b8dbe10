package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/kelolahr/hrms-backend-go/internal/domain/leave"
	"github.com/kelolahr/hrms-backend-go/internal/pkg/database"
)

type policyRepositoryImpl struct {
	db *database.DB
}

func NewPolicyRepository(db *database.DB) leave.PolicyRepository {
	return &policyRepositoryImpl{db: db}
}

// CreatePolicy implements leave.PolicyRepository. Lines are inserted with the
// header; callers wrap this in WithTransaction when atomicity matters.
func (r *policyRepositoryImpl) CreatePolicy(ctx context.Context, policy leave.LeavePolicy) (leave.LeavePolicy, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO leave_policies (
			id, company_id, name, status, effective_from, created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		policy.CompanyID, policy.Name, policy.Status, policy.EffectiveFrom,
	).Scan(&policy.ID, &policy.CreatedAt, &policy.UpdatedAt)
	if err != nil {
		return leave.LeavePolicy{}, fmt.Errorf("insert leave policy: %w", err)
	}

	lineQuery := `
		INSERT INTO leave_policy_lines (
			id, policy_id, leave_type_id, annual_entitlement,
			accrual_method, max_carry_forward, carry_forward_overflow
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6
		) RETURNING id
	`
	for i := range policy.Lines {
		line := &policy.Lines[i]
		line.PolicyID = policy.ID
		err := q.QueryRow(ctx, lineQuery,
			policy.ID, line.LeaveTypeID, line.AnnualEntitlement,
			line.AccrualMethod, line.MaxCarryForward, line.CarryForwardOverflow,
		).Scan(&line.ID)
		if err != nil {
			return leave.LeavePolicy{}, fmt.Errorf("insert policy line: %w", err)
		}
	}

	return policy, nil
}

// GetPolicyByID implements leave.PolicyRepository.
func (r *policyRepositoryImpl) GetPolicyByID(ctx context.Context, id string) (leave.LeavePolicy, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, company_id, name, status, effective_from, created_at, updated_at
		FROM leave_policies
		WHERE id = $1
	`
	var p leave.LeavePolicy
	err := q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.CompanyID, &p.Name, &p.Status, &p.EffectiveFrom, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeavePolicy{}, leave.ErrPolicyNotFound
		}
		return leave.LeavePolicy{}, err
	}

	lines, err := r.linesForPolicy(ctx, id)
	if err != nil {
		return leave.LeavePolicy{}, err
	}
	p.Lines = lines
	return p, nil
}

func (r *policyRepositoryImpl) linesForPolicy(ctx context.Context, policyID string) ([]leave.PolicyLine, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, policy_id, leave_type_id, annual_entitlement,
			   accrual_method, max_carry_forward, carry_forward_overflow
		FROM leave_policy_lines
		WHERE policy_id = $1
	`
	rows, err := q.Query(ctx, query, policyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []leave.PolicyLine
	for rows.Next() {
		var l leave.PolicyLine
		if err := rows.Scan(
			&l.ID, &l.PolicyID, &l.LeaveTypeID, &l.AnnualEntitlement,
			&l.AccrualMethod, &l.MaxCarryForward, &l.CarryForwardOverflow,
		); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// GetPoliciesByCompanyID implements leave.PolicyRepository.
func (r *policyRepositoryImpl) GetPoliciesByCompanyID(ctx context.Context, companyID string) ([]leave.LeavePolicy, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, company_id, name, status, effective_from, created_at, updated_at
		FROM leave_policies
		WHERE company_id = $1
		ORDER BY effective_from DESC
	`
	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var policies []leave.LeavePolicy
	for rows.Next() {
		var p leave.LeavePolicy
		if err := rows.Scan(
			&p.ID, &p.CompanyID, &p.Name, &p.Status, &p.EffectiveFrom, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		policies = append(policies, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range policies {
		lines, err := r.linesForPolicy(ctx, policies[i].ID)
		if err != nil {
			return nil, err
		}
		policies[i].Lines = lines
	}
	return policies, nil
}

// SetPolicyStatus implements leave.PolicyRepository.
func (r *policyRepositoryImpl) SetPolicyStatus(ctx context.Context, id string, status leave.PolicyStatus) error {
	q := GetQuerier(ctx, r.db)
	query := `UPDATE leave_policies SET status = $1, updated_at = NOW() WHERE id = $2`
	tag, err := q.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("set policy status %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrPolicyNotFound
	}
	return nil
}

// CreateMapping implements leave.PolicyRepository.
func (r *policyRepositoryImpl) CreateMapping(ctx context.Context, mapping leave.PolicyMapping) (leave.PolicyMapping, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO leave_policy_mappings (
			id, company_id, policy_id, holiday_calendar_id,
			scope, scope_ref, effective_from, is_active,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6, $7, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		mapping.CompanyID, mapping.PolicyID, mapping.HolidayCalendarID,
		mapping.Scope.String(), mapping.ScopeRef, mapping.EffectiveFrom, mapping.IsActive,
	).Scan(&mapping.ID, &mapping.CreatedAt, &mapping.UpdatedAt)
	if err != nil {
		return leave.PolicyMapping{}, fmt.Errorf("insert policy mapping: %w", err)
	}
	return mapping, nil
}

// GetMappingsForCompany implements leave.PolicyRepository.
func (r *policyRepositoryImpl) GetMappingsForCompany(ctx context.Context, companyID string) ([]leave.PolicyMapping, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, company_id, policy_id, holiday_calendar_id,
			   scope, scope_ref, effective_from, is_active,
			   created_at, updated_at
		FROM leave_policy_mappings
		WHERE company_id = $1
		ORDER BY effective_from DESC
	`
	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mappings []leave.PolicyMapping
	for rows.Next() {
		var m leave.PolicyMapping
		var scopeLabel string
		if err := rows.Scan(
			&m.ID, &m.CompanyID, &m.PolicyID, &m.HolidayCalendarID,
			&scopeLabel, &m.ScopeRef, &m.EffectiveFrom, &m.IsActive,
			&m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, err
		}
		scope, ok := leave.ParseMappingScope(scopeLabel)
		if !ok {
			return nil, fmt.Errorf("mapping %s has unknown scope %q", m.ID, scopeLabel)
		}
		m.Scope = scope
		mappings = append(mappings, m)
	}
	return mappings, rows.Err()
}

package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/kelolahr/hrms-backend-go/internal/domain/appraisal"
	"github.com/kelolahr/hrms-backend-go/internal/pkg/database"
)

type cycleRepositoryImpl struct {
	db *database.DB
}

func NewCycleRepository(db *database.DB) appraisal.CycleRepository {
	return &cycleRepositoryImpl{db: db}
}

// CreateCycle implements appraisal.CycleRepository.
func (r *cycleRepositoryImpl) CreateCycle(ctx context.Context, cycle appraisal.Cycle) (appraisal.Cycle, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO appraisal_cycles (
			id, company_id, name, period_start, period_end,
			kpi_section_weight, core_value_section_weight, status,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6, $7, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		cycle.CompanyID, cycle.Name, cycle.PeriodStart, cycle.PeriodEnd,
		cycle.KpiSectionWeight, cycle.CoreValueSectionWeight, cycle.Status,
	).Scan(&cycle.ID, &cycle.CreatedAt, &cycle.UpdatedAt)
	if err != nil {
		return appraisal.Cycle{}, fmt.Errorf("insert appraisal cycle: %w", err)
	}
	return cycle, nil
}

// GetCycleByID implements appraisal.CycleRepository.
func (r *cycleRepositoryImpl) GetCycleByID(ctx context.Context, id string) (appraisal.Cycle, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, company_id, name, period_start, period_end,
			   kpi_section_weight, core_value_section_weight, status,
			   created_at, updated_at
		FROM appraisal_cycles
		WHERE id = $1
	`
	var c appraisal.Cycle
	err := q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.CompanyID, &c.Name, &c.PeriodStart, &c.PeriodEnd,
		&c.KpiSectionWeight, &c.CoreValueSectionWeight, &c.Status,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return appraisal.Cycle{}, appraisal.ErrCycleNotFound
		}
		return appraisal.Cycle{}, err
	}
	return c, nil
}

// GetCyclesByCompanyID implements appraisal.CycleRepository.
func (r *cycleRepositoryImpl) GetCyclesByCompanyID(ctx context.Context, companyID string) ([]appraisal.Cycle, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, company_id, name, period_start, period_end,
			   kpi_section_weight, core_value_section_weight, status,
			   created_at, updated_at
		FROM appraisal_cycles
		WHERE company_id = $1
		ORDER BY period_start DESC
	`
	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cycles []appraisal.Cycle
	for rows.Next() {
		var c appraisal.Cycle
		if err := rows.Scan(
			&c.ID, &c.CompanyID, &c.Name, &c.PeriodStart, &c.PeriodEnd,
			&c.KpiSectionWeight, &c.CoreValueSectionWeight, &c.Status,
			&c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		cycles = append(cycles, c)
	}
	return cycles, rows.Err()
}

// CreateItems implements appraisal.CycleRepository.
func (r *cycleRepositoryImpl) CreateItems(ctx context.Context, items []appraisal.Item) error {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO appraisal_items (id, cycle_id, kind, title, weightage)
		VALUES (uuidv7(), $1, $2, $3, $4)
	`
	for _, item := range items {
		if _, err := q.Exec(ctx, query, item.CycleID, item.Kind, item.Title, item.Weightage); err != nil {
			return fmt.Errorf("insert appraisal item: %w", err)
		}
	}
	return nil
}

// GetItemsByCycleID implements appraisal.CycleRepository.
func (r *cycleRepositoryImpl) GetItemsByCycleID(ctx context.Context, cycleID string) ([]appraisal.Item, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, cycle_id, kind, title, weightage
		FROM appraisal_items
		WHERE cycle_id = $1
		ORDER BY kind, title
	`
	rows, err := q.Query(ctx, query, cycleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []appraisal.Item
	for rows.Next() {
		var item appraisal.Item
		if err := rows.Scan(&item.ID, &item.CycleID, &item.Kind, &item.Title, &item.Weightage); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

type formRepositoryImpl struct {
	db *database.DB
}

func NewFormRepository(db *database.DB) appraisal.FormRepository {
	return &formRepositoryImpl{db: db}
}

const formColumns = `
	f.id, f.cycle_id, f.employee_id, f.ratings,
	f.kpi_score, f.core_value_score, f.overall_score,
	f.state, f.created_at, f.updated_at, e.full_name AS employee_name`

func scanForm(row pgx.Row) (appraisal.Form, error) {
	var f appraisal.Form
	err := row.Scan(
		&f.ID, &f.CycleID, &f.EmployeeID, &f.Ratings,
		&f.KpiScore, &f.CoreValueScore, &f.OverallScore,
		&f.State, &f.CreatedAt, &f.UpdatedAt, &f.EmployeeName,
	)
	return f, err
}

// Create implements appraisal.FormRepository.
func (r *formRepositoryImpl) Create(ctx context.Context, form appraisal.Form) (appraisal.Form, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO appraisal_forms (
			id, cycle_id, employee_id, ratings, state, created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		form.CycleID, form.EmployeeID, form.Ratings, form.State,
	).Scan(&form.ID, &form.CreatedAt, &form.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return appraisal.Form{}, appraisal.ErrFormExists
		}
		return appraisal.Form{}, fmt.Errorf("insert appraisal form: %w", err)
	}
	return form, nil
}

// GetByID implements appraisal.FormRepository.
func (r *formRepositoryImpl) GetByID(ctx context.Context, id string) (appraisal.Form, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + formColumns + `
		FROM appraisal_forms f
		JOIN employees e ON e.id = f.employee_id
		WHERE f.id = $1
	`
	f, err := scanForm(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return appraisal.Form{}, appraisal.ErrFormNotFound
		}
		return appraisal.Form{}, err
	}
	return f, nil
}

// GetByEmployeeAndCycle implements appraisal.FormRepository.
func (r *formRepositoryImpl) GetByEmployeeAndCycle(ctx context.Context, employeeID, cycleID string) (*appraisal.Form, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + formColumns + `
		FROM appraisal_forms f
		JOIN employees e ON e.id = f.employee_id
		WHERE f.employee_id = $1 AND f.cycle_id = $2
	`
	f, err := scanForm(q.QueryRow(ctx, query, employeeID, cycleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &f, nil
}

// Update implements appraisal.FormRepository.
func (r *formRepositoryImpl) Update(ctx context.Context, form appraisal.Form) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE appraisal_forms
		SET ratings = $1, kpi_score = $2, core_value_score = $3, overall_score = $4,
			state = $5, updated_at = NOW()
		WHERE id = $6
	`
	tag, err := q.Exec(ctx, query,
		form.Ratings, form.KpiScore, form.CoreValueScore, form.OverallScore,
		form.State, form.ID,
	)
	if err != nil {
		return fmt.Errorf("update appraisal form %s: %w", form.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return appraisal.ErrFormNotFound
	}
	return nil
}

type piProposalRepositoryImpl struct {
	db *database.DB
}

func NewPIProposalRepository(db *database.DB) appraisal.PIProposalRepository {
	return &piProposalRepositoryImpl{db: db}
}

const proposalColumns = `
	id, employee_id, company_id, cycle_id, proposed_designation_id,
	proposed_increment_pct, justification, stage, status,
	submitted_at, decided_at, decided_by, letter_eligible,
	created_at, updated_at`

func scanProposal(row pgx.Row) (appraisal.PIProposal, error) {
	var p appraisal.PIProposal
	err := row.Scan(
		&p.ID, &p.EmployeeID, &p.CompanyID, &p.CycleID, &p.ProposedDesignationID,
		&p.ProposedIncrementPct, &p.Justification, &p.Stage, &p.Status,
		&p.SubmittedAt, &p.DecidedAt, &p.DecidedBy, &p.LetterEligible,
		&p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// Create implements appraisal.PIProposalRepository.
func (r *piProposalRepositoryImpl) Create(ctx context.Context, proposal appraisal.PIProposal) (appraisal.PIProposal, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO pi_proposals (
			id, employee_id, company_id, cycle_id, proposed_designation_id,
			proposed_increment_pct, justification, stage, status,
			submitted_at, created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		proposal.EmployeeID, proposal.CompanyID, proposal.CycleID, proposal.ProposedDesignationID,
		proposal.ProposedIncrementPct, proposal.Justification, proposal.Stage, proposal.Status,
		proposal.SubmittedAt,
	).Scan(&proposal.ID, &proposal.CreatedAt, &proposal.UpdatedAt)
	if err != nil {
		return appraisal.PIProposal{}, fmt.Errorf("insert PI proposal: %w", err)
	}
	return proposal, nil
}

// GetByID implements appraisal.PIProposalRepository.
func (r *piProposalRepositoryImpl) GetByID(ctx context.Context, id string) (appraisal.PIProposal, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + proposalColumns + ` FROM pi_proposals WHERE id = $1`
	p, err := scanProposal(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return appraisal.PIProposal{}, appraisal.ErrProposalNotFound
		}
		return appraisal.PIProposal{}, err
	}
	return p, nil
}

// GetByCompanyID implements appraisal.PIProposalRepository.
func (r *piProposalRepositoryImpl) GetByCompanyID(ctx context.Context, companyID string) ([]appraisal.PIProposal, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + proposalColumns + `
		FROM pi_proposals
		WHERE company_id = $1
		ORDER BY created_at DESC
	`
	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var proposals []appraisal.PIProposal
	for rows.Next() {
		p, err := scanProposal(rows)
		if err != nil {
			return nil, err
		}
		proposals = append(proposals, p)
	}
	return proposals, rows.Err()
}

// Update implements appraisal.PIProposalRepository.
func (r *piProposalRepositoryImpl) Update(ctx context.Context, proposal appraisal.PIProposal) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE pi_proposals
		SET stage = $1, status = $2, decided_at = $3, decided_by = $4,
			letter_eligible = $5, updated_at = NOW()
		WHERE id = $6
	`
	tag, err := q.Exec(ctx, query,
		proposal.Stage, proposal.Status, proposal.DecidedAt, proposal.DecidedBy,
		proposal.LetterEligible, proposal.ID,
	)
	if err != nil {
		return fmt.Errorf("update PI proposal %s: %w", proposal.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return appraisal.ErrProposalNotFound
	}
	return nil
}

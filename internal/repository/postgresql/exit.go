package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/kelolahr/hrms-backend-go/internal/domain/exit"
	"github.com/kelolahr/hrms-backend-go/internal/pkg/database"
)

type resignationRepositoryImpl struct {
	db *database.DB
}

func NewResignationRepository(db *database.DB) exit.ResignationRepository {
	return &resignationRepositoryImpl{db: db}
}

const resignationColumns = `
	r.id, r.employee_id, r.company_id, r.reason, r.notice_date, r.last_working_date,
	r.state, r.rejection_reason, r.submitted_at, r.decided_at, r.decided_by,
	r.is_exit_completed, r.completed_at, r.created_at, r.updated_at,
	e.full_name AS employee_name`

func scanResignation(row pgx.Row) (exit.ResignationRequest, error) {
	var rr exit.ResignationRequest
	err := row.Scan(
		&rr.ID, &rr.EmployeeID, &rr.CompanyID, &rr.Reason, &rr.NoticeDate, &rr.LastWorkingDate,
		&rr.State, &rr.RejectionReason, &rr.SubmittedAt, &rr.DecidedAt, &rr.DecidedBy,
		&rr.IsExitCompleted, &rr.CompletedAt, &rr.CreatedAt, &rr.UpdatedAt,
		&rr.EmployeeName,
	)
	return rr, err
}

// Create implements exit.ResignationRepository. A partial unique index on
// open resignations makes a second open request a conflict.
func (r *resignationRepositoryImpl) Create(ctx context.Context, req exit.ResignationRequest) (exit.ResignationRequest, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO resignation_requests (
			id, employee_id, company_id, reason, notice_date, last_working_date,
			state, submitted_at, created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6, $7, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		req.EmployeeID, req.CompanyID, req.Reason, req.NoticeDate, req.LastWorkingDate,
		req.State, req.SubmittedAt,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return exit.ResignationRequest{}, exit.ErrResignationExists
		}
		return exit.ResignationRequest{}, fmt.Errorf("insert resignation request: %w", err)
	}
	return req, nil
}

// GetByID implements exit.ResignationRepository.
func (r *resignationRepositoryImpl) GetByID(ctx context.Context, id string) (exit.ResignationRequest, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + resignationColumns + `
		FROM resignation_requests r
		JOIN employees e ON e.id = r.employee_id
		WHERE r.id = $1
	`
	rr, err := scanResignation(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return exit.ResignationRequest{}, exit.ErrResignationNotFound
		}
		return exit.ResignationRequest{}, err
	}
	return rr, nil
}

// GetOpenByEmployeeID implements exit.ResignationRepository. Open means
// neither rejected nor exit-completed.
func (r *resignationRepositoryImpl) GetOpenByEmployeeID(ctx context.Context, employeeID string) (*exit.ResignationRequest, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + resignationColumns + `
		FROM resignation_requests r
		JOIN employees e ON e.id = r.employee_id
		WHERE r.employee_id = $1
		  AND r.state <> 'rejected'
		  AND r.is_exit_completed = false
		ORDER BY r.created_at DESC
		LIMIT 1
	`
	rr, err := scanResignation(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rr, nil
}

// GetByCompanyID implements exit.ResignationRepository.
func (r *resignationRepositoryImpl) GetByCompanyID(ctx context.Context, companyID string) ([]exit.ResignationRequest, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + resignationColumns + `
		FROM resignation_requests r
		JOIN employees e ON e.id = r.employee_id
		WHERE r.company_id = $1
		ORDER BY r.created_at DESC
	`
	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []exit.ResignationRequest
	for rows.Next() {
		rr, err := scanResignation(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, rr)
	}
	return requests, rows.Err()
}

// UpdateState implements exit.ResignationRepository.
func (r *resignationRepositoryImpl) UpdateState(ctx context.Context, req exit.ResignationRequest) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE resignation_requests
		SET state = $1, rejection_reason = $2, decided_at = $3, decided_by = $4,
			updated_at = NOW()
		WHERE id = $5
	`
	tag, err := q.Exec(ctx, query,
		req.State, req.RejectionReason, req.DecidedAt, req.DecidedBy, req.ID,
	)
	if err != nil {
		return fmt.Errorf("update resignation state %s: %w", req.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return exit.ErrResignationNotFound
	}
	return nil
}

// MarkCompleted implements exit.ResignationRepository. The guard clause makes
// a second completion a no-op surfaced as ErrExitAlreadyCompleted.
func (r *resignationRepositoryImpl) MarkCompleted(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE resignation_requests
		SET is_exit_completed = true, completed_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND is_exit_completed = false
	`
	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("mark resignation completed %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return exit.ErrExitAlreadyCompleted
	}
	return nil
}

type checklistRepositoryImpl struct {
	db *database.DB
}

func NewChecklistRepository(db *database.DB) exit.ChecklistRepository {
	return &checklistRepositoryImpl{db: db}
}

// CreateClearanceItems implements exit.ChecklistRepository.
func (r *checklistRepositoryImpl) CreateClearanceItems(ctx context.Context, items []exit.ClearanceItem) error {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO exit_clearance_items (id, resignation_id, department, status)
		VALUES (uuidv7(), $1, $2, $3)
	`
	for _, item := range items {
		if _, err := q.Exec(ctx, query, item.ResignationID, item.Department, item.Status); err != nil {
			return fmt.Errorf("insert clearance item: %w", err)
		}
	}
	return nil
}

// GetClearanceItems implements exit.ChecklistRepository.
func (r *checklistRepositoryImpl) GetClearanceItems(ctx context.Context, resignationID string) ([]exit.ClearanceItem, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, resignation_id, department, status, cleared_by, cleared_at, remarks
		FROM exit_clearance_items
		WHERE resignation_id = $1
		ORDER BY department
	`
	rows, err := q.Query(ctx, query, resignationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []exit.ClearanceItem
	for rows.Next() {
		var item exit.ClearanceItem
		if err := rows.Scan(
			&item.ID, &item.ResignationID, &item.Department, &item.Status,
			&item.ClearedBy, &item.ClearedAt, &item.Remarks,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// UpdateClearanceItem implements exit.ChecklistRepository.
func (r *checklistRepositoryImpl) UpdateClearanceItem(ctx context.Context, item exit.ClearanceItem) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE exit_clearance_items
		SET status = $1, cleared_by = $2, cleared_at = $3, remarks = $4
		WHERE id = $5
	`
	tag, err := q.Exec(ctx, query,
		item.Status, item.ClearedBy, item.ClearedAt, item.Remarks, item.ID,
	)
	if err != nil {
		return fmt.Errorf("update clearance item %s: %w", item.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return exit.ErrChecklistNotInitiated
	}
	return nil
}

// CreateAssets implements exit.ChecklistRepository.
func (r *checklistRepositoryImpl) CreateAssets(ctx context.Context, assets []exit.Asset) error {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO exit_assets (id, resignation_id, name, asset_tag, status)
		VALUES (uuidv7(), $1, $2, $3, $4)
	`
	for _, asset := range assets {
		if _, err := q.Exec(ctx, query, asset.ResignationID, asset.Name, asset.AssetTag, asset.Status); err != nil {
			return fmt.Errorf("insert exit asset: %w", err)
		}
	}
	return nil
}

// GetAssets implements exit.ChecklistRepository.
func (r *checklistRepositoryImpl) GetAssets(ctx context.Context, resignationID string) ([]exit.Asset, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, resignation_id, name, asset_tag, status, returned_at
		FROM exit_assets
		WHERE resignation_id = $1
		ORDER BY name
	`
	rows, err := q.Query(ctx, query, resignationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []exit.Asset
	for rows.Next() {
		var a exit.Asset
		if err := rows.Scan(
			&a.ID, &a.ResignationID, &a.Name, &a.AssetTag, &a.Status, &a.ReturnedAt,
		); err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

// UpdateAsset implements exit.ChecklistRepository.
func (r *checklistRepositoryImpl) UpdateAsset(ctx context.Context, asset exit.Asset) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE exit_assets
		SET status = $1, returned_at = $2
		WHERE id = $3
	`
	tag, err := q.Exec(ctx, query, asset.Status, asset.ReturnedAt, asset.ID)
	if err != nil {
		return fmt.Errorf("update exit asset %s: %w", asset.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return exit.ErrChecklistNotInitiated
	}
	return nil
}

// UpsertHRForm implements exit.ChecklistRepository.
func (r *checklistRepositoryImpl) UpsertHRForm(ctx context.Context, form exit.HRForm) (exit.HRForm, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO exit_hr_forms (id, resignation_id, submitted, feedback, submitted_at)
		VALUES (uuidv7(), $1, $2, $3, $4)
		ON CONFLICT (resignation_id) DO UPDATE SET
			submitted = EXCLUDED.submitted,
			feedback = EXCLUDED.feedback,
			submitted_at = EXCLUDED.submitted_at
		RETURNING id
	`
	err := q.QueryRow(ctx, query,
		form.ResignationID, form.Submitted, form.Feedback, form.SubmittedAt,
	).Scan(&form.ID)
	if err != nil {
		return exit.HRForm{}, fmt.Errorf("upsert exit HR form: %w", err)
	}
	return form, nil
}

// GetHRForm implements exit.ChecklistRepository.
func (r *checklistRepositoryImpl) GetHRForm(ctx context.Context, resignationID string) (*exit.HRForm, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, resignation_id, submitted, feedback, submitted_at
		FROM exit_hr_forms
		WHERE resignation_id = $1
	`
	var form exit.HRForm
	err := q.QueryRow(ctx, query, resignationID).Scan(
		&form.ID, &form.ResignationID, &form.Submitted, &form.Feedback, &form.SubmittedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &form, nil
}

type fnfRepositoryImpl struct {
	db *database.DB
}

func NewFnFRepository(db *database.DB) exit.FnFRepository {
	return &fnfRepositoryImpl{db: db}
}

// Create implements exit.FnFRepository.
func (r *fnfRepositoryImpl) Create(ctx context.Context, fnf exit.FnFSettlement) (exit.FnFSettlement, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO fnf_settlements (
			id, resignation_id, employee_id,
			leave_encashment_days, leave_encashment_value,
			deduction_amount, net_amount, status, created_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6, $7, NOW()
		) RETURNING id, created_at
	`
	err := q.QueryRow(ctx, query,
		fnf.ResignationID, fnf.EmployeeID,
		fnf.LeaveEncashmentDays, fnf.LeaveEncashmentValue,
		fnf.DeductionAmount, fnf.NetAmount, fnf.Status,
	).Scan(&fnf.ID, &fnf.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return exit.FnFSettlement{}, exit.ErrFnFExists
		}
		return exit.FnFSettlement{}, fmt.Errorf("insert FnF settlement: %w", err)
	}
	return fnf, nil
}

// GetByResignationID implements exit.FnFRepository.
func (r *fnfRepositoryImpl) GetByResignationID(ctx context.Context, resignationID string) (*exit.FnFSettlement, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, resignation_id, employee_id,
			   leave_encashment_days, leave_encashment_value,
			   deduction_amount, net_amount, status, settled_at, created_at
		FROM fnf_settlements
		WHERE resignation_id = $1
	`
	var fnf exit.FnFSettlement
	err := q.QueryRow(ctx, query, resignationID).Scan(
		&fnf.ID, &fnf.ResignationID, &fnf.EmployeeID,
		&fnf.LeaveEncashmentDays, &fnf.LeaveEncashmentValue,
		&fnf.DeductionAmount, &fnf.NetAmount, &fnf.Status, &fnf.SettledAt, &fnf.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &fnf, nil
}

// MarkSettled implements exit.FnFRepository.
func (r *fnfRepositoryImpl) MarkSettled(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE fnf_settlements
		SET status = 'settled', settled_at = NOW()
		WHERE id = $1 AND status = 'draft'
	`
	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("mark FnF settled %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return exit.ErrFnFNotEligible
	}
	return nil
}

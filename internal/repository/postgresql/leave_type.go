package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/kelolahr/hrms-backend-go/internal/domain/leave"
	"github.com/kelolahr/hrms-backend-go/internal/pkg/database"
)

type leaveTypeRepositoryImpl struct {
	db *database.DB
}

func NewLeaveTypeRepository(db *database.DB) leave.LeaveTypeRepository {
	return &leaveTypeRepositoryImpl{db: db}
}

const leaveTypeColumns = `
	id, company_id, name, code, description,
	allow_negative_balance, allow_encashment, is_active,
	created_at, updated_at`

func scanLeaveType(row pgx.Row) (leave.LeaveType, error) {
	var lt leave.LeaveType
	err := row.Scan(
		&lt.ID, &lt.CompanyID, &lt.Name, &lt.Code, &lt.Description,
		&lt.AllowNegativeBalance, &lt.AllowEncashment, &lt.IsActive,
		&lt.CreatedAt, &lt.UpdatedAt,
	)
	return lt, err
}

// Create implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) Create(ctx context.Context, leaveType leave.LeaveType) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO leave_types (
			id, company_id, name, code, description,
			allow_negative_balance, allow_encashment, is_active,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6, $7, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		leaveType.CompanyID, leaveType.Name, leaveType.Code, leaveType.Description,
		leaveType.AllowNegativeBalance, leaveType.AllowEncashment, leaveType.IsActive,
	).Scan(&leaveType.ID, &leaveType.CreatedAt, &leaveType.UpdatedAt)
	if err != nil {
		return leave.LeaveType{}, fmt.Errorf("insert leave type: %w", err)
	}
	return leaveType, nil
}

// GetByID implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + leaveTypeColumns + ` FROM leave_types WHERE id = $1`
	lt, err := scanLeaveType(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
		}
		return leave.LeaveType{}, err
	}
	return lt, nil
}

// GetByCompanyID implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) GetByCompanyID(ctx context.Context, companyID string) ([]leave.LeaveType, error) {
	return r.listByCompany(ctx, companyID, false)
}

// GetActiveByCompanyID implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) GetActiveByCompanyID(ctx context.Context, companyID string) ([]leave.LeaveType, error) {
	return r.listByCompany(ctx, companyID, true)
}

func (r *leaveTypeRepositoryImpl) listByCompany(ctx context.Context, companyID string, activeOnly bool) ([]leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + leaveTypeColumns + ` FROM leave_types WHERE company_id = $1`
	if activeOnly {
		query += ` AND is_active = true`
	}
	query += ` ORDER BY name`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leaveTypes []leave.LeaveType
	for rows.Next() {
		lt, err := scanLeaveType(rows)
		if err != nil {
			return nil, err
		}
		leaveTypes = append(leaveTypes, lt)
	}
	return leaveTypes, rows.Err()
}

// Update implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) Update(ctx context.Context, leaveType leave.LeaveType) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE leave_types
		SET name = $1, code = $2, description = $3,
			allow_negative_balance = $4, allow_encashment = $5, is_active = $6,
			updated_at = NOW()
		WHERE id = $7
	`
	tag, err := q.Exec(ctx, query,
		leaveType.Name, leaveType.Code, leaveType.Description,
		leaveType.AllowNegativeBalance, leaveType.AllowEncashment, leaveType.IsActive,
		leaveType.ID,
	)
	if err != nil {
		return fmt.Errorf("update leave type %s: %w", leaveType.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveTypeNotFound
	}
	return nil
}

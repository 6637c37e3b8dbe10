package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/kelolahr/hrms-backend-go/internal/domain/leave"
	"github.com/kelolahr/hrms-backend-go/internal/pkg/database"
)

type requestRepositoryImpl struct {
	db *database.DB
}

func NewRequestRepository(db *database.DB) leave.RequestRepository {
	return &requestRepositoryImpl{db: db}
}

const leaveRequestColumns = `
	lr.id, lr.employee_id, lr.company_id, lr.leave_type_id,
	lr.start_date, lr.end_date, lr.days, lr.is_half_day, lr.reason,
	lr.state, lr.rejection_reason, lr.submitted_at, lr.decided_at, lr.decided_by,
	lr.created_at, lr.updated_at,
	e.full_name AS employee_name, lt.name AS leave_type_name`

const leaveRequestJoins = `
	FROM leave_requests lr
	JOIN employees e ON e.id = lr.employee_id
	JOIN leave_types lt ON lt.id = lr.leave_type_id`

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	err := row.Scan(
		&lr.ID, &lr.EmployeeID, &lr.CompanyID, &lr.LeaveTypeID,
		&lr.StartDate, &lr.EndDate, &lr.Days, &lr.IsHalfDay, &lr.Reason,
		&lr.State, &lr.RejectionReason, &lr.SubmittedAt, &lr.DecidedAt, &lr.DecidedBy,
		&lr.CreatedAt, &lr.UpdatedAt,
		&lr.EmployeeName, &lr.LeaveTypeName,
	)
	return lr, err
}

// Create implements leave.RequestRepository.
func (r *requestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO leave_requests (
			id, employee_id, company_id, leave_type_id,
			start_date, end_date, days, is_half_day, reason,
			state, submitted_at, created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		request.EmployeeID, request.CompanyID, request.LeaveTypeID,
		request.StartDate, request.EndDate, request.Days, request.IsHalfDay, request.Reason,
		request.State, request.SubmittedAt,
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("insert leave request: %w", err)
	}
	return request, nil
}

// GetByID implements leave.RequestRepository.
func (r *requestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + leaveRequestColumns + leaveRequestJoins + ` WHERE lr.id = $1`
	lr, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}
	return lr, nil
}

// GetByEmployeeID implements leave.RequestRepository.
func (r *requestRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	query := `
		SELECT ` + leaveRequestColumns + leaveRequestJoins + `
		WHERE lr.employee_id = $1
		ORDER BY lr.start_date DESC
	`
	return r.list(ctx, query, employeeID)
}

// GetByCompanyID implements leave.RequestRepository.
func (r *requestRepositoryImpl) GetByCompanyID(ctx context.Context, companyID string) ([]leave.LeaveRequest, error) {
	query := `
		SELECT ` + leaveRequestColumns + leaveRequestJoins + `
		WHERE lr.company_id = $1
		ORDER BY lr.start_date DESC
	`
	return r.list(ctx, query, companyID)
}

// GetApprovedCovering implements leave.RequestRepository.
func (r *requestRepositoryImpl) GetApprovedCovering(ctx context.Context, employeeID string, date time.Time) ([]leave.LeaveRequest, error) {
	query := `
		SELECT ` + leaveRequestColumns + leaveRequestJoins + `
		WHERE lr.employee_id = $1
		  AND lr.state = 'approved'
		  AND lr.start_date <= $2 AND lr.end_date >= $2
	`
	return r.list(ctx, query, employeeID, date)
}

func (r *requestRepositoryImpl) list(ctx context.Context, query string, args ...interface{}) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, lr)
	}
	return requests, rows.Err()
}

// HasOverlapping implements leave.RequestRepository. Pending and approved
// requests block overlapping ranges; rejected ones do not.
func (r *requestRepositoryImpl) HasOverlapping(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT EXISTS (
			SELECT 1 FROM leave_requests
			WHERE employee_id = $1
			  AND state NOT IN ('rejected', 'draft')
			  AND start_date <= $3 AND end_date >= $2
		)
	`
	var overlaps bool
	if err := q.QueryRow(ctx, query, employeeID, start, end).Scan(&overlaps); err != nil {
		return false, err
	}
	return overlaps, nil
}

// UpdateState implements leave.RequestRepository.
func (r *requestRepositoryImpl) UpdateState(ctx context.Context, req leave.LeaveRequest) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE leave_requests
		SET state = $1, rejection_reason = $2, decided_at = $3, decided_by = $4,
			updated_at = NOW()
		WHERE id = $5
	`
	tag, err := q.Exec(ctx, query,
		req.State, req.RejectionReason, req.DecidedAt, req.DecidedBy, req.ID,
	)
	if err != nil {
		return fmt.Errorf("update leave request state %s: %w", req.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveRequestNotFound
	}
	return nil
}

// CreateEncashment implements leave.RequestRepository.
func (r *requestRepositoryImpl) CreateEncashment(ctx context.Context, request leave.EncashmentRequest) (leave.EncashmentRequest, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO leave_encashment_requests (
			id, employee_id, company_id, leave_type_id,
			days, reason, state, submitted_at, created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6, $7, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		request.EmployeeID, request.CompanyID, request.LeaveTypeID,
		request.Days, request.Reason, request.State, request.SubmittedAt,
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return leave.EncashmentRequest{}, fmt.Errorf("insert encashment request: %w", err)
	}
	return request, nil
}

// GetEncashmentByID implements leave.RequestRepository.
func (r *requestRepositoryImpl) GetEncashmentByID(ctx context.Context, id string) (leave.EncashmentRequest, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, employee_id, company_id, leave_type_id,
			   days, reason, state, submitted_at, decided_at, decided_by,
			   created_at, updated_at
		FROM leave_encashment_requests
		WHERE id = $1
	`
	var er leave.EncashmentRequest
	err := q.QueryRow(ctx, query, id).Scan(
		&er.ID, &er.EmployeeID, &er.CompanyID, &er.LeaveTypeID,
		&er.Days, &er.Reason, &er.State, &er.SubmittedAt, &er.DecidedAt, &er.DecidedBy,
		&er.CreatedAt, &er.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.EncashmentRequest{}, leave.ErrEncashmentNotFound
		}
		return leave.EncashmentRequest{}, err
	}
	return er, nil
}

// UpdateEncashmentState implements leave.RequestRepository.
func (r *requestRepositoryImpl) UpdateEncashmentState(ctx context.Context, req leave.EncashmentRequest) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE leave_encashment_requests
		SET state = $1, decided_at = $2, decided_by = $3, updated_at = NOW()
		WHERE id = $4
	`
	tag, err := q.Exec(ctx, query, req.State, req.DecidedAt, req.DecidedBy, req.ID)
	if err != nil {
		return fmt.Errorf("update encashment state %s: %w", req.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrEncashmentNotFound
	}
	return nil
}

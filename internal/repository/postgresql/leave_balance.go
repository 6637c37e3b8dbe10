package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/kelolahr/hrms-backend-go/internal/domain/leave"
	"github.com/kelolahr/hrms-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type balanceRepositoryImpl struct {
	db *database.DB
}

func NewBalanceRepository(db *database.DB) leave.BalanceRepository {
	return &balanceRepositoryImpl{db: db}
}

const balanceColumns = `
	b.id, b.employee_id, b.leave_type_id, b.period_start, b.period_end,
	b.opening_balance, b.carry_forward_from_prev, b.accrued_till_date,
	b.availed_till_date, b.encashed_till_date, b.adjusted_manually,
	b.current_balance, b.created_at, b.updated_at,
	e.full_name AS employee_name, lt.name AS leave_type_name`

const balanceJoins = `
	FROM employee_leave_balances b
	JOIN employees e ON e.id = b.employee_id
	JOIN leave_types lt ON lt.id = b.leave_type_id`

func scanBalance(row pgx.Row) (leave.Balance, error) {
	var b leave.Balance
	err := row.Scan(
		&b.ID, &b.EmployeeID, &b.LeaveTypeID, &b.PeriodStart, &b.PeriodEnd,
		&b.OpeningBalance, &b.CarryForwardFromPrev, &b.AccruedTillDate,
		&b.AvailedTillDate, &b.EncashedTillDate, &b.AdjustedManually,
		&b.CurrentBalance, &b.CreatedAt, &b.UpdatedAt,
		&b.EmployeeName, &b.LeaveTypeName,
	)
	return b, err
}

// Create implements leave.BalanceRepository.
func (r *balanceRepositoryImpl) Create(ctx context.Context, balance leave.Balance) (leave.Balance, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO employee_leave_balances (
			id, employee_id, leave_type_id, period_start, period_end,
			opening_balance, carry_forward_from_prev, accrued_till_date,
			availed_till_date, encashed_till_date, adjusted_manually,
			current_balance, created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		balance.EmployeeID, balance.LeaveTypeID, balance.PeriodStart, balance.PeriodEnd,
		balance.OpeningBalance, balance.CarryForwardFromPrev, balance.AccruedTillDate,
		balance.AvailedTillDate, balance.EncashedTillDate, balance.AdjustedManually,
		balance.CurrentBalance,
	).Scan(&balance.ID, &balance.CreatedAt, &balance.UpdatedAt)
	if err != nil {
		return leave.Balance{}, fmt.Errorf("insert leave balance: %w", err)
	}
	return balance, nil
}

// GetByID implements leave.BalanceRepository.
func (r *balanceRepositoryImpl) GetByID(ctx context.Context, id string) (leave.Balance, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + balanceColumns + balanceJoins + ` WHERE b.id = $1`
	b, err := scanBalance(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Balance{}, leave.ErrBalanceNotFound
		}
		return leave.Balance{}, err
	}
	return b, nil
}

// GetCurrent implements leave.BalanceRepository. Picks the balance row whose
// period covers asOf.
func (r *balanceRepositoryImpl) GetCurrent(ctx context.Context, employeeID, leaveTypeID string, asOf time.Time) (leave.Balance, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + balanceColumns + balanceJoins + `
		WHERE b.employee_id = $1 AND b.leave_type_id = $2
		  AND b.period_start <= $3 AND b.period_end >= $3
		ORDER BY b.period_start DESC
		LIMIT 1
	`
	b, err := scanBalance(q.QueryRow(ctx, query, employeeID, leaveTypeID, asOf))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Balance{}, leave.ErrBalanceNotFound
		}
		return leave.Balance{}, err
	}
	return b, nil
}

// GetByEmployee implements leave.BalanceRepository.
func (r *balanceRepositoryImpl) GetByEmployee(ctx context.Context, employeeID string) ([]leave.Balance, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + balanceColumns + balanceJoins + `
		WHERE b.employee_id = $1
		ORDER BY b.period_start DESC, lt.name
	`
	return r.list(ctx, q, query, employeeID)
}

// GetByCompanyForPeriod implements leave.BalanceRepository.
func (r *balanceRepositoryImpl) GetByCompanyForPeriod(ctx context.Context, companyID string, periodStart, periodEnd time.Time) ([]leave.Balance, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + balanceColumns + balanceJoins + `
		WHERE e.company_id = $1 AND b.period_start = $2 AND b.period_end = $3
		ORDER BY e.full_name, lt.name
	`
	return r.list(ctx, q, query, companyID, periodStart, periodEnd)
}

func (r *balanceRepositoryImpl) list(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]leave.Balance, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var balances []leave.Balance
	for rows.Next() {
		b, err := scanBalance(rows)
		if err != nil {
			return nil, err
		}
		balances = append(balances, b)
	}
	return balances, rows.Err()
}

// ApplyComponents implements leave.BalanceRepository. Adds a signed change to
// the cached balance and to the component column its source maps to. Availed
// and encashed columns accumulate positive magnitudes, so the signed amount
// flips for them.
func (r *balanceRepositoryImpl) ApplyComponents(ctx context.Context, balanceID string, source leave.ChangeSource, amount decimal.Decimal) error {
	var column string
	columnDelta := amount
	switch source {
	case leave.SourceAccrual:
		column = "accrued_till_date"
	case leave.SourceLeaveAvailed:
		column = "availed_till_date"
		columnDelta = amount.Neg()
	case leave.SourceEncashment:
		column = "encashed_till_date"
		columnDelta = amount.Neg()
	case leave.SourceCarryForward:
		column = "carry_forward_from_prev"
	case leave.SourceManualAdjustment, leave.SourceCarryForwardForfeit:
		column = "adjusted_manually"
	default:
		return fmt.Errorf("unknown change source %q", source)
	}

	q := GetQuerier(ctx, r.db)
	query := fmt.Sprintf(`
		UPDATE employee_leave_balances
		SET %s = %s + $1,
			current_balance = current_balance + $2,
			updated_at = NOW()
		WHERE id = $3
	`, column, column)
	tag, err := q.Exec(ctx, query, columnDelta, amount, balanceID)
	if err != nil {
		return fmt.Errorf("apply balance change %s: %w", balanceID, err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrBalanceNotFound
	}
	return nil
}

// AppendChangeLog implements leave.BalanceRepository.
func (r *balanceRepositoryImpl) AppendChangeLog(ctx context.Context, log leave.BalanceChangeLog) (leave.BalanceChangeLog, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO leave_balance_change_logs (
			id, balance_id, employee_id, leave_type_id,
			old_balance, new_balance, change_amount, source,
			effective_date, actor_id, reason, created_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW()
		) RETURNING id, created_at
	`
	err := q.QueryRow(ctx, query,
		log.BalanceID, log.EmployeeID, log.LeaveTypeID,
		log.OldBalance, log.NewBalance, log.ChangeAmount, log.Source,
		log.EffectiveDate, log.ActorID, log.Reason,
	).Scan(&log.ID, &log.CreatedAt)
	if err != nil {
		return leave.BalanceChangeLog{}, fmt.Errorf("append balance change log: %w", err)
	}
	return log, nil
}

// GetChangeLogs implements leave.BalanceRepository. Ordered oldest first so
// replay folds in insertion order.
func (r *balanceRepositoryImpl) GetChangeLogs(ctx context.Context, employeeID, leaveTypeID string) ([]leave.BalanceChangeLog, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, balance_id, employee_id, leave_type_id,
			   old_balance, new_balance, change_amount, source,
			   effective_date, actor_id, reason, created_at
		FROM leave_balance_change_logs
		WHERE employee_id = $1 AND leave_type_id = $2
		ORDER BY created_at, id
	`
	rows, err := q.Query(ctx, query, employeeID, leaveTypeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []leave.BalanceChangeLog
	for rows.Next() {
		var l leave.BalanceChangeLog
		if err := rows.Scan(
			&l.ID, &l.BalanceID, &l.EmployeeID, &l.LeaveTypeID,
			&l.OldBalance, &l.NewBalance, &l.ChangeAmount, &l.Source,
			&l.EffectiveDate, &l.ActorID, &l.Reason, &l.CreatedAt,
		); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

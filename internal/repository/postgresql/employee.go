package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/kelolahr/hrms-backend-go/internal/domain/employee"
	"github.com/kelolahr/hrms-backend-go/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	e.id, e.company_id, e.employee_code, e.full_name, e.email,
	e.manager_id, e.department_id, e.designation_id, e.grade_id,
	e.status, e.hire_date, e.exit_date, e.created_at, e.updated_at,
	m.full_name AS manager_name`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.CompanyID, &e.EmployeeCode, &e.FullName, &e.Email,
		&e.ManagerID, &e.DepartmentID, &e.DesignationID, &e.GradeID,
		&e.Status, &e.HireDate, &e.ExitDate, &e.CreatedAt, &e.UpdatedAt,
		&e.ManagerName,
	)
	return e, err
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO employees (
			id, company_id, employee_code, full_name, email,
			manager_id, department_id, designation_id, grade_id,
			status, hire_date, created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		emp.CompanyID, emp.EmployeeCode, emp.FullName, emp.Email,
		emp.ManagerID, emp.DepartmentID, emp.DesignationID, emp.GradeID,
		emp.Status, emp.HireDate,
	).Scan(&emp.ID, &emp.CreatedAt, &emp.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
		return employee.Employee{}, fmt.Errorf("insert employee: %w", err)
	}
	return emp, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + employeeColumns + `
		FROM employees e
		LEFT JOIN employees m ON m.id = e.manager_id
		WHERE e.id = $1
	`
	emp, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	return emp, nil
}

// GetByCompanyID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByCompanyID(ctx context.Context, companyID string) ([]employee.Employee, error) {
	return r.listByCompany(ctx, companyID, false)
}

// GetActiveByCompanyID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetActiveByCompanyID(ctx context.Context, companyID string) ([]employee.Employee, error) {
	return r.listByCompany(ctx, companyID, true)
}

func (r *employeeRepositoryImpl) listByCompany(ctx context.Context, companyID string, activeOnly bool) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + employeeColumns + `
		FROM employees e
		LEFT JOIN employees m ON m.id = e.manager_id
		WHERE e.company_id = $1
	`
	if activeOnly {
		query += ` AND e.status = 'active'`
	}
	query += ` ORDER BY e.full_name`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

// ListCompanyIDs implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListCompanyIDs(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, `SELECT DISTINCT company_id FROM employees`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, emp employee.Employee) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE employees
		SET full_name = $1, email = $2, manager_id = $3,
			department_id = $4, designation_id = $5, grade_id = $6,
			updated_at = NOW()
		WHERE id = $7
	`
	tag, err := q.Exec(ctx, query,
		emp.FullName, emp.Email, emp.ManagerID,
		emp.DepartmentID, emp.DesignationID, emp.GradeID,
		emp.ID,
	)
	if err != nil {
		return fmt.Errorf("update employee %s: %w", emp.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// SetStatus implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) SetStatus(ctx context.Context, id string, status employee.EmploymentStatus, exitDate *string) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE employees
		SET status = $1, exit_date = $2, updated_at = NOW()
		WHERE id = $3
	`
	tag, err := q.Exec(ctx, query, status, exitDate, id)
	if err != nil {
		return fmt.Errorf("set employee status %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeSelect = `
	SELECT
		e.id, e.first_name, e.father_name, e.department_id, e.position_id, e.employee_type,
		e.base_salary, e.phone, e.address, e.date_hired, e.status, e.created_at, e.updated_at,
		d.name AS department_name,
		p.name AS position_name
	FROM employees e
	LEFT JOIN departments d ON e.department_id = d.id
	LEFT JOIN positions p ON e.position_id = p.id
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.FirstName, &emp.FatherName, &emp.DepartmentID, &emp.PositionID, &emp.EmployeeType,
		&emp.BaseSalary, &emp.Phone, &emp.Address, &emp.DateHired, &emp.Status, &emp.CreatedAt, &emp.UpdatedAt,
		&emp.DepartmentName, &emp.PositionName,
	)
	return emp, err
}

func collectEmployees(rows pgx.Rows) ([]employee.Employee, error) {
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return employees, nil
}

// Create implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		INSERT INTO employees (
			id, first_name, father_name, department_id, position_id, employee_type,
			base_salary, phone, address, date_hired, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query,
		newID(), newEmployee.FirstName, newEmployee.FatherName, newEmployee.DepartmentID, newEmployee.PositionID,
		newEmployee.EmployeeType, newEmployee.BaseSalary, newEmployee.Phone, newEmployee.Address,
		newEmployee.DateHired, newEmployee.Status,
	).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return employee.Employee{}, employee.ErrInvalidReference
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return e.GetByID(ctx, id)
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	emp, err := scanEmployee(q.QueryRow(ctx, employeeSelect+` WHERE e.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee with id %s: %w", id, err)
	}

	return emp, nil
}

// List implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	// Build WHERE conditions
	conditions := []string{"TRUE"}
	args := []any{}
	argIdx := 1

	if filter.Status != nil && *filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("e.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.DepartmentID != nil && *filter.DepartmentID != "" {
		conditions = append(conditions, fmt.Sprintf("e.department_id = $%d", argIdx))
		args = append(args, *filter.DepartmentID)
		argIdx++
	}
	if filter.Search != nil && *filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(e.first_name ILIKE $%d OR e.father_name ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+*filter.Search+"%")
	}

	query := employeeSelect + " WHERE " + strings.Join(conditions, " AND ") + " ORDER BY e.first_name ASC, e.father_name ASC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	return collectEmployees(rows)
}

// ListWorking implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListWorking(ctx context.Context, departmentID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := employeeSelect + `
		WHERE e.status = $1 AND ($2 = '' OR e.department_id::text = $2)
		ORDER BY e.first_name ASC, e.father_name ASC, e.id ASC
	`

	rows, err := q.Query(ctx, query, employee.StatusWorking, departmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list working employees: %w", err)
	}

	return collectEmployees(rows)
}

// Update implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) error {
	q := GetQuerier(ctx, e.db)

	updates := make(map[string]any)

	if req.FirstName != nil {
		updates["first_name"] = strings.TrimSpace(*req.FirstName)
	}
	if req.FatherName != nil {
		updates["father_name"] = strings.TrimSpace(*req.FatherName)
	}
	if req.DepartmentID != nil && *req.DepartmentID != "" {
		updates["department_id"] = *req.DepartmentID
	}
	if req.PositionID != nil && *req.PositionID != "" {
		updates["position_id"] = *req.PositionID
	}
	if req.EmployeeType != nil && *req.EmployeeType != "" {
		updates["employee_type"] = *req.EmployeeType
	}
	if req.BaseSalary != nil {
		updates["base_salary"] = *req.BaseSalary
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.DateHired != nil && *req.DateHired != "" {
		parsedDateHired, _ := time.Parse("2006-01-02", *req.DateHired)
		updates["date_hired"] = parsedDateHired
	}
	if req.Status != nil && *req.Status != "" {
		updates["status"] = *req.Status
	}

	if len(updates) == 0 {
		return nil // No updates provided
	}
	updates["updated_at"] = time.Now()

	setClauses := make([]string, 0, len(updates))
	args := make([]any, 0, len(updates)+1)
	i := 1
	for col, val := range updates {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, i))
		args = append(args, val)
		i++
	}

	sql := fmt.Sprintf("UPDATE employees SET %s WHERE id = $%d RETURNING id", strings.Join(setClauses, ", "), i)
	args = append(args, req.ID)

	var updatedID string
	if err := q.QueryRow(ctx, sql, args...).Scan(&updatedID); err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return employee.ErrEmployeeNotFound
		case isForeignKeyViolation(err):
			return employee.ErrInvalidReference
		}
		return fmt.Errorf("failed to update employee with id %s: %w", req.ID, err)
	}
	return nil
}

// Delete implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, e.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return employee.ErrEmployeeInUse
		}
		return fmt.Errorf("failed to delete employee with id %s: %w", id, err)
	}

	if commandTag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

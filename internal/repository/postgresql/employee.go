package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/pupr-presensi/presensi-backend-go/internal/domain/employee"
	"github.com/pupr-presensi/presensi-backend-go/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeSelect = `
	SELECT e.id, e.name, e.nip, e.position, e.unit_id, e.employment_status, e.active,
		e.created_at, e.updated_at, u.name
	FROM employees e
	JOIN units u ON u.id = e.unit_id
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.Name, &emp.NIP, &emp.Position, &emp.UnitID, &emp.EmploymentStatus, &emp.Active,
		&emp.CreatedAt, &emp.UpdatedAt, &emp.UnitName,
	)
	return emp, err
}

// translateEmployeeError maps constraint violations to domain errors.
func translateEmployeeError(err error) error {
	switch database.PgErrorCode(err) {
	case database.CodeUniqueViolation:
		if database.PgConstraint(err) == "employees_nip_key" {
			return employee.ErrNIPExists
		}
	case database.CodeForeignKeyViolation:
		if strings.Contains(database.PgConstraint(err), "unit") {
			return employee.ErrUnitNotFound
		}
		return employee.ErrEmployeeHasEntries
	}
	return err
}

// Create implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		INSERT INTO employees (name, nip, position, unit_id, employment_status, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query,
		newEmployee.Name, newEmployee.NIP, newEmployee.Position, newEmployee.UnitID,
		newEmployee.EmploymentStatus, newEmployee.Active,
	).Scan(&id)
	if err != nil {
		if translated := translateEmployeeError(err); translated != err {
			return employee.Employee{}, translated
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return e.GetByID(ctx, id)
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	found, err := scanEmployee(q.QueryRow(ctx, employeeSelect+` WHERE e.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return found, nil
}

// Update implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) error {
	q := GetQuerier(ctx, e.db)

	var sets []string
	var args []interface{}
	argIdx := 1

	add := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argIdx))
		args = append(args, value)
		argIdx++
	}

	if req.Name != nil {
		add("name", *req.Name)
	}
	if req.NIP != nil {
		add("nip", *req.NIP)
	}
	if req.Position != nil {
		add("position", *req.Position)
	}
	if req.UnitID != nil {
		add("unit_id", *req.UnitID)
	}
	if req.EmploymentStatus != nil {
		add("employment_status", *req.EmploymentStatus)
	}
	if req.Active != nil {
		add("active", *req.Active)
	}

	if len(sets) == 0 {
		return nil
	}

	query := fmt.Sprintf(`UPDATE employees SET %s, updated_at = NOW() WHERE id = $%d`, strings.Join(sets, ", "), argIdx)
	args = append(args, req.ID)

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		if translated := translateEmployeeError(err); translated != err {
			return translated
		}
		return fmt.Errorf("failed to update employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// Delete implements employee.EmployeeRepository. Employees referenced by an
// attendance entry cannot be removed and should be deactivated instead.
func (e *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, e.db)

	tag, err := q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		if database.PgErrorCode(err) == database.CodeForeignKeyViolation {
			return employee.ErrEmployeeHasEntries
		}
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// List implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, e.db)

	conditions := []string{"TRUE"}
	args := []interface{}{}
	argIdx := 1

	if len(filter.UnitIDs) > 0 {
		conditions = append(conditions, fmt.Sprintf("e.unit_id = ANY($%d::uuid[])", argIdx))
		args = append(args, filter.UnitIDs)
		argIdx++
	}
	if filter.EmploymentStatus != nil && *filter.EmploymentStatus != "" {
		conditions = append(conditions, fmt.Sprintf("e.employment_status = $%d", argIdx))
		args = append(args, *filter.EmploymentStatus)
		argIdx++
	}
	if filter.Active != nil {
		conditions = append(conditions, fmt.Sprintf("e.active = $%d", argIdx))
		args = append(args, *filter.Active)
		argIdx++
	}
	if filter.Search != nil && *filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(e.name ILIKE $%d OR e.nip ILIKE $%d OR e.position ILIKE $%d)", argIdx, argIdx, argIdx))
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM employees e WHERE %s", whereClause)
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	validSortColumns := map[string]string{
		"name":       "e.name",
		"position":   "e.position",
		"nip":        "e.nip",
		"unit":       "u.name",
		"created_at": "e.created_at",
	}
	sortColumn, ok := validSortColumns[filter.SortBy]
	if !ok {
		sortColumn = "e.name"
	}

	sortOrder := "ASC"
	if strings.ToUpper(filter.SortOrder) == "DESC" {
		sortOrder = "DESC"
	}

	// name and position break ties on each other
	tieBreak := "e.name ASC"
	if filter.SortBy == "name" {
		tieBreak = "e.position ASC"
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`%s
		WHERE %s
		ORDER BY %s %s, %s, e.id ASC
		LIMIT $%d OFFSET $%d
	`, employeeSelect, whereClause, sortColumn, sortOrder, tieBreak, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}

// ListActiveByUnit implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListActiveByUnit(ctx context.Context, unitID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := employeeSelect + ` WHERE e.active AND ($1 = '' OR e.unit_id::text = $1) ORDER BY e.name ASC`

	rows, err := q.Query(ctx, query, unitID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

// Search implements employee.EmployeeRepository. Prefix matches on the name
// rank before other matches.
func (e *employeeRepositoryImpl) Search(ctx context.Context, query string, limit int) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	sql := employeeSelect + `
		WHERE e.name ILIKE $1 OR e.nip ILIKE $1
		ORDER BY (e.name ILIKE $2) DESC, e.name ASC
		LIMIT $3
	`

	rows, err := q.Query(ctx, sql, "%"+query+"%", query+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

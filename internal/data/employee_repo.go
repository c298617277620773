package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/salonhub/salonhub-api/internal/core"
	"github.com/salonhub/salonhub-api/internal/data/pgxutil"
	"github.com/salonhub/salonhub-api/internal/domain/auth"
	"github.com/salonhub/salonhub-api/internal/domain/model"
	apperrors "github.com/salonhub/salonhub-api/internal/errors"
)

const employeeColumns = `id, company_id, user_id, branch_id, name, email, phone_number, bio,
		commission_rate, specialties, status, start_date, has_system_access, created_at, updated_at`

// EmployeeRepo provides database operations for employees.
type EmployeeRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewEmployeeRepo creates a new EmployeeRepo with real time provider.
func NewEmployeeRepo(db *sql.DB) *EmployeeRepo {
	return &EmployeeRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewEmployeeRepoWithTimeProvider creates a new EmployeeRepo with a custom time provider (useful for tests).
func NewEmployeeRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *EmployeeRepo {
	return &EmployeeRepo{DB: db, timeProvider: tp}
}

// Create inserts a new employee. UserID is set only when a linked login was
// provisioned; has_system_access follows from it.
func (r *EmployeeRepo) Create(ctx context.Context, params core.CreateEmployeeParams) (*model.Employee, error) {
	req := params.Req
	if req == nil {
		return nil, apperrors.Validation("create employee request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	now := r.timeProvider.Now().UTC()
	req.ApplyDefaults(now)

	specialties := req.Specialties
	if specialties == nil {
		specialties = []string{}
	}

	var out model.Employee
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO employees (
				company_id, user_id, branch_id, name, email, phone_number, bio,
				commission_rate, specialties, status, start_date, has_system_access,
				created_at, updated_at
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $13
			) RETURNING `+employeeColumns,
			params.CompanyID,
			params.UserID,
			req.BranchID,
			strings.TrimSpace(req.Name),
			model.NormalizeEmail(req.Email),
			req.PhoneNumber,
			req.Bio,
			*req.CommissionRate,
			specialties,
			*req.Status,
			req.StartDate.UTC(),
			params.UserID != nil,
			now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Employee])
		return err
	}); err != nil {
		return nil, mapDBErr(err, "failed to create employee")
	}
	return &out, nil
}

// GetByID retrieves an employee by ID within the caller's tenant scope,
// including the linked user summary when one exists.
func (r *EmployeeRepo) GetByID(
	ctx context.Context,
	scope auth.Scope,
	id string,
) (*model.EmployeeWithUser, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`
	args := []any{id}
	if !scope.Elevated() {
		query += ` AND company_id = $2`
		args = append(args, scope.CompanyID)
	}

	var emp model.Employee
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		emp, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Employee])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("employee")
		}
		return nil, mapDBErr(err, "failed to get employee")
	}

	out := []*model.EmployeeWithUser{{Employee: emp}}
	if err := r.attachUsers(ctx, out); err != nil {
		return nil, err
	}
	return out[0], nil
}

// List retrieves employees within the caller's tenant scope with pagination
// and optional branch filtering. Linked user summaries are attached in one
// extra query rather than a join, so rows without a login need no null
// handling.
func (r *EmployeeRepo) List(
	ctx context.Context,
	scope auth.Scope,
	opts core.EmployeeListOptions,
) ([]*model.EmployeeWithUser, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	var conds []string
	var args []any
	if !scope.Elevated() {
		args = append(args, scope.CompanyID)
		conds = append(conds, fmt.Sprintf("company_id = $%d", len(args)))
	}
	if opts.BranchID != nil {
		args = append(args, *opts.BranchID)
		conds = append(conds, fmt.Sprintf("branch_id = $%d", len(args)))
	}

	query := `SELECT ` + employeeColumns + ` FROM employees`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY name ASC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var rowsOut []model.Employee
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Employee])
		return err
	}); err != nil {
		return nil, mapDBErr(err, "failed to list employees")
	}

	res := make([]*model.EmployeeWithUser, len(rowsOut))
	for i := range rowsOut {
		res[i] = &model.EmployeeWithUser{Employee: rowsOut[i]}
	}
	if err := r.attachUsers(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

// Update updates fields of an employee within the caller's tenant scope.
func (r *EmployeeRepo) Update(
	ctx context.Context,
	scope auth.Scope,
	id string,
	req model.UpdateEmployeeRequest,
) (*model.Employee, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	setClause, args := r.buildUpdateClause(req)
	args = append(args, id)
	query := "UPDATE employees SET " + setClause + " WHERE id = $" + strconv.Itoa(len(args))
	if !scope.Elevated() {
		args = append(args, scope.CompanyID)
		query += " AND company_id = $" + strconv.Itoa(len(args))
	}
	query += " RETURNING " + employeeColumns

	var out model.Employee
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Employee])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("employee")
		}
		return nil, mapDBErr(err, "failed to update employee")
	}
	return &out, nil
}

// SetSystemAccess links or unlinks the employee's login. UserID and
// HasAccess move together; the employees_user_id_key unique constraint
// rejects linking a user already attached to another employee.
func (r *EmployeeRepo) SetSystemAccess(
	ctx context.Context,
	params core.SetSystemAccessParams,
) (*model.Employee, error) {
	args := []any{params.UserID, params.HasAccess, r.timeProvider.Now().UTC(), params.ID}
	query := `
		UPDATE employees
		SET user_id = $1, has_system_access = $2, updated_at = $3
		WHERE id = $4`
	if !params.Scope.Elevated() {
		args = append(args, params.Scope.CompanyID)
		query += " AND company_id = $" + strconv.Itoa(len(args))
	}
	query += " RETURNING " + employeeColumns

	var out model.Employee
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Employee])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("employee")
		}
		return nil, mapDBErr(err, "failed to set employee system access")
	}
	return &out, nil
}

// SoftDelete marks the employee INACTIVE and returns the record as it was
// before the change. Employees are never physically removed so appointment
// and commission history stays intact.
func (r *EmployeeRepo) SoftDelete(
	ctx context.Context,
	scope auth.Scope,
	id string,
) (*model.Employee, error) {
	selectQuery := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`
	selectArgs := []any{id}
	if !scope.Elevated() {
		selectQuery += ` AND company_id = $2`
		selectArgs = append(selectArgs, scope.CompanyID)
	}
	selectQuery += ` FOR UPDATE`

	var prior model.Employee
	err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{
		Fn: func(tx pgx.Tx) error {
			rows, qErr := tx.Query(ctx, selectQuery, selectArgs...)
			if qErr != nil {
				return qErr
			}
			prior, qErr = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Employee])
			if qErr != nil {
				return qErr
			}
			_, qErr = tx.Exec(ctx,
				`UPDATE employees SET status = $1, updated_at = $2 WHERE id = $3`,
				model.EmployeeStatusInactive, r.timeProvider.Now().UTC(), id,
			)
			return qErr
		},
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("employee")
		}
		return nil, mapDBErr(err, "failed to soft delete employee")
	}
	return &prior, nil
}

// ExistsByEmailInCompany reports whether another employee in the tenant
// already uses the email. excludeID may be empty.
func (r *EmployeeRepo) ExistsByEmailInCompany(
	ctx context.Context,
	companyID, email, excludeID string,
) (bool, error) {
	var exists bool
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx, `
			SELECT EXISTS(
				SELECT 1 FROM employees
				WHERE company_id = $1 AND email = $2 AND ($3 = '' OR id::text <> $3)
			)`,
			companyID, model.NormalizeEmail(email), excludeID,
		).Scan(&exists)
	}); err != nil {
		return false, mapDBErr(err, "failed to check employee email")
	}
	return exists, nil
}

// attachUsers loads user summaries for employees with a linked login and
// sets them in place.
func (r *EmployeeRepo) attachUsers(ctx context.Context, employees []*model.EmployeeWithUser) error {
	var userIDs []string
	for _, e := range employees {
		if e.UserID != nil {
			userIDs = append(userIDs, *e.UserID)
		}
	}
	if len(userIDs) == 0 {
		return nil
	}

	var summaries []model.UserSummary
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT id, name, email, role, email_verified
			FROM users
			WHERE id = ANY($1)`, userIDs)
		if err != nil {
			return err
		}
		defer rows.Close()
		summaries, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.UserSummary])
		return err
	}); err != nil {
		return mapDBErr(err, "failed to load linked users")
	}

	byID := make(map[string]*model.UserSummary, len(summaries))
	for i := range summaries {
		byID[summaries[i].ID] = &summaries[i]
	}
	for _, e := range employees {
		if e.UserID != nil {
			e.User = byID[*e.UserID]
		}
	}
	return nil
}

// buildUpdateClause builds the SQL SET clause and args for updating an employee based on the request.
func (r *EmployeeRepo) buildUpdateClause(req model.UpdateEmployeeRequest) (string, []any) {
	setParts := make([]string, 0, 8)
	args := make([]any, 0, 8)
	nextIdx := func() int { return len(args) + 1 }

	if req.Name != nil {
		setParts = append(setParts, fmt.Sprintf("name = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Name))
	}
	if req.PhoneNumber != nil {
		setParts = append(setParts, fmt.Sprintf("phone_number = $%d", nextIdx()))
		args = append(args, *req.PhoneNumber)
	}
	if req.BranchID != nil {
		if strings.TrimSpace(*req.BranchID) == "" {
			setParts = append(setParts, "branch_id = NULL")
		} else {
			setParts = append(setParts, fmt.Sprintf("branch_id = $%d", nextIdx()))
			args = append(args, *req.BranchID)
		}
	}
	if req.Bio != nil {
		setParts = append(setParts, fmt.Sprintf("bio = $%d", nextIdx()))
		args = append(args, *req.Bio)
	}
	if req.CommissionRate != nil {
		setParts = append(setParts, fmt.Sprintf("commission_rate = $%d", nextIdx()))
		args = append(args, *req.CommissionRate)
	}
	if req.Specialties != nil {
		setParts = append(setParts, fmt.Sprintf("specialties = $%d", nextIdx()))
		args = append(args, req.Specialties)
	}
	if req.Status != nil {
		setParts = append(setParts, fmt.Sprintf("status = $%d", nextIdx()))
		args = append(args, *req.Status)
	}

	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.timeProvider.Now().UTC())

	return strings.Join(setParts, ", "), args
}

package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/salonhub/salonhub-api/internal/data/pgxutil"
	"github.com/salonhub/salonhub-api/internal/domain/auth"
	"github.com/salonhub/salonhub-api/internal/domain/model"
	apperrors "github.com/salonhub/salonhub-api/internal/errors"
)

const (
	defaultMaxBranches  = 1
	defaultMaxEmployees = 5
)

const companyColumns = `id, name, cnpj, email, phone, address, city, state, zip_code, active,
		max_branches, max_employees, current_branches, current_employees, created_at, updated_at`

// CompanyRepo provides database operations for companies (tenants).
type CompanyRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewCompanyRepo creates a new CompanyRepo with real time provider.
func NewCompanyRepo(db *sql.DB) *CompanyRepo {
	return &CompanyRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewCompanyRepoWithTimeProvider creates a new CompanyRepo with a custom time provider (useful for tests).
func NewCompanyRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *CompanyRepo {
	return &CompanyRepo{DB: db, timeProvider: tp}
}

// Create inserts a new company.
func (r *CompanyRepo) Create(ctx context.Context, req *model.CreateCompanyRequest) (*model.Company, error) {
	if req == nil {
		return nil, apperrors.Validation("create company request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	maxBranches := defaultMaxBranches
	if req.MaxBranches != nil {
		maxBranches = *req.MaxBranches
	}
	maxEmployees := defaultMaxEmployees
	if req.MaxEmployees != nil {
		maxEmployees = *req.MaxEmployees
	}

	now := r.timeProvider.Now().UTC()
	var out model.Company
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO companies (
				name, cnpj, email, phone, address, city, state, zip_code,
				max_branches, max_employees, created_at, updated_at
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11
			) RETURNING `+companyColumns,
			strings.TrimSpace(req.Name),
			req.CNPJ,
			model.NormalizeEmail(req.Email),
			req.Phone,
			req.Address,
			req.City,
			req.State,
			req.ZipCode,
			maxBranches,
			maxEmployees,
			now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Company])
		return err
	}); err != nil {
		return nil, mapDBErr(err, "failed to create company")
	}
	return &out, nil
}

// GetByID retrieves a company by ID within the caller's tenant scope.
func (r *CompanyRepo) GetByID(ctx context.Context, scope auth.Scope, id string) (*model.Company, error) {
	if !scope.Elevated() && scope.CompanyID != id {
		return nil, notFound("company")
	}

	var out model.Company
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Company])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("company")
		}
		return nil, mapDBErr(err, "failed to get company")
	}
	return &out, nil
}

// GetWithBranches retrieves a company plus its branches, ordered by creation.
func (r *CompanyRepo) GetWithBranches(
	ctx context.Context,
	scope auth.Scope,
	id string,
) (*model.CompanyWithBranches, error) {
	company, err := r.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	var branchRows []model.Branch
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, qErr := conn.Query(ctx, `
			SELECT `+branchColumns+`
			FROM branches
			WHERE company_id = $1
			ORDER BY created_at ASC`, id)
		if qErr != nil {
			return qErr
		}
		defer rows.Close()
		branchRows, qErr = pgx.CollectRows(rows, pgx.RowToStructByName[model.Branch])
		return qErr
	}); err != nil {
		return nil, mapDBErr(err, "failed to list company branches")
	}

	out := &model.CompanyWithBranches{Company: *company, Branches: make([]*model.Branch, len(branchRows))}
	for i := range branchRows {
		out.Branches[i] = &branchRows[i]
	}
	return out, nil
}

// Update updates fields of a company within the caller's tenant scope.
func (r *CompanyRepo) Update(
	ctx context.Context,
	scope auth.Scope,
	id string,
	req model.UpdateCompanyRequest,
) (*model.Company, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	if !scope.Elevated() && scope.CompanyID != id {
		return nil, notFound("company")
	}

	setClause, args := r.buildUpdateClause(req)
	args = append(args, id)
	query := "UPDATE companies SET " + setClause + " WHERE id = $" + strconv.Itoa(len(args)) +
		" RETURNING " + companyColumns

	var out model.Company
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Company])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("company")
		}
		return nil, mapDBErr(err, "failed to update company")
	}
	return &out, nil
}

// List retrieves companies with pagination, newest first.
func (r *CompanyRepo) List(ctx context.Context, limit, offset int) ([]*model.Company, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var rowsOut []model.Company
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT `+companyColumns+`
			FROM companies
			ORDER BY created_at DESC
			LIMIT $1 OFFSET $2`, limit, offset)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Company])
		return err
	}); err != nil {
		return nil, mapDBErr(err, "failed to list companies")
	}

	res := make([]*model.Company, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// RecountEmployees recomputes current_employees from the employees table and
// persists it. Counts every non-INACTIVE employee, so the counter self-heals
// from drift instead of accumulating increment errors.
func (r *CompanyRepo) RecountEmployees(ctx context.Context, companyID string) (int, error) {
	var count int
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx, `
			UPDATE companies
			SET current_employees = (
				SELECT COUNT(*) FROM employees
				WHERE company_id = $1 AND status <> 'INACTIVE'
			), updated_at = $2
			WHERE id = $1
			RETURNING current_employees`, companyID, r.timeProvider.Now().UTC()).Scan(&count)
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, notFound("company")
		}
		return 0, mapDBErr(err, "failed to recount employees")
	}
	return count, nil
}

// RecountBranches recomputes current_branches as the count of active branches
// and persists it.
func (r *CompanyRepo) RecountBranches(ctx context.Context, companyID string) (int, error) {
	var count int
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx, `
			UPDATE companies
			SET current_branches = (
				SELECT COUNT(*) FROM branches
				WHERE company_id = $1 AND active = true
			), updated_at = $2
			WHERE id = $1
			RETURNING current_branches`, companyID, r.timeProvider.Now().UTC()).Scan(&count)
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, notFound("company")
		}
		return 0, mapDBErr(err, "failed to recount branches")
	}
	return count, nil
}

// buildUpdateClause builds the SQL SET clause and args for updating a company based on the request.
func (r *CompanyRepo) buildUpdateClause(req model.UpdateCompanyRequest) (string, []any) {
	setParts := make([]string, 0, 10)
	args := make([]any, 0, 10)
	nextIdx := func() int { return len(args) + 1 }

	if req.Name != nil {
		setParts = append(setParts, fmt.Sprintf("name = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Name))
	}
	if req.CNPJ != nil {
		setParts = append(setParts, fmt.Sprintf("cnpj = $%d", nextIdx()))
		args = append(args, *req.CNPJ)
	}
	if req.Email != nil {
		setParts = append(setParts, fmt.Sprintf("email = $%d", nextIdx()))
		args = append(args, model.NormalizeEmail(*req.Email))
	}
	if req.Phone != nil {
		setParts = append(setParts, fmt.Sprintf("phone = $%d", nextIdx()))
		args = append(args, *req.Phone)
	}
	if req.Address != nil {
		setParts = append(setParts, fmt.Sprintf("address = $%d", nextIdx()))
		args = append(args, *req.Address)
	}
	if req.City != nil {
		setParts = append(setParts, fmt.Sprintf("city = $%d", nextIdx()))
		args = append(args, *req.City)
	}
	if req.State != nil {
		setParts = append(setParts, fmt.Sprintf("state = $%d", nextIdx()))
		args = append(args, *req.State)
	}
	if req.ZipCode != nil {
		setParts = append(setParts, fmt.Sprintf("zip_code = $%d", nextIdx()))
		args = append(args, *req.ZipCode)
	}
	if req.Active != nil {
		setParts = append(setParts, fmt.Sprintf("active = $%d", nextIdx()))
		args = append(args, *req.Active)
	}

	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.timeProvider.Now().UTC())

	return strings.Join(setParts, ", "), args
}

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

const branchColumns = `id, company_id, name, address, phone, active, created_at, updated_at`

// BranchRepo provides database operations for branches.
type BranchRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewBranchRepo creates a new BranchRepo with real time provider.
func NewBranchRepo(db *sql.DB) *BranchRepo {
	return &BranchRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewBranchRepoWithTimeProvider creates a new BranchRepo with a custom time provider (useful for tests).
func NewBranchRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *BranchRepo {
	return &BranchRepo{DB: db, timeProvider: tp}
}

// Create inserts a new branch under the given company.
func (r *BranchRepo) Create(
	ctx context.Context,
	companyID string,
	req *model.CreateBranchRequest,
) (*model.Branch, error) {
	if req == nil {
		return nil, apperrors.Validation("create branch request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	now := r.timeProvider.Now().UTC()
	var out model.Branch
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO branches (company_id, name, address, phone, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $5)
			RETURNING `+branchColumns,
			companyID,
			strings.TrimSpace(req.Name),
			req.Address,
			req.Phone,
			now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Branch])
		return err
	}); err != nil {
		return nil, mapDBErr(err, "failed to create branch")
	}
	return &out, nil
}

// GetByID retrieves a branch by ID within the caller's tenant scope.
func (r *BranchRepo) GetByID(ctx context.Context, scope auth.Scope, id string) (*model.Branch, error) {
	query := `SELECT ` + branchColumns + ` FROM branches WHERE id = $1`
	args := []any{id}
	if !scope.Elevated() {
		query += ` AND company_id = $2`
		args = append(args, scope.CompanyID)
	}

	var out model.Branch
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Branch])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("branch")
		}
		return nil, mapDBErr(err, "failed to get branch")
	}
	return &out, nil
}

// List retrieves branches within the caller's tenant scope with pagination.
// Elevated scopes see branches across all tenants.
func (r *BranchRepo) List(
	ctx context.Context,
	scope auth.Scope,
	limit, offset int,
) ([]*model.Branch, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + branchColumns + ` FROM branches`
	args := []any{}
	if !scope.Elevated() {
		query += ` WHERE company_id = $1`
		args = append(args, scope.CompanyID)
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var rowsOut []model.Branch
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Branch])
		return err
	}); err != nil {
		return nil, mapDBErr(err, "failed to list branches")
	}

	res := make([]*model.Branch, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Update updates fields of a branch within the caller's tenant scope.
func (r *BranchRepo) Update(
	ctx context.Context,
	scope auth.Scope,
	id string,
	req model.UpdateBranchRequest,
) (*model.Branch, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	setClause, args := r.buildUpdateClause(req)
	args = append(args, id)
	query := "UPDATE branches SET " + setClause + " WHERE id = $" + strconv.Itoa(len(args))
	if !scope.Elevated() {
		args = append(args, scope.CompanyID)
		query += " AND company_id = $" + strconv.Itoa(len(args))
	}
	query += " RETURNING " + branchColumns

	var out model.Branch
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Branch])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("branch")
		}
		return nil, mapDBErr(err, "failed to update branch")
	}
	return &out, nil
}

// Deactivate soft-disables a branch (active = false). Returns false when the
// branch does not exist under the caller's scope.
func (r *BranchRepo) Deactivate(ctx context.Context, scope auth.Scope, id string) (bool, error) {
	query := `UPDATE branches SET active = false, updated_at = $1 WHERE id = $2`
	args := []any{r.timeProvider.Now().UTC(), id}
	if !scope.Elevated() {
		query += ` AND company_id = $3`
		args = append(args, scope.CompanyID)
	}

	var affected int64
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, query, args...)
		if err != nil {
			return err
		}
		affected = ct.RowsAffected()
		return nil
	}); err != nil {
		return false, mapDBErr(err, "failed to deactivate branch")
	}
	return affected > 0, nil
}

// buildUpdateClause builds the SQL SET clause and args for updating a branch based on the request.
func (r *BranchRepo) buildUpdateClause(req model.UpdateBranchRequest) (string, []any) {
	setParts := make([]string, 0, 5)
	args := make([]any, 0, 5)
	nextIdx := func() int { return len(args) + 1 }

	if req.Name != nil {
		setParts = append(setParts, fmt.Sprintf("name = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Name))
	}
	if req.Address != nil {
		setParts = append(setParts, fmt.Sprintf("address = $%d", nextIdx()))
		args = append(args, *req.Address)
	}
	if req.Phone != nil {
		setParts = append(setParts, fmt.Sprintf("phone = $%d", nextIdx()))
		args = append(args, *req.Phone)
	}
	if req.Active != nil {
		setParts = append(setParts, fmt.Sprintf("active = $%d", nextIdx()))
		args = append(args, *req.Active)
	}

	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.timeProvider.Now().UTC())

	return strings.Join(setParts, ", "), args
}

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

const serviceColumns = `id, company_id, name, description, price, duration_minutes, active, created_at, updated_at`

// ServiceRepo provides database operations for catalog services.
type ServiceRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewServiceRepo creates a new ServiceRepo with real time provider.
func NewServiceRepo(db *sql.DB) *ServiceRepo {
	return &ServiceRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewServiceRepoWithTimeProvider creates a new ServiceRepo with a custom time provider (useful for tests).
func NewServiceRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *ServiceRepo {
	return &ServiceRepo{DB: db, timeProvider: tp}
}

// Create inserts a new service under the given company.
func (r *ServiceRepo) Create(
	ctx context.Context,
	companyID string,
	req *model.CreateServiceRequest,
) (*model.Service, error) {
	if req == nil {
		return nil, apperrors.Validation("create service request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	now := r.timeProvider.Now().UTC()
	var out model.Service
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO services (company_id, name, description, price, duration_minutes, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $6)
			RETURNING `+serviceColumns,
			companyID,
			strings.TrimSpace(req.Name),
			req.Description,
			req.Price,
			req.DurationMinutes,
			now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Service])
		return err
	}); err != nil {
		return nil, mapDBErr(err, "failed to create service")
	}
	return &out, nil
}

// GetByID retrieves a service by ID within the caller's tenant scope.
func (r *ServiceRepo) GetByID(ctx context.Context, scope auth.Scope, id string) (*model.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE id = $1`
	args := []any{id}
	if !scope.Elevated() {
		query += ` AND company_id = $2`
		args = append(args, scope.CompanyID)
	}

	var out model.Service
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Service])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("service")
		}
		return nil, mapDBErr(err, "failed to get service")
	}
	return &out, nil
}

// List retrieves services within the caller's tenant scope with pagination.
func (r *ServiceRepo) List(
	ctx context.Context,
	scope auth.Scope,
	limit, offset int,
) ([]*model.Service, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + serviceColumns + ` FROM services`
	args := []any{}
	if !scope.Elevated() {
		query += ` WHERE company_id = $1`
		args = append(args, scope.CompanyID)
	}
	query += fmt.Sprintf(" ORDER BY name ASC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var rowsOut []model.Service
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Service])
		return err
	}); err != nil {
		return nil, mapDBErr(err, "failed to list services")
	}

	res := make([]*model.Service, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Update updates fields of a service within the caller's tenant scope.
func (r *ServiceRepo) Update(
	ctx context.Context,
	scope auth.Scope,
	id string,
	req model.UpdateServiceRequest,
) (*model.Service, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	setClause, args := r.buildUpdateClause(req)
	args = append(args, id)
	query := "UPDATE services SET " + setClause + " WHERE id = $" + strconv.Itoa(len(args))
	if !scope.Elevated() {
		args = append(args, scope.CompanyID)
		query += " AND company_id = $" + strconv.Itoa(len(args))
	}
	query += " RETURNING " + serviceColumns

	var out model.Service
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Service])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("service")
		}
		return nil, mapDBErr(err, "failed to update service")
	}
	return &out, nil
}

// Delete removes a service within the caller's tenant scope. Returns false
// when the service does not exist under the caller's scope.
func (r *ServiceRepo) Delete(ctx context.Context, scope auth.Scope, id string) (bool, error) {
	query := `DELETE FROM services WHERE id = $1`
	args := []any{id}
	if !scope.Elevated() {
		query += ` AND company_id = $2`
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
		return false, mapDBErr(err, "failed to delete service")
	}
	return affected > 0, nil
}

// buildUpdateClause builds the SQL SET clause and args for updating a service based on the request.
func (r *ServiceRepo) buildUpdateClause(req model.UpdateServiceRequest) (string, []any) {
	setParts := make([]string, 0, 6)
	args := make([]any, 0, 6)
	nextIdx := func() int { return len(args) + 1 }

	if req.Name != nil {
		setParts = append(setParts, fmt.Sprintf("name = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Name))
	}
	if req.Description != nil {
		setParts = append(setParts, fmt.Sprintf("description = $%d", nextIdx()))
		args = append(args, *req.Description)
	}
	if req.Price != nil {
		setParts = append(setParts, fmt.Sprintf("price = $%d", nextIdx()))
		args = append(args, *req.Price)
	}
	if req.DurationMinutes != nil {
		setParts = append(setParts, fmt.Sprintf("duration_minutes = $%d", nextIdx()))
		args = append(args, *req.DurationMinutes)
	}
	if req.Active != nil {
		setParts = append(setParts, fmt.Sprintf("active = $%d", nextIdx()))
		args = append(args, *req.Active)
	}

	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.timeProvider.Now().UTC())

	return strings.Join(setParts, ", "), args
}

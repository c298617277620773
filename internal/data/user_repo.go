package data

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/salonhub/salonhub-api/internal/core"
	"github.com/salonhub/salonhub-api/internal/data/pgxutil"
	"github.com/salonhub/salonhub-api/internal/domain/auth"
	"github.com/salonhub/salonhub-api/internal/domain/model"
	apperrors "github.com/salonhub/salonhub-api/internal/errors"
)

const userColumns = `id, name, email, role, company_id, email_verified, is_temporary_password, created_at, updated_at`

// UserRepo provides database operations for identity records.
type UserRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewUserRepo creates a new UserRepo with real time provider.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewUserRepoWithTimeProvider creates a new UserRepo with a custom time provider (useful for tests).
func NewUserRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *UserRepo {
	return &UserRepo{DB: db, timeProvider: tp}
}

// Create inserts a new user. The users_email_key unique constraint is the
// authoritative duplicate guard under concurrent creates; callers doing a
// friendlier ExistsByEmail precheck must still handle the conflict error.
func (r *UserRepo) Create(ctx context.Context, params core.CreateUserParams) (*model.User, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, apperrors.Validation("name is required and cannot be empty")
	}
	if !params.Role.Valid() {
		return nil, apperrors.Validation("role is not a known value")
	}

	now := r.timeProvider.Now().UTC()
	var out model.User
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO users (name, email, role, company_id, is_temporary_password, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $6)
			RETURNING `+userColumns,
			name,
			model.NormalizeEmail(params.Email),
			params.Role,
			params.CompanyID,
			params.IsTemporaryPassword,
			now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return err
	}); err != nil {
		return nil, mapDBErr(err, "failed to create user")
	}
	return &out, nil
}

// GetByID retrieves a user by ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.getByQuery(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByEmail retrieves a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getByQuery(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, model.NormalizeEmail(email))
}

// ExistsByEmail reports whether any user already holds the email. Emails are
// unique across the whole platform, not per tenant.
func (r *UserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`,
			model.NormalizeEmail(email),
		).Scan(&exists)
	}); err != nil {
		return false, mapDBErr(err, "failed to check user email")
	}
	return exists, nil
}

// Demote downgrades the user to the lowest role tier and clears the tenant
// binding. The row is kept so historical references stay valid.
func (r *UserRepo) Demote(ctx context.Context, id string) (*model.User, error) {
	var out model.User
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			UPDATE users
			SET role = $1, company_id = NULL, updated_at = $2
			WHERE id = $3
			RETURNING `+userColumns,
			auth.RoleUser,
			r.timeProvider.Now().UTC(),
			id,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("user")
		}
		return nil, mapDBErr(err, "failed to demote user")
	}
	return &out, nil
}

// SetTemporaryPassword flips the is_temporary_password flag.
func (r *UserRepo) SetTemporaryPassword(ctx context.Context, id string, temporary bool) error {
	var affected int64
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx,
			`UPDATE users SET is_temporary_password = $1, updated_at = $2 WHERE id = $3`,
			temporary, r.timeProvider.Now().UTC(), id,
		)
		if err != nil {
			return err
		}
		affected = ct.RowsAffected()
		return nil
	}); err != nil {
		return mapDBErr(err, "failed to set temporary password flag")
	}
	if affected == 0 {
		return notFound("user")
	}
	return nil
}

func (r *UserRepo) getByQuery(ctx context.Context, query string, arg any) (*model.User, error) {
	var out model.User
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, arg)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("user")
		}
		return nil, mapDBErr(err, "failed to get user")
	}
	return &out, nil
}

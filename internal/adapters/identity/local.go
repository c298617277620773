package identity

// Package identity implements local credential storage with bcrypt hashing.
// Credentials live in their own table keyed by user id, so rotating a
// password never touches the user row or anything referencing it.

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/salonhub/salonhub-api/internal/data/pgxutil"
	apperrors "github.com/salonhub/salonhub-api/internal/errors"
)

// DefaultBcryptCost matches the cost used for all stored hashes.
const DefaultBcryptCost = 12

// LocalProvider implements ports.IdentityProvider against the credentials table.
type LocalProvider struct {
	DB   *sql.DB
	Cost int
}

// NewLocalProvider creates a LocalProvider with the default bcrypt cost.
func NewLocalProvider(db *sql.DB) *LocalProvider {
	return &LocalProvider{DB: db, Cost: DefaultBcryptCost}
}

// CreateCredential registers a credential for the user id.
func (p *LocalProvider) CreateCredential(ctx context.Context, userID, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cost())
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "hash password")
	}
	if err := pgxutil.WithPgxConn(ctx, p.DB, func(conn *pgx.Conn) error {
		_, execErr := conn.Exec(ctx, `
			INSERT INTO credentials (user_id, password_hash, created_at, updated_at)
			VALUES ($1, $2, $3, $3)`,
			userID, string(hash), time.Now().UTC(),
		)
		return execErr
	}); err != nil {
		return apperrors.MapDBError(err)
	}
	return nil
}

// VerifyCredential checks a password against the stored hash. A missing
// credential or a wrong password both report (false, nil); errors are
// reserved for storage failures.
func (p *LocalProvider) VerifyCredential(ctx context.Context, userID, password string) (bool, error) {
	var hash string
	err := pgxutil.WithPgxConn(ctx, p.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx,
			`SELECT password_hash FROM credentials WHERE user_id = $1`, userID,
		).Scan(&hash)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, apperrors.MapDBError(err)
	}

	if compareErr := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); compareErr != nil {
		return false, nil
	}
	return true, nil
}

// RotateCredential replaces the stored hash in a single UPDATE. The user id
// and everything referencing it are untouched, so a crash mid-rotation can
// never strand the account without an identity.
func (p *LocalProvider) RotateCredential(ctx context.Context, userID, newPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), p.cost())
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "hash password")
	}

	var affected int64
	if err := pgxutil.WithPgxConn(ctx, p.DB, func(conn *pgx.Conn) error {
		ct, execErr := conn.Exec(ctx, `
			UPDATE credentials SET password_hash = $1, updated_at = $2 WHERE user_id = $3`,
			string(hash), time.Now().UTC(), userID,
		)
		if execErr != nil {
			return execErr
		}
		affected = ct.RowsAffected()
		return nil
	}); err != nil {
		return apperrors.MapDBError(err)
	}
	if affected == 0 {
		return apperrors.NotFound("credential not found")
	}
	return nil
}

// DeleteCredential removes the credential, disabling password login.
func (p *LocalProvider) DeleteCredential(ctx context.Context, userID string) error {
	if err := pgxutil.WithPgxConn(ctx, p.DB, func(conn *pgx.Conn) error {
		_, execErr := conn.Exec(ctx, `DELETE FROM credentials WHERE user_id = $1`, userID)
		return execErr
	}); err != nil {
		return apperrors.MapDBError(err)
	}
	return nil
}

func (p *LocalProvider) cost() int {
	if p.Cost >= bcrypt.MinCost && p.Cost <= bcrypt.MaxCost {
		return p.Cost
	}
	return DefaultBcryptCost
}

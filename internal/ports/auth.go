package ports

// Package ports defines interfaces (hexagonal ports) for auth and
// notification behavior. Implementations live in internal/adapters;
// orchestration in internal/service.

import (
	"context"

	domainauth "github.com/salonhub/salonhub-api/internal/domain/auth"
)

// SessionStore persists and retrieves user sessions.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// IdentityProvider manages login credentials. The stable user identifier,
// role, and tenant binding are owned by the user record and must survive
// any credential operation, including rotation.
type IdentityProvider interface {
	// CreateCredential registers a credential for the user id.
	CreateCredential(ctx context.Context, userID, password string) error
	// VerifyCredential checks a password against the stored credential.
	// A wrong password is reported as (false, nil); errors are reserved for
	// provider failures.
	VerifyCredential(ctx context.Context, userID, password string) (bool, error)
	// RotateCredential atomically replaces the credential. Implementations
	// that must recreate records internally are responsible for keeping all
	// foreign references valid and rolling back on partial failure.
	RotateCredential(ctx context.Context, userID, newPassword string) error
	// DeleteCredential removes the credential, disabling password login.
	DeleteCredential(ctx context.Context, userID string) error
}

// BeginInput carries inputs for initiating an OIDC auth flow.
type BeginInput struct {
	RedirectURL string
}

// ExchangeInput groups parameters for the code/token exchange.
type ExchangeInput struct {
	Code  string
	State string
	Nonce string
}

// AuthProvider initiates and completes an authentication flow against an
// external IdP. Used when the deployment delegates sign-in to OIDC instead
// of local credentials.
type AuthProvider interface {
	Begin(ctx context.Context, in BeginInput) (authURL, state, nonce string, err error)
	Exchange(ctx context.Context, in ExchangeInput) (domainauth.Identity, error)
}

// RoleMapper maps IdP groups to application roles.
type RoleMapper interface {
	Map(groups []string) domainauth.Role
}

package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/salonhub/salonhub-api/internal/core"
	domainauth "github.com/salonhub/salonhub-api/internal/domain/auth"
	"github.com/salonhub/salonhub-api/internal/domain/model"
	apperrors "github.com/salonhub/salonhub-api/internal/errors"
	"github.com/salonhub/salonhub-api/internal/ports"
)

// DefaultSessionTTL is how long a password-based session lives.
const DefaultSessionTTL = 8 * time.Hour

// AuthServiceOIDC groups the optional OIDC collaborators. Both are nil when
// the deployment uses local credentials only.
type AuthServiceOIDC struct {
	Provider ports.AuthProvider
	Roles    ports.RoleMapper
}

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Users    core.UserRepository
	Identity ports.IdentityProvider
	Sessions ports.SessionStore

	OIDC       AuthServiceOIDC
	SessionTTL time.Duration
	Logger     *slog.Logger
}

// AuthService orchestrates sign-in, sessions, and credential rotation.
type AuthService struct {
	users    core.UserRepository
	identity ports.IdentityProvider
	sessions ports.SessionStore
	oidc     AuthServiceOIDC
	ttl      time.Duration
	logger   *slog.Logger
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	if opts.Users == nil {
		panic("UserRepository is required")
	}
	if opts.Identity == nil {
		panic("IdentityProvider is required")
	}
	if opts.Sessions == nil {
		panic("SessionStore is required")
	}
	ttl := opts.SessionTTL
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		users:    opts.Users,
		identity: opts.Identity,
		sessions: opts.Sessions,
		oidc:     opts.OIDC,
		ttl:      ttl,
		logger:   logger,
	}
}

// SignIn verifies an email/password pair and issues a session. Unknown
// emails and wrong passwords return the same error so the response never
// reveals whether an account exists.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*domainauth.Session, error) {
	if email == "" || password == "" {
		return nil, apperrors.Unauthenticated("invalid email or password")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.Unauthenticated("invalid email or password")
		}
		return nil, err
	}

	ok, err := s.identity.VerifyCredential(ctx, user.ID, password)
	if err != nil {
		return nil, apperrors.Upstream("verify credential", err)
	}
	if !ok {
		return nil, apperrors.Unauthenticated("invalid email or password")
	}

	return s.issueSession(ctx, sessionSeed{
		UserID:              user.ID,
		Name:                user.Name,
		Email:               user.Email,
		Role:                user.Role,
		CompanyID:           derefOrEmpty(user.CompanyID),
		IsTemporaryPassword: user.IsTemporaryPassword,
		ExpiresAt:           time.Now().Add(s.ttl),
	})
}

// BeginLoginResult contains the result of beginning an OIDC login flow.
type BeginLoginResult struct {
	AuthURL string
	State   string
	Nonce   string
}

// BeginLogin initiates an OIDC flow and returns the provider auth URL with
// state and nonce. Fails when the deployment has no OIDC provider wired.
func (s *AuthService) BeginLogin(ctx context.Context, redirectURL string) (*BeginLoginResult, error) {
	if s.oidc.Provider == nil {
		return nil, apperrors.Validation("external sign-in is not enabled")
	}
	if redirectURL == "" {
		return nil, apperrors.Validation("redirect URL is required")
	}

	authURL, state, nonce, err := s.oidc.Provider.Begin(ctx, ports.BeginInput{RedirectURL: redirectURL})
	if err != nil {
		return nil, apperrors.Upstream("begin auth flow", err)
	}
	return &BeginLoginResult{AuthURL: authURL, State: state, Nonce: nonce}, nil
}

// CompleteLoginInput groups parameters for completing an OIDC login flow.
type CompleteLoginInput struct {
	Code  string
	State string
	Nonce string
}

// CompleteLogin exchanges the authorization code for an identity, resolves
// the matching local user (creating a baseline one on first sign-in), and
// issues a session.
func (s *AuthService) CompleteLogin(ctx context.Context, input CompleteLoginInput) (*domainauth.Session, error) {
	if s.oidc.Provider == nil {
		return nil, apperrors.Validation("external sign-in is not enabled")
	}
	if input.Code == "" || input.State == "" || input.Nonce == "" {
		return nil, apperrors.Validation("code, state, and nonce are required")
	}

	identity, err := s.oidc.Provider.Exchange(ctx, ports.ExchangeInput{
		Code:  input.Code,
		State: input.State,
		Nonce: input.Nonce,
	})
	if err != nil {
		return nil, apperrors.Upstream("exchange authorization code", err)
	}
	if identity.Email == "" {
		return nil, apperrors.Upstream("identity provider returned no email", nil)
	}

	user, err := s.resolveOIDCUser(ctx, identity)
	if err != nil {
		return nil, err
	}

	expiresAt := identity.ExpiresAt
	if expiresAt.IsZero() {
		expiresAt = time.Now().Add(s.ttl)
	}
	return s.issueSession(ctx, sessionSeed{
		UserID:              user.ID,
		Name:                user.Name,
		Email:               user.Email,
		Role:                user.Role,
		CompanyID:           derefOrEmpty(user.CompanyID),
		IsTemporaryPassword: false,
		ExpiresAt:           expiresAt,
	})
}

// GetSession retrieves a session by ID. Expired or missing sessions report
// unauthenticated.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if sessionID == "" {
		return nil, apperrors.Unauthenticated("no session")
	}

	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeUnauthenticated, "session not found")
	}
	if sess.Expired() {
		if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
			s.logger.WarnContext(ctx, "failed to delete expired session", "err", deleteErr)
		}
		return nil, apperrors.Unauthenticated("session expired")
	}
	return &sess, nil
}

// Logout removes a session. A missing session id is a no-op.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "delete session")
	}
	return nil
}

// ChangePasswordInput groups parameters for ChangePassword.
type ChangePasswordInput struct {
	UserID          string
	CurrentPassword string
	NewPassword     string
}

// ChangePassword rotates the caller's credential. The new password must meet
// the strength policy and differ from the current one. The user id, role,
// and tenant binding survive the rotation untouched.
func (s *AuthService) ChangePassword(ctx context.Context, input ChangePasswordInput) error {
	if input.UserID == "" {
		return apperrors.Unauthenticated("no session")
	}
	if input.NewPassword == input.CurrentPassword {
		return apperrors.ValidationField("new_password", "new password must differ from the current one")
	}
	if err := domainauth.ValidatePasswordStrength(input.NewPassword); err != nil {
		return apperrors.ValidationField("new_password", err.Error())
	}

	ok, err := s.identity.VerifyCredential(ctx, input.UserID, input.CurrentPassword)
	if err != nil {
		return apperrors.Upstream("verify credential", err)
	}
	if !ok {
		return apperrors.ValidationField("current_password", "current password is incorrect")
	}

	if err := s.identity.RotateCredential(ctx, input.UserID, input.NewPassword); err != nil {
		return err
	}
	if err := s.users.SetTemporaryPassword(ctx, input.UserID, false); err != nil {
		return err
	}
	return nil
}

type sessionSeed struct {
	UserID              string
	Name                string
	Email               string
	Role                domainauth.Role
	CompanyID           string
	IsTemporaryPassword bool
	ExpiresAt           time.Time
}

func (s *AuthService) issueSession(ctx context.Context, seed sessionSeed) (*domainauth.Session, error) {
	sess := domainauth.Session{
		ID:                  uuid.NewString(),
		UserID:              seed.UserID,
		Name:                seed.Name,
		Email:               seed.Email,
		Role:                seed.Role,
		CompanyID:           seed.CompanyID,
		IsTemporaryPassword: seed.IsTemporaryPassword,
		ExpiresAt:           seed.ExpiresAt,
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "save session")
	}
	return &sess, nil
}

// resolveOIDCUser finds the local user matching the external identity,
// creating a lowest-tier record on first sign-in. Roles for provisioned
// users come from the group mapper when one is wired.
func (s *AuthService) resolveOIDCUser(ctx context.Context, identity domainauth.Identity) (*model.User, error) {
	existing, err := s.users.GetByEmail(ctx, identity.Email)
	if err == nil {
		return existing, nil
	}
	if !apperrors.IsNotFound(err) {
		return nil, err
	}

	role := domainauth.RoleUser
	if s.oidc.Roles != nil {
		role = s.oidc.Roles.Map(identity.Groups)
	}
	name := identity.Name
	if name == "" {
		name = identity.Email
	}
	return s.users.Create(ctx, core.CreateUserParams{
		Name:  name,
		Email: identity.Email,
		Role:  role,
	})
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

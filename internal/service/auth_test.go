package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonhub/salonhub-api/internal/core"
	domainauth "github.com/salonhub/salonhub-api/internal/domain/auth"
	"github.com/salonhub/salonhub-api/internal/domain/model"
	apperrors "github.com/salonhub/salonhub-api/internal/errors"
	mocks "github.com/salonhub/salonhub-api/internal/mocks/auth"
	"github.com/salonhub/salonhub-api/internal/ports"
)

type authFixture struct {
	users    *fakeUserRepo
	identity *mocks.MockIdentityProvider
	sessions *mocks.MemorySessionStore
}

func newAuthFixture() *authFixture {
	return &authFixture{
		users:    &fakeUserRepo{},
		identity: mocks.NewMockIdentityProvider(),
		sessions: mocks.NewMemorySessionStore(),
	}
}

func (f *authFixture) service(oidc AuthServiceOIDC) *AuthService {
	return NewAuthService(AuthServiceOptions{
		Users:    f.users,
		Identity: f.identity,
		Sessions: f.sessions,
		OIDC:     oidc,
	})
}

func (f *authFixture) withUser(user *model.User, password string) {
	f.users.GetByEmailFunc = func(_ context.Context, email string) (*model.User, error) {
		if email == user.Email {
			return user, nil
		}
		return nil, apperrors.NotFound("user not found")
	}
	_ = f.identity.CreateCredential(context.Background(), user.ID, password)
}

func TestAuthService_SignIn(t *testing.T) {
	f := newAuthFixture()
	companyID := "company-1"
	f.withUser(&model.User{
		ID:        "user-1",
		Name:      "Ana Admin",
		Email:     "ana@example.com",
		Role:      domainauth.RoleAdmin,
		CompanyID: &companyID,
	}, "Correct123!")
	svc := f.service(AuthServiceOIDC{})

	session, err := svc.SignIn(context.Background(), "ana@example.com", "Correct123!")

	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)
	assert.Equal(t, "user-1", session.UserID)
	assert.Equal(t, domainauth.RoleAdmin, session.Role)
	assert.Equal(t, "company-1", session.CompanyID)
	assert.True(t, session.ExpiresAt.After(time.Now()))
	assert.Equal(t, 1, f.sessions.Len())
}

func TestAuthService_SignIn_WrongPassword(t *testing.T) {
	f := newAuthFixture()
	f.withUser(&model.User{ID: "user-1", Email: "ana@example.com", Role: domainauth.RoleAdmin}, "Correct123!")
	svc := f.service(AuthServiceOIDC{})

	_, err := svc.SignIn(context.Background(), "ana@example.com", "Wrong123!")

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeUnauthenticated, apperrors.GetCode(err))
	assert.Contains(t, err.Error(), "invalid email or password")
}

func TestAuthService_SignIn_UnknownEmailSameMessage(t *testing.T) {
	f := newAuthFixture()
	f.withUser(&model.User{ID: "user-1", Email: "ana@example.com", Role: domainauth.RoleAdmin}, "Correct123!")
	svc := f.service(AuthServiceOIDC{})

	_, wrongPass := svc.SignIn(context.Background(), "ana@example.com", "Wrong123!")
	_, unknown := svc.SignIn(context.Background(), "nobody@example.com", "Correct123!")

	require.Error(t, wrongPass)
	require.Error(t, unknown)
	assert.Equal(t, wrongPass.Error(), unknown.Error())
}

func TestAuthService_GetSession_Expired(t *testing.T) {
	f := newAuthFixture()
	svc := f.service(AuthServiceOIDC{})
	require.NoError(t, f.sessions.Save(context.Background(), domainauth.Session{
		ID:        "stale",
		UserID:    "user-1",
		ExpiresAt: time.Now().Add(-time.Minute),
	}))

	_, err := svc.GetSession(context.Background(), "stale")

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeUnauthenticated, apperrors.GetCode(err))
	assert.Equal(t, 0, f.sessions.Len())
}

func TestAuthService_Logout_EmptyIDIsNoop(t *testing.T) {
	f := newAuthFixture()
	svc := f.service(AuthServiceOIDC{})

	require.NoError(t, svc.Logout(context.Background(), ""))
}

func TestAuthService_ChangePassword(t *testing.T) {
	f := newAuthFixture()
	require.NoError(t, f.identity.CreateCredential(context.Background(), "user-1", "Current123!"))
	var tempCleared bool
	f.users.SetTemporaryPasswordFunc = func(_ context.Context, id string, temporary bool) error {
		tempCleared = !temporary
		return nil
	}
	svc := f.service(AuthServiceOIDC{})

	err := svc.ChangePassword(context.Background(), ChangePasswordInput{
		UserID:          "user-1",
		CurrentPassword: "Current123!",
		NewPassword:     "Fresh456!",
	})

	require.NoError(t, err)
	assert.True(t, tempCleared)
	password, _ := f.identity.Password("user-1")
	assert.Equal(t, "Fresh456!", password)
}

func TestAuthService_ChangePassword_SameAsCurrent(t *testing.T) {
	f := newAuthFixture()
	svc := f.service(AuthServiceOIDC{})

	err := svc.ChangePassword(context.Background(), ChangePasswordInput{
		UserID:          "user-1",
		CurrentPassword: "Same123!",
		NewPassword:     "Same123!",
	})

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeValidation, apperrors.GetCode(err))
	assert.Equal(t, "new_password", apperrors.GetField(err))
}

func TestAuthService_ChangePassword_WeakPassword(t *testing.T) {
	f := newAuthFixture()
	svc := f.service(AuthServiceOIDC{})

	err := svc.ChangePassword(context.Background(), ChangePasswordInput{
		UserID:          "user-1",
		CurrentPassword: "Current123!",
		NewPassword:     "short",
	})

	require.Error(t, err)
	assert.Equal(t, "new_password", apperrors.GetField(err))
}

func TestAuthService_ChangePassword_WrongCurrent(t *testing.T) {
	f := newAuthFixture()
	require.NoError(t, f.identity.CreateCredential(context.Background(), "user-1", "Current123!"))
	svc := f.service(AuthServiceOIDC{})

	err := svc.ChangePassword(context.Background(), ChangePasswordInput{
		UserID:          "user-1",
		CurrentPassword: "Nope123!",
		NewPassword:     "Fresh456!",
	})

	require.Error(t, err)
	assert.Equal(t, "current_password", apperrors.GetField(err))
	password, _ := f.identity.Password("user-1")
	assert.Equal(t, "Current123!", password)
}

func TestAuthService_BeginLogin_WithoutProvider(t *testing.T) {
	f := newAuthFixture()
	svc := f.service(AuthServiceOIDC{})

	_, err := svc.BeginLogin(context.Background(), "http://localhost:8080/callback")

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeValidation, apperrors.GetCode(err))
}

func TestAuthService_BeginLogin(t *testing.T) {
	f := newAuthFixture()
	svc := f.service(AuthServiceOIDC{Provider: mocks.NewMockAuthProvider()})

	result, err := svc.BeginLogin(context.Background(), "http://localhost:8080/callback")

	require.NoError(t, err)
	assert.Equal(t, "https://mock-idp/auth", result.AuthURL)
	assert.Equal(t, "state-1", result.State)
	assert.Equal(t, "nonce-1", result.Nonce)
}

func TestAuthService_CompleteLogin_ExistingUser(t *testing.T) {
	f := newAuthFixture()
	companyID := "company-1"
	f.users.GetByEmailFunc = func(_ context.Context, _ string) (*model.User, error) {
		return &model.User{
			ID:        "user-1",
			Email:     "mock.user@example.com",
			Role:      domainauth.RoleAdmin,
			CompanyID: &companyID,
		}, nil
	}
	svc := f.service(AuthServiceOIDC{Provider: mocks.NewMockAuthProvider()})

	session, err := svc.CompleteLogin(context.Background(), CompleteLoginInput{
		Code: "code", State: "state-1", Nonce: "nonce-1",
	})

	require.NoError(t, err)
	assert.Equal(t, "user-1", session.UserID)
	assert.Equal(t, domainauth.RoleAdmin, session.Role)
	assert.Equal(t, "company-1", session.CompanyID)
}

func TestAuthService_CompleteLogin_ProvisionsNewUser(t *testing.T) {
	f := newAuthFixture()
	var created core.CreateUserParams
	f.users.CreateFunc = func(_ context.Context, params core.CreateUserParams) (*model.User, error) {
		created = params
		return &model.User{ID: "user-new", Name: params.Name, Email: params.Email, Role: params.Role}, nil
	}
	provider := mocks.NewMockAuthProvider()
	provider.DefaultUser.Groups = []string{"salon-admins"}
	svc := f.service(AuthServiceOIDC{
		Provider: provider,
		Roles:    roleMapperFunc(func([]string) domainauth.Role { return domainauth.RoleAdmin }),
	})

	session, err := svc.CompleteLogin(context.Background(), CompleteLoginInput{
		Code: "code", State: "state-1", Nonce: "nonce-1",
	})

	require.NoError(t, err)
	assert.Equal(t, "user-new", session.UserID)
	assert.Equal(t, domainauth.RoleAdmin, created.Role)
	assert.Equal(t, "mock.user@example.com", created.Email)
}

func TestAuthService_CompleteLogin_ProviderError(t *testing.T) {
	f := newAuthFixture()
	provider := &mocks.MockAuthProvider{
		ExchangeFunc: func(context.Context, ports.ExchangeInput) (domainauth.Identity, error) {
			return domainauth.Identity{}, errors.New("exchange failed")
		},
	}
	svc := f.service(AuthServiceOIDC{Provider: provider})

	_, err := svc.CompleteLogin(context.Background(), CompleteLoginInput{
		Code: "code", State: "state", Nonce: "nonce",
	})

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeUpstream, apperrors.GetCode(err))
}

type roleMapperFunc func(groups []string) domainauth.Role

func (f roleMapperFunc) Map(groups []string) domainauth.Role { return f(groups) }

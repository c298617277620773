package httpx

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	domainauth "github.com/salonhub/salonhub-api/internal/domain/auth"
	"github.com/salonhub/salonhub-api/internal/service"
)

const (
	oauthStateCookie    = "oauth_state"
	oauthNonceCookie    = "oauth_nonce"
	postLoginCookie     = "post_login_redirect"
	oauthCookieLifetime = 10 * time.Minute
)

// CookieConfig controls how the handlers scope their cookies.
type CookieConfig struct {
	Domain string
	Secure bool
}

// AuthHandler serves login, logout, session introspection, and credential
// rotation.
type AuthHandler struct {
	svc     *service.AuthService
	cookies CookieConfig

	// OIDCRedirectURL is the absolute callback URL registered with the
	// provider. Empty when the deployment is local-credentials only.
	oidcRedirectURL string
	logger          *slog.Logger
}

// AuthHandlerOptions groups dependencies for AuthHandler.
type AuthHandlerOptions struct {
	Service         *service.AuthService
	Cookies         CookieConfig
	OIDCRedirectURL string
	Logger          *slog.Logger
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(opts AuthHandlerOptions) *AuthHandler {
	if opts.Service == nil {
		panic("AuthService is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		svc:             opts.Service,
		cookies:         opts.Cookies,
		oidcRedirectURL: opts.OIDCRedirectURL,
		logger:          logger,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login with an email/password pair.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	session, err := h.svc.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	h.setSessionCookie(w, session)
	WriteJSON(w, http.StatusOK, sessionPayload(session))
}

// Logout handles POST /api/auth/logout. Always clears the cookie, even when
// the backing session is already gone.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		if logoutErr := h.svc.Logout(r.Context(), cookie.Value); logoutErr != nil {
			h.logger.WarnContext(r.Context(), "failed to delete session", "err", logoutErr)
		}
	}
	h.clearCookie(w, SessionCookieName)
	WriteJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}

// Me handles GET /api/auth/me for an authenticated caller.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	session, ok := GetUserSessionFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
		return
	}
	WriteJSON(w, http.StatusOK, sessionPayload(session))
}

// Status handles GET /api/auth/status. Unlike Me it never 401s; it reports
// whether the caller currently holds a valid session.
func (h *AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	session := getSessionFromRequest(r, h.svc)
	if session == nil {
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user":          sessionPayload(session),
	})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword handles POST /api/auth/change-password for the session
// owner.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	session, ok := GetUserSessionFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
		return
	}

	var req changePasswordRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	err := h.svc.ChangePassword(r.Context(), service.ChangePasswordInput{
		UserID:          session.UserID,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "password_changed"})
}

// OIDCLogin handles GET /api/auth/oidc/login. It stashes state and nonce in
// short-lived cookies and redirects the browser to the provider.
func (h *AuthHandler) OIDCLogin(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.BeginLogin(r.Context(), h.oidcRedirectURL)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	h.setOAuthCookie(w, oauthStateCookie, result.State)
	h.setOAuthCookie(w, oauthNonceCookie, result.Nonce)
	if redirect := r.URL.Query().Get("redirect"); redirect != "" {
		h.setOAuthCookie(w, postLoginCookie, safeRedirectPath(redirect))
	}

	http.Redirect(w, r, result.AuthURL, http.StatusFound)
}

// OIDCCallback handles GET /api/auth/oidc/callback. The state in the query
// must match the cookie set at login start.
func (h *AuthHandler) OIDCCallback(w http.ResponseWriter, r *http.Request) {
	state := r.URL.Query().Get("state")
	code := r.URL.Query().Get("code")

	stateCookie, err := r.Cookie(oauthStateCookie)
	if err != nil || state == "" || stateCookie.Value != state {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_state",
			Err:     errors.New("state mismatch"),
		})
		return
	}
	nonceCookie, err := r.Cookie(oauthNonceCookie)
	if err != nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_state",
			Err:     errors.New("missing nonce"),
		})
		return
	}

	session, err := h.svc.CompleteLogin(r.Context(), service.CompleteLoginInput{
		Code:  code,
		State: state,
		Nonce: nonceCookie.Value,
	})
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	h.clearCookie(w, oauthStateCookie)
	h.clearCookie(w, oauthNonceCookie)
	h.setSessionCookie(w, session)

	target := "/"
	if c, cookieErr := r.Cookie(postLoginCookie); cookieErr == nil {
		target = safeRedirectPath(c.Value)
		h.clearCookie(w, postLoginCookie)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, s *domainauth.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    s.ID,
		Path:     "/",
		Domain:   h.cookies.Domain,
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(time.Until(s.ExpiresAt).Seconds()),
	})
}

func (h *AuthHandler) setOAuthCookie(w http.ResponseWriter, name, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   h.cookies.Domain,
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(oauthCookieLifetime.Seconds()),
	})
}

func (h *AuthHandler) clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   h.cookies.Domain,
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

func sessionPayload(s *domainauth.Session) map[string]any {
	payload := map[string]any{
		"user_id":               s.UserID,
		"name":                  s.Name,
		"email":                 s.Email,
		"role":                  s.Role,
		"is_temporary_password": s.IsTemporaryPassword,
		"expires_at":            s.ExpiresAt,
	}
	if s.CompanyID != "" {
		payload["company_id"] = s.CompanyID
	}
	return payload
}

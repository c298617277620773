package httpx

import (
	"database/sql"
	"log/slog"
	"net/http"

	domainauth "github.com/salonhub/salonhub-api/internal/domain/auth"
	"github.com/salonhub/salonhub-api/internal/service"
)

// RouterServices groups the services the router needs.
type RouterServices struct {
	Auth      *service.AuthService
	Companies *service.CompanyService
	Branches  *service.BranchService
	Employees *service.EmployeeService
	Catalog   *service.CatalogService

	DB              *sql.DB
	Cookies         CookieConfig
	OIDCRedirectURL string
	Logger          *slog.Logger
}

// NewRouter builds the HTTP mux with all routes, guards, and middleware.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	registerHealthRoutes(mux, services)
	registerAuthRoutes(mux, services)
	registerCompanyRoutes(mux, services)
	registerBranchRoutes(mux, services)
	registerEmployeeRoutes(mux, services)
	registerCatalogRoutes(mux, services)

	var handler http.Handler = mux
	handler = Logging(logger)(handler)
	handler = Recover(logger)(handler)
	return handler
}

func registerHealthRoutes(mux *http.ServeMux, services RouterServices) {
	health := NewHealthHandler(services.DB)
	mux.HandleFunc("GET /healthz", health.Healthz)
}

func registerAuthRoutes(mux *http.ServeMux, services RouterServices) {
	h := NewAuthHandler(AuthHandlerOptions{
		Service:         services.Auth,
		Cookies:         services.Cookies,
		OIDCRedirectURL: services.OIDCRedirectURL,
		Logger:          services.Logger,
	})
	authed := RequireAuth(services.Auth)

	mux.HandleFunc("POST /api/auth/login", h.Login)
	mux.HandleFunc("POST /api/auth/logout", h.Logout)
	mux.HandleFunc("GET /api/auth/status", h.Status)
	mux.Handle("GET /api/auth/me", authed(http.HandlerFunc(h.Me)))
	mux.Handle("POST /api/auth/change-password", authed(http.HandlerFunc(h.ChangePassword)))

	mux.HandleFunc("GET /api/auth/oidc/login", h.OIDCLogin)
	mux.HandleFunc("GET /api/auth/oidc/callback", h.OIDCCallback)
}

func registerCompanyRoutes(mux *http.ServeMux, services RouterServices) {
	h := NewCompanyHandler(services.Companies)
	auth := services.Auth
	operator := RequireRole(auth, domainauth.RoleSuperAdmin)
	view := RequirePermission(auth, false, domainauth.PermCompanyView)
	edit := RequirePermission(auth, false, domainauth.PermCompanyEdit)

	mux.Handle("POST /api/company", operator(http.HandlerFunc(h.Create)))
	mux.Handle("GET /api/companies", operator(http.HandlerFunc(h.List)))
	mux.Handle("GET /api/company", view(http.HandlerFunc(h.GetOwn)))
	mux.Handle("GET /api/company/{id}", view(http.HandlerFunc(h.GetByID)))
	mux.Handle("PUT /api/company/{id}", edit(http.HandlerFunc(h.Update)))
}

func registerBranchRoutes(mux *http.ServeMux, services RouterServices) {
	h := NewBranchHandler(services.Branches)
	auth := services.Auth
	view := RequirePermission(auth, false, domainauth.PermBranchView)
	create := RequirePermission(auth, false, domainauth.PermBranchCreate)
	edit := RequirePermission(auth, false, domainauth.PermBranchEdit)

	mux.Handle("POST /api/branches", create(http.HandlerFunc(h.Create)))
	mux.Handle("GET /api/branches", view(http.HandlerFunc(h.List)))
	mux.Handle("GET /api/branches/{id}", view(http.HandlerFunc(h.GetByID)))
	mux.Handle("PUT /api/branches/{id}", edit(http.HandlerFunc(h.Update)))
	// Deactivation, not removal; edit-grade capability is enough.
	mux.Handle("DELETE /api/branches/{id}", edit(http.HandlerFunc(h.Delete)))
}

func registerEmployeeRoutes(mux *http.ServeMux, services RouterServices) {
	h := NewEmployeeHandler(services.Employees)
	auth := services.Auth
	view := RequirePermission(auth, false, domainauth.PermEmployeeView)
	create := RequirePermission(auth, false, domainauth.PermEmployeeCreate)
	edit := RequirePermission(auth, false, domainauth.PermEmployeeEdit)
	// Invites and access toggles provision or revoke logins, so they need
	// the user-management capability on top of employee management.
	manageAccess := RequirePermission(auth, true, domainauth.PermEmployeeEdit, domainauth.PermUserEdit)
	invite := RequirePermission(auth, true, domainauth.PermEmployeeCreate, domainauth.PermUserCreate)

	mux.Handle("POST /api/employees", create(http.HandlerFunc(h.Create)))
	mux.Handle("POST /api/employees/invite", invite(http.HandlerFunc(h.Invite)))
	mux.Handle("GET /api/employees", view(http.HandlerFunc(h.List)))
	mux.Handle("GET /api/employees/{id}", view(http.HandlerFunc(h.GetByID)))
	mux.Handle("PUT /api/employees/{id}", edit(http.HandlerFunc(h.Update)))
	mux.Handle("PUT /api/employees/{id}/system-access", manageAccess(http.HandlerFunc(h.SystemAccess)))
	mux.Handle("POST /api/employees/{id}/resend-invite", manageAccess(http.HandlerFunc(h.ResendInvite)))
	// Soft delete to INACTIVE; edit-grade capability is enough.
	mux.Handle("DELETE /api/employees/{id}", edit(http.HandlerFunc(h.Delete)))
}

func registerCatalogRoutes(mux *http.ServeMux, services RouterServices) {
	h := NewCatalogHandler(services.Catalog)
	auth := services.Auth
	view := RequirePermission(auth, false, domainauth.PermServiceView)
	create := RequirePermission(auth, false, domainauth.PermServiceCreate)
	edit := RequirePermission(auth, false, domainauth.PermServiceEdit)
	remove := RequirePermission(auth, false, domainauth.PermServiceDelete)

	mux.Handle("POST /api/services", create(http.HandlerFunc(h.Create)))
	mux.Handle("GET /api/services", view(http.HandlerFunc(h.List)))
	mux.Handle("GET /api/services/{id}", view(http.HandlerFunc(h.GetByID)))
	mux.Handle("PUT /api/services/{id}", edit(http.HandlerFunc(h.Update)))
	mux.Handle("DELETE /api/services/{id}", remove(http.HandlerFunc(h.Delete)))
}

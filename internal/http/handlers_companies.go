package httpx

import (
	"errors"
	"net/http"

	domainauth "github.com/salonhub/salonhub-api/internal/domain/auth"
	"github.com/salonhub/salonhub-api/internal/domain/model"
	"github.com/salonhub/salonhub-api/internal/service"
)

// CompanyHandler serves company provisioning and tenant profile routes.
type CompanyHandler struct {
	svc *service.CompanyService
}

// NewCompanyHandler constructs a CompanyHandler.
func NewCompanyHandler(svc *service.CompanyService) *CompanyHandler {
	if svc == nil {
		panic("CompanyService is required")
	}
	return &CompanyHandler{svc: svc}
}

// requestScope pulls the tenant scope out of the request context. Auth
// middleware always runs first on scoped routes, so a miss means a wiring
// bug; answer 401 rather than panic.
func requestScope(w http.ResponseWriter, r *http.Request) (domainauth.Scope, bool) {
	scope, ok := ScopeFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
		return domainauth.Scope{}, false
	}
	return scope, true
}

// Create handles POST /api/company. Platform operators only.
func (h *CompanyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateCompanyRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	company, err := h.svc.Create(r.Context(), &req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, company)
}

// GetOwn handles GET /api/company: the caller's own company with branches.
func (h *CompanyHandler) GetOwn(w http.ResponseWriter, r *http.Request) {
	scope, ok := requestScope(w, r)
	if !ok {
		return
	}
	if scope.CompanyID == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusNotFound,
			ErrCode: "not_found",
			Err:     errors.New("no company associated with this account"),
		})
		return
	}

	company, err := h.svc.GetWithBranches(r.Context(), scope, scope.CompanyID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, company)
}

// GetByID handles GET /api/company/{id}.
func (h *CompanyHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	scope, ok := requestScope(w, r)
	if !ok {
		return
	}

	company, err := h.svc.GetWithBranches(r.Context(), scope, r.PathValue("id"))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, company)
}

// Update handles PUT /api/company/{id}.
func (h *CompanyHandler) Update(w http.ResponseWriter, r *http.Request) {
	scope, ok := requestScope(w, r)
	if !ok {
		return
	}

	var req model.UpdateCompanyRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	company, err := h.svc.Update(r.Context(), scope, r.PathValue("id"), req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, company)
}

// List handles GET /api/companies. Platform operators only.
func (h *CompanyHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, 50, 200)

	companies, err := h.svc.List(r.Context(), limit, offset)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"companies": companies,
		"limit":     limit,
		"offset":    offset,
	})
}

package httpx

import (
	"net/http"

	"github.com/salonhub/salonhub-api/internal/core"
	"github.com/salonhub/salonhub-api/internal/domain/model"
	"github.com/salonhub/salonhub-api/internal/service"
)

// EmployeeHandler serves employee CRUD, invite provisioning, and
// system-access toggling.
type EmployeeHandler struct {
	svc *service.EmployeeService
}

// NewEmployeeHandler constructs an EmployeeHandler.
func NewEmployeeHandler(svc *service.EmployeeService) *EmployeeHandler {
	if svc == nil {
		panic("EmployeeService is required")
	}
	return &EmployeeHandler{svc: svc}
}

// Create handles POST /api/employees: an employee record without a login.
func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	scope, ok := requestScope(w, r)
	if !ok {
		return
	}

	var req model.CreateEmployeeRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	employee, err := h.svc.Create(r.Context(), scope, &req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, employee)
}

// Invite handles POST /api/employees/invite. With send_invite set the
// employee gets a linked login, a temporary credential, and an invite email.
func (h *EmployeeHandler) Invite(w http.ResponseWriter, r *http.Request) {
	scope, ok := requestScope(w, r)
	if !ok {
		return
	}

	var req model.InviteEmployeeRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	result, err := h.svc.Invite(r.Context(), scope, &req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, result)
}

// GetByID handles GET /api/employees/{id}.
func (h *EmployeeHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	scope, ok := requestScope(w, r)
	if !ok {
		return
	}

	employee, err := h.svc.GetByID(r.Context(), scope, r.PathValue("id"))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, employee)
}

// List handles GET /api/employees with optional branch_id filter.
func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	scope, ok := requestScope(w, r)
	if !ok {
		return
	}
	limit, offset := ParseLimitOffset(r, 50, 200)

	opts := core.EmployeeListOptions{Limit: limit, Offset: offset}
	if branchID := r.URL.Query().Get("branch_id"); branchID != "" {
		opts.BranchID = &branchID
	}

	employees, err := h.svc.List(r.Context(), scope, opts)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"employees": employees,
		"limit":     limit,
		"offset":    offset,
	})
}

// Update handles PUT /api/employees/{id}.
func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	scope, ok := requestScope(w, r)
	if !ok {
		return
	}

	var req model.UpdateEmployeeRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	employee, err := h.svc.Update(r.Context(), scope, r.PathValue("id"), req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, employee)
}

type systemAccessRequest struct {
	Enabled bool `json:"enabled"`
}

// SystemAccess handles PUT /api/employees/{id}/system-access. Granting is
// idempotent; so is revoking.
func (h *EmployeeHandler) SystemAccess(w http.ResponseWriter, r *http.Request) {
	scope, ok := requestScope(w, r)
	if !ok {
		return
	}

	var req systemAccessRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	result, err := h.svc.ToggleSystemAccess(r.Context(), scope, r.PathValue("id"), req.Enabled)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, result)
}

// ResendInvite handles POST /api/employees/{id}/resend-invite. Rotates a
// fresh temporary credential and re-sends the invite email.
func (h *EmployeeHandler) ResendInvite(w http.ResponseWriter, r *http.Request) {
	scope, ok := requestScope(w, r)
	if !ok {
		return
	}

	employee, err := h.svc.ResendInvite(r.Context(), scope, r.PathValue("id"))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"employee": employee,
		"status":   "invite_resent",
	})
}

// Delete handles DELETE /api/employees/{id}. Employees soft-delete to
// INACTIVE; any linked login is revoked.
func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	scope, ok := requestScope(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), scope, r.PathValue("id")); err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

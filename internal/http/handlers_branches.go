package httpx

import (
	"net/http"

	"github.com/salonhub/salonhub-api/internal/domain/model"
	"github.com/salonhub/salonhub-api/internal/service"
)

// BranchHandler serves tenant branch CRUD.
type BranchHandler struct {
	svc *service.BranchService
}

// NewBranchHandler constructs a BranchHandler.
func NewBranchHandler(svc *service.BranchService) *BranchHandler {
	if svc == nil {
		panic("BranchService is required")
	}
	return &BranchHandler{svc: svc}
}

// Create handles POST /api/branches.
func (h *BranchHandler) Create(w http.ResponseWriter, r *http.Request) {
	scope, ok := requestScope(w, r)
	if !ok {
		return
	}

	var req model.CreateBranchRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	branch, err := h.svc.Create(r.Context(), scope, &req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, branch)
}

// GetByID handles GET /api/branches/{id}.
func (h *BranchHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	scope, ok := requestScope(w, r)
	if !ok {
		return
	}

	branch, err := h.svc.GetByID(r.Context(), scope, r.PathValue("id"))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, branch)
}

// List handles GET /api/branches.
func (h *BranchHandler) List(w http.ResponseWriter, r *http.Request) {
	scope, ok := requestScope(w, r)
	if !ok {
		return
	}
	limit, offset := ParseLimitOffset(r, 50, 200)

	branches, err := h.svc.List(r.Context(), scope, limit, offset)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"branches": branches,
		"limit":    limit,
		"offset":   offset,
	})
}

// Update handles PUT /api/branches/{id}.
func (h *BranchHandler) Update(w http.ResponseWriter, r *http.Request) {
	scope, ok := requestScope(w, r)
	if !ok {
		return
	}

	var req model.UpdateBranchRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	branch, err := h.svc.Update(r.Context(), scope, r.PathValue("id"), req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, branch)
}

// Delete handles DELETE /api/branches/{id}. Branches deactivate rather than
// disappear, so history stays intact.
func (h *BranchHandler) Delete(w http.ResponseWriter, r *http.Request) {
	scope, ok := requestScope(w, r)
	if !ok {
		return
	}

	if err := h.svc.Deactivate(r.Context(), scope, r.PathValue("id")); err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "deactivated"})
}

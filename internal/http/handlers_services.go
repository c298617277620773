package httpx

import (
	"net/http"

	"github.com/salonhub/salonhub-api/internal/domain/model"
	"github.com/salonhub/salonhub-api/internal/service"
)

// CatalogHandler serves the tenant service-catalog CRUD.
type CatalogHandler struct {
	svc *service.CatalogService
}

// NewCatalogHandler constructs a CatalogHandler.
func NewCatalogHandler(svc *service.CatalogService) *CatalogHandler {
	if svc == nil {
		panic("CatalogService is required")
	}
	return &CatalogHandler{svc: svc}
}

// Create handles POST /api/services.
func (h *CatalogHandler) Create(w http.ResponseWriter, r *http.Request) {
	scope, ok := requestScope(w, r)
	if !ok {
		return
	}

	var req model.CreateServiceRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	svc, err := h.svc.Create(r.Context(), scope, &req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, svc)
}

// GetByID handles GET /api/services/{id}.
func (h *CatalogHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	scope, ok := requestScope(w, r)
	if !ok {
		return
	}

	svc, err := h.svc.GetByID(r.Context(), scope, r.PathValue("id"))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, svc)
}

// List handles GET /api/services.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	scope, ok := requestScope(w, r)
	if !ok {
		return
	}
	limit, offset := ParseLimitOffset(r, 50, 200)

	services, err := h.svc.List(r.Context(), scope, limit, offset)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"services": services,
		"limit":    limit,
		"offset":   offset,
	})
}

// Update handles PUT /api/services/{id}.
func (h *CatalogHandler) Update(w http.ResponseWriter, r *http.Request) {
	scope, ok := requestScope(w, r)
	if !ok {
		return
	}

	var req model.UpdateServiceRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	svc, err := h.svc.Update(r.Context(), scope, r.PathValue("id"), req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, svc)
}

// Delete handles DELETE /api/services/{id}.
func (h *CatalogHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

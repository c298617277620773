package service

import (
	"context"

	"github.com/salonhub/salonhub-api/internal/core"
	"github.com/salonhub/salonhub-api/internal/domain/auth"
	"github.com/salonhub/salonhub-api/internal/domain/model"
	apperrors "github.com/salonhub/salonhub-api/internal/errors"
)

// CatalogServiceOptions groups dependencies for CatalogService.
type CatalogServiceOptions struct {
	Services core.ServiceRepository
}

// CatalogService manages the per-tenant service catalog (haircut, beard
// trim, coloring...).
type CatalogService struct {
	services core.ServiceRepository
}

// NewCatalogService constructs a new CatalogService.
func NewCatalogService(opts CatalogServiceOptions) *CatalogService {
	if opts.Services == nil {
		panic("ServiceRepository is required")
	}
	return &CatalogService{services: opts.Services}
}

// Create creates a catalog service under the caller's tenant.
func (s *CatalogService) Create(
	ctx context.Context,
	scope auth.Scope,
	req *model.CreateServiceRequest,
) (*model.Service, error) {
	if scope.CompanyID == "" {
		return nil, apperrors.Forbidden("no company associated with this account")
	}
	return s.services.Create(ctx, scope.CompanyID, req)
}

// GetByID retrieves a catalog service within the caller's tenant scope.
func (s *CatalogService) GetByID(ctx context.Context, scope auth.Scope, id string) (*model.Service, error) {
	return s.services.GetByID(ctx, scope, id)
}

// List returns a page of catalog services within the caller's tenant scope.
func (s *CatalogService) List(
	ctx context.Context,
	scope auth.Scope,
	limit, offset int,
) ([]*model.Service, error) {
	return s.services.List(ctx, scope, limit, offset)
}

// Update updates a catalog service within the caller's tenant scope.
func (s *CatalogService) Update(
	ctx context.Context,
	scope auth.Scope,
	id string,
	req model.UpdateServiceRequest,
) (*model.Service, error) {
	return s.services.Update(ctx, scope, id, req)
}

// Delete removes a catalog service within the caller's tenant scope.
func (s *CatalogService) Delete(ctx context.Context, scope auth.Scope, id string) error {
	ok, err := s.services.Delete(ctx, scope, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NotFound("service not found")
	}
	return nil
}

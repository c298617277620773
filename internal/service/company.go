package service

import (
	"context"

	"github.com/salonhub/salonhub-api/internal/core"
	"github.com/salonhub/salonhub-api/internal/domain/auth"
	"github.com/salonhub/salonhub-api/internal/domain/model"
)

// CompanyServiceOptions groups dependencies for CompanyService.
type CompanyServiceOptions struct {
	Companies core.CompanyRepository
}

// CompanyService provides tenant management operations.
type CompanyService struct {
	companies core.CompanyRepository
}

// NewCompanyService constructs a new CompanyService.
func NewCompanyService(opts CompanyServiceOptions) *CompanyService {
	if opts.Companies == nil {
		panic("CompanyRepository is required")
	}
	return &CompanyService{companies: opts.Companies}
}

// Create creates a new tenant. Reserved for platform operators; the route
// guard enforces that, the service just persists.
func (s *CompanyService) Create(ctx context.Context, req *model.CreateCompanyRequest) (*model.Company, error) {
	return s.companies.Create(ctx, req)
}

// GetByID retrieves a company within the caller's tenant scope.
func (s *CompanyService) GetByID(ctx context.Context, scope auth.Scope, id string) (*model.Company, error) {
	return s.companies.GetByID(ctx, scope, id)
}

// GetWithBranches retrieves a company plus its branches.
func (s *CompanyService) GetWithBranches(
	ctx context.Context,
	scope auth.Scope,
	id string,
) (*model.CompanyWithBranches, error) {
	return s.companies.GetWithBranches(ctx, scope, id)
}

// Update updates a company within the caller's tenant scope.
func (s *CompanyService) Update(
	ctx context.Context,
	scope auth.Scope,
	id string,
	req model.UpdateCompanyRequest,
) (*model.Company, error) {
	return s.companies.Update(ctx, scope, id, req)
}

// List returns a page of companies, newest first.
func (s *CompanyService) List(ctx context.Context, limit, offset int) ([]*model.Company, error) {
	return s.companies.List(ctx, limit, offset)
}

// RecountEmployees recomputes and persists the employee counter.
func (s *CompanyService) RecountEmployees(ctx context.Context, companyID string) (int, error) {
	return s.companies.RecountEmployees(ctx, companyID)
}

// RecountBranches recomputes and persists the branch counter.
func (s *CompanyService) RecountBranches(ctx context.Context, companyID string) (int, error) {
	return s.companies.RecountBranches(ctx, companyID)
}

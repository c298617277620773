package service

import (
	"context"
	"log/slog"

	"github.com/salonhub/salonhub-api/internal/core"
	"github.com/salonhub/salonhub-api/internal/domain/auth"
	"github.com/salonhub/salonhub-api/internal/domain/model"
	apperrors "github.com/salonhub/salonhub-api/internal/errors"
)

// BranchServiceOptions groups dependencies for BranchService.
type BranchServiceOptions struct {
	Branches  core.BranchRepository
	Companies core.CompanyRepository
	Logger    *slog.Logger
}

// BranchService orchestrates branch CRUD with tenant capacity enforcement.
type BranchService struct {
	branches  core.BranchRepository
	companies core.CompanyRepository
	logger    *slog.Logger
}

// NewBranchService constructs a new BranchService.
func NewBranchService(opts BranchServiceOptions) *BranchService {
	if opts.Branches == nil {
		panic("BranchRepository is required")
	}
	if opts.Companies == nil {
		panic("CompanyRepository is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &BranchService{branches: opts.Branches, companies: opts.Companies, logger: logger}
}

// Create creates a branch under the caller's tenant after checking the plan
// capacity, then recounts the branch counter.
func (s *BranchService) Create(
	ctx context.Context,
	scope auth.Scope,
	req *model.CreateBranchRequest,
) (*model.Branch, error) {
	if scope.CompanyID == "" {
		return nil, apperrors.Forbidden("no company associated with this account")
	}

	company, err := s.companies.GetByID(ctx, scope, scope.CompanyID)
	if err != nil {
		return nil, err
	}
	if ok, current, limit := company.CanAddBranch(); !ok {
		return nil, apperrors.Validation("branch limit reached for the current plan").
			WithDetails(map[string]any{"current": current, "limit": limit})
	}

	branch, err := s.branches.Create(ctx, scope.CompanyID, req)
	if err != nil {
		return nil, err
	}
	if _, recountErr := s.companies.RecountBranches(ctx, scope.CompanyID); recountErr != nil {
		s.logger.WarnContext(ctx, "failed to recount branches", "company_id", scope.CompanyID, "err", recountErr)
	}
	return branch, nil
}

// GetByID retrieves a branch within the caller's tenant scope.
func (s *BranchService) GetByID(ctx context.Context, scope auth.Scope, id string) (*model.Branch, error) {
	return s.branches.GetByID(ctx, scope, id)
}

// List returns a page of branches within the caller's tenant scope.
func (s *BranchService) List(
	ctx context.Context,
	scope auth.Scope,
	limit, offset int,
) ([]*model.Branch, error) {
	return s.branches.List(ctx, scope, limit, offset)
}

// Update updates a branch within the caller's tenant scope. Activation
// changes flow through the counter recount.
func (s *BranchService) Update(
	ctx context.Context,
	scope auth.Scope,
	id string,
	req model.UpdateBranchRequest,
) (*model.Branch, error) {
	branch, err := s.branches.Update(ctx, scope, id, req)
	if err != nil {
		return nil, err
	}
	if req.Active != nil {
		if _, recountErr := s.companies.RecountBranches(ctx, branch.CompanyID); recountErr != nil {
			s.logger.WarnContext(ctx, "failed to recount branches", "company_id", branch.CompanyID, "err", recountErr)
		}
	}
	return branch, nil
}

// Deactivate soft-disables a branch and recounts the branch counter.
func (s *BranchService) Deactivate(ctx context.Context, scope auth.Scope, id string) error {
	ok, err := s.branches.Deactivate(ctx, scope, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NotFound("branch not found")
	}
	companyID := scope.CompanyID
	if companyID != "" {
		if _, recountErr := s.companies.RecountBranches(ctx, companyID); recountErr != nil {
			s.logger.WarnContext(ctx, "failed to recount branches", "company_id", companyID, "err", recountErr)
		}
	}
	return nil
}

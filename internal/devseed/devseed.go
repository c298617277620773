// Package devseed provisions a local development dataset: one platform
// operator, one demo company with a branch, and a few catalog services.
// Seeding is idempotent; existing records are left alone.
package devseed

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/salonhub/salonhub-api/internal/adapters/identity"
	"github.com/salonhub/salonhub-api/internal/core"
	"github.com/salonhub/salonhub-api/internal/data"
	domainauth "github.com/salonhub/salonhub-api/internal/domain/auth"
	"github.com/salonhub/salonhub-api/internal/domain/model"
	apperrors "github.com/salonhub/salonhub-api/internal/errors"
)

const (
	adminEmail    = "admin@salonhub.local"
	adminPassword = "Admin123!"
	demoCompany   = "Demo Salon"
)

// Services bundles the dependencies needed for development seeding.
type Services struct {
	Users     core.UserRepository
	Companies core.CompanyRepository
	Branches  core.BranchRepository
	Catalog   core.ServiceRepository
	Identity  *identity.LocalProvider
}

// NewServices constructs the repositories used for seeding from the DB.
func NewServices(db *sql.DB) Services {
	return Services{
		Users:     data.NewUserRepo(db),
		Companies: data.NewCompanyRepo(db),
		Branches:  data.NewBranchRepo(db),
		Catalog:   data.NewServiceRepo(db),
		Identity:  identity.NewLocalProvider(db),
	}
}

// Run executes the development seeding workflow.
func Run(ctx context.Context, svcs Services, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	if err := seedOperator(ctx, svcs, logger); err != nil {
		return err
	}
	return seedDemoCompany(ctx, svcs, logger)
}

func seedOperator(ctx context.Context, svcs Services, logger *slog.Logger) error {
	exists, err := svcs.Users.ExistsByEmail(ctx, adminEmail)
	if err != nil {
		return err
	}
	if exists {
		logger.InfoContext(ctx, "operator account already seeded", "email", adminEmail)
		return nil
	}

	user, err := svcs.Users.Create(ctx, core.CreateUserParams{
		Name:  "Platform Operator",
		Email: adminEmail,
		Role:  domainauth.RoleSuperAdmin,
	})
	if err != nil {
		return err
	}
	if err := svcs.Identity.CreateCredential(ctx, user.ID, adminPassword); err != nil {
		return err
	}
	logger.InfoContext(ctx, "seeded operator account", "email", adminEmail)
	return nil
}

func seedDemoCompany(ctx context.Context, svcs Services, logger *slog.Logger) error {
	companies, err := svcs.Companies.List(ctx, 1, 0)
	if err != nil {
		return err
	}
	if len(companies) > 0 {
		logger.InfoContext(ctx, "companies already present, skipping demo seed")
		return nil
	}

	maxBranches, maxEmployees := 3, 10
	company, err := svcs.Companies.Create(ctx, &model.CreateCompanyRequest{
		Name:         demoCompany,
		Email:        "contact@demosalon.local",
		MaxBranches:  &maxBranches,
		MaxEmployees: &maxEmployees,
	})
	if err != nil {
		if apperrors.GetCode(err) == apperrors.ErrCodeConflict {
			return nil
		}
		return err
	}

	if _, err := svcs.Branches.Create(ctx, company.ID, &model.CreateBranchRequest{Name: "Downtown"}); err != nil {
		return err
	}
	if _, err := svcs.Companies.RecountBranches(ctx, company.ID); err != nil {
		logger.WarnContext(ctx, "failed to recount branches after seed", "err", err)
	}

	for _, svc := range demoServices() {
		req := svc
		if _, err := svcs.Catalog.Create(ctx, company.ID, &req); err != nil {
			logger.WarnContext(ctx, "failed to seed catalog service", "name", svc.Name, "err", err)
		}
	}

	logger.InfoContext(ctx, "seeded demo company", "company_id", company.ID)
	return nil
}

func demoServices() []model.CreateServiceRequest {
	desc := func(s string) *string { return &s }
	return []model.CreateServiceRequest{
		{Name: "Haircut", Description: desc("Classic cut and style"), Price: 35, DurationMinutes: 30},
		{Name: "Beard Trim", Description: desc("Shape and line up"), Price: 20, DurationMinutes: 20},
		{Name: "Coloring", Description: desc("Full color treatment"), Price: 90, DurationMinutes: 90},
	}
}

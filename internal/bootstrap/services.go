package bootstrap

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/salonhub/salonhub-api/config"
	"github.com/salonhub/salonhub-api/internal/adapters/identity"
	redisadapter "github.com/salonhub/salonhub-api/internal/adapters/redis"
	"github.com/salonhub/salonhub-api/internal/adapters/resend"
	"github.com/salonhub/salonhub-api/internal/data"
	"github.com/salonhub/salonhub-api/internal/ports"
	"github.com/salonhub/salonhub-api/internal/service"
)

// ServiceContainer holds the constructed application services.
type ServiceContainer struct {
	Auth      *service.AuthService
	Companies *service.CompanyService
	Branches  *service.BranchService
	Employees *service.EmployeeService
	Catalog   *service.CatalogService
}

// ServiceDeps carries the shared infrastructure the services are built on.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// NewServices wires repositories, adapters, and services together.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	companyRepo := data.NewCompanyRepo(deps.DB)
	branchRepo := data.NewBranchRepo(deps.DB)
	employeeRepo := data.NewEmployeeRepo(deps.DB)
	serviceRepo := data.NewServiceRepo(deps.DB)
	userRepo := data.NewUserRepo(deps.DB)

	identityProvider := identity.NewLocalProvider(deps.DB)
	identityProvider.Cost = cfg.Auth.BcryptCost
	sessionStore := redisadapter.NewSessionStore(deps.RedisClient)

	var mailer ports.Mailer
	if cfg.Mail.Enabled() {
		m, err := resend.NewMailer(resend.Config{
			APIKey:   cfg.Mail.APIKey,
			From:     cfg.Mail.From,
			Endpoint: cfg.Mail.Endpoint,
			Timeout:  cfg.Mail.Timeout,
		})
		if err != nil {
			return ServiceContainer{}, fmt.Errorf("configure mailer: %w", err)
		}
		mailer = m
	} else {
		logger.Warn("email delivery disabled", "reason", "no mail API key configured")
	}

	oidcDeps, err := BuildOIDC(cfg.Auth)
	if err != nil {
		return ServiceContainer{}, err
	}

	authService := service.NewAuthService(service.AuthServiceOptions{
		Users:      userRepo,
		Identity:   identityProvider,
		Sessions:   sessionStore,
		OIDC:       oidcDeps,
		SessionTTL: cfg.Auth.SessionTTL,
		Logger:     logger,
	})

	companyService := service.NewCompanyService(service.CompanyServiceOptions{
		Companies: companyRepo,
	})

	branchService := service.NewBranchService(service.BranchServiceOptions{
		Branches:  branchRepo,
		Companies: companyRepo,
		Logger:    logger,
	})

	employeeService := service.NewEmployeeService(service.EmployeeServiceOptions{
		Repos: service.EmployeeServiceRepos{
			Employees: employeeRepo,
			Companies: companyRepo,
			Users:     userRepo,
		},
		Providers: service.EmployeeServiceProviders{
			Identity: identityProvider,
			Mailer:   mailer,
			LoginURL: cfg.HTTP.BaseURL + "/login",
		},
		Logger: logger,
	})

	catalogService := service.NewCatalogService(service.CatalogServiceOptions{
		Services: serviceRepo,
	})

	return ServiceContainer{
		Auth:      authService,
		Companies: companyService,
		Branches:  branchService,
		Employees: employeeService,
		Catalog:   catalogService,
	}, nil
}

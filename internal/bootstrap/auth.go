package bootstrap

import (
	"fmt"

	"github.com/salonhub/salonhub-api/config"
	"github.com/salonhub/salonhub-api/internal/adapters/authroles"
	"github.com/salonhub/salonhub-api/internal/adapters/oidc"
	"github.com/salonhub/salonhub-api/internal/ports"
	"github.com/salonhub/salonhub-api/internal/service"
)

// BuildOIDC constructs the optional OIDC collaborators from config. Returns
// a zero value when the deployment runs local credentials only.
func BuildOIDC(cfg config.AuthConfig) (service.AuthServiceOIDC, error) {
	if cfg.Mode != config.AuthModeOIDC {
		return service.AuthServiceOIDC{}, nil
	}

	provider, err := oidc.NewProvider(oidc.ProviderConfig{
		ClientID:     cfg.OIDC.ClientID,
		ClientSecret: cfg.OIDC.ClientSecret,
		RedirectURL:  cfg.OIDC.RedirectURL,
		Scope:        cfg.OIDC.Scope,
		DiscoveryURL: cfg.OIDC.DiscoveryURL,
	})
	if err != nil {
		return service.AuthServiceOIDC{}, fmt.Errorf("configure OIDC provider: %w", err)
	}

	var roles ports.RoleMapper = authroles.StaticRoleMapper{
		SuperAdminGroup: cfg.OIDC.SuperAdminGroup,
		AdminGroup:      cfg.OIDC.AdminGroup,
		EmployeeGroup:   cfg.OIDC.EmployeeGroup,
	}

	return service.AuthServiceOIDC{Provider: provider, Roles: roles}, nil
}

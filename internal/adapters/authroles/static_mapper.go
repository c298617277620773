package authroles

import (
	domainauth "github.com/salonhub/salonhub-api/internal/domain/auth"
)

// StaticRoleMapper maps IdP groups to application roles by simple string
// membership rules. Unmatched groups land on the lowest tier.
type StaticRoleMapper struct {
	SuperAdminGroup string
	AdminGroup      string
	EmployeeGroup   string
}

func (m StaticRoleMapper) Map(groups []string) domainauth.Role {
	for _, g := range groups {
		if m.SuperAdminGroup != "" && g == m.SuperAdminGroup {
			return domainauth.RoleSuperAdmin
		}
	}
	for _, g := range groups {
		if m.AdminGroup != "" && g == m.AdminGroup {
			return domainauth.RoleAdmin
		}
	}
	for _, g := range groups {
		if m.EmployeeGroup != "" && g == m.EmployeeGroup {
			return domainauth.RoleEmployee
		}
	}
	return domainauth.RoleUser
}

package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuperAdminHoldsFullCatalog(t *testing.T) {
	perms := PermissionsFor(RoleSuperAdmin)
	require.Len(t, perms, len(AllPermissions))
	for _, p := range AllPermissions {
		assert.True(t, HasPermission(RoleSuperAdmin, p), "missing %s", p)
	}
}

func TestNoOrphanCapabilities(t *testing.T) {
	// Every permission granted to any role must appear in the full catalog.
	catalog := make(map[Permission]struct{}, len(AllPermissions))
	for _, p := range AllPermissions {
		catalog[p] = struct{}{}
	}
	for role, perms := range RolePermissions {
		for _, p := range perms {
			_, ok := catalog[p]
			assert.True(t, ok, "role %s grants %s which is not in the catalog", role, p)
		}
	}
}

func TestHasPermissionMatchesMap(t *testing.T) {
	for role, perms := range RolePermissions {
		granted := make(map[Permission]struct{}, len(perms))
		for _, p := range perms {
			granted[p] = struct{}{}
		}
		for _, p := range AllPermissions {
			_, want := granted[p]
			assert.Equal(t, want, HasPermission(role, p), "role=%s perm=%s", role, p)
		}
	}
}

func TestUnknownRoleDegradesToNoAccess(t *testing.T) {
	legacy := Role("MANAGER")

	assert.Empty(t, PermissionsFor(legacy))
	assert.False(t, HasPermission(legacy, PermEmployeeView))
	assert.False(t, HasAnyPermission(legacy, PermEmployeeView, PermCompanyView))
	assert.False(t, HasAllPermissions(legacy, PermEmployeeView))
}

func TestAdminCannotDeleteAcrossResources(t *testing.T) {
	assert.False(t, HasPermission(RoleAdmin, PermCompanyDelete))
	assert.False(t, HasPermission(RoleAdmin, PermBranchDelete))
	assert.False(t, HasPermission(RoleAdmin, PermUserDelete))
	assert.False(t, HasPermission(RoleAdmin, PermEmployeeDelete))
}

func TestHasAnyHasAllSemantics(t *testing.T) {
	tests := []struct {
		name       string
		role       Role
		perms      []Permission
		wantAny    bool
		wantAll    bool
	}{
		{
			name:    "employee holds one of two",
			role:    RoleEmployee,
			perms:   []Permission{PermServiceView, PermServiceCreate},
			wantAny: true,
			wantAll: false,
		},
		{
			name:    "employee holds both",
			role:    RoleEmployee,
			perms:   []Permission{PermServiceView, PermAppointmentView},
			wantAny: true,
			wantAll: true,
		},
		{
			name:    "user holds neither",
			role:    RoleUser,
			perms:   []Permission{PermServiceCreate, PermReportsView},
			wantAny: false,
			wantAll: false,
		},
		{
			name:    "empty list is vacuously satisfied",
			role:    RoleUser,
			perms:   nil,
			wantAny: true,
			wantAll: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantAny, HasAnyPermission(tt.role, tt.perms...))
			assert.Equal(t, tt.wantAll, HasAllPermissions(tt.role, tt.perms...))
		})
	}
}

func TestPermissionsForReturnsCopy(t *testing.T) {
	perms := PermissionsFor(RoleUser)
	require.NotEmpty(t, perms)
	perms[0] = Permission("tampered:token")
	assert.NotContains(t, PermissionsFor(RoleUser), Permission("tampered:token"))
}

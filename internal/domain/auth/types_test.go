package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRoleValid(t *testing.T) {
	for _, r := range []Role{RoleSuperAdmin, RoleAdmin, RoleEmployee, RoleUser} {
		assert.True(t, r.Valid(), "%s", r)
	}
	assert.False(t, Role("MANAGER").Valid())
	assert.False(t, Role("").Valid())
}

func TestRoleAtLeastAdmin(t *testing.T) {
	assert.True(t, RoleSuperAdmin.AtLeastAdmin())
	assert.True(t, RoleAdmin.AtLeastAdmin())
	assert.False(t, RoleEmployee.AtLeastAdmin())
	assert.False(t, RoleUser.AtLeastAdmin())
}

func TestSessionExpired(t *testing.T) {
	assert.False(t, Session{ExpiresAt: time.Now().Add(time.Minute)}.Expired())
	assert.True(t, Session{ExpiresAt: time.Now().Add(-time.Minute)}.Expired())
}

func TestScopeFromSession(t *testing.T) {
	sess := Session{UserID: "u1", Role: RoleAdmin, CompanyID: "c1"}
	scope := ScopeFromSession(sess)

	assert.Equal(t, RoleAdmin, scope.Role)
	assert.Equal(t, "c1", scope.CompanyID)
	assert.False(t, scope.Elevated())

	sess.Role = RoleSuperAdmin
	assert.True(t, ScopeFromSession(sess).Elevated())
}

package auth

// Package auth contains domain-level types for authentication, sessions,
// and authorization. It is pure and free of framework/adapter concerns.

import "time"

// Role represents an application's authorization role.
// Keep string form for easy persistence and cookies.
// Valid values are defined as constants below.
type Role string

const (
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleAdmin      Role = "ADMIN"
	RoleEmployee   Role = "EMPLOYEE"
	RoleUser       Role = "USER"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleEmployee, RoleUser:
		return true
	default:
		return false
	}
}

// AtLeastAdmin reports whether the role carries administrative authority.
func (r Role) AtLeastAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// Identity represents the authenticated principal returned by an identity
// provider. Adapters map provider-specific claims into this shape.
type Identity struct {
	UserID    string
	Name      string
	Email     string
	Groups    []string
	ExpiresAt time.Time
}

// Session is the server-side record we persist for an authenticated user.
// ID is an opaque session identifier. CompanyID is empty for users without
// a tenant binding (SUPER_ADMIN operators, demoted accounts).
type Session struct {
	ID                  string    `json:"id"`
	UserID              string    `json:"user_id"`
	Name                string    `json:"name"`
	Email               string    `json:"email"`
	Role                Role      `json:"role"`
	CompanyID           string    `json:"company_id,omitempty"`
	IsTemporaryPassword bool      `json:"is_temporary_password"`
	ExpiresAt           time.Time `json:"expires_at"`
}

// Expired reports whether the session has passed its expiry instant.
func (s Session) Expired() bool { return time.Now().After(s.ExpiresAt) }

// Scope is the tenant scope resolved from a session. The company id always
// comes from the session-backed identity, never from client input.
type Scope struct {
	Role      Role
	CompanyID string
}

// Elevated reports whether the scope bypasses tenant filtering.
func (sc Scope) Elevated() bool { return sc.Role == RoleSuperAdmin }

// ScopeFromSession derives the caller's tenant scope from a session.
func ScopeFromSession(s Session) Scope {
	return Scope{Role: s.Role, CompanyID: s.CompanyID}
}

package auth

// AuthStatus is the tri-state resolution status of a session. Guards must
// treat a loading subject as unauthorized-but-undecided: deny without
// redirecting, so protected content never flashes before the session is
// known.
type AuthStatus string

const (
	StatusLoading         AuthStatus = "loading"
	StatusAuthenticated   AuthStatus = "authenticated"
	StatusUnauthenticated AuthStatus = "unauthenticated"
)

// Subject is the input to a guard decision: the resolution status and, when
// authenticated, the session's role.
type Subject struct {
	Status AuthStatus
	Role   Role
}

// GuardDecision distinguishes a hard denial from a still-resolving subject.
// Only page-level guards may act on Redirect; inline guards render their
// fallback for anything but Allow.
type GuardDecision int

const (
	Deny GuardDecision = iota
	Allow
	// Pending means the session is still resolving. Render fallback, never
	// redirect.
	Pending
)

// RoleGuard decides whether the subject may pass based on an allowed-roles
// set. An empty allowed set denies everyone.
func RoleGuard(sub Subject, allowed ...Role) GuardDecision {
	if sub.Status == StatusLoading {
		return Pending
	}
	if sub.Status != StatusAuthenticated {
		return Deny
	}
	for _, r := range allowed {
		if sub.Role == r {
			return Allow
		}
	}
	return Deny
}

// PermissionGuard decides whether the subject may pass based on permission
// tokens. With requireAll=false (the default shape) any one satisfied
// permission allows; with requireAll=true every permission must hold.
func PermissionGuard(sub Subject, requireAll bool, perms ...Permission) GuardDecision {
	if sub.Status == StatusLoading {
		return Pending
	}
	if sub.Status != StatusAuthenticated {
		return Deny
	}
	if requireAll {
		if HasAllPermissions(sub.Role, perms...) {
			return Allow
		}
		return Deny
	}
	if HasAnyPermission(sub.Role, perms...) {
		return Allow
	}
	return Deny
}

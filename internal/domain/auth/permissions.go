package auth

// Permission is a grantable capability token of the form "resource:action".
// The catalog is closed: permissions are never created dynamically.
type Permission string

const (
	PermCompanyView   Permission = "company:view"
	PermCompanyEdit   Permission = "company:edit"
	PermCompanyDelete Permission = "company:delete"

	PermBranchView   Permission = "branch:view"
	PermBranchCreate Permission = "branch:create"
	PermBranchEdit   Permission = "branch:edit"
	PermBranchDelete Permission = "branch:delete"

	PermUserView   Permission = "user:view"
	PermUserCreate Permission = "user:create"
	PermUserEdit   Permission = "user:edit"
	PermUserDelete Permission = "user:delete"

	PermEmployeeView   Permission = "employee:view"
	PermEmployeeCreate Permission = "employee:create"
	PermEmployeeEdit   Permission = "employee:edit"
	PermEmployeeDelete Permission = "employee:delete"

	PermServiceView   Permission = "service:view"
	PermServiceCreate Permission = "service:create"
	PermServiceEdit   Permission = "service:edit"
	PermServiceDelete Permission = "service:delete"

	PermAppointmentView   Permission = "appointment:view"
	PermAppointmentCreate Permission = "appointment:create"
	PermAppointmentEdit   Permission = "appointment:edit"
	PermAppointmentDelete Permission = "appointment:delete"

	PermFinancialView Permission = "financial:view"
	PermFinancialEdit Permission = "financial:edit"
	PermCashierOpen   Permission = "cashier:open"
	PermCashierClose  Permission = "cashier:close"

	PermReportsView   Permission = "reports:view"
	PermReportsExport Permission = "reports:export"

	PermSettingsView Permission = "settings:view"
	PermSettingsEdit Permission = "settings:edit"
)

// AllPermissions is the full catalog. SUPER_ADMIN holds exactly this set;
// a permission missing here is an orphan capability and a bug.
var AllPermissions = []Permission{
	PermCompanyView, PermCompanyEdit, PermCompanyDelete,
	PermBranchView, PermBranchCreate, PermBranchEdit, PermBranchDelete,
	PermUserView, PermUserCreate, PermUserEdit, PermUserDelete,
	PermEmployeeView, PermEmployeeCreate, PermEmployeeEdit, PermEmployeeDelete,
	PermServiceView, PermServiceCreate, PermServiceEdit, PermServiceDelete,
	PermAppointmentView, PermAppointmentCreate, PermAppointmentEdit, PermAppointmentDelete,
	PermFinancialView, PermFinancialEdit, PermCashierOpen, PermCashierClose,
	PermReportsView, PermReportsExport,
	PermSettingsView, PermSettingsEdit,
}

// RolePermissions is the static role → permission mapping. ADMIN holds
// everything except destructive cross-tenant capabilities; EMPLOYEE is
// scoped to day-to-day operation; USER can only view and book.
var RolePermissions = map[Role][]Permission{
	RoleSuperAdmin: AllPermissions,
	RoleAdmin: {
		PermCompanyView, PermCompanyEdit,
		PermBranchView, PermBranchCreate, PermBranchEdit,
		PermUserView, PermUserCreate, PermUserEdit,
		PermEmployeeView, PermEmployeeCreate, PermEmployeeEdit,
		PermServiceView, PermServiceCreate, PermServiceEdit,
		PermAppointmentView, PermAppointmentCreate, PermAppointmentEdit,
		PermFinancialView, PermFinancialEdit,
		PermCashierOpen, PermCashierClose,
		PermReportsView, PermReportsExport,
		PermSettingsView, PermSettingsEdit,
	},
	RoleEmployee: {
		PermAppointmentView, PermAppointmentCreate, PermAppointmentEdit,
		PermServiceView,
		PermFinancialView,
		PermReportsView,
	},
	RoleUser: {
		PermAppointmentView, PermAppointmentCreate,
	},
}

// PermissionsFor returns the permission set for a role. An unrecognized
// role degrades to an empty set so unknown/legacy roles fail closed
// instead of crashing the guard chain. The returned slice is a copy.
func PermissionsFor(role Role) []Permission {
	perms, ok := RolePermissions[role]
	if !ok {
		return nil
	}
	out := make([]Permission, len(perms))
	copy(out, perms)
	return out
}

// HasPermission reports whether the role holds the given permission.
func HasPermission(role Role, perm Permission) bool {
	for _, p := range RolePermissions[role] {
		if p == perm {
			return true
		}
	}
	return false
}

// HasAnyPermission reports whether the role holds at least one of perms.
// An empty list is satisfied vacuously.
func HasAnyPermission(role Role, perms ...Permission) bool {
	if len(perms) == 0 {
		return true
	}
	for _, p := range perms {
		if HasPermission(role, p) {
			return true
		}
	}
	return false
}

// HasAllPermissions reports whether the role holds every one of perms.
func HasAllPermissions(role Role, perms ...Permission) bool {
	for _, p := range perms {
		if !HasPermission(role, p) {
			return false
		}
	}
	return true
}

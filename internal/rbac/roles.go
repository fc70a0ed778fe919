package rbac

// Role names. Keep these stable; they are part of auth/RBAC contracts.
const (
	RoleOwner      = "owner"
	RoleStaff      = "staff"
	RoleSuperAdmin = "super_admin"
	RoleMigrator   = "migrator" // hidden role, used by bulk-import tooling
)

func IsSuperAdmin(role string) bool { return role == RoleSuperAdmin }

func IsHiddenRole(role string) bool { return role == RoleMigrator }

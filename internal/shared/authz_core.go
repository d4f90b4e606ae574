package shared

// Role tags form a closed set. Admin roles bypass fine-grained permission
// checks entirely; only RoleUser is subject to the permission list.
const (
	RoleSuperAdmin = "super-admin"
	RoleAdmin      = "admin"
	RoleUser       = "user"
)

// IsAdminRole reports whether the role bypasses permission checks.
func IsAdminRole(role string) bool {
	return role == RoleSuperAdmin || role == RoleAdmin
}

// Core platform permissions. Permission keys follow the
// module:submodule:action convention; the first token matches the URL
// segment of the owning module and the second the submodule page slug.
const (
	PermSettingsUsersView = "settings:users:view"
	PermSettingsUsersEdit = "settings:users:edit"

	PermSettingsRolesView = "settings:roles:view"
	PermSettingsRolesEdit = "settings:roles:edit"
)

// CoreScopes lists all permissions related to the core platform.
func CoreScopes() []string {
	return []string{
		PermSettingsUsersView,
		PermSettingsUsersEdit,
		PermSettingsRolesView,
		PermSettingsRolesEdit,
	}
}

package models

import "strings"

// Role is a closed set of admin roles ordered by authority level.
type Role string

const (
	RoleSuperAdmin     Role = "SUPER_ADMIN"
	RoleAdmin          Role = "ADMIN"
	RoleContentManager Role = "CONTENT_MANAGER"
	RoleViewer         Role = "VIEWER"
)

// Authority levels. Comparisons always use the level, never declaration order.
const (
	LevelSuperAdmin     = 100
	LevelAdmin          = 80
	LevelContentManager = 60
	LevelViewer         = 20
)

// ParseRole maps a role code to its variant. Unknown codes fall back to
// VIEWER so a corrupted record can never gain authority.
func ParseRole(code string) Role {
	switch Role(strings.ToUpper(strings.TrimSpace(code))) {
	case RoleSuperAdmin:
		return RoleSuperAdmin
	case RoleAdmin:
		return RoleAdmin
	case RoleContentManager:
		return RoleContentManager
	default:
		return RoleViewer
	}
}

// Level returns the integer authority level for the role.
func (r Role) Level() int {
	switch r {
	case RoleSuperAdmin:
		return LevelSuperAdmin
	case RoleAdmin:
		return LevelAdmin
	case RoleContentManager:
		return LevelContentManager
	default:
		return LevelViewer
	}
}

// Label returns a human-readable name for the role.
func (r Role) Label() string {
	switch r {
	case RoleSuperAdmin:
		return "Super Administrator"
	case RoleAdmin:
		return "Administrator"
	case RoleContentManager:
		return "Content Manager"
	default:
		return "Viewer"
	}
}

// HasPermission reports whether the role may perform the named permission.
// Every role variant has an explicit branch.
func (r Role) HasPermission(permission string) bool {
	switch r {
	case RoleSuperAdmin:
		return true
	case RoleAdmin:
		return !strings.HasPrefix(permission, "system.config") &&
			!strings.HasPrefix(permission, "system.backup")
	case RoleContentManager:
		return strings.HasPrefix(permission, "content.") ||
			strings.HasPrefix(permission, "media.") ||
			strings.HasPrefix(permission, "project.")
	case RoleViewer:
		return strings.HasSuffix(permission, ".read") ||
			strings.HasSuffix(permission, ".view")
	default:
		return false
	}
}

// HasHigherAuthorityThan reports whether r strictly outranks other.
func (r Role) HasHigherAuthorityThan(other Role) bool {
	return r.Level() > other.Level()
}

// CanManageProjects reports whether the role can create or edit content.
func (r Role) CanManageProjects() bool {
	return r.Level() >= LevelContentManager
}

// CanManageUsers reports whether the role can administer user accounts.
func (r Role) CanManageUsers() bool {
	return r.Level() >= LevelAdmin
}

// CanManageSystem reports whether the role can touch system configuration.
func (r Role) CanManageSystem() bool {
	return r.Level() >= LevelSuperAdmin
}

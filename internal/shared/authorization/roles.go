// Package authorization holds account roles and ownership checks shared by
// the HTTP and application layers.
package authorization

type UserRole string

const (
	RoleUser       UserRole = "user"
	RoleAdmin      UserRole = "admin"
	RoleSuperAdmin UserRole = "super_admin"
)

func (r UserRole) String() string {
	return string(r)
}

// IsAdmin reports whether the role has administrative rights. super_admin
// inherits everything admin can do.
func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

func (r UserRole) IsSuperAdmin() bool {
	return r == RoleSuperAdmin
}

func (r UserRole) IsValid() bool {
	return r == RoleUser || r == RoleAdmin || r == RoleSuperAdmin
}

// ParseUserRole falls back to RoleUser for unknown input.
func ParseUserRole(s string) UserRole {
	role := UserRole(s)
	if role.IsValid() {
		return role
	}
	return RoleUser
}

// CanAccessOwned reports whether a caller may act on a resource owned by ownerID.
// Admins always can; anyone else only when they own it.
func CanAccessOwned(userID string, role UserRole, ownerID string) bool {
	if role.IsAdmin() {
		return true
	}
	return userID != "" && userID == ownerID
}

package model

// Permission levels stored on Auth.PermissionsLevel. Higher levels include lower ones.
const (
	PermissionStaff   = 1
	PermissionManager = 2
	PermissionAdmin   = 3
)

// PermissionName returns a display name for a permission level
func PermissionName(level int) string {
	switch {
	case level >= PermissionAdmin:
		return "admin"
	case level == PermissionManager:
		return "manager"
	default:
		return "staff"
	}
}

package user

type Permission string

const (
	// Attendance
	PermissionAttendanceViewOwn Permission = "attendance.view_own"
	PermissionAttendanceCreate  Permission = "attendance.create"

	// Leave
	PermissionLeaveViewOwn Permission = "leave.view_own"
	PermissionLeaveCreate  Permission = "leave.create"
	PermissionLeaveApprove Permission = "leave.approve"
	PermissionLeaveViewAll Permission = "leave.view_all"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionAttendanceViewOwn,
		PermissionAttendanceCreate,
		PermissionLeaveViewOwn,
		PermissionLeaveCreate,
		PermissionLeaveApprove,
		PermissionLeaveViewAll,
	},
	RoleManager: {
		// Department-scoped reviewers
		PermissionAttendanceViewOwn,
		PermissionAttendanceCreate,
		PermissionLeaveViewOwn,
		PermissionLeaveCreate,
		PermissionLeaveApprove,
	},
	RoleEmployee: {
		PermissionAttendanceViewOwn,
		PermissionAttendanceCreate,
		PermissionLeaveViewOwn,
		PermissionLeaveCreate,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}

// AnyHasPermission checks the permission across a role set.
func AnyHasPermission(roles []Role, permission Permission) bool {
	for _, role := range roles {
		if HasPermission(role, permission) {
			return true
		}
	}
	return false
}

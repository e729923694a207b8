package user

type Permission string

const (
	// Self Management
	PermissionViewOwnProfile Permission = "profile.view_own"
	PermissionEditOwnProfile Permission = "profile.edit_own"

	// Shift Management
	PermissionShiftView   Permission = "shift.view"
	PermissionShiftSignup Permission = "shift.signup"
	PermissionShiftManage Permission = "shift.manage"
	PermissionShiftRoster Permission = "shift.roster"

	// Attendance
	PermissionAttendanceCheckIn Permission = "attendance.checkin"
	PermissionAttendanceViewAll Permission = "attendance.view_all"

	// Hour Logging
	PermissionHoursLog     Permission = "hours.log"
	PermissionHoursViewOwn Permission = "hours.view_own"
	PermissionHoursApprove Permission = "hours.approve"

	// Applications
	PermissionApplicationSubmit Permission = "application.submit"
	PermissionApplicationReview Permission = "application.review"

	// Groups
	PermissionGroupView   Permission = "group.view"
	PermissionGroupManage Permission = "group.manage"

	// Users
	PermissionUserManage Permission = "user.manage"

	// Dashboard
	PermissionDashboardView Permission = "dashboard.view"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
		PermissionShiftView,
		PermissionShiftSignup,
		PermissionShiftManage,
		PermissionShiftRoster,
		PermissionAttendanceCheckIn,
		PermissionAttendanceViewAll,
		PermissionHoursLog,
		PermissionHoursViewOwn,
		PermissionHoursApprove,
		PermissionApplicationReview,
		PermissionGroupView,
		PermissionGroupManage,
		PermissionUserManage,
		PermissionDashboardView,
	},
	RoleGroupAdmin: {
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
		PermissionShiftView,
		PermissionShiftSignup,
		PermissionAttendanceCheckIn,
		PermissionHoursLog,
		PermissionHoursViewOwn,
		PermissionGroupView,
		PermissionGroupManage,
	},
	RoleVolunteer: {
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
		PermissionShiftView,
		PermissionShiftSignup,
		PermissionAttendanceCheckIn,
		PermissionHoursLog,
		PermissionHoursViewOwn,
		PermissionGroupView,
	},
	RolePending: {
		PermissionViewOwnProfile,
		PermissionApplicationSubmit,
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

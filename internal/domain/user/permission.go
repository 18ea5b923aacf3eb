package user

type Permission string

const (
	// Attendance
	PermissionAttendanceCreate   Permission = "attendance.create"
	PermissionAttendanceViewOwn  Permission = "attendance.view_own"
	PermissionAttendanceViewAll  Permission = "attendance.view_all"
	PermissionAttendanceOverride Permission = "attendance.override"

	// Overtime
	PermissionOvertimeReview Permission = "overtime.review"

	// Payroll and salary
	PermissionPayrollManage Permission = "payroll.manage"
	PermissionSalaryManage  Permission = "salary.manage"

	// Calendar
	PermissionCalendarManage Permission = "calendar.manage"
)

// RolePermissions maps roles to their permissions. It is the only place access rules live.
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionAttendanceCreate,
		PermissionAttendanceViewOwn,
		PermissionAttendanceViewAll,
		PermissionAttendanceOverride,
		PermissionOvertimeReview,
		PermissionPayrollManage,
		PermissionSalaryManage,
		PermissionCalendarManage,
	},
	RoleSubAdmin: {
		PermissionAttendanceCreate,
		PermissionAttendanceViewOwn,
		PermissionAttendanceViewAll,
		PermissionAttendanceOverride,
	},
	RoleHR: {
		PermissionAttendanceCreate,
		PermissionAttendanceViewOwn,
		PermissionAttendanceViewAll,
		PermissionAttendanceOverride,
		PermissionOvertimeReview,
	},
	RoleTeamLead: {
		PermissionAttendanceCreate,
		PermissionAttendanceViewOwn,
		PermissionAttendanceViewAll,
		PermissionOvertimeReview,
	},
	RoleEmployee: {
		PermissionAttendanceCreate,
		PermissionAttendanceViewOwn,
	},
	RoleClient: {
		// Clients have no workforce permissions
	},
}

// Allow checks if a role has a specific permission. Unknown roles are denied.
func Allow(role Role, permission Permission) bool {
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

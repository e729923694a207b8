package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasPermission(t *testing.T) {
	assert.True(t, HasPermission(RoleAdmin, PermissionUserManage))
	assert.True(t, HasPermission(RoleAdmin, PermissionApplicationReview))
	assert.True(t, HasPermission(RoleAdmin, PermissionHoursApprove))

	assert.True(t, HasPermission(RoleVolunteer, PermissionShiftSignup))
	assert.True(t, HasPermission(RoleVolunteer, PermissionHoursLog))
	assert.False(t, HasPermission(RoleVolunteer, PermissionShiftManage))
	assert.False(t, HasPermission(RoleVolunteer, PermissionHoursApprove))
	assert.False(t, HasPermission(RoleVolunteer, PermissionUserManage))

	assert.True(t, HasPermission(RoleGroupAdmin, PermissionGroupManage))
	assert.False(t, HasPermission(RoleGroupAdmin, PermissionApplicationReview))

	// Pending accounts may only view their own profile and apply
	assert.True(t, HasPermission(RolePending, PermissionApplicationSubmit))
	assert.False(t, HasPermission(RolePending, PermissionShiftSignup))
	assert.False(t, HasPermission(RolePending, PermissionShiftView))

	assert.False(t, HasPermission(Role("unknown"), PermissionShiftView))
}

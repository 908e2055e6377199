package constants_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"kerjaku_backend/internals/constants"
)

func TestDefaultPermissionsForRole(t *testing.T) {
	cases := []struct {
		role string
		want constants.MemberPermissions
	}{
		{constants.RoleAdmin, constants.MemberPermissions{IsAdmin: true, CanInviteUsers: true, CanManageProjects: true, CanManageTeams: true, CanViewReports: true}},
		{constants.RoleGlobalAdmin, constants.MemberPermissions{IsAdmin: true, CanInviteUsers: true, CanManageProjects: true, CanManageTeams: true, CanViewReports: true}},
		{constants.RoleManager, constants.MemberPermissions{CanInviteUsers: true, CanManageProjects: true, CanManageTeams: true, CanViewReports: true}},
		{constants.RoleTeamLead, constants.MemberPermissions{CanManageTeams: true, CanViewReports: true}},
		{constants.RoleEmployee, constants.MemberPermissions{}},
		{constants.RoleContractor, constants.MemberPermissions{}},
		{"something_else", constants.MemberPermissions{}},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, constants.DefaultPermissionsForRole(tc.role), "role %s", tc.role)
	}
}

func TestIsManagerial(t *testing.T) {
	assert.False(t, constants.IsManagerial(constants.RoleEmployee))
	assert.False(t, constants.IsManagerial(constants.RoleContractor))
	assert.True(t, constants.IsManagerial(constants.RoleTeamLead))
	assert.True(t, constants.IsManagerial(constants.RoleManager))
	assert.True(t, constants.IsManagerial(constants.RoleGlobalAdmin))
}

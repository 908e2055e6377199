package constants

import "fmt"

// Role names shared across membership and JWT claims.
const (
	RoleEmployee    = "employee"
	RoleContractor  = "contractor"
	RoleTeamLead    = "team_lead"
	RoleManager     = "manager"
	RoleAdmin       = "admin"
	RoleClientAdmin = "client_admin"
	RoleGlobalAdmin = "global_admin"
)

var AllRoles = []string{
	RoleEmployee,
	RoleContractor,
	RoleTeamLead,
	RoleManager,
	RoleAdmin,
	RoleClientAdmin,
	RoleGlobalAdmin,
}

// Role error message templates
const (
	ErrOnlyManagersCanAccess = "❌ Only managers or admins may access %s."
	ErrOnlyAdminsCanAccess   = "❌ Only admins may access %s."
)

func RoleErrorManager(feature string) string {
	return fmt.Sprintf(ErrOnlyManagersCanAccess, feature)
}

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

// MemberPermissions is the permission set stored on an organization member.
type MemberPermissions struct {
	IsAdmin           bool
	CanInviteUsers    bool
	CanManageProjects bool
	CanManageTeams    bool
	CanViewReports    bool
}

// DefaultPermissionsForRole maps a membership role to its default permission
// set. Pure function, applied explicitly when a membership is created;
// admins can still override the flags afterwards.
func DefaultPermissionsForRole(role string) MemberPermissions {
	switch role {
	case RoleGlobalAdmin, RoleAdmin, RoleClientAdmin:
		return MemberPermissions{
			IsAdmin:           true,
			CanInviteUsers:    true,
			CanManageProjects: true,
			CanManageTeams:    true,
			CanViewReports:    true,
		}
	case RoleManager:
		return MemberPermissions{
			CanInviteUsers:    true,
			CanManageProjects: true,
			CanManageTeams:    true,
			CanViewReports:    true,
		}
	case RoleTeamLead:
		return MemberPermissions{
			CanManageTeams: true,
			CanViewReports: true,
		}
	default: // employee, contractor, unknown
		return MemberPermissions{}
	}
}

// IsManagerial reports whether the role carries team-management authority.
func IsManagerial(role string) bool {
	switch role {
	case RoleTeamLead, RoleManager, RoleAdmin, RoleClientAdmin, RoleGlobalAdmin:
		return true
	}
	return false
}

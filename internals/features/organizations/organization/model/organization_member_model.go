package model

import (
	"time"

	"github.com/google/uuid"

	"kerjaku_backend/internals/constants"
	commonModel "kerjaku_backend/internals/features/common/model"
)

// OrganizationMemberModel links a user to a tenant with a role and the
// permission flags derived from it. The membership role is the authoritative
// one for that tenant.
type OrganizationMemberModel struct {
	commonModel.OrgScoped

	// one membership per (organization_id, user_id); enforced in the controller
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Role   string `gorm:"type:varchar(20);not null;default:'employee'" json:"role" validate:"omitempty,oneof=employee contractor team_lead manager admin client_admin global_admin"`

	IsAdmin           bool `gorm:"not null;default:false" json:"is_admin"`
	CanInviteUsers    bool `gorm:"not null;default:false" json:"can_invite_users"`
	CanManageProjects bool `gorm:"not null;default:false" json:"can_manage_projects"`
	CanManageTeams    bool `gorm:"not null;default:false" json:"can_manage_teams"`
	CanViewReports    bool `gorm:"not null;default:false" json:"can_view_reports"`

	IsActive bool      `gorm:"not null;default:true" json:"is_active"`
	JoinedAt time.Time `gorm:"autoCreateTime" json:"joined_at"`
}

func (OrganizationMemberModel) TableName() string {
	return "organization_members"
}

// ApplyDefaultPermissions sets the flags from the member's role.
func (m *OrganizationMemberModel) ApplyDefaultPermissions() {
	if m.Role == "" {
		m.Role = constants.RoleEmployee
	}
	p := constants.DefaultPermissionsForRole(m.Role)
	m.IsAdmin = p.IsAdmin
	m.CanInviteUsers = p.CanInviteUsers
	m.CanManageProjects = p.CanManageProjects
	m.CanManageTeams = p.CanManageTeams
	m.CanViewReports = p.CanViewReports
}

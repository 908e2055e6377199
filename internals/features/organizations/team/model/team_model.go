package model

import (
	"time"

	"github.com/google/uuid"

	commonModel "kerjaku_backend/internals/features/common/model"
)

type TeamModel struct {
	commonModel.OrgScoped

	Name         string     `gorm:"size:100;not null" json:"name" validate:"required,min=2,max=100"`
	Description  string     `gorm:"type:text" json:"description,omitempty"`
	DepartmentID *uuid.UUID `gorm:"type:uuid;index" json:"department_id,omitempty"`
	TeamLeadID   *uuid.UUID `gorm:"type:uuid;index" json:"team_lead_id,omitempty"`

	IsActive bool `gorm:"not null;default:true" json:"is_active"`
}

func (TeamModel) TableName() string {
	return "teams"
}

// TeamMemberModel joins users to teams.
type TeamMemberModel struct {
	commonModel.Base

	TeamID uuid.UUID `gorm:"type:uuid;not null;index" json:"team_id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`

	JoinedAt time.Time `gorm:"autoCreateTime" json:"joined_at"`
	IsActive bool      `gorm:"not null;default:true" json:"is_active"`
}

func (TeamMemberModel) TableName() string {
	return "team_members"
}

package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	commonModel "kerjaku_backend/internals/features/common/model"
)

// Project statuses
const (
	ProjectStatusPlanning   = "planning"
	ProjectStatusActive     = "active"
	ProjectStatusInProgress = "in_progress"
	ProjectStatusOnHold     = "on_hold"
	ProjectStatusCompleted  = "completed"
	ProjectStatusCancelled  = "cancelled"
)

type ProjectModel struct {
	commonModel.OrgScoped

	Name        string `gorm:"size:150;not null" json:"name" validate:"required,min=2,max=150"`
	Code        string `gorm:"size:20" json:"code,omitempty" validate:"omitempty,max=20"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	Category    string `gorm:"size:50" json:"category,omitempty"`

	ClientID         *uuid.UUID `gorm:"type:uuid;index" json:"client_id,omitempty"`
	DepartmentID     *uuid.UUID `gorm:"type:uuid;index" json:"department_id,omitempty"`
	ProjectManagerID *uuid.UUID `gorm:"type:uuid;index" json:"project_manager_id,omitempty"`

	StartDate *time.Time `gorm:"type:date" json:"start_date,omitempty"`
	EndDate   *time.Time `gorm:"type:date" json:"end_date,omitempty"`
	Deadline  *time.Time `gorm:"type:date" json:"deadline,omitempty"`

	BudgetHours  *decimal.Decimal `gorm:"type:numeric(8,2)" json:"budget_hours,omitempty"`
	BudgetAmount *decimal.Decimal `gorm:"type:numeric(12,2)" json:"budget_amount,omitempty"`
	HourlyRate   *decimal.Decimal `gorm:"type:numeric(8,2)" json:"hourly_rate,omitempty"`

	IsBillable  bool   `gorm:"not null;default:true" json:"is_billable"`
	BillingType string `gorm:"type:varchar(20);not null;default:'hourly'" json:"billing_type" validate:"omitempty,oneof=hourly fixed non_billable"`

	Status   string `gorm:"type:varchar(20);not null;default:'planning'" json:"status" validate:"omitempty,oneof=planning active in_progress on_hold completed cancelled"`
	Priority string `gorm:"type:varchar(10);not null;default:'medium'" json:"priority" validate:"omitempty,oneof=low medium high urgent"`

	ProgressPercentage int  `gorm:"not null;default:0" json:"progress_percentage" validate:"min=0,max=100"`
	AllowTimeTracking  bool `gorm:"not null;default:true" json:"allow_time_tracking"`
}

func (ProjectModel) TableName() string {
	return "projects"
}

// TracksTime reports whether entries may be logged against the project at all.
func (p *ProjectModel) TracksTime() bool {
	if !p.AllowTimeTracking || p.IsDeleted {
		return false
	}
	switch p.Status {
	case ProjectStatusActive, ProjectStatusInProgress:
		return true
	}
	return false
}

// CanUserLogTime: the project manager or an active member may log time.
func (p *ProjectModel) CanUserLogTime(db *gorm.DB, userID uuid.UUID) (bool, error) {
	if !p.TracksTime() {
		return false, nil
	}
	if p.ProjectManagerID != nil && *p.ProjectManagerID == userID {
		return true, nil
	}
	var count int64
	err := db.Model(&ProjectMembershipModel{}).
		Where("project_id = ? AND user_id = ? AND is_active = ? AND is_deleted = ?",
			p.ID, userID, true, false).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ProjectMembershipModel joins users to projects; one row per (project,user).
type ProjectMembershipModel struct {
	commonModel.Base

	ProjectID uuid.UUID `gorm:"type:uuid;not null;index" json:"project_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`

	Role         string           `gorm:"type:varchar(30);not null;default:'member'" json:"role"`
	AllocationPc int              `gorm:"not null;default:100" json:"allocation_pc" validate:"min=0,max=100"`
	HourlyRate   *decimal.Decimal `gorm:"type:numeric(8,2)" json:"hourly_rate,omitempty"`

	StartDate *time.Time `gorm:"type:date" json:"start_date,omitempty"`
	EndDate   *time.Time `gorm:"type:date" json:"end_date,omitempty"`

	CanEditProject   bool `gorm:"not null;default:false" json:"can_edit_project"`
	CanManageMembers bool `gorm:"not null;default:false" json:"can_manage_members"`

	IsActive bool `gorm:"not null;default:true" json:"is_active"`
}

func (ProjectMembershipModel) TableName() string {
	return "project_memberships"
}

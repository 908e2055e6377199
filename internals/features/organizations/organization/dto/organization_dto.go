package dto

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	orgModel "kerjaku_backend/internals/features/organizations/organization/model"
)

// UpdateOrganizationRequest — PATCH /api/a/organizations/current
type UpdateOrganizationRequest struct {
	Name         *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	ContactEmail *string `json:"contact_email,omitempty" validate:"omitempty,email"`
	Phone        *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Address      *string `json:"address,omitempty"`
	Timezone     *string `json:"timezone,omitempty" validate:"omitempty,max=50"`
	Currency     *string `json:"currency,omitempty" validate:"omitempty,len=3"`
	Status       *string `json:"status,omitempty" validate:"omitempty,oneof=active inactive suspended"`
}

func (r *UpdateOrganizationRequest) Normalize() {
	if r.Name != nil {
		v := strings.TrimSpace(*r.Name)
		r.Name = &v
	}
	if r.ContactEmail != nil {
		v := strings.TrimSpace(strings.ToLower(*r.ContactEmail))
		r.ContactEmail = &v
	}
	if r.Currency != nil {
		v := strings.ToUpper(strings.TrimSpace(*r.Currency))
		r.Currency = &v
	}
}

func (r *UpdateOrganizationRequest) ApplyToModel(m *orgModel.OrganizationModel) {
	if r.Name != nil {
		m.Name = *r.Name
	}
	if r.ContactEmail != nil {
		m.ContactEmail = *r.ContactEmail
	}
	if r.Phone != nil {
		m.Phone = *r.Phone
	}
	if r.Address != nil {
		m.Address = *r.Address
	}
	if r.Timezone != nil {
		m.Timezone = *r.Timezone
	}
	if r.Currency != nil {
		m.Currency = *r.Currency
	}
	if r.Status != nil {
		m.Status = *r.Status
	}
}

// UpdateOrganizationSettingsRequest — PATCH /api/a/organizations/current/settings
type UpdateOrganizationSettingsRequest struct {
	WorkHoursPerDay             *int             `json:"work_hours_per_day,omitempty" validate:"omitempty,min=1,max=24"`
	DailyOvertimeThreshold      *int             `json:"daily_overtime_threshold,omitempty" validate:"omitempty,min=1,max=24"`
	WeeklyOvertimeThreshold     *int             `json:"weekly_overtime_threshold,omitempty" validate:"omitempty,min=1,max=168"`
	MaxDailyHours               *int             `json:"max_daily_hours,omitempty" validate:"omitempty,min=1,max=24"`
	BreakDurationMinutes        *int             `json:"break_duration_minutes,omitempty" validate:"omitempty,min=5,max=120"`
	LunchDurationMinutes        *int             `json:"lunch_duration_minutes,omitempty" validate:"omitempty,min=15,max=180"`
	OvertimeRateMultiplier      *decimal.Decimal `json:"overtime_rate_multiplier,omitempty"`
	RequireApprovalForOvertime  *bool            `json:"require_approval_for_overtime,omitempty"`
	RequireApprovalForTimeEdits *bool            `json:"require_approval_for_time_edits,omitempty"`
	AlertOnOvertime             *bool            `json:"alert_on_overtime,omitempty"`
	AlertOnMissedBreak          *bool            `json:"alert_on_missed_break,omitempty"`
}

func (r *UpdateOrganizationSettingsRequest) ApplyToModel(m *orgModel.OrganizationSettingsModel) {
	if r.WorkHoursPerDay != nil {
		m.WorkHoursPerDay = *r.WorkHoursPerDay
	}
	if r.DailyOvertimeThreshold != nil {
		m.DailyOvertimeThreshold = *r.DailyOvertimeThreshold
	}
	if r.WeeklyOvertimeThreshold != nil {
		m.WeeklyOvertimeThreshold = *r.WeeklyOvertimeThreshold
	}
	if r.MaxDailyHours != nil {
		m.MaxDailyHours = *r.MaxDailyHours
	}
	if r.BreakDurationMinutes != nil {
		m.BreakDurationMinutes = *r.BreakDurationMinutes
	}
	if r.LunchDurationMinutes != nil {
		m.LunchDurationMinutes = *r.LunchDurationMinutes
	}
	if r.OvertimeRateMultiplier != nil {
		m.OvertimeRateMultiplier = *r.OvertimeRateMultiplier
	}
	if r.RequireApprovalForOvertime != nil {
		m.RequireApprovalForOvertime = *r.RequireApprovalForOvertime
	}
	if r.RequireApprovalForTimeEdits != nil {
		m.RequireApprovalForTimeEdits = *r.RequireApprovalForTimeEdits
	}
	if r.AlertOnOvertime != nil {
		m.AlertOnOvertime = *r.AlertOnOvertime
	}
	if r.AlertOnMissedBreak != nil {
		m.AlertOnMissedBreak = *r.AlertOnMissedBreak
	}
}

// CreateMemberRequest — POST /api/a/members
type CreateMemberRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
	Role   string    `json:"role" validate:"omitempty,oneof=employee contractor team_lead manager admin client_admin"`
}

// UpdateMemberRequest — PATCH /api/a/members/:id
// Changing the role re-derives the default permission flags; explicit flag
// fields then override on top.
type UpdateMemberRequest struct {
	Role              *string `json:"role,omitempty" validate:"omitempty,oneof=employee contractor team_lead manager admin client_admin"`
	IsAdmin           *bool   `json:"is_admin,omitempty"`
	CanInviteUsers    *bool   `json:"can_invite_users,omitempty"`
	CanManageProjects *bool   `json:"can_manage_projects,omitempty"`
	CanManageTeams    *bool   `json:"can_manage_teams,omitempty"`
	CanViewReports    *bool   `json:"can_view_reports,omitempty"`
	IsActive          *bool   `json:"is_active,omitempty"`
}

func (r *UpdateMemberRequest) ApplyToModel(m *orgModel.OrganizationMemberModel) {
	if r.Role != nil && *r.Role != m.Role {
		m.Role = *r.Role
		m.ApplyDefaultPermissions()
	}
	if r.IsAdmin != nil {
		m.IsAdmin = *r.IsAdmin
	}
	if r.CanInviteUsers != nil {
		m.CanInviteUsers = *r.CanInviteUsers
	}
	if r.CanManageProjects != nil {
		m.CanManageProjects = *r.CanManageProjects
	}
	if r.CanManageTeams != nil {
		m.CanManageTeams = *r.CanManageTeams
	}
	if r.CanViewReports != nil {
		m.CanViewReports = *r.CanViewReports
	}
	if r.IsActive != nil {
		m.IsActive = *r.IsActive
	}
}

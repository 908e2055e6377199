package model

import (
	"time"

	"github.com/shopspring/decimal"

	commonModel "kerjaku_backend/internals/features/common/model"
)

// OrganizationModel is the tenant root. Not org-scoped itself.
type OrganizationModel struct {
	commonModel.Base

	Name string `gorm:"size:100;not null" json:"name" validate:"required,min=2,max=100"`
	Slug string `gorm:"size:120;uniqueIndex;not null" json:"slug"`

	ContactEmail string `gorm:"size:255" json:"contact_email,omitempty" validate:"omitempty,email"`
	Phone        string `gorm:"size:30" json:"phone,omitempty"`
	Address      string `gorm:"type:text" json:"address,omitempty"`

	Timezone string `gorm:"size:50;not null;default:'UTC'" json:"timezone"`
	Currency string `gorm:"size:3;not null;default:'USD'" json:"currency"`

	Status string `gorm:"type:varchar(20);not null;default:'active'" json:"status" validate:"omitempty,oneof=active inactive suspended"`

	SubscriptionPlan      string     `gorm:"size:30;not null;default:'free'" json:"subscription_plan"`
	MaxUsers              int        `gorm:"not null;default:10" json:"max_users"`
	SubscriptionExpiresAt *time.Time `json:"subscription_expires_at,omitempty"`
}

func (OrganizationModel) TableName() string {
	return "organizations"
}

func (o *OrganizationModel) IsActive() bool {
	return o.Status == "active" && !o.IsDeleted
}

// OrganizationSettingsModel holds the org-wide time tracking policy.
// Per-user ComplianceSettings override these where both exist.
type OrganizationSettingsModel struct {
	commonModel.OrgScoped

	WorkHoursPerDay         int `gorm:"not null;default:8" json:"work_hours_per_day" validate:"min=1,max=24"`
	DailyOvertimeThreshold  int `gorm:"not null;default:8" json:"daily_overtime_threshold"`
	WeeklyOvertimeThreshold int `gorm:"not null;default:40" json:"weekly_overtime_threshold"`
	MaxDailyHours           int `gorm:"not null;default:12" json:"max_daily_hours"`

	BreakDurationMinutes int `gorm:"not null;default:15" json:"break_duration_minutes"`
	LunchDurationMinutes int `gorm:"not null;default:60" json:"lunch_duration_minutes"`

	OvertimeRateMultiplier decimal.Decimal `gorm:"type:numeric(4,2);not null;default:1.5" json:"overtime_rate_multiplier"`

	RequireApprovalForOvertime  bool `gorm:"not null;default:true" json:"require_approval_for_overtime"`
	RequireApprovalForTimeEdits bool `gorm:"not null;default:true" json:"require_approval_for_time_edits"`

	AlertOnOvertime    bool `gorm:"not null;default:true" json:"alert_on_overtime"`
	AlertOnMissedBreak bool `gorm:"not null;default:true" json:"alert_on_missed_break"`
}

func (OrganizationSettingsModel) TableName() string {
	return "organization_settings"
}

// DefaultOrganizationSettings builds the settings row created with a new org.
func DefaultOrganizationSettings(org *OrganizationModel) *OrganizationSettingsModel {
	s := &OrganizationSettingsModel{
		WorkHoursPerDay:             8,
		DailyOvertimeThreshold:      8,
		WeeklyOvertimeThreshold:     40,
		MaxDailyHours:               12,
		BreakDurationMinutes:        15,
		LunchDurationMinutes:        60,
		OvertimeRateMultiplier:      decimal.NewFromFloat(1.5),
		RequireApprovalForOvertime:  true,
		RequireApprovalForTimeEdits: true,
		AlertOnOvertime:             true,
		AlertOnMissedBreak:          true,
	}
	s.OrganizationID = org.ID
	return s
}

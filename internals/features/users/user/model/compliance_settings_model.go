package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	commonModel "kerjaku_backend/internals/features/common/model"
)

// ComplianceSettingsModel holds per-user hour limits and overtime rates.
// The lifecycle calculator reads these; it never writes them.
type ComplianceSettingsModel struct {
	commonModel.Base

	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`

	// Hour limits
	MaxHoursPerDay     int `gorm:"not null;default:8" json:"max_hours_per_day" validate:"min=1,max=24"`
	MaxHoursPerWeek    int `gorm:"not null;default:40" json:"max_hours_per_week"`
	MaxConsecutiveDays int `gorm:"not null;default:6" json:"max_consecutive_days"`

	// Break requirements
	RequireBreaks        bool `gorm:"not null;default:true" json:"require_breaks"`
	BreakAfterHours      int  `gorm:"not null;default:4" json:"break_after_hours"`
	BreakDurationMinutes int  `gorm:"not null;default:15" json:"break_duration_minutes"`

	// Lunch requirements
	RequireLunch         bool `gorm:"not null;default:true" json:"require_lunch"`
	LunchAfterHours      int  `gorm:"not null;default:6" json:"lunch_after_hours"`
	LunchDurationMinutes int  `gorm:"not null;default:60" json:"lunch_duration_minutes"`

	// Overtime
	OvertimeRateMultiplier decimal.Decimal `gorm:"type:numeric(4,2);not null;default:1.5" json:"overtime_rate_multiplier"`

	// Approval requirements
	RequireApprovalForOvertime  bool `gorm:"not null;default:true" json:"require_approval_for_overtime"`
	RequireApprovalForTimeEdits bool `gorm:"not null;default:true" json:"require_approval_for_time_edits"`
	AutoApproveRegularHours     bool `gorm:"not null;default:false" json:"auto_approve_regular_hours"`
}

func (ComplianceSettingsModel) TableName() string {
	return "compliance_settings"
}

// DefaultComplianceSettings builds the settings row created with a new user.
func DefaultComplianceSettings(userID uuid.UUID) *ComplianceSettingsModel {
	return &ComplianceSettingsModel{
		UserID:                      userID,
		MaxHoursPerDay:              8,
		MaxHoursPerWeek:             40,
		MaxConsecutiveDays:          6,
		RequireBreaks:               true,
		BreakAfterHours:             4,
		BreakDurationMinutes:        15,
		RequireLunch:                true,
		LunchAfterHours:             6,
		LunchDurationMinutes:        60,
		OvertimeRateMultiplier:      decimal.NewFromFloat(1.5),
		RequireApprovalForOvertime:  true,
		RequireApprovalForTimeEdits: true,
	}
}

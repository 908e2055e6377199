package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	commonModel "kerjaku_backend/internals/features/common/model"
)

// Alert types raised by the compliance sweeps.
const (
	AlertOvertime        = "overtime"
	AlertMissedBreak     = "missed_break"
	AlertLongShift       = "long_shift"
	AlertConsecutiveDays = "consecutive_days"
	AlertLateSubmission  = "late_submission"
	AlertMissingClockout = "missing_clockout"
)

const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

type ComplianceAlertModel struct {
	commonModel.OrgScoped

	UserID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	TimeEntryID *uuid.UUID `gorm:"type:uuid;index" json:"time_entry_id,omitempty"`

	AlertType string `gorm:"size:30;not null;index" json:"alert_type"`
	Severity  string `gorm:"size:10;not null;default:'warning'" json:"severity"`
	Message   string `gorm:"type:text;not null" json:"message"`

	ThresholdValue decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"threshold_value"`
	ActualValue    decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"actual_value"`

	IsAcknowledged   bool       `gorm:"not null;default:false" json:"is_acknowledged"`
	AcknowledgedByID *uuid.UUID `gorm:"type:uuid" json:"acknowledged_by_id,omitempty"`
	AcknowledgedAt   *time.Time `gorm:"type:timestamptz" json:"acknowledged_at,omitempty"`

	IsResolved     bool       `gorm:"not null;default:false" json:"is_resolved"`
	ResolvedByID   *uuid.UUID `gorm:"type:uuid" json:"resolved_by_id,omitempty"`
	ResolvedAt     *time.Time `gorm:"type:timestamptz" json:"resolved_at,omitempty"`
	ResolutionNote string     `gorm:"type:text" json:"resolution_note,omitempty"`
}

func (ComplianceAlertModel) TableName() string {
	return "compliance_alerts"
}

func (a *ComplianceAlertModel) Acknowledge(byID uuid.UUID, now time.Time) {
	a.IsAcknowledged = true
	a.AcknowledgedByID = &byID
	a.AcknowledgedAt = &now
}

// Resolve implies acknowledgement.
func (a *ComplianceAlertModel) Resolve(byID uuid.UUID, note string, now time.Time) {
	if !a.IsAcknowledged {
		a.Acknowledge(byID, now)
	}
	a.IsResolved = true
	a.ResolvedByID = &byID
	a.ResolvedAt = &now
	a.ResolutionNote = note
}

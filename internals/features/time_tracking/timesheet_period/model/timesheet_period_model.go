package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	commonModel "kerjaku_backend/internals/features/common/model"
	timeEntryModel "kerjaku_backend/internals/features/time_tracking/time_entry/model"
)

// TimesheetPeriodModel groups time entries into a payroll window.
// Close stops new submissions; Lock freezes the period for payroll.
type TimesheetPeriodModel struct {
	commonModel.OrgScoped

	Name      string    `gorm:"size:100;not null" json:"name"`
	StartDate time.Time `gorm:"type:date;not null;index" json:"start_date"`
	EndDate   time.Time `gorm:"type:date;not null;index" json:"end_date"`

	IsOpen   bool `gorm:"not null;default:true" json:"is_open"`
	IsLocked bool `gorm:"not null;default:false" json:"is_locked"`

	SubmissionDeadline *time.Time `gorm:"type:timestamptz" json:"submission_deadline,omitempty"`
	ApprovalDeadline   *time.Time `gorm:"type:timestamptz" json:"approval_deadline,omitempty"`

	// Aggregated at close time.
	TotalRegularHours  decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"total_regular_hours"`
	TotalOvertimeHours decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"total_overtime_hours"`
	TotalBillable      decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"total_billable"`

	PayrollProcessed   bool       `gorm:"not null;default:false" json:"payroll_processed"`
	PayrollProcessedAt *time.Time `gorm:"type:timestamptz" json:"payroll_processed_at,omitempty"`
	ClosedByID         *uuid.UUID `gorm:"type:uuid" json:"closed_by_id,omitempty"`
	ClosedAt           *time.Time `gorm:"type:timestamptz" json:"closed_at,omitempty"`
}

func (TimesheetPeriodModel) TableName() string {
	return "timesheet_periods"
}

// Close stops new submissions into the period.
func (p *TimesheetPeriodModel) Close(closedBy uuid.UUID, now time.Time) error {
	if !p.IsOpen {
		return fmt.Errorf("%w: close on a closed period", timeEntryModel.ErrInvalidTransition)
	}
	p.IsOpen = false
	p.ClosedByID = &closedBy
	p.ClosedAt = &now
	return nil
}

// Lock freezes a closed period; a locked period never reopens.
func (p *TimesheetPeriodModel) Lock() error {
	if p.IsOpen {
		return fmt.Errorf("%w: lock on an open period", timeEntryModel.ErrInvalidTransition)
	}
	p.IsLocked = true
	return nil
}

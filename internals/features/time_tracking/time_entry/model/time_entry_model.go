package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	commonModel "kerjaku_backend/internals/features/common/model"
)

// Approval states
const (
	StatusDraft     = "draft"
	StatusSubmitted = "submitted"
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
)

// ErrInvalidTransition is returned when an approval action is attempted from
// a state that does not allow it.
var ErrInvalidTransition = errors.New("invalid status transition")

// TimeEntryModel is one clock-in/clock-out work session. The derived decimal
// fields are owned by the lifecycle calculator and recomputed on every
// mutation of clock times, breaks, rate, or the billable flag.
type TimeEntryModel struct {
	commonModel.OrgScoped

	UserID       uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:idx_entry_session,priority:1" json:"user_id"`
	ProjectID    *uuid.UUID `gorm:"type:uuid;index" json:"project_id,omitempty"`
	TaskID       *uuid.UUID `gorm:"type:uuid;index" json:"task_id,omitempty"`
	DepartmentID *uuid.UUID `gorm:"type:uuid" json:"department_id,omitempty"`

	Date     time.Time  `gorm:"type:date;not null;index;uniqueIndex:idx_entry_session,priority:2" json:"date"`
	ClockIn  time.Time  `gorm:"type:timestamptz;not null;uniqueIndex:idx_entry_session,priority:3" json:"clock_in"`
	ClockOut *time.Time `gorm:"type:timestamptz" json:"clock_out,omitempty"`

	// Derived by the calculator; never set by hand.
	RegularHours   decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0" json:"regular_hours"`
	OvertimeHours  decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0" json:"overtime_hours"`
	TotalHours     decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0" json:"total_hours"`
	BreakHours     decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0" json:"break_hours"`
	BillableAmount decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"billable_amount"`

	IsBillable bool             `gorm:"not null;default:true" json:"is_billable"`
	HourlyRate *decimal.Decimal `gorm:"type:numeric(8,2)" json:"hourly_rate,omitempty"`

	Description string `gorm:"type:text" json:"description,omitempty"`

	Status      string     `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`
	SubmittedAt *time.Time `gorm:"type:timestamptz" json:"submitted_at,omitempty"`

	ApprovedByID  *uuid.UUID `gorm:"type:uuid" json:"approved_by_id,omitempty"`
	ApprovedAt    *time.Time `gorm:"type:timestamptz" json:"approved_at,omitempty"`
	ApprovalNotes string     `gorm:"type:text" json:"approval_notes,omitempty"`

	ClockInLocation  datatypes.JSON `gorm:"type:jsonb" json:"clock_in_location,omitempty"`
	ClockOutLocation datatypes.JSON `gorm:"type:jsonb" json:"clock_out_location,omitempty"`
	IsRemote         bool           `gorm:"not null;default:false" json:"is_remote"`

	IsLocked         bool `gorm:"not null;default:false" json:"is_locked"`
	RequiresApproval bool `gorm:"not null;default:true" json:"requires_approval"`
}

func (TimeEntryModel) TableName() string {
	return "time_entries"
}

// IsActive reports whether the session is still running.
func (e *TimeEntryModel) IsActive() bool {
	return e.ClockOut == nil && !e.IsDeleted
}

/* =======================================================
   Approval state machine.
   draft → submitted → approved | rejected
   pending is a manager-queue sub-state of submitted.
   ======================================================= */

// Submit moves a draft entry into the review queue.
func (e *TimeEntryModel) Submit(now time.Time) error {
	if e.Status != StatusDraft {
		return fmt.Errorf("%w: submit from %s", ErrInvalidTransition, e.Status)
	}
	e.Status = StatusSubmitted
	e.SubmittedAt = &now
	return nil
}

// Approve finalizes a submitted/pending entry and locks it.
func (e *TimeEntryModel) Approve(approverID uuid.UUID, notes string, now time.Time) error {
	if e.Status != StatusSubmitted && e.Status != StatusPending {
		return fmt.Errorf("%w: approve from %s", ErrInvalidTransition, e.Status)
	}
	e.Status = StatusApproved
	e.ApprovedByID = &approverID
	e.ApprovedAt = &now
	e.ApprovalNotes = notes
	e.IsLocked = true
	return nil
}

// Reject records the decision without locking; the entry stays editable so
// it can be fixed and resubmitted via ResetToDraft.
func (e *TimeEntryModel) Reject(rejectorID uuid.UUID, notes string, now time.Time) error {
	if e.Status != StatusSubmitted && e.Status != StatusPending {
		return fmt.Errorf("%w: reject from %s", ErrInvalidTransition, e.Status)
	}
	e.Status = StatusRejected
	e.ApprovedByID = &rejectorID
	e.ApprovedAt = &now
	e.ApprovalNotes = notes
	return nil
}

// ResetToDraft re-opens a rejected entry for edits and resubmission.
func (e *TimeEntryModel) ResetToDraft() error {
	if e.Status != StatusRejected {
		return fmt.Errorf("%w: reset-to-draft from %s", ErrInvalidTransition, e.Status)
	}
	e.Status = StatusDraft
	e.SubmittedAt = nil
	e.ApprovedByID = nil
	e.ApprovedAt = nil
	e.ApprovalNotes = ""
	return nil
}

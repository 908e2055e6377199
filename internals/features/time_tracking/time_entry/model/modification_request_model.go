package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	commonModel "kerjaku_backend/internals/features/common/model"
)

// Modification request states (terminal once decided)
const (
	ModRequestPending  = "pending"
	ModRequestApproved = "approved"
	ModRequestRejected = "rejected"
)

// modifiableFields is the explicit allow-list of time entry fields a
// modification request may change.
var modifiableFields = map[string]struct{}{
	"clock_in":    {},
	"clock_out":   {},
	"description": {},
	"project_id":  {},
	"task_id":     {},
	"is_billable": {},
	"hourly_rate": {},
	"is_remote":   {},
}

// IsModifiableField reports whether requests may propose a change to field.
func IsModifiableField(field string) bool {
	_, ok := modifiableFields[field]
	return ok
}

// TimeModificationRequestModel proposes field-level changes to a submitted or
// approved entry without direct edit rights.
type TimeModificationRequestModel struct {
	commonModel.OrgScoped

	TimeEntryID   uuid.UUID `gorm:"type:uuid;not null;index" json:"time_entry_id"`
	RequestedByID uuid.UUID `gorm:"type:uuid;not null" json:"requested_by_id"`

	// field → proposed value, keys restricted to the allow-list
	RequestedChanges datatypes.JSON `gorm:"type:jsonb;not null" json:"requested_changes"`
	Reason           string         `gorm:"type:text" json:"reason,omitempty"`

	Status string `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`

	ReviewedByID *uuid.UUID `gorm:"type:uuid" json:"reviewed_by_id,omitempty"`
	ReviewedAt   *time.Time `gorm:"type:timestamptz" json:"reviewed_at,omitempty"`
	ReviewNotes  string     `gorm:"type:text" json:"review_notes,omitempty"`
}

func (TimeModificationRequestModel) TableName() string {
	return "time_modification_requests"
}

// MarkApproved records the review decision; applying the changes to the
// target entry is the service's job.
func (r *TimeModificationRequestModel) MarkApproved(reviewerID uuid.UUID, notes string, now time.Time) error {
	return r.decide(ModRequestApproved, reviewerID, notes, now)
}

func (r *TimeModificationRequestModel) MarkRejected(reviewerID uuid.UUID, notes string, now time.Time) error {
	return r.decide(ModRequestRejected, reviewerID, notes, now)
}

func (r *TimeModificationRequestModel) decide(status string, reviewerID uuid.UUID, notes string, now time.Time) error {
	if r.Status != ModRequestPending {
		return fmt.Errorf("%w: decide from %s", ErrInvalidTransition, r.Status)
	}
	r.Status = status
	r.ReviewedByID = &reviewerID
	r.ReviewedAt = &now
	r.ReviewNotes = notes
	return nil
}

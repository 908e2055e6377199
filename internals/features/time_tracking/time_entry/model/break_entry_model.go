package model

import (
	"time"

	"github.com/google/uuid"

	commonModel "kerjaku_backend/internals/features/common/model"
)

// Break types
const (
	BreakTypeShort    = "short_break"
	BreakTypeLunch    = "lunch"
	BreakTypePersonal = "personal"
	BreakTypeMeeting  = "meeting"
	BreakTypeOther    = "other"
)

// BreakEntryModel is a sub-interval within a time entry. At most one break
// per entry may be open at a time.
type BreakEntryModel struct {
	commonModel.Base

	TimeEntryID uuid.UUID `gorm:"type:uuid;not null;index" json:"time_entry_id"`

	BreakType string `gorm:"type:varchar(20);not null;default:'short_break'" json:"break_type" validate:"omitempty,oneof=short_break lunch personal meeting other"`

	StartTime time.Time  `gorm:"type:timestamptz;not null" json:"start_time"`
	EndTime   *time.Time `gorm:"type:timestamptz" json:"end_time,omitempty"`

	// Derived from start/end when unset.
	DurationMinutes *int `json:"duration_minutes,omitempty"`

	IsPaid bool   `gorm:"not null;default:false" json:"is_paid"`
	Notes  string `gorm:"type:text" json:"notes,omitempty"`
}

func (BreakEntryModel) TableName() string {
	return "break_entries"
}

// IsOpen reports whether the break has not ended yet.
func (b *BreakEntryModel) IsOpen() bool {
	return b.EndTime == nil && !b.IsDeleted
}

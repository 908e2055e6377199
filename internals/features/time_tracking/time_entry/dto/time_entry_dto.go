package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	timeEntryModel "kerjaku_backend/internals/features/time_tracking/time_entry/model"
)

// ClockInRequest — POST /api/u/time-entries/clock-in
type ClockInRequest struct {
	ProjectID   *uuid.UUID     `json:"project_id,omitempty"`
	TaskID      *uuid.UUID     `json:"task_id,omitempty"`
	Description string         `json:"description,omitempty"`
	IsRemote    bool           `json:"is_remote,omitempty"`
	Location    datatypes.JSON `json:"location,omitempty"`
}

// ClockOutRequest — POST /api/u/time-entries/clock-out
type ClockOutRequest struct {
	Location datatypes.JSON `json:"location,omitempty"`
}

// StartBreakRequest — POST /api/u/time-entries/:id/start-break
type StartBreakRequest struct {
	BreakType string `json:"break_type,omitempty" validate:"omitempty,oneof=short_break lunch personal meeting other"`
	IsPaid    bool   `json:"is_paid,omitempty"`
}

// CreateTimeEntryRequest — manual (backdated) entry, both clock times given
type CreateTimeEntryRequest struct {
	ProjectID   *uuid.UUID       `json:"project_id,omitempty"`
	TaskID      *uuid.UUID       `json:"task_id,omitempty"`
	Date        time.Time        `json:"date" validate:"required"`
	ClockIn     time.Time        `json:"clock_in" validate:"required"`
	ClockOut    time.Time        `json:"clock_out" validate:"required"`
	Description string           `json:"description,omitempty"`
	IsBillable  *bool            `json:"is_billable,omitempty"`
	HourlyRate  *decimal.Decimal `json:"hourly_rate,omitempty"`
	IsRemote    bool             `json:"is_remote,omitempty"`
}

func (r *CreateTimeEntryRequest) ToModel(orgID, userID uuid.UUID) *timeEntryModel.TimeEntryModel {
	clockOut := r.ClockOut
	e := &timeEntryModel.TimeEntryModel{
		UserID:      userID,
		ProjectID:   r.ProjectID,
		TaskID:      r.TaskID,
		Date:        r.Date,
		ClockIn:     r.ClockIn,
		ClockOut:    &clockOut,
		Description: strings.TrimSpace(r.Description),
		Status:      timeEntryModel.StatusDraft,
		IsBillable:  true,
		HourlyRate:  r.HourlyRate,
		IsRemote:    r.IsRemote,
	}
	e.OrganizationID = orgID
	if r.IsBillable != nil {
		e.IsBillable = *r.IsBillable
	}
	return e
}

// UpdateTimeEntryRequest — partial edit of an unlocked entry
type UpdateTimeEntryRequest struct {
	ProjectID   *uuid.UUID       `json:"project_id,omitempty"`
	TaskID      *uuid.UUID       `json:"task_id,omitempty"`
	ClockIn     *time.Time       `json:"clock_in,omitempty"`
	ClockOut    *time.Time       `json:"clock_out,omitempty"`
	Description *string          `json:"description,omitempty"`
	IsBillable  *bool            `json:"is_billable,omitempty"`
	HourlyRate  *decimal.Decimal `json:"hourly_rate,omitempty"`
	IsRemote    *bool            `json:"is_remote,omitempty"`
}

func (r *UpdateTimeEntryRequest) ApplyToModel(e *timeEntryModel.TimeEntryModel) {
	if r.ProjectID != nil {
		e.ProjectID = r.ProjectID
	}
	if r.TaskID != nil {
		e.TaskID = r.TaskID
	}
	if r.ClockIn != nil {
		e.ClockIn = *r.ClockIn
	}
	if r.ClockOut != nil {
		e.ClockOut = r.ClockOut
	}
	if r.Description != nil {
		e.Description = strings.TrimSpace(*r.Description)
	}
	if r.IsBillable != nil {
		e.IsBillable = *r.IsBillable
	}
	if r.HourlyRate != nil {
		e.HourlyRate = r.HourlyRate
	}
	if r.IsRemote != nil {
		e.IsRemote = *r.IsRemote
	}
}

// ReviewRequest — approve/reject bodies
type ReviewRequest struct {
	Notes string `json:"notes,omitempty"`
}

// ModificationRequestRequest — POST /api/u/time-entries/:id/modification-requests
type ModificationRequestRequest struct {
	Changes map[string]any `json:"changes" validate:"required"`
	Reason  string         `json:"reason,omitempty"`
}

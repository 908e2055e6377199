package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	timesheetModel "kerjaku_backend/internals/features/time_tracking/timesheet_period/model"
)

type CreateTimesheetPeriodRequest struct {
	Name               string     `json:"name" validate:"required,min=2,max=100"`
	StartDate          time.Time  `json:"start_date" validate:"required"`
	EndDate            time.Time  `json:"end_date" validate:"required"`
	SubmissionDeadline *time.Time `json:"submission_deadline,omitempty"`
	ApprovalDeadline   *time.Time `json:"approval_deadline,omitempty"`
}

func (r *CreateTimesheetPeriodRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

func (r *CreateTimesheetPeriodRequest) ToModel(orgID uuid.UUID) *timesheetModel.TimesheetPeriodModel {
	p := &timesheetModel.TimesheetPeriodModel{
		Name:               r.Name,
		StartDate:          r.StartDate,
		EndDate:            r.EndDate,
		IsOpen:             true,
		SubmissionDeadline: r.SubmissionDeadline,
		ApprovalDeadline:   r.ApprovalDeadline,
	}
	p.OrganizationID = orgID
	return p
}

type UpdateTimesheetPeriodRequest struct {
	Name               *string    `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	SubmissionDeadline *time.Time `json:"submission_deadline,omitempty"`
	ApprovalDeadline   *time.Time `json:"approval_deadline,omitempty"`
}

func (r *UpdateTimesheetPeriodRequest) ApplyToModel(p *timesheetModel.TimesheetPeriodModel) {
	if r.Name != nil {
		p.Name = strings.TrimSpace(*r.Name)
	}
	if r.SubmissionDeadline != nil {
		p.SubmissionDeadline = r.SubmissionDeadline
	}
	if r.ApprovalDeadline != nil {
		p.ApprovalDeadline = r.ApprovalDeadline
	}
}

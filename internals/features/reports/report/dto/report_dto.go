package dto

import (
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"

	reportModel "kerjaku_backend/internals/features/reports/report/model"
)

type CreateReportRequest struct {
	Name        string         `json:"name" validate:"required,min=2,max=150"`
	Description string         `json:"description,omitempty"`
	ReportType  string         `json:"report_type" validate:"required"`
	Filters     datatypes.JSON `json:"filters,omitempty"`
	Columns     datatypes.JSON `json:"columns,omitempty"`
	SharedWith  []string       `json:"shared_with,omitempty" validate:"omitempty,dive,email"`
	IsScheduled bool           `json:"is_scheduled,omitempty"`
	Schedule    string         `json:"schedule,omitempty" validate:"omitempty,oneof=daily weekly monthly"`
}

func (r *CreateReportRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
}

func (r *CreateReportRequest) ToModel(orgID, createdBy uuid.UUID) *reportModel.ReportModel {
	m := &reportModel.ReportModel{
		Name:        r.Name,
		Description: r.Description,
		ReportType:  r.ReportType,
		CreatedByID: createdBy,
		Filters:     r.Filters,
		Columns:     r.Columns,
		SharedWith:  pq.StringArray(r.SharedWith),
		IsScheduled: r.IsScheduled,
		Schedule:    r.Schedule,
	}
	m.OrganizationID = orgID
	return m
}

type UpdateReportRequest struct {
	Name        *string        `json:"name,omitempty" validate:"omitempty,min=2,max=150"`
	Description *string        `json:"description,omitempty"`
	Filters     datatypes.JSON `json:"filters,omitempty"`
	Columns     datatypes.JSON `json:"columns,omitempty"`
	SharedWith  []string       `json:"shared_with,omitempty" validate:"omitempty,dive,email"`
	IsScheduled *bool          `json:"is_scheduled,omitempty"`
	Schedule    *string        `json:"schedule,omitempty" validate:"omitempty,oneof=daily weekly monthly"`
}

func (r *UpdateReportRequest) ApplyToModel(m *reportModel.ReportModel) {
	if r.Name != nil {
		m.Name = strings.TrimSpace(*r.Name)
	}
	if r.Description != nil {
		m.Description = strings.TrimSpace(*r.Description)
	}
	if r.Filters != nil {
		m.Filters = r.Filters
	}
	if r.Columns != nil {
		m.Columns = r.Columns
	}
	if r.SharedWith != nil {
		m.SharedWith = pq.StringArray(r.SharedWith)
	}
	if r.IsScheduled != nil {
		m.IsScheduled = *r.IsScheduled
	}
	if r.Schedule != nil {
		m.Schedule = *r.Schedule
	}
}

package dto

import (
	"strings"

	"github.com/google/uuid"

	teamModel "kerjaku_backend/internals/features/organizations/team/model"
)

type CreateTeamRequest struct {
	Name         string     `json:"name" validate:"required,min=2,max=100"`
	Description  string     `json:"description,omitempty"`
	DepartmentID *uuid.UUID `json:"department_id,omitempty"`
	TeamLeadID   *uuid.UUID `json:"team_lead_id,omitempty"`
}

func (r *CreateTeamRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
}

func (r *CreateTeamRequest) ToModel() *teamModel.TeamModel {
	return &teamModel.TeamModel{
		Name:         r.Name,
		Description:  r.Description,
		DepartmentID: r.DepartmentID,
		TeamLeadID:   r.TeamLeadID,
		IsActive:     true,
	}
}

type UpdateTeamRequest struct {
	Name         *string    `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Description  *string    `json:"description,omitempty"`
	DepartmentID *uuid.UUID `json:"department_id,omitempty"`
	TeamLeadID   *uuid.UUID `json:"team_lead_id,omitempty"`
	IsActive     *bool      `json:"is_active,omitempty"`
}

func (r *UpdateTeamRequest) ApplyToModel(m *teamModel.TeamModel) {
	if r.Name != nil {
		m.Name = strings.TrimSpace(*r.Name)
	}
	if r.Description != nil {
		m.Description = strings.TrimSpace(*r.Description)
	}
	if r.DepartmentID != nil {
		m.DepartmentID = r.DepartmentID
	}
	if r.TeamLeadID != nil {
		m.TeamLeadID = r.TeamLeadID
	}
	if r.IsActive != nil {
		m.IsActive = *r.IsActive
	}
}

type AddTeamMemberRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
}

package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	taskModel "kerjaku_backend/internals/features/projects/task/model"
)

type CreateTaskRequest struct {
	ProjectID      uuid.UUID        `json:"project_id" validate:"required"`
	Title          string           `json:"title" validate:"required,min=2,max=200"`
	Description    string           `json:"description,omitempty"`
	AssignedToID   *uuid.UUID       `json:"assigned_to_id,omitempty"`
	Priority       string           `json:"priority,omitempty" validate:"omitempty,oneof=low medium high urgent"`
	EstimatedHours *decimal.Decimal `json:"estimated_hours,omitempty"`
	DueDate        *time.Time       `json:"due_date,omitempty"`
}

func (r *CreateTaskRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
}

func (r *CreateTaskRequest) ToModel(createdBy uuid.UUID) *taskModel.TaskModel {
	m := &taskModel.TaskModel{
		ProjectID:      r.ProjectID,
		Title:          r.Title,
		Description:    r.Description,
		AssignedToID:   r.AssignedToID,
		CreatedByID:    &createdBy,
		Status:         "todo",
		Priority:       "medium",
		EstimatedHours: r.EstimatedHours,
		DueDate:        r.DueDate,
	}
	if r.Priority != "" {
		m.Priority = r.Priority
	}
	return m
}

type UpdateTaskRequest struct {
	Title          *string          `json:"title,omitempty" validate:"omitempty,min=2,max=200"`
	Description    *string          `json:"description,omitempty"`
	AssignedToID   *uuid.UUID       `json:"assigned_to_id,omitempty"`
	Status         *string          `json:"status,omitempty" validate:"omitempty,oneof=todo in_progress review done cancelled"`
	Priority       *string          `json:"priority,omitempty" validate:"omitempty,oneof=low medium high urgent"`
	EstimatedHours *decimal.Decimal `json:"estimated_hours,omitempty"`
	DueDate        *time.Time       `json:"due_date,omitempty"`
}

func (r *UpdateTaskRequest) ApplyToModel(m *taskModel.TaskModel) {
	if r.Title != nil {
		m.Title = strings.TrimSpace(*r.Title)
	}
	if r.Description != nil {
		m.Description = *r.Description
	}
	if r.AssignedToID != nil {
		m.AssignedToID = r.AssignedToID
	}
	if r.Status != nil {
		m.Status = *r.Status
	}
	if r.Priority != nil {
		m.Priority = *r.Priority
	}
	if r.EstimatedHours != nil {
		m.EstimatedHours = r.EstimatedHours
	}
	if r.DueDate != nil {
		m.DueDate = r.DueDate
	}
}

package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	commonModel "kerjaku_backend/internals/features/common/model"
)

type TaskModel struct {
	commonModel.OrgScoped

	ProjectID uuid.UUID `gorm:"type:uuid;not null;index" json:"project_id"`

	Title       string `gorm:"size:200;not null" json:"title" validate:"required,min=2,max=200"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	AssignedToID *uuid.UUID `gorm:"type:uuid;index" json:"assigned_to_id,omitempty"`
	CreatedByID  *uuid.UUID `gorm:"type:uuid" json:"created_by_id,omitempty"`

	Status   string `gorm:"type:varchar(20);not null;default:'todo'" json:"status" validate:"omitempty,oneof=todo in_progress review done cancelled"`
	Priority string `gorm:"type:varchar(10);not null;default:'medium'" json:"priority" validate:"omitempty,oneof=low medium high urgent"`

	EstimatedHours *decimal.Decimal `gorm:"type:numeric(6,2)" json:"estimated_hours,omitempty"`
	DueDate        *time.Time       `gorm:"type:date" json:"due_date,omitempty"`
}

func (TaskModel) TableName() string {
	return "tasks"
}

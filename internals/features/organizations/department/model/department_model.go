package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	commonModel "kerjaku_backend/internals/features/common/model"
)

// DepartmentModel is an org-scoped unit that can nest under a parent.
type DepartmentModel struct {
	commonModel.OrgScoped

	Name string `gorm:"size:100;not null" json:"name" validate:"required,min=2,max=100"`
	Code string `gorm:"size:20" json:"code,omitempty" validate:"omitempty,max=20"`

	ParentID  *uuid.UUID `gorm:"type:uuid;index" json:"parent_id,omitempty"`
	ManagerID *uuid.UUID `gorm:"type:uuid;index" json:"manager_id,omitempty"`

	Budget *decimal.Decimal `gorm:"type:numeric(12,2)" json:"budget,omitempty"`

	Status string `gorm:"type:varchar(20);not null;default:'active'" json:"status" validate:"omitempty,oneof=active inactive"`
}

func (DepartmentModel) TableName() string {
	return "departments"
}

package dto

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	deptModel "kerjaku_backend/internals/features/organizations/department/model"
)

type CreateDepartmentRequest struct {
	Name      string           `json:"name" validate:"required,min=2,max=100"`
	Code      string           `json:"code,omitempty" validate:"omitempty,max=20"`
	ParentID  *uuid.UUID       `json:"parent_id,omitempty"`
	ManagerID *uuid.UUID       `json:"manager_id,omitempty"`
	Budget    *decimal.Decimal `json:"budget,omitempty"`
}

func (r *CreateDepartmentRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Code = strings.ToUpper(strings.TrimSpace(r.Code))
}

func (r *CreateDepartmentRequest) ToModel() *deptModel.DepartmentModel {
	return &deptModel.DepartmentModel{
		Name:      r.Name,
		Code:      r.Code,
		ParentID:  r.ParentID,
		ManagerID: r.ManagerID,
		Budget:    r.Budget,
		Status:    "active",
	}
}

type UpdateDepartmentRequest struct {
	Name      *string          `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Code      *string          `json:"code,omitempty" validate:"omitempty,max=20"`
	ParentID  *uuid.UUID       `json:"parent_id,omitempty"`
	ManagerID *uuid.UUID       `json:"manager_id,omitempty"`
	Budget    *decimal.Decimal `json:"budget,omitempty"`
	Status    *string          `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
}

func (r *UpdateDepartmentRequest) ApplyToModel(m *deptModel.DepartmentModel) {
	if r.Name != nil {
		m.Name = strings.TrimSpace(*r.Name)
	}
	if r.Code != nil {
		m.Code = strings.ToUpper(strings.TrimSpace(*r.Code))
	}
	if r.ParentID != nil {
		m.ParentID = r.ParentID
	}
	if r.ManagerID != nil {
		m.ManagerID = r.ManagerID
	}
	if r.Budget != nil {
		m.Budget = r.Budget
	}
	if r.Status != nil {
		m.Status = *r.Status
	}
}

package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	projectModel "kerjaku_backend/internals/features/projects/project/model"
)

/* =======================================================
   CLIENT
   ======================================================= */

type CreateClientRequest struct {
	Name             string           `json:"name" validate:"required,min=2,max=100"`
	ContactName      string           `json:"contact_name,omitempty"`
	ContactEmail     string           `json:"contact_email,omitempty" validate:"omitempty,email"`
	Phone            string           `json:"phone,omitempty"`
	Address          string           `json:"address,omitempty"`
	BillingRate      *decimal.Decimal `json:"billing_rate,omitempty"`
	AccountManagerID *uuid.UUID       `json:"account_manager_id,omitempty"`
}

func (r *CreateClientRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.ContactEmail = strings.TrimSpace(strings.ToLower(r.ContactEmail))
}

func (r *CreateClientRequest) ToModel() *projectModel.ClientModel {
	return &projectModel.ClientModel{
		Name:             r.Name,
		ContactName:      r.ContactName,
		ContactEmail:     r.ContactEmail,
		Phone:            r.Phone,
		Address:          r.Address,
		BillingRate:      r.BillingRate,
		AccountManagerID: r.AccountManagerID,
		Status:           "active",
	}
}

type UpdateClientRequest struct {
	Name             *string          `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	ContactName      *string          `json:"contact_name,omitempty"`
	ContactEmail     *string          `json:"contact_email,omitempty" validate:"omitempty,email"`
	Phone            *string          `json:"phone,omitempty"`
	Address          *string          `json:"address,omitempty"`
	BillingRate      *decimal.Decimal `json:"billing_rate,omitempty"`
	AccountManagerID *uuid.UUID       `json:"account_manager_id,omitempty"`
	Status           *string          `json:"status,omitempty" validate:"omitempty,oneof=active inactive archived"`
}

func (r *UpdateClientRequest) ApplyToModel(m *projectModel.ClientModel) {
	if r.Name != nil {
		m.Name = strings.TrimSpace(*r.Name)
	}
	if r.ContactName != nil {
		m.ContactName = *r.ContactName
	}
	if r.ContactEmail != nil {
		m.ContactEmail = strings.TrimSpace(strings.ToLower(*r.ContactEmail))
	}
	if r.Phone != nil {
		m.Phone = *r.Phone
	}
	if r.Address != nil {
		m.Address = *r.Address
	}
	if r.BillingRate != nil {
		m.BillingRate = r.BillingRate
	}
	if r.AccountManagerID != nil {
		m.AccountManagerID = r.AccountManagerID
	}
	if r.Status != nil {
		m.Status = *r.Status
	}
}

/* =======================================================
   PROJECT
   ======================================================= */

type CreateProjectRequest struct {
	Name             string           `json:"name" validate:"required,min=2,max=150"`
	Code             string           `json:"code,omitempty" validate:"omitempty,max=20"`
	Description      string           `json:"description,omitempty"`
	Category         string           `json:"category,omitempty"`
	ClientID         *uuid.UUID       `json:"client_id,omitempty"`
	DepartmentID     *uuid.UUID       `json:"department_id,omitempty"`
	ProjectManagerID *uuid.UUID       `json:"project_manager_id,omitempty"`
	StartDate        *time.Time       `json:"start_date,omitempty"`
	EndDate          *time.Time       `json:"end_date,omitempty"`
	Deadline         *time.Time       `json:"deadline,omitempty"`
	BudgetHours      *decimal.Decimal `json:"budget_hours,omitempty"`
	BudgetAmount     *decimal.Decimal `json:"budget_amount,omitempty"`
	HourlyRate       *decimal.Decimal `json:"hourly_rate,omitempty"`
	IsBillable       *bool            `json:"is_billable,omitempty"`
	BillingType      string           `json:"billing_type,omitempty" validate:"omitempty,oneof=hourly fixed non_billable"`
	Priority         string           `json:"priority,omitempty" validate:"omitempty,oneof=low medium high urgent"`
}

func (r *CreateProjectRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Code = strings.ToUpper(strings.TrimSpace(r.Code))
}

func (r *CreateProjectRequest) ToModel() *projectModel.ProjectModel {
	m := &projectModel.ProjectModel{
		Name:              r.Name,
		Code:              r.Code,
		Description:       r.Description,
		Category:          r.Category,
		ClientID:          r.ClientID,
		DepartmentID:      r.DepartmentID,
		ProjectManagerID:  r.ProjectManagerID,
		StartDate:         r.StartDate,
		EndDate:           r.EndDate,
		Deadline:          r.Deadline,
		BudgetHours:       r.BudgetHours,
		BudgetAmount:      r.BudgetAmount,
		HourlyRate:        r.HourlyRate,
		IsBillable:        true,
		BillingType:       "hourly",
		Status:            projectModel.ProjectStatusPlanning,
		Priority:          "medium",
		AllowTimeTracking: true,
	}
	if r.IsBillable != nil {
		m.IsBillable = *r.IsBillable
	}
	if r.BillingType != "" {
		m.BillingType = r.BillingType
	}
	if r.Priority != "" {
		m.Priority = r.Priority
	}
	return m
}

type UpdateProjectRequest struct {
	Name               *string          `json:"name,omitempty" validate:"omitempty,min=2,max=150"`
	Code               *string          `json:"code,omitempty" validate:"omitempty,max=20"`
	Description        *string          `json:"description,omitempty"`
	Category           *string          `json:"category,omitempty"`
	ClientID           *uuid.UUID       `json:"client_id,omitempty"`
	DepartmentID       *uuid.UUID       `json:"department_id,omitempty"`
	ProjectManagerID   *uuid.UUID       `json:"project_manager_id,omitempty"`
	StartDate          *time.Time       `json:"start_date,omitempty"`
	EndDate            *time.Time       `json:"end_date,omitempty"`
	Deadline           *time.Time       `json:"deadline,omitempty"`
	BudgetHours        *decimal.Decimal `json:"budget_hours,omitempty"`
	BudgetAmount       *decimal.Decimal `json:"budget_amount,omitempty"`
	HourlyRate         *decimal.Decimal `json:"hourly_rate,omitempty"`
	IsBillable         *bool            `json:"is_billable,omitempty"`
	BillingType        *string          `json:"billing_type,omitempty" validate:"omitempty,oneof=hourly fixed non_billable"`
	Status             *string          `json:"status,omitempty" validate:"omitempty,oneof=planning active in_progress on_hold completed cancelled"`
	Priority           *string          `json:"priority,omitempty" validate:"omitempty,oneof=low medium high urgent"`
	ProgressPercentage *int             `json:"progress_percentage,omitempty" validate:"omitempty,min=0,max=100"`
	AllowTimeTracking  *bool            `json:"allow_time_tracking,omitempty"`
}

func (r *UpdateProjectRequest) ApplyToModel(m *projectModel.ProjectModel) {
	if r.Name != nil {
		m.Name = strings.TrimSpace(*r.Name)
	}
	if r.Code != nil {
		m.Code = strings.ToUpper(strings.TrimSpace(*r.Code))
	}
	if r.Description != nil {
		m.Description = *r.Description
	}
	if r.Category != nil {
		m.Category = *r.Category
	}
	if r.ClientID != nil {
		m.ClientID = r.ClientID
	}
	if r.DepartmentID != nil {
		m.DepartmentID = r.DepartmentID
	}
	if r.ProjectManagerID != nil {
		m.ProjectManagerID = r.ProjectManagerID
	}
	if r.StartDate != nil {
		m.StartDate = r.StartDate
	}
	if r.EndDate != nil {
		m.EndDate = r.EndDate
	}
	if r.Deadline != nil {
		m.Deadline = r.Deadline
	}
	if r.BudgetHours != nil {
		m.BudgetHours = r.BudgetHours
	}
	if r.BudgetAmount != nil {
		m.BudgetAmount = r.BudgetAmount
	}
	if r.HourlyRate != nil {
		m.HourlyRate = r.HourlyRate
	}
	if r.IsBillable != nil {
		m.IsBillable = *r.IsBillable
	}
	if r.BillingType != nil {
		m.BillingType = *r.BillingType
	}
	if r.Status != nil {
		m.Status = *r.Status
	}
	if r.Priority != nil {
		m.Priority = *r.Priority
	}
	if r.ProgressPercentage != nil {
		m.ProgressPercentage = *r.ProgressPercentage
	}
	if r.AllowTimeTracking != nil {
		m.AllowTimeTracking = *r.AllowTimeTracking
	}
}

/* =======================================================
   MEMBERSHIP
   ======================================================= */

type AddProjectMemberRequest struct {
	UserID       uuid.UUID        `json:"user_id" validate:"required"`
	Role         string           `json:"role,omitempty" validate:"omitempty,max=30"`
	AllocationPc *int             `json:"allocation_pc,omitempty" validate:"omitempty,min=0,max=100"`
	HourlyRate   *decimal.Decimal `json:"hourly_rate,omitempty"`
	StartDate    *time.Time       `json:"start_date,omitempty"`
	EndDate      *time.Time       `json:"end_date,omitempty"`
}

func (r *AddProjectMemberRequest) ToModel(projectID uuid.UUID) *projectModel.ProjectMembershipModel {
	m := &projectModel.ProjectMembershipModel{
		ProjectID:    projectID,
		UserID:       r.UserID,
		Role:         "member",
		AllocationPc: 100,
		HourlyRate:   r.HourlyRate,
		StartDate:    r.StartDate,
		EndDate:      r.EndDate,
		IsActive:     true,
	}
	if r.Role != "" {
		m.Role = r.Role
	}
	if r.AllocationPc != nil {
		m.AllocationPc = *r.AllocationPc
	}
	return m
}

package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	uModel "kerjaku_backend/internals/features/users/user/model"
)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

// CreateUserRequest — register / create by admin
type CreateUserRequest struct {
	UserName     string           `json:"user_name" validate:"required,min=3,max=50"`
	FullName     string           `json:"full_name" validate:"required,min=3,max=100"`
	Email        string           `json:"email" validate:"required,email,max=255"`
	Password     string           `json:"password" validate:"required,min=8"`
	Role         string           `json:"role" validate:"omitempty,oneof=employee contractor team_lead manager admin client_admin global_admin"`
	EmployeeID   string           `json:"employee_id,omitempty" validate:"omitempty,max=20"`
	DepartmentID *uuid.UUID       `json:"department_id,omitempty"`
	ManagerID    *uuid.UUID       `json:"manager_id,omitempty"`
	HourlyRate   *decimal.Decimal `json:"hourly_rate,omitempty"`
	HireDate     *time.Time       `json:"hire_date,omitempty"`
	IsActive     *bool            `json:"is_active,omitempty"`
}

// Normalize — trim & basic normalization
func (r *CreateUserRequest) Normalize() {
	r.UserName = strings.TrimSpace(r.UserName)
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	r.Role = strings.TrimSpace(r.Role)
	r.EmployeeID = strings.ToUpper(strings.TrimSpace(r.EmployeeID))
}

// ToModel — convert to model (hash password in the controller!)
func (r *CreateUserRequest) ToModel() *uModel.UserModel {
	m := &uModel.UserModel{
		UserName:     r.UserName,
		FullName:     r.FullName,
		Email:        r.Email,
		Password:     r.Password, // hashed by the controller
		Role:         r.Role,
		EmployeeID:   r.EmployeeID,
		DepartmentID: r.DepartmentID,
		ManagerID:    r.ManagerID,
		HourlyRate:   r.HourlyRate,
		HireDate:     r.HireDate,
		IsActive:     true,
	}
	if r.IsActive != nil {
		m.IsActive = *r.IsActive
	}
	return m
}

// UpdateUserRequest — partial update (pointers to tell omit from null)
type UpdateUserRequest struct {
	UserName     *string          `json:"user_name,omitempty" validate:"omitempty,min=3,max=50"`
	FullName     *string          `json:"full_name,omitempty" validate:"omitempty,min=3,max=100"`
	Email        *string          `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Role         *string          `json:"role,omitempty" validate:"omitempty,oneof=employee contractor team_lead manager admin client_admin global_admin"`
	EmployeeID   *string          `json:"employee_id,omitempty" validate:"omitempty,max=20"`
	DepartmentID *uuid.UUID       `json:"department_id,omitempty"`
	ManagerID    *uuid.UUID       `json:"manager_id,omitempty"`
	HourlyRate   *decimal.Decimal `json:"hourly_rate,omitempty"`
	Salary       *decimal.Decimal `json:"salary,omitempty"`
	HireDate     *time.Time       `json:"hire_date,omitempty"`
	IsActive     *bool            `json:"is_active,omitempty"`
}

func (r *UpdateUserRequest) Normalize() {
	if r.UserName != nil {
		v := strings.TrimSpace(*r.UserName)
		r.UserName = &v
	}
	if r.FullName != nil {
		v := strings.TrimSpace(*r.FullName)
		r.FullName = &v
	}
	if r.Email != nil {
		v := strings.TrimSpace(strings.ToLower(*r.Email))
		r.Email = &v
	}
	if r.Role != nil {
		v := strings.TrimSpace(*r.Role)
		r.Role = &v
	}
	if r.EmployeeID != nil {
		v := strings.ToUpper(strings.TrimSpace(*r.EmployeeID))
		r.EmployeeID = &v
	}
}

// ApplyToModel — apply the partial changes onto an existing model
func (r *UpdateUserRequest) ApplyToModel(m *uModel.UserModel) {
	if r.UserName != nil {
		m.UserName = *r.UserName
	}
	if r.FullName != nil {
		m.FullName = *r.FullName
	}
	if r.Email != nil {
		m.Email = *r.Email
	}
	if r.Role != nil {
		m.Role = *r.Role
	}
	if r.EmployeeID != nil {
		m.EmployeeID = *r.EmployeeID
	}
	if r.DepartmentID != nil {
		m.DepartmentID = r.DepartmentID
	}
	if r.ManagerID != nil {
		m.ManagerID = r.ManagerID
	}
	if r.HourlyRate != nil {
		m.HourlyRate = r.HourlyRate
	}
	if r.Salary != nil {
		m.Salary = r.Salary
	}
	if r.HireDate != nil {
		m.HireDate = r.HireDate
	}
	if r.IsActive != nil {
		m.IsActive = *r.IsActive
	}
}

// UpdateComplianceRequest — PATCH /users/me/compliance
type UpdateComplianceRequest struct {
	MaxHoursPerDay         *int             `json:"max_hours_per_day,omitempty" validate:"omitempty,min=1,max=24"`
	MaxHoursPerWeek        *int             `json:"max_hours_per_week,omitempty" validate:"omitempty,min=1,max=168"`
	MaxConsecutiveDays     *int             `json:"max_consecutive_days,omitempty" validate:"omitempty,min=1,max=14"`
	RequireBreaks          *bool            `json:"require_breaks,omitempty"`
	BreakAfterHours        *int             `json:"break_after_hours,omitempty" validate:"omitempty,min=1,max=24"`
	OvertimeRateMultiplier *decimal.Decimal `json:"overtime_rate_multiplier,omitempty"`
}

func (r *UpdateComplianceRequest) ApplyToModel(m *uModel.ComplianceSettingsModel) {
	if r.MaxHoursPerDay != nil {
		m.MaxHoursPerDay = *r.MaxHoursPerDay
	}
	if r.MaxHoursPerWeek != nil {
		m.MaxHoursPerWeek = *r.MaxHoursPerWeek
	}
	if r.MaxConsecutiveDays != nil {
		m.MaxConsecutiveDays = *r.MaxConsecutiveDays
	}
	if r.RequireBreaks != nil {
		m.RequireBreaks = *r.RequireBreaks
	}
	if r.BreakAfterHours != nil {
		m.BreakAfterHours = *r.BreakAfterHours
	}
	if r.OvertimeRateMultiplier != nil {
		m.OvertimeRateMultiplier = *r.OvertimeRateMultiplier
	}
}

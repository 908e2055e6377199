package model

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	commonModel "kerjaku_backend/internals/features/common/model"
)

// Validator instance
var validate = validator.New()

// UserModel represents the users table
type UserModel struct {
	commonModel.Base

	UserName string `gorm:"size:50;not null" json:"user_name" validate:"required,min=3,max=50"`
	FullName string `gorm:"size:100;not null" json:"full_name" validate:"required,min=3,max=100"`
	Email    string `gorm:"size:255;unique;not null" json:"email" validate:"required,email"`
	Password string `gorm:"not null" json:"password,omitempty" validate:"required,min=8"`

	// Tenant & org structure
	OrganizationID *uuid.UUID `gorm:"type:uuid;index" json:"organization_id,omitempty"`
	DepartmentID   *uuid.UUID `gorm:"type:uuid;index" json:"department_id,omitempty"`
	ManagerID      *uuid.UUID `gorm:"type:uuid;index" json:"manager_id,omitempty"`

	// Role (membership role is authoritative; this is the default claim)
	Role string `gorm:"type:varchar(20);not null;default:'employee'" json:"role" validate:"omitempty,oneof=employee contractor team_lead manager admin client_admin global_admin"`

	// Employment
	EmployeeID      string     `gorm:"size:20" json:"employee_id,omitempty"`
	HireDate        *time.Time `gorm:"type:date" json:"hire_date,omitempty"`
	TerminationDate *time.Time `gorm:"type:date" json:"termination_date,omitempty"`

	// Compensation (fixed-point; never float for money)
	HourlyRate *decimal.Decimal `gorm:"type:numeric(8,2)" json:"hourly_rate,omitempty"`
	Salary     *decimal.Decimal `gorm:"type:numeric(10,2)" json:"salary,omitempty"`
	Currency   string           `gorm:"size:3;not null;default:'USD'" json:"currency"`

	IsActive bool `gorm:"not null;default:true" json:"is_active"`
}

func (UserModel) TableName() string {
	return "users"
}

// SetDefaultValues fills defaults before validation
func (u *UserModel) SetDefaultValues() {
	if u.Role == "" {
		u.Role = "employee"
	}
	if u.Currency == "" {
		u.Currency = "USD"
	}
}

// Validate checks the input against the declared rules
func (u *UserModel) Validate() error {
	u.SetDefaultValues()

	if err := validate.Struct(u); err != nil {
		return formatValidationError(err)
	}
	return nil
}

func formatValidationError(err error) error {
	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		errorMessages := make(map[string]string)
		for _, fieldErr := range validationErrs {
			switch fieldErr.Tag() {
			case "required":
				errorMessages[fieldErr.Field()] = fieldErr.Field() + " is required."
			case "email":
				errorMessages[fieldErr.Field()] = "Invalid email format."
			case "min":
				errorMessages[fieldErr.Field()] = fieldErr.Field() + " must be at least " + fieldErr.Param() + " characters."
			case "max":
				errorMessages[fieldErr.Field()] = fieldErr.Field() + " must be under " + fieldErr.Param() + " characters."
			case "oneof":
				errorMessages[fieldErr.Field()] = fieldErr.Field() + " must be one of " + fieldErr.Param() + "."
			default:
				errorMessages[fieldErr.Field()] = "Invalid format."
			}
		}
		return errors.New(formatErrorMessage(errorMessages))
	}
	return err
}

func formatErrorMessage(errors map[string]string) string {
	var msg string
	for field, errorMsg := range errors {
		msg += field + ": " + errorMsg + "\n"
	}
	return msg
}

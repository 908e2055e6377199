package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	commonModel "kerjaku_backend/internals/features/common/model"
)

type ClientModel struct {
	commonModel.OrgScoped

	Name         string `gorm:"size:100;not null" json:"name" validate:"required,min=2,max=100"`
	ContactName  string `gorm:"size:100" json:"contact_name,omitempty"`
	ContactEmail string `gorm:"size:255" json:"contact_email,omitempty" validate:"omitempty,email"`
	Phone        string `gorm:"size:30" json:"phone,omitempty"`
	Address      string `gorm:"type:text" json:"address,omitempty"`

	BillingRate      *decimal.Decimal `gorm:"type:numeric(8,2)" json:"billing_rate,omitempty"`
	AccountManagerID *uuid.UUID       `gorm:"type:uuid;index" json:"account_manager_id,omitempty"`

	Status string `gorm:"type:varchar(20);not null;default:'active'" json:"status" validate:"omitempty,oneof=active inactive archived"`
}

func (ClientModel) TableName() string {
	return "clients"
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =======================================================
   Shared embedded structs for all tenant entities.
   Soft delete is flag-based (is_deleted + deleted_at) so
   history stays queryable for audits and reports.
   ======================================================= */

// Base carries the UUID key, timestamps, and soft-delete flags.
// No DB-side ID default: gen_random_uuid() in the column DDL breaks
// sqlite migration, and BeforeCreate fills the ID on every dialect.
type Base struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	IsDeleted bool       `gorm:"not null;default:false;index" json:"-"`
	DeletedAt *time.Time `json:"-"`
}

// BeforeCreate fills the ID client-side.
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// MarkDeleted flips the soft-delete flags; caller persists.
func (b *Base) MarkDeleted() {
	now := time.Now()
	b.IsDeleted = true
	b.DeletedAt = &now
}

// OrgScoped is Base plus the tenant column. Every read and write on an
// org-scoped table must filter by organization_id.
type OrgScoped struct {
	Base
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index" json:"organization_id"`
}

/* ======== Query scopes ======== */

func NotDeleted(db *gorm.DB) *gorm.DB {
	return db.Where("is_deleted = ?", false)
}

// InOrg limits a query to one tenant.
func InOrg(orgID uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("organization_id = ?", orgID)
	}
}

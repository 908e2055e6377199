package demo

import (
	"log"

	"gorm.io/gorm"

	"kerjaku_backend/internals/constants"
	organizationModel "kerjaku_backend/internals/features/organizations/organization/model"
	authService "kerjaku_backend/internals/features/users/auth/service"
	userModel "kerjaku_backend/internals/features/users/user/model"
)

const (
	demoOrgSlug   = "demo-company"
	demoAdminMail = "admin@demo-company.test"
)

// SeedDemoOrganization creates a demo tenant with one admin account.
// Skips silently when the slug already exists.
func SeedDemoOrganization(db *gorm.DB) {
	var existing int64
	if err := db.Model(&organizationModel.OrganizationModel{}).
		Where("slug = ?", demoOrgSlug).Count(&existing).Error; err != nil {
		log.Println("[ERROR] Demo seed lookup failed:", err)
		return
	}
	if existing > 0 {
		log.Println("[INFO] Demo organization already present, skipping seed")
		return
	}

	hashed, err := authService.HashPassword("demo-password-123")
	if err != nil {
		log.Println("[ERROR] Demo seed password hash failed:", err)
		return
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		org := &organizationModel.OrganizationModel{
			Name:         "Demo Company",
			Slug:         demoOrgSlug,
			ContactEmail: demoAdminMail,
			Timezone:     "UTC",
			Currency:     "USD",
			Status:       "active",
		}
		if err := tx.Create(org).Error; err != nil {
			return err
		}
		if err := tx.Create(organizationModel.DefaultOrganizationSettings(org)).Error; err != nil {
			return err
		}

		admin := &userModel.UserModel{
			UserName: "demo-admin",
			FullName: "Demo Admin",
			Email:    demoAdminMail,
			Password: hashed,
			Role:     constants.RoleAdmin,
			IsActive: true,
		}
		admin.OrganizationID = &org.ID
		if err := tx.Create(admin).Error; err != nil {
			return err
		}
		if err := tx.Create(userModel.DefaultComplianceSettings(admin.ID)).Error; err != nil {
			return err
		}

		member := &organizationModel.OrganizationMemberModel{
			UserID: admin.ID,
			Role:   constants.RoleAdmin,
		}
		member.OrganizationID = org.ID
		member.ApplyDefaultPermissions()
		return tx.Create(member).Error
	})
	if err != nil {
		log.Println("[ERROR] Demo seed failed:", err)
		return
	}
	log.Println("[INFO] Demo organization seeded")
}

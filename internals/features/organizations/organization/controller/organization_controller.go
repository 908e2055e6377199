package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kerjaku_backend/internals/constants"
	orgDTO "kerjaku_backend/internals/features/organizations/organization/dto"
	orgModel "kerjaku_backend/internals/features/organizations/organization/model"
	userModel "kerjaku_backend/internals/features/users/user/model"
	helper "kerjaku_backend/internals/helpers"
)

type OrganizationController struct {
	DB *gorm.DB
}

func NewOrganizationController(db *gorm.DB) *OrganizationController {
	return &OrganizationController{DB: db}
}

var validate = validator.New()

// =======================
// POST /api/u/organizations
// Any authenticated user without a tenant can create one; they become
// its admin and the new tenant lands in their next token.
// =======================
func (oc *OrganizationController) CreateOrganization(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req struct {
		Name     string `json:"name" validate:"required,min=2,max=100"`
		Timezone string `json:"timezone"`
		Currency string `json:"currency"`
	}
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var user userModel.UserModel
	if err := oc.DB.First(&user, "id = ?", userID).Error; err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "User not found")
	}
	if user.OrganizationID != nil {
		return helper.Error(c, fiber.StatusConflict, "User already belongs to an organization")
	}

	slug, err := helper.EnsureUniqueSlugCI(c.Context(), oc.DB,
		"organizations", "slug", helper.Slugify(req.Name, 100), nil, 120)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to generate slug")
	}

	org := &orgModel.OrganizationModel{
		Name:   req.Name,
		Slug:   slug,
		Status: "active",
	}
	if req.Timezone != "" {
		org.Timezone = req.Timezone
	}
	if req.Currency != "" {
		org.Currency = req.Currency
	}

	err = oc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(org).Error; err != nil {
			return err
		}
		if err := tx.Create(orgModel.DefaultOrganizationSettings(org)).Error; err != nil {
			return err
		}

		member := &orgModel.OrganizationMemberModel{
			UserID: userID,
			Role:   constants.RoleAdmin,
		}
		member.OrganizationID = org.ID
		member.ApplyDefaultPermissions()
		if err := tx.Create(member).Error; err != nil {
			return err
		}

		return tx.Model(&userModel.UserModel{}).
			Where("id = ?", userID).
			Updates(map[string]any{"organization_id": org.ID, "role": constants.RoleAdmin}).Error
	})
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create organization")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Organization created successfully", org)
}

// =======================
// GET /api/a/organizations/current
// =======================
func (oc *OrganizationController) GetCurrent(c *fiber.Ctx) error {
	org, err := oc.findCurrent(c)
	if err != nil {
		return err
	}

	var settings orgModel.OrganizationSettingsModel
	oc.DB.Where("organization_id = ?", org.ID).Limit(1).Find(&settings)

	resp := fiber.Map{"organization": org}
	if settings.OrganizationID == org.ID {
		resp["settings"] = settings
	}
	return helper.Success(c, "OK", resp)
}

// =======================
// PATCH /api/a/organizations/current
// =======================
func (oc *OrganizationController) UpdateCurrent(c *fiber.Ctx) error {
	org, err := oc.findCurrent(c)
	if err != nil {
		return err
	}

	var req orgDTO.UpdateOrganizationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request format")
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	req.ApplyToModel(org)
	if err := oc.DB.Save(org).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update organization")
	}
	return helper.Success(c, "Organization updated successfully", org)
}

// =======================
// PATCH /api/a/organizations/current/settings
// =======================
func (oc *OrganizationController) UpdateCurrentSettings(c *fiber.Ctx) error {
	org, err := oc.findCurrent(c)
	if err != nil {
		return err
	}

	var req orgDTO.UpdateOrganizationSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var settings orgModel.OrganizationSettingsModel
	if err := oc.DB.Where("organization_id = ?", org.ID).Limit(1).Find(&settings).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "DB error")
	}
	if settings.OrganizationID != org.ID {
		settings = *orgModel.DefaultOrganizationSettings(org)
	}

	req.ApplyToModel(&settings)
	if err := oc.DB.Save(&settings).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update settings")
	}
	return helper.Success(c, "Organization settings updated", settings)
}

func (oc *OrganizationController) findCurrent(c *fiber.Ctx) (*orgModel.OrganizationModel, error) {
	orgID, err := helper.GetOrganizationIDFromToken(c)
	if err != nil {
		return nil, err
	}

	var org orgModel.OrganizationModel
	err = oc.DB.First(&org, "id = ? AND is_deleted = ?", orgID, false).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.Error(c, fiber.StatusNotFound, "Organization not found")
		}
		return nil, helper.Error(c, fiber.StatusInternalServerError, "DB error")
	}
	return &org, nil
}

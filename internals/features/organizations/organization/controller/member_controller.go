package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	orgDTO "kerjaku_backend/internals/features/organizations/organization/dto"
	orgModel "kerjaku_backend/internals/features/organizations/organization/model"
	userModel "kerjaku_backend/internals/features/users/user/model"
	helper "kerjaku_backend/internals/helpers"
)

type MemberController struct {
	DB *gorm.DB
}

func NewMemberController(db *gorm.DB) *MemberController {
	return &MemberController{DB: db}
}

// =======================
// GET /api/a/members
// =======================
func (mc *MemberController) GetMembers(c *fiber.Ctx) error {
	orgID, err := helper.GetOrganizationIDFromToken(c)
	if err != nil {
		return err
	}
	paging := helper.ResolvePaging(c, 20, 100)

	q := mc.DB.Model(&orgModel.OrganizationMemberModel{}).
		Where("organization_id = ? AND is_deleted = ?", orgID, false)
	if role := c.Query("role"); role != "" {
		q = q.Where("role = ?", role)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count members")
	}

	var members []orgModel.OrganizationMemberModel
	if err := q.Order("joined_at ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&members).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch members")
	}

	return helper.Success(c, "OK", fiber.Map{
		"members":    members,
		"pagination": helper.BuildPagination(paging, total, len(members)),
	})
}

// =======================
// POST /api/a/members
// =======================
func (mc *MemberController) CreateMember(c *fiber.Ctx) error {
	orgID, err := helper.GetOrganizationIDFromToken(c)
	if err != nil {
		return err
	}

	var req orgDTO.CreateMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var user userModel.UserModel
	if err := mc.DB.First(&user, "id = ? AND is_deleted = ?", req.UserID, false).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "User not found")
	}

	var count int64
	if err := mc.DB.Model(&orgModel.OrganizationMemberModel{}).
		Where("organization_id = ? AND user_id = ? AND is_deleted = ?", orgID, req.UserID, false).
		Count(&count).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "DB error")
	}
	if count > 0 {
		return helper.Error(c, fiber.StatusConflict, "User is already a member")
	}

	member := &orgModel.OrganizationMemberModel{
		UserID: req.UserID,
		Role:   req.Role,
	}
	member.OrganizationID = orgID
	member.ApplyDefaultPermissions()

	err = mc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(member).Error; err != nil {
			return err
		}
		// keep the user's home tenant and claim role in sync
		updates := map[string]any{"role": member.Role}
		if user.OrganizationID == nil {
			updates["organization_id"] = orgID
		}
		return tx.Model(&userModel.UserModel{}).
			Where("id = ?", req.UserID).Updates(updates).Error
	})
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create member")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Member added successfully", member)
}

// =======================
// PATCH /api/a/members/:id
// =======================
func (mc *MemberController) UpdateMember(c *fiber.Ctx) error {
	member, err := mc.findOrgMember(c)
	if err != nil {
		return err
	}

	var req orgDTO.UpdateMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	roleChanged := req.Role != nil && *req.Role != member.Role
	req.ApplyToModel(member)
	if err := mc.DB.Save(member).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update member")
	}

	if roleChanged {
		mc.DB.Model(&userModel.UserModel{}).
			Where("id = ? AND organization_id = ?", member.UserID, member.OrganizationID).
			Update("role", member.Role)
	}

	return helper.Success(c, "Member updated successfully", member)
}

// =======================
// DELETE /api/a/members/:id (soft)
// =======================
func (mc *MemberController) DeleteMember(c *fiber.Ctx) error {
	member, err := mc.findOrgMember(c)
	if err != nil {
		return err
	}

	member.MarkDeleted()
	member.IsActive = false
	if err := mc.DB.Save(member).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to remove member")
	}
	return helper.Success(c, "Member removed successfully", nil)
}

func (mc *MemberController) findOrgMember(c *fiber.Ctx) (*orgModel.OrganizationMemberModel, error) {
	orgID, err := helper.GetOrganizationIDFromToken(c)
	if err != nil {
		return nil, err
	}

	var member orgModel.OrganizationMemberModel
	err = mc.DB.First(&member, "id = ? AND organization_id = ? AND is_deleted = ?",
		c.Params("id"), orgID, false).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.Error(c, fiber.StatusNotFound, "Member not found")
		}
		return nil, helper.Error(c, fiber.StatusInternalServerError, "DB error")
	}
	return &member, nil
}

package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kerjaku_backend/internals/constants"
	authService "kerjaku_backend/internals/features/users/auth/service"
	userDTO "kerjaku_backend/internals/features/users/user/dto"
	userModel "kerjaku_backend/internals/features/users/user/model"
	userService "kerjaku_backend/internals/features/users/user/service"
	helper "kerjaku_backend/internals/helpers"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

var validate = validator.New()

// =======================
// GET /api/a/users
// =======================
func (uc *UserController) GetUsers(c *fiber.Ctx) error {
	orgID, err := helper.GetOrganizationIDFromToken(c)
	if err != nil {
		return err
	}
	paging := helper.ResolvePaging(c, 20, 100)

	q := uc.DB.Model(&userModel.UserModel{}).
		Where("organization_id = ? AND is_deleted = ?", orgID, false)

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("lower(user_name) LIKE ? OR lower(full_name) LIKE ? OR lower(email) LIKE ?", like, like, like)
	}
	if role := strings.TrimSpace(c.Query("role")); role != "" {
		q = q.Where("role = ?", role)
	}
	if dept := strings.TrimSpace(c.Query("department_id")); dept != "" {
		q = q.Where("department_id = ?", dept)
	}
	if c.Query("is_active") != "" {
		q = q.Where("is_active = ?", c.QueryBool("is_active"))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count users")
	}

	var users []userModel.UserModel
	if err := q.Order("created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&users).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch users")
	}
	for i := range users {
		users[i].Password = ""
	}

	return helper.Success(c, "OK", fiber.Map{
		"users":      users,
		"pagination": helper.BuildPagination(paging, total, len(users)),
	})
}

// =======================
// GET /api/a/users/:id
// =======================
func (uc *UserController) GetUser(c *fiber.Ctx) error {
	user, err := uc.findOrgUser(c)
	if err != nil {
		return err
	}
	user.Password = ""

	var settings userModel.ComplianceSettingsModel
	found := uc.DB.Where("user_id = ?", user.ID).Limit(1).Find(&settings)
	resp := fiber.Map{"user": user}
	if found.Error == nil && settings.UserID == user.ID {
		resp["compliance_settings"] = settings
	}
	return helper.Success(c, "OK", resp)
}

// =======================
// POST /api/a/users
// =======================
func (uc *UserController) CreateUser(c *fiber.Ctx) error {
	orgID, err := helper.GetOrganizationIDFromToken(c)
	if err != nil {
		return err
	}

	var req userDTO.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request format")
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	// admins never mint global admins
	if req.Role == constants.RoleGlobalAdmin {
		return helper.Error(c, fiber.StatusForbidden, "Cannot assign the global_admin role")
	}

	var count int64
	if err := uc.DB.Model(&userModel.UserModel{}).
		Where("lower(email) = ?", req.Email).Count(&count).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "DB error")
	}
	if count > 0 {
		return helper.Error(c, fiber.StatusConflict, "Email already registered")
	}

	hashed, err := authService.HashPassword(req.Password)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	user := req.ToModel()
	user.Password = hashed
	user.OrganizationID = &orgID
	user.SetDefaultValues()

	err = uc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		return tx.Create(userModel.DefaultComplianceSettings(user.ID)).Error
	})
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create user")
	}

	user.Password = ""
	return helper.SuccessWithCode(c, fiber.StatusCreated, "User created successfully", user)
}

// =======================
// PATCH /api/a/users/:id
// =======================
func (uc *UserController) UpdateUser(c *fiber.Ctx) error {
	user, err := uc.findOrgUser(c)
	if err != nil {
		return err
	}

	var req userDTO.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request format")
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	if req.Role != nil && *req.Role == constants.RoleGlobalAdmin {
		return helper.Error(c, fiber.StatusForbidden, "Cannot assign the global_admin role")
	}

	req.ApplyToModel(user)
	if err := uc.DB.Save(user).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update user")
	}

	user.Password = ""
	return helper.Success(c, "User updated successfully", user)
}

// =======================
// DELETE /api/a/users/:id (soft)
// =======================
func (uc *UserController) DeleteUser(c *fiber.Ctx) error {
	user, err := uc.findOrgUser(c)
	if err != nil {
		return err
	}

	user.MarkDeleted()
	user.IsActive = false
	if err := uc.DB.Save(user).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to delete user")
	}

	// a deleted user keeps no open sessions
	if err := authService.RevokeAllRefreshTokens(uc.DB, user.ID); err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to revoke sessions")
	}

	return helper.Success(c, "User deleted successfully", nil)
}

// =======================
// GET /api/a/users/:id/reports
// =======================
func (uc *UserController) GetUserReports(c *fiber.Ctx) error {
	user, err := uc.findOrgUser(c)
	if err != nil {
		return err
	}

	ids, err := userService.AllReportIDs(uc.DB, user.ID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to walk reports tree")
	}

	var reports []userModel.UserModel
	if len(ids) > 0 {
		if err := uc.DB.Where("id IN ?", ids).Find(&reports).Error; err != nil {
			return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch reports")
		}
	}
	for i := range reports {
		reports[i].Password = ""
	}
	return helper.Success(c, "OK", fiber.Map{"reports": reports})
}

// =======================
// GET /api/u/users/me
// =======================
func (uc *UserController) GetMe(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var user userModel.UserModel
	if err := uc.DB.First(&user, "id = ? AND is_deleted = ?", userID, false).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "User not found")
	}
	user.Password = ""

	var settings userModel.ComplianceSettingsModel
	uc.DB.Where("user_id = ?", userID).Limit(1).Find(&settings)

	resp := fiber.Map{"user": user}
	if settings.UserID == userID {
		resp["compliance_settings"] = settings
	}
	return helper.Success(c, "OK", resp)
}

// =======================
// PATCH /api/u/users/me
// =======================
func (uc *UserController) UpdateMe(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var user userModel.UserModel
	if err := uc.DB.First(&user, "id = ? AND is_deleted = ?", userID, false).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "User not found")
	}

	var req userDTO.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request format")
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	// self-service cannot touch role, pay, or org placement
	req.Role = nil
	req.HourlyRate = nil
	req.Salary = nil
	req.ManagerID = nil
	req.DepartmentID = nil
	req.IsActive = nil

	req.ApplyToModel(&user)
	if err := uc.DB.Save(&user).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update profile")
	}

	user.Password = ""
	return helper.Success(c, "Profile updated successfully", user)
}

// =======================
// PATCH /api/u/users/me/compliance
// =======================
func (uc *UserController) UpdateMyCompliance(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req userDTO.UpdateComplianceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var settings userModel.ComplianceSettingsModel
	err = uc.DB.Where("user_id = ?", userID).Limit(1).Find(&settings).Error
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "DB error")
	}
	if settings.UserID != userID {
		settings = *userModel.DefaultComplianceSettings(userID)
	}

	req.ApplyToModel(&settings)
	if err := uc.DB.Save(&settings).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update compliance settings")
	}

	return helper.Success(c, "Compliance settings updated", settings)
}

// findOrgUser loads :id and enforces tenant scope from the token.
func (uc *UserController) findOrgUser(c *fiber.Ctx) (*userModel.UserModel, error) {
	orgID, err := helper.GetOrganizationIDFromToken(c)
	if err != nil {
		return nil, err
	}

	var user userModel.UserModel
	err = uc.DB.First(&user, "id = ? AND organization_id = ? AND is_deleted = ?",
		c.Params("id"), orgID, false).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.Error(c, fiber.StatusNotFound, "User not found")
		}
		return nil, helper.Error(c, fiber.StatusInternalServerError, "DB error")
	}
	return &user, nil
}

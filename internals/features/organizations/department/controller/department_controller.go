package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	deptDTO "kerjaku_backend/internals/features/organizations/department/dto"
	deptModel "kerjaku_backend/internals/features/organizations/department/model"
	helper "kerjaku_backend/internals/helpers"
)

type DepartmentController struct {
	DB *gorm.DB
}

func NewDepartmentController(db *gorm.DB) *DepartmentController {
	return &DepartmentController{DB: db}
}

var validate = validator.New()

// =======================
// GET /api/a/departments
// =======================
func (dc *DepartmentController) GetDepartments(c *fiber.Ctx) error {
	orgID, err := helper.GetOrganizationIDFromToken(c)
	if err != nil {
		return err
	}

	var departments []deptModel.DepartmentModel
	q := dc.DB.Where("organization_id = ? AND is_deleted = ?", orgID, false)
	if parent := c.Query("parent_id"); parent != "" {
		q = q.Where("parent_id = ?", parent)
	}
	if err := q.Order("name ASC").Find(&departments).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch departments")
	}
	return helper.Success(c, "OK", fiber.Map{"departments": departments})
}

// =======================
// POST /api/a/departments
// =======================
func (dc *DepartmentController) CreateDepartment(c *fiber.Ctx) error {
	orgID, err := helper.GetOrganizationIDFromToken(c)
	if err != nil {
		return err
	}

	var req deptDTO.CreateDepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request format")
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	// a parent must live in the same tenant
	if req.ParentID != nil {
		var count int64
		if err := dc.DB.Model(&deptModel.DepartmentModel{}).
			Where("id = ? AND organization_id = ? AND is_deleted = ?", *req.ParentID, orgID, false).
			Count(&count).Error; err != nil {
			return helper.Error(c, fiber.StatusInternalServerError, "DB error")
		}
		if count == 0 {
			return helper.Error(c, fiber.StatusBadRequest, "Parent department not found")
		}
	}

	dept := req.ToModel()
	dept.OrganizationID = orgID
	if err := dc.DB.Create(dept).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create department")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Department created successfully", dept)
}

// =======================
// GET /api/a/departments/:id
// =======================
func (dc *DepartmentController) GetDepartment(c *fiber.Ctx) error {
	dept, err := dc.findOrgDepartment(c)
	if err != nil {
		return err
	}
	return helper.Success(c, "OK", dept)
}

// =======================
// PATCH /api/a/departments/:id
// =======================
func (dc *DepartmentController) UpdateDepartment(c *fiber.Ctx) error {
	dept, err := dc.findOrgDepartment(c)
	if err != nil {
		return err
	}

	var req deptDTO.UpdateDepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	if req.ParentID != nil && *req.ParentID == dept.ID {
		return helper.Error(c, fiber.StatusBadRequest, "Department cannot be its own parent")
	}

	req.ApplyToModel(dept)
	if err := dc.DB.Save(dept).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update department")
	}
	return helper.Success(c, "Department updated successfully", dept)
}

// =======================
// DELETE /api/a/departments/:id (soft)
// =======================
func (dc *DepartmentController) DeleteDepartment(c *fiber.Ctx) error {
	dept, err := dc.findOrgDepartment(c)
	if err != nil {
		return err
	}

	dept.MarkDeleted()
	dept.Status = "inactive"
	if err := dc.DB.Save(dept).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to delete department")
	}
	return helper.Success(c, "Department deleted successfully", nil)
}

func (dc *DepartmentController) findOrgDepartment(c *fiber.Ctx) (*deptModel.DepartmentModel, error) {
	orgID, err := helper.GetOrganizationIDFromToken(c)
	if err != nil {
		return nil, err
	}

	var dept deptModel.DepartmentModel
	err = dc.DB.First(&dept, "id = ? AND organization_id = ? AND is_deleted = ?",
		c.Params("id"), orgID, false).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.Error(c, fiber.StatusNotFound, "Department not found")
		}
		return nil, helper.Error(c, fiber.StatusInternalServerError, "DB error")
	}
	return &dept, nil
}

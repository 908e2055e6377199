package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	projectDTO "kerjaku_backend/internals/features/projects/project/dto"
	projectModel "kerjaku_backend/internals/features/projects/project/model"
	helper "kerjaku_backend/internals/helpers"
)

type ClientController struct {
	DB *gorm.DB
}

func NewClientController(db *gorm.DB) *ClientController {
	return &ClientController{DB: db}
}

// =======================
// GET /api/a/projects/clients
// =======================
func (cc *ClientController) GetClients(c *fiber.Ctx) error {
	orgID, err := helper.GetOrganizationIDFromToken(c)
	if err != nil {
		return err
	}

	var clients []projectModel.ClientModel
	q := cc.DB.Where("organization_id = ? AND is_deleted = ?", orgID, false)
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Order("name ASC").Find(&clients).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch clients")
	}
	return helper.Success(c, "OK", fiber.Map{"clients": clients})
}

// =======================
// POST /api/a/projects/clients
// =======================
func (cc *ClientController) CreateClient(c *fiber.Ctx) error {
	orgID, err := helper.GetOrganizationIDFromToken(c)
	if err != nil {
		return err
	}

	var req projectDTO.CreateClientRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request format")
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	client := req.ToModel()
	client.OrganizationID = orgID
	if err := cc.DB.Create(client).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create client")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Client created successfully", client)
}

// =======================
// GET /api/a/projects/clients/:id
// =======================
func (cc *ClientController) GetClient(c *fiber.Ctx) error {
	client, err := cc.findOrgClient(c)
	if err != nil {
		return err
	}
	return helper.Success(c, "OK", client)
}

// =======================
// PATCH /api/a/projects/clients/:id
// =======================
func (cc *ClientController) UpdateClient(c *fiber.Ctx) error {
	client, err := cc.findOrgClient(c)
	if err != nil {
		return err
	}

	var req projectDTO.UpdateClientRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	req.ApplyToModel(client)
	if err := cc.DB.Save(client).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update client")
	}
	return helper.Success(c, "Client updated successfully", client)
}

// =======================
// DELETE /api/a/projects/clients/:id (soft)
// =======================
func (cc *ClientController) DeleteClient(c *fiber.Ctx) error {
	client, err := cc.findOrgClient(c)
	if err != nil {
		return err
	}

	client.MarkDeleted()
	client.Status = "archived"
	if err := cc.DB.Save(client).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to delete client")
	}
	return helper.Success(c, "Client deleted successfully", nil)
}

func (cc *ClientController) findOrgClient(c *fiber.Ctx) (*projectModel.ClientModel, error) {
	orgID, err := helper.GetOrganizationIDFromToken(c)
	if err != nil {
		return nil, err
	}

	var client projectModel.ClientModel
	err = cc.DB.First(&client, "id = ? AND organization_id = ? AND is_deleted = ?",
		c.Params("id"), orgID, false).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.Error(c, fiber.StatusNotFound, "Client not found")
		}
		return nil, helper.Error(c, fiber.StatusInternalServerError, "DB error")
	}
	return &client, nil
}

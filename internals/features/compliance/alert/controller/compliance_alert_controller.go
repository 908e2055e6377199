package controller

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	alertDTO "kerjaku_backend/internals/features/compliance/alert/dto"
	alertModel "kerjaku_backend/internals/features/compliance/alert/model"
	helper "kerjaku_backend/internals/helpers"
)

type ComplianceAlertController struct {
	DB *gorm.DB
}

func NewComplianceAlertController(db *gorm.DB) *ComplianceAlertController {
	return &ComplianceAlertController{DB: db}
}

var validate = validator.New()

// =======================
// GET /api/a/compliance/alerts
// =======================
func (ac *ComplianceAlertController) GetAlerts(c *fiber.Ctx) error {
	orgID, err := helper.GetOrganizationIDFromToken(c)
	if err != nil {
		return err
	}
	paging := helper.ResolvePaging(c, 20, 100)

	q := ac.DB.Model(&alertModel.ComplianceAlertModel{}).
		Where("organization_id = ? AND is_deleted = ?", orgID, false)
	if userID := c.Query("user_id"); userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	if alertType := c.Query("alert_type"); alertType != "" {
		q = q.Where("alert_type = ?", alertType)
	}
	if severity := c.Query("severity"); severity != "" {
		q = q.Where("severity = ?", severity)
	}
	if resolved := c.Query("is_resolved"); resolved != "" {
		q = q.Where("is_resolved = ?", resolved == "true")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count alerts")
	}

	var alerts []alertModel.ComplianceAlertModel
	if err := q.Order("created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&alerts).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch alerts")
	}

	return helper.Success(c, "OK", fiber.Map{
		"alerts":     alerts,
		"pagination": helper.BuildPagination(paging, total, len(alerts)),
	})
}

// =======================
// POST /api/a/compliance/alerts/:id/acknowledge
// =======================
func (ac *ComplianceAlertController) AcknowledgeAlert(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	alert, err := ac.findOrgAlert(c)
	if err != nil {
		return err
	}
	if alert.IsAcknowledged {
		return helper.Error(c, fiber.StatusConflict, "Alert already acknowledged")
	}

	alert.Acknowledge(userID, time.Now().UTC())
	if err := ac.DB.Save(alert).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to acknowledge alert")
	}
	return helper.Success(c, "Alert acknowledged", alert)
}

// =======================
// POST /api/a/compliance/alerts/:id/resolve
// =======================
func (ac *ComplianceAlertController) ResolveAlert(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	alert, err := ac.findOrgAlert(c)
	if err != nil {
		return err
	}
	if alert.IsResolved {
		return helper.Error(c, fiber.StatusConflict, "Alert already resolved")
	}

	var req alertDTO.ResolveAlertRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	alert.Resolve(userID, req.Note, time.Now().UTC())
	if err := ac.DB.Save(alert).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to resolve alert")
	}
	return helper.Success(c, "Alert resolved", alert)
}

func (ac *ComplianceAlertController) findOrgAlert(c *fiber.Ctx) (*alertModel.ComplianceAlertModel, error) {
	orgID, err := helper.GetOrganizationIDFromToken(c)
	if err != nil {
		return nil, err
	}

	var alert alertModel.ComplianceAlertModel
	err = ac.DB.Where("id = ? AND organization_id = ? AND is_deleted = ?", c.Params("id"), orgID, false).
		Limit(1).Find(&alert).Error
	if err != nil {
		return nil, helper.Error(c, fiber.StatusInternalServerError, "DB error")
	}
	if alert.ID == uuid.Nil {
		return nil, helper.Error(c, fiber.StatusNotFound, "Alert not found")
	}
	return &alert, nil
}

package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	alertController "kerjaku_backend/internals/features/compliance/alert/controller"
)

// ComplianceAdminRoutes — under /api/a (managerial)
func ComplianceAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := alertController.NewComplianceAlertController(db)

	alerts := api.Group("/compliance/alerts")
	alerts.Get("/", ctrl.GetAlerts)
	alerts.Post("/:id/acknowledge", ctrl.AcknowledgeAlert)
	alerts.Post("/:id/resolve", ctrl.ResolveAlert)
}

package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	reportController "kerjaku_backend/internals/features/reports/report/controller"
)

// ReportAdminRoutes — under /api/a (managerial)
func ReportAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := reportController.NewReportController(db)

	reports := api.Group("/reports")

	// static segment before :id so it wins
	reports.Get("/timesheet-summary", ctrl.GetTimesheetSummary)

	reports.Get("/", ctrl.GetReports)
	reports.Post("/", ctrl.CreateReport)
	reports.Get("/:id", ctrl.GetReport)
	reports.Patch("/:id", ctrl.UpdateReport)
	reports.Delete("/:id", ctrl.DeleteReport)
}

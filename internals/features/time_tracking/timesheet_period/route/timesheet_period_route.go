package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	timesheetController "kerjaku_backend/internals/features/time_tracking/timesheet_period/controller"
)

// TimesheetPeriodAdminRoutes — under /api/a (managerial)
func TimesheetPeriodAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := timesheetController.NewTimesheetPeriodController(db)

	periods := api.Group("/timesheet-periods")
	periods.Get("/", ctrl.GetPeriods)
	periods.Post("/", ctrl.CreatePeriod)
	periods.Get("/:id", ctrl.GetPeriod)
	periods.Patch("/:id", ctrl.UpdatePeriod)
	periods.Delete("/:id", ctrl.DeletePeriod)
	periods.Post("/:id/close", ctrl.ClosePeriod)
	periods.Post("/:id/lock", ctrl.LockPeriod)
}

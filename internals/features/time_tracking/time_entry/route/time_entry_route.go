package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	timeEntryController "kerjaku_backend/internals/features/time_tracking/time_entry/controller"
)

// TimeEntryUserRoutes — under /api/u
func TimeEntryUserRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := timeEntryController.NewTimeEntryController(db)

	entries := api.Group("/time-entries")

	// static segments before :id so they win
	entries.Post("/clock-in", ctrl.ClockIn)
	entries.Post("/clock-out", ctrl.ClockOut)
	entries.Get("/current", ctrl.GetCurrent)
	entries.Get("/summary", ctrl.GetSummary)

	entries.Get("/", ctrl.GetMyEntries)
	entries.Post("/", ctrl.CreateEntry)
	entries.Get("/:id", ctrl.GetEntry)
	entries.Patch("/:id", ctrl.UpdateEntry)
	entries.Delete("/:id", ctrl.DeleteEntry)
	entries.Post("/:id/start-break", ctrl.StartBreak)
	entries.Post("/:id/end-break", ctrl.EndBreak)
	entries.Post("/:id/submit", ctrl.Submit)
	entries.Post("/:id/modification-requests", ctrl.RequestModification)
}

// TimeEntryAdminRoutes — under /api/a (managerial)
func TimeEntryAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := timeEntryController.NewTimeEntryController(db)

	entries := api.Group("/time-entries")
	entries.Get("/", ctrl.GetOrgEntries)
	entries.Post("/:id/approve", ctrl.Approve)
	entries.Post("/:id/reject", ctrl.Reject)
	entries.Post("/:id/reset-draft", ctrl.ResetDraft)

	requests := api.Group("/modification-requests")
	requests.Get("/", ctrl.GetModificationRequests)
	requests.Post("/:id/approve", ctrl.ApproveModification)
	requests.Post("/:id/reject", ctrl.RejectModification)
}

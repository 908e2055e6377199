package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	taskController "kerjaku_backend/internals/features/projects/task/controller"
)

// TaskAdminRoutes — under /api/a
func TaskAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := taskController.NewTaskController(db)

	tasks := api.Group("/tasks")
	tasks.Get("/", ctrl.GetTasks)
	tasks.Post("/", ctrl.CreateTask)
	tasks.Get("/:id", ctrl.GetTask)
	tasks.Patch("/:id", ctrl.UpdateTask)
	tasks.Delete("/:id", ctrl.DeleteTask)
}

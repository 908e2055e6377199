package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	deptController "kerjaku_backend/internals/features/organizations/department/controller"
)

// DepartmentAdminRoutes — under /api/a
func DepartmentAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := deptController.NewDepartmentController(db)

	depts := api.Group("/departments")
	depts.Get("/", ctrl.GetDepartments)
	depts.Post("/", ctrl.CreateDepartment)
	depts.Get("/:id", ctrl.GetDepartment)
	depts.Patch("/:id", ctrl.UpdateDepartment)
	depts.Delete("/:id", ctrl.DeleteDepartment)
}

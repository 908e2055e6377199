package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	alertRoute "kerjaku_backend/internals/features/compliance/alert/route"
	departmentRoute "kerjaku_backend/internals/features/organizations/department/route"
	organizationRoute "kerjaku_backend/internals/features/organizations/organization/route"
	teamRoute "kerjaku_backend/internals/features/organizations/team/route"
	projectRoute "kerjaku_backend/internals/features/projects/project/route"
	taskRoute "kerjaku_backend/internals/features/projects/task/route"
	reportRoute "kerjaku_backend/internals/features/reports/report/route"
	timeEntryRoute "kerjaku_backend/internals/features/time_tracking/time_entry/route"
	timesheetRoute "kerjaku_backend/internals/features/time_tracking/timesheet_period/route"
	authRoute "kerjaku_backend/internals/features/users/auth/route"
	userRoute "kerjaku_backend/internals/features/users/user/route"
	authMiddleware "kerjaku_backend/internals/middlewares/auth"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, db)

	// ===================== PUBLIC =====================
	log.Println("[INFO] Setting up PUBLIC routes...")
	public := app.Group("/api")
	authRoute.AuthRoutes(public, db)

	// ===================== PRIVATE (USER) =====================
	log.Println("[INFO] Setting up USER group...")
	user := app.Group("/api/u", authMiddleware.AuthMiddleware(db))

	authRoute.AuthProtectedRoutes(user, db)
	userRoute.UserUserRoutes(user, db)
	organizationRoute.OrganizationUserRoutes(user, db)
	projectRoute.ProjectUserRoutes(user, db)
	timeEntryRoute.TimeEntryUserRoutes(user, db)

	// ===================== ADMIN (managerial per org) =====================
	log.Println("[INFO] Setting up ADMIN group...")
	admin := app.Group("/api/a",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.RequireManagerial(),
	)

	userRoute.UserAdminRoutes(admin, db)
	organizationRoute.OrganizationAdminRoutes(admin, db)
	departmentRoute.DepartmentAdminRoutes(admin, db)
	teamRoute.TeamAdminRoutes(admin, db)
	projectRoute.ProjectAdminRoutes(admin, db)
	taskRoute.TaskAdminRoutes(admin, db)
	timeEntryRoute.TimeEntryAdminRoutes(admin, db)
	timesheetRoute.TimesheetPeriodAdminRoutes(admin, db)
	alertRoute.ComplianceAdminRoutes(admin, db)
	reportRoute.ReportAdminRoutes(admin, db)
}

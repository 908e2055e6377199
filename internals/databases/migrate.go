package database

import (
	"log"

	"gorm.io/gorm"

	alertModel "kerjaku_backend/internals/features/compliance/alert/model"
	departmentModel "kerjaku_backend/internals/features/organizations/department/model"
	organizationModel "kerjaku_backend/internals/features/organizations/organization/model"
	teamModel "kerjaku_backend/internals/features/organizations/team/model"
	projectModel "kerjaku_backend/internals/features/projects/project/model"
	taskModel "kerjaku_backend/internals/features/projects/task/model"
	reportModel "kerjaku_backend/internals/features/reports/report/model"
	timeEntryModel "kerjaku_backend/internals/features/time_tracking/time_entry/model"
	timesheetModel "kerjaku_backend/internals/features/time_tracking/timesheet_period/model"
	authModel "kerjaku_backend/internals/features/users/auth/model"
	userModel "kerjaku_backend/internals/features/users/user/model"
)

// AutoMigrate runs the schema migration for every registered model.
// Order matters only for readability; gorm resolves references lazily.
func AutoMigrate(db *gorm.DB) error {
	log.Println("[INFO] Running schema migration...")

	return db.AutoMigrate(
		// users
		&userModel.UserModel{},
		&userModel.ComplianceSettingsModel{},
		&authModel.RefreshTokenModel{},
		&authModel.TokenBlacklistModel{},

		// organizations
		&organizationModel.OrganizationModel{},
		&organizationModel.OrganizationSettingsModel{},
		&organizationModel.OrganizationMemberModel{},
		&departmentModel.DepartmentModel{},
		&teamModel.TeamModel{},
		&teamModel.TeamMemberModel{},

		// projects
		&projectModel.ClientModel{},
		&projectModel.ProjectModel{},
		&projectModel.ProjectMembershipModel{},
		&taskModel.TaskModel{},

		// time tracking
		&timeEntryModel.TimeEntryModel{},
		&timeEntryModel.BreakEntryModel{},
		&timeEntryModel.TimeModificationRequestModel{},
		&timesheetModel.TimesheetPeriodModel{},

		// compliance + reports
		&alertModel.ComplianceAlertModel{},
		&reportModel.ReportModel{},
	)
}

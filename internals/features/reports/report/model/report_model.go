package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"

	commonModel "kerjaku_backend/internals/features/common/model"
)

const (
	ReportTimesheet        = "timesheet"
	ReportProjectSummary   = "project_summary"
	ReportUserProductivity = "user_productivity"
	ReportBilling          = "billing"
	ReportCompliance       = "compliance"
	ReportCustom           = "custom"
)

const (
	ScheduleDaily   = "daily"
	ScheduleWeekly  = "weekly"
	ScheduleMonthly = "monthly"
)

// ReportModel is a saved report definition. Filters and columns are stored
// as JSON so report shapes can evolve without migrations.
type ReportModel struct {
	commonModel.OrgScoped

	Name        string `gorm:"size:150;not null" json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	ReportType  string `gorm:"size:30;not null;index" json:"report_type"`

	CreatedByID uuid.UUID `gorm:"type:uuid;not null;index" json:"created_by_id"`

	Filters datatypes.JSON `gorm:"type:jsonb" json:"filters,omitempty"`
	Columns datatypes.JSON `gorm:"type:jsonb" json:"columns,omitempty"`

	// Emails the generated report goes out to.
	SharedWith pq.StringArray `gorm:"type:text[]" json:"shared_with,omitempty"`

	IsScheduled bool       `gorm:"not null;default:false" json:"is_scheduled"`
	Schedule    string     `gorm:"size:10" json:"schedule,omitempty"`
	LastRunAt   *time.Time `gorm:"type:timestamptz" json:"last_run_at,omitempty"`
	NextRunAt   *time.Time `gorm:"type:timestamptz" json:"next_run_at,omitempty"`
}

func (ReportModel) TableName() string {
	return "reports"
}

func IsValidReportType(t string) bool {
	switch t {
	case ReportTimesheet, ReportProjectSummary, ReportUserProductivity,
		ReportBilling, ReportCompliance, ReportCustom:
		return true
	}
	return false
}

package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	reportDTO "kerjaku_backend/internals/features/reports/report/dto"
	reportModel "kerjaku_backend/internals/features/reports/report/model"
	timeEntryModel "kerjaku_backend/internals/features/time_tracking/time_entry/model"
	helper "kerjaku_backend/internals/helpers"
)

type ReportController struct {
	DB *gorm.DB
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db}
}

var validate = validator.New()

// =======================
// GET /api/a/reports
// =======================
func (rc *ReportController) GetReports(c *fiber.Ctx) error {
	orgID, err := helper.GetOrganizationIDFromToken(c)
	if err != nil {
		return err
	}
	paging := helper.ResolvePaging(c, 20, 100)

	q := rc.DB.Model(&reportModel.ReportModel{}).
		Where("organization_id = ? AND is_deleted = ?", orgID, false)
	if reportType := c.Query("report_type"); reportType != "" {
		q = q.Where("report_type = ?", reportType)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count reports")
	}

	var reports []reportModel.ReportModel
	if err := q.Order("created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&reports).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch reports")
	}

	return helper.Success(c, "OK", fiber.Map{
		"reports":    reports,
		"pagination": helper.BuildPagination(paging, total, len(reports)),
	})
}

// =======================
// POST /api/a/reports
// =======================
func (rc *ReportController) CreateReport(c *fiber.Ctx) error {
	orgID, err := helper.GetOrganizationIDFromToken(c)
	if err != nil {
		return err
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req reportDTO.CreateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request format")
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	if !reportModel.IsValidReportType(req.ReportType) {
		return helper.Error(c, fiber.StatusBadRequest, "Unknown report type")
	}

	report := req.ToModel(orgID, userID)
	if err := rc.DB.Create(report).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create report")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Report created", report)
}

// =======================
// GET /api/a/reports/:id
// =======================
func (rc *ReportController) GetReport(c *fiber.Ctx) error {
	report, err := rc.findOrgReport(c)
	if err != nil {
		return err
	}
	return helper.Success(c, "OK", report)
}

// =======================
// PATCH /api/a/reports/:id
// =======================
func (rc *ReportController) UpdateReport(c *fiber.Ctx) error {
	report, err := rc.findOrgReport(c)
	if err != nil {
		return err
	}

	var req reportDTO.UpdateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	req.ApplyToModel(report)
	if err := rc.DB.Save(report).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update report")
	}
	return helper.Success(c, "Report updated", report)
}

// =======================
// DELETE /api/a/reports/:id
// =======================
func (rc *ReportController) DeleteReport(c *fiber.Ctx) error {
	report, err := rc.findOrgReport(c)
	if err != nil {
		return err
	}

	report.MarkDeleted()
	if err := rc.DB.Save(report).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to delete report")
	}
	return helper.Success(c, "Report deleted", nil)
}

// =======================
// GET /api/a/reports/timesheet-summary?from=&to=&user_id=&project_id=
// Per-user hour and billing totals over a date range.
// =======================
func (rc *ReportController) GetTimesheetSummary(c *fiber.Ctx) error {
	orgID, err := helper.GetOrganizationIDFromToken(c)
	if err != nil {
		return err
	}

	type row struct {
		UserID         uuid.UUID `json:"user_id"`
		Entries        int64     `json:"entries"`
		TotalHours     float64   `json:"total_hours"`
		RegularHours   float64   `json:"regular_hours"`
		OvertimeHours  float64   `json:"overtime_hours"`
		BreakHours     float64   `json:"break_hours"`
		BillableAmount float64   `json:"billable_amount"`
	}

	q := rc.DB.Model(&timeEntryModel.TimeEntryModel{}).
		Where("organization_id = ? AND is_deleted = ?", orgID, false)
	if from := c.Query("from"); from != "" {
		q = q.Where("date >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		q = q.Where("date <= ?", to)
	}
	if userID := c.Query("user_id"); userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	if projectID := c.Query("project_id"); projectID != "" {
		q = q.Where("project_id = ?", projectID)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var rows []row
	err = q.Select(`
		user_id,
		COUNT(*)                          AS entries,
		COALESCE(SUM(total_hours), 0)     AS total_hours,
		COALESCE(SUM(regular_hours), 0)   AS regular_hours,
		COALESCE(SUM(overtime_hours), 0)  AS overtime_hours,
		COALESCE(SUM(break_hours), 0)     AS break_hours,
		COALESCE(SUM(billable_amount), 0) AS billable_amount`).
		Group("user_id").
		Order("user_id").
		Scan(&rows).Error
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to aggregate")
	}

	return helper.Success(c, "OK", fiber.Map{"rows": rows})
}

func (rc *ReportController) findOrgReport(c *fiber.Ctx) (*reportModel.ReportModel, error) {
	orgID, err := helper.GetOrganizationIDFromToken(c)
	if err != nil {
		return nil, err
	}

	var report reportModel.ReportModel
	err = rc.DB.Where("id = ? AND organization_id = ? AND is_deleted = ?", c.Params("id"), orgID, false).
		Limit(1).Find(&report).Error
	if err != nil {
		return nil, helper.Error(c, fiber.StatusInternalServerError, "DB error")
	}
	if report.ID == uuid.Nil {
		return nil, helper.Error(c, fiber.StatusNotFound, "Report not found")
	}
	return &report, nil
}

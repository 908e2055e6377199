package controller

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	timeEntryModel "kerjaku_backend/internals/features/time_tracking/time_entry/model"
	timesheetDTO "kerjaku_backend/internals/features/time_tracking/timesheet_period/dto"
	timesheetModel "kerjaku_backend/internals/features/time_tracking/timesheet_period/model"
	helper "kerjaku_backend/internals/helpers"
)

type TimesheetPeriodController struct {
	DB *gorm.DB
}

func NewTimesheetPeriodController(db *gorm.DB) *TimesheetPeriodController {
	return &TimesheetPeriodController{DB: db}
}

var validate = validator.New()

// =======================
// GET /api/a/timesheet-periods
// =======================
func (pc *TimesheetPeriodController) GetPeriods(c *fiber.Ctx) error {
	orgID, err := helper.GetOrganizationIDFromToken(c)
	if err != nil {
		return err
	}
	paging := helper.ResolvePaging(c, 20, 100)

	q := pc.DB.Model(&timesheetModel.TimesheetPeriodModel{}).
		Where("organization_id = ? AND is_deleted = ?", orgID, false)
	if open := c.Query("is_open"); open != "" {
		q = q.Where("is_open = ?", open == "true")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count periods")
	}

	var periods []timesheetModel.TimesheetPeriodModel
	if err := q.Order("start_date DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&periods).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch periods")
	}

	return helper.Success(c, "OK", fiber.Map{
		"timesheet_periods": periods,
		"pagination":        helper.BuildPagination(paging, total, len(periods)),
	})
}

// =======================
// POST /api/a/timesheet-periods
// =======================
func (pc *TimesheetPeriodController) CreatePeriod(c *fiber.Ctx) error {
	orgID, err := helper.GetOrganizationIDFromToken(c)
	if err != nil {
		return err
	}

	var req timesheetDTO.CreateTimesheetPeriodRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request format")
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	if !req.EndDate.After(req.StartDate) {
		return helper.Error(c, fiber.StatusBadRequest, "end_date must be after start_date")
	}

	// one period per (organization, start, end); enforced here, no composite index
	var dup int64
	if err := pc.DB.Model(&timesheetModel.TimesheetPeriodModel{}).
		Where("organization_id = ? AND start_date = ? AND end_date = ? AND is_deleted = ?",
			orgID, req.StartDate, req.EndDate, false).
		Count(&dup).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "DB error")
	}
	if dup > 0 {
		return helper.Error(c, fiber.StatusConflict, "A period with these dates already exists")
	}

	period := req.ToModel(orgID)
	if err := pc.DB.Create(period).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create period")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Timesheet period created", period)
}

// =======================
// GET /api/a/timesheet-periods/:id
// =======================
func (pc *TimesheetPeriodController) GetPeriod(c *fiber.Ctx) error {
	period, err := pc.findOrgPeriod(c)
	if err != nil {
		return err
	}
	return helper.Success(c, "OK", period)
}

// =======================
// PATCH /api/a/timesheet-periods/:id
// =======================
func (pc *TimesheetPeriodController) UpdatePeriod(c *fiber.Ctx) error {
	period, err := pc.findOrgPeriod(c)
	if err != nil {
		return err
	}
	if period.IsLocked {
		return helper.Error(c, fiber.StatusConflict, "Period is locked")
	}

	var req timesheetDTO.UpdateTimesheetPeriodRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	req.ApplyToModel(period)
	if err := pc.DB.Save(period).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update period")
	}
	return helper.Success(c, "Timesheet period updated", period)
}

// =======================
// POST /api/a/timesheet-periods/:id/close
// Aggregates approved entry totals into the period and stops submissions.
// =======================
func (pc *TimesheetPeriodController) ClosePeriod(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	period, err := pc.findOrgPeriod(c)
	if err != nil {
		return err
	}

	if err := period.Close(userID, time.Now().UTC()); err != nil {
		return helper.Error(c, fiber.StatusConflict, err.Error())
	}

	type totals struct {
		Regular  float64
		Overtime float64
		Billable float64
	}
	var agg totals
	err = pc.DB.Model(&timeEntryModel.TimeEntryModel{}).
		Where("organization_id = ? AND is_deleted = ? AND status = ? AND date >= ? AND date <= ?",
			period.OrganizationID, false, timeEntryModel.StatusApproved, period.StartDate, period.EndDate).
		Select(`
			COALESCE(SUM(regular_hours), 0)   AS regular,
			COALESCE(SUM(overtime_hours), 0)  AS overtime,
			COALESCE(SUM(billable_amount), 0) AS billable`).
		Scan(&agg).Error
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to aggregate entries")
	}

	period.TotalRegularHours = decimal.NewFromFloat(agg.Regular).Round(2)
	period.TotalOvertimeHours = decimal.NewFromFloat(agg.Overtime).Round(2)
	period.TotalBillable = decimal.NewFromFloat(agg.Billable).Round(2)

	if err := pc.DB.Save(period).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to close period")
	}
	return helper.Success(c, "Timesheet period closed", period)
}

// =======================
// POST /api/a/timesheet-periods/:id/lock
// =======================
func (pc *TimesheetPeriodController) LockPeriod(c *fiber.Ctx) error {
	period, err := pc.findOrgPeriod(c)
	if err != nil {
		return err
	}

	if err := period.Lock(); err != nil {
		return helper.Error(c, fiber.StatusConflict, err.Error())
	}

	now := time.Now().UTC()
	period.PayrollProcessed = true
	period.PayrollProcessedAt = &now

	if err := pc.DB.Save(period).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to lock period")
	}
	return helper.Success(c, "Timesheet period locked", period)
}

// =======================
// DELETE /api/a/timesheet-periods/:id
// =======================
func (pc *TimesheetPeriodController) DeletePeriod(c *fiber.Ctx) error {
	period, err := pc.findOrgPeriod(c)
	if err != nil {
		return err
	}
	if period.IsLocked {
		return helper.Error(c, fiber.StatusConflict, "Period is locked")
	}

	period.MarkDeleted()
	if err := pc.DB.Save(period).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to delete period")
	}
	return helper.Success(c, "Timesheet period deleted", nil)
}

func (pc *TimesheetPeriodController) findOrgPeriod(c *fiber.Ctx) (*timesheetModel.TimesheetPeriodModel, error) {
	orgID, err := helper.GetOrganizationIDFromToken(c)
	if err != nil {
		return nil, err
	}

	var period timesheetModel.TimesheetPeriodModel
	err = pc.DB.Where("id = ? AND organization_id = ? AND is_deleted = ?", c.Params("id"), orgID, false).
		Limit(1).Find(&period).Error
	if err != nil {
		return nil, helper.Error(c, fiber.StatusInternalServerError, "DB error")
	}
	if period.ID == uuid.Nil {
		return nil, helper.Error(c, fiber.StatusNotFound, "Timesheet period not found")
	}
	return &period, nil
}

package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	timeEntryDTO "kerjaku_backend/internals/features/time_tracking/time_entry/dto"
	timeEntryModel "kerjaku_backend/internals/features/time_tracking/time_entry/model"
	timeEntryService "kerjaku_backend/internals/features/time_tracking/time_entry/service"
	userModel "kerjaku_backend/internals/features/users/user/model"
	helper "kerjaku_backend/internals/helpers"
)

type TimeEntryController struct {
	DB *gorm.DB
}

func NewTimeEntryController(db *gorm.DB) *TimeEntryController {
	return &TimeEntryController{DB: db}
}

var validate = validator.New()

// mapServiceError turns a time tracking service error into an HTTP response.
func mapServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, timeEntryService.ErrNotFound):
		return helper.Error(c, fiber.StatusNotFound, "Time entry not found")
	case errors.Is(err, timeEntryService.ErrPermissionDenied):
		return helper.Error(c, fiber.StatusForbidden, "Not allowed")
	case errors.Is(err, timeEntryService.ErrEntryLocked):
		return helper.Error(c, fiber.StatusConflict, "Time entry is locked")
	case errors.Is(err, timeEntryService.ErrAlreadyActive),
		errors.Is(err, timeEntryService.ErrBreakAlreadyActive):
		return helper.Error(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, timeEntryService.ErrNoActiveEntry),
		errors.Is(err, timeEntryService.ErrNoActiveBreak),
		errors.Is(err, timeEntryService.ErrInvalidInterval),
		errors.Is(err, timeEntryService.ErrFieldNotAllowed):
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, timeEntryModel.ErrInvalidTransition):
		return helper.Error(c, fiber.StatusConflict, err.Error())
	default:
		return helper.Error(c, fiber.StatusInternalServerError, "Internal error")
	}
}

func (tc *TimeEntryController) actor(c *fiber.Ctx) (*userModel.UserModel, error) {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return nil, err
	}
	var user userModel.UserModel
	if err := tc.DB.First(&user, "id = ? AND is_deleted = ?", userID, false).Error; err != nil {
		return nil, helper.Error(c, fiber.StatusUnauthorized, "User not found")
	}
	return &user, nil
}

// =======================
// GET /api/u/time-entries
// =======================
func (tc *TimeEntryController) GetMyEntries(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	paging := helper.ResolvePaging(c, 20, 100)

	q := tc.DB.Model(&timeEntryModel.TimeEntryModel{}).
		Where("user_id = ? AND is_deleted = ?", userID, false)
	if from := c.Query("from"); from != "" {
		q = q.Where("date >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		q = q.Where("date <= ?", to)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count entries")
	}

	var entries []timeEntryModel.TimeEntryModel
	if err := q.Order("clock_in DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&entries).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch entries")
	}

	return helper.Success(c, "OK", fiber.Map{
		"time_entries": entries,
		"pagination":   helper.BuildPagination(paging, total, len(entries)),
	})
}

// =======================
// POST /api/u/time-entries — manual backdated entry
// =======================
func (tc *TimeEntryController) CreateEntry(c *fiber.Ctx) error {
	orgID, err := helper.GetOrganizationIDFromToken(c)
	if err != nil {
		return err
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req timeEntryDTO.CreateTimeEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	entry := req.ToModel(orgID, userID)
	if err := timeEntryService.CreateManualEntry(tc.DB, entry, time.Now().UTC()); err != nil {
		return mapServiceError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Time entry created", entry)
}

// =======================
// GET /api/u/time-entries/current
// =======================
func (tc *TimeEntryController) GetCurrent(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var entry timeEntryModel.TimeEntryModel
	err = tc.DB.Where("user_id = ? AND clock_out IS NULL AND is_deleted = ?", userID, false).
		Limit(1).Find(&entry).Error
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "DB error")
	}
	if entry.ID == uuid.Nil {
		return helper.Success(c, "No active entry", nil)
	}

	var openBreak timeEntryModel.BreakEntryModel
	tc.DB.Where("time_entry_id = ? AND end_time IS NULL AND is_deleted = ?", entry.ID, false).
		Limit(1).Find(&openBreak)

	resp := fiber.Map{"time_entry": entry}
	if openBreak.ID != uuid.Nil {
		resp["open_break"] = openBreak
	}
	return helper.Success(c, "OK", resp)
}

// =======================
// GET /api/u/time-entries/summary?from=&to=
// =======================
func (tc *TimeEntryController) GetSummary(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	type row struct {
		TotalHours     float64 `json:"total_hours"`
		RegularHours   float64 `json:"regular_hours"`
		OvertimeHours  float64 `json:"overtime_hours"`
		BreakHours     float64 `json:"break_hours"`
		BillableAmount float64 `json:"billable_amount"`
		Entries        int64   `json:"entries"`
	}

	q := tc.DB.Model(&timeEntryModel.TimeEntryModel{}).
		Where("user_id = ? AND is_deleted = ?", userID, false)
	if from := c.Query("from"); from != "" {
		q = q.Where("date >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		q = q.Where("date <= ?", to)
	}

	var summary row
	err = q.Select(`
		COALESCE(SUM(total_hours), 0)     AS total_hours,
		COALESCE(SUM(regular_hours), 0)   AS regular_hours,
		COALESCE(SUM(overtime_hours), 0)  AS overtime_hours,
		COALESCE(SUM(break_hours), 0)     AS break_hours,
		COALESCE(SUM(billable_amount), 0) AS billable_amount,
		COUNT(*)                          AS entries`).
		Scan(&summary).Error
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to aggregate")
	}

	return helper.Success(c, "OK", summary)
}

// =======================
// POST /api/u/time-entries/clock-in
// =======================
func (tc *TimeEntryController) ClockIn(c *fiber.Ctx) error {
	orgID, err := helper.GetOrganizationIDFromToken(c)
	if err != nil {
		return err
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req timeEntryDTO.ClockInRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request format")
	}

	entry, err := timeEntryService.ClockIn(tc.DB, orgID, userID, timeEntryService.ClockInRequest{
		ProjectID:   req.ProjectID,
		TaskID:      req.TaskID,
		Description: req.Description,
		IsRemote:    req.IsRemote,
		Location:    req.Location,
	}, time.Now().UTC())
	if err != nil {
		return mapServiceError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Clocked in", entry)
}

// =======================
// POST /api/u/time-entries/clock-out
// =======================
func (tc *TimeEntryController) ClockOut(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req timeEntryDTO.ClockOutRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request format")
	}

	entry, err := timeEntryService.ClockOut(tc.DB, userID, req.Location, time.Now().UTC())
	if err != nil {
		return mapServiceError(c, err)
	}
	return helper.Success(c, "Clocked out", entry)
}

// =======================
// GET /api/u/time-entries/:id
// =======================
func (tc *TimeEntryController) GetEntry(c *fiber.Ctx) error {
	entry, err := tc.findMyEntry(c)
	if err != nil {
		return err
	}

	var breaks []timeEntryModel.BreakEntryModel
	if err := tc.DB.Where("time_entry_id = ? AND is_deleted = ?", entry.ID, false).
		Order("start_time ASC").Find(&breaks).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch breaks")
	}

	return helper.Success(c, "OK", fiber.Map{
		"time_entry": entry,
		"breaks":     breaks,
	})
}

// =======================
// PATCH /api/u/time-entries/:id
// =======================
func (tc *TimeEntryController) UpdateEntry(c *fiber.Ctx) error {
	actor, err := tc.actor(c)
	if err != nil {
		return err
	}
	entryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid entry id")
	}

	var req timeEntryDTO.UpdateTimeEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request format")
	}

	entry, err := timeEntryService.UpdateEntry(tc.DB, entryID, actor, func(e *timeEntryModel.TimeEntryModel) {
		req.ApplyToModel(e)
	}, time.Now().UTC())
	if err != nil {
		return mapServiceError(c, err)
	}
	return helper.Success(c, "Time entry updated", entry)
}

// =======================
// DELETE /api/u/time-entries/:id
// =======================
func (tc *TimeEntryController) DeleteEntry(c *fiber.Ctx) error {
	actor, err := tc.actor(c)
	if err != nil {
		return err
	}
	entryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid entry id")
	}

	if err := timeEntryService.DeleteEntry(tc.DB, entryID, actor); err != nil {
		return mapServiceError(c, err)
	}
	return helper.Success(c, "Time entry deleted", nil)
}

// =======================
// POST /api/u/time-entries/:id/start-break
// =======================
func (tc *TimeEntryController) StartBreak(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	entryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid entry id")
	}

	var req timeEntryDTO.StartBreakRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	b, err := timeEntryService.StartBreak(tc.DB, entryID, userID, req.BreakType, req.IsPaid, time.Now().UTC())
	if err != nil {
		return mapServiceError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Break started", b)
}

// =======================
// POST /api/u/time-entries/:id/end-break
// =======================
func (tc *TimeEntryController) EndBreak(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	entryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid entry id")
	}

	b, err := timeEntryService.EndBreak(tc.DB, entryID, userID, time.Now().UTC())
	if err != nil {
		return mapServiceError(c, err)
	}
	return helper.Success(c, "Break ended", b)
}

// =======================
// POST /api/u/time-entries/:id/submit
// =======================
func (tc *TimeEntryController) Submit(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	entryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid entry id")
	}

	entry, err := timeEntryService.SubmitEntry(tc.DB, entryID, userID, time.Now().UTC())
	if err != nil {
		return mapServiceError(c, err)
	}
	return helper.Success(c, "Time entry submitted", entry)
}

// =======================
// POST /api/u/time-entries/:id/modification-requests
// =======================
func (tc *TimeEntryController) RequestModification(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	entryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid entry id")
	}

	var req timeEntryDTO.ModificationRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	mr, err := timeEntryService.CreateModificationRequest(tc.DB, entryID, userID, req.Changes, req.Reason)
	if err != nil {
		return mapServiceError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Modification request created", mr)
}

func (tc *TimeEntryController) findMyEntry(c *fiber.Ctx) (*timeEntryModel.TimeEntryModel, error) {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return nil, err
	}

	var entry timeEntryModel.TimeEntryModel
	err = tc.DB.Where("id = ? AND user_id = ? AND is_deleted = ?", c.Params("id"), userID, false).
		Limit(1).Find(&entry).Error
	if err != nil {
		return nil, helper.Error(c, fiber.StatusInternalServerError, "DB error")
	}
	if entry.ID == uuid.Nil {
		return nil, helper.Error(c, fiber.StatusNotFound, "Time entry not found")
	}
	return &entry, nil
}

package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	timeEntryDTO "kerjaku_backend/internals/features/time_tracking/time_entry/dto"
	timeEntryModel "kerjaku_backend/internals/features/time_tracking/time_entry/model"
	timeEntryService "kerjaku_backend/internals/features/time_tracking/time_entry/service"
	helper "kerjaku_backend/internals/helpers"
)

// =======================
// GET /api/a/time-entries
// =======================
func (tc *TimeEntryController) GetOrgEntries(c *fiber.Ctx) error {
	orgID, err := helper.GetOrganizationIDFromToken(c)
	if err != nil {
		return err
	}
	paging := helper.ResolvePaging(c, 20, 100)

	q := tc.DB.Model(&timeEntryModel.TimeEntryModel{}).
		Where("organization_id = ? AND is_deleted = ?", orgID, false)
	if userID := c.Query("user_id"); userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if from := c.Query("from"); from != "" {
		q = q.Where("date >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		q = q.Where("date <= ?", to)
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
// POST /api/a/time-entries/:id/approve
// =======================
func (tc *TimeEntryController) Approve(c *fiber.Ctx) error {
	actor, err := tc.actor(c)
	if err != nil {
		return err
	}
	entryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid entry id")
	}

	var req timeEntryDTO.ReviewRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request format")
	}

	entry, err := timeEntryService.ApproveEntry(tc.DB, entryID, actor, req.Notes, time.Now().UTC())
	if err != nil {
		return mapServiceError(c, err)
	}
	return helper.Success(c, "Time entry approved", entry)
}

// =======================
// POST /api/a/time-entries/:id/reject
// =======================
func (tc *TimeEntryController) Reject(c *fiber.Ctx) error {
	actor, err := tc.actor(c)
	if err != nil {
		return err
	}
	entryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid entry id")
	}

	var req timeEntryDTO.ReviewRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request format")
	}

	entry, err := timeEntryService.RejectEntry(tc.DB, entryID, actor, req.Notes, time.Now().UTC())
	if err != nil {
		return mapServiceError(c, err)
	}
	return helper.Success(c, "Time entry rejected", entry)
}

// =======================
// POST /api/a/time-entries/:id/reset-draft
// =======================
func (tc *TimeEntryController) ResetDraft(c *fiber.Ctx) error {
	actor, err := tc.actor(c)
	if err != nil {
		return err
	}
	entryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid entry id")
	}

	entry, err := timeEntryService.ResetEntryToDraft(tc.DB, entryID, actor)
	if err != nil {
		return mapServiceError(c, err)
	}
	return helper.Success(c, "Time entry reset to draft", entry)
}

// =======================
// GET /api/a/modification-requests
// =======================
func (tc *TimeEntryController) GetModificationRequests(c *fiber.Ctx) error {
	orgID, err := helper.GetOrganizationIDFromToken(c)
	if err != nil {
		return err
	}
	paging := helper.ResolvePaging(c, 20, 100)

	q := tc.DB.Model(&timeEntryModel.TimeModificationRequestModel{}).
		Where("organization_id = ? AND is_deleted = ?", orgID, false)
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	} else {
		q = q.Where("status = ?", timeEntryModel.ModRequestPending)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count requests")
	}

	var requests []timeEntryModel.TimeModificationRequestModel
	if err := q.Order("created_at ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&requests).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch requests")
	}

	return helper.Success(c, "OK", fiber.Map{
		"modification_requests": requests,
		"pagination":            helper.BuildPagination(paging, total, len(requests)),
	})
}

// =======================
// POST /api/a/modification-requests/:id/approve
// =======================
func (tc *TimeEntryController) ApproveModification(c *fiber.Ctx) error {
	actor, err := tc.actor(c)
	if err != nil {
		return err
	}
	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request id")
	}

	var req timeEntryDTO.ReviewRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request format")
	}

	mr, err := timeEntryService.ApproveModificationRequest(tc.DB, requestID, actor, req.Notes, time.Now().UTC())
	if err != nil {
		return mapServiceError(c, err)
	}
	return helper.Success(c, "Modification request approved", mr)
}

// =======================
// POST /api/a/modification-requests/:id/reject
// =======================
func (tc *TimeEntryController) RejectModification(c *fiber.Ctx) error {
	actor, err := tc.actor(c)
	if err != nil {
		return err
	}
	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request id")
	}

	var req timeEntryDTO.ReviewRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request format")
	}

	mr, err := timeEntryService.RejectModificationRequest(tc.DB, requestID, actor, req.Notes, time.Now().UTC())
	if err != nil {
		return mapServiceError(c, err)
	}
	return helper.Success(c, "Modification request rejected", mr)
}

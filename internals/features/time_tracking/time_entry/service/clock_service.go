package service

import (
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	projectModel "kerjaku_backend/internals/features/projects/project/model"
	timeEntryModel "kerjaku_backend/internals/features/time_tracking/time_entry/model"
	userModel "kerjaku_backend/internals/features/users/user/model"
)

// lockForUpdate adds a row lock on dialects that support it. Clock-out and
// break start/end race on the same entry row; the lock serializes them.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// ClockInRequest carries the optional attributes of a new session.
type ClockInRequest struct {
	ProjectID   *uuid.UUID
	TaskID      *uuid.UUID
	Description string
	IsRemote    bool
	Location    datatypes.JSON
}

// ClockIn opens a new time entry for the user. Fails with ErrAlreadyActive
// when an open entry exists.
func ClockIn(db *gorm.DB, orgID, userID uuid.UUID, req ClockInRequest, now time.Time) (*timeEntryModel.TimeEntryModel, error) {
	var entry *timeEntryModel.TimeEntryModel

	err := db.Transaction(func(tx *gorm.DB) error {
		var open timeEntryModel.TimeEntryModel
		err := lockForUpdate(tx).
			Where("user_id = ? AND clock_out IS NULL AND is_deleted = ?", userID, false).
			Limit(1).Find(&open).Error
		if err != nil {
			return err
		}
		if open.ID != uuid.Nil {
			return ErrAlreadyActive
		}

		var user userModel.UserModel
		if err := tx.First(&user, "id = ? AND is_deleted = ?", userID, false).Error; err != nil {
			return ErrNotFound
		}

		e := &timeEntryModel.TimeEntryModel{
			UserID:          userID,
			ProjectID:       req.ProjectID,
			TaskID:          req.TaskID,
			DepartmentID:    user.DepartmentID,
			Date:            now.Truncate(24 * time.Hour),
			ClockIn:         now,
			Description:     req.Description,
			Status:          timeEntryModel.StatusDraft,
			IsBillable:      true,
			HourlyRate:      user.HourlyRate,
			ClockInLocation: req.Location,
			IsRemote:        req.IsRemote,
		}
		e.OrganizationID = orgID

		if req.ProjectID != nil {
			var project projectModel.ProjectModel
			err := tx.First(&project, "id = ? AND organization_id = ? AND is_deleted = ?",
				*req.ProjectID, orgID, false).Error
			if err != nil {
				return ErrNotFound
			}
			ok, err := project.CanUserLogTime(tx, userID)
			if err != nil {
				return err
			}
			if !ok {
				return ErrPermissionDenied
			}
			e.IsBillable = project.IsBillable
			if project.HourlyRate != nil {
				e.HourlyRate = project.HourlyRate
			}
		}

		if err := applyRecompute(tx, e, nil, now); err != nil {
			return err
		}
		if err := tx.Create(e).Error; err != nil {
			return err
		}
		entry = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// ClockOut closes the user's active entry, ends any open break at the same
// instant, and recomputes the derived fields.
func ClockOut(db *gorm.DB, userID uuid.UUID, location datatypes.JSON, now time.Time) (*timeEntryModel.TimeEntryModel, error) {
	var entry *timeEntryModel.TimeEntryModel

	err := db.Transaction(func(tx *gorm.DB) error {
		var e timeEntryModel.TimeEntryModel
		err := lockForUpdate(tx).
			Where("user_id = ? AND clock_out IS NULL AND is_deleted = ?", userID, false).
			Limit(1).Find(&e).Error
		if err != nil {
			return err
		}
		if e.ID == uuid.Nil {
			return ErrNoActiveEntry
		}
		if now.Before(e.ClockIn) {
			return ErrInvalidInterval
		}

		// close a forgotten open break at the clock-out instant
		var openBreak timeEntryModel.BreakEntryModel
		err = tx.Where("time_entry_id = ? AND end_time IS NULL AND is_deleted = ?", e.ID, false).
			Limit(1).Find(&openBreak).Error
		if err != nil {
			return err
		}
		if openBreak.ID != uuid.Nil {
			openBreak.EndTime = &now
			minutes := int(now.Sub(openBreak.StartTime) / time.Minute)
			openBreak.DurationMinutes = &minutes
			if err := tx.Save(&openBreak).Error; err != nil {
				return err
			}
		}

		e.ClockOut = &now
		e.ClockOutLocation = location
		if err := applyRecompute(tx, &e, nil, now); err != nil {
			return err
		}
		if err := tx.Save(&e).Error; err != nil {
			return err
		}
		entry = &e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// StartBreak opens a break on an active entry. One open break per entry.
func StartBreak(db *gorm.DB, entryID, userID uuid.UUID, breakType string, isPaid bool, now time.Time) (*timeEntryModel.BreakEntryModel, error) {
	var created *timeEntryModel.BreakEntryModel

	err := db.Transaction(func(tx *gorm.DB) error {
		var e timeEntryModel.TimeEntryModel
		err := lockForUpdate(tx).
			Where("id = ? AND is_deleted = ?", entryID, false).
			Limit(1).Find(&e).Error
		if err != nil {
			return err
		}
		if e.ID == uuid.Nil {
			return ErrNotFound
		}
		if e.UserID != userID {
			return ErrPermissionDenied
		}
		if !e.IsActive() {
			return ErrNoActiveEntry
		}

		var count int64
		err = tx.Model(&timeEntryModel.BreakEntryModel{}).
			Where("time_entry_id = ? AND end_time IS NULL AND is_deleted = ?", e.ID, false).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrBreakAlreadyActive
		}

		if breakType == "" {
			breakType = timeEntryModel.BreakTypeShort
		}
		b := &timeEntryModel.BreakEntryModel{
			TimeEntryID: e.ID,
			BreakType:   breakType,
			StartTime:   now,
			IsPaid:      isPaid,
		}
		if err := tx.Create(b).Error; err != nil {
			return err
		}
		created = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// EndBreak closes the entry's open break and recomputes the entry.
func EndBreak(db *gorm.DB, entryID, userID uuid.UUID, now time.Time) (*timeEntryModel.BreakEntryModel, error) {
	var closed *timeEntryModel.BreakEntryModel

	err := db.Transaction(func(tx *gorm.DB) error {
		var e timeEntryModel.TimeEntryModel
		err := lockForUpdate(tx).
			Where("id = ? AND is_deleted = ?", entryID, false).
			Limit(1).Find(&e).Error
		if err != nil {
			return err
		}
		if e.ID == uuid.Nil {
			return ErrNotFound
		}
		if e.UserID != userID {
			return ErrPermissionDenied
		}

		var b timeEntryModel.BreakEntryModel
		err = tx.Where("time_entry_id = ? AND end_time IS NULL AND is_deleted = ?", e.ID, false).
			Limit(1).Find(&b).Error
		if err != nil {
			return err
		}
		if b.ID == uuid.Nil {
			return ErrNoActiveBreak
		}
		if now.Before(b.StartTime) {
			return ErrInvalidInterval
		}

		b.EndTime = &now
		minutes := int(now.Sub(b.StartTime) / time.Minute)
		b.DurationMinutes = &minutes
		if err := tx.Save(&b).Error; err != nil {
			return err
		}

		if err := applyRecompute(tx, &e, nil, now); err != nil {
			return err
		}
		if err := tx.Save(&e).Error; err != nil {
			return err
		}
		closed = &b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return closed, nil
}

// applyRecompute loads the entry's breaks and user limits, runs the pure
// calculator, and writes the result onto the entry. breaks may be passed in
// to skip the reload.
func applyRecompute(tx *gorm.DB, e *timeEntryModel.TimeEntryModel, breaks []timeEntryModel.BreakEntryModel, now time.Time) error {
	if breaks == nil {
		if err := tx.Where("time_entry_id = ? AND is_deleted = ?", e.ID, false).
			Order("start_time ASC").
			Find(&breaks).Error; err != nil {
			return err
		}
	}

	dailyLimit, multiplier := userLimits(tx, e.UserID)

	in := CalcInput{
		ClockIn:            e.ClockIn,
		ClockOut:           e.ClockOut,
		Now:                now,
		DailyLimit:         dailyLimit,
		OvertimeMultiplier: multiplier,
		IsBillable:         e.IsBillable,
		HourlyRate:         e.HourlyRate,
	}
	for _, b := range breaks {
		in.Breaks = append(in.Breaks, BreakInput{
			Start:           b.StartTime,
			End:             b.EndTime,
			DurationMinutes: b.DurationMinutes,
			IsPaid:          b.IsPaid,
		})
	}

	res, err := Recompute(in)
	if err != nil {
		return err
	}

	e.RegularHours = res.RegularHours
	e.OvertimeHours = res.OvertimeHours
	e.TotalHours = res.TotalHours
	e.BreakHours = res.BreakHours
	e.BillableAmount = res.BillableAmount
	return nil
}

// userLimits reads the user's compliance settings, falling back to the
// 8h/1.5x defaults when no row exists.
func userLimits(tx *gorm.DB, userID uuid.UUID) (int, decimal.Decimal) {
	var settings userModel.ComplianceSettingsModel
	err := tx.Where("user_id = ?", userID).Limit(1).Find(&settings).Error
	if err != nil {
		log.Println("[ERROR] Failed to load compliance settings, using defaults:", err)
		return 8, decimal.NewFromFloat(1.5)
	}
	if settings.UserID != userID {
		return 8, decimal.NewFromFloat(1.5)
	}
	return settings.MaxHoursPerDay, settings.OvertimeRateMultiplier
}

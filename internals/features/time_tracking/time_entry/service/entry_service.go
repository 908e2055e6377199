package service

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	timeEntryModel "kerjaku_backend/internals/features/time_tracking/time_entry/model"
	userModel "kerjaku_backend/internals/features/users/user/model"
)

// CreateManualEntry persists a backdated entry (both clock times supplied)
// with the derived fields computed up front.
func CreateManualEntry(db *gorm.DB, e *timeEntryModel.TimeEntryModel, now time.Time) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := applyRecompute(tx, e, nil, now); err != nil {
			return err
		}
		return tx.Create(e).Error
	})
}

// UpdateEntry applies a mutation to an entry under the edit gate and
// recomputes the derived fields. apply runs inside the transaction.
func UpdateEntry(db *gorm.DB, entryID uuid.UUID, actor *userModel.UserModel, apply func(*timeEntryModel.TimeEntryModel), now time.Time) (*timeEntryModel.TimeEntryModel, error) {
	var entry *timeEntryModel.TimeEntryModel

	err := db.Transaction(func(tx *gorm.DB) error {
		e, err := lockEntry(tx, entryID)
		if err != nil {
			return err
		}

		ok, err := CanBeEditedBy(tx, e, actor)
		if err != nil {
			return err
		}
		if !ok {
			if e.IsLocked {
				return ErrEntryLocked
			}
			return ErrPermissionDenied
		}

		apply(e)
		if err := applyRecompute(tx, e, nil, now); err != nil {
			return err
		}
		if err := tx.Save(e).Error; err != nil {
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

// AutoStopEntry force-closes a runaway open entry at clockIn + maxShift,
// closing any open break at the same instant. Used by the compliance sweep.
func AutoStopEntry(db *gorm.DB, entryID uuid.UUID, maxShift time.Duration, now time.Time) (*timeEntryModel.TimeEntryModel, error) {
	var entry *timeEntryModel.TimeEntryModel

	err := db.Transaction(func(tx *gorm.DB) error {
		e, err := lockEntry(tx, entryID)
		if err != nil {
			return err
		}
		if e.ClockOut != nil {
			return ErrInvalidInterval
		}

		stopAt := e.ClockIn.Add(maxShift)
		e.ClockOut = &stopAt

		if err := tx.Model(&timeEntryModel.BreakEntryModel{}).
			Where("time_entry_id = ? AND end_time IS NULL AND is_deleted = ?", e.ID, false).
			Update("end_time", stopAt).Error; err != nil {
			return err
		}

		if err := applyRecompute(tx, e, nil, now); err != nil {
			return err
		}
		if err := tx.Save(e).Error; err != nil {
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

// DeleteEntry soft-deletes an entry under the same edit gate.
func DeleteEntry(db *gorm.DB, entryID uuid.UUID, actor *userModel.UserModel) error {
	return db.Transaction(func(tx *gorm.DB) error {
		e, err := lockEntry(tx, entryID)
		if err != nil {
			return err
		}

		ok, err := CanBeEditedBy(tx, e, actor)
		if err != nil {
			return err
		}
		if !ok {
			if e.IsLocked {
				return ErrEntryLocked
			}
			return ErrPermissionDenied
		}

		e.MarkDeleted()
		return tx.Save(e).Error
	})
}

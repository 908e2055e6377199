package service

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	projectModel "kerjaku_backend/internals/features/projects/project/model"
	timeEntryModel "kerjaku_backend/internals/features/time_tracking/time_entry/model"
	userModel "kerjaku_backend/internals/features/users/user/model"
	userService "kerjaku_backend/internals/features/users/user/service"
)

// CanBeEditedBy gates direct edits to an entry:
//   - the owner, while the entry is unlocked and not approved
//   - anyone who manages the owner (reports tree, org admins)
//   - the project's manager
func CanBeEditedBy(db *gorm.DB, entry *timeEntryModel.TimeEntryModel, actor *userModel.UserModel) (bool, error) {
	if actor == nil {
		return false, nil
	}

	if actor.ID == entry.UserID {
		return !entry.IsLocked && entry.Status != timeEntryModel.StatusApproved, nil
	}

	var owner userModel.UserModel
	if err := db.First(&owner, "id = ?", entry.UserID).Error; err != nil {
		return false, err
	}
	manages, err := userService.ManagesUser(db, actor, &owner)
	if err != nil {
		return false, err
	}
	if manages {
		return true, nil
	}

	if entry.ProjectID != nil {
		var project projectModel.ProjectModel
		err := db.Where("id = ? AND is_deleted = ?", *entry.ProjectID, false).
			Limit(1).Find(&project).Error
		if err != nil {
			return false, err
		}
		if project.ProjectManagerID != nil && *project.ProjectManagerID == actor.ID {
			return true, nil
		}
	}
	return false, nil
}

// SubmitEntry moves the owner's draft into review.
func SubmitEntry(db *gorm.DB, entryID, ownerID uuid.UUID, now time.Time) (*timeEntryModel.TimeEntryModel, error) {
	var entry *timeEntryModel.TimeEntryModel
	err := db.Transaction(func(tx *gorm.DB) error {
		e, err := lockEntry(tx, entryID)
		if err != nil {
			return err
		}
		if e.UserID != ownerID {
			return ErrPermissionDenied
		}
		if err := e.Submit(now); err != nil {
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

// ApproveEntry finalizes a submitted entry. The approver must manage the
// owner. Approval locks the entry.
func ApproveEntry(db *gorm.DB, entryID uuid.UUID, approver *userModel.UserModel, notes string, now time.Time) (*timeEntryModel.TimeEntryModel, error) {
	return decideEntry(db, entryID, approver, notes, now, true)
}

// RejectEntry records the rejection without locking the entry.
func RejectEntry(db *gorm.DB, entryID uuid.UUID, rejector *userModel.UserModel, notes string, now time.Time) (*timeEntryModel.TimeEntryModel, error) {
	return decideEntry(db, entryID, rejector, notes, now, false)
}

func decideEntry(db *gorm.DB, entryID uuid.UUID, reviewer *userModel.UserModel, notes string, now time.Time, approve bool) (*timeEntryModel.TimeEntryModel, error) {
	var entry *timeEntryModel.TimeEntryModel
	err := db.Transaction(func(tx *gorm.DB) error {
		e, err := lockEntry(tx, entryID)
		if err != nil {
			return err
		}

		var owner userModel.UserModel
		if err := tx.First(&owner, "id = ?", e.UserID).Error; err != nil {
			return err
		}
		manages, err := userService.ManagesUser(tx, reviewer, &owner)
		if err != nil {
			return err
		}
		if !manages {
			return ErrPermissionDenied
		}

		if approve {
			err = e.Approve(reviewer.ID, notes, now)
		} else {
			err = e.Reject(reviewer.ID, notes, now)
		}
		if err != nil {
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

// ResetEntryToDraft re-opens a rejected entry. Allowed for the owner or
// anyone who could edit it.
func ResetEntryToDraft(db *gorm.DB, entryID uuid.UUID, actor *userModel.UserModel) (*timeEntryModel.TimeEntryModel, error) {
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
			return ErrPermissionDenied
		}
		if err := e.ResetToDraft(); err != nil {
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

func lockEntry(tx *gorm.DB, entryID uuid.UUID) (*timeEntryModel.TimeEntryModel, error) {
	var e timeEntryModel.TimeEntryModel
	err := lockForUpdate(tx).
		Where("id = ? AND is_deleted = ?", entryID, false).
		Limit(1).Find(&e).Error
	if err != nil {
		return nil, err
	}
	if e.ID == uuid.Nil {
		return nil, ErrNotFound
	}
	return &e, nil
}

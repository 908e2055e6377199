package service

import (
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	timeEntryModel "kerjaku_backend/internals/features/time_tracking/time_entry/model"
	userModel "kerjaku_backend/internals/features/users/user/model"
	userService "kerjaku_backend/internals/features/users/user/service"
)

// CreateModificationRequest proposes field changes to a submitted or
// approved entry. Keys outside the allow-list are rejected up front.
func CreateModificationRequest(db *gorm.DB, entryID, requesterID uuid.UUID, changes map[string]any, reason string) (*timeEntryModel.TimeModificationRequestModel, error) {
	if len(changes) == 0 {
		return nil, fmt.Errorf("%w: empty change set", ErrFieldNotAllowed)
	}
	for field := range changes {
		if !timeEntryModel.IsModifiableField(field) {
			return nil, fmt.Errorf("%w: %s", ErrFieldNotAllowed, field)
		}
	}

	var entry timeEntryModel.TimeEntryModel
	err := db.Where("id = ? AND is_deleted = ?", entryID, false).
		Limit(1).Find(&entry).Error
	if err != nil {
		return nil, err
	}
	if entry.ID == uuid.Nil {
		return nil, ErrNotFound
	}
	if entry.UserID != requesterID {
		return nil, ErrPermissionDenied
	}
	// draft and rejected entries are edited directly by the owner; only
	// entries already in or past review go through the request flow
	switch entry.Status {
	case timeEntryModel.StatusSubmitted, timeEntryModel.StatusPending, timeEntryModel.StatusApproved:
	default:
		return nil, fmt.Errorf("%w: modification request from %s", timeEntryModel.ErrInvalidTransition, entry.Status)
	}

	raw, err := sonic.Marshal(changes)
	if err != nil {
		return nil, err
	}

	req := &timeEntryModel.TimeModificationRequestModel{
		TimeEntryID:      entry.ID,
		RequestedByID:    requesterID,
		RequestedChanges: raw,
		Reason:           reason,
		Status:           timeEntryModel.ModRequestPending,
	}
	req.OrganizationID = entry.OrganizationID
	if err := db.Create(req).Error; err != nil {
		return nil, err
	}
	return req, nil
}

// ApproveModificationRequest applies the proposed changes onto the target
// entry, recomputes the derived fields when needed, and persists both rows
// in one transaction.
func ApproveModificationRequest(db *gorm.DB, requestID uuid.UUID, reviewer *userModel.UserModel, notes string, now time.Time) (*timeEntryModel.TimeModificationRequestModel, error) {
	var request *timeEntryModel.TimeModificationRequestModel

	err := db.Transaction(func(tx *gorm.DB) error {
		req, err := lockRequest(tx, requestID)
		if err != nil {
			return err
		}
		entry, err := lockEntry(tx, req.TimeEntryID)
		if err != nil {
			return err
		}
		if err := ensureReviewer(tx, reviewer, entry.UserID); err != nil {
			return err
		}
		if err := req.MarkApproved(reviewer.ID, notes, now); err != nil {
			return err
		}

		var changes map[string]any
		if err := sonic.Unmarshal(req.RequestedChanges, &changes); err != nil {
			return err
		}
		needsRecompute, err := applyChangesToEntry(entry, changes)
		if err != nil {
			return err
		}
		if needsRecompute {
			if err := applyRecompute(tx, entry, nil, now); err != nil {
				return err
			}
		}

		if err := tx.Save(entry).Error; err != nil {
			return err
		}
		if err := tx.Save(req).Error; err != nil {
			return err
		}
		request = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	return request, nil
}

// RejectModificationRequest records the decision; the entry is untouched.
func RejectModificationRequest(db *gorm.DB, requestID uuid.UUID, reviewer *userModel.UserModel, notes string, now time.Time) (*timeEntryModel.TimeModificationRequestModel, error) {
	var request *timeEntryModel.TimeModificationRequestModel

	err := db.Transaction(func(tx *gorm.DB) error {
		req, err := lockRequest(tx, requestID)
		if err != nil {
			return err
		}
		entry, err := lockEntry(tx, req.TimeEntryID)
		if err != nil {
			return err
		}
		if err := ensureReviewer(tx, reviewer, entry.UserID); err != nil {
			return err
		}
		if err := req.MarkRejected(reviewer.ID, notes, now); err != nil {
			return err
		}
		if err := tx.Save(req).Error; err != nil {
			return err
		}
		request = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	return request, nil
}

// applyChangesToEntry writes allow-listed fields onto the entry and reports
// whether a computation-affecting field changed.
func applyChangesToEntry(e *timeEntryModel.TimeEntryModel, changes map[string]any) (bool, error) {
	needsRecompute := false

	for field, value := range changes {
		switch field {
		case "clock_in":
			t, err := parseTimeValue(value)
			if err != nil || t == nil {
				return false, fmt.Errorf("%w: clock_in", ErrFieldNotAllowed)
			}
			e.ClockIn = *t
			needsRecompute = true
		case "clock_out":
			t, err := parseTimeValue(value)
			if err != nil {
				return false, fmt.Errorf("%w: clock_out", ErrFieldNotAllowed)
			}
			e.ClockOut = t
			needsRecompute = true
		case "description":
			s, _ := value.(string)
			e.Description = s
		case "project_id":
			id, err := parseUUIDValue(value)
			if err != nil {
				return false, fmt.Errorf("%w: project_id", ErrFieldNotAllowed)
			}
			e.ProjectID = id
		case "task_id":
			id, err := parseUUIDValue(value)
			if err != nil {
				return false, fmt.Errorf("%w: task_id", ErrFieldNotAllowed)
			}
			e.TaskID = id
		case "is_billable":
			b, ok := value.(bool)
			if !ok {
				return false, fmt.Errorf("%w: is_billable", ErrFieldNotAllowed)
			}
			e.IsBillable = b
			needsRecompute = true
		case "hourly_rate":
			d, err := parseDecimalValue(value)
			if err != nil {
				return false, fmt.Errorf("%w: hourly_rate", ErrFieldNotAllowed)
			}
			e.HourlyRate = d
			needsRecompute = true
		case "is_remote":
			b, ok := value.(bool)
			if !ok {
				return false, fmt.Errorf("%w: is_remote", ErrFieldNotAllowed)
			}
			e.IsRemote = b
		default:
			return false, fmt.Errorf("%w: %s", ErrFieldNotAllowed, field)
		}
	}
	return needsRecompute, nil
}

func parseTimeValue(value any) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	s, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("expected RFC3339 string")
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseUUIDValue(value any) (*uuid.UUID, error) {
	if value == nil {
		return nil, nil
	}
	s, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("expected uuid string")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseDecimalValue(value any) (*decimal.Decimal, error) {
	if value == nil {
		return nil, nil
	}
	switch v := value.(type) {
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return nil, err
		}
		return &d, nil
	case float64:
		d := decimal.NewFromFloat(v)
		return &d, nil
	default:
		return nil, fmt.Errorf("expected number or string")
	}
}

func ensureReviewer(tx *gorm.DB, reviewer *userModel.UserModel, ownerID uuid.UUID) error {
	var owner userModel.UserModel
	if err := tx.First(&owner, "id = ?", ownerID).Error; err != nil {
		return err
	}
	manages, err := userService.ManagesUser(tx, reviewer, &owner)
	if err != nil {
		return err
	}
	if !manages {
		return ErrPermissionDenied
	}
	return nil
}

func lockRequest(tx *gorm.DB, requestID uuid.UUID) (*timeEntryModel.TimeModificationRequestModel, error) {
	var req timeEntryModel.TimeModificationRequestModel
	err := lockForUpdate(tx).
		Where("id = ? AND is_deleted = ?", requestID, false).
		Limit(1).Find(&req).Error
	if err != nil {
		return nil, err
	}
	if req.ID == uuid.Nil {
		return nil, ErrNotFound
	}
	return &req, nil
}

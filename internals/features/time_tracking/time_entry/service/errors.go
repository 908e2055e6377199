package service

import "errors"

// Validation failures surfaced to the API layer. None are retried; the
// caller maps them to request errors.
var (
	ErrInvalidInterval    = errors.New("clock out is before clock in")
	ErrAlreadyActive      = errors.New("an active time entry already exists")
	ErrNoActiveEntry      = errors.New("no active time entry")
	ErrBreakAlreadyActive = errors.New("an open break already exists")
	ErrNoActiveBreak      = errors.New("no open break")
	ErrEntryLocked        = errors.New("time entry is locked")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrNotFound           = errors.New("not found")
	ErrFieldNotAllowed    = errors.New("field is not modifiable")
)

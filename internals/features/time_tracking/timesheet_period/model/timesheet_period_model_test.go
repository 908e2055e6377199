package model_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	timeEntryModel "kerjaku_backend/internals/features/time_tracking/time_entry/model"
	"kerjaku_backend/internals/features/time_tracking/timesheet_period/model"
)

func TestPeriodCloseThenLock(t *testing.T) {
	now := time.Now().UTC()
	closer := uuid.New()

	p := &model.TimesheetPeriodModel{IsOpen: true}

	// cannot lock while open
	assert.ErrorIs(t, p.Lock(), timeEntryModel.ErrInvalidTransition)

	require.NoError(t, p.Close(closer, now))
	assert.False(t, p.IsOpen)
	assert.Equal(t, closer, *p.ClosedByID)
	assert.Equal(t, now, *p.ClosedAt)

	// close is not repeatable
	assert.ErrorIs(t, p.Close(closer, now), timeEntryModel.ErrInvalidTransition)

	require.NoError(t, p.Lock())
	assert.True(t, p.IsLocked)
}

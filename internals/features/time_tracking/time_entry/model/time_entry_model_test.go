package model_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kerjaku_backend/internals/features/time_tracking/time_entry/model"
)

func TestSubmitOnlyFromDraft(t *testing.T) {
	now := time.Now().UTC()

	e := &model.TimeEntryModel{Status: model.StatusDraft}
	require.NoError(t, e.Submit(now))
	assert.Equal(t, model.StatusSubmitted, e.Status)
	require.NotNil(t, e.SubmittedAt)
	assert.Equal(t, now, *e.SubmittedAt)

	// second submit fails
	err := e.Submit(now)
	assert.ErrorIs(t, err, model.ErrInvalidTransition)

	for _, status := range []string{model.StatusApproved, model.StatusRejected, model.StatusPending} {
		e := &model.TimeEntryModel{Status: status}
		assert.ErrorIs(t, e.Submit(now), model.ErrInvalidTransition, status)
	}
}

func TestApproveLocksEntry(t *testing.T) {
	now := time.Now().UTC()
	approver := uuid.New()

	for _, status := range []string{model.StatusSubmitted, model.StatusPending} {
		e := &model.TimeEntryModel{Status: status}
		require.NoError(t, e.Approve(approver, "looks good", now), status)
		assert.Equal(t, model.StatusApproved, e.Status)
		assert.True(t, e.IsLocked)
		assert.Equal(t, approver, *e.ApprovedByID)
		assert.Equal(t, "looks good", e.ApprovalNotes)
	}
}

func TestApproveFromWrongState(t *testing.T) {
	now := time.Now().UTC()
	for _, status := range []string{model.StatusDraft, model.StatusApproved, model.StatusRejected} {
		e := &model.TimeEntryModel{Status: status}
		err := e.Approve(uuid.New(), "", now)
		assert.ErrorIs(t, err, model.ErrInvalidTransition, status)
	}
}

func TestRejectDoesNotLock(t *testing.T) {
	now := time.Now().UTC()
	e := &model.TimeEntryModel{Status: model.StatusSubmitted}

	require.NoError(t, e.Reject(uuid.New(), "missing project", now))
	assert.Equal(t, model.StatusRejected, e.Status)
	assert.False(t, e.IsLocked)
}

func TestResetToDraftOnlyFromRejected(t *testing.T) {
	now := time.Now().UTC()
	e := &model.TimeEntryModel{Status: model.StatusSubmitted}
	require.NoError(t, e.Reject(uuid.New(), "fix times", now))

	require.NoError(t, e.ResetToDraft())
	assert.Equal(t, model.StatusDraft, e.Status)
	assert.Nil(t, e.SubmittedAt)
	assert.Nil(t, e.ApprovedByID)
	assert.Empty(t, e.ApprovalNotes)

	for _, status := range []string{model.StatusDraft, model.StatusSubmitted, model.StatusApproved} {
		e := &model.TimeEntryModel{Status: status}
		assert.ErrorIs(t, e.ResetToDraft(), model.ErrInvalidTransition, status)
	}
}

func TestModificationRequestDecidedOnce(t *testing.T) {
	now := time.Now().UTC()
	reviewer := uuid.New()

	r := &model.TimeModificationRequestModel{Status: model.ModRequestPending}
	require.NoError(t, r.MarkApproved(reviewer, "ok", now))
	assert.Equal(t, model.ModRequestApproved, r.Status)

	// terminal: neither decision applies twice
	assert.ErrorIs(t, r.MarkApproved(reviewer, "", now), model.ErrInvalidTransition)
	assert.ErrorIs(t, r.MarkRejected(reviewer, "", now), model.ErrInvalidTransition)
}

func TestModifiableFieldAllowList(t *testing.T) {
	assert.True(t, model.IsModifiableField("clock_out"))
	assert.True(t, model.IsModifiableField("description"))
	assert.False(t, model.IsModifiableField("status"))
	assert.False(t, model.IsModifiableField("is_locked"))
	assert.False(t, model.IsModifiableField("billable_amount"))
}

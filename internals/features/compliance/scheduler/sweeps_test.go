package scheduler_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"kerjaku_backend/internals/constants"
	alertModel "kerjaku_backend/internals/features/compliance/alert/model"
	"kerjaku_backend/internals/features/compliance/scheduler"
	timeEntryModel "kerjaku_backend/internals/features/time_tracking/time_entry/model"
	"kerjaku_backend/internals/features/time_tracking/time_entry/service"
	timesheetModel "kerjaku_backend/internals/features/time_tracking/timesheet_period/model"
	userModel "kerjaku_backend/internals/features/users/user/model"
)

func newSweepTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?mode=memory"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&userModel.UserModel{},
		&userModel.ComplianceSettingsModel{},
		&timeEntryModel.TimeEntryModel{},
		&timeEntryModel.BreakEntryModel{},
		&timesheetModel.TimesheetPeriodModel{},
		&alertModel.ComplianceAlertModel{},
	))
	return db
}

func seedSweepUser(t *testing.T, db *gorm.DB, orgID uuid.UUID) *userModel.UserModel {
	t.Helper()
	u := &userModel.UserModel{
		UserName: "u-" + uuid.NewString()[:8],
		FullName: "Sweep User",
		Email:    uuid.NewString()[:8] + "@example.com",
		Password: "hashed-password",
		Role:     constants.RoleEmployee,
		IsActive: true,
	}
	u.OrganizationID = &orgID
	require.NoError(t, db.Create(u).Error)
	return u
}

func TestMissingClockoutSweepStopsRunawayEntry(t *testing.T) {
	db := newSweepTestDB(t)
	orgID := uuid.New()
	user := seedSweepUser(t, db, orgID)

	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	entry, err := service.ClockIn(db, orgID, user.ID, service.ClockInRequest{}, start)
	require.NoError(t, err)

	// 26 hours later the entry is still open
	now := start.Add(26 * time.Hour)
	scheduler.SweepMissingClockouts(db, now)

	var stopped timeEntryModel.TimeEntryModel
	require.NoError(t, db.First(&stopped, "id = ?", entry.ID).Error)
	require.NotNil(t, stopped.ClockOut)
	assert.Equal(t, start.Add(24*time.Hour), stopped.ClockOut.UTC())

	var alerts []alertModel.ComplianceAlertModel
	require.NoError(t, db.Where("time_entry_id = ?", entry.ID).Find(&alerts).Error)
	require.Len(t, alerts, 1)
	assert.Equal(t, alertModel.AlertMissingClockout, alerts[0].AlertType)
	assert.Equal(t, alertModel.SeverityCritical, alerts[0].Severity)

	// second run leaves the closed entry alone and adds no duplicate alert
	scheduler.SweepMissingClockouts(db, now.Add(time.Hour))
	var count int64
	require.NoError(t, db.Model(&alertModel.ComplianceAlertModel{}).
		Where("time_entry_id = ?", entry.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestBreakReminderSweep(t *testing.T) {
	db := newSweepTestDB(t)
	orgID := uuid.New()
	user := seedSweepUser(t, db, orgID)

	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	entry, err := service.ClockIn(db, orgID, user.ID, service.ClockInRequest{}, start)
	require.NoError(t, err)

	// under the threshold, no alert
	scheduler.SweepBreakReminders(db, start.Add(3*time.Hour))
	var count int64
	require.NoError(t, db.Model(&alertModel.ComplianceAlertModel{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	// past the default 4 hour threshold with no break recorded
	scheduler.SweepBreakReminders(db, start.Add(5*time.Hour))
	var alert alertModel.ComplianceAlertModel
	require.NoError(t, db.First(&alert, "time_entry_id = ?", entry.ID).Error)
	assert.Equal(t, alertModel.AlertMissedBreak, alert.AlertType)

	// rerun does not duplicate while unresolved
	scheduler.SweepBreakReminders(db, start.Add(6*time.Hour))
	require.NoError(t, db.Model(&alertModel.ComplianceAlertModel{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestBreakReminderSkipsEntriesWithBreaks(t *testing.T) {
	db := newSweepTestDB(t)
	orgID := uuid.New()
	user := seedSweepUser(t, db, orgID)

	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	entry, err := service.ClockIn(db, orgID, user.ID, service.ClockInRequest{}, start)
	require.NoError(t, err)
	_, err = service.StartBreak(db, entry.ID, user.ID, timeEntryModel.BreakTypeLunch, false, start.Add(4*time.Hour))
	require.NoError(t, err)

	scheduler.SweepBreakReminders(db, start.Add(5*time.Hour))

	var count int64
	require.NoError(t, db.Model(&alertModel.ComplianceAlertModel{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestWeeklyOvertimeSweep(t *testing.T) {
	db := newSweepTestDB(t)
	orgID := uuid.New()
	user := seedSweepUser(t, db, orgID)

	// Monday through Thursday, 11 hours each: 44 > 40 weekly limit
	monday := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	for day := 0; day < 4; day++ {
		in := monday.AddDate(0, 0, day)
		out := in.Add(11 * time.Hour)
		e := &timeEntryModel.TimeEntryModel{
			UserID:   user.ID,
			Date:     in.Truncate(24 * time.Hour),
			ClockIn:  in,
			ClockOut: &out,
			Status:   timeEntryModel.StatusDraft,
		}
		e.OrganizationID = orgID
		require.NoError(t, service.CreateManualEntry(db, e, out))
	}

	now := monday.AddDate(0, 0, 4)
	scheduler.SweepWeeklyOvertime(db, now)

	var alert alertModel.ComplianceAlertModel
	require.NoError(t, db.First(&alert, "user_id = ? AND alert_type = ?", user.ID, alertModel.AlertOvertime).Error)
	assert.Equal(t, "40", alert.ThresholdValue.String())
	assert.Equal(t, "44", alert.ActualValue.String())

	// one per user per week
	scheduler.SweepWeeklyOvertime(db, now.Add(time.Hour))
	var count int64
	require.NoError(t, db.Model(&alertModel.ComplianceAlertModel{}).
		Where("user_id = ? AND alert_type = ?", user.ID, alertModel.AlertOvertime).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestProcessTimesheetPeriodsClosesPastDeadline(t *testing.T) {
	db := newSweepTestDB(t)
	orgID := uuid.New()
	user := seedSweepUser(t, db, orgID)

	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 6)
	deadline := end.AddDate(0, 0, 1)
	period := &timesheetModel.TimesheetPeriodModel{
		Name:               "2026-W10",
		StartDate:          start,
		EndDate:            end,
		IsOpen:             true,
		SubmissionDeadline: &deadline,
	}
	period.OrganizationID = orgID
	require.NoError(t, db.Create(period).Error)

	// a draft entry inside the period
	in := start.Add(9 * time.Hour)
	out := in.Add(8 * time.Hour)
	e := &timeEntryModel.TimeEntryModel{
		UserID:   user.ID,
		Date:     start,
		ClockIn:  in,
		ClockOut: &out,
		Status:   timeEntryModel.StatusDraft,
	}
	e.OrganizationID = orgID
	require.NoError(t, service.CreateManualEntry(db, e, out))

	scheduler.ProcessTimesheetPeriods(db, deadline.Add(time.Hour))

	var closed timesheetModel.TimesheetPeriodModel
	require.NoError(t, db.First(&closed, "id = ?", period.ID).Error)
	assert.False(t, closed.IsOpen)
	require.NotNil(t, closed.ClosedAt)

	var alert alertModel.ComplianceAlertModel
	require.NoError(t, db.First(&alert, "time_entry_id = ?", e.ID).Error)
	assert.Equal(t, alertModel.AlertLateSubmission, alert.AlertType)

	// the next weekly period is rolled automatically
	var next timesheetModel.TimesheetPeriodModel
	require.NoError(t, db.First(&next, "organization_id = ? AND is_open = ?", orgID, true).Error)
	assert.Equal(t, end.AddDate(0, 0, 1), next.StartDate.UTC())
	assert.Equal(t, end.AddDate(0, 0, 7), next.EndDate.UTC())

	// rerun leaves a single open period
	scheduler.ProcessTimesheetPeriods(db, deadline.Add(2*time.Hour))
	var open int64
	require.NoError(t, db.Model(&timesheetModel.TimesheetPeriodModel{}).
		Where("organization_id = ? AND is_open = ?", orgID, true).Count(&open).Error)
	assert.EqualValues(t, 1, open)
}

func TestProcessTimesheetPeriodsAggregatesApprovedTotals(t *testing.T) {
	db := newSweepTestDB(t)
	orgID := uuid.New()
	user := seedSweepUser(t, db, orgID)

	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 6)
	deadline := end.AddDate(0, 0, 1)
	period := &timesheetModel.TimesheetPeriodModel{
		Name:               "2026-W10",
		StartDate:          start,
		EndDate:            end,
		IsOpen:             true,
		SubmissionDeadline: &deadline,
	}
	period.OrganizationID = orgID
	require.NoError(t, db.Create(period).Error)

	in := start.Add(9 * time.Hour)
	out := in.Add(10 * time.Hour)
	e := &timeEntryModel.TimeEntryModel{
		UserID:   user.ID,
		Date:     start,
		ClockIn:  in,
		ClockOut: &out,
		Status:   timeEntryModel.StatusApproved,
	}
	e.OrganizationID = orgID
	require.NoError(t, service.CreateManualEntry(db, e, out))

	scheduler.ProcessTimesheetPeriods(db, deadline.Add(time.Hour))

	var closed timesheetModel.TimesheetPeriodModel
	require.NoError(t, db.First(&closed, "id = ?", period.ID).Error)
	assert.Equal(t, "8", closed.TotalRegularHours.String())
	assert.Equal(t, "2", closed.TotalOvertimeHours.String())
}

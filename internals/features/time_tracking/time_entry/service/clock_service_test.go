package service_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"kerjaku_backend/internals/constants"
	timeEntryModel "kerjaku_backend/internals/features/time_tracking/time_entry/model"
	"kerjaku_backend/internals/features/time_tracking/time_entry/service"
	userModel "kerjaku_backend/internals/features/users/user/model"
)

func newClockTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?mode=memory"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&userModel.UserModel{},
		&userModel.ComplianceSettingsModel{},
		&timeEntryModel.TimeEntryModel{},
		&timeEntryModel.BreakEntryModel{},
		&timeEntryModel.TimeModificationRequestModel{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, orgID uuid.UUID, role string) *userModel.UserModel {
	t.Helper()
	u := &userModel.UserModel{
		UserName: "u-" + uuid.NewString()[:8],
		FullName: "Test User",
		Email:    uuid.NewString()[:8] + "@example.com",
		Password: "hashed-password",
		Role:     role,
		IsActive: true,
	}
	u.OrganizationID = &orgID
	require.NoError(t, db.Create(u).Error)
	return u
}

func TestClockInThenOut(t *testing.T) {
	db := newClockTestDB(t)
	orgID := uuid.New()
	user := seedUser(t, db, orgID, constants.RoleEmployee)

	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	entry, err := service.ClockIn(db, orgID, user.ID, service.ClockInRequest{Description: "morning shift"}, start)
	require.NoError(t, err)
	assert.True(t, entry.IsActive())
	assert.Equal(t, timeEntryModel.StatusDraft, entry.Status)

	out, err := service.ClockOut(db, user.ID, nil, start.Add(8*time.Hour+30*time.Minute))
	require.NoError(t, err)
	require.NotNil(t, out.ClockOut)
	assert.Equal(t, "8.5", out.TotalHours.String())
	assert.Equal(t, "8", out.RegularHours.String())
	assert.Equal(t, "0.5", out.OvertimeHours.String())
}

func TestDoubleClockInFails(t *testing.T) {
	db := newClockTestDB(t)
	orgID := uuid.New()
	user := seedUser(t, db, orgID, constants.RoleEmployee)

	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	_, err := service.ClockIn(db, orgID, user.ID, service.ClockInRequest{}, now)
	require.NoError(t, err)

	_, err = service.ClockIn(db, orgID, user.ID, service.ClockInRequest{}, now.Add(time.Minute))
	assert.ErrorIs(t, err, service.ErrAlreadyActive)
}

func TestClockOutWithoutEntryFails(t *testing.T) {
	db := newClockTestDB(t)
	orgID := uuid.New()
	user := seedUser(t, db, orgID, constants.RoleEmployee)

	_, err := service.ClockOut(db, user.ID, nil, time.Now().UTC())
	assert.ErrorIs(t, err, service.ErrNoActiveEntry)
}

func TestBreakDiscipline(t *testing.T) {
	db := newClockTestDB(t)
	orgID := uuid.New()
	user := seedUser(t, db, orgID, constants.RoleEmployee)

	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	entry, err := service.ClockIn(db, orgID, user.ID, service.ClockInRequest{}, start)
	require.NoError(t, err)

	noon := start.Add(3 * time.Hour)
	_, err = service.StartBreak(db, entry.ID, user.ID, timeEntryModel.BreakTypeLunch, false, noon)
	require.NoError(t, err)

	// second open break is refused
	_, err = service.StartBreak(db, entry.ID, user.ID, timeEntryModel.BreakTypeShort, false, noon.Add(5*time.Minute))
	assert.ErrorIs(t, err, service.ErrBreakAlreadyActive)

	closed, err := service.EndBreak(db, entry.ID, user.ID, noon.Add(30*time.Minute))
	require.NoError(t, err)
	require.NotNil(t, closed.DurationMinutes)
	assert.Equal(t, 30, *closed.DurationMinutes)

	// nothing open anymore
	_, err = service.EndBreak(db, entry.ID, user.ID, noon.Add(time.Hour))
	assert.ErrorIs(t, err, service.ErrNoActiveBreak)

	out, err := service.ClockOut(db, user.ID, nil, start.Add(8*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "7.5", out.TotalHours.String())
	assert.Equal(t, "0.5", out.BreakHours.String())
}

func TestClockOutClosesOpenBreak(t *testing.T) {
	db := newClockTestDB(t)
	orgID := uuid.New()
	user := seedUser(t, db, orgID, constants.RoleEmployee)

	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	entry, err := service.ClockIn(db, orgID, user.ID, service.ClockInRequest{}, start)
	require.NoError(t, err)

	_, err = service.StartBreak(db, entry.ID, user.ID, timeEntryModel.BreakTypeShort, false, start.Add(7*time.Hour))
	require.NoError(t, err)

	out, err := service.ClockOut(db, user.ID, nil, start.Add(8*time.Hour))
	require.NoError(t, err)

	var breaks []timeEntryModel.BreakEntryModel
	require.NoError(t, db.Where("time_entry_id = ?", out.ID).Find(&breaks).Error)
	require.Len(t, breaks, 1)
	require.NotNil(t, breaks[0].EndTime)
	assert.Equal(t, "7", out.TotalHours.String())
}

func TestStartBreakOnSomeoneElsesEntryFails(t *testing.T) {
	db := newClockTestDB(t)
	orgID := uuid.New()
	owner := seedUser(t, db, orgID, constants.RoleEmployee)
	other := seedUser(t, db, orgID, constants.RoleEmployee)

	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	entry, err := service.ClockIn(db, orgID, owner.ID, service.ClockInRequest{}, start)
	require.NoError(t, err)

	_, err = service.StartBreak(db, entry.ID, other.ID, timeEntryModel.BreakTypeShort, false, start.Add(time.Hour))
	assert.ErrorIs(t, err, service.ErrPermissionDenied)
}

func TestApprovalFlowThroughService(t *testing.T) {
	db := newClockTestDB(t)
	orgID := uuid.New()
	manager := seedUser(t, db, orgID, constants.RoleManager)
	employee := seedUser(t, db, orgID, constants.RoleEmployee)
	require.NoError(t, db.Model(employee).Update("manager_id", manager.ID).Error)
	employee.ManagerID = &manager.ID

	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	entry, err := service.ClockIn(db, orgID, employee.ID, service.ClockInRequest{}, start)
	require.NoError(t, err)
	_, err = service.ClockOut(db, employee.ID, nil, start.Add(8*time.Hour))
	require.NoError(t, err)

	_, err = service.SubmitEntry(db, entry.ID, employee.ID, start.Add(9*time.Hour))
	require.NoError(t, err)

	// a peer cannot approve
	peer := seedUser(t, db, orgID, constants.RoleEmployee)
	_, err = service.ApproveEntry(db, entry.ID, peer, "", start.Add(10*time.Hour))
	assert.ErrorIs(t, err, service.ErrPermissionDenied)

	approved, err := service.ApproveEntry(db, entry.ID, manager, "ok", start.Add(10*time.Hour))
	require.NoError(t, err)
	assert.True(t, approved.IsLocked)
	assert.Equal(t, timeEntryModel.StatusApproved, approved.Status)

	// locked and approved: owner cannot edit anymore
	canEdit, err := service.CanBeEditedBy(db, approved, employee)
	require.NoError(t, err)
	assert.False(t, canEdit)

	// approve again fails
	_, err = service.ApproveEntry(db, entry.ID, manager, "", start.Add(11*time.Hour))
	assert.ErrorIs(t, err, timeEntryModel.ErrInvalidTransition)
}

func TestRejectThenResetToDraft(t *testing.T) {
	db := newClockTestDB(t)
	orgID := uuid.New()
	manager := seedUser(t, db, orgID, constants.RoleManager)
	employee := seedUser(t, db, orgID, constants.RoleEmployee)
	require.NoError(t, db.Model(employee).Update("manager_id", manager.ID).Error)
	employee.ManagerID = &manager.ID

	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	entry, err := service.ClockIn(db, orgID, employee.ID, service.ClockInRequest{}, start)
	require.NoError(t, err)
	_, err = service.ClockOut(db, employee.ID, nil, start.Add(8*time.Hour))
	require.NoError(t, err)
	_, err = service.SubmitEntry(db, entry.ID, employee.ID, start.Add(9*time.Hour))
	require.NoError(t, err)

	rejected, err := service.RejectEntry(db, entry.ID, manager, "wrong project", start.Add(10*time.Hour))
	require.NoError(t, err)
	assert.False(t, rejected.IsLocked)

	reset, err := service.ResetEntryToDraft(db, entry.ID, employee)
	require.NoError(t, err)
	assert.Equal(t, timeEntryModel.StatusDraft, reset.Status)

	// resubmission works after the reset
	_, err = service.SubmitEntry(db, entry.ID, employee.ID, start.Add(11*time.Hour))
	require.NoError(t, err)
}

func TestModificationRequestRoundTrip(t *testing.T) {
	db := newClockTestDB(t)
	orgID := uuid.New()
	manager := seedUser(t, db, orgID, constants.RoleManager)
	employee := seedUser(t, db, orgID, constants.RoleEmployee)
	require.NoError(t, db.Model(employee).Update("manager_id", manager.ID).Error)
	employee.ManagerID = &manager.ID

	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	entry, err := service.ClockIn(db, orgID, employee.ID, service.ClockInRequest{}, start)
	require.NoError(t, err)
	_, err = service.ClockOut(db, employee.ID, nil, start.Add(8*time.Hour))
	require.NoError(t, err)
	_, err = service.SubmitEntry(db, entry.ID, employee.ID, start.Add(9*time.Hour))
	require.NoError(t, err)
	_, err = service.ApproveEntry(db, entry.ID, manager, "", start.Add(10*time.Hour))
	require.NoError(t, err)

	// disallowed field is rejected up front
	_, err = service.CreateModificationRequest(db, entry.ID, employee.ID,
		map[string]any{"is_locked": false}, "nope")
	assert.ErrorIs(t, err, service.ErrFieldNotAllowed)

	req, err := service.CreateModificationRequest(db, entry.ID, employee.ID,
		map[string]any{
			"clock_out":   start.Add(9 * time.Hour).Format(time.RFC3339),
			"description": "stayed late for deploy",
		}, "forgot to clock out")
	require.NoError(t, err)

	approvedReq, err := service.ApproveModificationRequest(db, req.ID, manager, "verified", start.Add(12*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, timeEntryModel.ModRequestApproved, approvedReq.Status)

	var updated timeEntryModel.TimeEntryModel
	require.NoError(t, db.First(&updated, "id = ?", entry.ID).Error)
	assert.Equal(t, "stayed late for deploy", updated.Description)
	assert.Equal(t, "9", updated.TotalHours.String())
	assert.Equal(t, "1", updated.OvertimeHours.String())
}

func TestDefaultLimitsWhenNoSettingsRow(t *testing.T) {
	db := newClockTestDB(t)
	orgID := uuid.New()
	user := seedUser(t, db, orgID, constants.RoleEmployee)
	rate := decimal.NewFromInt(50)
	require.NoError(t, db.Model(user).Update("hourly_rate", rate).Error)

	// no compliance settings row: 8h limit and 1.5x multiplier apply
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	_, err := service.ClockIn(db, orgID, user.ID, service.ClockInRequest{}, start)
	require.NoError(t, err)
	out, err := service.ClockOut(db, user.ID, nil, start.Add(10*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, "8", out.RegularHours.String())
	assert.Equal(t, "2", out.OvertimeHours.String())
	// 8*50 + 2*50*1.5
	assert.Equal(t, "550", out.BillableAmount.String())
}

func TestModificationRequestOnDraftFails(t *testing.T) {
	db := newClockTestDB(t)
	orgID := uuid.New()
	employee := seedUser(t, db, orgID, constants.RoleEmployee)

	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	entry, err := service.ClockIn(db, orgID, employee.ID, service.ClockInRequest{}, start)
	require.NoError(t, err)
	_, err = service.ClockOut(db, employee.ID, nil, start.Add(8*time.Hour))
	require.NoError(t, err)

	// a draft is edited directly, not via the request flow
	_, err = service.CreateModificationRequest(db, entry.ID, employee.ID,
		map[string]any{"description": "fix typo"}, "still a draft")
	assert.ErrorIs(t, err, timeEntryModel.ErrInvalidTransition)

	_, err = service.SubmitEntry(db, entry.ID, employee.ID, start.Add(9*time.Hour))
	require.NoError(t, err)

	// submitted entries may be targeted
	_, err = service.CreateModificationRequest(db, entry.ID, employee.ID,
		map[string]any{"description": "fix typo"}, "in review")
	require.NoError(t, err)
}

func TestTenantIsolationOnClockIn(t *testing.T) {
	db := newClockTestDB(t)
	orgA := uuid.New()
	orgB := uuid.New()
	userA := seedUser(t, db, orgA, constants.RoleEmployee)
	userB := seedUser(t, db, orgB, constants.RoleEmployee)

	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	entryA, err := service.ClockIn(db, orgA, userA.ID, service.ClockInRequest{}, now)
	require.NoError(t, err)
	entryB, err := service.ClockIn(db, orgB, userB.ID, service.ClockInRequest{}, now)
	require.NoError(t, err)

	assert.NotEqual(t, entryA.OrganizationID, entryB.OrganizationID)
}

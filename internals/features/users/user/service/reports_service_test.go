package service_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"kerjaku_backend/internals/constants"
	userModel "kerjaku_backend/internals/features/users/user/model"
	"kerjaku_backend/internals/features/users/user/service"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_pragma=foreign_keys(1)&mode=memory"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&userModel.UserModel{}))
	return db
}

func mkUser(t *testing.T, db *gorm.DB, name string, managerID *uuid.UUID, role string) *userModel.UserModel {
	t.Helper()
	u := &userModel.UserModel{
		UserName:  name,
		FullName:  name + " full",
		Email:     name + "@example.com",
		Password:  "secret-password",
		ManagerID: managerID,
		Role:      role,
		IsActive:  true,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func TestAllReportIDsWalksIndirectReports(t *testing.T) {
	db := newTestDB(t)

	boss := mkUser(t, db, "boss", nil, constants.RoleManager)
	lead := mkUser(t, db, "lead", &boss.ID, constants.RoleTeamLead)
	dev1 := mkUser(t, db, "dev1", &lead.ID, constants.RoleEmployee)
	dev2 := mkUser(t, db, "dev2", &lead.ID, constants.RoleEmployee)
	outsider := mkUser(t, db, "outsider", nil, constants.RoleEmployee)

	reports, err := service.AllReportIDs(db, boss.ID)
	require.NoError(t, err)

	assert.Len(t, reports, 3)
	assert.Contains(t, reports, lead.ID)
	assert.Contains(t, reports, dev1.ID)
	assert.Contains(t, reports, dev2.ID)
	assert.NotContains(t, reports, outsider.ID)
}

func TestAllReportIDsSurvivesCycles(t *testing.T) {
	db := newTestDB(t)

	a := mkUser(t, db, "a", nil, constants.RoleManager)
	b := mkUser(t, db, "b", &a.ID, constants.RoleTeamLead)

	// corrupt data: a reports to b, forming a cycle
	require.NoError(t, db.Model(a).Update("manager_id", b.ID).Error)

	reports, err := service.AllReportIDs(db, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{b.ID}, reports)
}

func TestManagesUser(t *testing.T) {
	db := newTestDB(t)

	orgID := uuid.New()
	otherOrg := uuid.New()

	admin := mkUser(t, db, "admin", nil, constants.RoleAdmin)
	require.NoError(t, db.Model(admin).Update("organization_id", orgID).Error)
	admin.OrganizationID = &orgID

	mgr := mkUser(t, db, "mgr", nil, constants.RoleManager)
	emp := mkUser(t, db, "emp", &mgr.ID, constants.RoleEmployee)
	require.NoError(t, db.Model(emp).Update("organization_id", orgID).Error)
	emp.OrganizationID = &orgID

	stranger := mkUser(t, db, "stranger", nil, constants.RoleEmployee)
	require.NoError(t, db.Model(stranger).Update("organization_id", otherOrg).Error)
	stranger.OrganizationID = &otherOrg

	ok, err := service.ManagesUser(db, mgr, emp)
	require.NoError(t, err)
	assert.True(t, ok, "manager manages direct report")

	ok, err = service.ManagesUser(db, admin, emp)
	require.NoError(t, err)
	assert.True(t, ok, "org admin manages same-org user")

	ok, err = service.ManagesUser(db, admin, stranger)
	require.NoError(t, err)
	assert.False(t, ok, "org admin does not cross tenants")

	ok, err = service.ManagesUser(db, emp, mgr)
	require.NoError(t, err)
	assert.False(t, ok, "employee manages nobody")
}

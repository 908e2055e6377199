package model_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	commonModel "kerjaku_backend/internals/features/common/model"
)

type noteRow struct {
	commonModel.OrgScoped
	Title string `gorm:"type:varchar(100);not null"`
}

// The Base embed must migrate on sqlite and still get a UUID on create;
// IDs are filled client-side, not by a database default.
func TestBaseMigratesAndFillsIDOnSqlite(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:?mode=memory"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&noteRow{}))

	row := &noteRow{Title: "standup notes"}
	row.OrganizationID = uuid.New()
	require.NoError(t, db.Create(row).Error)
	assert.NotEqual(t, uuid.Nil, row.ID)

	var loaded noteRow
	require.NoError(t, db.First(&loaded, "id = ?", row.ID).Error)
	assert.Equal(t, row.ID, loaded.ID)

	// a preset ID is kept as-is
	preset := &noteRow{Title: "retro notes"}
	preset.ID = uuid.New()
	preset.OrganizationID = row.OrganizationID
	want := preset.ID
	require.NoError(t, db.Create(preset).Error)
	assert.Equal(t, want, preset.ID)
}

func TestMarkDeleted(t *testing.T) {
	var b commonModel.Base
	require.False(t, b.IsDeleted)
	b.MarkDeleted()
	assert.True(t, b.IsDeleted)
	require.NotNil(t, b.DeletedAt)
}

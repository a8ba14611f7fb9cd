package database

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yeremiapane/restaurant-diary/models"
)

func setupChangeLogDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Booking{}, &models.Table{}, &models.Notification{}, &models.DBChange{}))
	require.NoError(t, RegisterChangeLog(db, "bookings", "tables"))
	return db
}

func changes(t *testing.T, db *gorm.DB) []models.DBChange {
	t.Helper()
	var out []models.DBChange
	require.NoError(t, db.Order("id ASC").Find(&out).Error)
	return out
}

func TestChangeLogRecordsBookingWrites(t *testing.T) {
	db := setupChangeLogDB(t)

	b := models.Booking{ID: "b1", Date: "2026-10-15", ArrivalTime: "19:00"}
	require.NoError(t, db.Create(&b).Error)
	require.NoError(t, db.Model(&b).Update("guests", 5).Error)
	require.NoError(t, db.Delete(&b).Error)

	got := changes(t, db)
	require.Len(t, got, 3)
	for i, action := range []string{ActionInsert, ActionUpdate, ActionDelete} {
		assert.Equal(t, "bookings", got[i].TableName)
		assert.Equal(t, "b1", got[i].RecordID)
		assert.Equal(t, "2026-10-15", got[i].Scope)
		assert.Equal(t, action, got[i].ActionType)
		assert.False(t, got[i].Processed)
	}
}

func TestChangeLogIgnoresUnwatchedAndNoopWrites(t *testing.T) {
	db := setupChangeLogDB(t)

	require.NoError(t, db.Create(&models.Notification{Message: "hello"}).Error)
	require.NoError(t, db.Where("id = ?", "missing").Delete(&models.Table{}).Error)

	table := models.Table{Name: "1", Active: true}
	require.NoError(t, db.Create(&table).Error)

	got := changes(t, db)
	require.Len(t, got, 1)
	assert.Equal(t, "tables", got[0].TableName)
	assert.Equal(t, table.ID, got[0].RecordID)
	assert.Empty(t, got[0].Scope)
}

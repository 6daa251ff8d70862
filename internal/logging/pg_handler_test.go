package logging

import (
	"log/slog"
	"testing"
	"time"

	"github.com/etymo-app/backend/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestPGHandlerPersistsErrorLogs(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.SystemLog{}))

	handler := NewPGHandler(db)
	log := slog.New(handler)

	log.Info("below the persistence threshold")
	log.Error("resolve failed",
		"user_id", "admin-1",
		"action", "resolve_report",
		"error", "connection reset",
		"report_id", 42,
	)
	handler.Stop()

	// Stop triggers the final flush asynchronously.
	require.Eventually(t, func() bool {
		var n int64
		return db.Model(&models.SystemLog{}).Count(&n).Error == nil && n == 1
	}, 2*time.Second, 10*time.Millisecond)

	var entry models.SystemLog
	require.NoError(t, db.First(&entry).Error)
	assert.Equal(t, "ERROR", entry.Level)
	assert.Equal(t, "resolve failed", entry.Message)
	assert.Equal(t, "resolve_report", entry.Action)
	assert.Equal(t, "connection reset", entry.Error)
	require.NotNil(t, entry.UserID)
	assert.Equal(t, "admin-1", *entry.UserID)
	assert.Contains(t, string(entry.Extra), "report_id")
}

package services

import (
	"testing"

	"github.com/etymo-app/backend/internal/database"
	"github.com/etymo-app/backend/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory SQLite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// A second pooled connection would see its own empty :memory: database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func makeWordList(creatorID uuid.UUID, public bool) *models.WordList {
	return &models.WordList{
		ID:        uuid.New(),
		CreatorID: creatorID,
		IsPublic:  public,
		Words: datatypes.NewJSONType(map[string]string{
			"word1": "definition1",
			"word2": "definition2",
		}),
	}
}

func makeOverview(creatorID, wordListID uuid.UUID, public bool) *models.WordListOverview {
	return &models.WordListOverview{
		ID:          uuid.New(),
		CreatorID:   creatorID,
		WordListID:  wordListID,
		Title:       "Test Title",
		Description: "Test Description",
		Tags:        datatypes.NewJSONSlice([]string{"tag1", "tag2"}),
		WordSample: datatypes.NewJSONType(map[string]string{
			"word1": "definition1",
		}),
		IsPublic: public,
	}
}

// seedListing creates a word list plus overview pair and returns the overview.
func seedListing(t *testing.T, db *gorm.DB, creatorID uuid.UUID, public bool) *models.WordListOverview {
	t.Helper()

	list := makeWordList(creatorID, public)
	require.NoError(t, db.Create(list).Error)
	overview := makeOverview(creatorID, list.ID, public)
	require.NoError(t, db.Create(overview).Error)
	return overview
}

// ledgerCount counts the actual upvote rows for an overview, for checking the
// denormalized counter against the ledger.
func ledgerCount(t *testing.T, db *gorm.DB, overviewID uuid.UUID) int {
	t.Helper()

	var n int64
	require.NoError(t, db.Model(&models.Upvote{}).Where("overview_id = ?", overviewID).Count(&n).Error)
	return int(n)
}

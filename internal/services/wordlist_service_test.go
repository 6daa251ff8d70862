package services

import (
	"context"
	"testing"
	"time"

	"github.com/etymo-app/backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func newWordListService(t *testing.T) (*WordListService, *UpvoteService) {
	t.Helper()
	db := newTestDB(t)
	upvotes := NewUpvoteService(db)
	return NewWordListService(db, upvotes), upvotes
}

func TestGetOverviewVisibility(t *testing.T) {
	svc, _ := newWordListService(t)
	ctx := context.Background()
	owner := uuid.New()
	stranger := uuid.New()

	public := seedListing(t, svc.db, owner, true)
	private := seedListing(t, svc.db, owner, false)

	got, err := svc.GetOverview(ctx, public.ID, Public())
	require.NoError(t, err)
	assert.Equal(t, public.ID, got.ID)

	// A private row is invisible on the public surface and to other users'
	// private scope; both misses read identically as not found.
	_, err = svc.GetOverview(ctx, private.ID, Public())
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.GetOverview(ctx, private.ID, PrivateFor(stranger))
	assert.ErrorIs(t, err, ErrNotFound)

	got, err = svc.GetOverview(ctx, private.ID, PrivateFor(owner))
	require.NoError(t, err)
	assert.Equal(t, private.ID, got.ID)

	// A public row is not served through the private scope, even to its owner.
	_, err = svc.GetOverview(ctx, public.ID, PrivateFor(owner))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetOverviewHiddenIsInvisible(t *testing.T) {
	svc, _ := newWordListService(t)
	ctx := context.Background()

	overview := seedListing(t, svc.db, uuid.New(), true)
	require.NoError(t, svc.db.Model(&models.WordListOverview{}).
		Where("id = ?", overview.ID).
		UpdateColumn("is_hidden", true).Error)

	_, err := svc.GetOverview(ctx, overview.ID, Public())
	assert.ErrorIs(t, err, ErrNotFound)

	// The unscoped fetch used by the delete path still sees it.
	got, err := svc.GetOverviewByID(ctx, overview.ID)
	require.NoError(t, err)
	assert.Equal(t, overview.ID, got.ID)
}

func TestGetWordListVisibility(t *testing.T) {
	svc, _ := newWordListService(t)
	ctx := context.Background()
	owner := uuid.New()

	private := makeWordList(owner, false)
	require.NoError(t, svc.db.Create(private).Error)

	_, err := svc.GetWordList(ctx, private.ID, Public())
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := svc.GetWordList(ctx, private.ID, PrivateFor(owner))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"word1": "definition1",
		"word2": "definition2",
	}, got.Words.Data())

	_, err = svc.GetWordList(ctx, uuid.New(), Public())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListPublicOverviewsOrdering(t *testing.T) {
	svc, upvotes := newWordListService(t)
	ctx := context.Background()
	creator := uuid.New()
	viewer := uuid.New()

	low := seedListing(t, svc.db, creator, true)
	high := seedListing(t, svc.db, creator, true)
	hidden := seedListing(t, svc.db, creator, true)
	seedListing(t, svc.db, creator, false)

	_, _, err := upvotes.Toggle(ctx, viewer, high.ID)
	require.NoError(t, err)
	_, _, err = upvotes.Toggle(ctx, uuid.New(), high.ID)
	require.NoError(t, err)
	require.NoError(t, svc.db.Model(&models.WordListOverview{}).
		Where("id = ?", hidden.ID).
		UpdateColumn("is_hidden", true).Error)

	overviews, err := svc.ListPublicOverviews(ctx, ListPublicOverviewsRequest{ViewerID: viewer})
	require.NoError(t, err)
	require.Len(t, overviews, 2)

	assert.Equal(t, high.ID, overviews[0].ID)
	assert.Equal(t, 2, overviews[0].Upvotes)
	assert.True(t, overviews[0].UserHasUpvoted)
	assert.Equal(t, low.ID, overviews[1].ID)
	assert.False(t, overviews[1].UserHasUpvoted)
}

func TestListPublicOverviewsCreatorFilter(t *testing.T) {
	svc, _ := newWordListService(t)
	ctx := context.Background()
	alice := uuid.New()
	bob := uuid.New()

	mine := seedListing(t, svc.db, alice, true)
	seedListing(t, svc.db, bob, true)

	overviews, err := svc.ListPublicOverviews(ctx, ListPublicOverviewsRequest{CreatorID: &alice})
	require.NoError(t, err)
	require.Len(t, overviews, 1)
	assert.Equal(t, mine.ID, overviews[0].ID)
}

func TestListPublicOverviewsDateRange(t *testing.T) {
	svc, _ := newWordListService(t)
	ctx := context.Background()
	creator := uuid.New()

	list := makeWordList(creator, true)
	require.NoError(t, svc.db.Create(list).Error)

	fresh := makeOverview(creator, list.ID, true)
	fresh.CreatedDate = time.Now().UTC()
	require.NoError(t, svc.db.Create(fresh).Error)

	stale := makeOverview(creator, list.ID, true)
	stale.CreatedDate = time.Now().UTC().AddDate(0, 0, -30)
	require.NoError(t, svc.db.Create(stale).Error)

	overviews, err := svc.ListPublicOverviews(ctx, ListPublicOverviewsRequest{DateRange: DateRangeWeek})
	require.NoError(t, err)
	require.Len(t, overviews, 1)
	assert.Equal(t, fresh.ID, overviews[0].ID)

	overviews, err = svc.ListPublicOverviews(ctx, ListPublicOverviewsRequest{DateRange: "bogus"})
	require.NoError(t, err)
	assert.Len(t, overviews, 2)
}

func TestListPublicOverviewsTagSearch(t *testing.T) {
	svc, _ := newWordListService(t)
	ctx := context.Background()
	creator := uuid.New()

	list := makeWordList(creator, true)
	require.NoError(t, svc.db.Create(list).Error)

	latin := makeOverview(creator, list.ID, true)
	latin.Tags = datatypes.NewJSONSlice([]string{"Latin", "Roots"})
	require.NoError(t, svc.db.Create(latin).Error)

	greek := makeOverview(creator, list.ID, true)
	greek.Tags = datatypes.NewJSONSlice([]string{"Greek"})
	require.NoError(t, svc.db.Create(greek).Error)

	overviews, err := svc.ListPublicOverviews(ctx, ListPublicOverviewsRequest{TagSearch: "latin"})
	require.NoError(t, err)
	require.Len(t, overviews, 1)
	assert.Equal(t, latin.ID, overviews[0].ID)

	overviews, err = svc.ListPublicOverviews(ctx, ListPublicOverviewsRequest{TagSearch: "sanskrit"})
	require.NoError(t, err)
	assert.Empty(t, overviews)
}

func TestListPublicOverviewsPagination(t *testing.T) {
	svc, _ := newWordListService(t)
	ctx := context.Background()
	creator := uuid.New()

	list := makeWordList(creator, true)
	require.NoError(t, svc.db.Create(list).Error)
	for i := 0; i < 60; i++ {
		require.NoError(t, svc.db.Create(makeOverview(creator, list.ID, true)).Error)
	}

	tests := []struct {
		name     string
		page     int
		pageSize int
		wantLen  int
	}{
		{"zero size falls back to minimum", 1, 0, 1},
		{"negative size falls back to minimum", 1, -3, 1},
		{"size within bounds", 1, 10, 10},
		{"size at cap", 1, 50, 50},
		{"size above cap is clamped", 1, 500, 50},
		{"zero page reads the first page", 0, 10, 10},
		{"page past the data is empty", 100, 50, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			overviews, err := svc.ListPublicOverviews(ctx, ListPublicOverviewsRequest{
				Page:     tt.page,
				PageSize: tt.pageSize,
			})
			require.NoError(t, err)
			assert.Len(t, overviews, tt.wantLen)
		})
	}
}

func TestListPrivateOverviews(t *testing.T) {
	svc, _ := newWordListService(t)
	ctx := context.Background()
	owner := uuid.New()

	list := makeWordList(owner, false)
	require.NoError(t, svc.db.Create(list).Error)

	older := makeOverview(owner, list.ID, false)
	older.CreatedDate = time.Now().UTC().Add(-time.Hour)
	require.NoError(t, svc.db.Create(older).Error)
	newer := makeOverview(owner, list.ID, false)
	newer.CreatedDate = time.Now().UTC()
	require.NoError(t, svc.db.Create(newer).Error)
	seedListing(t, svc.db, owner, true)
	seedListing(t, svc.db, uuid.New(), false)

	overviews, err := svc.ListPrivateOverviews(ctx, owner, "", 1, 10)
	require.NoError(t, err)
	require.Len(t, overviews, 2)
	assert.Equal(t, newer.ID, overviews[0].ID)
	assert.Equal(t, older.ID, overviews[1].ID)
}

func TestUpsertWordList(t *testing.T) {
	svc, _ := newWordListService(t)
	ctx := context.Background()
	owner := uuid.New()

	list := makeWordList(owner, false)
	affected, err := svc.UpsertWordList(ctx, list)
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	// Replaying with new words and a different creator updates the payload
	// but never reassigns ownership.
	update := &models.WordList{
		ID:        list.ID,
		CreatorID: uuid.New(),
		IsPublic:  true,
		Words:     datatypes.NewJSONType(map[string]string{"nova": "new"}),
	}
	_, err = svc.UpsertWordList(ctx, update)
	require.NoError(t, err)

	var stored models.WordList
	require.NoError(t, svc.db.First(&stored, "id = ?", list.ID).Error)
	assert.Equal(t, owner, stored.CreatorID)
	assert.True(t, stored.IsPublic)
	assert.Equal(t, map[string]string{"nova": "new"}, stored.Words.Data())
}

func TestUpsertWordListValidation(t *testing.T) {
	svc, _ := newWordListService(t)
	ctx := context.Background()

	_, err := svc.UpsertWordList(ctx, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = svc.UpsertWordList(ctx, &models.WordList{CreatorID: uuid.New()})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	empty := makeWordList(uuid.New(), false)
	empty.Words = datatypes.NewJSONType(map[string]string{"   ": "\t"})
	_, err = svc.UpsertWordList(ctx, empty)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestUpsertWordListSanitizesEntries(t *testing.T) {
	svc, _ := newWordListService(t)
	ctx := context.Background()

	list := makeWordList(uuid.New(), false)
	list.Words = datatypes.NewJSONType(map[string]string{
		"  aqua ": " water ",
		"evil":    "<script>alert(1)</script>",
	})
	_, err := svc.UpsertWordList(ctx, list)
	require.NoError(t, err)

	var stored models.WordList
	require.NoError(t, svc.db.First(&stored, "id = ?", list.ID).Error)
	assert.Equal(t, map[string]string{"aqua": "water"}, stored.Words.Data())
}

func TestUpsertOverview(t *testing.T) {
	svc, _ := newWordListService(t)
	ctx := context.Background()
	owner := uuid.New()

	list := makeWordList(owner, true)
	require.NoError(t, svc.db.Create(list).Error)

	overview := makeOverview(owner, list.ID, true)
	affected, err := svc.UpsertOverview(ctx, overview)
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	// Simulate accumulated upvotes and a moderation takedown, then replay the
	// upsert with stale values for both.
	require.NoError(t, svc.db.Model(&models.WordListOverview{}).
		Where("id = ?", overview.ID).
		UpdateColumns(map[string]interface{}{"upvotes": 7, "is_hidden": true}).Error)

	update := makeOverview(owner, list.ID, true)
	update.ID = overview.ID
	update.Title = "Renamed"
	update.Upvotes = 0
	update.IsHidden = false
	_, err = svc.UpsertOverview(ctx, update)
	require.NoError(t, err)

	var stored models.WordListOverview
	require.NoError(t, svc.db.First(&stored, "id = ?", overview.ID).Error)
	assert.Equal(t, "Renamed", stored.Title)
	assert.Equal(t, 7, stored.Upvotes)
	assert.True(t, stored.IsHidden)
	assert.Equal(t, owner, stored.CreatorID)
}

func TestUpsertOverviewRequiresOwnedWordList(t *testing.T) {
	svc, _ := newWordListService(t)
	ctx := context.Background()
	owner := uuid.New()

	overview := makeOverview(owner, uuid.New(), true)
	_, err := svc.UpsertOverview(ctx, overview)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	// A word list owned by someone else does not satisfy the reference either.
	list := makeWordList(uuid.New(), true)
	require.NoError(t, svc.db.Create(list).Error)
	overview.WordListID = list.ID
	_, err = svc.UpsertOverview(ctx, overview)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestUpsertOverviewValidation(t *testing.T) {
	svc, _ := newWordListService(t)
	ctx := context.Background()
	owner := uuid.New()

	list := makeWordList(owner, true)
	require.NoError(t, svc.db.Create(list).Error)

	_, err := svc.UpsertOverview(ctx, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	overview := makeOverview(owner, list.ID, true)
	overview.Title = "   "
	_, err = svc.UpsertOverview(ctx, overview)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestDeleteOverview(t *testing.T) {
	svc, upvotes := newWordListService(t)
	ctx := context.Background()
	owner := uuid.New()
	stranger := uuid.New()

	overview := seedListing(t, svc.db, owner, true)
	_, _, err := upvotes.Toggle(ctx, stranger, overview.ID)
	require.NoError(t, err)

	// Wrong creator removes nothing and leaves the row in place.
	removed, err := svc.DeleteOverview(ctx, overview.ID, stranger)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, 1, ledgerCount(t, svc.db, overview.ID))

	removed, err = svc.DeleteOverview(ctx, overview.ID, owner)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, 0, ledgerCount(t, svc.db, overview.ID))

	// Deleting again is a clean no-op.
	removed, err = svc.DeleteOverview(ctx, overview.ID, owner)
	require.NoError(t, err)
	assert.False(t, removed)
}

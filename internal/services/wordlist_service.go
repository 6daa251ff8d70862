package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/etymo-app/backend/internal/models"
	"github.com/etymo-app/backend/internal/sanitize"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	minPageSize = 1
	maxPageSize = 50
)

// Visibility expresses which rows a read may see: either the public surface or
// the private rows of one specific creator. Every read path filters
// server-side; a miss is always ErrNotFound, never a forbidden hint.
type Visibility struct {
	public bool
	userID uuid.UUID
}

// Public matches rows with is_public = true.
func Public() Visibility {
	return Visibility{public: true}
}

// PrivateFor matches rows with is_public = false owned by userID.
func PrivateFor(userID uuid.UUID) Visibility {
	return Visibility{userID: userID}
}

// DateRange restricts listings by creation date.
type DateRange string

const (
	DateRangeToday DateRange = "today"
	DateRangeWeek  DateRange = "week"
	DateRangeMonth DateRange = "month"
)

// cutoff returns the inclusive lower bound for the range, or ok=false when the
// range is empty/unknown and no restriction applies.
func (r DateRange) cutoff(now time.Time) (time.Time, bool) {
	now = now.UTC()
	switch r {
	case DateRangeToday:
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), true
	case DateRangeWeek:
		return now.AddDate(0, 0, -7), true
	case DateRangeMonth:
		return now.AddDate(0, -1, 0), true
	default:
		return time.Time{}, false
	}
}

// WordListService is the visibility-scoped repository over word lists and
// their overviews.
type WordListService struct {
	db      *gorm.DB
	upvotes *UpvoteService
}

func NewWordListService(db *gorm.DB, upvotes *UpvoteService) *WordListService {
	return &WordListService{db: db, upvotes: upvotes}
}

// GetOverview fetches one overview under the given visibility. Public reads
// also exclude moderated (hidden) rows.
func (s *WordListService) GetOverview(ctx context.Context, id uuid.UUID, vis Visibility) (*models.WordListOverview, error) {
	query := s.db.WithContext(ctx)
	if vis.public {
		query = query.Where("id = ? AND is_public = ? AND is_hidden = ?", id, true, false)
	} else {
		query = query.Where("id = ? AND creator_id = ? AND is_public = ?", id, vis.userID, false)
	}

	var overview models.WordListOverview
	if err := query.First(&overview).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetch overview: %w", err)
	}
	return &overview, nil
}

// GetOverviewByID fetches an overview regardless of visibility. Only for use
// behind an ownership check (delete, moderation context).
func (s *WordListService) GetOverviewByID(ctx context.Context, id uuid.UUID) (*models.WordListOverview, error) {
	var overview models.WordListOverview
	if err := s.db.WithContext(ctx).First(&overview, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetch overview: %w", err)
	}
	return &overview, nil
}

// GetWordList fetches one word list under the given visibility.
func (s *WordListService) GetWordList(ctx context.Context, id uuid.UUID, vis Visibility) (*models.WordList, error) {
	query := s.db.WithContext(ctx)
	if vis.public {
		query = query.Where("id = ? AND is_public = ?", id, true)
	} else {
		query = query.Where("id = ? AND creator_id = ? AND is_public = ?", id, vis.userID, false)
	}

	var list models.WordList
	if err := query.First(&list).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetch word list: %w", err)
	}
	return &list, nil
}

// ListPublicOverviewsRequest carries the optional filters of the public
// listing. A nil CreatorID, empty DateRange or empty TagSearch means "no
// filter"; ViewerID of uuid.Nil means an anonymous viewer.
type ListPublicOverviewsRequest struct {
	CreatorID *uuid.UUID
	DateRange DateRange
	TagSearch string
	Page      int
	PageSize  int
	ViewerID  uuid.UUID
}

// ListPublicOverviews returns public, non-hidden overviews matching the
// filters, most upvoted first. When a viewer is known, their upvote membership
// is filled in with a single batched ledger lookup.
func (s *WordListService) ListPublicOverviews(ctx context.Context, req ListPublicOverviewsRequest) ([]models.WordListOverview, error) {
	page, pageSize := clampPage(req.Page), clampPageSize(req.PageSize)

	query := s.db.WithContext(ctx).
		Where("is_public = ? AND is_hidden = ?", true, false)

	if req.CreatorID != nil {
		query = query.Where("creator_id = ?", *req.CreatorID)
	}
	if cutoff, ok := req.DateRange.cutoff(time.Now()); ok {
		query = query.Where("created_date >= ?", cutoff)
	}
	if term := strings.TrimSpace(req.TagSearch); term != "" {
		query = query.Where(s.tagSearchClause(), "%"+strings.ToLower(term)+"%")
	}

	var overviews []models.WordListOverview
	err := query.
		Order("upvotes DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&overviews).Error
	if err != nil {
		return nil, fmt.Errorf("list public overviews: %w", err)
	}

	if req.ViewerID != uuid.Nil && len(overviews) > 0 {
		ids := make([]uuid.UUID, len(overviews))
		for i := range overviews {
			ids[i] = overviews[i].ID
		}
		status, err := s.upvotes.BatchStatus(ctx, req.ViewerID, ids)
		if err != nil {
			return nil, err
		}
		for i := range overviews {
			overviews[i].UserHasUpvoted = status[overviews[i].ID]
		}
	}

	return overviews, nil
}

// ListPrivateOverviews returns the creator's private overviews, newest first.
func (s *WordListService) ListPrivateOverviews(ctx context.Context, creatorID uuid.UUID, dateRange DateRange, page, pageSize int) ([]models.WordListOverview, error) {
	page, pageSize = clampPage(page), clampPageSize(pageSize)

	query := s.db.WithContext(ctx).
		Where("creator_id = ? AND is_public = ?", creatorID, false)
	if cutoff, ok := dateRange.cutoff(time.Now()); ok {
		query = query.Where("created_date >= ?", cutoff)
	}

	var overviews []models.WordListOverview
	err := query.
		Order("created_date DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&overviews).Error
	if err != nil {
		return nil, fmt.Errorf("list private overviews: %w", err)
	}
	return overviews, nil
}

// UpsertWordList inserts or replaces a word list keyed by id. On conflict only
// is_public and the (sanitized) word map are overwritten; id and creator are
// immutable. Returns the number of rows affected.
func (s *WordListService) UpsertWordList(ctx context.Context, list *models.WordList) (int64, error) {
	if list == nil {
		return 0, fmt.Errorf("%w: word list payload is required", ErrInvalidArgument)
	}
	if list.ID == uuid.Nil || list.CreatorID == uuid.Nil {
		return 0, fmt.Errorf("%w: word list id and creator id are required", ErrInvalidArgument)
	}

	words := sanitize.WordMap(list.Words.Data())
	if len(words) == 0 {
		return 0, fmt.Errorf("%w: word list has no valid entries", ErrInvalidArgument)
	}
	list.Words = datatypes.NewJSONType(words)

	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"is_public", "words", "updated_at"}),
	}).Create(list)
	if res.Error != nil {
		return 0, fmt.Errorf("upsert word list: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// UpsertOverview inserts or replaces an overview keyed by id. On conflict the
// descriptive fields are overwritten and last_modified_date refreshed; id,
// creator, word list reference, the upvote counter and the moderation flag are
// left alone (the ledger and the moderation workflow own those). The
// referenced word list must exist and belong to the same creator.
func (s *WordListService) UpsertOverview(ctx context.Context, overview *models.WordListOverview) (int64, error) {
	if overview == nil {
		return 0, fmt.Errorf("%w: overview payload is required", ErrInvalidArgument)
	}
	if overview.ID == uuid.Nil || overview.CreatorID == uuid.Nil || overview.WordListID == uuid.Nil {
		return 0, fmt.Errorf("%w: overview id, creator id and word list id are required", ErrInvalidArgument)
	}
	if strings.TrimSpace(overview.Title) == "" {
		return 0, fmt.Errorf("%w: overview title is required", ErrInvalidArgument)
	}

	var refs int64
	err := s.db.WithContext(ctx).Model(&models.WordList{}).
		Where("id = ? AND creator_id = ?", overview.WordListID, overview.CreatorID).
		Count(&refs).Error
	if err != nil {
		return 0, fmt.Errorf("check word list reference: %w", err)
	}
	if refs == 0 {
		return 0, fmt.Errorf("%w: overview references an unknown word list", ErrInvalidArgument)
	}

	overview.WordSample = datatypes.NewJSONType(sanitize.WordMap(overview.WordSample.Data()))
	overview.LastModifiedDate = time.Now().UTC()

	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"is_public", "title", "description", "tags", "word_sample", "last_modified_date",
		}),
	}).Create(overview)
	if res.Error != nil {
		return 0, fmt.Errorf("upsert overview: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// DeleteOverview removes the overview iff it exists and belongs to creatorID,
// along with its ledger rows. The bool reports whether a row was removed, so
// the caller can distinguish not-found from not-owner; repeating the delete is
// a no-op, not an error.
func (s *WordListService) DeleteOverview(ctx context.Context, id, creatorID uuid.UUID) (bool, error) {
	var removed bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND creator_id = ?", id, creatorID).
			Delete(&models.WordListOverview{})
		if res.Error != nil {
			return fmt.Errorf("delete overview: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return nil
		}
		removed = true

		if err := tx.Where("overview_id = ?", id).Delete(&models.Upvote{}).Error; err != nil {
			return fmt.Errorf("delete overview upvotes: %w", err)
		}
		return nil
	})
	return removed, err
}

// tagSearchClause matches a lowercase substring against the tags column. The
// tags live in a JSON column, so Postgres needs the array unnested while
// SQLite can match against the serialized text directly. The search term is
// always bound as a parameter.
func (s *WordListService) tagSearchClause() string {
	if s.db.Dialector.Name() == "postgres" {
		return "EXISTS (SELECT 1 FROM jsonb_array_elements_text(tags) AS tag WHERE LOWER(tag) LIKE ?)"
	}
	return "LOWER(tags) LIKE ?"
}

func clampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func clampPageSize(size int) int {
	if size < minPageSize {
		return minPageSize
	}
	if size > maxPageSize {
		return maxPageSize
	}
	return size
}

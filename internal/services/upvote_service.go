package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/etymo-app/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UpvoteService owns the upvote ledger and is the only writer of the
// denormalized upvotes counter on overviews. Both always move together inside
// one transaction.
type UpvoteService struct {
	db *gorm.DB
}

func NewUpvoteService(db *gorm.DB) *UpvoteService {
	return &UpvoteService{db: db}
}

// Toggle flips the (user, overview) membership: removes the ledger row and
// decrements the counter when present, inserts and increments when absent.
// The unique index on the pair arbitrates concurrent togglers of the same
// user; a loser of that race gets ErrConflict with nothing applied. Returns
// the new membership state and the counter after the toggle.
func (s *UpvoteService) Toggle(ctx context.Context, userID, overviewID uuid.UUID) (bool, int, error) {
	if userID == uuid.Nil {
		return false, 0, fmt.Errorf("%w: user id is required", ErrInvalidArgument)
	}

	var (
		upvoted bool
		count   int
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var overview models.WordListOverview
		err := tx.Select("id").
			Where("id = ? AND is_public = ? AND is_hidden = ?", overviewID, true, false).
			First(&overview).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("fetch overview: %w", err)
		}

		res := tx.Where("user_id = ? AND overview_id = ?", userID, overviewID).
			Delete(&models.Upvote{})
		if res.Error != nil {
			return fmt.Errorf("delete upvote: %w", res.Error)
		}

		if res.RowsAffected > 0 {
			// The guard keeps the counter from ever going below zero even
			// if it has drifted; the ledger row is already gone either way.
			err := tx.Model(&models.WordListOverview{}).
				Where("id = ? AND upvotes > 0", overviewID).
				UpdateColumn("upvotes", gorm.Expr("upvotes - 1")).Error
			if err != nil {
				return fmt.Errorf("decrement upvotes: %w", err)
			}
			upvoted = false
		} else {
			err := tx.Create(&models.Upvote{UserID: userID, OverviewID: overviewID}).Error
			if err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return fmt.Errorf("%w: concurrent upvote toggle", ErrConflict)
				}
				return fmt.Errorf("insert upvote: %w", err)
			}
			err = tx.Model(&models.WordListOverview{}).
				Where("id = ?", overviewID).
				UpdateColumn("upvotes", gorm.Expr("upvotes + 1")).Error
			if err != nil {
				return fmt.Errorf("increment upvotes: %w", err)
			}
			upvoted = true
		}

		var after models.WordListOverview
		if err := tx.Select("upvotes").First(&after, "id = ?", overviewID).Error; err != nil {
			return fmt.Errorf("read upvote count: %w", err)
		}
		count = after.Upvotes
		return nil
	})
	if err != nil {
		return false, 0, err
	}
	return upvoted, count, nil
}

// Count returns the denormalized counter for one overview. The counter is the
// display source of truth; it is not recomputed from the ledger on reads.
func (s *UpvoteService) Count(ctx context.Context, overviewID uuid.UUID) (int, error) {
	var overview models.WordListOverview
	err := s.db.WithContext(ctx).Select("upvotes").First(&overview, "id = ?", overviewID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("read upvote count: %w", err)
	}
	return overview.Upvotes, nil
}

// BatchStatus reports, in a single query, which of the given overviews the
// user has upvoted. An anonymous user or empty id set yields an empty map.
func (s *UpvoteService) BatchStatus(ctx context.Context, userID uuid.UUID, overviewIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	status := make(map[uuid.UUID]bool, len(overviewIDs))
	if userID == uuid.Nil || len(overviewIDs) == 0 {
		return status, nil
	}

	var upvoted []uuid.UUID
	err := s.db.WithContext(ctx).Model(&models.Upvote{}).
		Where("user_id = ? AND overview_id IN ?", userID, overviewIDs).
		Pluck("overview_id", &upvoted).Error
	if err != nil {
		return nil, fmt.Errorf("batch upvote status: %w", err)
	}

	for _, id := range overviewIDs {
		status[id] = false
	}
	for _, id := range upvoted {
		status[id] = true
	}
	return status, nil
}

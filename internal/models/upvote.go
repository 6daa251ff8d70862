package models

import (
	"time"

	"github.com/google/uuid"
)

// Upvote is one membership fact in the upvote ledger. The unique index on
// (user_id, overview_id) guarantees at most one row per pair and arbitrates
// concurrent togglers.
type Upvote struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_upvotes_user_overview" json:"user_id"`
	OverviewID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_upvotes_user_overview;index" json:"overview_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Upvote) TableName() string {
	return "upvotes"
}

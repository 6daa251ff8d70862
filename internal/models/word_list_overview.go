package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// WordListOverview is the public-facing summary of a WordList: title, tags and
// a small word sample, plus the denormalized upvote counter. Upvotes is written
// only by the upvote service; IsHidden only by the moderation service.
type WordListOverview struct {
	ID               uuid.UUID                             `gorm:"type:uuid;primaryKey" json:"id"`
	CreatorID        uuid.UUID                             `gorm:"type:uuid;not null;index" json:"creator_id"`
	WordListID       uuid.UUID                             `gorm:"type:uuid;not null;index" json:"word_list_id"`
	Title            string                                `gorm:"size:255;not null" json:"title"`
	Description      string                                `gorm:"size:1000" json:"description,omitempty"`
	Tags             datatypes.JSONSlice[string]           `json:"tags,omitempty"`
	WordSample       datatypes.JSONType[map[string]string] `gorm:"type:jsonb" json:"word_sample,omitempty"`
	IsPublic         bool                                  `gorm:"not null;default:false;index" json:"is_public"`
	IsHidden         bool                                  `gorm:"not null;default:false;index" json:"-"`
	Upvotes          int                                   `gorm:"not null;default:0" json:"upvotes"`
	CreatedDate      time.Time                             `gorm:"autoCreateTime;index" json:"created_date"`
	LastModifiedDate time.Time                             `gorm:"autoUpdateTime" json:"last_modified_date"`

	// UserHasUpvoted is filled per request for the authenticated viewer.
	UserHasUpvoted bool `gorm:"-" json:"user_has_upvoted"`
}

func (WordListOverview) TableName() string {
	return "word_list_overviews"
}

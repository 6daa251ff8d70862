package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// WordList is the owned content blob: a mapping of terms to definitions.
// The id is assigned by the creator at creation time and the creator never
// changes across upserts.
type WordList struct {
	ID        uuid.UUID                             `gorm:"type:uuid;primaryKey" json:"id"`
	CreatorID uuid.UUID                             `gorm:"type:uuid;not null;index" json:"creator_id"`
	IsPublic  bool                                  `gorm:"not null;default:false" json:"is_public"`
	Words     datatypes.JSONType[map[string]string] `gorm:"type:jsonb" json:"words"`
	CreatedAt time.Time                             `json:"created_at"`
	UpdatedAt time.Time                             `json:"updated_at"`
}

func (WordList) TableName() string {
	return "word_lists"
}

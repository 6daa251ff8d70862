package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ReportStatus is the closed set of report states.
type ReportStatus string

const (
	ReportStatusPending ReportStatus = "pending"
	ReportStatusKept    ReportStatus = "resolved-keep"
	ReportStatusRemoved ReportStatus = "resolved-remove"
)

// Report is a moderation case against a word list overview. It stays pending
// until an admin resolves it; resolving with the remove action also hides the
// reported overview.
type Report struct {
	ID                uint         `gorm:"primaryKey" json:"id"`
	ReportedContentID uuid.UUID    `gorm:"type:uuid;not null;index" json:"reported_content_id"`
	ReporterUserID    string       `gorm:"size:255;not null" json:"reporter_user_id"`
	Reason            string       `gorm:"size:255;not null" json:"reason"`
	Details           string       `gorm:"type:text" json:"details"`
	Status            ReportStatus `gorm:"size:50;not null;default:'pending';index" json:"status"`
	CreatedAt         time.Time    `json:"created_at"`
	ResolvedAt        *time.Time   `json:"resolved_at,omitempty"`
	ResolverUserID    *string      `gorm:"size:255" json:"resolver_user_id,omitempty"`
}

func (Report) TableName() string {
	return "reports"
}

// PendingReport is a Report joined with metadata of the reported overview,
// giving moderators context without a second lookup.
type PendingReport struct {
	Report
	ContentTitle       string                      `json:"content_title"`
	ContentDescription string                      `json:"content_description"`
	ContentTags        datatypes.JSONSlice[string] `json:"content_tags,omitempty"`
	ReportedUserID     uuid.UUID                   `json:"reported_user_id"`
	ContentWordListID  uuid.UUID                   `json:"content_word_list_id"`
}

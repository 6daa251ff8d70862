package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/etymo-app/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Resolution actions accepted by Resolve.
const (
	ReportActionKeep   = "keep"
	ReportActionRemove = "remove"
)

// ModerationService owns report rows and the is_hidden flag on overviews (the
// single cross-component mutation in the system).
type ModerationService struct {
	db *gorm.DB
}

func NewModerationService(db *gorm.DB) *ModerationService {
	return &ModerationService{db: db}
}

// CreateReport files a pending report against an overview and returns the
// generated report id. The reported overview must exist.
func (s *ModerationService) CreateReport(ctx context.Context, contentID uuid.UUID, reporterID, reason, details string) (uint, error) {
	if reporterID == "" {
		return 0, fmt.Errorf("%w: reporter is required", ErrInvalidArgument)
	}
	if strings.TrimSpace(reason) == "" {
		return 0, fmt.Errorf("%w: reason is required", ErrInvalidArgument)
	}

	var refs int64
	err := s.db.WithContext(ctx).Model(&models.WordListOverview{}).
		Where("id = ?", contentID).
		Count(&refs).Error
	if err != nil {
		return 0, fmt.Errorf("check reported content: %w", err)
	}
	if refs == 0 {
		return 0, ErrNotFound
	}

	report := models.Report{
		ReportedContentID: contentID,
		ReporterUserID:    reporterID,
		Reason:            reason,
		Details:           details,
		Status:            models.ReportStatusPending,
	}
	if err := s.db.WithContext(ctx).Create(&report).Error; err != nil {
		return 0, fmt.Errorf("create report: %w", err)
	}
	return report.ID, nil
}

// ListPending returns all pending reports joined with the reported overview's
// metadata, newest first.
func (s *ModerationService) ListPending(ctx context.Context) ([]models.PendingReport, error) {
	var reports []models.PendingReport
	err := s.db.WithContext(ctx).Model(&models.Report{}).
		Select("reports.*, " +
			"word_list_overviews.title AS content_title, " +
			"word_list_overviews.description AS content_description, " +
			"word_list_overviews.tags AS content_tags, " +
			"word_list_overviews.creator_id AS reported_user_id, " +
			"word_list_overviews.word_list_id AS content_word_list_id").
		Joins("JOIN word_list_overviews ON word_list_overviews.id = reports.reported_content_id").
		Where("reports.status = ?", models.ReportStatusPending).
		Order("reports.created_at DESC").
		Find(&reports).Error
	if err != nil {
		return nil, fmt.Errorf("list pending reports: %w", err)
	}
	return reports, nil
}

// Resolve closes a pending report. Action "remove" additionally hides the
// reported overview; both writes share one transaction so a failure leaves
// the report pending and retryable. Resolving a report twice is ErrConflict.
func (s *ModerationService) Resolve(ctx context.Context, reportID uint, action, resolverID string) error {
	var status models.ReportStatus
	switch action {
	case ReportActionKeep:
		status = models.ReportStatusKept
	case ReportActionRemove:
		status = models.ReportStatusRemoved
	default:
		return fmt.Errorf("%w: action must be %q or %q", ErrInvalidArgument, ReportActionKeep, ReportActionRemove)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var report models.Report
		err := tx.First(&report, "id = ?", reportID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("fetch report: %w", err)
		}

		now := time.Now().UTC()
		res := tx.Model(&models.Report{}).
			Where("id = ? AND status = ?", reportID, models.ReportStatusPending).
			Updates(map[string]interface{}{
				"status":           status,
				"resolved_at":      now,
				"resolver_user_id": resolverID,
			})
		if res.Error != nil {
			return fmt.Errorf("resolve report: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: report already resolved", ErrConflict)
		}

		if status == models.ReportStatusRemoved {
			err := tx.Model(&models.WordListOverview{}).
				Where("id = ?", report.ReportedContentID).
				UpdateColumn("is_hidden", true).Error
			if err != nil {
				return fmt.Errorf("hide reported content: %w", err)
			}
		}
		return nil
	})
}

package dto

import "github.com/etymo-app/backend/internal/models"

type ListOverviewsResponse struct {
	Overviews []models.WordListOverview `json:"overviews"`
	Page      int                       `json:"page"`
	PageSize  int                       `json:"page_size"`
}

type UpsertResponse struct {
	RowsAffected int64 `json:"rows_affected"`
}

type ToggleUpvoteResponse struct {
	IsUpvoted   bool `json:"is_upvoted"`
	UpvoteCount int  `json:"upvote_count"`
}

package dto

type CreateReportRequest struct {
	ContentID string `json:"content_id"`
	Reason    string `json:"reason"`
	Details   string `json:"details"`
}

type CreateReportResponse struct {
	ID uint `json:"id"`
}

type ResolveReportRequest struct {
	Action string `json:"action"`
}

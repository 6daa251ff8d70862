package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/etymo-app/backend/internal/dto"
	"github.com/etymo-app/backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportLifecycleEndpoints(t *testing.T) {
	app, db := newTestApp(t)
	reporter := uuid.New()

	overview := seedOverview(t, db, uuid.New(), true)

	resp := doJSON(t, app, http.MethodPost, "/api/reports", "", dto.CreateReportRequest{
		ContentID: overview.ID.String(),
		Reason:    "inappropriate",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/reports", signToken(t, reporter.String()), dto.CreateReportRequest{
		ContentID: overview.ID.String(),
		Reason:    "inappropriate",
		Details:   "offensive title",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var created dto.CreateReportResponse
	decodeJSON(t, resp, &created)
	assert.NotZero(t, created.ID)

	resp = doJSON(t, app, http.MethodPost, "/api/reports", signToken(t, reporter.String()), dto.CreateReportRequest{
		ContentID: uuid.New().String(),
		Reason:    "spam",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// The moderation queue is admins only.
	resp = doJSON(t, app, http.MethodGet, "/api/admin/reports", signToken(t, reporter.String()), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/admin/reports", signToken(t, adminID.String()), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var queue struct {
		Reports []models.PendingReport `json:"reports"`
	}
	decodeJSON(t, resp, &queue)
	require.Len(t, queue.Reports, 1)
	assert.Equal(t, created.ID, queue.Reports[0].ID)
	assert.Equal(t, overview.Title, queue.Reports[0].ContentTitle)

	reportPath := fmt.Sprintf("/api/admin/reports/%d", created.ID)
	resp = doJSON(t, app, http.MethodPut, reportPath, signToken(t, adminID.String()), dto.ResolveReportRequest{
		Action: "remove",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// The removed overview is gone from the public surface.
	resp = doJSON(t, app, http.MethodGet, "/api/overviews/public/"+overview.ID.String(), "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPut, reportPath, signToken(t, adminID.String()), dto.ResolveReportRequest{
		Action: "keep",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPut, reportPath, signToken(t, adminID.String()), dto.ResolveReportRequest{
		Action: "escalate",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

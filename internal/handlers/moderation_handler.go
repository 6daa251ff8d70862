package handlers

import (
	"github.com/etymo-app/backend/internal/dto"
	"github.com/etymo-app/backend/internal/identity"
	"github.com/etymo-app/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ModerationHandler struct {
	moderation *services.ModerationService
}

func NewModerationHandler(moderation *services.ModerationService) *ModerationHandler {
	return &ModerationHandler{moderation: moderation}
}

// CreateReport files a report against an overview on behalf of the caller.
func (h *ModerationHandler) CreateReport(c *fiber.Ctx) error {
	subject := identity.Subject(c)
	if subject == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	contentID, err := uuid.Parse(req.ContentID)
	if err != nil {
		return badRequest(c, "Invalid content ID")
	}

	id, err := h.moderation.CreateReport(c.UserContext(), contentID, subject, req.Reason, req.Details)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreateReportResponse{ID: id})
}

// ListPendingReports returns the moderation queue. Admin only (route-level).
func (h *ModerationHandler) ListPendingReports(c *fiber.Ctx) error {
	reports, err := h.moderation.ListPending(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"reports": reports})
}

// ResolveReport closes a pending report, hiding the content when the action
// is "remove". Admin only (route-level); 409 when already resolved.
func (h *ModerationHandler) ResolveReport(c *fiber.Ctx) error {
	reportID, err := c.ParamsInt("id")
	if err != nil || reportID < 1 {
		return badRequest(c, "Invalid report ID")
	}

	var req dto.ResolveReportRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	err = h.moderation.Resolve(c.UserContext(), uint(reportID), req.Action, identity.Subject(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Report resolved"})
}

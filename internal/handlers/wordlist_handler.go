package handlers

import (
	"github.com/etymo-app/backend/internal/authz"
	"github.com/etymo-app/backend/internal/config"
	"github.com/etymo-app/backend/internal/dto"
	"github.com/etymo-app/backend/internal/identity"
	"github.com/etymo-app/backend/internal/models"
	"github.com/etymo-app/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// WordListHandler is the operation surface the web layer calls: it resolves
// the caller identity, runs the authorization guard and delegates to the
// repository and ledger services.
type WordListHandler struct {
	cfg       *config.Config
	wordLists *services.WordListService
	upvotes   *services.UpvoteService
}

func NewWordListHandler(cfg *config.Config, wordLists *services.WordListService, upvotes *services.UpvoteService) *WordListHandler {
	return &WordListHandler{cfg: cfg, wordLists: wordLists, upvotes: upvotes}
}

// GetPublicOverview returns one public, non-hidden overview.
// Private, hidden and missing all collapse to 404.
func (h *WordListHandler) GetPublicOverview(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid overview ID")
	}

	overview, err := h.wordLists.GetOverview(c.UserContext(), id, services.Public())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(overview)
}

// GetPublicWordList returns one public word list.
func (h *WordListHandler) GetPublicWordList(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid word list ID")
	}

	list, err := h.wordLists.GetWordList(c.UserContext(), id, services.Public())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// ListPublicOverviews lists public overviews with optional creator, date
// range and tag filters. An authenticated viewer additionally gets their
// upvote membership on each row.
func (h *WordListHandler) ListPublicOverviews(c *fiber.Ctx) error {
	req := services.ListPublicOverviewsRequest{
		DateRange: services.DateRange(c.Query("date_range")),
		TagSearch: c.Query("tag_search"),
		Page:      c.QueryInt("page", 1),
		PageSize:  c.QueryInt("page_size", 10),
	}

	if raw := c.Query("creator_id"); raw != "" {
		creatorID, err := uuid.Parse(raw)
		if err != nil {
			return badRequest(c, "Invalid creator ID")
		}
		req.CreatorID = &creatorID
	}

	// Anonymous viewers simply get no membership flags.
	if viewerID, err := identity.UserID(c); err == nil {
		req.ViewerID = viewerID
	}

	overviews, err := h.wordLists.ListPublicOverviews(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ListOverviewsResponse{
		Overviews: overviews,
		Page:      max(req.Page, 1),
		PageSize:  min(max(req.PageSize, 1), 50),
	})
}

// GetPrivateOverview returns a private overview for its creator, or for an
// admin acting on another user's behalf via the user_id query parameter.
func (h *WordListHandler) GetPrivateOverview(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid overview ID")
	}

	subject := identity.Subject(c)
	owner := c.Query("user_id", subject)
	decision := authz.Authorize(subject, identity.IsAdmin(c, h.cfg), authz.BareID(owner))
	if decision != authz.Allow {
		return respondDecision(c, decision)
	}

	ownerID, err := uuid.Parse(owner)
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	overview, err := h.wordLists.GetOverview(c.UserContext(), id, services.PrivateFor(ownerID))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(overview)
}

// GetPrivateWordList is the word-list counterpart of GetPrivateOverview.
func (h *WordListHandler) GetPrivateWordList(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid word list ID")
	}

	subject := identity.Subject(c)
	owner := c.Query("user_id", subject)
	decision := authz.Authorize(subject, identity.IsAdmin(c, h.cfg), authz.BareID(owner))
	if decision != authz.Allow {
		return respondDecision(c, decision)
	}

	ownerID, err := uuid.Parse(owner)
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	list, err := h.wordLists.GetWordList(c.UserContext(), id, services.PrivateFor(ownerID))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// ListPrivateOverviews lists a user's private overviews, newest first.
func (h *WordListHandler) ListPrivateOverviews(c *fiber.Ctx) error {
	owner := c.Params("userId")
	subject := identity.Subject(c)
	decision := authz.Authorize(subject, identity.IsAdmin(c, h.cfg), authz.BareID(owner))
	if decision != authz.Allow {
		return respondDecision(c, decision)
	}

	ownerID, err := uuid.Parse(owner)
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	overviews, err := h.wordLists.ListPrivateOverviews(
		c.UserContext(),
		ownerID,
		services.DateRange(c.Query("date_range")),
		c.QueryInt("page", 1),
		c.QueryInt("page_size", 10),
	)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ListOverviewsResponse{
		Overviews: overviews,
		Page:      max(c.QueryInt("page", 1), 1),
		PageSize:  min(max(c.QueryInt("page_size", 10), 1), 50),
	})
}

// UpsertWordList creates or replaces a word list owned by the caller.
func (h *WordListHandler) UpsertWordList(c *fiber.Ctx) error {
	var list models.WordList
	if err := c.BodyParser(&list); err != nil {
		return badRequest(c, "Invalid request body")
	}

	decision := authz.Authorize(identity.Subject(c), identity.IsAdmin(c, h.cfg), authz.Object(list.CreatorID))
	if decision != authz.Allow {
		return respondDecision(c, decision)
	}

	rows, err := h.wordLists.UpsertWordList(c.UserContext(), &list)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.UpsertResponse{RowsAffected: rows})
}

// UpsertOverview creates or replaces an overview owned by the caller.
func (h *WordListHandler) UpsertOverview(c *fiber.Ctx) error {
	var overview models.WordListOverview
	if err := c.BodyParser(&overview); err != nil {
		return badRequest(c, "Invalid request body")
	}

	decision := authz.Authorize(identity.Subject(c), identity.IsAdmin(c, h.cfg), authz.Object(overview.CreatorID))
	if decision != authz.Allow {
		return respondDecision(c, decision)
	}

	rows, err := h.wordLists.UpsertOverview(c.UserContext(), &overview)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.UpsertResponse{RowsAffected: rows})
}

// DeleteOverview removes an overview. A missing row is 404 before the
// ownership check, so creators get an honest answer about their own content;
// a present row owned by someone else is 403.
func (h *WordListHandler) DeleteOverview(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid overview ID")
	}

	overview, err := h.wordLists.GetOverviewByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}

	decision := authz.Authorize(identity.Subject(c), identity.IsAdmin(c, h.cfg), authz.Object(overview.CreatorID))
	if decision != authz.Allow {
		return respondDecision(c, decision)
	}

	if _, err := h.wordLists.DeleteOverview(c.UserContext(), id, overview.CreatorID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ToggleUpvote flips the caller's upvote on a public overview and returns the
// new membership state with the current counter.
func (h *WordListHandler) ToggleUpvote(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return respondDecision(c, authz.Unauthorized)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid overview ID")
	}

	upvoted, count, err := h.upvotes.Toggle(c.UserContext(), userID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToggleUpvoteResponse{IsUpvoted: upvoted, UpvoteCount: count})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: message,
	})
}

package routes

import (
	"time"

	"github.com/etymo-app/backend/internal/config"
	"github.com/etymo-app/backend/internal/handlers"
	"github.com/etymo-app/backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	wordListHandler *handlers.WordListHandler,
	moderationHandler *handlers.ModerationHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Public read surface; the listing enriches results for a valid token.
	api.Get("/overviews/public", middleware.JWTOptional(cfg), wordListHandler.ListPublicOverviews)
	api.Get("/overviews/public/:id", wordListHandler.GetPublicOverview)
	api.Get("/word-lists/public/:id", wordListHandler.GetPublicWordList)

	// Creator-or-admin surface (JWT required; the ownership decision itself
	// happens in the handlers via the authorization guard).
	api.Get("/overviews/private/:id", middleware.JWTProtected(cfg), wordListHandler.GetPrivateOverview)
	api.Get("/word-lists/private/:id", middleware.JWTProtected(cfg), wordListHandler.GetPrivateWordList)
	api.Get("/users/:userId/overviews", middleware.JWTProtected(cfg), wordListHandler.ListPrivateOverviews)
	api.Put("/word-lists", middleware.JWTProtected(cfg), wordListHandler.UpsertWordList)
	api.Put("/overviews", middleware.JWTProtected(cfg), wordListHandler.UpsertOverview)

	// Deletes additionally require the anti-forgery token issued below.
	csrfProtect := csrf.New(csrf.Config{
		KeyLookup:      "header:X-Csrf-Token",
		CookieSameSite: "Strict",
		Expiration:     1 * time.Hour,
		ContextKey:     "csrf",
	})
	api.Get("/csrf-token", csrfProtect, func(c *fiber.Ctx) error {
		token, _ := c.Locals("csrf").(string)
		return c.JSON(fiber.Map{"token": token})
	})
	api.Delete("/overviews/:id", csrfProtect, middleware.JWTProtected(cfg), wordListHandler.DeleteOverview)

	// Engagement + reporting (any authenticated user)
	api.Post("/overviews/:id/upvote", middleware.JWTProtected(cfg), wordListHandler.ToggleUpvote)
	api.Post("/reports", middleware.JWTProtected(cfg), moderationHandler.CreateReport)

	// Admin moderation panel
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(cfg))
	admin.Get("/reports", moderationHandler.ListPendingReports)
	admin.Put("/reports/:id", moderationHandler.ResolveReport)
}

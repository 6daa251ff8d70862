package middleware

import (
	"github.com/etymo-app/backend/internal/config"
	"github.com/etymo-app/backend/internal/dto"
	"github.com/etymo-app/backend/internal/identity"
	"github.com/gofiber/fiber/v2"
)

// AdminRequired rejects callers without the admin role. It runs behind
// JWTProtected, so an unauthenticated request never reaches it.
func AdminRequired(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if identity.IsAdmin(c, cfg) {
			return c.Next()
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Admin access required",
		})
	}
}

package handlers

import (
	"errors"
	"log/slog"

	"github.com/etymo-app/backend/internal/authz"
	"github.com/etymo-app/backend/internal/dto"
	"github.com/etymo-app/backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// respondError maps service errors onto the boundary's response vocabulary.
// Storage-engine details never reach the client; they are logged instead.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Not found",
		})
	case errors.Is(err, services.ErrInvalidArgument):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	default:
		slog.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
}

// respondDecision maps a non-allow authorization decision to its status code.
func respondDecision(c *fiber.Ctx, decision authz.Decision) error {
	if decision == authz.Unauthorized {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}
	return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
		Error: true, Message: "Forbidden",
	})
}

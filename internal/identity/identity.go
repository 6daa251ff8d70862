// Package identity extracts the authenticated caller from JWT claims placed
// in the request context by the auth middleware. Tokens are issued by the
// external identity provider; this package only reads them.
package identity

import (
	"errors"
	"strings"

	"github.com/etymo-app/backend/internal/config"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Subject returns the raw sub claim, or "" for an anonymous request.
func Subject(c *fiber.Ctx) string {
	claims := tokenClaims(c)
	if claims == nil {
		return ""
	}
	sub, _ := claims["sub"].(string)
	return sub
}

// UserID parses the sub claim as a UUID.
func UserID(c *fiber.Ctx) (uuid.UUID, error) {
	sub := Subject(c)
	if sub == "" {
		return uuid.Nil, errors.New("no authenticated subject")
	}
	return uuid.Parse(sub)
}

// IsAdmin reports whether the caller holds the admin role, via the token's
// roles claim, the configured admin id allow-list, or the admin token header.
func IsAdmin(c *fiber.Ctx, cfg *config.Config) bool {
	if cfg.AdminToken != "" && c.Get("X-Admin-Token") == cfg.AdminToken {
		return true
	}

	sub := Subject(c)
	if sub != "" && containsFold(parseCSV(cfg.AdminUserIDs), sub) {
		return true
	}

	claims := tokenClaims(c)
	if claims == nil {
		return false
	}
	for _, role := range claimRoles(claims) {
		if strings.EqualFold(role, "admin") {
			return true
		}
	}
	return false
}

func tokenClaims(c *fiber.Ctx) jwt.MapClaims {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return nil
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}
	return claims
}

// claimRoles collects roles from a flat "roles" claim and from the
// Keycloak-style "realm_access" object.
func claimRoles(claims jwt.MapClaims) []string {
	var roles []string

	if raw, ok := claims["roles"].([]interface{}); ok {
		for _, r := range raw {
			if s, ok := r.(string); ok {
				roles = append(roles, s)
			}
		}
	}

	if realm, ok := claims["realm_access"].(map[string]interface{}); ok {
		if raw, ok := realm["roles"].([]interface{}); ok {
			for _, r := range raw {
				if s, ok := r.(string); ok {
					roles = append(roles, s)
				}
			}
		}
	}

	return roles
}

func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func containsFold(list []string, val string) bool {
	for _, item := range list {
		if strings.EqualFold(item, val) {
			return true
		}
	}
	return false
}

package middleware

import (
	"gamehub-backend/internal/pkg/apperrors"
	"gamehub-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const userLocal = "user"

// RequireAuth ensures a user is in the session.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := c.Locals(userLocal)
		if user == nil {
			return response.Error(c, apperrors.Unauthorized("Unauthorized"))
		}
		return c.Next()
	}
}

// RequireRole ensures the session user carries the given role name. Role is
// a plain string comparison, not a capability system.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if SessionRole(c) != role {
			return response.Error(c, apperrors.Forbidden("Insufficient role"))
		}
		return c.Next()
	}
}

// SessionUserID returns the authenticated user's id, 0 if not logged in.
func SessionUserID(c *fiber.Ctx) uint {
	m, ok := c.Locals(userLocal).(map[string]interface{})
	if !ok {
		return 0
	}
	switch v := m["user_id"].(type) {
	case float64:
		return uint(v)
	case uint:
		return v
	case int:
		return uint(v)
	}
	return 0
}

// SessionRole returns the session user's role name, "" if not logged in.
func SessionRole(c *fiber.Ctx) string {
	m, ok := c.Locals(userLocal).(map[string]interface{})
	if !ok {
		return ""
	}
	role, _ := m["role"].(string)
	return role
}

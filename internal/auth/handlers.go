package auth

import (
	"context"

	"gamehub-backend/internal/middleware"
	"gamehub-backend/internal/pkg/apperrors"
	"gamehub-backend/internal/pkg/response"
	"gamehub-backend/internal/users"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Handlers implements session login on top of the users service. The session
// id is regenerated on login and the Redis key removed on logout.
type Handlers struct {
	Users      *users.Service
	Redis      *redis.Client
	SessionCfg middleware.SessionConfig
}

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/v1/auth/login
func (h *Handlers) Login(c *fiber.Ctx) error {
	var in loginInput
	if err := c.BodyParser(&in); err != nil {
		return apperrors.Validation("Invalid request body")
	}
	if in.Email == "" || in.Password == "" {
		return apperrors.Validation("email and password are required")
	}

	user, roleName, err := h.Users.VerifyCredentials(c.Context(), in.Email, in.Password)
	if err != nil {
		return err
	}

	sid := middleware.RegenerateSessionID(c)
	middleware.SetSessionUser(c, middleware.SessionUser{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   roleName,
	})

	cookie := middleware.SessionCookie(h.SessionCfg)
	cookie.Value = sid
	c.Cookie(&cookie)

	return response.OK(c, fiber.Map{
		"user": fiber.Map{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  roleName,
		},
	})
}

// GET /api/v1/auth/me
func (h *Handlers) Me(c *fiber.Ctx) error {
	userID := middleware.SessionUserID(c)
	if userID == 0 {
		return apperrors.Unauthorized("Not authenticated")
	}
	user, err := h.Users.GetUser(c.Context(), userID)
	if err != nil {
		return err
	}
	roleName, err := h.Users.RoleName(c.Context(), user)
	if err != nil {
		return err
	}
	return response.OK(c, fiber.Map{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  roleName,
	})
}

// POST /api/v1/auth/logout
func (h *Handlers) Logout(c *fiber.Ctx) error {
	if sid := middleware.GetSessionID(c); sid != "" && h.Redis != nil {
		h.Redis.Del(context.Background(), middleware.SessionRedisPrefix+sid)
	}
	middleware.DestroySession(c)
	c.Locals("session_id", "")

	cookie := middleware.SessionCookie(h.SessionCfg)
	cookie.MaxAge = -1
	c.Cookie(&cookie)

	return response.OK(c, fiber.Map{"logged_out": true})
}

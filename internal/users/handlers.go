package users

import (
	"strconv"

	"gamehub-backend/internal/pkg/apperrors"
	"gamehub-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *Service
}

// GET /api/v1/users
func (h *Handlers) ListUsers(c *fiber.Ctx) error {
	skip := c.QueryInt("skip", 0)
	limit := c.QueryInt("limit", 100)
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	users, err := h.Service.ListUsers(c.Context(), skip, limit)
	if err != nil {
		return err
	}
	return response.OK(c, users)
}

// GET /api/v1/users/:user_id
func (h *Handlers) GetUser(c *fiber.Ctx) error {
	id, err := paramUint(c, "user_id")
	if err != nil {
		return err
	}
	user, err := h.Service.GetUser(c.Context(), id)
	if err != nil {
		return err
	}
	return response.OK(c, user)
}

// POST /api/v1/users
func (h *Handlers) CreateUser(c *fiber.Ctx) error {
	var in CreateUserInput
	if err := c.BodyParser(&in); err != nil {
		return apperrors.Validation("Invalid request body")
	}
	user, err := h.Service.CreateUser(c.Context(), in)
	if err != nil {
		return err
	}
	return response.Created(c, user)
}

// PUT /api/v1/users/:user_id
func (h *Handlers) UpdateUser(c *fiber.Ctx) error {
	id, err := paramUint(c, "user_id")
	if err != nil {
		return err
	}
	var body struct {
		Name     *string `json:"name"`
		Email    *string `json:"email"`
		Password *string `json:"password"`
		RoleID   *uint   `json:"role_id"`
	}
	if err := c.BodyParser(&body); err != nil {
		return apperrors.Validation("Invalid request body")
	}
	changes := map[string]interface{}{}
	if body.Name != nil {
		changes["name"] = *body.Name
	}
	if body.Email != nil {
		changes["email"] = *body.Email
	}
	if body.Password != nil {
		changes["password"] = *body.Password
	}
	if body.RoleID != nil {
		changes["role_id"] = *body.RoleID
	}
	if len(changes) == 0 {
		return apperrors.Validation("No fields to update")
	}
	user, err := h.Service.UpdateUser(c.Context(), id, changes)
	if err != nil {
		return err
	}
	return response.OK(c, user)
}

// DELETE /api/v1/users/:user_id
func (h *Handlers) DeleteUser(c *fiber.Ctx) error {
	id, err := paramUint(c, "user_id")
	if err != nil {
		return err
	}
	if err := h.Service.DeleteUser(c.Context(), id); err != nil {
		return err
	}
	return response.NoContent(c)
}

// GET /api/v1/users/health
func (h *Handlers) Health(c *fiber.Ctx) error {
	total, err := h.Service.Count(c.Context(), nil)
	if err != nil {
		return apperrors.FromDB(err)
	}
	return response.OK(c, fiber.Map{"status": "healthy", "users": total})
}

func paramUint(c *fiber.Ctx, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil {
		return 0, apperrors.Validation("Invalid " + name)
	}
	return uint(v), nil
}

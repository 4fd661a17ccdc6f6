package chat

import (
	"strconv"

	"gamehub-backend/internal/pkg/apperrors"
	"gamehub-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *Service
}

// POST /api/v1/chat/messages
func (h *Handlers) CreateMessage(c *fiber.Ctx) error {
	var in CreateMessageInput
	if err := c.BodyParser(&in); err != nil {
		return apperrors.Validation("Invalid request body")
	}
	msg, err := h.Service.CreateMessage(c.Context(), in)
	if err != nil {
		return err
	}
	return response.Created(c, msg)
}

// POST /api/v1/chat/messages/batch - all-or-nothing insert.
func (h *Handlers) CreateBatch(c *fiber.Ctx) error {
	var body struct {
		Messages []CreateMessageInput `json:"messages"`
	}
	if err := c.BodyParser(&body); err != nil {
		return apperrors.Validation("Invalid request body")
	}
	messages, err := h.Service.CreateBatch(c.Context(), body.Messages)
	if err != nil {
		return err
	}
	return response.Created(c, fiber.Map{"created": len(messages), "messages": messages})
}

// GET /api/v1/chat/messages/:message_id
func (h *Handlers) GetMessage(c *fiber.Ctx) error {
	id, err := paramUint(c, "message_id")
	if err != nil {
		return err
	}
	msg, err := h.Service.GetMessage(c.Context(), id)
	if err != nil {
		return err
	}
	return response.OK(c, msg)
}

// GET /api/v1/chat/user/:user_id - the user's conversation, oldest first.
func (h *Handlers) GetUserMessages(c *fiber.Ctx) error {
	userID, err := paramUint(c, "user_id")
	if err != nil {
		return err
	}
	skip := c.QueryInt("skip", 0)
	limit := c.QueryInt("limit", 100)
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	messages, err := h.Service.GetUserMessages(c.Context(), userID, skip, limit)
	if err != nil {
		return err
	}
	return response.OK(c, messages)
}

// PUT /api/v1/chat/messages/:message_id
func (h *Handlers) UpdateMessage(c *fiber.Ctx) error {
	id, err := paramUint(c, "message_id")
	if err != nil {
		return err
	}
	var body struct {
		MessageText *string `json:"message_text"`
		MessageType *string `json:"message_type"`
	}
	if err := c.BodyParser(&body); err != nil {
		return apperrors.Validation("Invalid request body")
	}
	changes := map[string]interface{}{}
	if body.MessageText != nil {
		changes["message_text"] = *body.MessageText
	}
	if body.MessageType != nil {
		changes["message_type"] = *body.MessageType
	}
	if len(changes) == 0 {
		return apperrors.Validation("No fields to update")
	}
	msg, err := h.Service.UpdateMessage(c.Context(), id, changes)
	if err != nil {
		return err
	}
	return response.OK(c, msg)
}

// DELETE /api/v1/chat/messages/:message_id
func (h *Handlers) DeleteMessage(c *fiber.Ctx) error {
	id, err := paramUint(c, "message_id")
	if err != nil {
		return err
	}
	if err := h.Service.DeleteMessage(c.Context(), id); err != nil {
		return err
	}
	return response.NoContent(c)
}

// GET /api/v1/chat/statistics
func (h *Handlers) GetStatistics(c *fiber.Ctx) error {
	stats, err := h.Service.GetStatistics(c.Context())
	if err != nil {
		return err
	}
	return response.OK(c, stats)
}

// GET /api/v1/chat/health
func (h *Handlers) Health(c *fiber.Ctx) error {
	total, err := h.Service.Count(c.Context(), nil)
	if err != nil {
		return apperrors.FromDB(err)
	}
	return response.OK(c, fiber.Map{"status": "healthy", "messages": total})
}

func paramUint(c *fiber.Ctx, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil {
		return 0, apperrors.Validation("Invalid " + name)
	}
	return uint(v), nil
}

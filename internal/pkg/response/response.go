package response

import (
	"gamehub-backend/internal/pkg/apperrors"

	"github.com/gofiber/fiber/v2"
)

// JSON sends data as-is with the given status.
func JSON(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(data)
}

// OK sends a 200 with data.
func OK(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(data)
}

// Created sends a 201 with data.
func Created(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(data)
}

// NoContent sends a 204.
func NoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}

// Error renders the standard error envelope {error_code, detail, ...details}.
func Error(c *fiber.Ctx, err *apperrors.Error) error {
	body := fiber.Map{
		"error_code": err.Code,
		"detail":     err.Message,
	}
	for k, v := range err.Details {
		body[k] = v
	}
	return c.Status(err.Status).JSON(body)
}

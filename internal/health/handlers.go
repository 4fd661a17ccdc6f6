package health

import (
	"gamehub-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *Service
}

// GET /api/v1/health - aggregate report. 503 when the database is down.
func (h *Handlers) Check(c *fiber.Ctx) error {
	report := h.Service.Check(c.Context())
	if report.Status == "unhealthy" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(report)
	}
	return response.OK(c, report)
}

// GET /api/v1/health/live - bare liveness probe.
func (h *Handlers) Live(c *fiber.Ctx) error {
	return response.OK(c, fiber.Map{"status": "ok"})
}

package orders

import (
	"strconv"

	"gamehub-backend/internal/pkg/apperrors"
	"gamehub-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *Service
}

// GET /api/v1/orders
func (h *Handlers) ListOrders(c *fiber.Ctx) error {
	skip := c.QueryInt("skip", 0)
	limit := clampLimit(c.QueryInt("limit", 100))
	orders, err := h.Service.ListOrders(c.Context(), skip, limit, c.Query("status"))
	if err != nil {
		return err
	}
	return response.OK(c, orders)
}

// GET /api/v1/orders/:order_id
func (h *Handlers) GetOrder(c *fiber.Ctx) error {
	id, err := paramUint(c, "order_id")
	if err != nil {
		return err
	}
	order, err := h.Service.GetOrder(c.Context(), id)
	if err != nil {
		return err
	}
	return response.OK(c, order)
}

// POST /api/v1/orders
func (h *Handlers) CreateOrder(c *fiber.Ctx) error {
	var in CreateOrderInput
	if err := c.BodyParser(&in); err != nil {
		return apperrors.Validation("Invalid request body")
	}
	order, items, err := h.Service.CreateOrder(c.Context(), in)
	if err != nil {
		return err
	}
	return response.Created(c, fiber.Map{"order": order, "items": items})
}

// PUT /api/v1/orders/:order_id/status
func (h *Handlers) UpdateStatus(c *fiber.Ctx) error {
	id, err := paramUint(c, "order_id")
	if err != nil {
		return err
	}
	var body struct {
		Status        string `json:"status"`
		PaymentStatus string `json:"payment_status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return apperrors.Validation("Invalid request body")
	}
	order, err := h.Service.UpdateStatus(c.Context(), id, body.Status, body.PaymentStatus)
	if err != nil {
		return err
	}
	return response.OK(c, order)
}

// DELETE /api/v1/orders/:order_id - cancel, not a hard delete.
func (h *Handlers) CancelOrder(c *fiber.Ctx) error {
	id, err := paramUint(c, "order_id")
	if err != nil {
		return err
	}
	if err := h.Service.CancelOrder(c.Context(), id); err != nil {
		return err
	}
	return response.NoContent(c)
}

// GET /api/v1/orders/user/:user_id
func (h *Handlers) GetUserOrders(c *fiber.Ctx) error {
	userID, err := paramUint(c, "user_id")
	if err != nil {
		return err
	}
	skip := c.QueryInt("skip", 0)
	limit := clampLimit(c.QueryInt("limit", 100))
	orders, err := h.Service.GetUserOrders(c.Context(), userID, skip, limit)
	if err != nil {
		return err
	}
	return response.OK(c, orders)
}

// GET /api/v1/orders/:order_id/items
func (h *Handlers) GetOrderItems(c *fiber.Ctx) error {
	id, err := paramUint(c, "order_id")
	if err != nil {
		return err
	}
	items, err := h.Service.GetOrderItems(c.Context(), id)
	if err != nil {
		return err
	}
	return response.OK(c, items)
}

// GET /api/v1/orders/statistics
func (h *Handlers) GetStatistics(c *fiber.Ctx) error {
	stats, err := h.Service.GetStatistics(c.Context())
	if err != nil {
		return err
	}
	return response.OK(c, stats)
}

// GET /api/v1/orders/health
func (h *Handlers) Health(c *fiber.Ctx) error {
	total, err := h.Service.Orders.Count(c.Context(), nil)
	if err != nil {
		return apperrors.FromDB(err)
	}
	return response.OK(c, fiber.Map{"status": "healthy", "orders": total})
}

func paramUint(c *fiber.Ctx, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil {
		return 0, apperrors.Validation("Invalid " + name)
	}
	return uint(v), nil
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > 500 {
		return 100
	}
	return limit
}

package cart

import (
	"strconv"

	"gamehub-backend/internal/middleware"
	"gamehub-backend/internal/pkg/apperrors"
	"gamehub-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *Service
}

// GET /api/v1/cart/user/:user_id - cart with items and summary; creates the
// cart on first access.
func (h *Handlers) GetUserCart(c *fiber.Ctx) error {
	userID, err := paramUint(c, "user_id")
	if err != nil {
		return err
	}
	cart, err := h.Service.GetOrCreateUserCart(c.Context(), userID)
	if err != nil {
		return err
	}

	withItems := c.QueryBool("with_items", true)
	body := fiber.Map{"cart": cart}
	if withItems {
		items, err := h.Service.GetItems(c.Context(), cart.ID, 0, 0)
		if err != nil {
			return err
		}
		summary, err := h.Service.GetSummary(c.Context(), cart.ID)
		if err != nil {
			return err
		}
		body["items"] = items
		body["summary"] = summary
	}
	return response.OK(c, body)
}

// GET /api/v1/cart/items - anonymous lines for the current cart session.
func (h *Handlers) GetGuestItems(c *fiber.Ctx) error {
	items, err := h.Service.GetGuestItems(c.Context(), middleware.GetCartSessionID(c))
	if err != nil {
		return err
	}
	return response.OK(c, items)
}

// POST /api/v1/cart/items - add a line to the anonymous session cart.
func (h *Handlers) AddGuestItem(c *fiber.Ctx) error {
	var in ItemInput
	if err := c.BodyParser(&in); err != nil {
		return apperrors.Validation("Invalid request body")
	}
	item, err := h.Service.AddGuestItem(c.Context(), middleware.GetCartSessionID(c), in)
	if err != nil {
		return err
	}
	return response.Created(c, item)
}

// POST /api/v1/cart/:cart_id/items - add a line, merging duplicates.
func (h *Handlers) AddItem(c *fiber.Ctx) error {
	cartID, err := paramUint(c, "cart_id")
	if err != nil {
		return err
	}
	var in ItemInput
	if err := c.BodyParser(&in); err != nil {
		return apperrors.Validation("Invalid request body")
	}
	item, err := h.Service.AddItem(c.Context(), cartID, in)
	if err != nil {
		return err
	}
	return response.Created(c, item)
}

// PUT /api/v1/cart/items/:item_id - set quantity; <= 0 removes the line.
func (h *Handlers) UpdateItemQuantity(c *fiber.Ctx) error {
	itemID, err := paramUint(c, "item_id")
	if err != nil {
		return err
	}
	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := c.BodyParser(&body); err != nil {
		return apperrors.Validation("Invalid request body")
	}
	item, err := h.Service.UpdateQuantity(c.Context(), itemID, body.Quantity)
	if err != nil {
		return err
	}
	if item == nil {
		return response.OK(c, fiber.Map{"deleted": true})
	}
	return response.OK(c, item)
}

// DELETE /api/v1/cart/items/:item_id
func (h *Handlers) RemoveItem(c *fiber.Ctx) error {
	itemID, err := paramUint(c, "item_id")
	if err != nil {
		return err
	}
	if err := h.Service.RemoveItem(c.Context(), itemID); err != nil {
		return err
	}
	return response.NoContent(c)
}

// DELETE /api/v1/cart/:cart_id/clear
func (h *Handlers) ClearCart(c *fiber.Ctx) error {
	cartID, err := paramUint(c, "cart_id")
	if err != nil {
		return err
	}
	if err := h.Service.ClearCart(c.Context(), cartID); err != nil {
		return err
	}
	return response.NoContent(c)
}

// POST /api/v1/cart/user/:user_id/merge - fold the guest session cart into
// the user cart after login.
func (h *Handlers) MergeGuestCart(c *fiber.Ctx) error {
	userID, err := paramUint(c, "user_id")
	if err != nil {
		return err
	}
	sessionID := c.Query("cart_session_id")
	if sessionID == "" {
		sessionID = middleware.GetCartSessionID(c)
	}
	merged, err := h.Service.MergeGuestCart(c.Context(), userID, sessionID)
	if err != nil {
		return err
	}
	msg := "Carts merged successfully"
	if merged == 0 {
		msg = "No items to merge"
	}
	return response.OK(c, fiber.Map{"message": msg, "merged_count": merged, "user_id": userID})
}

// GET /api/v1/cart/health
func (h *Handlers) Health(c *fiber.Ctx) error {
	carts, err := h.Service.Carts.Count(c.Context(), nil)
	if err != nil {
		return apperrors.FromDB(err)
	}
	items, err := h.Service.Items.Count(c.Context(), nil)
	if err != nil {
		return apperrors.FromDB(err)
	}
	return response.OK(c, fiber.Map{"status": "healthy", "carts": carts, "cart_items": items})
}

func paramUint(c *fiber.Ctx, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil {
		return 0, apperrors.Validation("Invalid " + name)
	}
	return uint(v), nil
}

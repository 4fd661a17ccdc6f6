package catalog

import (
	"strconv"

	"gamehub-backend/internal/pkg/apperrors"
	"gamehub-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *Service
}

// GET /api/v1/products
func (h *Handlers) ListProducts(c *fiber.Ctx) error {
	skip := c.QueryInt("skip", 0)
	limit := clampLimit(c.QueryInt("limit", 100))
	orderBy := c.Query("order_by")
	descending := c.Query("order_direction") == "desc"
	category := c.Query("category")
	activeOnly := c.QueryBool("active_only", true)

	products, err := h.Service.ListProducts(c.Context(), skip, limit, orderBy, descending, category, activeOnly)
	if err != nil {
		return err
	}
	return response.OK(c, products)
}

// GET /api/v1/products/:product_id
func (h *Handlers) GetProduct(c *fiber.Ctx) error {
	id, err := paramUint(c, "product_id")
	if err != nil {
		return err
	}
	product, err := h.Service.GetProduct(c.Context(), id)
	if err != nil {
		return err
	}
	return response.OK(c, product)
}

// POST /api/v1/products - admin only (router enforces the role).
func (h *Handlers) CreateProduct(c *fiber.Ctx) error {
	var in CreateProductInput
	if err := c.BodyParser(&in); err != nil {
		return apperrors.Validation("Invalid request body")
	}
	product, err := h.Service.CreateProduct(c.Context(), in)
	if err != nil {
		return err
	}
	return response.Created(c, product)
}

// PUT /api/v1/products/:product_id - patch semantics: only supplied keys move.
func (h *Handlers) UpdateProduct(c *fiber.Ctx) error {
	id, err := paramUint(c, "product_id")
	if err != nil {
		return err
	}
	var body struct {
		Title       *string  `json:"title"`
		Description *string  `json:"description"`
		Price       *float64 `json:"price"`
		Category    *string  `json:"category"`
		ImageURL    *string  `json:"image_url"`
		IsActive    *bool    `json:"is_active"`
	}
	if err := c.BodyParser(&body); err != nil {
		return apperrors.Validation("Invalid request body")
	}

	changes := map[string]interface{}{}
	if body.Title != nil {
		changes["title"] = *body.Title
	}
	if body.Description != nil {
		changes["description"] = *body.Description
	}
	if body.Price != nil {
		changes["price"] = *body.Price
	}
	if body.Category != nil {
		changes["category"] = *body.Category
	}
	if body.ImageURL != nil {
		changes["image_url"] = *body.ImageURL
	}
	if body.IsActive != nil {
		changes["is_active"] = *body.IsActive
	}
	if len(changes) == 0 {
		return apperrors.Validation("No fields to update")
	}

	product, err := h.Service.UpdateProduct(c.Context(), id, changes)
	if err != nil {
		return err
	}
	return response.OK(c, product)
}

// DELETE /api/v1/products/:product_id - soft delete via is_active.
func (h *Handlers) DeleteProduct(c *fiber.Ctx) error {
	id, err := paramUint(c, "product_id")
	if err != nil {
		return err
	}
	if err := h.Service.Deactivate(c.Context(), id); err != nil {
		return err
	}
	return response.NoContent(c)
}

// GET /api/v1/products/category/:category_name
func (h *Handlers) GetByCategory(c *fiber.Ctx) error {
	category := c.Params("category_name")
	skip := c.QueryInt("skip", 0)
	limit := clampLimit(c.QueryInt("limit", 100))
	products, err := h.Service.GetByCategory(c.Context(), category, skip, limit)
	if err != nil {
		return err
	}
	return response.OK(c, products)
}

// POST /api/v1/products/:product_id/increment-popularity
func (h *Handlers) IncrementPopularity(c *fiber.Ctx) error {
	id, err := paramUint(c, "product_id")
	if err != nil {
		return err
	}
	product, err := h.Service.IncrementPopularity(c.Context(), id)
	if err != nil {
		return err
	}
	return response.OK(c, product)
}

// GET /api/v1/products/health
func (h *Handlers) Health(c *fiber.Ctx) error {
	total, err := h.Service.Count(c.Context(), nil)
	if err != nil {
		return apperrors.FromDB(err)
	}
	active, err := h.Service.Count(c.Context(), map[string]interface{}{"is_active": true})
	if err != nil {
		return apperrors.FromDB(err)
	}
	return response.OK(c, fiber.Map{"status": "healthy", "products": total, "active_products": active})
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

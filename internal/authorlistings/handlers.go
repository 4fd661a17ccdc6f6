package authorlistings

import (
	"strconv"

	"gamehub-backend/internal/pkg/apperrors"
	"gamehub-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *Service
}

// GET /api/v1/author-listings
func (h *Handlers) ListAuthorListings(c *fiber.Ctx) error {
	skip := c.QueryInt("skip", 0)
	limit := clampLimit(c.QueryInt("limit", 100))
	listings, err := h.Service.ListAuthorListings(c.Context(), skip, limit, c.Query("status"), c.Query("game_topics"))
	if err != nil {
		return err
	}
	return response.OK(c, listings)
}

// GET /api/v1/author-listings/:listing_id
func (h *Handlers) GetAuthorListing(c *fiber.Ctx) error {
	id, err := paramUint(c, "listing_id")
	if err != nil {
		return err
	}
	if err := h.Service.IncrementViews(c.Context(), id); err != nil {
		return err
	}
	listing, err := h.Service.GetAuthorListing(c.Context(), id)
	if err != nil {
		return err
	}
	return response.OK(c, listing)
}

// POST /api/v1/author-listings
func (h *Handlers) CreateAuthorListing(c *fiber.Ctx) error {
	var in CreateInput
	if err := c.BodyParser(&in); err != nil {
		return apperrors.Validation("Invalid request body")
	}
	listing, err := h.Service.CreateAuthorListing(c.Context(), in)
	if err != nil {
		return err
	}
	return response.Created(c, listing)
}

// PUT /api/v1/author-listings/:listing_id
func (h *Handlers) UpdateAuthorListing(c *fiber.Ctx) error {
	id, err := paramUint(c, "listing_id")
	if err != nil {
		return err
	}
	var body struct {
		Title      *string  `json:"title"`
		Price      *float64 `json:"price"`
		GameTopics *string  `json:"game_topics"`
		ImageURL   *string  `json:"image_url"`
		Status     *string  `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return apperrors.Validation("Invalid request body")
	}

	changes := map[string]interface{}{}
	if body.Title != nil {
		changes["title"] = *body.Title
	}
	if body.Price != nil {
		changes["price"] = *body.Price
	}
	if body.GameTopics != nil {
		changes["game_topics"] = *body.GameTopics
	}
	if body.ImageURL != nil {
		changes["image_url"] = *body.ImageURL
	}
	if body.Status != nil {
		changes["status"] = *body.Status
	}
	if len(changes) == 0 {
		return apperrors.Validation("No fields to update")
	}

	listing, err := h.Service.UpdateAuthorListing(c.Context(), id, changes)
	if err != nil {
		return err
	}
	return response.OK(c, listing)
}

// DELETE /api/v1/author-listings/:listing_id - soft delete (status flip).
func (h *Handlers) DeleteAuthorListing(c *fiber.Ctx) error {
	id, err := paramUint(c, "listing_id")
	if err != nil {
		return err
	}
	if err := h.Service.SoftDelete(c.Context(), id); err != nil {
		return err
	}
	return response.NoContent(c)
}

// GET /api/v1/author-listings/user/:user_id
func (h *Handlers) GetUserAuthorListings(c *fiber.Ctx) error {
	userID, err := paramUint(c, "user_id")
	if err != nil {
		return err
	}
	skip := c.QueryInt("skip", 0)
	limit := clampLimit(c.QueryInt("limit", 100))
	listings, err := h.Service.GetUserAuthorListings(c.Context(), userID, skip, limit)
	if err != nil {
		return err
	}
	return response.OK(c, listings)
}

// POST /api/v1/author-listings/:listing_id/like
func (h *Handlers) LikeAuthorListing(c *fiber.Ctx) error {
	id, err := paramUint(c, "listing_id")
	if err != nil {
		return err
	}
	listing, err := h.Service.IncrementLikes(c.Context(), id)
	if err != nil {
		return err
	}
	return response.OK(c, listing)
}

// GET /api/v1/author-listings/health
func (h *Handlers) Health(c *fiber.Ctx) error {
	total, err := h.Service.Count(c.Context(), nil)
	if err != nil {
		return apperrors.FromDB(err)
	}
	return response.OK(c, fiber.Map{"status": "healthy", "author_listings": total})
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

package listings

import (
	"strconv"

	"gamehub-backend/internal/pkg/apperrors"
	"gamehub-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

type Handlers struct {
	Service *Service
}

// GET /api/v1/listings
func (h *Handlers) ListListings(c *fiber.Ctx) error {
	skip := c.QueryInt("skip", 0)
	limit := clampLimit(c.QueryInt("limit", 100))
	listings, err := h.Service.ListListings(c.Context(), skip, limit, c.Query("status"), c.Query("game_topic"))
	if err != nil {
		return err
	}
	return response.OK(c, listings)
}

// GET /api/v1/listings/:listing_id - bumps the view counter.
func (h *Handlers) GetListing(c *fiber.Ctx) error {
	id, err := paramUint(c, "listing_id")
	if err != nil {
		return err
	}
	if err := h.Service.IncrementViews(c.Context(), id); err != nil {
		return err
	}
	listing, err := h.Service.GetListing(c.Context(), id)
	if err != nil {
		return err
	}
	return response.OK(c, listing)
}

// POST /api/v1/listings
func (h *Handlers) CreateListing(c *fiber.Ctx) error {
	var in CreateListingInput
	if err := c.BodyParser(&in); err != nil {
		return apperrors.Validation("Invalid request body")
	}
	listing, err := h.Service.CreateListing(c.Context(), in)
	if err != nil {
		return err
	}
	return response.Created(c, listing)
}

// PUT /api/v1/listings/:listing_id
func (h *Handlers) UpdateListing(c *fiber.Ctx) error {
	id, err := paramUint(c, "listing_id")
	if err != nil {
		return err
	}
	var body struct {
		Title       *string         `json:"title"`
		Description *string         `json:"description"`
		Price       *float64        `json:"price"`
		GameTopic   *string         `json:"game_topic"`
		Images      *datatypes.JSON `json:"images"`
		Status      *string         `json:"status"`
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
	if body.GameTopic != nil {
		changes["game_topic"] = *body.GameTopic
	}
	if body.Images != nil {
		changes["images"] = *body.Images
	}
	if body.Status != nil {
		changes["status"] = *body.Status
	}
	if len(changes) == 0 {
		return apperrors.Validation("No fields to update")
	}

	listing, err := h.Service.UpdateListing(c.Context(), id, changes)
	if err != nil {
		return err
	}
	return response.OK(c, listing)
}

// DELETE /api/v1/listings/:listing_id - soft delete (status flip).
func (h *Handlers) DeleteListing(c *fiber.Ctx) error {
	id, err := paramUint(c, "listing_id")
	if err != nil {
		return err
	}
	if err := h.Service.SoftDelete(c.Context(), id); err != nil {
		return err
	}
	return response.NoContent(c)
}

// GET /api/v1/listings/user/:user_id
func (h *Handlers) GetUserListings(c *fiber.Ctx) error {
	userID, err := paramUint(c, "user_id")
	if err != nil {
		return err
	}
	skip := c.QueryInt("skip", 0)
	limit := clampLimit(c.QueryInt("limit", 100))
	listings, err := h.Service.GetUserListings(c.Context(), userID, skip, limit)
	if err != nil {
		return err
	}
	return response.OK(c, listings)
}

// GET /api/v1/listings/featured
func (h *Handlers) GetFeatured(c *fiber.Ctx) error {
	listings, err := h.Service.GetFeatured(c.Context(), clampLimit(c.QueryInt("limit", 20)))
	if err != nil {
		return err
	}
	return response.OK(c, listings)
}

// GET /api/v1/listings/recent
func (h *Handlers) GetRecent(c *fiber.Ctx) error {
	listings, err := h.Service.GetRecent(c.Context(), clampLimit(c.QueryInt("limit", 20)))
	if err != nil {
		return err
	}
	return response.OK(c, listings)
}

// POST /api/v1/listings/:listing_id/feature - admin only.
func (h *Handlers) ToggleFeatured(c *fiber.Ctx) error {
	id, err := paramUint(c, "listing_id")
	if err != nil {
		return err
	}
	listing, err := h.Service.ToggleFeatured(c.Context(), id)
	if err != nil {
		return err
	}
	return response.OK(c, listing)
}

// POST /api/v1/listings/:listing_id/like
func (h *Handlers) LikeListing(c *fiber.Ctx) error {
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

// GET /api/v1/listings/topics
func (h *Handlers) GetTopics(c *fiber.Ctx) error {
	topics, err := h.Service.GetTopics(c.Context())
	if err != nil {
		return err
	}
	return response.OK(c, topics)
}

// GET /api/v1/listings/statistics
func (h *Handlers) GetStatistics(c *fiber.Ctx) error {
	stats, err := h.Service.GetStatistics(c.Context())
	if err != nil {
		return err
	}
	return response.OK(c, stats)
}

// GET /api/v1/listings/health
func (h *Handlers) Health(c *fiber.Ctx) error {
	total, err := h.Service.Count(c.Context(), nil)
	if err != nil {
		return apperrors.FromDB(err)
	}
	return response.OK(c, fiber.Map{"status": "healthy", "listings": total})
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

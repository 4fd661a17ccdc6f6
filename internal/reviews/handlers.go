package reviews

import (
	"strconv"

	"gamehub-backend/internal/cart"
	"gamehub-backend/internal/pkg/apperrors"
	"gamehub-backend/internal/pkg/response"
	"gamehub-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *Service
}

// GET /api/v1/reviews
func (h *Handlers) ListReviews(c *fiber.Ctx) error {
	skip := c.QueryInt("skip", 0)
	limit := clampLimit(c.QueryInt("limit", 100))

	filters := map[string]interface{}{}
	if userID := c.QueryInt("user_id", 0); userID > 0 {
		filters["user_id"] = uint(userID)
	}
	if itemType := c.Query("item_type"); itemType != "" {
		filters["item_type"] = itemType
	}
	if itemID := c.QueryInt("item_id", 0); itemID > 0 {
		filters["item_id"] = uint(itemID)
	}
	if c.Query("verified_only") == "true" {
		filters["is_verified"] = true
	}

	reviews, err := h.Service.ListReviews(c.Context(), skip, limit, filters)
	if err != nil {
		return err
	}
	return response.OK(c, reviews)
}

// GET /api/v1/reviews/:review_id
func (h *Handlers) GetReview(c *fiber.Ctx) error {
	id, err := paramUint(c, "review_id")
	if err != nil {
		return err
	}
	review, err := h.Service.GetReview(c.Context(), id)
	if err != nil {
		return err
	}
	return response.OK(c, review)
}

// POST /api/v1/reviews - the rating range check runs here and in the
// service, deliberately redundant.
func (h *Handlers) CreateReview(c *fiber.Ctx) error {
	var in CreateReviewInput
	if err := c.BodyParser(&in); err != nil {
		return apperrors.Validation("Invalid request body")
	}
	if !validation.IsValidRating(in.Rating) {
		return apperrors.Unprocessable("rating must be between 1 and 5")
	}
	review, err := h.Service.CreateReview(c.Context(), in)
	if err != nil {
		return err
	}
	return response.Created(c, review)
}

// PUT /api/v1/reviews/:review_id
func (h *Handlers) UpdateReview(c *fiber.Ctx) error {
	id, err := paramUint(c, "review_id")
	if err != nil {
		return err
	}
	var body struct {
		Rating     *int    `json:"rating"`
		Title      *string `json:"title"`
		Comment    *string `json:"comment"`
		IsApproved *bool   `json:"is_approved"`
		IsVerified *bool   `json:"is_verified"`
	}
	if err := c.BodyParser(&body); err != nil {
		return apperrors.Validation("Invalid request body")
	}

	changes := map[string]interface{}{}
	if body.Rating != nil {
		if !validation.IsValidRating(*body.Rating) {
			return apperrors.Unprocessable("rating must be between 1 and 5")
		}
		changes["rating"] = *body.Rating
	}
	if body.Title != nil {
		changes["title"] = *body.Title
	}
	if body.Comment != nil {
		changes["comment"] = *body.Comment
	}
	if body.IsApproved != nil {
		changes["is_approved"] = *body.IsApproved
	}
	if body.IsVerified != nil {
		changes["is_verified"] = *body.IsVerified
	}
	if len(changes) == 0 {
		return apperrors.Validation("No fields to update")
	}

	review, err := h.Service.UpdateReview(c.Context(), id, changes)
	if err != nil {
		return err
	}
	return response.OK(c, review)
}

// DELETE /api/v1/reviews/:review_id
func (h *Handlers) DeleteReview(c *fiber.Ctx) error {
	id, err := paramUint(c, "review_id")
	if err != nil {
		return err
	}
	if err := h.Service.DeleteReview(c.Context(), id); err != nil {
		return err
	}
	return response.NoContent(c)
}

// POST /api/v1/reviews/:review_id/helpful
func (h *Handlers) MarkHelpful(c *fiber.Ctx) error {
	id, err := paramUint(c, "review_id")
	if err != nil {
		return err
	}
	review, err := h.Service.MarkHelpful(c.Context(), id)
	if err != nil {
		return err
	}
	return response.OK(c, review)
}

// GET /api/v1/reviews/product/:product_id/statistics
func (h *Handlers) GetProductStatistics(c *fiber.Ctx) error {
	id, err := paramUint(c, "product_id")
	if err != nil {
		return err
	}
	stats, err := h.Service.GetItemStatistics(c.Context(), cart.KindProduct, id)
	if err != nil {
		return err
	}
	return response.OK(c, stats)
}

// GET /api/v1/reviews/health
func (h *Handlers) Health(c *fiber.Ctx) error {
	total, err := h.Service.Count(c.Context(), nil)
	if err != nil {
		return apperrors.FromDB(err)
	}
	return response.OK(c, fiber.Map{"status": "healthy", "reviews": total})
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

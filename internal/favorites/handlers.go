package favorites

import (
	"strconv"

	"gamehub-backend/internal/cart"
	"gamehub-backend/internal/pkg/apperrors"
	"gamehub-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *Service
}

// GET /api/v1/favorites/user/:user_id
func (h *Handlers) GetUserFavorites(c *fiber.Ctx) error {
	userID, err := paramUint(c, "user_id")
	if err != nil {
		return err
	}
	skip := c.QueryInt("skip", 0)
	limit := c.QueryInt("limit", 100)
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	favorites, err := h.Service.GetUserFavorites(c.Context(), userID, skip, limit)
	if err != nil {
		return err
	}
	return response.OK(c, favorites)
}

// POST /api/v1/favorites - second identical add yields a Conflict.
func (h *Handlers) AddFavorite(c *fiber.Ctx) error {
	var in AddFavoriteInput
	if err := c.BodyParser(&in); err != nil {
		return apperrors.Validation("Invalid request body")
	}
	favorite, err := h.Service.AddFavorite(c.Context(), in)
	if err != nil {
		return err
	}
	return response.Created(c, favorite)
}

// DELETE /api/v1/favorites/:favorite_id
func (h *Handlers) RemoveFavorite(c *fiber.Ctx) error {
	id, err := paramUint(c, "favorite_id")
	if err != nil {
		return err
	}
	if err := h.Service.RemoveFavorite(c.Context(), id); err != nil {
		return err
	}
	return response.NoContent(c)
}

// GET /api/v1/favorites/check/:user_id - item reference via query params.
func (h *Handlers) CheckFavorited(c *fiber.Ctx) error {
	userID, err := paramUint(c, "user_id")
	if err != nil {
		return err
	}
	in := cart.ItemInput{ItemType: c.Query("item_type")}
	if v := c.QueryInt("product_id", 0); v > 0 {
		id := uint(v)
		in.ProductID = &id
	}
	if v := c.QueryInt("listing_id", 0); v > 0 {
		id := uint(v)
		in.ListingID = &id
	}
	if v := c.QueryInt("author_listing_id", 0); v > 0 {
		id := uint(v)
		in.AuthorListingID = &id
	}
	ref, err := cart.ResolveItemRef(in)
	if err != nil {
		return err
	}
	favorited, err := h.Service.IsFavorited(c.Context(), userID, ref)
	if err != nil {
		return err
	}
	return response.OK(c, fiber.Map{"favorited": favorited})
}

// GET /api/v1/favorites/health
func (h *Handlers) Health(c *fiber.Ctx) error {
	total, err := h.Service.Count(c.Context(), nil)
	if err != nil {
		return apperrors.FromDB(err)
	}
	return response.OK(c, fiber.Map{"status": "healthy", "favorites": total})
}

func paramUint(c *fiber.Ctx, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil {
		return 0, apperrors.Validation("Invalid " + name)
	}
	return uint(v), nil
}

package favorites

import (
	"context"
	"errors"

	"gamehub-backend/internal/cart"
	"gamehub-backend/internal/models"
	"gamehub-backend/internal/pkg/apperrors"
	"gamehub-backend/internal/repository"
	"gamehub-backend/internal/service"

	"gorm.io/gorm"
)

// Service manages per-user favorites. Uniqueness of (user, item) is enforced
// by the composite index; the pre-check only exists to produce a friendly
// Conflict before the index would.
type Service struct {
	*service.Service[models.Favorite]
}

func NewService(db *gorm.DB) *Service {
	repo := repository.New[models.Favorite](db, "id", "added_at")
	return &Service{Service: service.New(repo)}
}

type AddFavoriteInput struct {
	cart.ItemInput
	UserID uint `json:"user_id"`
}

func (s *Service) AddFavorite(ctx context.Context, in AddFavoriteInput) (*models.Favorite, error) {
	if in.UserID == 0 {
		return nil, apperrors.Validation("user_id is required")
	}
	ref, err := cart.ResolveItemRef(in.ItemInput)
	if err != nil {
		return nil, err
	}

	exists, err := s.Repo.Exists(ctx, map[string]interface{}{
		"user_id":   in.UserID,
		"item_type": string(ref.Kind),
		"item_id":   ref.ID,
	})
	if err != nil {
		return nil, apperrors.FromDB(err)
	}
	if exists {
		return nil, apperrors.Conflict("Item already favorited")
	}

	favorite := &models.Favorite{
		UserID:   in.UserID,
		ItemType: string(ref.Kind),
		ItemID:   ref.ID,
	}
	if err := s.Create(ctx, favorite); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("Item already favorited")
		}
		return nil, apperrors.FromDB(err)
	}
	return favorite, nil
}

func (s *Service) GetUserFavorites(ctx context.Context, userID uint, skip, limit int) ([]models.Favorite, error) {
	favorites, err := s.FilterBy(ctx, map[string]interface{}{"user_id": userID}, skip, limit)
	if err != nil {
		return nil, apperrors.FromDB(err)
	}
	return favorites, nil
}

// IsFavorited reports whether the user has favorited the referenced item.
func (s *Service) IsFavorited(ctx context.Context, userID uint, ref cart.ItemRef) (bool, error) {
	exists, err := s.Repo.Exists(ctx, map[string]interface{}{
		"user_id":   userID,
		"item_type": string(ref.Kind),
		"item_id":   ref.ID,
	})
	if err != nil {
		return false, apperrors.FromDB(err)
	}
	return exists, nil
}

func (s *Service) RemoveFavorite(ctx context.Context, id uint) error {
	found, err := s.Delete(ctx, id)
	if err != nil {
		return apperrors.FromDB(err)
	}
	if !found {
		return apperrors.NotFound("favorite", id)
	}
	return nil
}

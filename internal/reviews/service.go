package reviews

import (
	"context"
	"errors"
	"math"

	"gamehub-backend/internal/cart"
	"gamehub-backend/internal/models"
	"gamehub-backend/internal/pkg/apperrors"
	"gamehub-backend/internal/pkg/validation"
	"gamehub-backend/internal/repository"
	"gamehub-backend/internal/service"

	"gorm.io/gorm"
)

// Service enforces the review invariants: rating stays inside [1, 5] on
// every write, and a user reviews a given item at most once.
type Service struct {
	*service.Service[models.Review]
}

func NewService(db *gorm.DB) *Service {
	repo := repository.New[models.Review](db, "id", "rating", "created_at", "helpful_count")
	return &Service{Service: service.New(repo)}
}

type CreateReviewInput struct {
	cart.ItemInput
	UserID  uint    `json:"user_id"`
	Rating  int     `json:"rating"`
	Title   *string `json:"title"`
	Comment *string `json:"comment"`
}

func (s *Service) CreateReview(ctx context.Context, in CreateReviewInput) (*models.Review, error) {
	if in.UserID == 0 {
		return nil, apperrors.Validation("user_id is required")
	}
	if !validation.IsValidRating(in.Rating) {
		return nil, apperrors.Unprocessable("rating must be between 1 and 5")
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
		return nil, apperrors.Conflict("User already reviewed this item")
	}

	review := &models.Review{
		UserID:     in.UserID,
		ItemType:   string(ref.Kind),
		ItemID:     ref.ID,
		Rating:     in.Rating,
		Title:      in.Title,
		Comment:    in.Comment,
		IsApproved: true,
	}
	if err := s.Create(ctx, review); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("User already reviewed this item")
		}
		return nil, apperrors.FromDB(err)
	}
	return review, nil
}

func (s *Service) GetReview(ctx context.Context, id uint) (*models.Review, error) {
	review, err := s.Get(ctx, id)
	if err != nil {
		return nil, apperrors.FromDB(err)
	}
	if review == nil {
		return nil, apperrors.NotFound("review", id)
	}
	return review, nil
}

// UpdateReview patches the named fields; a rating change re-runs the range
// check.
func (s *Service) UpdateReview(ctx context.Context, id uint, changes map[string]interface{}) (*models.Review, error) {
	if rating, ok := changes["rating"]; ok {
		r, isInt := toInt(rating)
		if !isInt || !validation.IsValidRating(r) {
			return nil, apperrors.Unprocessable("rating must be between 1 and 5")
		}
		changes["rating"] = r
	}
	review, err := s.Update(ctx, id, changes)
	if err != nil {
		return nil, apperrors.FromDB(err)
	}
	if review == nil {
		return nil, apperrors.NotFound("review", id)
	}
	return review, nil
}

func (s *Service) DeleteReview(ctx context.Context, id uint) error {
	found, err := s.Delete(ctx, id)
	if err != nil {
		return apperrors.FromDB(err)
	}
	if !found {
		return apperrors.NotFound("review", id)
	}
	return nil
}

// ListReviews pages reviews, optionally filtered by item, user and flags.
func (s *Service) ListReviews(ctx context.Context, skip, limit int, filters map[string]interface{}) ([]models.Review, error) {
	reviews, err := s.FilterBy(ctx, filters, skip, limit)
	if err != nil {
		return nil, apperrors.FromDB(err)
	}
	return reviews, nil
}

// MarkHelpful bumps the helpful counter atomically.
func (s *Service) MarkHelpful(ctx context.Context, id uint) (*models.Review, error) {
	if _, err := s.GetReview(ctx, id); err != nil {
		return nil, err
	}
	if err := s.Repo.DB().WithContext(ctx).Model(&models.Review{}).
		Where("id = ?", id).
		UpdateColumn("helpful_count", gorm.Expr("helpful_count + 1")).Error; err != nil {
		return nil, apperrors.FromDB(err)
	}
	return s.GetReview(ctx, id)
}

// ItemStatistics is the per-item review summary: count, average and the
// rating distribution.
type ItemStatistics struct {
	TotalReviews  int64         `json:"total_reviews"`
	AverageRating float64       `json:"average_rating"`
	Distribution  map[int]int64 `json:"distribution"`
}

func (s *Service) GetItemStatistics(ctx context.Context, kind cart.ItemKind, itemID uint) (*ItemStatistics, error) {
	stats := &ItemStatistics{Distribution: map[int]int64{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}}
	db := s.Repo.DB().WithContext(ctx)

	type ratingCount struct {
		Rating int
		N      int64
	}
	var rows []ratingCount
	if err := db.Model(&models.Review{}).
		Where("item_type = ? AND item_id = ? AND is_approved = ?", string(kind), itemID, true).
		Select("rating, COUNT(*) AS n").Group("rating").
		Scan(&rows).Error; err != nil {
		return nil, apperrors.FromDB(err)
	}

	var sum int64
	for _, row := range rows {
		stats.Distribution[row.Rating] = row.N
		stats.TotalReviews += row.N
		sum += int64(row.Rating) * row.N
	}
	if stats.TotalReviews > 0 {
		stats.AverageRating = math.Round(float64(sum)/float64(stats.TotalReviews)*100) / 100
	}
	return stats, nil
}

func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		if n == math.Trunc(n) {
			return int(n), true
		}
	}
	return 0, false
}

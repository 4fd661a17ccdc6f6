package authorlistings

import (
	"context"

	"gamehub-backend/internal/models"
	"gamehub-backend/internal/pkg/apperrors"
	"gamehub-backend/internal/repository"
	"gamehub-backend/internal/service"

	"gorm.io/gorm"
)

var validStatuses = map[string]bool{
	models.ListingStatusActive:   true,
	models.ListingStatusPending:  true,
	models.ListingStatusSold:     true,
	models.ListingStatusReserved: true,
	models.ListingStatusDeleted:  true,
}

// Service handles author (creator-original) listings. Same status lifecycle
// as marketplace listings.
type Service struct {
	*service.Service[models.AuthorListing]
}

func NewService(db *gorm.DB) *Service {
	repo := repository.New[models.AuthorListing](db, "id", "title", "price", "created_at", "updated_at", "views", "likes")
	return &Service{Service: service.New(repo)}
}

type CreateInput struct {
	Title      string  `json:"title"`
	Price      float64 `json:"price"`
	GameTopics string  `json:"game_topics"`
	ImageURL   *string `json:"image_url"`
	UserID     uint    `json:"user_id"`
	Status     string  `json:"status"`
}

func (s *Service) CreateAuthorListing(ctx context.Context, in CreateInput) (*models.AuthorListing, error) {
	if in.Title == "" {
		return nil, apperrors.Validation("title is required")
	}
	if in.Price < 0 {
		return nil, apperrors.Validation("price must not be negative")
	}
	if in.GameTopics == "" {
		return nil, apperrors.Validation("game_topics is required")
	}
	if in.UserID == 0 {
		return nil, apperrors.Validation("user_id is required")
	}
	status := in.Status
	if status == "" {
		status = models.ListingStatusActive
	}
	if !validStatuses[status] {
		return nil, apperrors.Validation("Unknown status: " + status)
	}

	listing := &models.AuthorListing{
		Title:      in.Title,
		Price:      in.Price,
		GameTopics: in.GameTopics,
		ImageURL:   in.ImageURL,
		UserID:     in.UserID,
		Status:     status,
	}
	if err := s.Create(ctx, listing); err != nil {
		return nil, apperrors.FromDB(err)
	}
	return listing, nil
}

func (s *Service) GetAuthorListing(ctx context.Context, id uint) (*models.AuthorListing, error) {
	listing, err := s.Get(ctx, id)
	if err != nil {
		return nil, apperrors.FromDB(err)
	}
	if listing == nil {
		return nil, apperrors.NotFound("author listing", id)
	}
	return listing, nil
}

func (s *Service) ListAuthorListings(ctx context.Context, skip, limit int, status, gameTopics string) ([]models.AuthorListing, error) {
	q := s.Repo.DB().WithContext(ctx).Model(&models.AuthorListing{})
	if status != "" {
		q = q.Where("status = ?", status)
	} else {
		q = q.Where("status <> ?", models.ListingStatusDeleted)
	}
	if gameTopics != "" {
		q = q.Where("game_topics = ?", gameTopics)
	}
	var listings []models.AuthorListing
	if err := q.Order("created_at DESC").Offset(skip).Limit(limit).Find(&listings).Error; err != nil {
		return nil, apperrors.FromDB(err)
	}
	return listings, nil
}

func (s *Service) GetUserAuthorListings(ctx context.Context, userID uint, skip, limit int) ([]models.AuthorListing, error) {
	var listings []models.AuthorListing
	if err := s.Repo.DB().WithContext(ctx).
		Where("user_id = ? AND status <> ?", userID, models.ListingStatusDeleted).
		Order("created_at DESC").Offset(skip).Limit(limit).
		Find(&listings).Error; err != nil {
		return nil, apperrors.FromDB(err)
	}
	return listings, nil
}

func (s *Service) UpdateAuthorListing(ctx context.Context, id uint, changes map[string]interface{}) (*models.AuthorListing, error) {
	if status, ok := changes["status"].(string); ok && !validStatuses[status] {
		return nil, apperrors.Validation("Unknown status: " + status)
	}
	if price, ok := changes["price"].(float64); ok && price < 0 {
		return nil, apperrors.Validation("price must not be negative")
	}
	listing, err := s.Update(ctx, id, changes)
	if err != nil {
		return nil, apperrors.FromDB(err)
	}
	if listing == nil {
		return nil, apperrors.NotFound("author listing", id)
	}
	return listing, nil
}

func (s *Service) SoftDelete(ctx context.Context, id uint) error {
	_, err := s.UpdateAuthorListing(ctx, id, map[string]interface{}{"status": models.ListingStatusDeleted})
	return err
}

func (s *Service) IncrementLikes(ctx context.Context, id uint) (*models.AuthorListing, error) {
	if _, err := s.GetAuthorListing(ctx, id); err != nil {
		return nil, err
	}
	if err := s.Repo.DB().WithContext(ctx).Model(&models.AuthorListing{}).
		Where("id = ?", id).
		UpdateColumn("likes", gorm.Expr("likes + 1")).Error; err != nil {
		return nil, apperrors.FromDB(err)
	}
	return s.GetAuthorListing(ctx, id)
}

func (s *Service) IncrementViews(ctx context.Context, id uint) error {
	if _, err := s.GetAuthorListing(ctx, id); err != nil {
		return err
	}
	if err := s.Repo.DB().WithContext(ctx).Model(&models.AuthorListing{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error; err != nil {
		return apperrors.FromDB(err)
	}
	return nil
}

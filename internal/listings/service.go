package listings

import (
	"context"

	"gamehub-backend/internal/models"
	"gamehub-backend/internal/pkg/apperrors"
	"gamehub-backend/internal/repository"
	"gamehub-backend/internal/service"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var validStatuses = map[string]bool{
	models.ListingStatusActive:   true,
	models.ListingStatusPending:  true,
	models.ListingStatusSold:     true,
	models.ListingStatusReserved: true,
	models.ListingStatusDeleted:  true,
}

// Service handles marketplace listings. Soft delete flips status to
// "deleted"; default queries exclude deleted rows, direct id lookup does not.
type Service struct {
	*service.Service[models.Listing]
}

func NewService(db *gorm.DB) *Service {
	repo := repository.New[models.Listing](db, "id", "title", "price", "created_at", "updated_at", "views", "likes")
	return &Service{Service: service.New(repo)}
}

type CreateListingInput struct {
	Title       string         `json:"title"`
	Description *string        `json:"description"`
	Price       float64        `json:"price"`
	GameTopic   string         `json:"game_topic"`
	Images      datatypes.JSON `json:"images"`
	UserID      uint           `json:"user_id"`
	Status      string         `json:"status"`
}

func (s *Service) CreateListing(ctx context.Context, in CreateListingInput) (*models.Listing, error) {
	if in.Title == "" {
		return nil, apperrors.Validation("title is required")
	}
	if in.Price < 0 {
		return nil, apperrors.Validation("price must not be negative")
	}
	if in.GameTopic == "" {
		return nil, apperrors.Validation("game_topic is required")
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
	images := in.Images
	if images == nil {
		images = datatypes.JSON([]byte("[]"))
	}

	listing := &models.Listing{
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		GameTopic:   in.GameTopic,
		Images:      images,
		UserID:      in.UserID,
		Status:      status,
	}
	if err := s.Create(ctx, listing); err != nil {
		return nil, apperrors.FromDB(err)
	}
	return listing, nil
}

// GetListing returns the listing by id regardless of status.
func (s *Service) GetListing(ctx context.Context, id uint) (*models.Listing, error) {
	listing, err := s.Get(ctx, id)
	if err != nil {
		return nil, apperrors.FromDB(err)
	}
	if listing == nil {
		return nil, apperrors.NotFound("listing", id)
	}
	return listing, nil
}

// ListListings pages listings. Empty status excludes deleted rows; an
// explicit status (including "deleted") filters to exactly that status.
func (s *Service) ListListings(ctx context.Context, skip, limit int, status, gameTopic string) ([]models.Listing, error) {
	q := s.Repo.DB().WithContext(ctx).Model(&models.Listing{})
	if status != "" {
		q = q.Where("status = ?", status)
	} else {
		q = q.Where("status <> ?", models.ListingStatusDeleted)
	}
	if gameTopic != "" {
		q = q.Where("game_topic = ?", gameTopic)
	}
	var listings []models.Listing
	if err := q.Order("created_at DESC").Offset(skip).Limit(limit).Find(&listings).Error; err != nil {
		return nil, apperrors.FromDB(err)
	}
	return listings, nil
}

// GetUserListings returns a user's non-deleted listings.
func (s *Service) GetUserListings(ctx context.Context, userID uint, skip, limit int) ([]models.Listing, error) {
	var listings []models.Listing
	if err := s.Repo.DB().WithContext(ctx).
		Where("user_id = ? AND status <> ?", userID, models.ListingStatusDeleted).
		Order("created_at DESC").Offset(skip).Limit(limit).
		Find(&listings).Error; err != nil {
		return nil, apperrors.FromDB(err)
	}
	return listings, nil
}

// GetFeatured returns active featured listings.
func (s *Service) GetFeatured(ctx context.Context, limit int) ([]models.Listing, error) {
	var listings []models.Listing
	if err := s.Repo.DB().WithContext(ctx).
		Where("is_featured = ? AND status = ?", true, models.ListingStatusActive).
		Order("updated_at DESC").Limit(limit).
		Find(&listings).Error; err != nil {
		return nil, apperrors.FromDB(err)
	}
	return listings, nil
}

// GetRecent returns the newest active listings.
func (s *Service) GetRecent(ctx context.Context, limit int) ([]models.Listing, error) {
	var listings []models.Listing
	if err := s.Repo.DB().WithContext(ctx).
		Where("status = ?", models.ListingStatusActive).
		Order("created_at DESC").Limit(limit).
		Find(&listings).Error; err != nil {
		return nil, apperrors.FromDB(err)
	}
	return listings, nil
}

// UpdateListing patches the named fields after validating status and price.
func (s *Service) UpdateListing(ctx context.Context, id uint, changes map[string]interface{}) (*models.Listing, error) {
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
		return nil, apperrors.NotFound("listing", id)
	}
	return listing, nil
}

// SoftDelete marks the listing deleted; the row remains addressable by id.
func (s *Service) SoftDelete(ctx context.Context, id uint) error {
	_, err := s.UpdateListing(ctx, id, map[string]interface{}{"status": models.ListingStatusDeleted})
	return err
}

// ToggleFeatured flips the is_featured flag.
func (s *Service) ToggleFeatured(ctx context.Context, id uint) (*models.Listing, error) {
	listing, err := s.GetListing(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.UpdateListing(ctx, id, map[string]interface{}{"is_featured": !listing.IsFeatured})
}

// IncrementViews bumps the view counter atomically.
func (s *Service) IncrementViews(ctx context.Context, id uint) error {
	if _, err := s.GetListing(ctx, id); err != nil {
		return err
	}
	if err := s.Repo.DB().WithContext(ctx).Model(&models.Listing{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error; err != nil {
		return apperrors.FromDB(err)
	}
	return nil
}

// IncrementLikes bumps the like counter atomically.
func (s *Service) IncrementLikes(ctx context.Context, id uint) (*models.Listing, error) {
	if _, err := s.GetListing(ctx, id); err != nil {
		return nil, err
	}
	if err := s.Repo.DB().WithContext(ctx).Model(&models.Listing{}).
		Where("id = ?", id).
		UpdateColumn("likes", gorm.Expr("likes + 1")).Error; err != nil {
		return nil, apperrors.FromDB(err)
	}
	return s.GetListing(ctx, id)
}

// TopicCount is one game topic with the number of non-deleted listings in it.
type TopicCount struct {
	GameTopic string `json:"game_topic"`
	Count     int64  `json:"count"`
}

func (s *Service) GetTopics(ctx context.Context) ([]TopicCount, error) {
	var topics []TopicCount
	if err := s.Repo.DB().WithContext(ctx).Model(&models.Listing{}).
		Where("status <> ?", models.ListingStatusDeleted).
		Select("game_topic, COUNT(*) AS count").Group("game_topic").
		Order("count DESC").
		Scan(&topics).Error; err != nil {
		return nil, apperrors.FromDB(err)
	}
	return topics, nil
}

// Statistics summarizes listings: counts by status and topic, overall count
// and average price of active listings.
type Statistics struct {
	Total        int64            `json:"total"`
	ByStatus     map[string]int64 `json:"by_status"`
	ByTopic      map[string]int64 `json:"by_topic"`
	AveragePrice float64          `json:"average_price"`
}

func (s *Service) GetStatistics(ctx context.Context) (*Statistics, error) {
	stats := &Statistics{ByStatus: map[string]int64{}, ByTopic: map[string]int64{}}
	db := s.Repo.DB().WithContext(ctx)

	if err := db.Model(&models.Listing{}).Count(&stats.Total).Error; err != nil {
		return nil, apperrors.FromDB(err)
	}

	type statusCount struct {
		Status string
		N      int64
	}
	var rows []statusCount
	if err := db.Model(&models.Listing{}).
		Select("status, COUNT(*) AS n").Group("status").
		Scan(&rows).Error; err != nil {
		return nil, apperrors.FromDB(err)
	}
	for _, row := range rows {
		stats.ByStatus[row.Status] = row.N
	}

	topics, err := s.GetTopics(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range topics {
		stats.ByTopic[t.GameTopic] = t.Count
	}

	var avg *float64
	if err := db.Model(&models.Listing{}).
		Where("status = ?", models.ListingStatusActive).
		Select("AVG(price)").Scan(&avg).Error; err != nil {
		return nil, apperrors.FromDB(err)
	}
	if avg != nil {
		stats.AveragePrice = *avg
	}
	return stats, nil
}

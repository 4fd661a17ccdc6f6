package catalog

import (
	"context"

	"gamehub-backend/internal/models"
	"gamehub-backend/internal/pkg/apperrors"
	"gamehub-backend/internal/repository"
	"gamehub-backend/internal/service"

	"gorm.io/gorm"
)

// Service wraps the generic service with product-specific queries and the
// is_active soft delete.
type Service struct {
	*service.Service[models.Product]
}

func NewService(db *gorm.DB) *Service {
	repo := repository.New[models.Product](db, "id", "title", "price", "category", "popularity")
	return &Service{Service: service.New(repo)}
}

// CreateProductInput carries the admin create payload.
type CreateProductInput struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	ImageURL    *string `json:"image_url"`
}

func (s *Service) CreateProduct(ctx context.Context, in CreateProductInput) (*models.Product, error) {
	if in.Title == "" {
		return nil, apperrors.Validation("title is required")
	}
	if in.Price < 0 {
		return nil, apperrors.Validation("price must not be negative")
	}
	if in.Category == "" {
		return nil, apperrors.Validation("category is required")
	}
	product := &models.Product{
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		ImageURL:    in.ImageURL,
		IsActive:    true,
	}
	if err := s.Create(ctx, product); err != nil {
		return nil, apperrors.FromDB(err)
	}
	return product, nil
}

// GetProduct returns the product or a typed not-found error. Inactive rows
// stay addressable by id.
func (s *Service) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, apperrors.FromDB(err)
	}
	if product == nil {
		return nil, apperrors.NotFound("product", id)
	}
	return product, nil
}

// ListProducts pages active products, optionally filtered by category.
func (s *Service) ListProducts(ctx context.Context, skip, limit int, orderBy string, descending bool, category string, activeOnly bool) ([]models.Product, error) {
	q := s.Repo.DB().WithContext(ctx).Model(&models.Product{})
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	if category != "" {
		q = q.Where("category = ?", category)
	}
	switch orderBy {
	case "price", "title", "popularity", "category", "id":
		if descending {
			q = q.Order(orderBy + " DESC")
		} else {
			q = q.Order(orderBy)
		}
	}
	var products []models.Product
	if err := q.Offset(skip).Limit(limit).Find(&products).Error; err != nil {
		return nil, apperrors.FromDB(err)
	}
	return products, nil
}

// GetByCategory returns active products of one category.
func (s *Service) GetByCategory(ctx context.Context, category string, skip, limit int) ([]models.Product, error) {
	products, err := s.FilterBy(ctx, map[string]interface{}{"category": category, "is_active": true}, skip, limit)
	if err != nil {
		return nil, apperrors.FromDB(err)
	}
	return products, nil
}

// UpdateProduct patches the named fields only.
func (s *Service) UpdateProduct(ctx context.Context, id uint, changes map[string]interface{}) (*models.Product, error) {
	if price, ok := changes["price"].(float64); ok && price < 0 {
		return nil, apperrors.Validation("price must not be negative")
	}
	product, err := s.Update(ctx, id, changes)
	if err != nil {
		return nil, apperrors.FromDB(err)
	}
	if product == nil {
		return nil, apperrors.NotFound("product", id)
	}
	return product, nil
}

// Deactivate is the soft delete: is_active flips to false, the row stays.
func (s *Service) Deactivate(ctx context.Context, id uint) error {
	_, err := s.UpdateProduct(ctx, id, map[string]interface{}{"is_active": false})
	return err
}

// IncrementPopularity bumps the popularity counter atomically.
func (s *Service) IncrementPopularity(ctx context.Context, id uint) (*models.Product, error) {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return nil, err
	}
	if err := s.Repo.DB().WithContext(ctx).Model(&models.Product{}).
		Where("id = ?", id).
		UpdateColumn("popularity", gorm.Expr("popularity + 1")).Error; err != nil {
		return nil, apperrors.FromDB(err)
	}
	return s.GetProduct(ctx, id)
}

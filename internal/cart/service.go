package cart

import (
	"context"
	"errors"
	"math"
	"time"

	"gamehub-backend/internal/models"
	"gamehub-backend/internal/pkg/apperrors"
	"gamehub-backend/internal/repository"

	"gorm.io/gorm"
)

// Service owns cart state transitions: get-or-create, add-with-merge,
// quantity updates, clearing, totals and the guest merge.
type Service struct {
	DB    *gorm.DB
	Carts *repository.Repository[models.Cart]
	Items *repository.Repository[models.CartItem]
}

func NewService(db *gorm.DB) *Service {
	return &Service{
		DB:    db,
		Carts: repository.New[models.Cart](db, "created_at", "updated_at"),
		Items: repository.New[models.CartItem](db, "created_at", "price", "quantity"),
	}
}

// Summary aggregates the current lines of a cart. TotalPrice sums the stored
// add-time prices; later catalog price changes do not move it.
type Summary struct {
	TotalItems    int     `json:"total_items"`
	TotalQuantity int     `json:"total_quantity"`
	TotalPrice    float64 `json:"total_price"`
}

// GetOrCreateUserCart looks up the user's cart, creating one if absent.
// A concurrent first-time create loses against the unique index on user_id
// and falls back to the winner's row.
func (s *Service) GetOrCreateUserCart(ctx context.Context, userID uint) (*models.Cart, error) {
	cart, err := s.Carts.GetOneBy(ctx, map[string]interface{}{"user_id": userID})
	if err != nil {
		return nil, apperrors.FromDB(err)
	}
	if cart != nil {
		return cart, nil
	}

	cart = &models.Cart{UserID: userID}
	if err := s.Carts.Create(ctx, cart); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			cart, err = s.Carts.GetOneBy(ctx, map[string]interface{}{"user_id": userID})
			if err != nil {
				return nil, apperrors.FromDB(err)
			}
			return cart, nil
		}
		return nil, apperrors.FromDB(err)
	}
	return cart, nil
}

// GetCart returns the cart by id or a typed not-found error.
func (s *Service) GetCart(ctx context.Context, cartID uint) (*models.Cart, error) {
	cart, err := s.Carts.Get(ctx, cartID)
	if err != nil {
		return nil, apperrors.FromDB(err)
	}
	if cart == nil {
		return nil, apperrors.NotFound("cart", cartID)
	}
	return cart, nil
}

// GetItems returns the lines of a cart.
func (s *Service) GetItems(ctx context.Context, cartID uint, skip, limit int) ([]models.CartItem, error) {
	if _, err := s.GetCart(ctx, cartID); err != nil {
		return nil, err
	}
	items, err := s.Items.FilterBy(ctx, map[string]interface{}{"cart_id": cartID}, skip, limit)
	if err != nil {
		return nil, apperrors.FromDB(err)
	}
	return items, nil
}

// GetGuestItems returns the anonymous lines tagged with a cart session id.
func (s *Service) GetGuestItems(ctx context.Context, sessionID string) ([]models.CartItem, error) {
	if sessionID == "" {
		return []models.CartItem{}, nil
	}
	items, err := s.Items.FilterBy(ctx, map[string]interface{}{"cart_session_id": sessionID}, 0, 0)
	if err != nil {
		return nil, apperrors.FromDB(err)
	}
	return items, nil
}

// AddItem adds a line to a cart, merging into an existing line of the same
// (kind, id): quantity accumulates and the stored price takes the incoming
// value (last write wins). A duplicated-key error from a concurrent insert
// is retried as an increment.
func (s *Service) AddItem(ctx context.Context, cartID uint, in ItemInput) (*models.CartItem, error) {
	if _, err := s.GetCart(ctx, cartID); err != nil {
		return nil, err
	}
	ref, err := ResolveItemRef(in)
	if err != nil {
		return nil, err
	}
	qty := in.Quantity
	if qty <= 0 {
		qty = 1
	}

	line, err := s.mergeOrInsert(ctx, map[string]interface{}{
		"cart_id":   cartID,
		"item_type": string(ref.Kind),
		"item_id":   ref.ID,
	}, &models.CartItem{
		CartID:   &cartID,
		ItemType: string(ref.Kind),
		ItemID:   ref.ID,
		Quantity: qty,
		Price:    in.Price,
	}, qty, in.Price)
	if err != nil {
		return nil, err
	}

	if err := s.touchCart(ctx, cartID); err != nil {
		return nil, err
	}
	return line, nil
}

// AddGuestItem is AddItem for an anonymous session: lines carry the session
// id and no cart.
func (s *Service) AddGuestItem(ctx context.Context, sessionID string, in ItemInput) (*models.CartItem, error) {
	if sessionID == "" {
		return nil, apperrors.Validation("cart_session_id is required")
	}
	ref, err := ResolveItemRef(in)
	if err != nil {
		return nil, err
	}
	qty := in.Quantity
	if qty <= 0 {
		qty = 1
	}

	return s.mergeOrInsert(ctx, map[string]interface{}{
		"cart_session_id": sessionID,
		"item_type":       string(ref.Kind),
		"item_id":         ref.ID,
	}, &models.CartItem{
		CartSessionID: &sessionID,
		ItemType:      string(ref.Kind),
		ItemID:        ref.ID,
		Quantity:      qty,
		Price:         in.Price,
	}, qty, in.Price)
}

func (s *Service) mergeOrInsert(ctx context.Context, match map[string]interface{}, fresh *models.CartItem, qty int, price float64) (*models.CartItem, error) {
	existing, err := s.Items.GetOneBy(ctx, match)
	if err != nil {
		return nil, apperrors.FromDB(err)
	}
	if existing != nil {
		updated, err := s.Items.Update(ctx, existing.ID, map[string]interface{}{
			"quantity": existing.Quantity + qty,
			"price":    price,
		})
		if err != nil {
			return nil, apperrors.FromDB(err)
		}
		return updated, nil
	}

	if err := s.Items.Create(ctx, fresh); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a race against a concurrent insert of the same line.
			existing, err = s.Items.GetOneBy(ctx, match)
			if err != nil || existing == nil {
				return nil, apperrors.FromDB(err)
			}
			updated, err := s.Items.Update(ctx, existing.ID, map[string]interface{}{
				"quantity": existing.Quantity + qty,
				"price":    price,
			})
			if err != nil {
				return nil, apperrors.FromDB(err)
			}
			return updated, nil
		}
		return nil, apperrors.FromDB(err)
	}
	return fresh, nil
}

// UpdateQuantity sets a line's quantity. Zero or negative deletes the line
// and returns nil with no error.
func (s *Service) UpdateQuantity(ctx context.Context, itemID uint, quantity int) (*models.CartItem, error) {
	item, err := s.Items.Get(ctx, itemID)
	if err != nil {
		return nil, apperrors.FromDB(err)
	}
	if item == nil {
		return nil, apperrors.NotFound("cart item", itemID)
	}

	if quantity <= 0 {
		if _, err := s.Items.Delete(ctx, itemID); err != nil {
			return nil, apperrors.FromDB(err)
		}
		return nil, nil
	}

	updated, err := s.Items.Update(ctx, itemID, map[string]interface{}{"quantity": quantity})
	if err != nil {
		return nil, apperrors.FromDB(err)
	}
	return updated, nil
}

// RemoveItem deletes one line by its own id.
func (s *Service) RemoveItem(ctx context.Context, itemID uint) error {
	found, err := s.Items.Delete(ctx, itemID)
	if err != nil {
		return apperrors.FromDB(err)
	}
	if !found {
		return apperrors.NotFound("cart item", itemID)
	}
	return nil
}

// ClearCart deletes every line of a cart and touches updated_at.
func (s *Service) ClearCart(ctx context.Context, cartID uint) error {
	if _, err := s.GetCart(ctx, cartID); err != nil {
		return err
	}
	if err := s.DB.WithContext(ctx).Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error; err != nil {
		return apperrors.FromDB(err)
	}
	return s.touchCart(ctx, cartID)
}

// GetSummary computes line count, total quantity and total price from the
// stored add-time prices.
func (s *Service) GetSummary(ctx context.Context, cartID uint) (*Summary, error) {
	items, err := s.GetItems(ctx, cartID, 0, 0)
	if err != nil {
		return nil, err
	}
	sum := &Summary{TotalItems: len(items)}
	for _, item := range items {
		sum.TotalQuantity += item.Quantity
		sum.TotalPrice += item.Price * float64(item.Quantity)
	}
	sum.TotalPrice = math.Round(sum.TotalPrice*100) / 100
	return sum, nil
}

// MergeGuestCart folds an anonymous session's lines into the user's cart.
// Matching (kind, id) lines sum quantities and the guest line is discarded;
// unmatched guest lines are re-owned in place. Returns the merged count.
func (s *Service) MergeGuestCart(ctx context.Context, userID uint, sessionID string) (int, error) {
	if sessionID == "" {
		return 0, apperrors.Validation("cart_session_id is required")
	}
	guestItems, err := s.GetGuestItems(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	if len(guestItems) == 0 {
		return 0, nil
	}

	cart, err := s.GetOrCreateUserCart(ctx, userID)
	if err != nil {
		return 0, err
	}

	merged := 0
	for _, guest := range guestItems {
		existing, err := s.Items.GetOneBy(ctx, map[string]interface{}{
			"cart_id":   cart.ID,
			"item_type": guest.ItemType,
			"item_id":   guest.ItemID,
		})
		if err != nil {
			return merged, apperrors.FromDB(err)
		}
		if existing != nil {
			if _, err := s.Items.Update(ctx, existing.ID, map[string]interface{}{
				"quantity": existing.Quantity + guest.Quantity,
			}); err != nil {
				return merged, apperrors.FromDB(err)
			}
			if _, err := s.Items.Delete(ctx, guest.ID); err != nil {
				return merged, apperrors.FromDB(err)
			}
		} else {
			if _, err := s.Items.Update(ctx, guest.ID, map[string]interface{}{
				"cart_id":         cart.ID,
				"cart_session_id": nil,
			}); err != nil {
				return merged, apperrors.FromDB(err)
			}
		}
		merged++
	}

	if err := s.touchCart(ctx, cart.ID); err != nil {
		return merged, err
	}
	return merged, nil
}

func (s *Service) touchCart(ctx context.Context, cartID uint) error {
	if _, err := s.Carts.Update(ctx, cartID, map[string]interface{}{"updated_at": time.Now().UTC()}); err != nil {
		return apperrors.FromDB(err)
	}
	return nil
}

package orders

import (
	"context"
	"math"

	"gamehub-backend/internal/cart"
	"gamehub-backend/internal/models"
	"gamehub-backend/internal/pkg/apperrors"
	"gamehub-backend/internal/pkg/validation"
	"gamehub-backend/internal/repository"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var validOrderStatuses = map[string]bool{
	models.OrderStatusPending:   true,
	models.OrderStatusPaid:      true,
	models.OrderStatusShipped:   true,
	models.OrderStatusCancelled: true,
}

// Service creates checkout snapshots and walks order status transitions.
// Order rows are never hard-deleted: cancel is a status flip.
type Service struct {
	DB     *gorm.DB
	Orders *repository.Repository[models.Order]
	Items  *repository.Repository[models.OrderItem]
}

func NewService(db *gorm.DB) *Service {
	return &Service{
		DB:     db,
		Orders: repository.New[models.Order](db, "id", "created_at", "total_amount", "status"),
		Items:  repository.New[models.OrderItem](db, "id"),
	}
}

// OrderItemInput is one line of a checkout. The content reference uses the
// same polymorphic shape as cart items.
type OrderItemInput struct {
	cart.ItemInput
}

type CreateOrderInput struct {
	UserID        uint             `json:"user_id"`
	CustomerName  string           `json:"customer_name"`
	CustomerEmail string           `json:"customer_email"`
	PaymentMethod string           `json:"payment_method"`
	PaymentData   datatypes.JSON   `json:"payment_data"`
	Items         []OrderItemInput `json:"items"`
}

// CreateOrder snapshots the referenced content into denormalized order items
// inside one transaction. Names, prices and images are copied at purchase
// time so later catalog changes leave the order untouched.
func (s *Service) CreateOrder(ctx context.Context, in CreateOrderInput) (*models.Order, []models.OrderItem, error) {
	if in.UserID == 0 {
		return nil, nil, apperrors.Validation("user_id is required")
	}
	if in.CustomerName == "" {
		return nil, nil, apperrors.Validation("customer_name is required")
	}
	if !validation.IsValidEmail(in.CustomerEmail) {
		return nil, nil, apperrors.Validation("Invalid customer_email")
	}
	if in.PaymentMethod == "" {
		return nil, nil, apperrors.Validation("payment_method is required")
	}
	if len(in.Items) == 0 {
		return nil, nil, apperrors.Validation("Order must contain at least one item")
	}

	order := &models.Order{
		UserID:        in.UserID,
		Status:        models.OrderStatusPending,
		CustomerName:  in.CustomerName,
		CustomerEmail: in.CustomerEmail,
		PaymentMethod: in.PaymentMethod,
		PaymentStatus: "unpaid",
		PaymentData:   in.PaymentData,
	}
	var orderItems []models.OrderItem

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		total := 0.0
		var lines []models.OrderItem

		for _, itemIn := range in.Items {
			ref, err := cart.ResolveItemRef(itemIn.ItemInput)
			if err != nil {
				return err
			}
			qty := itemIn.Quantity
			if qty <= 0 {
				qty = 1
			}

			name, price, image, err := snapshotContent(tx, ref)
			if err != nil {
				return err
			}
			if itemIn.Price > 0 {
				price = itemIn.Price
			}
			subtotal := math.Round(price*float64(qty)*100) / 100

			lines = append(lines, models.OrderItem{
				ItemType:  string(ref.Kind),
				ItemID:    ref.ID,
				Name:      name,
				UnitPrice: price,
				ImageURL:  image,
				Quantity:  qty,
				Subtotal:  subtotal,
			})
			total += subtotal
		}

		order.TotalAmount = math.Round(total*100) / 100
		if err := tx.Create(order).Error; err != nil {
			return apperrors.FromDB(err)
		}
		for i := range lines {
			lines[i].OrderID = order.ID
		}
		if err := tx.Create(&lines).Error; err != nil {
			return apperrors.FromDB(err)
		}
		orderItems = lines
		return nil
	})
	if err != nil {
		if appErr, ok := apperrors.As(err); ok {
			return nil, nil, appErr
		}
		return nil, nil, apperrors.FromDB(err)
	}
	return order, orderItems, nil
}

// snapshotContent reads the live content row the line references.
func snapshotContent(tx *gorm.DB, ref cart.ItemRef) (string, float64, *string, error) {
	switch ref.Kind {
	case cart.KindProduct:
		var p models.Product
		if err := tx.First(&p, ref.ID).Error; err != nil {
			return "", 0, nil, apperrors.NotFound("product", ref.ID)
		}
		return p.Title, p.Price, p.ImageURL, nil
	case cart.KindListing:
		var l models.Listing
		if err := tx.First(&l, ref.ID).Error; err != nil {
			return "", 0, nil, apperrors.NotFound("listing", ref.ID)
		}
		return l.Title, l.Price, nil, nil
	case cart.KindAuthorListing:
		var a models.AuthorListing
		if err := tx.First(&a, ref.ID).Error; err != nil {
			return "", 0, nil, apperrors.NotFound("author listing", ref.ID)
		}
		return a.Title, a.Price, a.ImageURL, nil
	}
	return "", 0, nil, apperrors.Validation("Unknown item kind")
}

func (s *Service) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	order, err := s.Orders.Get(ctx, id)
	if err != nil {
		return nil, apperrors.FromDB(err)
	}
	if order == nil {
		return nil, apperrors.NotFound("order", id)
	}
	return order, nil
}

func (s *Service) ListOrders(ctx context.Context, skip, limit int, status string) ([]models.Order, error) {
	filters := map[string]interface{}{}
	if status != "" {
		if !validOrderStatuses[status] {
			return nil, apperrors.Validation("Unknown status: " + status)
		}
		filters["status"] = status
	}
	orders, err := s.Orders.FilterBy(ctx, filters, skip, limit)
	if err != nil {
		return nil, apperrors.FromDB(err)
	}
	return orders, nil
}

func (s *Service) GetUserOrders(ctx context.Context, userID uint, skip, limit int) ([]models.Order, error) {
	orders, err := s.Orders.FilterBy(ctx, map[string]interface{}{"user_id": userID}, skip, limit)
	if err != nil {
		return nil, apperrors.FromDB(err)
	}
	return orders, nil
}

func (s *Service) GetOrderItems(ctx context.Context, orderID uint) ([]models.OrderItem, error) {
	if _, err := s.GetOrder(ctx, orderID); err != nil {
		return nil, err
	}
	items, err := s.Items.FilterBy(ctx, map[string]interface{}{"order_id": orderID}, 0, 0)
	if err != nil {
		return nil, apperrors.FromDB(err)
	}
	return items, nil
}

// UpdateStatus moves the order to a new status; payment_status may ride along.
func (s *Service) UpdateStatus(ctx context.Context, id uint, status, paymentStatus string) (*models.Order, error) {
	if !validOrderStatuses[status] {
		return nil, apperrors.Validation("Unknown status: " + status)
	}
	if _, err := s.GetOrder(ctx, id); err != nil {
		return nil, err
	}
	changes := map[string]interface{}{"status": status}
	if paymentStatus != "" {
		changes["payment_status"] = paymentStatus
	}
	order, err := s.Orders.Update(ctx, id, changes)
	if err != nil {
		return nil, apperrors.FromDB(err)
	}
	return order, nil
}

// CancelOrder flips the status to cancelled. Shipped orders refuse; the row
// is never deleted.
func (s *Service) CancelOrder(ctx context.Context, id uint) error {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return err
	}
	if order.Status == models.OrderStatusShipped {
		return apperrors.Validation("Shipped orders cannot be cancelled")
	}
	if order.Status == models.OrderStatusCancelled {
		return nil
	}
	if _, err := s.Orders.Update(ctx, id, map[string]interface{}{"status": models.OrderStatusCancelled}); err != nil {
		return apperrors.FromDB(err)
	}
	return nil
}

// Statistics summarizes orders: counts by status and revenue over
// non-cancelled orders.
type Statistics struct {
	TotalOrders  int64            `json:"total_orders"`
	ByStatus     map[string]int64 `json:"by_status"`
	TotalRevenue float64          `json:"total_revenue"`
}

func (s *Service) GetStatistics(ctx context.Context) (*Statistics, error) {
	stats := &Statistics{ByStatus: map[string]int64{}}
	db := s.DB.WithContext(ctx)

	if err := db.Model(&models.Order{}).Count(&stats.TotalOrders).Error; err != nil {
		return nil, apperrors.FromDB(err)
	}

	type statusCount struct {
		Status string
		N      int64
	}
	var rows []statusCount
	if err := db.Model(&models.Order{}).
		Select("status, COUNT(*) AS n").Group("status").
		Scan(&rows).Error; err != nil {
		return nil, apperrors.FromDB(err)
	}
	for _, row := range rows {
		stats.ByStatus[row.Status] = row.N
	}

	var revenue *float64
	if err := db.Model(&models.Order{}).
		Where("status <> ?", models.OrderStatusCancelled).
		Select("SUM(total_amount)").Scan(&revenue).Error; err != nil {
		return nil, apperrors.FromDB(err)
	}
	if revenue != nil {
		stats.TotalRevenue = *revenue
	}
	return stats, nil
}

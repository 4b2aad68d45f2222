package repository

import (
	"context"
	"local_delivery/internal/models"
	"time"

	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id uint) (*models.Order, error)
	GetByUserID(ctx context.Context, userID uint) ([]models.Order, error)
	GetByRestaurantID(ctx context.Context, restaurantID uint) ([]models.Order, error)
	UpdateStatus(ctx context.Context, change StatusChange) error
	GetHistory(ctx context.Context, orderID uint) ([]models.OrderStatusHistory, error)
}

// StatusChange is a compare-and-swap on an order's status. It only applies
// when the stored order still has FromStatus and FromVersion.
type StatusChange struct {
	OrderID            uint
	FromStatus         models.OrderStatus
	FromVersion        int
	ToStatus           models.OrderStatus
	CancelledBy        *models.CancelledBy
	CancellationReason *string
	ChangedBy          uint
	Note               string
	At                 time.Time
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Create inserts the order, its items and the first history row in one transaction.
func (r *orderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		return tx.Create(&models.OrderStatusHistory{
			OrderID:   order.ID,
			ToStatus:  order.Status,
			ChangedBy: order.UserID,
			Note:      "order placed",
			CreatedAt: order.OrderDate,
		}).Error
	})
}

func (r *orderRepository) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Preload("Items").First(&order, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (r *orderRepository) GetByUserID(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).Preload("Items").
		Where("user_id = ?", userID).
		Order("order_date DESC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) GetByRestaurantID(ctx context.Context, restaurantID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).Preload("Items").
		Where("restaurant_id = ?", restaurantID).
		Order("order_date DESC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) UpdateStatus(ctx context.Context, change StatusChange) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"status":            string(change.ToStatus),
			"status_updated_at": change.At,
			"version":           gorm.Expr("version + 1"),
		}
		if change.CancelledBy != nil {
			updates["cancelled_by"] = string(*change.CancelledBy)
		}
		if change.CancellationReason != nil {
			updates["cancellation_reason"] = *change.CancellationReason
		}

		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ? AND version = ?", change.OrderID, string(change.FromStatus), change.FromVersion).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStaleOrder
		}

		return tx.Create(&models.OrderStatusHistory{
			OrderID:    change.OrderID,
			FromStatus: change.FromStatus,
			ToStatus:   change.ToStatus,
			ChangedBy:  change.ChangedBy,
			Note:       change.Note,
			CreatedAt:  change.At,
		}).Error
	})
}

func (r *orderRepository) GetHistory(ctx context.Context, orderID uint) ([]models.OrderStatusHistory, error) {
	var history []models.OrderStatusHistory
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC, id ASC").
		Find(&history).Error
	return history, err
}

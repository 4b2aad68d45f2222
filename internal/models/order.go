package models

import (
	"time"
)

type Order struct {
	ID                 uint         `json:"id" gorm:"primaryKey"`
	OrderNumber        string       `json:"order_number" gorm:"uniqueIndex;not null"`
	UserID             uint         `json:"user_id" gorm:"not null;index:idx_orders_user_date,priority:1"`
	RestaurantID       uint         `json:"restaurant_id" gorm:"not null;index:idx_orders_restaurant_date,priority:1"`
	Items              []OrderItem  `json:"items" gorm:"foreignKey:OrderID"`
	Subtotal           float64      `json:"subtotal" gorm:"not null"`
	Taxes              float64      `json:"taxes" gorm:"not null"`
	DeliveryFee        float64      `json:"delivery_fee" gorm:"not null"`
	Total              float64      `json:"total" gorm:"not null"`
	DeliveryAddress    *string      `json:"delivery_address"`
	Status             OrderStatus  `json:"status" gorm:"type:varchar(32);not null;default:'PLACED';index"`
	CancellationReason *string      `json:"cancellation_reason,omitempty"`
	CancelledBy        *CancelledBy `json:"cancelled_by,omitempty" gorm:"type:varchar(16)"`
	OrderDate          time.Time    `json:"order_date" gorm:"not null;index:idx_orders_user_date,priority:2,sort:desc;index:idx_orders_restaurant_date,priority:2,sort:desc"`
	StatusUpdatedAt    time.Time    `json:"status_updated_at" gorm:"not null"`
	Version            int          `json:"version" gorm:"not null;default:1"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

type OrderStatus string

const (
	OrderPlaced         OrderStatus = "PLACED"
	OrderConfirmed      OrderStatus = "CONFIRMED"
	OrderPreparing      OrderStatus = "PREPARING"
	OrderOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	OrderDelivered      OrderStatus = "DELIVERED"
	OrderCancelled      OrderStatus = "CANCELLED"
)

type CancelledBy string

const (
	CancelledByUser       CancelledBy = "USER"
	CancelledByRestaurant CancelledBy = "RESTAURANT"
)

// DefaultRestaurantCancelReason is stored when a restaurant cancels without a reason.
const DefaultRestaurantCancelReason = "Cancelled by restaurant"

// fulfilment chain, in order
var orderChain = []OrderStatus{
	OrderPlaced,
	OrderConfirmed,
	OrderPreparing,
	OrderOutForDelivery,
	OrderDelivered,
}

// AllOrderStatuses lists every valid status value.
func AllOrderStatuses() []OrderStatus {
	all := make([]OrderStatus, 0, len(orderChain)+1)
	all = append(all, orderChain...)
	return append(all, OrderCancelled)
}

func (s OrderStatus) Valid() bool {
	if s == OrderCancelled {
		return true
	}
	for _, st := range orderChain {
		if st == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is allowed.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

// Cancellable reports whether the order may still be cancelled by either side.
func (s OrderStatus) Cancellable() bool {
	return s == OrderPlaced || s == OrderConfirmed
}

// Next returns the successor on the fulfilment chain. ok is false for
// terminal and unknown statuses.
func (s OrderStatus) Next() (OrderStatus, bool) {
	for i, st := range orderChain {
		if st == s && i+1 < len(orderChain) {
			return orderChain[i+1], true
		}
	}
	return "", false
}

// CanAdvanceTo reports whether target is a legal single-step transition from s.
// Cancellation counts as a legal step from a cancellable status.
func (s OrderStatus) CanAdvanceTo(target OrderStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if target == OrderCancelled {
		return s.Cancellable()
	}
	next, ok := s.Next()
	return ok && next == target
}

// OrderStatusHistory is the audit trail of status transitions.
type OrderStatusHistory struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	OrderID    uint        `json:"order_id" gorm:"not null;index"`
	FromStatus OrderStatus `json:"from_status" gorm:"type:varchar(32)"`
	ToStatus   OrderStatus `json:"to_status" gorm:"type:varchar(32);not null"`
	ChangedBy  uint        `json:"changed_by"`
	Note       string      `json:"note"`
	CreatedAt  time.Time   `json:"created_at"`
}

func (OrderStatusHistory) TableName() string {
	return "order_status_history"
}

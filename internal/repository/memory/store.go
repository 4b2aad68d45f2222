// Package memory holds map-backed implementations of the repository
// interfaces. They keep the same semantics as the gorm repositories,
// including the compare-and-swap on order status.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"local_delivery/internal/models"
	"local_delivery/internal/repository"
)

type Store struct {
	mu          sync.RWMutex
	users       map[uint]models.User
	restaurants map[uint]models.Restaurant
	menu        map[uint]models.MenuItem
	orders      map[uint]models.Order
	history     map[uint][]models.OrderStatusHistory
	settings    map[string]models.PricingSetting
	carts       map[string]cartEntry
	seq         uint
}

func NewStore() *Store {
	return &Store{
		users:       make(map[uint]models.User),
		restaurants: make(map[uint]models.Restaurant),
		menu:        make(map[uint]models.MenuItem),
		orders:      make(map[uint]models.Order),
		history:     make(map[uint][]models.OrderStatusHistory),
		settings:    make(map[string]models.PricingSetting),
		carts:       make(map[string]cartEntry),
	}
}

// nextID must be called with mu held.
func (s *Store) nextID() uint {
	s.seq++
	return s.seq
}

type orderRepository struct {
	s *Store
}

func NewOrderRepository(s *Store) repository.OrderRepository {
	return &orderRepository{s: s}
}

func copyOrder(o models.Order) models.Order {
	items := make([]models.OrderItem, len(o.Items))
	copy(items, o.Items)
	o.Items = items
	return o
}

func (r *orderRepository) Create(ctx context.Context, order *models.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	order.ID = r.s.nextID()
	if order.Version == 0 {
		order.Version = 1
	}
	now := time.Now()
	order.CreatedAt, order.UpdatedAt = now, now
	for i := range order.Items {
		order.Items[i].ID = r.s.nextID()
		order.Items[i].OrderID = order.ID
	}

	r.s.orders[order.ID] = copyOrder(*order)
	r.s.history[order.ID] = append(r.s.history[order.ID], models.OrderStatusHistory{
		ID:        r.s.nextID(),
		OrderID:   order.ID,
		ToStatus:  order.Status,
		ChangedBy: order.UserID,
		Note:      "order placed",
		CreatedAt: order.OrderDate,
	})
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	o, ok := r.s.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	o = copyOrder(o)
	return &o, nil
}

func (r *orderRepository) GetByUserID(ctx context.Context, userID uint) ([]models.Order, error) {
	return r.filter(func(o models.Order) bool { return o.UserID == userID }), nil
}

func (r *orderRepository) GetByRestaurantID(ctx context.Context, restaurantID uint) ([]models.Order, error) {
	return r.filter(func(o models.Order) bool { return o.RestaurantID == restaurantID }), nil
}

func (r *orderRepository) filter(keep func(models.Order) bool) []models.Order {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	orders := []models.Order{}
	for _, o := range r.s.orders {
		if keep(o) {
			orders = append(orders, copyOrder(o))
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		if orders[i].OrderDate.Equal(orders[j].OrderDate) {
			return orders[i].ID > orders[j].ID
		}
		return orders[i].OrderDate.After(orders[j].OrderDate)
	})
	return orders
}

func (r *orderRepository) UpdateStatus(ctx context.Context, change repository.StatusChange) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	o, ok := r.s.orders[change.OrderID]
	if !ok || o.Status != change.FromStatus || o.Version != change.FromVersion {
		return repository.ErrStaleOrder
	}

	o.Status = change.ToStatus
	o.StatusUpdatedAt = change.At
	o.UpdatedAt = change.At
	o.Version++
	if change.CancelledBy != nil {
		by := *change.CancelledBy
		o.CancelledBy = &by
	}
	if change.CancellationReason != nil {
		reason := *change.CancellationReason
		o.CancellationReason = &reason
	}
	r.s.orders[o.ID] = o

	r.s.history[o.ID] = append(r.s.history[o.ID], models.OrderStatusHistory{
		ID:         r.s.nextID(),
		OrderID:    o.ID,
		FromStatus: change.FromStatus,
		ToStatus:   change.ToStatus,
		ChangedBy:  change.ChangedBy,
		Note:       change.Note,
		CreatedAt:  change.At,
	})
	return nil
}

func (r *orderRepository) GetHistory(ctx context.Context, orderID uint) ([]models.OrderStatusHistory, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	h := make([]models.OrderStatusHistory, len(r.s.history[orderID]))
	copy(h, r.s.history[orderID])
	return h, nil
}

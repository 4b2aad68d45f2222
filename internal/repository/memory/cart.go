package memory

import (
	"context"
	"fmt"
	"time"

	"local_delivery/internal/models"
)

type cartEntry struct {
	cart      models.Cart
	expiresAt time.Time
}

// CartStore keeps carts in the Store with the same TTL semantics as the redis store.
type CartStore struct {
	s   *Store
	now func() time.Time
}

func NewCartStore(s *Store) *CartStore {
	return &CartStore{s: s, now: time.Now}
}

func cartKey(userID, restaurantID uint) string {
	return fmt.Sprintf("%d:%d", userID, restaurantID)
}

func (c *CartStore) GetCart(ctx context.Context, userID, restaurantID uint) (*models.Cart, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	key := cartKey(userID, restaurantID)
	entry, ok := c.s.carts[key]
	if !ok {
		return nil, nil
	}
	if !entry.expiresAt.IsZero() && c.now().After(entry.expiresAt) {
		delete(c.s.carts, key)
		return nil, nil
	}

	cart := entry.cart
	cart.Items = append([]models.CartItem{}, entry.cart.Items...)
	return &cart, nil
}

func (c *CartStore) SetCart(ctx context.Context, cart *models.Cart, ttl time.Duration) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	entry := cartEntry{cart: *cart}
	entry.cart.Items = append([]models.CartItem{}, cart.Items...)
	if ttl > 0 {
		entry.expiresAt = c.now().Add(ttl)
	}
	c.s.carts[cartKey(cart.UserID, cart.RestaurantID)] = entry
	return nil
}

func (c *CartStore) DeleteCart(ctx context.Context, userID, restaurantID uint) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	delete(c.s.carts, cartKey(userID, restaurantID))
	return nil
}

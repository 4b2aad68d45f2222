package models

import (
	"errors"
	"time"
)

var (
	ErrInvalidQuantity  = errors.New("quantity must be at least 1")
	ErrMissingMenuItem  = errors.New("menu item id is required")
	ErrCartItemNotFound = errors.New("item not in cart")
)

// Cart is a user's pending selection for one restaurant. It lives in the
// cart store until checkout or expiry and is passed explicitly to order placement.
type Cart struct {
	UserID       uint       `json:"user_id"`
	RestaurantID uint       `json:"restaurant_id"`
	Items        []CartItem `json:"items"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type CartItem struct {
	MenuItemID uint    `json:"menu_item_id"`
	Name       string  `json:"name"`
	UnitPrice  float64 `json:"unit_price"`
	Quantity   int     `json:"quantity"`
	Image      string  `json:"image,omitempty"`
}

func NewCart(userID, restaurantID uint) *Cart {
	return &Cart{UserID: userID, RestaurantID: restaurantID, Items: []CartItem{}}
}

// SetItem adds the item or replaces the quantity of an existing line.
func (c *Cart) SetItem(item CartItem) error {
	if item.MenuItemID == 0 {
		return ErrMissingMenuItem
	}
	if item.Quantity < 1 {
		return ErrInvalidQuantity
	}
	for i := range c.Items {
		if c.Items[i].MenuItemID == item.MenuItemID {
			c.Items[i] = item
			return nil
		}
	}
	c.Items = append(c.Items, item)
	return nil
}

func (c *Cart) Remove(menuItemID uint) error {
	for i := range c.Items {
		if c.Items[i].MenuItemID == menuItemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return nil
		}
	}
	return ErrCartItemNotFound
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c *Cart) ItemCount() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

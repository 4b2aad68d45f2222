package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"local_delivery/internal/models"

	"github.com/go-redis/redis/v8"
)

type Client struct {
	rdb *redis.Client
}

func Initialize(redisURL string) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// NewFromClient wraps an existing go-redis client.
func NewFromClient(rdb *redis.Client) *Client {
	return &Client{rdb: rdb}
}

func cartKey(userID, restaurantID uint) string {
	return fmt.Sprintf("cart:%d:%d", userID, restaurantID)
}

// Cart management

// GetCart returns nil without an error when the cart does not exist or expired.
func (c *Client) GetCart(ctx context.Context, userID, restaurantID uint) (*models.Cart, error) {
	val, err := c.rdb.Get(ctx, cartKey(userID, restaurantID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	var cart models.Cart
	if err := json.Unmarshal(val, &cart); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart: %w", err)
	}
	return &cart, nil
}

func (c *Client) SetCart(ctx context.Context, cart *models.Cart, ttl time.Duration) error {
	jsonData, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}

	return c.rdb.Set(ctx, cartKey(cart.UserID, cart.RestaurantID), jsonData, ttl).Err()
}

func (c *Client) DeleteCart(ctx context.Context, userID, restaurantID uint) error {
	return c.rdb.Del(ctx, cartKey(userID, restaurantID)).Err()
}

func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Close Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

// internal/infrastructure/database/redis/cart_store.go
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/your-org/storefront-backend/internal/domain/cart"
)

// CartStore keeps one serialized shopping cart per visitor session in Redis,
// with a sliding expiration. It implements cart.Store.
type CartStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCartStore creates a new Redis-backed cart store
func NewCartStore(client *redis.Client, ttl time.Duration) *CartStore {
	return &CartStore{
		client: client,
		ttl:    ttl,
	}
}

// storedCart is the wire form of a cart. Line items keep their slice order,
// which is the cart's display order.
type storedCart struct {
	Items     []cart.LineItem `json:"items"`
	Total     decimal.Decimal `json:"total"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Load retrieves the session's cart, or an empty cart if none exists yet
func (s *CartStore) Load(ctx context.Context, sessionID string) (*cart.ShoppingCart, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session ID required for cart")
	}

	data, err := s.client.Get(ctx, cartKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return cart.New(), nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var stored storedCart
	if err := json.Unmarshal([]byte(data), &stored); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}

	return cart.Restore(stored.Items, stored.Total), nil
}

// Save persists the session's cart and refreshes its expiration
func (s *CartStore) Save(ctx context.Context, sessionID string, shoppingCart *cart.ShoppingCart) error {
	if sessionID == "" {
		return fmt.Errorf("session ID required for cart")
	}

	stored := storedCart{
		Items:     shoppingCart.Items(),
		Total:     shoppingCart.Total(),
		UpdatedAt: time.Now().UTC(),
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}

	if err := s.client.Set(ctx, cartKey(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// Delete removes the session's cart. Called after a committed order or when
// the session ends.
func (s *CartStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("cart:session:%s", sessionID)
}

// internal/infrastructure/database/redis/cart_repository.go
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/your-org/cart-service/internal/domain/cart"
)

// CartRepository stores carts as JSON documents with two secondary indexes:
// a set of open cart ids per customer and a sorted set of open carts scored by expiry.
type CartRepository struct {
	rdb    *redis.Client
	prefix string
}

// NewCartRepository creates a cart repository under the given key prefix
func NewCartRepository(rdb *redis.Client, prefix string) *CartRepository {
	return &CartRepository{rdb: rdb, prefix: prefix}
}

var _ cart.Repository = (*CartRepository)(nil)

func (r *CartRepository) cartKey(id string) string {
	return fmt.Sprintf("%s:cart:%s", r.prefix, id)
}

func (r *CartRepository) customerKey(customerID string) string {
	return fmt.Sprintf("%s:carts:customer:%s", r.prefix, customerID)
}

func (r *CartRepository) expiresKey() string {
	return fmt.Sprintf("%s:carts:expires", r.prefix)
}

// Create stores a new cart
func (r *CartRepository) Create(ctx context.Context, c *cart.Cart) error {
	return r.save(ctx, c)
}

// Update overwrites an existing cart
func (r *CartRepository) Update(ctx context.Context, c *cart.Cart) error {
	return r.save(ctx, c)
}

func (r *CartRepository) save(ctx context.Context, c *cart.Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode cart %s: %w", c.ID, err)
	}

	pipe := r.rdb.TxPipeline()
	pipe.Set(ctx, r.cartKey(c.ID), data, 0)

	// The customer index only tracks open carts
	if c.CustomerID != nil {
		if c.IsOpen() {
			pipe.SAdd(ctx, r.customerKey(*c.CustomerID), c.ID)
		} else {
			pipe.SRem(ctx, r.customerKey(*c.CustomerID), c.ID)
		}
	}

	// Only open carts can expire
	if c.IsOpen() && c.ExpiresAt != nil {
		pipe.ZAdd(ctx, r.expiresKey(), redis.Z{
			Score:  float64(c.ExpiresAt.UnixMilli()),
			Member: c.ID,
		})
	} else {
		pipe.ZRem(ctx, r.expiresKey(), c.ID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save cart %s: %w", c.ID, err)
	}

	return nil
}

// FindByID returns the cart or nil when it does not exist
func (r *CartRepository) FindByID(ctx context.Context, id string) (*cart.Cart, error) {
	data, err := r.rdb.Get(ctx, r.cartKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cart %s: %w", id, err)
	}

	return decodeCart(data)
}

// FindByCustomerID returns the customer's open cart or nil
func (r *CartRepository) FindByCustomerID(ctx context.Context, customerID string) (*cart.Cart, error) {
	ids, err := r.rdb.SMembers(ctx, r.customerKey(customerID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list carts for customer %s: %w", customerID, err)
	}

	carts, err := r.loadMany(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, c := range carts {
		if c.IsOpen() {
			return c, nil
		}
	}

	return nil, nil
}

// FindAllExpired returns open carts whose expiry is at or before the given time, oldest first
func (r *CartRepository) FindAllExpired(ctx context.Context, before time.Time) ([]*cart.Cart, error) {
	ids, err := r.rdb.ZRangeByScore(ctx, r.expiresKey(), &redis.ZRangeBy{
		Min: "-inf",
		Max: strconv.FormatInt(before.UnixMilli(), 10),
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to range expired carts: %w", err)
	}

	carts, err := r.loadMany(ctx, ids)
	if err != nil {
		return nil, err
	}

	expired := make([]*cart.Cart, 0, len(carts))
	for _, c := range carts {
		if c.IsExpired(before) {
			expired = append(expired, c)
		}
	}

	return expired, nil
}

// Remove deletes the cart and its index entries. Removing a missing cart is not an error.
func (r *CartRepository) Remove(ctx context.Context, id string) error {
	existing, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}

	pipe := r.rdb.TxPipeline()
	pipe.Del(ctx, r.cartKey(id))
	pipe.ZRem(ctx, r.expiresKey(), id)
	if existing != nil && existing.CustomerID != nil {
		pipe.SRem(ctx, r.customerKey(*existing.CustomerID), id)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to remove cart %s: %w", id, err)
	}

	return nil
}

// loadMany fetches carts in id order, skipping ids whose document is gone
func (r *CartRepository) loadMany(ctx context.Context, ids []string) ([]*cart.Cart, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.cartKey(id)
	}

	values, err := r.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load carts: %w", err)
	}

	carts := make([]*cart.Cart, 0, len(values))
	for _, value := range values {
		raw, ok := value.(string)
		if !ok {
			continue
		}
		c, err := decodeCart([]byte(raw))
		if err != nil {
			return nil, err
		}
		carts = append(carts, c)
	}

	return carts, nil
}

func decodeCart(data []byte) (*cart.Cart, error) {
	var c cart.Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	if c.Products == nil {
		c.Products = []cart.LineItem{}
	}
	return &c, nil
}

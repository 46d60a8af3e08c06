// internal/domain/cart/repository.go
package cart

import (
	"context"
	"time"
)

// Repository persists carts.
//
// Lookups return (nil, nil) when nothing matches. Writes are last-writer-wins.
type Repository interface {
	Create(ctx context.Context, c *Cart) error
	FindByID(ctx context.Context, id string) (*Cart, error)
	// FindByCustomerID returns the customer's open cart, if any.
	FindByCustomerID(ctx context.Context, customerID string) (*Cart, error)
	// FindAllExpired returns open carts whose expiry is at or before the given time.
	FindAllExpired(ctx context.Context, before time.Time) ([]*Cart, error)
	Update(ctx context.Context, c *Cart) error
	Remove(ctx context.Context, id string) error
}

// internal/domain/cart/entity.go
package cart

import (
	"time"

	"github.com/google/uuid"
)

// DefaultTTL is the inactivity window after which an open cart may be expired
const DefaultTTL = time.Hour

// Status represents the lifecycle state of a cart
type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

// LineItem is one product entry in a cart
type LineItem struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Cart is the shopping cart aggregate.
//
// Mutators never check the status; callers decide whether a transition is allowed.
// ExpiresAt is nil exactly when the cart is closed.
type Cart struct {
	ID         string     `json:"id"`
	Status     Status     `json:"status"`
	CustomerID *string    `json:"customer_id,omitempty"`
	Products   []LineItem `json:"products"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// New creates an open, empty cart that expires ttl after now
func New(customerID *string, now time.Time, ttl time.Duration) *Cart {
	expiresAt := now.Add(ttl)

	return &Cart{
		ID:         uuid.NewString(),
		Status:     StatusOpen,
		CustomerID: customerID,
		Products:   []LineItem{},
		ExpiresAt:  &expiresAt,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// AddProducts merges items into the cart. A known product gets its quantity
// increased and its price replaced; an unknown one is appended.
func (c *Cart) AddProducts(items []LineItem, now time.Time, ttl time.Duration) {
	for _, item := range items {
		if idx := c.indexOf(item.ProductID); idx >= 0 {
			c.Products[idx].Quantity += item.Quantity
			c.Products[idx].Price = item.Price
			continue
		}
		c.Products = append(c.Products, item)
	}

	c.touch(now, ttl)
}

// RemoveProducts drops every line whose product id is listed. Unknown ids are ignored.
func (c *Cart) RemoveProducts(productIDs []string, now time.Time, ttl time.Duration) {
	drop := make(map[string]struct{}, len(productIDs))
	for _, id := range productIDs {
		drop[id] = struct{}{}
	}

	kept := make([]LineItem, 0, len(c.Products))
	for _, item := range c.Products {
		if _, ok := drop[item.ProductID]; !ok {
			kept = append(kept, item)
		}
	}
	c.Products = kept

	c.touch(now, ttl)
}

// Checkout closes the cart. Closed carts never expire.
func (c *Cart) Checkout(now time.Time) {
	c.Status = StatusClosed
	c.UpdatedAt = now
	c.ExpiresAt = nil
}

// IsOpen reports whether the cart still accepts changes
func (c *Cart) IsOpen() bool {
	return c.Status == StatusOpen
}

// HasProducts reports whether the cart holds at least one line
func (c *Cart) HasProducts() bool {
	return len(c.Products) > 0
}

// IsExpired reports whether an open cart is past its expiry at the given time
func (c *Cart) IsExpired(at time.Time) bool {
	return c.IsOpen() && c.ExpiresAt != nil && !c.ExpiresAt.After(at)
}

func (c *Cart) touch(now time.Time, ttl time.Duration) {
	expiresAt := now.Add(ttl)
	c.UpdatedAt = now
	c.ExpiresAt = &expiresAt
}

func (c *Cart) indexOf(productID string) int {
	for i := range c.Products {
		if c.Products[i].ProductID == productID {
			return i
		}
	}
	return -1
}

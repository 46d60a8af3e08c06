package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/your-org/cart-service/internal/domain/cart"
)

var testNow = time.Date(2021, 5, 3, 0, 0, 0, 0, time.UTC)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func testLifecycle() Lifecycle {
	return Lifecycle{TTL: time.Hour, Clock: fixedClock{t: testNow}}
}

// fakeRepo is an in-memory cart.Repository that records writes
type fakeRepo struct {
	carts   map[string]*cart.Cart
	expired []*cart.Cart

	created []*cart.Cart
	updated []*cart.Cart
	removed []string

	findErr   error
	updateErr error
	removeErr map[string]error
}

func newFakeRepo(carts ...*cart.Cart) *fakeRepo {
	r := &fakeRepo{carts: map[string]*cart.Cart{}, removeErr: map[string]error{}}
	for _, c := range carts {
		r.carts[c.ID] = c
	}
	return r
}

func (r *fakeRepo) Create(ctx context.Context, c *cart.Cart) error {
	r.created = append(r.created, c)
	r.carts[c.ID] = c
	return nil
}

func (r *fakeRepo) FindByID(ctx context.Context, id string) (*cart.Cart, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	return r.carts[id], nil
}

func (r *fakeRepo) FindByCustomerID(ctx context.Context, customerID string) (*cart.Cart, error) {
	for _, c := range r.carts {
		if c.CustomerID != nil && *c.CustomerID == customerID && c.IsOpen() {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) FindAllExpired(ctx context.Context, before time.Time) ([]*cart.Cart, error) {
	return r.expired, nil
}

func (r *fakeRepo) Update(ctx context.Context, c *cart.Cart) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.updated = append(r.updated, c)
	r.carts[c.ID] = c
	return nil
}

func (r *fakeRepo) Remove(ctx context.Context, id string) error {
	if err := r.removeErr[id]; err != nil {
		return err
	}
	r.removed = append(r.removed, id)
	delete(r.carts, id)
	return nil
}

type invocation struct {
	Target  string
	Payload any
}

// fakeInvoker records calls and answers Invoke from a canned response map
type fakeInvoker struct {
	events    []invocation
	calls     []invocation
	responses map[string][]byte
	eventErr  error
}

func (f *fakeInvoker) InvokeEvent(ctx context.Context, target string, payload any) error {
	f.events = append(f.events, invocation{Target: target, Payload: payload})
	return f.eventErr
}

func (f *fakeInvoker) Invoke(ctx context.Context, target string, payload any) ([]byte, error) {
	f.calls = append(f.calls, invocation{Target: target, Payload: payload})
	return f.responses[target], nil
}

func openCart(id string, customerID *string, products ...cart.LineItem) *cart.Cart {
	expiresAt := testNow.Add(time.Hour)
	if products == nil {
		products = []cart.LineItem{}
	}
	return &cart.Cart{
		ID:         id,
		Status:     cart.StatusOpen,
		CustomerID: customerID,
		Products:   products,
		ExpiresAt:  &expiresAt,
		CreatedAt:  testNow.Add(-time.Minute),
		UpdatedAt:  testNow.Add(-time.Minute),
	}
}

func closedCart(id string) *cart.Cart {
	return &cart.Cart{
		ID:        id,
		Status:    cart.StatusClosed,
		Products:  []cart.LineItem{{ProductID: "prod-1", Quantity: 1, Price: 1}},
		CreatedAt: testNow.Add(-time.Hour),
		UpdatedAt: testNow.Add(-time.Minute),
	}
}

func strPtr(s string) *string { return &s }

func mustJSON(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}

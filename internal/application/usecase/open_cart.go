// internal/application/usecase/open_cart.go
package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/your-org/cart-service/internal/domain/cart"
	"github.com/your-org/cart-service/internal/pkg/apperror"
)

const ErrMsgCartExistsForCustomer = "Cart already exists for this customer"

// OpenCartInput identifies the customer a cart is opened for. Every field is optional.
type OpenCartInput struct {
	CustomerID string `json:"customer_id"`
	Document   string `json:"document"`
	Name       string `json:"name"`
	Email      string `json:"email"`
}

// UnmarshalJSON also accepts the camelCase customerId key. customer_id wins
// when a body carries both.
func (in *OpenCartInput) UnmarshalJSON(data []byte) error {
	type plain OpenCartInput
	var body struct {
		plain
		CamelCustomerID string `json:"customerId"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return err
	}

	*in = OpenCartInput(body.plain)
	if in.CustomerID == "" {
		in.CustomerID = body.CamelCustomerID
	}
	return nil
}

// OpenCartOutput is the result of opening a cart
type OpenCartOutput struct {
	ID string `json:"id"`
}

// CustomerResolver turns customer attributes into a canonical customer id.
// An empty id means the cart is anonymous.
type CustomerResolver interface {
	Resolve(ctx context.Context, in OpenCartInput) (string, error)
}

// OpenCartUseCase opens a new cart, at most one open cart per customer
type OpenCartUseCase struct {
	repo      cart.Repository
	customers CustomerResolver
	lifecycle Lifecycle
}

// NewOpenCartUseCase creates the use case. customers may be nil, in which case
// only an explicit customer id is honoured.
func NewOpenCartUseCase(repo cart.Repository, customers CustomerResolver, lifecycle Lifecycle) *OpenCartUseCase {
	return &OpenCartUseCase{
		repo:      repo,
		customers: customers,
		lifecycle: lifecycle,
	}
}

// Execute opens the cart and returns its id
func (uc *OpenCartUseCase) Execute(ctx context.Context, in OpenCartInput) (*OpenCartOutput, error) {
	customerID := strings.TrimSpace(in.CustomerID)
	if customerID == "" && uc.customers != nil {
		resolved, err := uc.customers.Resolve(ctx, in)
		if err != nil {
			return nil, err
		}
		customerID = resolved
	}

	var owner *string
	if customerID != "" {
		existing, err := uc.repo.FindByCustomerID(ctx, customerID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up open cart: %w", err)
		}
		if existing != nil {
			return nil, apperror.Conflict(ErrMsgCartExistsForCustomer)
		}
		owner = &customerID
	}

	c := cart.New(owner, uc.lifecycle.now(), uc.lifecycle.ttl())

	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}

	return &OpenCartOutput{ID: c.ID}, nil
}

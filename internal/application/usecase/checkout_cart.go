// internal/application/usecase/checkout_cart.go
package usecase

import (
	"context"
	"fmt"

	"github.com/your-org/cart-service/internal/domain/cart"
	"github.com/your-org/cart-service/internal/pkg/apperror"
)

// CreateOrderEvent is sent to the order processor after a successful checkout
type CreateOrderEvent struct {
	CustomerID *string         `json:"customer_id,omitempty"`
	Products   []cart.LineItem `json:"products"`
}

// CheckoutCartUseCase closes a cart and hands its products to order processing
type CheckoutCartUseCase struct {
	repo        cart.Repository
	invoker     Invoker
	orderTarget string
	lifecycle   Lifecycle
}

// NewCheckoutCartUseCase creates a checkout use case that notifies orderTarget
func NewCheckoutCartUseCase(repo cart.Repository, invoker Invoker, orderTarget string, lifecycle Lifecycle) *CheckoutCartUseCase {
	return &CheckoutCartUseCase{
		repo:        repo,
		invoker:     invoker,
		orderTarget: orderTarget,
		lifecycle:   lifecycle,
	}
}

// Execute persists the closed cart before notifying the order processor.
// A failed notification is returned as is; the checkout is not rolled back.
func (uc *CheckoutCartUseCase) Execute(ctx context.Context, cartID string) error {
	c, err := loadCart(ctx, uc.repo, cartID)
	if err != nil {
		return err
	}

	if !c.IsOpen() {
		return apperror.PreconditionFailedf("Cart with id %s is not open for checkout", cartID)
	}

	if !c.HasProducts() {
		return apperror.PreconditionFailedf("Cart with id %s has no products to checkout", cartID)
	}

	c.Checkout(uc.lifecycle.now())

	if err := uc.repo.Update(ctx, c); err != nil {
		return fmt.Errorf("failed to update cart %s: %w", cartID, err)
	}

	event := CreateOrderEvent{
		CustomerID: c.CustomerID,
		Products:   c.Products,
	}
	if err := uc.invoker.InvokeEvent(ctx, uc.orderTarget, event); err != nil {
		return fmt.Errorf("failed to notify order processor for cart %s: %w", cartID, err)
	}

	return nil
}
